// Package html renders a summary aggregate as an HTML fragment. Each section
// carries an edit button whose data-step attribute is the ordinal the
// sequencer jumps back to. Labels and values are stripped of markup with a
// bluemonday strict policy and escaped by the pongo2 template, and theme
// tokens from a go-theme manifest are exposed as CSS custom properties.
package html
