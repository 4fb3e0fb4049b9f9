// Package render defines the contract shared by summary renderers and a
// registry to look them up by name. Renderer-owned strings are resolved
// through a Translator so the same renderer serves several locales.
package render
