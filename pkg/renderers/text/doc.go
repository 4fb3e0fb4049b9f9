// Package text renders a summary aggregate for terminals and logs.
package text
