// Package ui provides the themes and lipgloss styles used to render mpcalc
// results, errors and metrics reports. Colors are disabled with --no-color or
// the NO_COLOR environment variable.
package ui
