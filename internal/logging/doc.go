// Package logging provides a unified logging interface for the module.
// It abstracts the underlying logging implementation (zerolog by default),
// allowing consistent structured logging from the dispatch engine, the
// expression evaluator and the command line front-end.
package logging
