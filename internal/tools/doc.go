// Package tools provides reusable runtime helpers shared by the pool service.
//
// Ownership boundary:
// - supervised command execution
//
// - exit-code extraction and propagation
package tools
