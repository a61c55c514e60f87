// Package filesystem provides implementations of the types.FS interface,
// including the standard OS filesystem used by the CLI and the recursive
// path sizing used during tree construction.
package filesystem
