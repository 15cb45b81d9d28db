// Package utils provides shared helpers for tether's commands.
//
// # I/O Utilities
//
// Functions for reading from stdin and asking the user questions:
//   - ReadStdin: reads all data from standard input
//   - Confirm: asks a yes/no question
//
// # Terminal Utilities
//
// Functions for terminal detection and hidden input:
//   - IsTerminal: checks if stdin is a terminal
//   - ReadSecret: reads a value without echoing it
//
// # String Utilities
//
//   - MaskSecret: hides all but the edges of a credential for display
package utils
