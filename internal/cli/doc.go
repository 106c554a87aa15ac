// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// layers CLI flags over an optional HCL config file and translates both into
// the application's configuration and the command to run.
package cli
