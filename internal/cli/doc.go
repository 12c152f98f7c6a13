// Package cli is responsible for parsing command-line arguments, merging
// them with the optional run file and the environment, and handling
// process-level concerns like exit codes. It translates user input into
// the application's internal configuration.
package cli
