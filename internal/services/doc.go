// Package services defines the error markers shared by tracker adapters, the
// helper binary manager and the CLI.
//
// Wrap tags a failure with one of the sentinel markers so callers can classify
// it with errors.Is: Outcome decides how a tracker attempt is recorded in the
// history, and ExitCode picks the process exit status.
package services
