// Package preflight provides readiness checks for the directories and
// trackers marquee depends on.
//
// The CLI "marquee check" command runs RunAll next to the binary dependency
// report. Tracker checks only run for trackers enabled in the config.
package preflight
