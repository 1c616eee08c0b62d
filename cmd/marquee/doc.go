// Package main hosts the marquee CLI.
//
// The Cobra command tree loads the configuration lazily, builds the tracker
// registry with one name composer per tracker, and hands records to the
// workflow package for preparation and upload. Keep this package thin: new
// behavior belongs in the internal packages and is surfaced here as a command
// or flag.
package main
