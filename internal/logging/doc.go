// Package logging assembles structured slog loggers used across marquee.
//
// It owns the console and JSON handlers, parses level and output settings,
// and exposes context helpers so tracker and record identifiers are attached
// to log lines automatically. A no-op logger is provided for tests and for
// wiring code that cannot fail.
package logging
