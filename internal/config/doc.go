// Package config loads, normalizes, and validates marquee configuration.
//
// Configuration lives in a TOML file resolved from an explicit path, the user
// config directory, or the working directory. Defaults cover every field so a
// missing file still yields a usable configuration; tracker API keys may be
// supplied through <TRACKER>_API_KEY environment variables instead of the file.
package config
