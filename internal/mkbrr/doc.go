// Package mkbrr installs and runs the mkbrr torrent-creation helper.
//
// The manager downloads a pinned release archive for the host platform into
// the data directory, extracts only the binary, and records the installed
// version in a marker file next to it. Installation is guarded by a file lock
// so concurrent invocations share one download.
package mkbrr
