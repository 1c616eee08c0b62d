// Package meta defines the typed metadata record that upstream collection
// populates before a release is named and uploaded.
//
// The record mirrors the key/value bag used by the upload tooling: every
// optional field defaults to its zero value so rendering code can read any
// field without presence checks. Mediainfo JSON is decoded tolerantly because
// the same field may appear as a string, a number or a nested object.
package meta
