// Package naming composes tracker release names from upload metadata.
//
// A Composer derives the display fields a name needs (audio language tag,
// localized title, hybrid marker, region, release group) and renders them
// through a versioned template table keyed by release type. Every token is
// optional; absent values disappear without leaving gaps. Records whose type
// falls outside the table keep their existing name.
//
// The package-level helpers (AudioLanguageTag, ReleaseGroup,
// SelectAlternateTitle and the evidence checks) are pure and are reused by
// tracker adapters that need a single derived value.
package naming
