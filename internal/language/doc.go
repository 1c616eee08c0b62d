// Package language folds the language values marquee meets into one shape.
//
// Values arrive from mediainfo tracks, IMDb records and configuration as
// ISO 639-1 or 639-2 codes, English names, or IETF tags with a region.
// NormalizeCode reduces them to ISO 639-1 and ExpandName renders the
// upper-case English name used in release titles. Names and ISO 639-3
// codes come from the CLDR tables in golang.org/x/text. Every helper is
// total: unknown input passes through case-folded.
package language
