// Package history persists the names marquee prepared and uploaded, one row
// per tracker attempt, in a small SQLite database.
//
// The schema version lives in PRAGMA user_version. A database stamped with
// another version is refused with ErrSchemaMismatch, never migrated in place.
package history
