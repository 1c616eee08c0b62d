// Package workflow drives one metadata record through the per-tracker steps:
// compose the name, validate, write the description, create the torrent,
// upload, and log each attempt to the history store.
//
// Names are composed sequentially because language detection fills evidence
// on the shared record. Everything after that fans out across trackers with a
// bounded errgroup, and one tracker's failure never cancels the others; each
// result carries its own error.
package workflow
