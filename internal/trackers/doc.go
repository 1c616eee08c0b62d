// Package trackers adapts prepared releases to each tracker's upload rules.
//
// Every adapter implements Tracker: it edits the composed release name,
// rejects releases the site does not accept, renders the description and
// assembles the multipart upload form. RHD and A4K run UNIT3D and share its
// id tables and form layout; FLD has its own API. The Registry builds the
// configured adapters and the Uploader sends their forms.
package trackers
