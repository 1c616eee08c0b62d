package history

import "time"

// Status is the outcome of one tracker attempt.
type Status string

const (
	StatusPrepared Status = "prepared"
	StatusUploaded Status = "uploaded"
	// StatusDebug marks an upload that was logged instead of sent.
	StatusDebug    Status = "debug"
	StatusRejected Status = "rejected"
	StatusFailed   Status = "failed"
)

// Entry is one row of the attempt log.
type Entry struct {
	ID          string
	RecordUUID  string
	Tracker     string
	Name        string
	Status      Status
	TorrentPath string
	TorrentURL  string
	Message     string
	CreatedAt   time.Time
}
