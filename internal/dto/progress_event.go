package dto

import "time"

// Progress event types broadcast to monitor clients.
const (
	EventSourceStarted = "source_started"
	EventDownloaded    = "downloaded"
	EventSampled       = "sampled"
	EventAppended      = "appended"
	EventSourceFailed  = "source_failed"
	EventJobDone       = "job_done"
)

// ProgressEvent reports one step of the batch job.
type ProgressEvent struct {
	Type      string    `json:"type"`
	Table     string    `json:"table,omitempty"`
	Source    string    `json:"source,omitempty"`
	Frames    int       `json:"frames,omitempty"`
	Rows      int64     `json:"rows,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
