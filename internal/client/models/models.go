// Package models defines the plain values returned by the client.
package models

import "time"

type JobStatus string

const (
	JobStatusUnspecified JobStatus = "unspecified"
	JobStatusQueued      JobStatus = "queued"
	JobStatusExecuting   JobStatus = "executing"
	JobStatusFailed      JobStatus = "failed"
	JobStatusCanceled    JobStatus = "canceled"
	JobStatusSuccess     JobStatus = "success"
)

// Final reports whether the job will not change state any more.
func (s JobStatus) Final() bool {
	return s == JobStatusFailed || s == JobStatusCanceled || s == JobStatusSuccess
}

// StorageJob is one execution of a storage configuration for a CID.
type StorageJob struct {
	ID         string
	UserID     string
	Cid        string
	Status     JobStatus
	ErrorCause string
	CreatedAt  time.Time
}

// LogEntry is a single log line emitted while a CID is being processed.
type LogEntry struct {
	Cid     string
	JobID   string
	Time    time.Time
	Message string
}

// User is a scoped identity issued by the admin API.
type User struct {
	ID    string
	Token string
}

type BuildInfo struct {
	Version    string
	GitCommit  string
	GitBranch  string
	GitSummary string
	BuildDate  string
}
