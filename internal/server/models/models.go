// Package models holds the server-side domain values persisted by the
// repositories.
package models

import "time"

type User struct {
	ID        string
	CreatedAt time.Time
}

// JobStatus mirrors the wire enum ordering.
type JobStatus int32

const (
	JobStatusUnspecified JobStatus = iota
	JobStatusQueued
	JobStatusExecuting
	JobStatusFailed
	JobStatusCanceled
	JobStatusSuccess
)

func (s JobStatus) Final() bool {
	return s == JobStatusFailed || s == JobStatusCanceled || s == JobStatusSuccess
}

// StorageConfig records that a user asked for a CID to be stored.
type StorageConfig struct {
	UserID    string
	Cid       string
	UpdatedAt time.Time
}

type StorageJob struct {
	ID         string
	UserID     string
	Cid        string
	Status     JobStatus
	ErrorCause string
	CreatedAt  time.Time
}

type LogEntry struct {
	UserID  string
	Cid     string
	JobID   string
	Time    time.Time
	Message string
}
