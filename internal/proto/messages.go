package proto

// JobStatus is the lifecycle state of a storage job.
type JobStatus int32

const (
	JobStatusUnspecified JobStatus = iota
	JobStatusQueued
	JobStatusExecuting
	JobStatusFailed
	JobStatusCanceled
	JobStatusSuccess
)

var jobStatusNames = map[JobStatus]string{
	JobStatusUnspecified: "JOB_STATUS_UNSPECIFIED",
	JobStatusQueued:      "JOB_STATUS_QUEUED",
	JobStatusExecuting:   "JOB_STATUS_EXECUTING",
	JobStatusFailed:      "JOB_STATUS_FAILED",
	JobStatusCanceled:    "JOB_STATUS_CANCELED",
	JobStatusSuccess:     "JOB_STATUS_SUCCESS",
}

func (s JobStatus) String() string {
	if n, ok := jobStatusNames[s]; ok {
		return n
	}
	return "JOB_STATUS_UNKNOWN"
}

// Final reports whether no further transitions happen after s.
func (s JobStatus) Final() bool {
	return s == JobStatusFailed || s == JobStatusCanceled || s == JobStatusSuccess
}

type BuildInfoResponse struct {
	GitCommit  string `json:"git_commit,omitempty"`
	GitBranch  string `json:"git_branch,omitempty"`
	Version    string `json:"version,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	GitSummary string `json:"git_summary,omitempty"`
}

type StageRequest struct {
	Chunk []byte `json:"chunk,omitempty"`
}

type StageResponse struct {
	Cid string `json:"cid,omitempty"`
}

type GetRequest struct {
	Cid string `json:"cid,omitempty"`
}

type GetResponse struct {
	Chunk []byte `json:"chunk,omitempty"`
}

type ApplyStorageConfigRequest struct {
	Cid      string `json:"cid,omitempty"`
	Override bool   `json:"override,omitempty"`
	NoExec   bool   `json:"no_exec,omitempty"`
}

type ApplyStorageConfigResponse struct {
	JobId string `json:"job_id,omitempty"`
}

type StorageJob struct {
	Id         string    `json:"id,omitempty"`
	UserId     string    `json:"user_id,omitempty"`
	Cid        string    `json:"cid,omitempty"`
	Status     JobStatus `json:"status,omitempty"`
	ErrorCause string    `json:"error_cause,omitempty"`
	CreatedAt  int64     `json:"created_at,omitempty"`
}

type StorageJobRequest struct {
	JobId string `json:"job_id,omitempty"`
}

type StorageJobResponse struct {
	StorageJob *StorageJob `json:"storage_job,omitempty"`
}

type WatchStorageJobsRequest struct {
	JobIds []string `json:"job_ids,omitempty"`
}

type WatchStorageJobsResponse struct {
	StorageJob *StorageJob `json:"storage_job,omitempty"`
}

type LogEntry struct {
	Cid     string `json:"cid,omitempty"`
	JobId   string `json:"job_id,omitempty"`
	Time    int64  `json:"time,omitempty"`
	Message string `json:"message,omitempty"`
}

type WatchLogsRequest struct {
	Cid     string `json:"cid,omitempty"`
	JobId   string `json:"job_id,omitempty"`
	History bool   `json:"history,omitempty"`
}

type WatchLogsResponse struct {
	LogEntry *LogEntry `json:"log_entry,omitempty"`
}

type User struct {
	Id    string `json:"id,omitempty"`
	Token string `json:"token,omitempty"`
}

type CreateUserResponse struct {
	User *User `json:"user,omitempty"`
}

type ListUsersResponse struct {
	Users []*User `json:"users,omitempty"`
}
