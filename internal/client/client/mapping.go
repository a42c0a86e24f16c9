package client

import (
	"time"

	"github.com/dmitrijs2005/powclient/internal/client/models"
	pb "github.com/dmitrijs2005/powclient/internal/proto"
)

var jobStatuses = map[pb.JobStatus]models.JobStatus{
	pb.JobStatusUnspecified: models.JobStatusUnspecified,
	pb.JobStatusQueued:      models.JobStatusQueued,
	pb.JobStatusExecuting:   models.JobStatusExecuting,
	pb.JobStatusFailed:      models.JobStatusFailed,
	pb.JobStatusCanceled:    models.JobStatusCanceled,
	pb.JobStatusSuccess:     models.JobStatusSuccess,
}

func toJobStatus(s pb.JobStatus) models.JobStatus {
	if v, ok := jobStatuses[s]; ok {
		return v
	}
	return models.JobStatusUnspecified
}

func unixOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func toStorageJob(j *pb.StorageJob) models.StorageJob {
	return models.StorageJob{
		ID:         j.Id,
		UserID:     j.UserId,
		Cid:        j.Cid,
		Status:     toJobStatus(j.Status),
		ErrorCause: j.ErrorCause,
		CreatedAt:  unixOrZero(j.CreatedAt),
	}
}

func toLogEntry(e *pb.LogEntry) models.LogEntry {
	return models.LogEntry{
		Cid:     e.Cid,
		JobID:   e.JobId,
		Time:    unixOrZero(e.Time),
		Message: e.Message,
	}
}

func toUser(u *pb.User) models.User {
	return models.User{ID: u.Id, Token: u.Token}
}

func toBuildInfo(r *pb.BuildInfoResponse) *models.BuildInfo {
	return &models.BuildInfo{
		Version:    r.Version,
		GitCommit:  r.GitCommit,
		GitBranch:  r.GitBranch,
		GitSummary: r.GitSummary,
		BuildDate:  r.BuildDate,
	}
}
