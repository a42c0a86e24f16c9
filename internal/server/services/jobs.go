package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/powclient/internal/common"
	"github.com/dmitrijs2005/powclient/internal/dbx"
	"github.com/dmitrijs2005/powclient/internal/logging"
	"github.com/dmitrijs2005/powclient/internal/server/config"
	"github.com/dmitrijs2005/powclient/internal/server/hub"
	"github.com/dmitrijs2005/powclient/internal/server/models"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/repomanager"
	"github.com/oklog/ulid/v2"
)

// ErrFeedClosed ends a watch whose subscription was dropped, either because
// the watcher fell behind or because the service is shutting down.
var ErrFeedClosed = errors.New("event feed closed")

// JobService applies storage configs and runs the resulting jobs. Each job
// walks Queued -> Executing -> Success (or Failed when its content is gone),
// pausing stepDelay between transitions. State changes and log lines are
// persisted and fanned out to watchers.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobs.Repository
	jobFeed     *hub.Hub[models.StorageJob]
	logFeed     *hub.Hub[models.LogEntry]
	stepDelay   time.Duration
	logger      logging.Logger
	now         func() time.Time

	// statusMu keeps a status write and its publication together, so
	// watchers never see a job move after its final status.
	statusMu sync.Mutex
	// logMu orders log appends against history snapshots taken by WatchLogs.
	logMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager, b blobs.Repository, cfg *config.Config, l logging.Logger) *JobService {
	ctx, cancel := context.WithCancel(context.Background())
	return &JobService{
		db:          db,
		repomanager: m,
		blobs:       b,
		jobFeed:     hub.New[models.StorageJob](),
		logFeed:     hub.New[models.LogEntry](),
		stepDelay:   cfg.JobStepDelay,
		logger:      l.With("module", "jobs"),
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Apply records that userID wants cid stored and, unless noExec is set,
// queues a job for it. An existing config is only replaced with override,
// which also cancels the jobs still pending for that cid. The returned job
// id is empty when no job was queued.
func (s *JobService) Apply(ctx context.Context, userID, cid string, override, noExec bool) (string, error) {
	ok, err := s.blobs.Exists(ctx, cid)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("cid %s: %w", cid, common.ErrorNotFound)
	}

	now := s.now().UTC()
	var (
		job      *models.StorageJob
		canceled []models.StorageJob
	)
	if override {
		s.statusMu.Lock()
		defer s.statusMu.Unlock()
	}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		configs := s.repomanager.Configs(tx)
		jobs := s.repomanager.Jobs(tx)

		_, err := configs.Get(ctx, userID, cid)
		switch {
		case err == nil && !override:
			return fmt.Errorf("cid %s already has a storage config: %w", cid, common.ErrorAlreadyExists)
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return err
		}

		if err := configs.Upsert(ctx, &models.StorageConfig{UserID: userID, Cid: cid, UpdatedAt: now}); err != nil {
			return err
		}

		if override {
			active, err := jobs.ListActive(ctx, userID, cid)
			if err != nil {
				return err
			}
			for _, j := range active {
				j.Status = models.JobStatusCanceled
				j.ErrorCause = "superseded by a newer storage config"
				err := jobs.UpdateStatus(ctx, j.ID, j.Status, j.ErrorCause)
				if errors.Is(err, common.ErrorJobFinal) {
					continue
				}
				if err != nil {
					return err
				}
				canceled = append(canceled, j)
			}
		}

		if noExec {
			return nil
		}

		job = &models.StorageJob{
			ID:        ulid.Make().String(),
			UserID:    userID,
			Cid:       cid,
			Status:    models.JobStatusQueued,
			CreatedAt: now,
		}
		return jobs.Create(ctx, job)
	})
	if err != nil {
		return "", err
	}

	for _, j := range canceled {
		s.jobFeed.Publish(j)
		s.appendLog(j, "job canceled: "+j.ErrorCause)
	}

	if job == nil {
		return "", nil
	}

	s.jobFeed.Publish(*job)
	s.appendLog(*job, "job queued")

	s.wg.Add(1)
	go s.run(*job)

	return job.ID, nil
}

func (s *JobService) run(job models.StorageJob) {
	defer s.wg.Done()

	if !s.pause() || !s.transition(&job, models.JobStatusExecuting, "", "executing job") {
		return
	}
	if !s.pause() {
		return
	}

	ok, err := s.blobs.Exists(s.ctx, job.Cid)
	switch {
	case err != nil:
		s.transition(&job, models.JobStatusFailed, err.Error(), "job failed")
	case !ok:
		s.transition(&job, models.JobStatusFailed, "content not found", "job failed")
	default:
		s.transition(&job, models.JobStatusSuccess, "", "job succeeded")
	}
}

func (s *JobService) pause() bool {
	if s.stepDelay <= 0 {
		return s.ctx.Err() == nil
	}
	t := time.NewTimer(s.stepDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// transition moves job to status unless something else already finalised it.
func (s *JobService) transition(job *models.StorageJob, status models.JobStatus, cause, msg string) bool {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	err := s.repomanager.Jobs(s.db).UpdateStatus(s.ctx, job.ID, status, cause)
	if errors.Is(err, common.ErrorJobFinal) {
		s.logger.Debug(s.ctx, "job already final", "job_id", job.ID, "status", status)
		return false
	}
	if err != nil {
		s.logger.Error(s.ctx, "job update failed", "job_id", job.ID, "error", err)
		return false
	}
	job.Status = status
	job.ErrorCause = cause

	s.logger.Debug(s.ctx, "job transition", "job_id", job.ID, "status", status)
	s.jobFeed.Publish(*job)
	if cause != "" {
		msg += ": " + cause
	}
	s.appendLog(*job, msg)
	return true
}

func (s *JobService) appendLog(job models.StorageJob, msg string) {
	e := models.LogEntry{
		UserID:  job.UserID,
		Cid:     job.Cid,
		JobID:   job.ID,
		Time:    s.now().UTC(),
		Message: msg,
	}

	s.logMu.Lock()
	defer s.logMu.Unlock()

	if err := s.repomanager.Logs(s.db).Append(context.WithoutCancel(s.ctx), &e); err != nil {
		s.logger.Error(s.ctx, "log append failed", "job_id", job.ID, "error", err)
		return
	}
	s.logFeed.Publish(e)
}

// Job returns a job owned by userID. Jobs of other users are reported as
// not found.
func (s *JobService) Job(ctx context.Context, userID, id string) (*models.StorageJob, error) {
	job, err := s.repomanager.Jobs(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return job, nil
}

// WatchJobs sends the current state of every job in ids and then each later
// update, until ctx ends or send fails. With no ids it follows all jobs of
// userID.
func (s *JobService) WatchJobs(ctx context.Context, userID string, ids []string, send func(models.StorageJob) error) error {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	feed, cancel := s.jobFeed.Subscribe(func(j models.StorageJob) bool {
		if j.UserID != userID {
			return false
		}
		if len(wanted) == 0 {
			return true
		}
		_, ok := wanted[j.ID]
		return ok
	})
	defer cancel()

	for _, id := range ids {
		job, err := s.Job(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("job %s: %w", id, err)
		}
		if err := send(*job); err != nil {
			return err
		}
	}

	return drain(ctx, feed, send)
}

// WatchLogs streams log lines of userID for cid, optionally narrowed to one
// job. With history the stored lines are sent first, without gaps or
// duplicates between them and the live feed.
func (s *JobService) WatchLogs(ctx context.Context, userID, cid, jobID string, history bool, send func(models.LogEntry) error) error {
	s.logMu.Lock()
	feed, cancel := s.logFeed.Subscribe(func(e models.LogEntry) bool {
		return e.UserID == userID && e.Cid == cid && (jobID == "" || e.JobID == jobID)
	})
	var (
		past []models.LogEntry
		err  error
	)
	if history {
		past, err = s.repomanager.Logs(s.db).List(ctx, userID, cid, jobID)
	}
	s.logMu.Unlock()
	defer cancel()

	if err != nil {
		return err
	}
	for _, e := range past {
		if err := send(e); err != nil {
			return err
		}
	}

	return drain(ctx, feed, send)
}

func drain[T any](ctx context.Context, feed <-chan T, send func(T) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-feed:
			if !ok {
				return ErrFeedClosed
			}
			if err := send(v); err != nil {
				return err
			}
		}
	}
}

// Close stops running jobs and ends every watch.
func (s *JobService) Close() {
	s.cancel()
	s.wg.Wait()
	s.jobFeed.Close()
	s.logFeed.Close()
}
