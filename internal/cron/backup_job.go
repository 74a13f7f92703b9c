package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/tlca-systems/register-backend/internal/history"
	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

const defaultBackupMaxAge = 48 * time.Hour

// historyReader is the slice of the history store the backup job needs.
type historyReader interface {
	Orders() []models.Order
}

// backupCache is the snapshot slot surface.
type backupCache interface {
	ReadBackup(ctx context.Context) (*history.BackupSnapshot, error)
	WriteBackup(ctx context.Context, snapshot history.BackupSnapshot) error
}

// BackupJobParams configure the periodic history snapshot.
type BackupJobParams struct {
	Logger *logger.Logger
	Store  historyReader
	Cache  backupCache
	MaxAge time.Duration
	Now    func() time.Time
}

// backupJob refreshes the disaster-recovery snapshot whenever the existing
// one is older than MaxAge. The job runs far more often than the snapshot
// rotates; most cycles read a timestamp and do nothing.
type backupJob struct {
	logg   *logger.Logger
	store  historyReader
	cache  backupCache
	maxAge time.Duration
	now    func() time.Time
}

// NewBackupJob builds the cron job that keeps the backup snapshot fresh.
func NewBackupJob(params BackupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("history store required")
	}
	if params.Cache == nil {
		return nil, fmt.Errorf("history cache required")
	}
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultBackupMaxAge
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &backupJob{
		logg:   params.Logger,
		store:  params.Store,
		cache:  params.Cache,
		maxAge: maxAge,
		now:    now,
	}, nil
}

func (j *backupJob) Name() string {
	return "history-backup"
}

func (j *backupJob) Run(ctx context.Context) error {
	existing, err := j.cache.ReadBackup(ctx)
	if err != nil {
		// A corrupt snapshot is exactly what this job exists to replace.
		j.logg.Error(ctx, "backup: existing snapshot unreadable, rewriting", err)
	} else if existing != nil && j.now().Sub(existing.TakenAt) < j.maxAge {
		return nil
	}

	snapshot := history.BackupSnapshot{
		TakenAt: j.now().UTC(),
		Orders:  j.store.Orders(),
	}
	if err := j.cache.WriteBackup(ctx, snapshot); err != nil {
		return fmt.Errorf("writing backup snapshot: %w", err)
	}
	j.logg.Info(ctx, fmt.Sprintf("backup: snapshot refreshed with %d orders", len(snapshot.Orders)))
	return nil
}
