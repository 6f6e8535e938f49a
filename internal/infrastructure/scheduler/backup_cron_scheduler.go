// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	backupapp "github.com/bizledger/backend/internal/application/backup"
)

// BackupCreator is the part of the backup service the scheduler drives
type BackupCreator interface {
	Create(ctx context.Context) (*backupapp.Info, error)
}

// BackupCronSchedulerConfig holds configuration for scheduled backups
type BackupCronSchedulerConfig struct {
	// Schedule is a standard 5-field cron expression, e.g. "0 3 * * *"
	Schedule string
	// JobTimeout is the maximum time a single backup can run
	JobTimeout time.Duration
}

// RunStatus is the outcome of the last backup run
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// BackupCronScheduler creates a backup on a cron schedule.
// A run that is still in progress when the next tick fires causes that tick
// to be skipped.
type BackupCronScheduler struct {
	config  BackupCronSchedulerConfig
	backups BackupCreator
	logger  *zap.Logger

	cron    *cron.Cron
	entryID cron.EntryID

	mu         sync.Mutex
	isRunning  bool
	lastRunAt  *time.Time
	lastStatus RunStatus
	lastError  string
	lastBackup string
}

// NewBackupCronScheduler validates the schedule and creates a stopped scheduler
func NewBackupCronScheduler(config BackupCronSchedulerConfig, backups BackupCreator, logger *zap.Logger) (*BackupCronScheduler, error) {
	if config.Schedule == "" {
		return nil, fmt.Errorf("%w: schedule is required", ErrInvalidConfig)
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &BackupCronScheduler{
		config:  config,
		backups: backups,
		logger:  logger.Named("backup-scheduler"),
	}
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger{s.logger}),
		cron.SkipIfStillRunning(cronLogger{s.logger}),
	))

	id, err := s.cron.AddFunc(config.Schedule, s.run)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.entryID = id
	return s, nil
}

// Start starts the cron loop
func (s *BackupCronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	s.cron.Start()

	s.logger.Info("Backup scheduler started",
		zap.String("schedule", s.config.Schedule),
		zap.Time("next_run_at", s.cron.Entry(s.entryID).Next),
	)
}

// Stop stops scheduling and waits for a running backup, up to ctx's deadline
func (s *BackupCronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Backup scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Backup scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerManualRun runs a backup now, outside the schedule
func (s *BackupCronScheduler) TriggerManualRun() error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}
	go s.run()
	return nil
}

func (s *BackupCronScheduler) run() {
	// Detached from any request so a finished HTTP call cannot cancel it
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	now := time.Now()
	info, err := s.backups.Create(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRunAt = &now
	if err != nil {
		s.lastStatus = RunStatusFailed
		s.lastError = err.Error()
		s.logger.Error("Scheduled backup failed", zap.Error(err))
		return
	}
	s.lastStatus = RunStatusSuccess
	s.lastError = ""
	s.lastBackup = info.ID
	s.logger.Info("Scheduled backup created",
		zap.String("backup_id", info.ID),
		zap.Duration("duration", time.Since(now)),
	)
}

// GetStatus returns the current status of the scheduler
func (s *BackupCronScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"schedule":    s.config.Schedule,
		"is_running":  s.isRunning,
		"last_run_at": s.lastRunAt,
		"last_status": s.lastStatus,
		"last_error":  s.lastError,
		"last_backup": s.lastBackup,
	}
	if s.isRunning {
		status["next_run_at"] = s.cron.Entry(s.entryID).Next
	}
	return status
}

// GetLastRunAt returns when the last run occurred
func (s *BackupCronScheduler) GetLastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
