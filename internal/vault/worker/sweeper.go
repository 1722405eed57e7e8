// Package worker runs background maintenance for the vault.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// ErrSweeperRunning is returned by Start when the sweeper is already scheduled.
var ErrSweeperRunning = errors.New("sweeper already running")

// Purger removes expired records. VaultUseCase satisfies it.
type Purger interface {
	PurgeExpired(ctx context.Context, dryRun bool) (*vaultDomain.PurgeResult, error)
}

// Sweeper purges expired records on a cron schedule. Runs never overlap: a tick that
// fires while the previous purge is still executing is skipped.
type Sweeper struct {
	purger   Purger
	schedule cron.Schedule
	spec     string
	logger   *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewSweeper validates spec (standard five-field cron syntax or descriptors such as
// "@every 5m") and returns an idle sweeper.
func NewSweeper(purger Purger, spec string, logger *slog.Logger) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid sweeper schedule %q: %w", spec, err)
	}

	return &Sweeper{
		purger:   purger,
		schedule: schedule,
		spec:     spec,
		logger:   logger,
	}, nil
}

// Start schedules the purge job. Jobs run with ctx until Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return ErrSweeperRunning
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug))
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() {
		_, _ = s.RunOnce(ctx)
	}))
	c.Start()
	s.cron = c

	s.logger.Info("expiry sweeper started", slog.String("schedule", s.spec))
	return nil
}

// Stop unschedules the job and waits for a running purge to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.logger.Info("expiry sweeper stopped")
}

// RunOnce purges expired records immediately.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	result, err := s.purger.PurgeExpired(ctx, false)
	if err != nil {
		s.logger.Error("failed to purge expired secrets", slog.Any("error", err))
		return 0, err
	}

	if result.Count > 0 {
		s.logger.Info("purged expired secrets",
			slog.Int64("count", result.Count),
			slog.Time("before", result.Before),
		)
	}
	return result.Count, nil
}
