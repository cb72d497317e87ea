package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/abhishek622/interviewSession/internal/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Expirer is the part of the session engine the sweep drives.
type Expirer interface {
	ExpireDue(ctx context.Context) (int, error)
}

// Sweeper periodically expires interviews whose end date has passed. Several
// instances may run it at once; expiring is idempotent.
type Sweeper struct {
	expirer  Expirer
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func New(expirer Expirer, schedule string, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		schedule: schedule,
		timeout:  time.Minute,
		// a slow run is skipped rather than stacked
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// Start schedules the sweep; it returns once the scheduler is running.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddJob(s.schedule, s); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Sugar().Infow("expiry sweep started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Sugar().Info("expiry sweep stopped")
}

// Run satisfies cron.Job.
func (s *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, _ = s.RunOnce(ctx)
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	expired, err := s.expirer.ExpireDue(ctx)
	metrics.ObserveSweep(expired, err)

	sugar := s.logger.Sugar()
	if err != nil {
		sugar.Errorw("expiry sweep failed", "expired", expired, "cost", time.Since(start), "err", err)
		return expired, err
	}
	sugar.Debugw("expiry sweep done", "expired", expired, "cost", time.Since(start))
	return expired, nil
}
