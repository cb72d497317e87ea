package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhishek622/interviewSession/internal/lock"
	"github.com/abhishek622/interviewSession/pkg/model"
	"go.uber.org/zap"
)

// Store is the durable record of interviews and their evidence.
type Store interface {
	GetApplicationWindow(ctx context.Context, applicationID int64) (*model.ApplicationWindow, error)
	CreateInterview(ctx context.Context, iv *model.Interview) (int64, error)
	GetInterviewByID(ctx context.Context, interviewID int64) (*model.Interview, error)
	GetInterviewByLink(ctx context.Context, link string) (*model.Interview, error)
	MarkStarted(ctx context.Context, interviewID int64, startedAt time.Time, screenshotInterval int) error
	MarkTerminated(ctx context.Context, interviewID int64, from, to model.SessionStatus, endedAt time.Time, reason model.TerminationReason) error
	ListDueInterviews(ctx context.Context, now time.Time, limit int) ([]int64, error)

	HasScreenshotWithin(ctx context.Context, interviewID int64, at time.Time, window time.Duration) (bool, error)
	InsertScreenshot(ctx context.Context, s *model.Screenshot) (int64, error)
	ListScreenshots(ctx context.Context, interviewID int64) ([]model.Screenshot, error)
	HasRecording(ctx context.Context, interviewID int64, kind model.RecordingKind, segmentAt time.Time) (bool, error)
	InsertRecording(ctx context.Context, r *model.Recording) (int64, error)
	ListRecordings(ctx context.Context, interviewID int64) ([]model.Recording, error)

	UpdateSummary(ctx context.Context, interviewID int64, s model.Summary) error
	InsertScore(ctx context.Context, s *model.InterviewScore) (int64, error)
	GetScore(ctx context.Context, interviewID int64) (*model.InterviewScore, error)
}

// TransitionSink receives every committed lifecycle transition.
type TransitionSink interface {
	Project(ctx context.Context, ev model.TransitionEvent)
}

type Config struct {
	GracePeriod               time.Duration
	EarlyJoinWindow           time.Duration
	DefaultScreenshotInterval int // seconds
	SweepBatchSize            int
}

type Engine struct {
	store  Store
	locker lock.Locker
	sink   TransitionSink
	logger *zap.Logger
	cfg    Config
	now    func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(store Store, locker lock.Locker, sink TransitionSink, logger *zap.Logger, cfg Config, opts ...Option) *Engine {
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = 500
	}
	e := &Engine{
		store:  store,
		locker: locker,
		sink:   sink,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// withInterview runs fn holding the interview's lock, against a fresh read of
// the row. Once the lock is held the caller can no longer cancel the work.
func (e *Engine) withInterview(ctx context.Context, interviewID int64, fn func(ctx context.Context, iv *model.Interview) error) error {
	unlock, err := e.locker.Lock(ctx, lockKey(interviewID))
	if err != nil {
		return fmt.Errorf("lock interview %d: %w", interviewID, err)
	}
	defer unlock()

	ctx = context.WithoutCancel(ctx)
	iv, err := e.load(ctx, interviewID)
	if err != nil {
		return err
	}
	return fn(ctx, iv)
}

func (e *Engine) load(ctx context.Context, interviewID int64) (*model.Interview, error) {
	iv, err := e.store.GetInterviewByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return iv, nil
}

func lockKey(interviewID int64) string {
	return fmt.Sprintf("interview:%d", interviewID)
}

// Schedule creates the interview for an application and issues its link.
func (e *Engine) Schedule(ctx context.Context, applicationID int64, scheduledAt time.Time) (*model.Interview, error) {
	if scheduledAt.IsZero() {
		return nil, invalidInput("scheduled_at is required")
	}

	win, err := e.store.GetApplicationWindow(ctx, applicationID)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application window: %w", err)
	}
	if !scheduledAt.Before(win.InterviewEndDate) {
		return nil, invalidInput("scheduled_at must be before the job's interview end date %s", win.InterviewEndDate.Format(time.RFC3339))
	}

	iv := &model.Interview{
		ApplicationID:    applicationID,
		ScheduledAt:      scheduledAt,
		InterviewEndDate: win.InterviewEndDate,
		UniqueLink:       NewLink(),
		Status:           model.SessionStatusScheduled,
	}
	id, err := e.store.CreateInterview(ctx, iv)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrAlreadyScheduled
		}
		return nil, fmt.Errorf("create interview: %w", err)
	}
	iv.InterviewID = id

	e.emit(context.WithoutCancel(ctx), iv, e.now())
	e.logger.Sugar().Infow("interview scheduled", "interview_id", id, "application_id", applicationID, "scheduled_at", scheduledAt)
	return iv, nil
}

// GetBundle returns the interview with all of its evidence and score.
func (e *Engine) GetBundle(ctx context.Context, interviewID int64) (*model.InterviewBundle, error) {
	iv, err := e.load(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	recs, err := e.store.ListRecordings(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	shots, err := e.store.ListScreenshots(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("list screenshots: %w", err)
	}

	var score *model.InterviewScore
	s, err := e.store.GetScore(ctx, interviewID)
	switch {
	case err == nil:
		score = s
	case !errors.Is(err, model.ErrNoRecord):
		return nil, fmt.Errorf("get score: %w", err)
	}

	return &model.InterviewBundle{
		Interview:   *iv,
		Recordings:  recs,
		Screenshots: shots,
		Score:       score,
	}, nil
}

func (e *Engine) emit(ctx context.Context, iv *model.Interview, at time.Time) {
	if e.sink == nil {
		return
	}
	e.sink.Project(ctx, model.TransitionEvent{
		InterviewID:   iv.InterviewID,
		ApplicationID: iv.ApplicationID,
		NewState:      iv.Status,
		Timestamp:     at,
	})
}
