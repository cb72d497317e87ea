package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhishek622/interviewSession/internal/metrics"
	"github.com/abhishek622/interviewSession/pkg/model"
)

// Start moves a scheduled interview to active. It is permitted from
// EarlyJoinWindow before ScheduledAt until InterviewEndDate.
func (e *Engine) Start(ctx context.Context, interviewID int64) (*model.Interview, error) {
	var out *model.Interview
	err := e.withInterview(ctx, interviewID, func(ctx context.Context, iv *model.Interview) error {
		switch iv.Status {
		case model.SessionStatusActive:
			return ErrAlreadyActive
		case model.SessionStatusScheduled:
		default:
			return &TransitionError{From: iv.Status, To: model.SessionStatusActive}
		}

		now := e.now()
		if now.Before(iv.ScheduledAt.Add(-e.cfg.EarlyJoinWindow)) {
			return &TransitionError{From: iv.Status, To: model.SessionStatusActive, Reason: "start window not open yet"}
		}
		if now.After(iv.InterviewEndDate) {
			return &TransitionError{From: iv.Status, To: model.SessionStatusActive, Reason: "start window closed"}
		}

		interval, err := e.screenshotInterval(ctx, iv.ApplicationID)
		if err != nil {
			return err
		}

		if err := e.store.MarkStarted(ctx, iv.InterviewID, now, interval); err != nil {
			if !errors.Is(err, model.ErrStaleState) {
				return fmt.Errorf("mark started: %w", err)
			}
			cur, err := e.load(ctx, iv.InterviewID)
			if err != nil {
				return err
			}
			if cur.Status == model.SessionStatusActive {
				return ErrAlreadyActive
			}
			return &TransitionError{From: cur.Status, To: model.SessionStatusActive, Reason: "state changed concurrently"}
		}

		iv.Status = model.SessionStatusActive
		iv.ActualStartedAt = &now
		iv.IsActive = true
		iv.ScreenshotInterval = interval
		e.applied(ctx, iv, model.SessionStatusScheduled, now)
		out = iv
		return nil
	})
	return out, err
}

// screenshotInterval reads the job's current cadence; it is frozen onto the
// interview at start.
func (e *Engine) screenshotInterval(ctx context.Context, applicationID int64) (int, error) {
	win, err := e.store.GetApplicationWindow(ctx, applicationID)
	if err != nil && !errors.Is(err, model.ErrNoRecord) {
		return 0, fmt.Errorf("get application window: %w", err)
	}
	if win != nil && win.ScreenshotInterval > 0 {
		return win.ScreenshotInterval, nil
	}
	return e.cfg.DefaultScreenshotInterval, nil
}

// End completes an active interview. Ending an interview that is already
// terminal returns it unchanged so retries are safe.
func (e *Engine) End(ctx context.Context, interviewID int64) (*model.Interview, error) {
	var out *model.Interview
	err := e.withInterview(ctx, interviewID, func(ctx context.Context, iv *model.Interview) error {
		if iv.Status.IsTerminal() {
			out = iv
			return nil
		}
		if iv.Status != model.SessionStatusActive {
			return &TransitionError{From: iv.Status, To: model.SessionStatusCompleted}
		}

		var err error
		out, err = e.terminate(ctx, iv, model.SessionStatusCompleted, model.TerminationCompleted)
		return err
	})
	return out, err
}

// Expire closes an interview whose InterviewEndDate has passed, whether or
// not it was ever started. Already terminal interviews are returned unchanged.
func (e *Engine) Expire(ctx context.Context, interviewID int64) (*model.Interview, error) {
	var out *model.Interview
	err := e.withInterview(ctx, interviewID, func(ctx context.Context, iv *model.Interview) error {
		if iv.Status.IsTerminal() {
			out = iv
			return nil
		}
		if !e.now().After(iv.InterviewEndDate) {
			return &TransitionError{From: iv.Status, To: model.SessionStatusExpired, Reason: "interview window still open"}
		}

		var err error
		out, err = e.terminate(ctx, iv, model.SessionStatusExpired, model.TerminationExpired)
		return err
	})
	return out, err
}

func (e *Engine) terminate(ctx context.Context, iv *model.Interview, to model.SessionStatus, reason model.TerminationReason) (*model.Interview, error) {
	from := iv.Status
	now := e.now()

	if err := e.store.MarkTerminated(ctx, iv.InterviewID, from, to, now, reason); err != nil {
		if !errors.Is(err, model.ErrStaleState) {
			return nil, fmt.Errorf("mark terminated: %w", err)
		}
		// Another instance got there first; report what it left behind.
		cur, err := e.load(ctx, iv.InterviewID)
		if err != nil {
			return nil, err
		}
		if cur.Status.IsTerminal() {
			return cur, nil
		}
		return nil, &TransitionError{From: cur.Status, To: to, Reason: "state changed concurrently"}
	}

	iv.Status = to
	iv.EndedAt = &now
	iv.IsActive = false
	iv.TerminationReason = &reason
	e.applied(ctx, iv, from, now)
	return iv, nil
}

func (e *Engine) applied(ctx context.Context, iv *model.Interview, from model.SessionStatus, at time.Time) {
	metrics.ObserveTransition(string(from), string(iv.Status))
	e.logger.Sugar().Infow("interview transition",
		"interview_id", iv.InterviewID, "from", from, "to", iv.Status)
	e.emit(ctx, iv, at)
}

// ExpireDue expires every interview past its end date and returns how many
// of them are expired afterwards. One bad interview does not stop the rest.
func (e *Engine) ExpireDue(ctx context.Context) (int, error) {
	ids, err := e.store.ListDueInterviews(ctx, e.now(), e.cfg.SweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list due interviews: %w", err)
	}

	expired := 0
	var errs []error
	for _, id := range ids {
		iv, err := e.Expire(ctx, id)
		if err != nil {
			e.logger.Sugar().Warnw("expire interview", "interview_id", id, "err", err)
			errs = append(errs, fmt.Errorf("interview %d: %w", id, err))
			continue
		}
		if iv.Status == model.SessionStatusExpired {
			expired++
		}
	}
	return expired, errors.Join(errs...)
}
