package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhishek622/interviewSession/internal/metrics"
	"github.com/abhishek622/interviewSession/pkg/model"
)

// SubmitScreenshot appends one screenshot to an active interview. Two
// screenshots closer than half the screenshot interval are one capture
// retried, so the later submission is refused.
func (e *Engine) SubmitScreenshot(ctx context.Context, interviewID int64, imageRef string, takenAt time.Time) (*model.Screenshot, error) {
	if strings.TrimSpace(imageRef) == "" {
		return nil, invalidInput("image reference is required")
	}
	if takenAt.IsZero() {
		return nil, invalidInput("taken_at is required")
	}

	var out *model.Screenshot
	err := e.withInterview(ctx, interviewID, func(ctx context.Context, iv *model.Interview) error {
		if iv.Status != model.SessionStatusActive {
			return ErrNotActive
		}

		if iv.ScreenshotInterval > 0 {
			window := time.Duration(iv.ScreenshotInterval) * time.Second / 2
			dup, err := e.store.HasScreenshotWithin(ctx, interviewID, takenAt, window)
			if err != nil {
				return fmt.Errorf("check screenshot window: %w", err)
			}
			if dup {
				return ErrDuplicateCapture
			}
		}

		s := &model.Screenshot{
			InterviewID: interviewID,
			ImageURL:    imageRef,
			TakenAt:     takenAt,
			CreatedAt:   e.now(),
		}
		id, err := e.store.InsertScreenshot(ctx, s)
		if err != nil {
			if errors.Is(err, model.ErrDuplicate) {
				return ErrDuplicateCapture
			}
			return fmt.Errorf("insert screenshot: %w", err)
		}
		s.ScreenshotID = id
		out = s
		return nil
	})
	metrics.ObserveCapture("SCREENSHOT", captureResult(err))
	return out, err
}

// SubmitRecording appends one recording segment to an active interview. The
// same kind and segment timestamp twice is a duplicate.
func (e *Engine) SubmitRecording(ctx context.Context, interviewID int64, kind model.RecordingKind, ref string, segmentAt time.Time) (*model.Recording, error) {
	if !kind.Valid() {
		return nil, invalidInput("unknown recording kind %q", kind)
	}
	if strings.TrimSpace(ref) == "" {
		return nil, invalidInput("recording reference is required")
	}
	if segmentAt.IsZero() {
		return nil, invalidInput("segment_at is required")
	}

	var out *model.Recording
	err := e.withInterview(ctx, interviewID, func(ctx context.Context, iv *model.Interview) error {
		if iv.Status != model.SessionStatusActive {
			return ErrNotActive
		}

		dup, err := e.store.HasRecording(ctx, interviewID, kind, segmentAt)
		if err != nil {
			return fmt.Errorf("check recording: %w", err)
		}
		if dup {
			return ErrDuplicateCapture
		}

		r := &model.Recording{
			InterviewID: interviewID,
			Kind:        kind,
			URL:         ref,
			SegmentAt:   segmentAt,
			CreatedAt:   e.now(),
		}
		id, err := e.store.InsertRecording(ctx, r)
		if err != nil {
			if errors.Is(err, model.ErrDuplicate) {
				return ErrDuplicateCapture
			}
			return fmt.Errorf("insert recording: %w", err)
		}
		r.RecordingID = id
		out = r
		return nil
	})
	metrics.ObserveCapture(string(kind), captureResult(err))
	return out, err
}

func captureResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrDuplicateCapture):
		return "duplicate"
	case errors.Is(err, ErrNotActive):
		return "not_active"
	}
	return "error"
}
