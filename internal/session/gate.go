package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/interviewSession/pkg/model"
)

// Resolve maps a unique link to its interview and refuses links that can no
// longer enter a live session. It has no side effects.
func (e *Engine) Resolve(ctx context.Context, link string) (*model.Interview, error) {
	iv, err := e.lookup(ctx, link)
	if err != nil {
		return nil, err
	}
	if err := e.admit(iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func (e *Engine) lookup(ctx context.Context, link string) (*model.Interview, error) {
	if link == "" {
		return nil, ErrNotFound
	}
	iv, err := e.store.GetInterviewByLink(ctx, link)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get interview by link: %w", err)
	}
	return iv, nil
}

func (e *Engine) admit(iv *model.Interview) error {
	if iv.EndedAt != nil {
		return ErrAlreadyEnded
	}
	if iv.ActualStartedAt == nil && e.now().After(iv.ScheduledAt.Add(e.cfg.GracePeriod)) {
		return ErrExpired
	}
	return nil
}

// StartByLink gates the link and starts the session.
func (e *Engine) StartByLink(ctx context.Context, link string) (*model.Interview, error) {
	iv, err := e.Resolve(ctx, link)
	if err != nil {
		return nil, err
	}
	return e.Start(ctx, iv.InterviewID)
}

// EndByLink gates the link and ends the session. A retry against a link whose
// session already ended gets the terminal record back instead of an error.
func (e *Engine) EndByLink(ctx context.Context, link string) (*model.Interview, error) {
	iv, err := e.lookup(ctx, link)
	if err != nil {
		return nil, err
	}
	if err := e.admit(iv); err != nil && !errors.Is(err, ErrAlreadyEnded) {
		return nil, err
	}
	return e.End(ctx, iv.InterviewID)
}
