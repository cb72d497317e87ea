package projector

import (
	"context"

	"github.com/abhishek622/interviewSession/pkg/model"
	"go.uber.org/zap"
)

// ApplicationUpdater writes the owning Application's status.
type ApplicationUpdater interface {
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status model.ApplicationStatus) error
}

// Publisher forwards the raw transition event to an outside consumer.
type Publisher interface {
	Publish(ctx context.Context, ev model.TransitionEvent) error
}

// Projector turns interview transitions into Application status changes. It
// never promotes past INTERVIEW_COMPLETED; shortlisting is a recruiter call.
type Projector struct {
	updater    ApplicationUpdater
	publishers []Publisher
	logger     *zap.Logger
}

func New(updater ApplicationUpdater, logger *zap.Logger, publishers ...Publisher) *Projector {
	return &Projector{
		updater:    updater,
		publishers: publishers,
		logger:     logger,
	}
}

// StatusFor maps an interview state to the Application status it implies.
// The bool is false when the state has no Application effect.
func StatusFor(state model.SessionStatus) (model.ApplicationStatus, bool) {
	switch state {
	case model.SessionStatusScheduled:
		return model.ApplicationStatusInterviewScheduled, true
	case model.SessionStatusCompleted, model.SessionStatusExpired:
		return model.ApplicationStatusInterviewCompleted, true
	}
	return "", false
}

// Project applies ev. Failures are logged, not returned: the transition has
// already been committed and must not be undone by a downstream outage.
func (p *Projector) Project(ctx context.Context, ev model.TransitionEvent) {
	sugar := p.logger.Sugar()

	if status, ok := StatusFor(ev.NewState); ok && p.updater != nil {
		if err := p.updater.UpdateApplicationStatus(ctx, ev.ApplicationID, status); err != nil {
			sugar.Errorw("project application status",
				"interview_id", ev.InterviewID, "application_id", ev.ApplicationID,
				"status", status, "err", err)
		}
	}

	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, ev); err != nil {
			sugar.Warnw("publish transition", "interview_id", ev.InterviewID, "state", ev.NewState, "err", err)
		}
	}
}
