package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/abhishek622/interviewSession/internal/auth"
	"github.com/abhishek622/interviewSession/internal/session"
	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/abhishek622/interviewSession/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionService is the interview session engine as seen from HTTP.
type SessionService interface {
	Schedule(ctx context.Context, applicationID int64, scheduledAt time.Time) (*model.Interview, error)
	Resolve(ctx context.Context, link string) (*model.Interview, error)
	StartByLink(ctx context.Context, link string) (*model.Interview, error)
	EndByLink(ctx context.Context, link string) (*model.Interview, error)
	SubmitScreenshot(ctx context.Context, interviewID int64, imageRef string, takenAt time.Time) (*model.Screenshot, error)
	SubmitRecording(ctx context.Context, interviewID int64, kind model.RecordingKind, ref string, segmentAt time.Time) (*model.Recording, error)
	SubmitScore(ctx context.Context, interviewID int64, in session.ScoreInput) (*model.InterviewScore, error)
	AttachSummary(ctx context.Context, interviewID int64, s model.Summary) error
	GetBundle(ctx context.Context, interviewID int64) (*model.InterviewBundle, error)
}

type Handler struct {
	Logger   *zap.Logger
	Sessions SessionService
}

// policyCodes maps refusals to the code returned in the error envelope.
var policyCodes = []struct {
	err  error
	code string
}{
	{session.ErrExpired, "EXPIRED"},
	{session.ErrAlreadyEnded, "ALREADY_ENDED"},
	{session.ErrAlreadyActive, "ALREADY_ACTIVE"},
	{session.ErrNotActive, "NOT_ACTIVE"},
	{session.ErrNotTerminal, "NOT_TERMINAL"},
	{session.ErrAlreadyScored, "ALREADY_SCORED"},
	{session.ErrDuplicateCapture, "DUPLICATE_CAPTURE"},
	{session.ErrInvalidTransition, "INVALID_TRANSITION"},
	{session.ErrAlreadyScheduled, "ALREADY_SCHEDULED"},
}

// writeError maps engine errors onto the response envelope. Anything not
// recognised is a storage failure: logged in full, reported generically.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		response.NotFound(c, "interview not found")
		return
	case errors.Is(err, session.ErrInvalidInput):
		response.ValidationError(c, err.Error())
		return
	}

	for _, p := range policyCodes {
		if errors.Is(err, p.err) {
			response.PolicyViolation(c, p.code, err.Error())
			return
		}
	}

	h.Logger.Sugar().Errorw(op+" failed", "path", c.Request.URL.Path, "err", err)
	response.InternalError(c, "")
}

func interviewIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid id format")
		return 0, false
	}
	return id, true
}

// GetClaimsFromContext returns the caller claims set by the auth middleware.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.CallerClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.CallerClaims)
	if !ok {
		return nil
	}
	return claims
}
