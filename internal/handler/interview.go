package handler

import (
	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/abhishek622/interviewSession/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ScheduleInterview(c *gin.Context) {
	var req model.ScheduleInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	iv, err := h.Sessions.Schedule(c.Request.Context(), req.ApplicationID, req.ScheduledAt)
	if err != nil {
		h.writeError(c, "schedule interview", err)
		return
	}

	if claims := h.GetClaimsFromContext(c); claims != nil {
		h.Logger.Sugar().Infow("interview scheduled by recruiter", "interview_id", iv.InterviewID, "recruiter_id", claims.UserID)
	}
	response.Created(c, iv)
}

// GetInterview returns the full evidence and score bundle for review.
func (h *Handler) GetInterview(c *gin.Context) {
	id, ok := interviewIDParam(c)
	if !ok {
		return
	}

	bundle, err := h.Sessions.GetBundle(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "get interview", err)
		return
	}
	response.OK(c, bundle)
}
