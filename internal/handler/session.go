package handler

import (
	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/abhishek622/interviewSession/pkg/response"
	"github.com/gin-gonic/gin"
)

func sessionView(iv *model.Interview) model.SessionView {
	return model.SessionView{
		InterviewID:        iv.InterviewID,
		Status:             iv.Status,
		ScheduledAt:        iv.ScheduledAt,
		InterviewEndDate:   iv.InterviewEndDate,
		ActualStartedAt:    iv.ActualStartedAt,
		ScreenshotInterval: iv.ScreenshotInterval,
	}
}

func (h *Handler) GetSession(c *gin.Context) {
	iv, err := h.Sessions.Resolve(c.Request.Context(), c.Param("link"))
	if err != nil {
		h.writeError(c, "resolve session", err)
		return
	}
	response.OK(c, sessionView(iv))
}

func (h *Handler) StartSession(c *gin.Context) {
	iv, err := h.Sessions.StartByLink(c.Request.Context(), c.Param("link"))
	if err != nil {
		h.writeError(c, "start session", err)
		return
	}
	response.OK(c, sessionView(iv))
}

func (h *Handler) EndSession(c *gin.Context) {
	iv, err := h.Sessions.EndByLink(c.Request.Context(), c.Param("link"))
	if err != nil {
		h.writeError(c, "end session", err)
		return
	}
	response.OK(c, gin.H{"interview_id": iv.InterviewID, "status": iv.Status, "ended_at": iv.EndedAt})
}

func (h *Handler) SubmitScreenshot(c *gin.Context) {
	var req model.SubmitScreenshotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	iv, err := h.Sessions.Resolve(c.Request.Context(), c.Param("link"))
	if err != nil {
		h.writeError(c, "resolve session", err)
		return
	}

	shot, err := h.Sessions.SubmitScreenshot(c.Request.Context(), iv.InterviewID, req.ImageURL, req.TakenAt)
	if err != nil {
		h.writeError(c, "submit screenshot", err)
		return
	}
	response.Created(c, shot)
}

func (h *Handler) SubmitRecording(c *gin.Context) {
	var req model.SubmitRecordingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	iv, err := h.Sessions.Resolve(c.Request.Context(), c.Param("link"))
	if err != nil {
		h.writeError(c, "resolve session", err)
		return
	}

	rec, err := h.Sessions.SubmitRecording(c.Request.Context(), iv.InterviewID, req.Kind, req.URL, req.SegmentAt)
	if err != nil {
		h.writeError(c, "submit recording", err)
		return
	}
	response.Created(c, rec)
}
