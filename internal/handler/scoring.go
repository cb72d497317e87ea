package handler

import (
	"github.com/abhishek622/interviewSession/internal/session"
	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/abhishek622/interviewSession/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) AttachSummary(c *gin.Context) {
	id, ok := interviewIDParam(c)
	if !ok {
		return
	}

	var req model.AttachSummaryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.Sessions.AttachSummary(c.Request.Context(), id, model.Summary{
		Transcript: req.Transcript,
		Summary:    req.Summary,
		Strengths:  req.Strengths,
		Weaknesses: req.Weaknesses,
	})
	if err != nil {
		h.writeError(c, "attach summary", err)
		return
	}
	response.Message(c, "summary saved")
}

func (h *Handler) SubmitScore(c *gin.Context) {
	id, ok := interviewIDParam(c)
	if !ok {
		return
	}

	var req model.SubmitScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	score, err := h.Sessions.SubmitScore(c.Request.Context(), id, session.ScoreInput{
		Communication:  *req.Communication,
		Technical:      *req.Technical,
		ProblemSolving: *req.ProblemSolving,
		CulturalFit:    *req.CulturalFit,
		Detail:         req.Detail,
	})
	if err != nil {
		h.writeError(c, "submit score", err)
		return
	}
	response.Created(c, score)
}
