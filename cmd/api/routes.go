package main

import (
	"net/http"

	"github.com/abhishek622/interviewSession/internal/auth"
	"github.com/abhishek622/interviewSession/internal/metrics"
	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.requestLogger())
	r.Use(app.cors())

	r.GET("/healthz", func(c *gin.Context) {
		if err := app.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")

	// candidate routes: possession of the link is the credential
	sessions := v1.Group("/sessions/:link")
	{
		sessions.GET("", app.Handler.GetSession)
		sessions.POST("/start", app.Handler.StartSession)
		sessions.POST("/end", app.Handler.EndSession)
		sessions.POST("/screenshots", app.Handler.SubmitScreenshot)
		sessions.POST("/recordings", app.Handler.SubmitRecording)
	}

	recruiter := v1.Group("/interviews")
	recruiter.Use(app.RequireRole(auth.RoleRecruiter))
	{
		recruiter.POST("", app.Handler.ScheduleInterview)
		recruiter.GET("/:id", app.Handler.GetInterview)
	}

	scorer := v1.Group("/interviews/:id")
	scorer.Use(app.RequireRole(auth.RoleScorer))
	{
		scorer.PUT("/summary", app.Handler.AttachSummary)
		scorer.POST("/score", app.Handler.SubmitScore)
	}

	return r
}
