package model

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusExpired   SessionStatus = "expired"
)

// IsTerminal reports whether no further lifecycle transition is possible.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusExpired
}

type TerminationReason string

const (
	TerminationCompleted TerminationReason = "completed"
	TerminationExpired   TerminationReason = "expired"
)

type Interview struct {
	InterviewID        int64              `json:"interview_id" db:"interview_id"`
	ApplicationID      int64              `json:"application_id" db:"application_id"`
	ScheduledAt        time.Time          `json:"scheduled_at" db:"scheduled_at"`
	InterviewEndDate   time.Time          `json:"interview_end_date" db:"interview_end_date"`
	ActualStartedAt    *time.Time         `json:"actual_started_at" db:"actual_started_at"`
	EndedAt            *time.Time         `json:"ended_at" db:"ended_at"`
	UniqueLink         string             `json:"unique_link" db:"unique_link"`
	IsActive           bool               `json:"is_active" db:"is_active"`
	Status             SessionStatus      `json:"status" db:"status"`
	TerminationReason  *TerminationReason `json:"termination_reason" db:"termination_reason"`
	ScreenshotInterval int                `json:"screenshot_interval" db:"screenshot_interval"` // seconds, copied at start
	AISummary          *string            `json:"ai_summary" db:"ai_summary"`
	AITranscript       *string            `json:"ai_transcript" db:"ai_transcript"`
	Strengths          *string            `json:"strengths" db:"strengths"`
	Weaknesses         *string            `json:"weaknesses" db:"weaknesses"`
	OverallRating      *float64           `json:"overall_rating" db:"overall_rating"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// Summary is the text produced by the transcription/scoring collaborator.
type Summary struct {
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

// InterviewBundle is everything a recruiter reviews for one interview.
type InterviewBundle struct {
	Interview   Interview       `json:"interview"`
	Recordings  []Recording     `json:"recordings"`
	Screenshots []Screenshot    `json:"screenshots"`
	Score       *InterviewScore `json:"score"`
}

type ScheduleInterviewReq struct {
	ApplicationID int64     `json:"application_id" binding:"required"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
}

type AttachSummaryReq struct {
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

// SessionView is what a candidate holding the link may see.
type SessionView struct {
	InterviewID        int64         `json:"interview_id"`
	Status             SessionStatus `json:"status"`
	ScheduledAt        time.Time     `json:"scheduled_at"`
	InterviewEndDate   time.Time     `json:"interview_end_date"`
	ActualStartedAt    *time.Time    `json:"actual_started_at"`
	ScreenshotInterval int           `json:"screenshot_interval"`
}
