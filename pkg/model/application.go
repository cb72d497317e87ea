package model

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending            ApplicationStatus = "PENDING"
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusInterviewCompleted ApplicationStatus = "INTERVIEW_COMPLETED"
	ApplicationStatusShortlisted        ApplicationStatus = "SHORTLISTED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"
)

// ApplicationWindow is the slice of an Application and its Job the engine needs.
type ApplicationWindow struct {
	ApplicationID      int64     `db:"application_id"`
	JobID              int64     `db:"job_id"`
	InterviewEndDate   time.Time `db:"interview_end_date"`
	ScreenshotInterval int       `db:"screenshot_interval"`
}

// TransitionEvent is the only payload the CRUD layer needs to update an Application.
type TransitionEvent struct {
	InterviewID   int64         `json:"interview_id"`
	ApplicationID int64         `json:"application_id"`
	NewState      SessionStatus `json:"new_state"`
	Timestamp     time.Time     `json:"timestamp"`
}
