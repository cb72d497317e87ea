package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/jackc/pgx/v5"
)

const interviewCols = `
	i.interview_id, i.application_id, i.scheduled_at, j.interview_end_date,
	i.actual_started_at, i.ended_at, i.unique_link, i.is_active, i.status,
	i.termination_reason, i.screenshot_interval, i.ai_summary, i.ai_transcript,
	i.strengths, i.weaknesses, i.overall_rating, i.created_at, i.updated_at
FROM interviews i
JOIN applications a ON a.application_id = i.application_id
JOIN jobs j ON j.job_id = a.job_id
`

func scanInterview(row pgx.Row) (*model.Interview, error) {
	var e model.Interview
	err := row.Scan(
		&e.InterviewID, &e.ApplicationID, &e.ScheduledAt, &e.InterviewEndDate,
		&e.ActualStartedAt, &e.EndedAt, &e.UniqueLink, &e.IsActive, &e.Status,
		&e.TerminationReason, &e.ScreenshotInterval, &e.AISummary, &e.AITranscript,
		&e.Strengths, &e.Weaknesses, &e.OverallRating, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func (r *Repository) CreateInterview(ctx context.Context, iv *model.Interview) (int64, error) {
	const q = `
INSERT INTO interviews (
	application_id, scheduled_at, unique_link, status, is_active
) VALUES ($1, $2, $3, $4, false) RETURNING interview_id
`
	var id int64
	err := r.db.QueryRow(ctx, q, iv.ApplicationID, iv.ScheduledAt, iv.UniqueLink, iv.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert interview: %w", mapErr(err))
	}
	return id, nil
}

func (r *Repository) GetInterviewByID(ctx context.Context, interviewID int64) (*model.Interview, error) {
	const q = `SELECT` + interviewCols + `WHERE i.interview_id = $1`
	return scanInterview(r.db.QueryRow(ctx, q, interviewID))
}

func (r *Repository) GetInterviewByLink(ctx context.Context, link string) (*model.Interview, error) {
	const q = `SELECT` + interviewCols + `WHERE i.unique_link = $1`
	return scanInterview(r.db.QueryRow(ctx, q, link))
}

// MarkStarted is a compare-and-swap on status; it fails with ErrStaleState
// unless the interview is still scheduled.
func (r *Repository) MarkStarted(ctx context.Context, interviewID int64, startedAt time.Time, screenshotInterval int) error {
	const q = `
UPDATE interviews
SET status = $2, is_active = true, actual_started_at = $3, screenshot_interval = $4, updated_at = now()
WHERE interview_id = $1 AND status = $5 AND actual_started_at IS NULL
`
	tag, err := r.db.Exec(ctx, q, interviewID, model.SessionStatusActive, startedAt, screenshotInterval, model.SessionStatusScheduled)
	if err != nil {
		return fmt.Errorf("mark interview started: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStaleState
	}
	return nil
}

// MarkTerminated moves the interview from `from` to a terminal state, setting
// ended_at once.
func (r *Repository) MarkTerminated(ctx context.Context, interviewID int64, from, to model.SessionStatus, endedAt time.Time, reason model.TerminationReason) error {
	const q = `
UPDATE interviews
SET status = $2, is_active = false, ended_at = $3, termination_reason = $4, updated_at = now()
WHERE interview_id = $1 AND status = $5 AND ended_at IS NULL
`
	tag, err := r.db.Exec(ctx, q, interviewID, to, endedAt, reason, from)
	if err != nil {
		return fmt.Errorf("mark interview terminated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStaleState
	}
	return nil
}

func (r *Repository) ListDueInterviews(ctx context.Context, now time.Time, limit int) ([]int64, error) {
	const q = `
SELECT i.interview_id
FROM interviews i
JOIN applications a ON a.application_id = i.application_id
JOIN jobs j ON j.job_id = a.job_id
WHERE i.status IN ($1, $2) AND j.interview_end_date < $3
ORDER BY j.interview_end_date
LIMIT $4
`
	rows, err := r.db.Query(ctx, q, model.SessionStatusScheduled, model.SessionStatusActive, now, limit)
	if err != nil {
		return nil, fmt.Errorf("query due interviews: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect due interviews: %w", err)
	}
	return ids, nil
}

func (r *Repository) UpdateSummary(ctx context.Context, interviewID int64, s model.Summary) error {
	const q = `
UPDATE interviews
SET ai_transcript = $2, ai_summary = $3, strengths = $4, weaknesses = $5, updated_at = now()
WHERE interview_id = $1
`
	tag, err := r.db.Exec(ctx, q, interviewID, s.Transcript, s.Summary, s.Strengths, s.Weaknesses)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}
	return nil
}

// DeleteInterview removes the interview; recordings, screenshots and the
// score go with it through ON DELETE CASCADE.
func (r *Repository) DeleteInterview(ctx context.Context, interviewID int64) error {
	const q = `DELETE FROM interviews WHERE interview_id = $1`
	tag, err := r.db.Exec(ctx, q, interviewID)
	if err != nil {
		return fmt.Errorf("delete interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}
	return nil
}
