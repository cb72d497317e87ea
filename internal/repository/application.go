package repository

import (
	"context"
	"fmt"

	"github.com/abhishek622/interviewSession/pkg/model"
)

// GetApplicationWindow reads the owning job's interview end date and
// screenshot cadence for an application.
func (r *Repository) GetApplicationWindow(ctx context.Context, applicationID int64) (*model.ApplicationWindow, error) {
	const q = `
SELECT a.application_id, j.job_id, j.interview_end_date, j.screenshot_interval
FROM applications a
JOIN jobs j ON j.job_id = a.job_id
WHERE a.application_id = $1
`
	var w model.ApplicationWindow
	err := r.db.QueryRow(ctx, q, applicationID).Scan(&w.ApplicationID, &w.JobID, &w.InterviewEndDate, &w.ScreenshotInterval)
	if err != nil {
		return nil, mapErr(err)
	}
	return &w, nil
}

func (r *Repository) UpdateApplicationStatus(ctx context.Context, applicationID int64, status model.ApplicationStatus) error {
	const q = `UPDATE applications SET status = $2, updated_at = now() WHERE application_id = $1`
	tag, err := r.db.Exec(ctx, q, applicationID, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}
	return nil
}
