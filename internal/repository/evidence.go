package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/jackc/pgx/v5"
)

// HasScreenshotWithin reports whether any screenshot lies strictly less than
// window away from at, on either side.
func (r *Repository) HasScreenshotWithin(ctx context.Context, interviewID int64, at time.Time, window time.Duration) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM screenshots
	WHERE interview_id = $1 AND taken_at > $2 AND taken_at < $3
)
`
	var exists bool
	if err := r.db.QueryRow(ctx, q, interviewID, at.Add(-window), at.Add(window)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check screenshot window: %w", err)
	}
	return exists, nil
}

func (r *Repository) InsertScreenshot(ctx context.Context, s *model.Screenshot) (int64, error) {
	const q = `
INSERT INTO screenshots (interview_id, image_url, taken_at, created_at)
VALUES ($1, $2, $3, $4) RETURNING screenshot_id
`
	var id int64
	if err := r.db.QueryRow(ctx, q, s.InterviewID, s.ImageURL, s.TakenAt, s.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert screenshot: %w", mapErr(err))
	}
	return id, nil
}

func (r *Repository) ListScreenshots(ctx context.Context, interviewID int64) ([]model.Screenshot, error) {
	const q = `
SELECT screenshot_id, interview_id, image_url, taken_at, created_at
FROM screenshots WHERE interview_id = $1
ORDER BY taken_at, screenshot_id
`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query screenshots: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Screenshot])
	if err != nil {
		return nil, fmt.Errorf("scan screenshots: %w", err)
	}
	return out, nil
}

func (r *Repository) HasRecording(ctx context.Context, interviewID int64, kind model.RecordingKind, segmentAt time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM interview_recordings
	WHERE interview_id = $1 AND kind = $2 AND segment_at = $3
)
`
	var exists bool
	if err := r.db.QueryRow(ctx, q, interviewID, kind, segmentAt).Scan(&exists); err != nil {
		return false, fmt.Errorf("check recording: %w", err)
	}
	return exists, nil
}

func (r *Repository) InsertRecording(ctx context.Context, rec *model.Recording) (int64, error) {
	const q = `
INSERT INTO interview_recordings (interview_id, kind, url, segment_at, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING recording_id
`
	var id int64
	if err := r.db.QueryRow(ctx, q, rec.InterviewID, rec.Kind, rec.URL, rec.SegmentAt, rec.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert recording: %w", mapErr(err))
	}
	return id, nil
}

func (r *Repository) ListRecordings(ctx context.Context, interviewID int64) ([]model.Recording, error) {
	const q = `
SELECT recording_id, interview_id, kind, url, segment_at, created_at
FROM interview_recordings WHERE interview_id = $1
ORDER BY segment_at, recording_id
`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query recordings: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Recording])
	if err != nil {
		return nil, fmt.Errorf("scan recordings: %w", err)
	}
	return out, nil
}
