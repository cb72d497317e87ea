package repository

import (
	"context"
	"fmt"

	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/jackc/pgx/v5"
)

// InsertScore stores the score and copies the total onto the interview's
// overall_rating in one transaction.
func (r *Repository) InsertScore(ctx context.Context, s *model.InterviewScore) (int64, error) {
	detail := s.Detail
	if detail == nil {
		detail = map[string]interface{}{}
	}

	var id int64
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const q = `
INSERT INTO interview_scores (
	interview_id, communication, technical, problem_solving, cultural_fit, total, detail, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING score_id
`
		err := tx.QueryRow(ctx, q,
			s.InterviewID, s.Communication, s.Technical, s.ProblemSolving, s.CulturalFit, s.Total, detail, s.CreatedAt,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert score: %w", mapErr(err))
		}

		const q2 = `UPDATE interviews SET overall_rating = $2, updated_at = now() WHERE interview_id = $1`
		if _, err := tx.Exec(ctx, q2, s.InterviewID, s.Total); err != nil {
			return fmt.Errorf("update overall rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) GetScore(ctx context.Context, interviewID int64) (*model.InterviewScore, error) {
	const q = `
SELECT score_id, interview_id, communication, technical, problem_solving, cultural_fit, total, detail, created_at
FROM interview_scores WHERE interview_id = $1
`
	var s model.InterviewScore
	err := r.db.QueryRow(ctx, q, interviewID).Scan(
		&s.ScoreID, &s.InterviewID, &s.Communication, &s.Technical, &s.ProblemSolving,
		&s.CulturalFit, &s.Total, &s.Detail, &s.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}
