package model

import "time"

type InterviewScore struct {
	ScoreID        int64                  `json:"score_id" db:"score_id"`
	InterviewID    int64                  `json:"interview_id" db:"interview_id"`
	Communication  float64                `json:"communication" db:"communication"`
	Technical      float64                `json:"technical" db:"technical"`
	ProblemSolving float64                `json:"problem_solving" db:"problem_solving"`
	CulturalFit    float64                `json:"cultural_fit" db:"cultural_fit"`
	Total          float64                `json:"total" db:"total"`
	Detail         map[string]interface{} `json:"detail" db:"detail"` // JSONB
	CreatedAt      time.Time              `json:"created_at" db:"created_at"`
}

// SubmitScoreReq uses pointers so a missing dimension is a bind error, not a zero.
type SubmitScoreReq struct {
	Communication  *float64               `json:"communication" binding:"required"`
	Technical      *float64               `json:"technical" binding:"required"`
	ProblemSolving *float64               `json:"problem_solving" binding:"required"`
	CulturalFit    *float64               `json:"cultural_fit" binding:"required"`
	Detail         map[string]interface{} `json:"detail"`
}
