package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/abhishek622/interviewSession/internal/metrics"
	"github.com/abhishek622/interviewSession/pkg/model"
)

const (
	DimCommunication  = "communication"
	DimTechnical      = "technical"
	DimProblemSolving = "problem_solving"
	DimCulturalFit    = "cultural_fit"

	minScore = 0.0
	maxScore = 100.0
)

type ScoreInput struct {
	Communication  float64
	Technical      float64
	ProblemSolving float64
	CulturalFit    float64
	// Detail is stored as-is. A "weights" entry keyed by dimension replaces
	// the default equal weighting of the total.
	Detail map[string]interface{}
}

type dimension struct {
	name  string
	value float64
}

// dimensions keeps a fixed order so totals are reproducible to the last bit.
func (in ScoreInput) dimensions() []dimension {
	return []dimension{
		{DimCommunication, in.Communication},
		{DimTechnical, in.Technical},
		{DimProblemSolving, in.ProblemSolving},
		{DimCulturalFit, in.CulturalFit},
	}
}

// SubmitScore records the single terminal score of a finished interview.
// It must not be blindly retried: after an ambiguous failure re-read the
// bundle first.
func (e *Engine) SubmitScore(ctx context.Context, interviewID int64, in ScoreInput) (*model.InterviewScore, error) {
	for _, d := range in.dimensions() {
		if !(d.value >= minScore && d.value <= maxScore) {
			return nil, invalidInput("%s score %.2f outside %.0f..%.0f", d.name, d.value, minScore, maxScore)
		}
	}
	total, err := Total(in)
	if err != nil {
		return nil, err
	}

	var out *model.InterviewScore
	err = e.withInterview(ctx, interviewID, func(ctx context.Context, iv *model.Interview) error {
		if !iv.Status.IsTerminal() {
			return ErrNotTerminal
		}

		if _, err := e.store.GetScore(ctx, interviewID); err == nil {
			return ErrAlreadyScored
		} else if !errors.Is(err, model.ErrNoRecord) {
			return fmt.Errorf("get score: %w", err)
		}

		detail := make(map[string]interface{}, len(in.Detail)+1)
		maps.Copy(detail, in.Detail)
		if _, ok := detail["termination"]; !ok && iv.TerminationReason != nil {
			detail["termination"] = string(*iv.TerminationReason)
		}

		s := &model.InterviewScore{
			InterviewID:    interviewID,
			Communication:  in.Communication,
			Technical:      in.Technical,
			ProblemSolving: in.ProblemSolving,
			CulturalFit:    in.CulturalFit,
			Total:          total,
			Detail:         detail,
			CreatedAt:      e.now(),
		}
		id, err := e.store.InsertScore(ctx, s)
		if err != nil {
			if errors.Is(err, model.ErrDuplicate) {
				return ErrAlreadyScored
			}
			return fmt.Errorf("insert score: %w", err)
		}
		s.ScoreID = id
		out = s
		return nil
	})
	if err == nil {
		metrics.ObserveScore()
		e.logger.Sugar().Infow("interview scored", "interview_id", interviewID, "total", total)
	}
	return out, err
}

// Total is the mean of the four dimensions, equally weighted unless
// Detail["weights"] says otherwise.
func Total(in ScoreInput) (float64, error) {
	dims := in.dimensions()

	weights, err := weightsFrom(in.Detail)
	if err != nil {
		return 0, err
	}
	if weights == nil {
		sum := 0.0
		for _, d := range dims {
			sum += d.value
		}
		return finite(sum / float64(len(dims)))
	}

	// weights are relative; scaling by the largest keeps the sums finite
	var top float64
	for _, w := range weights {
		top = math.Max(top, w)
	}
	if top == 0 {
		return 0, invalidInput("weights must not all be zero")
	}

	var sum, wsum float64
	for _, d := range dims {
		w := weights[d.name] / top
		sum += d.value * w
		wsum += w
	}
	if wsum == 0 {
		return 0, invalidInput("weights must not all be zero")
	}
	return finite(sum / wsum)
}

func finite(total float64) (float64, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, invalidInput("total is not a finite number")
	}
	return total, nil
}

func weightsFrom(detail map[string]interface{}) (map[string]float64, error) {
	raw, ok := detail["weights"]
	if !ok || raw == nil {
		return nil, nil
	}

	out := make(map[string]float64)
	switch ws := raw.(type) {
	case map[string]float64:
		maps.Copy(out, ws)
	case map[string]interface{}:
		for k, v := range ws {
			f, ok := v.(float64)
			if !ok {
				return nil, invalidInput("weight %q is not a number", k)
			}
			out[k] = f
		}
	default:
		return nil, invalidInput("weights must be an object")
	}

	for k, w := range out {
		switch k {
		case DimCommunication, DimTechnical, DimProblemSolving, DimCulturalFit:
		default:
			return nil, invalidInput("unknown weight %q", k)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, invalidInput("weight %q is not finite", k)
		}
		if w < 0 {
			return nil, invalidInput("weight %q is negative", k)
		}
	}
	return out, nil
}

// AttachSummary overwrites the transcript and summary text. It may be called
// any number of times and does not depend on a score existing.
func (e *Engine) AttachSummary(ctx context.Context, interviewID int64, s model.Summary) error {
	return e.withInterview(ctx, interviewID, func(ctx context.Context, iv *model.Interview) error {
		if err := e.store.UpdateSummary(ctx, interviewID, s); err != nil {
			if errors.Is(err, model.ErrNoRecord) {
				return ErrNotFound
			}
			return fmt.Errorf("update summary: %w", err)
		}
		return nil
	})
}
