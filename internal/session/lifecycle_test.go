package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhishek622/interviewSession/internal/session/sessiontest"
	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	f := setupEngine(t)
	iv := f.scheduled(t)
	assertActiveInvariant(t, iv)

	f.clock.Set(at(9, 2, 0))
	started, err := f.engine.Start(context.Background(), iv.InterviewID)
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusActive, started.Status)
	require.NotNil(t, started.ActualStartedAt)
	assert.Equal(t, at(9, 2, 0), *started.ActualStartedAt)
	assert.Equal(t, 30, started.ScreenshotInterval)

	stored := f.reload(t, iv.InterviewID)
	assert.True(t, stored.IsActive)
	assertActiveInvariant(t, stored)
	// starting does not touch the application
	assert.Equal(t, model.ApplicationStatusInterviewScheduled, f.store.ApplicationStatus(testApp))
}

func TestStart_Window(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "too early", now: at(8, 49, 59), wantErr: ErrInvalidTransition},
		{name: "early join edge", now: at(8, 50, 0)},
		{name: "late but before end date", now: at(9, 59, 0)},
		{name: "after end date", now: at(10, 0, 1), wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupEngine(t)
			iv := f.scheduled(t)
			f.clock.Set(tt.now)

			_, err := f.engine.Start(context.Background(), iv.InterviewID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, model.SessionStatusScheduled, f.reload(t, iv.InterviewID).Status)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStart_ConcurrentOnlyOneWins(t *testing.T) {
	f := setupEngine(t)
	iv := f.scheduled(t)
	f.clock.Set(at(9, 0, 0))

	const callers = 16
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		losses int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.Start(context.Background(), iv.InterviewID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrAlreadyActive):
				losses++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, losses)
	stored := f.reload(t, iv.InterviewID)
	require.NotNil(t, stored.ActualStartedAt)
	assert.Equal(t, at(9, 0, 0), *stored.ActualStartedAt)
}

// startRacingStore lets another writer move the interview between the
// engine's read and its conditional start.
type startRacingStore struct {
	*sessiontest.Store
	to model.SessionStatus
}

func (s startRacingStore) MarkStarted(ctx context.Context, interviewID int64, startedAt time.Time, screenshotInterval int) error {
	s.ForceStatus(interviewID, s.to, startedAt.Add(-time.Second))
	return s.Store.MarkStarted(ctx, interviewID, startedAt, screenshotInterval)
}

func TestStart_LostCompareAndSwap(t *testing.T) {
	tests := []struct {
		name    string
		other   model.SessionStatus
		wantErr error
	}{
		{name: "other instance started it", other: model.SessionStatusActive, wantErr: ErrAlreadyActive},
		{name: "other instance expired it", other: model.SessionStatusExpired, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupEngine(t)
			iv := f.scheduled(t)
			f.engine.store = startRacingStore{Store: f.store, to: tt.other}
			f.clock.Set(at(9, 0, 0))

			_, err := f.engine.Start(context.Background(), iv.InterviewID)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.other == model.SessionStatusExpired {
				assert.NotErrorIs(t, err, ErrAlreadyActive)
				var te *TransitionError
				require.ErrorAs(t, err, &te)
				assert.Equal(t, model.SessionStatusExpired, te.From)
			}
			assert.Equal(t, tt.other, f.reload(t, iv.InterviewID).Status)
		})
	}
}

func TestStart_NotFound(t *testing.T) {
	f := setupEngine(t)
	_, err := f.engine.Start(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnd(t *testing.T) {
	f := setupEngine(t)
	iv := f.active(t)

	f.clock.Set(at(9, 40, 0))
	ended, err := f.engine.End(context.Background(), iv.InterviewID)
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusCompleted, ended.Status)
	require.NotNil(t, ended.EndedAt)
	assert.Equal(t, at(9, 40, 0), *ended.EndedAt)
	require.NotNil(t, ended.TerminationReason)
	assert.Equal(t, model.TerminationCompleted, *ended.TerminationReason)

	stored := f.reload(t, iv.InterviewID)
	assert.False(t, stored.IsActive)
	assertActiveInvariant(t, stored)
	assert.Equal(t, model.ApplicationStatusInterviewCompleted, f.store.ApplicationStatus(testApp))
}

func TestEnd_SecondCallIsNoOp(t *testing.T) {
	f := setupEngine(t)
	iv := f.active(t)
	ctx := context.Background()

	f.clock.Set(at(9, 40, 0))
	first, err := f.engine.End(ctx, iv.InterviewID)
	require.NoError(t, err)

	f.clock.Set(at(9, 41, 0))
	second, err := f.engine.End(ctx, iv.InterviewID)
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusCompleted, second.Status)
	assert.Equal(t, *first.EndedAt, *second.EndedAt)
	// the projection happened once: scheduled, then completed
	assert.Equal(t, []model.ApplicationStatus{
		model.ApplicationStatusInterviewScheduled,
		model.ApplicationStatusInterviewCompleted,
	}, f.store.StatusWrites)
}

func TestEnd_BeforeStart(t *testing.T) {
	f := setupEngine(t)
	iv := f.scheduled(t)

	_, err := f.engine.End(context.Background(), iv.InterviewID)
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.SessionStatusScheduled, te.From)
	assert.Equal(t, model.SessionStatusCompleted, te.To)
	assert.Contains(t, err.Error(), "scheduled -> completed")
}

func TestExpire_NeverStarted(t *testing.T) {
	f := setupEngine(t)
	iv := f.scheduled(t)
	ctx := context.Background()

	f.clock.Set(at(10, 5, 0))
	n, err := f.engine.ExpireDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored := f.reload(t, iv.InterviewID)
	assert.Equal(t, model.SessionStatusExpired, stored.Status)
	assert.Nil(t, stored.ActualStartedAt)
	assertActiveInvariant(t, stored)
	assert.Equal(t, model.ApplicationStatusInterviewCompleted, f.store.ApplicationStatus(testApp))

	f.clock.Set(at(10, 6, 0))
	_, err = f.engine.Start(ctx, iv.InterviewID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExpire_Active(t *testing.T) {
	f := setupEngine(t)
	iv := f.active(t)

	f.clock.Set(at(10, 1, 0))
	expired, err := f.engine.Expire(context.Background(), iv.InterviewID)
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusExpired, expired.Status)
	require.NotNil(t, expired.TerminationReason)
	assert.Equal(t, model.TerminationExpired, *expired.TerminationReason)
	assert.False(t, expired.IsActive)
	assertActiveInvariant(t, f.reload(t, iv.InterviewID))
}

func TestExpire_NotDue(t *testing.T) {
	f := setupEngine(t)
	iv := f.active(t)

	f.clock.Set(at(9, 59, 59))
	_, err := f.engine.Expire(context.Background(), iv.InterviewID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.SessionStatusActive, f.reload(t, iv.InterviewID).Status)
}

func TestExpire_AfterCompleted(t *testing.T) {
	f := setupEngine(t)
	iv := f.active(t)
	ctx := context.Background()

	f.clock.Set(at(9, 50, 0))
	_, err := f.engine.End(ctx, iv.InterviewID)
	require.NoError(t, err)

	f.clock.Set(at(10, 5, 0))
	got, err := f.engine.Expire(ctx, iv.InterviewID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, got.Status)

	n, err := f.engine.ExpireDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEndRacesSweep(t *testing.T) {
	f := setupEngine(t)
	iv := f.active(t)
	f.clock.Set(at(10, 0, 30))

	var (
		wg      sync.WaitGroup
		results [2]*model.Interview
		errs    [2]error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = f.engine.End(context.Background(), iv.InterviewID)
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = f.engine.Expire(context.Background(), iv.InterviewID)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, results[0].Status, results[1].Status)
	assert.Equal(t, *results[0].EndedAt, *results[1].EndedAt)
	assert.True(t, results[0].Status.IsTerminal())
}

// racingStore lets another writer terminate the interview between the
// engine's read and its conditional update.
type racingStore struct {
	*sessiontest.Store
}

func (s racingStore) MarkTerminated(ctx context.Context, interviewID int64, from, to model.SessionStatus, endedAt time.Time, reason model.TerminationReason) error {
	s.ForceStatus(interviewID, model.SessionStatusExpired, endedAt.Add(-time.Second))
	return s.Store.MarkTerminated(ctx, interviewID, from, to, endedAt, reason)
}

func TestEnd_LosesToOtherInstance(t *testing.T) {
	f := setupEngine(t)
	iv := f.active(t)
	f.engine.store = racingStore{f.store}

	f.clock.Set(at(10, 0, 30))
	got, err := f.engine.End(context.Background(), iv.InterviewID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusExpired, got.Status)
	assert.Equal(t, at(10, 0, 29), *got.EndedAt)
}

func TestExpireDue_ContinuesPastFailures(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	f.store.AddApplication(8, at(10, 0, 0), 30)

	first := f.scheduled(t)
	second, err := f.engine.Schedule(ctx, 8, at(9, 0, 0))
	require.NoError(t, err)

	f.clock.Set(at(10, 5, 0))
	f.store.FailNext = errors.New("connection reset")
	n, err := f.engine.ExpireDue(ctx)
	assert.Error(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, model.SessionStatusScheduled, f.reload(t, first.InterviewID).Status)
	assert.Equal(t, model.SessionStatusExpired, f.reload(t, second.InterviewID).Status)

	// the next sweep picks up what the failed one left
	n, err = f.engine.ExpireDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
