package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitScreenshot_OrderedByTakenAt(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	iv := f.active(t)

	// arrival order differs from capture order
	for _, ts := range []time.Time{at(9, 3, 0), at(9, 2, 30), at(9, 4, 0), at(9, 3, 30)} {
		_, err := f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://shots/"+ts.Format("150405")+".png", ts)
		require.NoError(t, err)
	}

	shots, err := f.store.ListScreenshots(ctx, iv.InterviewID)
	require.NoError(t, err)
	require.Len(t, shots, 4)
	want := []time.Time{at(9, 2, 30), at(9, 3, 0), at(9, 3, 30), at(9, 4, 0)}
	for i, s := range shots {
		assert.Equal(t, want[i], s.TakenAt)
	}
}

func TestSubmitScreenshot_Dedup(t *testing.T) {
	base := at(9, 5, 0)
	tests := []struct {
		name    string
		second  time.Time
		wantErr error
	}{
		{name: "same instant", second: base, wantErr: ErrDuplicateCapture},
		{name: "just inside half interval", second: base.Add(14 * time.Second), wantErr: ErrDuplicateCapture},
		{name: "just inside half interval, earlier", second: base.Add(-14 * time.Second), wantErr: ErrDuplicateCapture},
		{name: "just outside half interval", second: base.Add(16 * time.Second)},
		{name: "full interval", second: base.Add(30 * time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupEngine(t)
			ctx := context.Background()
			iv := f.active(t)

			_, err := f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://a.png", base)
			require.NoError(t, err)

			_, err = f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://b.png", tt.second)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			shots, err := f.store.ListScreenshots(ctx, iv.InterviewID)
			require.NoError(t, err)
			if tt.wantErr != nil {
				assert.Len(t, shots, 1)
			} else {
				assert.Len(t, shots, 2)
			}
		})
	}
}

func TestSubmitScreenshot_IntervalFrozenAtStart(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	iv := f.active(t)

	// recruiter shortens the cadence mid-interview
	f.store.SetScreenshotInterval(testApp, 4)

	_, err := f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://a.png", at(9, 5, 0))
	require.NoError(t, err)
	_, err = f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://b.png", at(9, 5, 10))
	assert.ErrorIs(t, err, ErrDuplicateCapture)
}

func TestSubmitScreenshot_NotActive(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	iv := f.scheduled(t)

	_, err := f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://a.png", at(8, 59, 0))
	assert.ErrorIs(t, err, ErrNotActive)

	f.clock.Set(at(9, 0, 0))
	_, err = f.engine.Start(ctx, iv.InterviewID)
	require.NoError(t, err)
	_, err = f.engine.End(ctx, iv.InterviewID)
	require.NoError(t, err)

	_, err = f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://late.png", at(9, 1, 0))
	assert.ErrorIs(t, err, ErrNotActive)

	shots, err := f.store.ListScreenshots(ctx, iv.InterviewID)
	require.NoError(t, err)
	assert.Empty(t, shots)
}

func TestSubmitScreenshot_InvalidInput(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	iv := f.active(t)

	_, err := f.engine.SubmitScreenshot(ctx, iv.InterviewID, " ", at(9, 3, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://a.png", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitScreenshot_StoreFailureIsNotPartial(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	iv := f.active(t)

	f.store.FailNext = errors.New("disk full")
	_, err := f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://a.png", at(9, 3, 0))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateCapture)

	// the retry is accepted because nothing was recorded
	_, err = f.engine.SubmitScreenshot(ctx, iv.InterviewID, "s3://a.png", at(9, 3, 0))
	assert.NoError(t, err)
}

func TestSubmitRecording(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()
	iv := f.active(t)
	seg := at(9, 2, 0)

	rec, err := f.engine.SubmitRecording(ctx, iv.InterviewID, model.RecordingKindAudio, "s3://rec/a1.ogg", seg)
	require.NoError(t, err)
	assert.NotZero(t, rec.RecordingID)
	assert.Equal(t, model.RecordingKindAudio, rec.Kind)

	_, err = f.engine.SubmitRecording(ctx, iv.InterviewID, model.RecordingKindAudio, "s3://rec/a1-retry.ogg", seg)
	assert.ErrorIs(t, err, ErrDuplicateCapture)

	_, err = f.engine.SubmitRecording(ctx, iv.InterviewID, model.RecordingKindScreen, "s3://rec/s1.webm", seg)
	assert.NoError(t, err)

	_, err = f.engine.SubmitRecording(ctx, iv.InterviewID, model.RecordingKind("HOLOGRAM"), "s3://x", seg)
	assert.ErrorIs(t, err, ErrInvalidInput)

	recs, err := f.store.ListRecordings(ctx, iv.InterviewID)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSubmitRecording_NotActive(t *testing.T) {
	f := setupEngine(t)
	iv := f.scheduled(t)

	_, err := f.engine.SubmitRecording(context.Background(), iv.InterviewID, model.RecordingKindVideo, "s3://v", at(9, 0, 0))
	assert.ErrorIs(t, err, ErrNotActive)
}
