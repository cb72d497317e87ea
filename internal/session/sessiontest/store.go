// Package sessiontest provides an in-memory session store for tests.
package sessiontest

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/abhishek622/interviewSession/pkg/model"
)

// Store mirrors the Postgres repository's semantics, including the
// compare-and-swap updates and unique constraints, without a database.
type Store struct {
	mu           sync.Mutex
	seq          int64
	windows      map[int64]model.ApplicationWindow
	appStatus    map[int64]model.ApplicationStatus
	interviews   map[int64]*model.Interview
	recordings   map[int64][]model.Recording
	screenshots  map[int64][]model.Screenshot
	scores       map[int64]*model.InterviewScore
	StatusWrites []model.ApplicationStatus

	// FailNext, when set, is returned by the next mutating call and cleared.
	FailNext error
}

func NewStore() *Store {
	return &Store{
		windows:     make(map[int64]model.ApplicationWindow),
		appStatus:   make(map[int64]model.ApplicationStatus),
		interviews:  make(map[int64]*model.Interview),
		recordings:  make(map[int64][]model.Recording),
		screenshots: make(map[int64][]model.Screenshot),
		scores:      make(map[int64]*model.InterviewScore),
	}
}

// AddApplication registers an application whose job closes interviews at
// endDate and captures a screenshot every interval seconds.
func (s *Store) AddApplication(applicationID int64, endDate time.Time, interval int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[applicationID] = model.ApplicationWindow{
		ApplicationID:      applicationID,
		JobID:              applicationID,
		InterviewEndDate:   endDate,
		ScreenshotInterval: interval,
	}
	s.appStatus[applicationID] = model.ApplicationStatusPending
}

// SetScreenshotInterval changes the job's cadence, as a recruiter edit would.
func (s *Store) SetScreenshotInterval(applicationID int64, interval int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[applicationID]
	w.ScreenshotInterval = interval
	s.windows[applicationID] = w
}

func (s *Store) ApplicationStatus(applicationID int64) model.ApplicationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appStatus[applicationID]
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) fail() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *Store) GetApplicationWindow(ctx context.Context, applicationID int64) (*model.ApplicationWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[applicationID]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return &w, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, applicationID int64, status model.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appStatus[applicationID]; !ok {
		return model.ErrNoRecord
	}
	s.appStatus[applicationID] = status
	s.StatusWrites = append(s.StatusWrites, status)
	return nil
}

func (s *Store) CreateInterview(ctx context.Context, iv *model.Interview) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return 0, err
	}
	for _, cur := range s.interviews {
		if cur.ApplicationID == iv.ApplicationID || cur.UniqueLink == iv.UniqueLink {
			return 0, model.ErrDuplicate
		}
	}
	cp := *iv
	cp.InterviewID = s.nextID()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.interviews[cp.InterviewID] = &cp
	return cp.InterviewID, nil
}

func (s *Store) get(interviewID int64) (*model.Interview, error) {
	iv, ok := s.interviews[interviewID]
	if !ok {
		return nil, model.ErrNoRecord
	}
	cp := *iv
	cp.InterviewEndDate = s.windows[iv.ApplicationID].InterviewEndDate
	return &cp, nil
}

func (s *Store) GetInterviewByID(ctx context.Context, interviewID int64) (*model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(interviewID)
}

func (s *Store) GetInterviewByLink(ctx context.Context, link string) (*model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, iv := range s.interviews {
		if iv.UniqueLink == link {
			return s.get(id)
		}
	}
	return nil, model.ErrNoRecord
}

func (s *Store) MarkStarted(ctx context.Context, interviewID int64, startedAt time.Time, screenshotInterval int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	iv, ok := s.interviews[interviewID]
	if !ok || iv.Status != model.SessionStatusScheduled || iv.ActualStartedAt != nil {
		return model.ErrStaleState
	}
	iv.Status = model.SessionStatusActive
	iv.IsActive = true
	iv.ActualStartedAt = &startedAt
	iv.ScreenshotInterval = screenshotInterval
	return nil
}

func (s *Store) MarkTerminated(ctx context.Context, interviewID int64, from, to model.SessionStatus, endedAt time.Time, reason model.TerminationReason) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	iv, ok := s.interviews[interviewID]
	if !ok || iv.Status != from || iv.EndedAt != nil {
		return model.ErrStaleState
	}
	iv.Status = to
	iv.IsActive = false
	iv.EndedAt = &endedAt
	iv.TerminationReason = &reason
	return nil
}

// ForceStatus rewrites an interview's status behind the engine's back, as a
// second instance would.
func (s *Store) ForceStatus(interviewID int64, status model.SessionStatus, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv := s.interviews[interviewID]
	iv.Status = status
	switch status {
	case model.SessionStatusActive:
		iv.ActualStartedAt = &at
		iv.IsActive = true
	case model.SessionStatusCompleted, model.SessionStatusExpired:
		iv.EndedAt = &at
		iv.IsActive = false
	}
}

func (s *Store) ListDueInterviews(ctx context.Context, now time.Time, limit int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id, iv := range s.interviews {
		if iv.Status.IsTerminal() {
			continue
		}
		if s.windows[iv.ApplicationID].InterviewEndDate.Before(now) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *Store) HasScreenshotWithin(ctx context.Context, interviewID int64, at time.Time, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lo, hi := at.Add(-window), at.Add(window)
	for _, sh := range s.screenshots[interviewID] {
		if sh.TakenAt.After(lo) && sh.TakenAt.Before(hi) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) InsertScreenshot(ctx context.Context, sh *model.Screenshot) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return 0, err
	}
	for _, cur := range s.screenshots[sh.InterviewID] {
		if cur.TakenAt.Equal(sh.TakenAt) {
			return 0, model.ErrDuplicate
		}
	}
	cp := *sh
	cp.ScreenshotID = s.nextID()
	s.screenshots[sh.InterviewID] = append(s.screenshots[sh.InterviewID], cp)
	return cp.ScreenshotID, nil
}

func (s *Store) ListScreenshots(ctx context.Context, interviewID int64) ([]model.Screenshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.Screenshot(nil), s.screenshots[interviewID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TakenAt.Before(out[j].TakenAt) })
	return out, nil
}

func (s *Store) HasRecording(ctx context.Context, interviewID int64, kind model.RecordingKind, segmentAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.recordings[interviewID] {
		if r.Kind == kind && r.SegmentAt.Equal(segmentAt) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) InsertRecording(ctx context.Context, r *model.Recording) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return 0, err
	}
	cp := *r
	cp.RecordingID = s.nextID()
	s.recordings[r.InterviewID] = append(s.recordings[r.InterviewID], cp)
	return cp.RecordingID, nil
}

func (s *Store) ListRecordings(ctx context.Context, interviewID int64) ([]model.Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.Recording(nil), s.recordings[interviewID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SegmentAt.Before(out[j].SegmentAt) })
	return out, nil
}

func (s *Store) UpdateSummary(ctx context.Context, interviewID int64, sum model.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	iv, ok := s.interviews[interviewID]
	if !ok {
		return model.ErrNoRecord
	}
	iv.AITranscript = &sum.Transcript
	iv.AISummary = &sum.Summary
	iv.Strengths = &sum.Strengths
	iv.Weaknesses = &sum.Weaknesses
	return nil
}

func (s *Store) InsertScore(ctx context.Context, sc *model.InterviewScore) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return 0, err
	}
	if _, ok := s.scores[sc.InterviewID]; ok {
		return 0, model.ErrDuplicate
	}
	cp := *sc
	cp.ScoreID = s.nextID()
	cp.Detail = maps.Clone(sc.Detail)
	s.scores[sc.InterviewID] = &cp
	total := sc.Total
	s.interviews[sc.InterviewID].OverallRating = &total
	return cp.ScoreID, nil
}

func (s *Store) GetScore(ctx context.Context, interviewID int64) (*model.InterviewScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.scores[interviewID]
	if !ok {
		return nil, model.ErrNoRecord
	}
	cp := *sc
	return &cp, nil
}

// ScoreCount returns how many score records exist for the interview.
func (s *Store) ScoreCount(interviewID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scores[interviewID]; ok {
		return 1
	}
	return 0
}
