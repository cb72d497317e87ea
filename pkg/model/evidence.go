package model

import "time"

type RecordingKind string

const (
	RecordingKindAudio  RecordingKind = "AUDIO"
	RecordingKindVideo  RecordingKind = "VIDEO"
	RecordingKindScreen RecordingKind = "SCREEN"
)

func (k RecordingKind) Valid() bool {
	switch k {
	case RecordingKindAudio, RecordingKindVideo, RecordingKindScreen:
		return true
	}
	return false
}

type Recording struct {
	RecordingID int64         `json:"recording_id" db:"recording_id"`
	InterviewID int64         `json:"interview_id" db:"interview_id"`
	Kind        RecordingKind `json:"kind" db:"kind"`
	URL         string        `json:"url" db:"url"`
	SegmentAt   time.Time     `json:"segment_at" db:"segment_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

type Screenshot struct {
	ScreenshotID int64     `json:"screenshot_id" db:"screenshot_id"`
	InterviewID  int64     `json:"interview_id" db:"interview_id"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	TakenAt      time.Time `json:"taken_at" db:"taken_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type SubmitScreenshotReq struct {
	ImageURL string    `json:"image_url" binding:"required"`
	TakenAt  time.Time `json:"taken_at" binding:"required"`
}

type SubmitRecordingReq struct {
	Kind      RecordingKind `json:"kind" binding:"required,oneof=AUDIO VIDEO SCREEN"`
	URL       string        `json:"url" binding:"required"`
	SegmentAt time.Time     `json:"segment_at" binding:"required"`
}
