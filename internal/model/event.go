package model

import "time"

// ReadingsPublishedEvent is emitted after a status has been posted
type ReadingsPublishedEvent struct {
	EventID     string     `json:"event_id"`
	RunID       string     `json:"run_id"`
	StatusID    string     `json:"status_id"`
	Message     string     `json:"message"`
	Readings    ReadingSet `json:"readings"`
	AudioURL    string     `json:"audio_url,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
}
