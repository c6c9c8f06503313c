package domain

import "time"

// ShopOutcome records what happened to one target shop
type ShopOutcome struct {
	Shop            string `json:"shop"`
	Existed         bool   `json:"existed"`
	Pushed          bool   `json:"pushed"`
	PushSkipped     bool   `json:"push_skipped"`
	PushError       string `json:"push_error,omitempty"`
	ImagesRequested bool   `json:"images_requested"`
	ImagesFound     int    `json:"images_found"`
	ImagesUploaded  int    `json:"images_uploaded"`
	ImageError      string `json:"image_error,omitempty"`
}

// SyncRun is the record of one invocation
type SyncRun struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	Template   string        `json:"template"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Outcomes   []ShopOutcome `json:"outcomes"`
}

// Failures counts shops with a push or image error
func (r *SyncRun) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.PushError != "" || o.ImageError != "" {
			n++
		}
	}
	return n
}
