package domain

import "time"

// SyncEventType names a step of a run
type SyncEventType string

const (
	EventTemplateFetched    SyncEventType = "template.fetched"
	EventTemplatePushed     SyncEventType = "template.pushed"
	EventTemplatePushFailed SyncEventType = "template.push_failed"
	EventTemplateSkipped    SyncEventType = "template.skipped"
	EventImagesUploaded     SyncEventType = "images.uploaded"
	EventImagesFailed       SyncEventType = "images.failed"
)

// SyncEvent is emitted for every step of a run
type SyncEvent struct {
	Type       SyncEventType `json:"type"`
	Shop       string        `json:"shop"`
	Template   string        `json:"template"`
	Detail     string        `json:"detail,omitempty"`
	Count      int           `json:"count,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
