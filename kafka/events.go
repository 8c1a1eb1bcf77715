package kafka

import "time"

// Topics
const (
	TopicInkIssued = "ink.issued"
)

// Event types
const (
	EventTypeInkIssued = "ink.issued"
)

// InkIssuedEvent is published after a request has been fulfilled and stock
// deducted, for downstream audit and analytics consumers.
type InkIssuedEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	Timestamp      time.Time `json:"timestamp"`
	RequestID      uint      `json:"request_id"`
	LotID          uint      `json:"lot_id"`
	IssuedQuantity int       `json:"issued_quantity"`
	IssuedToID     uint      `json:"issued_to_id"`
	IssuedByID     uint      `json:"issued_by_id"`
	Source         string    `json:"source"`
}
