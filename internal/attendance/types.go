package attendance

import "time"

// EventTypePunchRecorded is the event type published after a punch is stored.
const EventTypePunchRecorded = "attendance.punch.recorded"

// Punch is a single clock-in/clock-out record as stored in the attendance table.
// userId is the partition key and timestamp the sort key; neither is generated
// or checked here.
type Punch struct {
	UserID    string `json:"userId" dynamodbav:"userId"`       // PK
	Timestamp string `json:"timestamp" dynamodbav:"timestamp"` // SK, caller supplied
	Type      string `json:"type" dynamodbav:"type"`           // free-form, e.g. clock-in
}

// PunchEvent is the payload sent to the punch events queue.
type PunchEvent struct {
	EventID       string    `json:"eventId"`
	EventType     string    `json:"eventType"`
	Source        string    `json:"source"`
	CorrelationID string    `json:"correlationId,omitempty"`
	RecordedAt    time.Time `json:"recordedAt"`
	Punch         Punch     `json:"punch"`
}
