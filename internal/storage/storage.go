package storage

import "time"

// Event records one summary request and how its model response was interpreted.
// Format is empty when interpretation failed; ErrorKind is empty on success.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	UserID      string    `json:"user_id"`
	Variant     string    `json:"variant"`
	Model       string    `json:"model,omitempty"`
	Format      string    `json:"format,omitempty"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	RawResponse string    `json:"raw_response,omitempty"`
}

// Succeeded reports whether the response was turned into a summary.
func (e Event) Succeeded() bool { return e.ErrorKind == "" }

// Recorder persists summary events.
// Load should return events in the order they were appended.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Append(event Event) error
	Load() ([]Event, error)
}
