package models

import "time"

type ProgressEventType string

const (
	ProgressAttemptStarted ProgressEventType = "attempt_started"
	ProgressRetryScheduled ProgressEventType = "retry_scheduled"
	ProgressCompleted      ProgressEventType = "completed"
	ProgressFailed         ProgressEventType = "failed"
)

// ProgressEvent is an advisory notification emitted while a note is generated.
// Consumers may drop it; generation never depends on it being handled.
type ProgressEvent struct {
	Type ProgressEventType
	// Attempt is zero-based.
	Attempt    int
	StatusCode int
	Delay      time.Duration
	Err        error
}

// ProgressFunc receives progress events. A nil ProgressFunc is valid.
type ProgressFunc func(ProgressEvent)

// Emit calls f with event if f is not nil.
func (f ProgressFunc) Emit(event ProgressEvent) {
	if f != nil {
		f(event)
	}
}
