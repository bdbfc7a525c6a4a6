package history

import "time"

// Status describes the outcome of a recorded build attempt.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record captures one build attempt: the parameters the encoder was invoked
// with and how the attempt ended.
type Record struct {
	ID           int64
	UUID         string
	Output       string
	SourceDir    string
	FrameCount   int
	FrameRate    int
	Preset       string
	Status       Status
	ErrorKind    string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration returns the wall-clock time the attempt took.
func (r Record) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
