package notify

import "github.com/google/uuid"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// DefaultDurationMS is how long a toast stays on screen before auto-dismiss.
const DefaultDurationMS = 1500

type Toast struct {
	ID         string `json:"id"`
	Level      Level  `json:"type"`
	Message    string `json:"message"`
	DurationMS int    `json:"duration"`
}

// Queue buffers toasts until the UI collaborator drains them. It is a plain
// value owned by the session; the session's lock covers it.
type Queue struct {
	pending []Toast
}

func (q *Queue) Push(level Level, message string) {
	q.pending = append(q.pending, Toast{
		ID:         uuid.NewString(),
		Level:      level,
		Message:    message,
		DurationMS: DefaultDurationMS,
	})
}

// Drain returns all pending toasts and empties the queue.
func (q *Queue) Drain() []Toast {
	out := q.pending
	q.pending = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}
