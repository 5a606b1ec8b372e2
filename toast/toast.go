package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Errors linger longer so the user has time to read them.
const (
	DefaultTTL = 4 * time.Second
	ErrorTTL   = 6 * time.Second
)

// ShowMsg asks the root model to enqueue a toast. Views emit it as a plain
// message so they never hold a reference to the queue itself.
type ShowMsg struct {
	Message  string
	Severity Severity
}

// ExpiredMsg fires when a toast's lifetime elapses.
type ExpiredMsg struct {
	ID string
}

// Show builds the command a view returns to surface a toast.
func Show(message string, severity Severity) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Message: message, Severity: severity}
	}
}

func Info(message string) tea.Cmd    { return Show(message, SeverityInfo) }
func Success(message string) tea.Cmd { return Show(message, SeveritySuccess) }
func Warn(message string) tea.Cmd    { return Show(message, SeverityWarn) }
func Error(message string) tea.Cmd   { return Show(message, SeverityError) }

// Toast is one visible notification.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	TTL      time.Duration
}

// Queue holds active toasts in arrival order. It is not safe for concurrent
// use; bubbletea delivers all messages on one goroutine.
type Queue struct {
	toasts []Toast
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues a toast and returns the command that expires it. Duplicate
// messages are fine; every push gets its own id and its own timer.
func (q *Queue) Push(message string, severity Severity) tea.Cmd {
	ttl := DefaultTTL
	if severity == SeverityError {
		ttl = ErrorTTL
	}
	t := Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		TTL:      ttl,
	}
	q.toasts = append(q.toasts, t)

	id := t.ID
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

// Dismiss removes the toast with the given id. Unknown ids are a no-op: the
// toast may already have been dismissed by hand before its timer fired.
func (q *Queue) Dismiss(id string) {
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

// DismissOldest drops the head of the queue.
func (q *Queue) DismissOldest() {
	if len(q.toasts) > 0 {
		q.toasts = q.toasts[1:]
	}
}

// Visible returns the toasts to render, oldest first.
func (q *Queue) Visible() []Toast {
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

func (q *Queue) Len() int {
	return len(q.toasts)
}
