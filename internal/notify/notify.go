package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
	Warning Severity = "warning"
)

// Notification is one transient user-facing message.
type Notification struct {
	ID       string
	Severity Severity
	Message  string
	At       time.Time
}

// Notifier is the "show a transient message" capability controllers
// depend on.
type Notifier interface {
	Notify(sev Severity, message string)
}

// Hub collects notifications for whatever surface displays them and
// mirrors each one to the log. The CLI drains it after every command;
// tests drain it to assert on what the user would have seen.
type Hub struct {
	mu      sync.Mutex
	log     *zap.Logger
	pending []Notification
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{log: log}
}

func (h *Hub) Notify(sev Severity, message string) {
	n := Notification{
		ID:       uuid.NewString(),
		Severity: sev,
		Message:  message,
		At:       time.Now(),
	}

	h.mu.Lock()
	h.pending = append(h.pending, n)
	h.mu.Unlock()

	switch sev {
	case Error:
		h.log.Warn(message, zap.String("notification", n.ID))
	default:
		h.log.Info(message, zap.String("notification", n.ID))
	}
}

// Drain returns all pending notifications and empties the hub.
func (h *Hub) Drain() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.pending
	h.pending = nil
	return out
}
