package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Severity is the visual weight of a notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultToastDuration is how long a toast stays up when no duration is given
const DefaultToastDuration = 3 * time.Second

// Toast is a single transient notification. Toasts are independent; each
// manages its own dismiss timer and there is no ordering guarantee between
// them.
type Toast struct {
	ID         string        `json:"id"`
	Message    string        `json:"message"`
	Severity   Severity      `json:"severity"`
	DurationMs int           `json:"durationMs"`
	CreatedAt  time.Time     `json:"createdAt"`
	timer      *time.Timer
}

// Notifier manages active toasts and pushes show/dismiss events to clients
type Notifier struct {
	mu     sync.Mutex
	active map[string]*Toast
	hub    *Hub
	logger *zap.Logger
}

// NewNotifier creates a notifier broadcasting through the given hub
func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	return &Notifier{
		active: make(map[string]*Toast),
		hub:    hub,
		logger: logger,
	}
}

// Show enqueues a toast. A zero duration means the toast persists until
// manually dismissed.
func (n *Notifier) Show(message string, severity Severity, duration time.Duration) *Toast {
	toast := &Toast{
		ID:         uuid.NewString(),
		Message:    message,
		Severity:   severity,
		DurationMs: int(duration / time.Millisecond),
		CreatedAt:  time.Now(),
	}

	n.mu.Lock()
	n.active[toast.ID] = toast
	if duration > 0 {
		id := toast.ID
		toast.timer = time.AfterFunc(duration, func() {
			n.Dismiss(id)
		})
	}
	n.mu.Unlock()

	n.hub.Broadcast("notification", toast)
	return toast
}

// Dismiss removes a toast, stopping its timer if still pending. Dismissing
// an unknown id is a no-op.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	toast, ok := n.active[id]
	if ok {
		if toast.timer != nil {
			toast.timer.Stop()
		}
		delete(n.active, id)
	}
	n.mu.Unlock()

	if ok {
		n.hub.Broadcast("notification.dismiss", map[string]string{"id": id})
	}
}

// Active returns the currently visible toasts
func (n *Notifier) Active() []*Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	toasts := make([]*Toast, 0, len(n.active))
	for _, toast := range n.active {
		toasts = append(toasts, toast)
	}
	return toasts
}

// Info shows an info toast with the default duration
func (n *Notifier) Info(message string) { n.Show(message, SeverityInfo, DefaultToastDuration) }

// Success shows a success toast with the default duration
func (n *Notifier) Success(message string) { n.Show(message, SeveritySuccess, DefaultToastDuration) }

// Warning shows a warning toast with the default duration
func (n *Notifier) Warning(message string) { n.Show(message, SeverityWarning, DefaultToastDuration) }

// Error shows a sticky error toast that stays until dismissed
func (n *Notifier) Error(message string) { n.Show(message, SeverityError, 0) }
