package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MatiasdeBuren/consorcio-console/internal/logging"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier is what the managers depend on. Passing it in explicitly replaces
// the ambient toast context the web client used.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// Toast is one live notification.
type Toast struct {
	ID        uuid.UUID
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Progress reports how much of the toast's lifetime remains, 1 at birth
// down to 0 at dismissal.
func (t Toast) Progress(now time.Time) float64 {
	total := t.ExpiresAt.Sub(t.CreatedAt)
	if total <= 0 {
		return 0
	}
	left := t.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	if left >= total {
		return 1
	}
	return float64(left) / float64(total)
}

// Center holds active toasts and dismisses them after a fixed duration.
type Center struct {
	mu       sync.Mutex
	duration time.Duration
	active   []Toast
	timers   map[uuid.UUID]*time.Timer
	now      func() time.Time
}

func NewCenter(duration time.Duration) *Center {
	return &Center{
		duration: duration,
		timers:   make(map[uuid.UUID]*time.Timer),
		now:      time.Now,
	}
}

// Notify implements Notifier.
func (c *Center) Notify(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	toast := Toast{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.duration),
	}
	c.active = append(c.active, toast)
	c.timers[toast.ID] = time.AfterFunc(c.duration, func() {
		c.Dismiss(toast.ID)
	})

	logging.Logger.WithField("level", string(level)).Debug(message)
}

// Dismiss removes a toast before (or at) its scheduled expiry.
func (c *Center) Dismiss(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, t := range c.active {
		if t.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			break
		}
	}
}

// Active returns the currently visible toasts, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.active))
	copy(out, c.active)
	return out
}

// Close stops all pending dismissal timers.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = nil
}
