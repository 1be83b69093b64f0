// Package notify keeps a stack of transient, self-dismissing messages.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Danger  Severity = "danger"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Toast is one visible notification.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	Created  time.Time
	Expires  time.Time
}

type entry struct {
	toast Toast
	timer *time.Timer
}

// Center owns the live toasts. Each toast removes itself after the TTL.
type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	toasts   map[string]*entry
	onChange func()
	closed   bool
}

// Option customizes a Center.
type Option func(*Center)

// WithTTL overrides the visible duration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithOnChange registers a callback fired after a toast is added or removed.
// It runs outside the Center lock and must not block.
func WithOnChange(fn func()) Option {
	return func(c *Center) {
		c.onChange = fn
	}
}

// NewCenter creates an empty Center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl:    DefaultTTL,
		toasts: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify shows a message and returns its id. Empty severities become Info.
func (c *Center) Notify(message string, sev Severity) string {
	if sev == "" {
		sev = Info
	}
	id := uuid.NewString()
	now := time.Now()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return id
	}
	e := &entry{toast: Toast{
		ID:       id,
		Message:  message,
		Severity: sev,
		Created:  now,
		Expires:  now.Add(c.ttl),
	}}
	e.timer = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	c.toasts[id] = e
	c.mu.Unlock()

	c.changed()
	return id
}

// Dismiss removes a toast before its TTL runs out. Unknown ids are ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	e, ok := c.toasts[id]
	if ok {
		e.timer.Stop()
		delete(c.toasts, id)
	}
	c.mu.Unlock()
	if ok {
		c.changed()
	}
}

// Active returns the live toasts, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	out := make([]Toast, 0, len(c.toasts))
	for _, e := range c.toasts {
		out = append(out, e.toast)
	}
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Created.Before(out[j].Created)
	})
	return out
}

// Len returns the number of live toasts.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.toasts)
}

// Close drops every toast, stops their timers, and ignores later calls to
// Notify.
func (c *Center) Close() {
	c.mu.Lock()
	for id, e := range c.toasts {
		e.timer.Stop()
		delete(c.toasts, id)
	}
	c.closed = true
	c.mu.Unlock()
}

func (c *Center) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
