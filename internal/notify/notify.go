// Package notify is the seam toward the user-visible notification layer.
// Every state-changing operation ends in exactly one notification, success or
// failure, never silently.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier presents operation outcomes to the user.
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// Console writes notifications to a terminal stream.
type Console struct {
	Out io.Writer
}

// Success prints a checkmark line.
func (c *Console) Success(title, detail string) {
	if detail == "" {
		fmt.Fprintf(c.Out, "✓ %s\n", title)
		return
	}
	fmt.Fprintf(c.Out, "✓ %s — %s\n", title, detail)
}

// Error prints a cross line.
func (c *Console) Error(title, detail string) {
	if detail == "" {
		fmt.Fprintf(c.Out, "✗ %s\n", title)
		return
	}
	fmt.Fprintf(c.Out, "✗ %s — %s\n", title, detail)
}

// Event is a recorded notification.
type Event struct {
	Kind   string // "success" or "error"
	Title  string
	Detail string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Success(title, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Kind: "success", Title: title, Detail: detail})
}

func (r *Recorder) Error(title, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Kind: "error", Title: title, Detail: detail})
}

// Last returns the most recent event, if any.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Events) == 0 {
		return Event{}, false
	}
	return r.Events[len(r.Events)-1], true
}
