// Package notify is the user-facing notice channel. Stores, the session
// gate, and the importer report outcomes here instead of returning
// presentation strings up the call stack; the CLI wires a console
// implementation, tests wire a recorder.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives user-facing notices. Success/Error/Warn are transient
// notices; Alert is a blocking notice carrying server-supplied detail.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warn(msg string)
	Alert(msg string)
}

// Console writes notices as prefixed lines, one per notice.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console notifier writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) write(prefix, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", prefix, msg)
}

func (c *Console) Success(msg string) { c.write("ok:", msg) }
func (c *Console) Error(msg string)   { c.write("error:", msg) }
func (c *Console) Warn(msg string)    { c.write("warning:", msg) }
func (c *Console) Alert(msg string)   { c.write("ALERT:", msg) }

// Notice is one recorded notice.
type Notice struct {
	Level   string
	Message string
}

// Recorder keeps every notice in order; used by tests to assert on the
// exact notices a flow produced.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: level, Message: msg})
}

func (r *Recorder) Success(msg string) { r.record("success", msg) }
func (r *Recorder) Error(msg string)   { r.record("error", msg) }
func (r *Recorder) Warn(msg string)    { r.record("warn", msg) }
func (r *Recorder) Alert(msg string)   { r.record("alert", msg) }

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice, or a zero Notice if none.
func (r *Recorder) Last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}
