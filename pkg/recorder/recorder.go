// Package recorder provides the shared step-recording facility: a FIFO
// queue of test steps executed by a single worker, grouped into named
// action sessions that can be entered and restored.
package recorder

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrStopped is returned for steps recorded after Stop.
var ErrStopped = errors.New("recorder stopped")

// DefaultSession is the session active before any StartSession call.
const DefaultSession = "test"

// EventKind identifies a journal entry.
type EventKind string

// EventKind values.
const (
	EventStep           EventKind = "step"
	EventSessionStart   EventKind = "session_start"
	EventSessionRestore EventKind = "session_restore"
)

// Event is one entry in the recorder's journal.
type Event struct {
	Kind    EventKind
	Name    string // Step name, or session name for session events
	Session string // Session the step was recorded into
}

// Pending is a handle for a recorded step or a drain request.
type Pending struct {
	done chan struct{}
	err  error
}

// Wait blocks until the step has executed and returns its error.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

type entry struct {
	name    string
	session string
	fn      func() error
	pending *Pending
}

// Recorder owns the step queue. Execution is strictly FIFO on one
// worker goroutine; recording never blocks on execution.
type Recorder struct {
	log logrus.FieldLogger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*entry
	running bool
	stopped bool
	active  string
	stack   []string
	journal []Event
}

// New creates a Recorder and starts its worker.
func New(log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Recorder{
		log:    log,
		active: DefaultSession,
	}
	r.cond = sync.NewCond(&r.mu)
	go r.worker()
	return r
}

// Record enqueues a step into the currently active session and returns
// a handle resolving when the step has run.
func (r *Recorder) Record(name string, fn func() error) *Pending {
	p := &Pending{done: make(chan struct{})}

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		p.err = ErrStopped
		close(p.done)
		return p
	}
	e := &entry{name: name, session: r.active, fn: fn, pending: p}
	r.queue = append(r.queue, e)
	r.cond.Broadcast()
	r.mu.Unlock()

	r.log.WithField("session", e.session).Debugf("recorded step: %s", name)
	return p
}

// StartSession makes name the active session. Steps recorded afterwards
// belong to it until RestoreSession. Exactly one session is active at a
// time.
func (r *Recorder) StartSession(name string) {
	r.mu.Lock()
	r.stack = append(r.stack, r.active)
	r.active = name
	r.journal = append(r.journal, Event{Kind: EventSessionStart, Name: name})
	r.mu.Unlock()

	r.log.Debugf("session started: %s", name)
}

// RestoreSession tears down the active session and re-activates
// whichever session was active before it. Restoring past the default
// session is a no-op.
func (r *Recorder) RestoreSession() {
	r.mu.Lock()
	closed := r.active
	if n := len(r.stack); n > 0 {
		r.active = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.journal = append(r.journal, Event{Kind: EventSessionRestore, Name: closed})
	r.mu.Unlock()

	r.log.Debugf("session restored after: %s", closed)
}

// ActiveSession returns the name of the currently active session.
func (r *Recorder) ActiveSession() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Drained returns a handle resolving once all currently queued work,
// old and new, has executed.
func (r *Recorder) Drained() *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		r.mu.Lock()
		for len(r.queue) > 0 || r.running {
			r.cond.Wait()
		}
		r.mu.Unlock()
		close(p.done)
	}()
	return p
}

// Journal returns a copy of the recorded events in order.
func (r *Recorder) Journal() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.journal))
	copy(out, r.journal)
	return out
}

// Stop drains the queue and shuts the worker down. Steps recorded after
// Stop fail with ErrStopped.
func (r *Recorder) Stop() {
	r.Drained().Wait() //nolint:errcheck // drain handles carry no error
	r.mu.Lock()
	r.stopped = true
	r.cond.Broadcast()
	r.mu.Unlock()
}

func (r *Recorder) worker() {
	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.stopped {
			r.cond.Wait()
		}
		if len(r.queue) == 0 && r.stopped {
			r.mu.Unlock()
			return
		}
		e := r.queue[0]
		r.queue = r.queue[1:]
		r.running = true
		r.mu.Unlock()

		err := e.fn()

		r.mu.Lock()
		r.running = false
		r.journal = append(r.journal, Event{Kind: EventStep, Name: e.name, Session: e.session})
		r.cond.Broadcast()
		r.mu.Unlock()

		e.pending.err = err
		close(e.pending.done)
	}
}
