// Package modal owns the visibility of the access dialog and the lifecycle of
// the form behind it. Closing the dialog hides it immediately and clears the
// form only after the close animation has had time to finish.
package modal

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/saral-ai/landing/pkg/form"
)

// DefaultResetDelay matches the dialog's close animation
const DefaultResetDelay = 300 * time.Millisecond

// ErrClosed is returned for form edits while the dialog is not shown
var ErrClosed = errors.New("access dialog is closed")

// State is a point-in-time view of a controller, safe to render or encode
type State struct {
	Variant      string      `json:"variant"`
	Open         bool        `json:"open"`
	Step         int         `json:"step"`
	StepCount    int         `json:"stepCount"`
	Submitted    bool        `json:"submitted"`
	StepValid    bool        `json:"stepValid"`
	CanAdvance   bool        `json:"canAdvance"`
	CanRetreat   bool        `json:"canRetreat"`
	LastStep     bool        `json:"lastStep"`
	PendingReset bool        `json:"pendingReset"`
	FirstName    string      `json:"firstName,omitempty"`
	Record       form.Record `json:"record"`
}

// Option configures a Controller
type Option func(*Controller)

// WithResetDelay overrides how long a close waits before clearing the form
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithScheduler replaces the wall-clock timer source
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// WithLogger attaches a logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller mediates dialog visibility and the form state machine. It is
// safe for concurrent use by request handlers and its own reset timer.
type Controller struct {
	mu      sync.Mutex
	machine *form.Machine
	open    bool

	delay   time.Duration
	sched   Scheduler
	pending Timer
	// gen is bumped on every schedule or cancel; a timer that fires with a
	// stale generation does nothing.
	gen uint64

	log zerolog.Logger
}

// New creates a closed controller with a fresh form for the variant
func New(v *form.Variant, opts ...Option) *Controller {
	c := &Controller{
		machine: form.NewMachine(v),
		delay:   DefaultResetDelay,
		sched:   wallClock{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOpen shows the dialog. The form is left as it is; a reset scheduled
// by an earlier close still fires at its original time.
func (c *Controller) RequestOpen() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = true
	c.log.Debug().Bool("pending_reset", c.pending != nil).Msg("access dialog opened")
	return c.snapshot()
}

// RequestClose hides the dialog now and clears the form after the reset
// delay. A close while a reset is pending reschedules it.
func (c *Controller) RequestClose() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = false
	c.cancelPending()

	c.gen++
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.delay, func() {
		c.fireReset(gen)
	})
	c.log.Debug().Dur("delay", c.delay).Msg("access dialog closed, reset scheduled")
	return c.snapshot()
}

// OnOpenChange is the callback handed to the dialog. Dismissal is routed
// through RequestClose so the deferred reset is always scheduled.
func (c *Controller) OnOpenChange(open bool) State {
	if open {
		return c.RequestOpen()
	}
	return c.RequestClose()
}

// UpdateField writes one form value. The form only takes edits while the
// dialog is open.
func (c *Controller) UpdateField(name, value string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return c.snapshot(), ErrClosed
	}
	err := c.machine.UpdateField(name, value)
	return c.snapshot(), err
}

// HasField reports whether name belongs to the form
func (c *Controller) HasField(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.HasField(name)
}

// Advance runs the forward action; on the last step that is a submit.
// Transitions are refused while the dialog is closed.
func (c *Controller) Advance() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.open && c.machine.Advance()
	return c.snapshot(), ok
}

// Retreat runs the back action
func (c *Controller) Retreat() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.open && c.machine.Retreat()
	return c.snapshot(), ok
}

// Submit moves a valid final step into the submitted state
func (c *Controller) Submit() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.open && c.machine.Submit()
	return c.snapshot(), ok
}

// Snapshot returns the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Variant returns the form variant the controller was built with
func (c *Controller) Variant() *form.Variant {
	return c.machine.Variant()
}

// Close cancels any pending reset. Used when the owning session is dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPending()
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
	c.gen++
}

func (c *Controller) fireReset(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.machine.Reset()
	c.pending = nil
	c.gen++
	c.log.Debug().Bool("open", c.open).Msg("access form reset")
}

func (c *Controller) snapshot() State {
	m := c.machine
	return State{
		Variant:      m.Variant().Name,
		Open:         c.open,
		Step:         m.Step(),
		StepCount:    m.StepCount(),
		Submitted:    m.Submitted(),
		StepValid:    m.IsStepValid(m.Step()),
		CanAdvance:   c.open && m.CanAdvance(),
		CanRetreat:   m.CanRetreat(),
		LastStep:     m.IsLastStep(),
		PendingReset: c.pending != nil,
		FirstName:    m.FirstName(),
		Record:       m.Record(),
	}
}
