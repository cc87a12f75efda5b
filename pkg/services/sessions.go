package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/saral-ai/landing/pkg/form"
	"github.com/saral-ai/landing/pkg/modal"
)

type session struct {
	controller *modal.Controller
	lastSeen   time.Time
}

// SessionRegistry holds one access dialog controller per visitor
type SessionRegistry struct {
	variant *form.Variant
	opts    []modal.Option
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
	cron     *cron.Cron
}

// NewSessionRegistry creates a registry whose controllers run the given
// variant. Sessions idle longer than ttl are dropped by Sweep.
func NewSessionRegistry(v *form.Variant, ttl time.Duration, log zerolog.Logger, opts ...modal.Option) *SessionRegistry {
	return &SessionRegistry{
		variant:  v,
		opts:     append([]modal.Option{modal.WithLogger(log)}, opts...),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
		sessions: make(map[string]*session),
	}
}

// Get returns the controller for id, creating a new session under a fresh id
// when id is empty or unknown. The returned id is the one the caller should
// keep using.
func (r *SessionRegistry) Get(id string) (string, *modal.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		return id, s.controller
	}

	// never adopt an id the client chose
	id = uuid.NewString()
	s := &session{
		controller: modal.New(r.variant, r.opts...),
		lastSeen:   r.now(),
	}
	r.sessions[id] = s
	r.log.Debug().Str("session", id).Msg("session created")
	return id, s.controller
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle longer than the ttl and returns how many
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	evicted := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			s.controller.Close()
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.log.Info().Int("evicted", evicted).Int("remaining", len(r.sessions)).Msg("swept idle sessions")
	}
	return evicted
}

// StartSweeper runs Sweep on a fixed interval until Stop is called
func (r *SessionRegistry) StartSweeper(interval time.Duration) error {
	c := cron.New()
	if _, err := c.AddFunc("@every "+interval.String(), func() { r.Sweep() }); err != nil {
		return err
	}
	c.Start()

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()
	return nil
}

// Stop halts the sweeper and cancels every pending form reset
func (r *SessionRegistry) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	for _, s := range r.sessions {
		s.controller.Close()
	}
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
