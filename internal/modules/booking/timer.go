// README: Reconfirmation timer registry keyed by booking id.
package booking

import (
	"sync"
	"time"

	"ridemoto/internal/types"
)

// DefaultReconfirmDelay is how long a booking may sit in Requested before
// the rider is asked to confirm continued interest.
const DefaultReconfirmDelay = 180 * time.Second

// PromptFunc is invoked, at most once per booking, when the reconfirmation
// timer fires.
type PromptFunc func(bookingID types.ID)

// ReconfirmRegistry owns one single-shot timer per booking. Arming is keyed
// on the booking id, not on any view lifecycle: re-subscribing to the same
// booking never rearms an already armed (or already fired) timer. Timers
// are torn down when a driver is assigned, when the booking is cancelled,
// or when the registry is stopped.
type ReconfirmRegistry struct {
	mu      sync.Mutex
	delay   time.Duration
	prompt  PromptFunc
	timers  map[types.ID]*time.Timer
	seen    map[types.ID]struct{}
	pending map[types.ID]struct{}
}

func NewReconfirmRegistry(delay time.Duration, prompt PromptFunc) *ReconfirmRegistry {
	return &ReconfirmRegistry{
		delay:   delay,
		prompt:  prompt,
		timers:  make(map[types.ID]*time.Timer),
		seen:    make(map[types.ID]struct{}),
		pending: make(map[types.ID]struct{}),
	}
}

// Arm starts the reconfirmation timer for a booking. A second Arm for the
// same id is a no-op.
func (r *ReconfirmRegistry) Arm(id types.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[id]; ok {
		return
	}
	r.seen[id] = struct{}{}
	r.timers[id] = time.AfterFunc(r.delay, func() { r.fire(id) })
}

func (r *ReconfirmRegistry) fire(id types.ID) {
	r.mu.Lock()
	delete(r.timers, id)
	r.pending[id] = struct{}{}
	prompt := r.prompt
	r.mu.Unlock()

	if prompt != nil {
		prompt(id)
	}
}

// Disarm stops the timer for a booking without firing it. Safe to call for
// ids that were never armed or have already fired.
func (r *ReconfirmRegistry) Disarm(id types.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
	delete(r.pending, id)
}

// Pending reports whether a fired prompt is awaiting the rider's answer.
func (r *ReconfirmRegistry) Pending(id types.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[id]
	return ok
}

// Resolve clears a fired prompt after the rider answered.
func (r *ReconfirmRegistry) Resolve(id types.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, id)
}

// Stop tears down every live timer. Fired prompts stay recorded so an
// in-flight answer still resolves.
func (r *ReconfirmRegistry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}
