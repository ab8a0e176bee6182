package wisp

import (
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Registry maps each severity to the ordered list of destinations subscribed
// to it and fans a message out to every destination of its level.
//
// The registry is safe for concurrent use: registration and removal take the
// write lock, while Notify captures a snapshot of the level's subscriber list
// under the read lock and delivers outside it. Mutations always install a
// fresh slice, so a snapshot taken by an in-flight Notify is never torn.
type Registry struct {
	mu          sync.RWMutex
	subscribers map[Severity][]Destination
	onError     ErrorHook
}

// NewRegistry creates an empty registry. Delivery failures are reported to
// hook; passing nil installs the default hook, which writes one line per
// failed notification to os.Stderr.
func NewRegistry(hook ErrorHook) *Registry {
	if hook == nil {
		hook = stderrHook
	}
	return &Registry{
		subscribers: make(map[Severity][]Destination),
		onError:     hook,
	}
}

// Register appends dest to the subscriber list for level, creating the list
// if absent. Registering the same destination twice for the same level is
// permitted and results in duplicate delivery; the registry does not
// deduplicate on the caller's behalf.
//
// Panics if dest is nil.
func (r *Registry) Register(level Severity, dest Destination) {
	if dest == nil {
		panic("wisp: nil destination")
	}
	r.mu.Lock()
	r.subscribers[level] = append(r.subscribers[level], dest)
	r.mu.Unlock()
}

// Unregister removes dest, by identity, from every level it is subscribed
// under. Removing a destination that was never registered is a no-op.
func (r *Registry) Unregister(dest Destination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for level, dests := range r.subscribers {
		kept := make([]Destination, 0, len(dests))
		for _, d := range dests {
			if d != dest {
				kept = append(kept, d)
			}
		}
		if len(kept) == 0 {
			delete(r.subscribers, level)
		} else {
			r.subscribers[level] = kept
		}
	}
}

// Notify delivers message to every destination subscribed to level, in
// registration order, synchronously on the caller's goroutine. A level with
// no subscribers is a no-op.
//
// A failing destination never prevents delivery to the destinations after it.
// All failures from one notification are wrapped with their position in the
// list, combined, and handed to the error hook; nothing is returned to the
// caller.
func (r *Registry) Notify(level Severity, message string) {
	r.mu.RLock()
	dests := r.subscribers[level]
	r.mu.RUnlock()
	if len(dests) == 0 {
		return
	}

	var failures error
	for i, d := range dests {
		if err := d.Deliver(message); err != nil {
			failures = multierr.Append(failures,
				errors.Wrapf(err, "destination %d of %d", i+1, len(dests)))
		}
	}
	if failures != nil {
		r.onError(level, failures)
	}
}

// stderrHook is the fallback error hook. Losing delivery failures entirely is
// not acceptable, so without a caller-supplied hook they end up on stderr.
func stderrHook(level Severity, err error) {
	fmt.Fprintf(os.Stderr, "wisp: %s delivery failed: %v\n", level, err)
}
