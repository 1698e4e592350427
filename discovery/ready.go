package discovery

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
)

// ErrAlreadyFired is returned by Fire after the first call.
var ErrAlreadyFired = stderrors.New("discovery: ready event already fired")

// Listener is invoked with the provider when the Ready event fires.
type Listener func(ctx context.Context, p Provider) error

// Ready is a single-fire event announcing that a Provider is available.
// The zero value is not usable; create one with NewReady.
type Ready struct {
	mu        sync.Mutex
	fired     bool
	provider  Provider
	listeners []Listener
	done      chan struct{}
}

// NewReady creates an unfired Ready event.
func NewReady() *Ready {
	return &Ready{done: make(chan struct{})}
}

var defaultReady = NewReady()

// DefaultReady returns the process-wide Ready event. Clients subscribe to
// it unless they are given another event.
func DefaultReady() *Ready {
	return defaultReady
}

// Subscribe registers l to run when the event fires. If the event has
// already fired, l runs immediately on the caller's goroutine with a
// background context and its error is returned.
func (r *Ready) Subscribe(l Listener) error {
	r.mu.Lock()
	if !r.fired {
		r.listeners = append(r.listeners, l)
		r.mu.Unlock()
		return nil
	}
	p := r.provider
	r.mu.Unlock()

	return l(context.Background(), p)
}

// Fire publishes p to every subscriber, in subscription order. It can
// succeed only once; later calls return ErrAlreadyFired without invoking
// any listener. Listener errors are joined and returned.
func (r *Ready) Fire(ctx context.Context, p Provider) error {
	if p == nil {
		return fmt.Errorf("discovery: ready event fired with nil provider")
	}

	r.mu.Lock()
	if r.fired {
		r.mu.Unlock()
		return ErrAlreadyFired
	}
	r.fired = true
	r.provider = p
	listeners := r.listeners
	r.listeners = nil
	close(r.done)
	r.mu.Unlock()

	var errs []error
	for _, l := range listeners {
		if err := l(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Done returns a channel closed once the event has fired.
func (r *Ready) Done() <-chan struct{} {
	return r.done
}

// Fired reports whether the event has fired.
func (r *Ready) Fired() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}

// Provider returns the published provider, or nil before the event fires.
func (r *Ready) Provider() Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.provider
}

// Wait blocks until the event fires or ctx is done.
func (r *Ready) Wait(ctx context.Context) (Provider, error) {
	select {
	case <-r.done:
		return r.Provider(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
