package tui

import "context"

// request tracks the one call a screen may have in flight. Every start bumps
// the sequence number; a response only counts if it carries the current one.
type request struct {
	seq    int
	cancel context.CancelFunc
}

func (r *request) start() (context.Context, int) {
	r.stop()
	ctx, cancel := context.WithCancel(context.Background())
	r.seq++
	r.cancel = cancel
	return ctx, r.seq
}

func (r *request) stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// abandon cancels the pending call and invalidates its response.
func (r *request) abandon() {
	r.stop()
	r.seq++
}

func (r *request) pending() bool {
	return r.cancel != nil
}

// finish reports whether seq is the response the screen is waiting for and,
// if so, releases the call.
func (r *request) finish(seq int) bool {
	if seq != r.seq || r.cancel == nil {
		return false
	}
	r.stop()
	return true
}
