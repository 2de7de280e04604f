package grading

import (
	"context"
	"sync"
)

// Result is the outcome of a dispatched evaluation.
type Result struct {
	QuestionID string
	Token      uint64
	Request    Request
	Evaluation *Evaluation
	Err        error
}

type pendingEval struct {
	token  uint64
	cancel context.CancelFunc
}

// Dispatcher runs evaluations in the background, at most one per
// question. A completion is delivered only if its request is still the
// current one for that question; cancelled or superseded requests are
// dropped and their channel is closed without a value.
type Dispatcher struct {
	grader Grader

	mu      sync.Mutex
	pending map[string]pendingEval
	next    uint64
	closed  bool

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher that grades with g.
func NewDispatcher(g Grader) *Dispatcher {
	return &Dispatcher{
		grader:  g,
		pending: make(map[string]pendingEval),
	}
}

// Submit starts grading req for questionID. The returned channel
// receives exactly one Result, or is closed empty if the request is
// cancelled or superseded first. A question with a request already in
// flight yields ErrInFlight.
func (d *Dispatcher) Submit(ctx context.Context, questionID string, req Request) (<-chan Result, uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitLocked(ctx, questionID, req)
}

// Supersede cancels any in-flight request for questionID and submits req
// in its place.
func (d *Dispatcher) Supersede(ctx context.Context, questionID string, req Request) (<-chan Result, uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked(questionID)
	return d.submitLocked(ctx, questionID, req)
}

func (d *Dispatcher) submitLocked(ctx context.Context, questionID string, req Request) (<-chan Result, uint64, error) {
	if d.closed {
		return nil, 0, context.Canceled
	}
	if _, busy := d.pending[questionID]; busy {
		return nil, 0, ErrInFlight
	}

	d.next++
	token := d.next
	ctx, cancel := context.WithCancel(ctx)
	d.pending[questionID] = pendingEval{token: token, cancel: cancel}

	out := make(chan Result, 1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(out)
		defer cancel()

		ev, err := d.grader.Evaluate(ctx, req)

		d.mu.Lock()
		cur, ok := d.pending[questionID]
		current := ok && cur.token == token
		if current {
			delete(d.pending, questionID)
		}
		d.mu.Unlock()

		if !current {
			return
		}
		out <- Result{
			QuestionID: questionID,
			Token:      token,
			Request:    req,
			Evaluation: ev,
			Err:        err,
		}
	}()
	return out, token, nil
}

// Cancel aborts the in-flight request for questionID, if any. Its
// completion will never be delivered.
func (d *Dispatcher) Cancel(questionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked(questionID)
}

func (d *Dispatcher) cancelLocked(questionID string) bool {
	p, ok := d.pending[questionID]
	if !ok {
		return false
	}
	delete(d.pending, questionID)
	p.cancel()
	return true
}

// Pending reports whether questionID has a request in flight.
func (d *Dispatcher) Pending(questionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[questionID]
	return ok
}

// CancelAll aborts every in-flight request.
func (d *Dispatcher) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id := range d.pending {
		d.cancelLocked(id)
	}
}

// Close cancels outstanding work and waits for the workers to exit.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	for id := range d.pending {
		d.cancelLocked(id)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
