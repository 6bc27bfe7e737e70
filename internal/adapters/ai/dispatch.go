package ai

import (
	"context"
	"sync"
)

// Default lane configuration.
const defaultLaneSize = 16

// job is one unit of companion work queued on a session lane.
type job struct {
	ctx   context.Context
	run   func(ctx context.Context) (string, error)
	reply chan result
}

type result struct {
	text string
	err  error
}

// Dispatcher serializes companion work per session so responses come back
// in request order, while separate sessions proceed independently.
type Dispatcher struct {
	mu       sync.Mutex
	lanes    map[string]chan job
	laneSize int
	closed   bool
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher with configuration options.
func NewDispatcher(opts ...DispatchOption) *Dispatcher {
	d := &Dispatcher{
		lanes:    make(map[string]chan job),
		laneSize: defaultLaneSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DispatchOption applies a configuration option to the Dispatcher.
type DispatchOption func(*Dispatcher)

// WithLaneSize sets the per-session queue depth.
func WithLaneSize(n int) DispatchOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.laneSize = n
		}
	}
}

// Do queues run on the session's lane and waits for its result.
// Returns ErrLaneBusy when the lane is full, ErrDispatchDown after Close.
func (d *Dispatcher) Do(ctx context.Context, sessionID string, run func(ctx context.Context) (string, error)) (string, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return "", ErrDispatchDown
	}
	lane, ok := d.lanes[sessionID]
	if !ok {
		lane = make(chan job, d.laneSize)
		d.lanes[sessionID] = lane
		d.wg.Add(1)
		go d.drain(lane)
	}
	d.mu.Unlock()

	j := job{ctx: ctx, run: run, reply: make(chan result, 1)}
	select {
	case lane <- j:
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		return "", ErrLaneBusy
	}

	select {
	case res := <-j.reply:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// drain processes one lane in FIFO order. Jobs whose context expired
// before their turn are answered with the context error, not run.
func (d *Dispatcher) drain(lane chan job) {
	defer d.wg.Done()
	for j := range lane {
		if err := j.ctx.Err(); err != nil {
			j.reply <- result{err: err}
			continue
		}
		text, err := j.run(j.ctx)
		j.reply <- result{text: text, err: err}
	}
}

// Release drops the lane for a session that logged out.
func (d *Dispatcher) Release(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if lane, ok := d.lanes[sessionID]; ok {
		delete(d.lanes, sessionID)
		close(lane)
	}
}

// Close shuts down all lanes and waits for in-flight work.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for id, lane := range d.lanes {
		delete(d.lanes, id)
		close(lane)
	}
	d.mu.Unlock()

	d.wg.Wait()
	return nil
}
