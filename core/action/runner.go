package action

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leofalp/flowcanvas/providers/observability"
)

// Status is where a runner is in its idle → running → settled cycle.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is a copy of a runner's last known outcome.
type State struct {
	Status   Status
	Err      error
	Message  string
	Category Category
	Started  time.Time
	Finished time.Time
}

// Running reports whether a call is in flight, i.e. the trigger is disabled.
func (s State) Running() bool { return s.Status == StatusRunning }

// Func is the provider call. It must only write to its own node's payload,
// and only once it has a complete result.
type Func func(ctx context.Context) error

// Runner guards one node's action. The zero value is not usable; call New.
type Runner struct {
	nodeID   string
	kind     string
	observer observability.Provider

	mu    sync.Mutex
	state State
	done  chan struct{}
}

// New creates a runner for the node with the given id and kind. A nil
// observer discards telemetry.
func New(nodeID, kind string, observer observability.Provider) *Runner {
	return &Runner{
		nodeID:   nodeID,
		kind:     kind,
		observer: observability.OrNop(observer),
		state:    State{Status: StatusIdle},
	}
}

// State returns the current state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Enabled reports whether a new call may start.
func (r *Runner) Enabled() bool {
	return !r.State().Running()
}

// Trigger starts fn in its own goroutine and returns true, or returns false
// without doing anything when a call is already in flight.
func (r *Runner) Trigger(ctx context.Context, fn Func) bool {
	done, ok := r.begin()
	if !ok {
		return false
	}
	go r.execute(context.WithoutCancel(ctx), fn, done)
	return true
}

// Run executes fn synchronously and returns its error, or ErrInFlight when
// another call is running. Cancelling ctx does not abort a started call.
func (r *Runner) Run(ctx context.Context, fn Func) error {
	done, ok := r.begin()
	if !ok {
		return ErrInFlight
	}
	return r.execute(context.WithoutCancel(ctx), fn, done)
}

// Wait blocks until the in-flight call, if any, settles or ctx ends.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) begin() (chan struct{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Status == StatusRunning {
		return nil, false
	}
	done := make(chan struct{})
	r.done = done
	r.state = State{Status: StatusRunning, Started: time.Now()}
	return done, true
}

func (r *Runner) execute(ctx context.Context, fn Func, done chan struct{}) error {
	nodeAttrs := []observability.Attribute{
		observability.String(observability.AttrNodeID, r.nodeID),
		observability.String(observability.AttrNodeKind, r.kind),
	}
	ctx, span := r.observer.StartSpan(ctx, observability.SpanNodeAction, nodeAttrs...)
	defer span.End()

	start := time.Now()
	err := r.call(ctx, fn)
	elapsed := time.Since(start)

	category := Classify(err)
	outcome := string(StatusSucceeded)
	if err != nil {
		outcome = string(StatusFailed)
		span.RecordError(err)
		span.SetStatus(observability.StatusError, Message(err))
		r.observer.Warn(ctx, "node action failed", append(nodeAttrs,
			observability.String(observability.AttrErrorCategory, string(category)),
			observability.Error(err),
		)...)
	} else {
		span.SetStatus(observability.StatusOK, "")
		r.observer.Info(ctx, "node action succeeded", append(nodeAttrs,
			observability.Duration("duration", elapsed),
		)...)
	}
	metricAttrs := append(nodeAttrs, observability.String(observability.AttrActionOutcome, outcome))
	r.observer.Counter(observability.MetricNodeActions).Add(ctx, 1, metricAttrs...)
	r.observer.Histogram(observability.MetricNodeActionDuration).Record(ctx, elapsed.Seconds(), metricAttrs...)

	r.mu.Lock()
	r.state.Finished = time.Now()
	r.state.Err = err
	r.state.Message = Message(err)
	r.state.Category = category
	if err != nil {
		r.state.Status = StatusFailed
	} else {
		r.state.Status = StatusSucceeded
	}
	r.mu.Unlock()
	close(done)

	return err
}

// call runs fn and reports a panic as a provider error.
func (r *Runner) call(ctx context.Context, fn Func) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", ErrProvider, p)
		}
	}()
	return fn(ctx)
}
