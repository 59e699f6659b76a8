// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"time"
)

// EventKind identifies what a progress event reports.
type EventKind int

const (
	EventOperationStarted EventKind = iota
	EventOperationCompleted
	EventRunFinalized
)

// Event is a single progress notification emitted while a restore runs.
// Err is set only on failed EventOperationCompleted events.
type Event struct {
	Kind      EventKind
	RunID     string
	Section   string
	Identity  string
	Operation string
	Err       error
	Completed int
	Failed    int
	Total     int
}

// ProgressFunc receives restore progress. A nil ProgressFunc is valid and
// means nobody is listening. The callback runs on the restoring goroutine,
// so it must not block on the coordinator.
type ProgressFunc func(Event)

// Result is the final report of a restore run.
type Result struct {
	RunID        string
	Started      time.Time
	Elapsed      time.Duration
	TotalPlanned int
	Skipped      int
	Completed    int
	Failed       int
	Errors       []ItemError
	Terminal     TerminalState
	Cancelled    bool
	Overtime     bool

	// RequiresRestart is set when the restore replaced the database file
	// itself and the process must reopen its connections.
	RequiresRestart bool
}

// reporter accumulates per-operation outcomes and turns them into a Result.
type reporter struct {
	result   Result
	progress ProgressFunc
	ceiling  time.Duration
}

func newReporter(runID string, plan *Plan, progress ProgressFunc, ceiling time.Duration) *reporter {
	return &reporter{
		result: Result{
			RunID:        runID,
			Started:      time.Now(),
			TotalPlanned: len(plan.Operations),
			Skipped:      plan.Skipped,
		},
		progress: progress,
		ceiling:  ceiling,
	}
}

func (r *reporter) emit(ev Event) {
	if r.progress == nil {
		return
	}
	ev.RunID = r.result.RunID
	ev.Completed = r.result.Completed
	ev.Failed = r.result.Failed
	ev.Total = r.result.TotalPlanned
	r.progress(ev)
}

func (r *reporter) opStarted(op Operation) {
	r.emit(Event{
		Kind:      EventOperationStarted,
		Section:   string(op.Section),
		Identity:  op.Identity,
		Operation: op.Kind.String(),
	})
}

// opCompleted records one operation's outcome. Failures are collected, not
// propagated; a single bad record must not sink the rest of the run.
func (r *reporter) opCompleted(op Operation, err error) {
	if err != nil {
		r.result.Failed++
		r.result.Errors = append(r.result.Errors, ItemError{
			Section:  op.Section,
			Identity: op.Identity,
			Message:  err.Error(),
		})
	} else {
		r.result.Completed++
	}
	r.emit(Event{
		Kind:      EventOperationCompleted,
		Section:   string(op.Section),
		Identity:  op.Identity,
		Operation: op.Kind.String(),
		Err:       err,
	})
}

// finalize classifies the run and emits the closing event. The result is a
// value copy, so callers can hold it after the run state is reused.
func (r *reporter) finalize(cancelled bool) Result {
	r.result.Cancelled = cancelled
	r.result.Elapsed = time.Since(r.result.Started)
	if r.ceiling > 0 && r.result.Elapsed > r.ceiling {
		r.result.Overtime = true
	}

	switch {
	case r.result.TotalPlanned == 0:
		r.result.Terminal = Success
	case r.result.Failed == 0 && r.result.Completed == r.result.TotalPlanned:
		r.result.Terminal = Success
	case r.result.Completed == 0:
		r.result.Terminal = Failure
	default:
		r.result.Terminal = PartialFailure
	}

	r.emit(Event{Kind: EventRunFinalized})
	return r.result
}
