// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"errors"
	"fmt"

	"github.com/firstlight/gearbase/internal/model"
)

// Load-time errors abort before any mutation; nothing needs reconciling.
var (
	// ErrMalformed means the snapshot bytes are not parseable JSON
	// (compressed or plain).
	ErrMalformed = errors.New("malformed snapshot")

	// ErrUnsupportedVersion means the snapshot's format version has a
	// major component this build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrCyclicDependency means the section registry's dependency graph is
	// not a DAG. The registry is hand-maintained acyclic, so this is an
	// internal error, not a data error.
	ErrCyclicDependency = errors.New("cyclic section dependency")

	// ErrAlreadyInProgress means a restore or export was requested while a
	// restore is running. It fails the new request only.
	ErrAlreadyInProgress = errors.New("a restore is already in progress")
)

// ItemError records one failed operation. Collaborator failures are
// per-item: they are collected here and never abort the run.
type ItemError struct {
	Section  model.Section
	Identity string
	Message  string
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s[%s]: %s", e.Section, e.Identity, e.Message)
}

// TerminalState classifies a finished restore run.
type TerminalState int

const (
	// Success means every planned operation applied.
	Success TerminalState = iota
	// PartialFailure means at least one operation applied and at least one
	// failed or never ran.
	PartialFailure
	// Failure means operations were attempted but none applied.
	Failure
)

func (t TerminalState) String() string {
	switch t {
	case Success:
		return "success"
	case PartialFailure:
		return "partial-failure"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("TerminalState(%d)", int(t))
	}
}
