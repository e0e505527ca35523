package testutil

import (
	"context"

	"github.com/kbukum/scribe/component"
)

// TestComponent extends component.Component with state control for tests.
// A test component can be registered like any other component and can
// also be reset between cases or rolled back to a snapshot.
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state for a later Restore.
	Snapshot(ctx context.Context) (any, error)

	// Restore returns the component to a state captured by Snapshot.
	Restore(ctx context.Context, snapshot any) error
}
