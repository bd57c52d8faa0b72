package bookmark

import (
	"context"
	"errors"
	"fmt"
)

// ErrPartialWrite marks a failure after the bookmark row was written or removed but before
// the companion flag followed it.
var ErrPartialWrite = errors.New("bookmark row and companion flag diverged")

// Step identifies which write of the two step rule failed.
type Step string

const (
	StepRow  Step = "row"
	StepFlag Step = "flag"
)

// Operation names the bookmark action.
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)

// DefaultViewPath is invalidated when the caller does not name a path.
const DefaultViewPath = "/companions"

// WriteError reports which step of a bookmark write failed.
type WriteError struct {
	Operation Operation
	Step      Step
	Err       error
	// RolledBack is set when both steps ran in one transaction that was undone.
	RolledBack bool
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("bookmark %s failed at %s step: %v", e.Operation, e.Step, e.Err)
}

func (e *WriteError) Unwrap() []error {
	if e.Step == StepFlag && !e.RolledBack {
		return []error{e.Err, ErrPartialWrite}
	}
	return []error{e.Err}
}

// Repository persists bookmark rows and the denormalized companion flag.
type Repository interface {
	Insert(ctx context.Context, companionID, userID string) error
	Delete(ctx context.Context, companionID, userID string) error
	SetFlag(ctx context.Context, companionID string, bookmarked bool) error
}

// Transactor runs fn inside a single store transaction. The context passed to fn carries
// the transaction for repositories that honour it.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
