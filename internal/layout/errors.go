package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexiusacademia/gorebar/internal/host"
)

// LookupError reports a surface or bar type that is not in the catalog.
// It only aborts the operation that depends on the missing element.
type LookupError struct {
	What string // "surface" or "bar type"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.What, e.Name)
}

func (e *LookupError) Unwrap() error { return host.ErrNotFound }

// PreconditionError reports a request rejected before any transaction was
// opened: unresolved references, broken paths or invalid counts.
type PreconditionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// CreationError reports a bar the host refused to create. The unit of work
// was rolled back.
type CreationError struct {
	Unit UnitOfWork
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create bar (%s): %v", e.Unit.Label, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// ReplicationError reports one failed replication iteration or mirror.
type ReplicationError struct {
	Unit      UnitOfWork
	Iteration int
	Err       error
}

func (e *ReplicationError) Error() string {
	if e.Iteration > 0 {
		return fmt.Sprintf("%s iteration %d failed: %v", e.Unit.Label, e.Iteration, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Unit.Label, e.Err)
}

func (e *ReplicationError) Unwrap() error { return e.Err }

// errEmptyMirror is the cause recorded when a mirror produced nothing.
var errEmptyMirror = errors.New("mirror produced no elements")

// IsFatal reports whether err should stop the remaining iterations of a
// run: the document is gone or the caller gave up.
func IsFatal(err error) bool {
	return errors.Is(err, host.ErrDocumentClosed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
