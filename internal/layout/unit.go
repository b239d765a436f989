package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/metrics"
)

// State is the lifecycle position of a unit of work.
type State int

const (
	Pending State = iota
	InTransaction
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case InTransaction:
		return "in-transaction"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled-back"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Committed || s == RolledBack
}

// UnitOfWork records one transactional boundary.
type UnitOfWork struct {
	ID    uuid.UUID
	Kind  string
	Label string
	State State
}

// runUnit executes fn inside its own transaction. A nil return commits,
// anything else rolls back. The unit always ends in a terminal state.
func runUnit(ctx context.Context, doc host.Document, kind, label string, logger *zap.Logger, m *metrics.Metrics,
	fn func(tx host.Transaction) error) (UnitOfWork, error) {
	u := UnitOfWork{ID: uuid.New(), Kind: kind, Label: label, State: Pending}

	tx, err := doc.Begin(ctx, label)
	if err != nil {
		u.State = RolledBack
		m.ObserveUnit(kind, false)
		return u, fmt.Errorf("failed to begin %q: %w", label, err)
	}
	u.State = InTransaction

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, host.ErrTransactionClosed) {
			logger.Warn("Rollback failed", zap.String("label", label), zap.Error(rbErr))
		}
		u.State = RolledBack
		m.ObserveUnit(kind, false)
		logger.Debug("Unit of work rolled back",
			zap.String("label", label), zap.String("unit", u.ID.String()), zap.Error(err))
		return u, err
	}

	if err := tx.Commit(); err != nil {
		u.State = RolledBack
		m.ObserveUnit(kind, false)
		return u, fmt.Errorf("failed to commit %q: %w", label, err)
	}
	u.State = Committed
	m.ObserveUnit(kind, true)
	logger.Debug("Unit of work committed", zap.String("label", label), zap.String("unit", u.ID.String()))
	return u, nil
}
