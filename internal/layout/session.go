package layout

import (
	"context"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/metrics"
)

// Session is the run context handed to every scenario.
type Session struct {
	Document   host.Document
	Resolver   *Resolver
	Builder    *Builder
	Replicator *Replicator
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// NewSession wires the layout services around doc. A nil logger is replaced
// with a no-op one; nil metrics disable counting.
func NewSession(doc host.Document, logger *zap.Logger, m *metrics.Metrics) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Document:   doc,
		Resolver:   NewResolver(doc, logger.Named("resolver"), m),
		Builder:    NewBuilder(doc, logger.Named("builder"), m),
		Replicator: NewReplicator(doc, logger.Named("replicator"), m),
		Logger:     logger,
		Metrics:    m,
	}
}

// Run executes fn as one unit of work against the session document. It is
// used for writes that are neither bar creation nor replication.
func (s *Session) Run(ctx context.Context, kind, label string, fn func(tx host.Transaction) error) (UnitOfWork, error) {
	return runUnit(ctx, s.Document, kind, label, s.Logger, s.Metrics, fn)
}
