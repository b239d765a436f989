// Package document is a host document persisted in SQLite. It stores walls,
// bar types and bars and gives gorebar the catalog and transactional
// primitives it would otherwise get from a BIM authoring application.
package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gorebar/internal/host"
)

const driverName = "sqlite"

// Document implements host.Document on top of a SQLite file.
type Document struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
	closed atomic.Bool
}

var _ host.Document = (*Document)(nil)

// Open opens (or creates) the document at path and brings its schema up to date.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Document, error) {
	if path == "" {
		return nil, errors.New("document path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := dataSourceName(path)
	if err := runMigrations(dsn, logger); err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	logger.Debug("Document opened", zap.String("path", path))
	return &Document{db: db, path: path, logger: logger}, nil
}

func dataSourceName(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Path returns the file the document lives in.
func (d *Document) Path() string { return d.path }

// Close releases the database. Later writes fail with host.ErrDocumentClosed.
func (d *Document) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	return d.db.Close()
}

func (d *Document) checkOpen() error {
	if d.closed.Load() {
		return host.ErrDocumentClosed
	}
	return nil
}

// Begin opens a transaction labelled for logs.
func (d *Document) Begin(ctx context.Context, label string) (host.Transaction, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction %q: %w", label, err)
	}
	d.logger.Debug("Transaction started", zap.String("label", label))
	return &transaction{doc: d, tx: tx, label: label}, nil
}

func newID() host.ElementID {
	return host.ElementID(uuid.NewString())
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertElement(ctx context.Context, ex execer, id host.ElementID, category host.Category, class host.Class, name string) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO elements (id, category, class, name, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(id), string(category), string(class), name, now())
	return err
}
