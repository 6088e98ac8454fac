package repositories

import (
	"context"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StatementReader defines read operations for parsed bank statements.
type StatementReader interface {
	// FindStatementByID retrieves a statement with its transactions.
	FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error)

	// ListStatements retrieves statement headers (without transactions),
	// newest first.
	ListStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error)
}

// StatementWriter defines write operations for parsed bank statements.
// Statements are read-only after parsing: saving an existing statement id
// replaces the whole statement and its transactions.
type StatementWriter interface {
	// SaveStatement persists a statement and its transactions within tx.
	SaveStatement(ctx context.Context, tx pgx.Tx, stmt domain.Statement) error
}

// StatementRepositoryFacade combines statement repository interfaces with
// transaction control, since statement import spans multiple tables.
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
	TransactionManager
}
