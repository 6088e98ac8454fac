package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	"github.com/docuchain/docuchain_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	pool *pgxpool.Pool
}

// newPgxDocumentRepository creates a new repository for document data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{pool: pool}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryFacade
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func toModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID: d.DocumentID,
		DocType:    string(d.DocType),
		Text:       d.Text,
		Source:     d.Source,
		Processed:  d.Processed,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID: m.DocumentID,
		DocType:    domain.DocumentType(m.DocType),
		Text:       m.Text,
		Source:     m.Source,
		Processed:  m.Processed,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const documentColumns = `document_id, doc_type, text, source, processed, created_at, last_updated_at`

// SaveDocument inserts a new document.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := toModelDocument(doc)

	query := `
		INSERT INTO documents (document_id, doc_type, text, source, processed, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		m.DocumentID, m.DocType, m.Text, m.Source, m.Processed, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: document with ID %s already exists", apperrors.ErrDuplicate, m.DocumentID)
		}
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	var m models.Document
	err := r.pool.QueryRow(ctx, query, documentID).Scan(
		&m.DocumentID, &m.DocType, &m.Text, &m.Source, &m.Processed, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	doc := toDomainDocument(m)
	return &doc, nil
}

// ListDocuments retrieves a paginated list of documents, newest first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, limit int, offset int) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, document_id DESC LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// ListUnprocessedDocuments retrieves documents awaiting metadata extraction,
// oldest first. limit 0 means no limit.
func (r *PgxDocumentRepository) ListUnprocessedDocuments(ctx context.Context, limit int) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE NOT processed ORDER BY created_at ASC, document_id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	query += `;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// ListDocumentsByType retrieves processed documents of one type, oldest first.
func (r *PgxDocumentRepository) ListDocumentsByType(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE doc_type = $1 AND processed ORDER BY created_at ASC, document_id ASC`
	args := []any{string(docType)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	query += `;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", docType, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// MarkDocumentProcessed flags a document as having metadata extracted.
func (r *PgxDocumentRepository) MarkDocumentProcessed(ctx context.Context, documentID string, now time.Time) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE documents SET processed = TRUE, last_updated_at = $2 WHERE document_id = $1;`,
		documentID, now,
	)
	if err != nil {
		return fmt.Errorf("failed to mark document %s processed: %w", documentID, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
	}
	return nil
}

func scanDocuments(rows pgx.Rows) ([]domain.Document, error) {
	var docs []domain.Document
	for rows.Next() {
		var m models.Document
		if err := rows.Scan(&m.DocumentID, &m.DocType, &m.Text, &m.Source, &m.Processed, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, toDomainDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}
