package repositories

import (
	"context"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// DocumentReader defines read operations for ingested documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a paginated list of documents, newest first.
	ListDocuments(ctx context.Context, limit int, offset int) ([]domain.Document, error)

	// ListUnprocessedDocuments retrieves documents that have not had
	// metadata extracted yet, oldest first, up to limit (0 = no limit).
	ListUnprocessedDocuments(ctx context.Context, limit int) ([]domain.Document, error)

	// ListDocumentsByType retrieves processed documents of one type,
	// oldest first, up to limit (0 = no limit).
	ListDocumentsByType(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.Document, error)
}

// DocumentWriter defines write operations for ingested documents.
type DocumentWriter interface {
	// SaveDocument persists a new document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// MarkDocumentProcessed flags a document as having metadata extracted.
	MarkDocumentProcessed(ctx context.Context, documentID string, now time.Time) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
