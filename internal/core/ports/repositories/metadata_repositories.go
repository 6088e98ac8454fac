package repositories

import (
	"context"

	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// MetadataReader defines read operations for extraction records. The
// Find*Number lookups back the chain matching priority order and must
// return candidates most-recently-created first (the role tie-break).
type MetadataReader interface {
	// FindMetadataByDocID retrieves the extraction record for one document.
	FindMetadataByDocID(ctx context.Context, documentID string) (*domain.ExtractedInfo, error)

	// FindByOrderNumber retrieves records sharing an order number,
	// excluding the given document, newest first.
	FindByOrderNumber(ctx context.Context, orderNumber string, excludeDocID string) ([]domain.ExtractedInfo, error)

	// FindByInvoiceNumber retrieves records sharing an invoice number,
	// excluding the given document, newest first.
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string, excludeDocID string) ([]domain.ExtractedInfo, error)

	// FindByVariableSymbol retrieves records sharing a variable symbol,
	// excluding the given document, newest first.
	FindByVariableSymbol(ctx context.Context, variableSymbol string, excludeDocID string) ([]domain.ExtractedInfo, error)
}

// MetadataWriter defines write operations for extraction records.
type MetadataWriter interface {
	// UpsertMetadata stores an extraction record, fully replacing any
	// previous record for the same document. There is no partial merge.
	UpsertMetadata(ctx context.Context, info domain.ExtractedInfo) error
}

// MetadataRepositoryFacade combines all metadata repository interfaces.
type MetadataRepositoryFacade interface {
	MetadataReader
	MetadataWriter
}
