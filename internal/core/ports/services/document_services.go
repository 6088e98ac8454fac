package services

import (
	"context"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/docuchain/docuchain_app/internal/dto"
)

// DocumentSvc manages the registry of ingested documents.
type DocumentSvc interface {
	// RegisterDocument stores a new document (raw text plus the
	// classifier's type label) and returns it.
	RegisterDocument(ctx context.Context, req dto.CreateDocumentRequest) (*domain.Document, error)

	// GetDocumentByID retrieves a document.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// GetMetadataByDocID retrieves the stored extraction record for a document.
	GetMetadataByDocID(ctx context.Context, documentID string) (*domain.ExtractedInfo, error)

	// ListDocuments retrieves a paginated list of documents.
	ListDocuments(ctx context.Context, limit int, offset int) ([]domain.Document, error)
}

// ChainSvc exposes read access to resolved chains.
type ChainSvc interface {
	// GetChainByID retrieves one chain.
	GetChainByID(ctx context.Context, chainID string) (*domain.DocumentChain, error)

	// ListChains retrieves chains, optionally filtered by status.
	ListChains(ctx context.Context, status *domain.ChainStatus, limit int, offset int) ([]domain.DocumentChain, error)

	// ExportChains returns every chain for JSON export.
	ExportChains(ctx context.Context) ([]domain.DocumentChain, error)
}

// StatementSvc parses and imports bank statements. The format argument
// selects the decoder; FormatUnknown (or empty) means auto-detect.
type StatementSvc interface {
	// ParseStatement decodes raw statement content without persisting it.
	ParseStatement(ctx context.Context, content []byte, format domain.StatementFormat) (*domain.Statement, error)

	// ImportStatement parses content, persists the statement and registers
	// its transactions as payment candidates for chain matching.
	ImportStatement(ctx context.Context, content []byte, format domain.StatementFormat) (*domain.Statement, int, error)

	// GetStatementByID retrieves a stored statement with transactions.
	GetStatementByID(ctx context.Context, statementID string) (*domain.Statement, error)
}
