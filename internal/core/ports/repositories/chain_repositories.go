package repositories

import (
	"context"

	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// ChainReader defines read operations for document chains.
type ChainReader interface {
	// FindChainByID retrieves a chain by its identifier.
	FindChainByID(ctx context.Context, chainID string) (*domain.DocumentChain, error)

	// FindChainByAnchor retrieves the chain anchored at a document, if any.
	FindChainByAnchor(ctx context.Context, anchorDocID string) (*domain.DocumentChain, error)

	// FindChainContainingDoc retrieves a chain where the document occupies
	// any role slot, if such a chain exists.
	FindChainContainingDoc(ctx context.Context, documentID string) (*domain.DocumentChain, error)

	// ListChains retrieves chains, newest first, optionally filtered by
	// status (nil = all).
	ListChains(ctx context.Context, status *domain.ChainStatus, limit int, offset int) ([]domain.DocumentChain, error)
}

// ChainWriter defines write operations for document chains.
type ChainWriter interface {
	// UpsertChain creates the chain or updates it in place. The store
	// enforces one chain per anchor document; on conflict, already-filled
	// role slots are never overwritten, so concurrent resolutions of the
	// same anchor converge on one row.
	UpsertChain(ctx context.Context, chain domain.DocumentChain) error
}

// ChainRepositoryFacade combines all chain repository interfaces.
type ChainRepositoryFacade interface {
	ChainReader
	ChainWriter
}
