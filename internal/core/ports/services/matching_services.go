package services

import (
	"context"

	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// RoleMatches is the outcome of matching one anchor document: the documents
// assigned to each lifecycle role, including the anchor itself.
type RoleMatches struct {
	AnchorDocID string
	Roles       map[domain.ChainRole]string // role -> document id
}

// MatchStats summarizes a batch matching run. Batch operations report
// counts instead of aborting on the first per-document error.
type MatchStats struct {
	Total         int `json:"total"`
	Extracted     int `json:"extracted"`
	MatchedChains int `json:"matchedChains"`
	Failed        int `json:"failed"`
}

// ExtractionSvc extracts and stores document metadata.
type ExtractionSvc interface {
	// ExtractAndStore runs field extraction over a document's text and
	// upserts the extraction record, fully replacing any previous one.
	ExtractAndStore(ctx context.Context, documentID string) (*domain.ExtractedInfo, error)
}

// MatcherSvc resolves documents into chains.
type MatcherSvc interface {
	// Match finds candidate related documents for the given anchor and
	// assigns them to lifecycle roles. No identifier hit is not an error:
	// the result then contains only the anchor role.
	Match(ctx context.Context, documentID string) (*RoleMatches, error)

	// CreateOrUpdateChain persists the chain for the matched role set and
	// returns its chain id. Already-filled role slots are never replaced.
	CreateOrUpdateChain(ctx context.Context, matches RoleMatches) (string, error)

	// ResolveDocument runs Match and CreateOrUpdateChain as one unit for a
	// single anchor document. A match with no related documents yields no
	// chain and returns an empty chain id.
	ResolveDocument(ctx context.Context, documentID string) (string, error)

	// MatchAll extracts metadata for every unprocessed document and then
	// resolves chains anchored from order and invoice documents. limit
	// bounds the number of documents considered (0 = no limit). Re-running
	// over an unchanged document set yields an identical chain set.
	MatchAll(ctx context.Context, limit int) (*MatchStats, error)
}
