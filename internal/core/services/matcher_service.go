package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/middleware"
	"github.com/shopspring/decimal"
)

type matcherService struct {
	documentRepo  portsrepo.DocumentRepositoryFacade
	metadataRepo  portsrepo.MetadataRepositoryFacade
	chainRepo     portsrepo.ChainRepositoryFacade
	extractionSvc portssvc.ExtractionSvc
}

// NewMatcherService creates the service that resolves documents into chains.
func NewMatcherService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	metadataRepo portsrepo.MetadataRepositoryFacade,
	chainRepo portsrepo.ChainRepositoryFacade,
	extractionSvc portssvc.ExtractionSvc,
) portssvc.MatcherSvc {
	return &matcherService{
		documentRepo:  documentRepo,
		metadataRepo:  metadataRepo,
		chainRepo:     chainRepo,
		extractionSvc: extractionSvc,
	}
}

var _ portssvc.MatcherSvc = (*matcherService)(nil)

// keyLookup pairs one identifier value with the repository lookup for it.
type keyLookup struct {
	name  string
	value *string
	find  func(ctx context.Context, value string, excludeDocID string) ([]domain.ExtractedInfo, error)
}

// Match finds related documents for the anchor and assigns them to roles.
// Keys are tried strongest first: order number, then invoice number, then
// variable symbol. A role filled by a stronger key is never displaced by a
// weaker one; within one key, candidates arrive newest first and the first
// candidate for a role wins.
func (s *matcherService) Match(ctx context.Context, documentID string) (*portssvc.RoleMatches, error) {
	anchor, err := s.metadataRepo.FindMetadataByDocID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load anchor metadata: %w", err)
	}

	matches := &portssvc.RoleMatches{
		AnchorDocID: documentID,
		Roles:       make(map[domain.ChainRole]string),
	}
	if role, ok := domain.RoleForDocType(anchor.DocType); ok {
		matches.Roles[role] = documentID
	}
	if !anchor.HasAnyIdentifier() {
		return matches, nil
	}

	lookups := []keyLookup{
		{"order_number", anchor.OrderNumber, s.metadataRepo.FindByOrderNumber},
		{"invoice_number", anchor.InvoiceNumber, s.metadataRepo.FindByInvoiceNumber},
		{"variable_symbol", anchor.VariableSymbol, s.metadataRepo.FindByVariableSymbol},
	}
	for _, lk := range lookups {
		if lk.value == nil || *lk.value == "" {
			continue
		}
		candidates, err := lk.find(ctx, *lk.value, documentID)
		if err != nil {
			return nil, fmt.Errorf("failed to find candidates by %s: %w", lk.name, err)
		}
		for _, cand := range candidates {
			role, ok := domain.RoleForDocType(cand.DocType)
			if !ok {
				continue
			}
			if _, taken := matches.Roles[role]; taken {
				continue
			}
			matches.Roles[role] = cand.DocumentID
		}
	}
	return matches, nil
}

// CreateOrUpdateChain persists the chain row for the matched role set.
// The chain id is derived from the anchor document id, so re-resolving the
// same anchor always lands on the same row; the store keeps already-filled
// role slots.
func (s *matcherService) CreateOrUpdateChain(ctx context.Context, matches portssvc.RoleMatches) (string, error) {
	now := time.Now()
	chain := domain.DocumentChain{
		ChainID:     domain.NewChainID(matches.AnchorDocID),
		AnchorDocID: matches.AnchorDocID,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	for role, docID := range matches.Roles {
		chain.FillRole(role, docID)
	}

	s.denormalize(ctx, &chain)
	chain.DeriveStatus()
	chain.Confidence = chainConfidence(&chain)

	if err := s.chainRepo.UpsertChain(ctx, chain); err != nil {
		return "", fmt.Errorf("failed to persist chain: %w", err)
	}
	return chain.ChainID, nil
}

// denormalize copies headline fields (identifiers, vendor, total) onto the
// chain from its role documents. Roles are visited in precedence order and
// the first non-empty value per field wins.
func (s *matcherService) denormalize(ctx context.Context, chain *domain.DocumentChain) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, role := range domain.RolePrecedence {
		docID := chain.DocIDForRole(role)
		if docID == nil {
			continue
		}
		info, err := s.metadataRepo.FindMetadataByDocID(ctx, *docID)
		if err != nil {
			// A role document without a record only degrades denormalized
			// fields, never the chain itself.
			logger.Warn("Missing metadata for chain role document",
				slog.String("document_id", *docID),
				slog.String("role", string(role)))
			continue
		}
		if chain.OrderNumber == nil {
			chain.OrderNumber = info.OrderNumber
		}
		if chain.InvoiceNumber == nil {
			chain.InvoiceNumber = info.InvoiceNumber
		}
		if chain.VariableSymbol == nil {
			chain.VariableSymbol = info.VariableSymbol
		}
		if chain.VendorName == nil {
			chain.VendorName = info.VendorName
		}
		if chain.VendorICO == nil {
			chain.VendorICO = info.VendorICO
		}
		if chain.TotalAmount == nil {
			chain.TotalAmount = info.AmountWithVAT
		}
	}
}

// chainConfidence scores a chain by how much of the lifecycle it covers:
// a quarter per filled role.
func chainConfidence(chain *domain.DocumentChain) decimal.Decimal {
	filled := 0
	for _, role := range domain.RolePrecedence {
		if chain.DocIDForRole(role) != nil {
			filled++
		}
	}
	return decimal.New(int64(filled*25), -2)
}

// ResolveDocument matches one anchor document and persists the resulting
// chain. An anchor whose match set contains no other document produces no
// chain and returns an empty chain id.
func (s *matcherService) ResolveDocument(ctx context.Context, documentID string) (string, error) {
	matches, err := s.Match(ctx, documentID)
	if err != nil {
		return "", err
	}
	if len(matches.Roles) < 2 {
		return "", nil
	}
	return s.CreateOrUpdateChain(ctx, *matches)
}

// MatchAll is the batch pipeline: extract every unprocessed document, then
// resolve chains anchored from order documents and from invoice documents
// not already chained. Per-document failures are counted, not fatal, so one
// broken document cannot stall the batch. Re-running over an unchanged
// document set produces the same chains.
func (s *matcherService) MatchAll(ctx context.Context, limit int) (*portssvc.MatchStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	stats := &portssvc.MatchStats{}

	unprocessed, err := s.documentRepo.ListUnprocessedDocuments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed documents: %w", err)
	}
	stats.Total = len(unprocessed)
	for _, doc := range unprocessed {
		if _, err := s.extractionSvc.ExtractAndStore(ctx, doc.DocumentID); err != nil {
			stats.Failed++
			logger.Warn("Extraction failed",
				slog.String("document_id", doc.DocumentID),
				slog.String("error", err.Error()))
			continue
		}
		stats.Extracted++
	}

	// Orders anchor first; invoices anchor the chains orders never reached.
	for _, docType := range []domain.DocumentType{domain.DocTypeOrder, domain.DocTypeInvoice} {
		docs, err := s.documentRepo.ListDocumentsByType(ctx, docType, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s documents: %w", docType, err)
		}
		for _, doc := range docs {
			if docType == domain.DocTypeInvoice {
				if _, err := s.chainRepo.FindChainContainingDoc(ctx, doc.DocumentID); err == nil {
					continue // already on an order-anchored chain
				} else if !errors.Is(err, apperrors.ErrNotFound) {
					stats.Failed++
					continue
				}
			}
			chainID, err := s.ResolveDocument(ctx, doc.DocumentID)
			if err != nil {
				stats.Failed++
				logger.Warn("Chain resolution failed",
					slog.String("document_id", doc.DocumentID),
					slog.String("error", err.Error()))
				continue
			}
			if chainID != "" {
				stats.MatchedChains++
			}
		}
	}
	return stats, nil
}
