package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/extractor"
	"github.com/docuchain/docuchain_app/internal/middleware"
)

type extractionService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	metadataRepo portsrepo.MetadataRepositoryFacade
}

// NewExtractionService creates the service that runs field extraction over
// stored documents.
func NewExtractionService(documentRepo portsrepo.DocumentRepositoryFacade, metadataRepo portsrepo.MetadataRepositoryFacade) portssvc.ExtractionSvc {
	return &extractionService{
		documentRepo: documentRepo,
		metadataRepo: metadataRepo,
	}
}

var _ portssvc.ExtractionSvc = (*extractionService)(nil)

// ExtractAndStore loads the document text, runs the pattern extractor over
// it and stores the result. Re-running replaces the previous record whole;
// a document whose text yields nothing still gets an (empty) record and is
// marked processed, so batch runs do not revisit it.
func (s *extractionService) ExtractAndStore(ctx context.Context, documentID string) (*domain.ExtractedInfo, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document for extraction: %w", err)
	}

	info := extractor.Extract(doc.Text, doc.DocType)
	info.DocumentID = doc.DocumentID

	now := time.Now()
	info.CreatedAt = now
	info.LastUpdatedAt = now

	if err := s.metadataRepo.UpsertMetadata(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to store extraction record: %w", err)
	}
	if err := s.documentRepo.MarkDocumentProcessed(ctx, doc.DocumentID, now); err != nil {
		return nil, fmt.Errorf("failed to mark document processed: %w", err)
	}

	if !info.HasAnyIdentifier() {
		logger.Debug("Extraction found no matching identifiers",
			slog.String("document_id", doc.DocumentID),
			slog.String("doc_type", string(doc.DocType)))
	}
	return &info, nil
}
