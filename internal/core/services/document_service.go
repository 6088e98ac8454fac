package services

import (
	"context"
	"fmt"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/dto"
	"github.com/google/uuid"
)

type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	metadataRepo portsrepo.MetadataRepositoryFacade
}

// NewDocumentService creates the service managing the document registry.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, metadataRepo portsrepo.MetadataRepositoryFacade) portssvc.DocumentSvc {
	return &documentService{
		documentRepo: documentRepo,
		metadataRepo: metadataRepo,
	}
}

var _ portssvc.DocumentSvc = (*documentService)(nil)

func (s *documentService) RegisterDocument(ctx context.Context, req dto.CreateDocumentRequest) (*domain.Document, error) {
	// DTO binding already validated the doc type label.
	now := time.Now()
	doc := domain.Document{
		DocumentID: "doc-" + uuid.NewString(),
		DocType:    domain.DocumentType(req.DocType),
		Text:       req.Text,
		Source:     req.Source,
		Processed:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to register document: %w", err)
	}
	return &doc, nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (s *documentService) GetMetadataByDocID(ctx context.Context, documentID string) (*domain.ExtractedInfo, error) {
	info, err := s.metadataRepo.FindMetadataByDocID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document metadata: %w", err)
	}
	return info, nil
}

func (s *documentService) ListDocuments(ctx context.Context, limit int, offset int) ([]domain.Document, error) {
	docs, err := s.documentRepo.ListDocuments(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		return []domain.Document{}, nil
	}
	return docs, nil
}
