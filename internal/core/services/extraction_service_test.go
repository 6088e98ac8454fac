package services_test

import (
	"context"
	"testing"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExtractionServiceTestSuite struct {
	suite.Suite
	mockDocRepo  *MockDocumentRepository
	mockMetaRepo *MockMetadataRepository
	service      portssvc.ExtractionSvc
}

func (suite *ExtractionServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockMetaRepo = new(MockMetadataRepository)
	suite.service = services.NewExtractionService(suite.mockDocRepo, suite.mockMetaRepo)
}

func (suite *ExtractionServiceTestSuite) TestExtractAndStore_Success() {
	ctx := context.Background()
	doc := &domain.Document{
		DocumentID: "doc-1",
		DocType:    domain.DocTypeInvoice,
		Text:       "Faktura č. FV-2024-0123\nVariabilní symbol: 20240001\n",
	}

	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(doc, nil).Once()
	suite.mockMetaRepo.On("UpsertMetadata", ctx, mock.MatchedBy(func(info domain.ExtractedInfo) bool {
		return info.DocumentID == "doc-1" &&
			info.InvoiceNumber != nil && *info.InvoiceNumber == "FV-2024-0123" &&
			info.VariableSymbol != nil && *info.VariableSymbol == "20240001"
	})).Return(nil).Once()
	suite.mockDocRepo.On("MarkDocumentProcessed", ctx, "doc-1", mock.Anything).Return(nil).Once()

	info, err := suite.service.ExtractAndStore(ctx, "doc-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(info)
	suite.True(info.HasAnyIdentifier())
	suite.mockMetaRepo.AssertExpectations(suite.T())
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *ExtractionServiceTestSuite) TestExtractAndStore_EmptyTextStillProcessed() {
	ctx := context.Background()
	doc := &domain.Document{DocumentID: "doc-2", DocType: domain.DocTypeOrder, Text: ""}

	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-2").Return(doc, nil).Once()
	suite.mockMetaRepo.On("UpsertMetadata", ctx, mock.MatchedBy(func(info domain.ExtractedInfo) bool {
		return info.DocumentID == "doc-2" && !info.HasAnyIdentifier()
	})).Return(nil).Once()
	suite.mockDocRepo.On("MarkDocumentProcessed", ctx, "doc-2", mock.Anything).Return(nil).Once()

	info, err := suite.service.ExtractAndStore(ctx, "doc-2")

	suite.Require().NoError(err)
	suite.False(info.HasAnyIdentifier())
}

func (suite *ExtractionServiceTestSuite) TestExtractAndStore_DocumentMissing() {
	ctx := context.Background()

	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ExtractAndStore(ctx, "doc-missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMetaRepo.AssertNotCalled(suite.T(), "UpsertMetadata", mock.Anything, mock.Anything)
}

func TestExtractionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExtractionServiceTestSuite))
}
