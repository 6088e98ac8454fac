package services_test

import (
	"context"
	"testing"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExtractionSvc ---
type MockExtractionSvc struct {
	mock.Mock
}

func (m *MockExtractionSvc) ExtractAndStore(ctx context.Context, documentID string) (*domain.ExtractedInfo, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedInfo), args.Error(1)
}

// --- Test Suite ---
type MatcherServiceTestSuite struct {
	suite.Suite
	mockDocRepo    *MockDocumentRepository
	mockMetaRepo   *MockMetadataRepository
	mockChainRepo  *MockChainRepository
	mockExtraction *MockExtractionSvc
	service        portssvc.MatcherSvc
}

func (suite *MatcherServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockMetaRepo = new(MockMetadataRepository)
	suite.mockChainRepo = new(MockChainRepository)
	suite.mockExtraction = new(MockExtractionSvc)
	suite.service = services.NewMatcherService(suite.mockDocRepo, suite.mockMetaRepo, suite.mockChainRepo, suite.mockExtraction)
}

func strPtr(s string) *string { return &s }

func orderInfo(docID, orderNumber string) *domain.ExtractedInfo {
	return &domain.ExtractedInfo{
		DocumentID:  docID,
		DocType:     domain.DocTypeOrder,
		OrderNumber: strPtr(orderNumber),
	}
}

func invoiceInfo(docID, orderNumber string) *domain.ExtractedInfo {
	info := &domain.ExtractedInfo{
		DocumentID:    docID,
		DocType:       domain.DocTypeInvoice,
		InvoiceNumber: strPtr("FV-" + docID),
	}
	if orderNumber != "" {
		info.OrderNumber = strPtr(orderNumber)
	}
	return info
}

// --- Match ---

func (suite *MatcherServiceTestSuite) TestMatch_OrderNumberLinksInvoice() {
	ctx := context.Background()
	anchor := orderInfo("doc-order", "OBJ-2024-001")

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-order").Return(anchor, nil).Once()
	suite.mockMetaRepo.On("FindByOrderNumber", ctx, "OBJ-2024-001", "doc-order").
		Return([]domain.ExtractedInfo{*invoiceInfo("doc-invoice", "OBJ-2024-001")}, nil).Once()

	matches, err := suite.service.Match(ctx, "doc-order")

	suite.Require().NoError(err)
	suite.Equal("doc-order", matches.AnchorDocID)
	suite.Equal("doc-order", matches.Roles[domain.RoleOrder])
	suite.Equal("doc-invoice", matches.Roles[domain.RoleInvoice])
	suite.mockMetaRepo.AssertExpectations(suite.T())
}

func (suite *MatcherServiceTestSuite) TestMatch_NoIdentifiers() {
	ctx := context.Background()
	anchor := &domain.ExtractedInfo{DocumentID: "doc-bare", DocType: domain.DocTypeInvoice}

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-bare").Return(anchor, nil).Once()

	matches, err := suite.service.Match(ctx, "doc-bare")

	suite.Require().NoError(err)
	suite.Len(matches.Roles, 1)
	suite.Equal("doc-bare", matches.Roles[domain.RoleInvoice])
	suite.mockMetaRepo.AssertNotCalled(suite.T(), "FindByOrderNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MatcherServiceTestSuite) TestMatch_FirstCandidatePerRoleWins() {
	ctx := context.Background()
	anchor := orderInfo("doc-order", "OBJ-7")

	// Two invoices share the order number; the newest-first ordering from
	// the repository decides which one takes the invoice role.
	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-order").Return(anchor, nil).Once()
	suite.mockMetaRepo.On("FindByOrderNumber", ctx, "OBJ-7", "doc-order").
		Return([]domain.ExtractedInfo{
			*invoiceInfo("doc-invoice-new", "OBJ-7"),
			*invoiceInfo("doc-invoice-old", "OBJ-7"),
		}, nil).Once()

	matches, err := suite.service.Match(ctx, "doc-order")

	suite.Require().NoError(err)
	suite.Equal("doc-invoice-new", matches.Roles[domain.RoleInvoice])
}

func (suite *MatcherServiceTestSuite) TestMatch_StrongerKeyShadowsWeaker() {
	ctx := context.Background()
	anchor := &domain.ExtractedInfo{
		DocumentID:     "doc-order",
		DocType:        domain.DocTypeOrder,
		OrderNumber:    strPtr("OBJ-9"),
		VariableSymbol: strPtr("20240009"),
	}

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-order").Return(anchor, nil).Once()
	suite.mockMetaRepo.On("FindByOrderNumber", ctx, "OBJ-9", "doc-order").
		Return([]domain.ExtractedInfo{*invoiceInfo("doc-invoice-strong", "OBJ-9")}, nil).Once()
	suite.mockMetaRepo.On("FindByVariableSymbol", ctx, "20240009", "doc-order").
		Return([]domain.ExtractedInfo{
			*invoiceInfo("doc-invoice-weak", ""),
			{DocumentID: "doc-payment", DocType: domain.DocTypePayment, VariableSymbol: strPtr("20240009")},
		}, nil).Once()

	matches, err := suite.service.Match(ctx, "doc-order")

	suite.Require().NoError(err)
	suite.Equal("doc-invoice-strong", matches.Roles[domain.RoleInvoice])
	suite.Equal("doc-payment", matches.Roles[domain.RolePayment])
}

func (suite *MatcherServiceTestSuite) TestMatch_BankStatementDocActsAsPayment() {
	ctx := context.Background()
	anchor := orderInfo("doc-order", "OBJ-11")

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-order").Return(anchor, nil).Once()
	suite.mockMetaRepo.On("FindByOrderNumber", ctx, "OBJ-11", "doc-order").
		Return([]domain.ExtractedInfo{
			{DocumentID: "doc-stmt", DocType: domain.DocTypeBankStmt, OrderNumber: strPtr("OBJ-11")},
		}, nil).Once()

	matches, err := suite.service.Match(ctx, "doc-order")

	suite.Require().NoError(err)
	suite.Equal("doc-stmt", matches.Roles[domain.RolePayment])
}

// --- CreateOrUpdateChain ---

func (suite *MatcherServiceTestSuite) TestCreateOrUpdateChain_DerivesStatusAndConfidence() {
	ctx := context.Background()
	total := decimal.RequireFromString("12500")
	matches := portssvc.RoleMatches{
		AnchorDocID: "doc-order",
		Roles: map[domain.ChainRole]string{
			domain.RoleOrder:   "doc-order",
			domain.RoleInvoice: "doc-invoice",
		},
	}

	anchorMeta := orderInfo("doc-order", "OBJ-1")
	invoiceMeta := invoiceInfo("doc-invoice", "OBJ-1")
	invoiceMeta.AmountWithVAT = &total
	invoiceMeta.VendorName = strPtr("ACME s.r.o.")

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-invoice").Return(invoiceMeta, nil).Once()
	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-order").Return(anchorMeta, nil).Once()
	suite.mockChainRepo.On("UpsertChain", ctx, mock.MatchedBy(func(c domain.DocumentChain) bool {
		return c.ChainID == domain.NewChainID("doc-order") &&
			c.Status == domain.StatusInvoiced &&
			c.Confidence.Equal(decimal.RequireFromString("0.5")) &&
			c.InvoiceNumber != nil && *c.InvoiceNumber == "FV-doc-invoice" &&
			c.VendorName != nil && *c.VendorName == "ACME s.r.o." &&
			c.TotalAmount != nil && c.TotalAmount.Equal(total)
	})).Return(nil).Once()

	chainID, err := suite.service.CreateOrUpdateChain(ctx, matches)

	suite.Require().NoError(err)
	suite.Equal(domain.NewChainID("doc-order"), chainID)
	suite.mockChainRepo.AssertExpectations(suite.T())
}

func (suite *MatcherServiceTestSuite) TestCreateOrUpdateChain_IsDeterministic() {
	ctx := context.Background()
	matches := portssvc.RoleMatches{
		AnchorDocID: "doc-order",
		Roles:       map[domain.ChainRole]string{domain.RoleOrder: "doc-order"},
	}

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-order").Return(orderInfo("doc-order", "OBJ-1"), nil).Twice()
	suite.mockChainRepo.On("UpsertChain", ctx, mock.Anything).Return(nil).Twice()

	first, err := suite.service.CreateOrUpdateChain(ctx, matches)
	suite.Require().NoError(err)
	second, err := suite.service.CreateOrUpdateChain(ctx, matches)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

// --- ResolveDocument ---

func (suite *MatcherServiceTestSuite) TestResolveDocument_NoRelatedDocsNoChain() {
	ctx := context.Background()
	anchor := orderInfo("doc-lonely", "OBJ-404")

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-lonely").Return(anchor, nil).Once()
	suite.mockMetaRepo.On("FindByOrderNumber", ctx, "OBJ-404", "doc-lonely").
		Return([]domain.ExtractedInfo{}, nil).Once()

	chainID, err := suite.service.ResolveDocument(ctx, "doc-lonely")

	suite.Require().NoError(err)
	suite.Empty(chainID)
	suite.mockChainRepo.AssertNotCalled(suite.T(), "UpsertChain", mock.Anything, mock.Anything)
}

// --- MatchAll ---

func (suite *MatcherServiceTestSuite) TestMatchAll_ExtractsThenResolves() {
	ctx := context.Background()
	orderDoc := domain.Document{DocumentID: "doc-order", DocType: domain.DocTypeOrder}

	suite.mockDocRepo.On("ListUnprocessedDocuments", ctx, 0).
		Return([]domain.Document{orderDoc}, nil).Once()
	suite.mockExtraction.On("ExtractAndStore", ctx, "doc-order").
		Return(orderInfo("doc-order", "OBJ-1"), nil).Once()

	suite.mockDocRepo.On("ListDocumentsByType", ctx, domain.DocTypeOrder, 0).
		Return([]domain.Document{orderDoc}, nil).Once()
	suite.mockDocRepo.On("ListDocumentsByType", ctx, domain.DocTypeInvoice, 0).
		Return([]domain.Document{}, nil).Once()

	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-order").
		Return(orderInfo("doc-order", "OBJ-1"), nil)
	suite.mockMetaRepo.On("FindByOrderNumber", ctx, "OBJ-1", "doc-order").
		Return([]domain.ExtractedInfo{*invoiceInfo("doc-invoice", "OBJ-1")}, nil).Once()
	suite.mockMetaRepo.On("FindMetadataByDocID", ctx, "doc-invoice").
		Return(invoiceInfo("doc-invoice", "OBJ-1"), nil)
	suite.mockChainRepo.On("UpsertChain", ctx, mock.Anything).Return(nil).Once()

	stats, err := suite.service.MatchAll(ctx, 0)

	suite.Require().NoError(err)
	suite.Equal(1, stats.Total)
	suite.Equal(1, stats.Extracted)
	suite.Equal(1, stats.MatchedChains)
	suite.Equal(0, stats.Failed)
	suite.mockExtraction.AssertExpectations(suite.T())
}

func (suite *MatcherServiceTestSuite) TestMatchAll_SkipsChainedInvoices() {
	ctx := context.Background()
	invoiceDoc := domain.Document{DocumentID: "doc-invoice", DocType: domain.DocTypeInvoice}
	existing := &domain.DocumentChain{ChainID: "chn-existing", InvoiceDocID: strPtr("doc-invoice")}

	suite.mockDocRepo.On("ListUnprocessedDocuments", ctx, 0).
		Return([]domain.Document{}, nil).Once()
	suite.mockDocRepo.On("ListDocumentsByType", ctx, domain.DocTypeOrder, 0).
		Return([]domain.Document{}, nil).Once()
	suite.mockDocRepo.On("ListDocumentsByType", ctx, domain.DocTypeInvoice, 0).
		Return([]domain.Document{invoiceDoc}, nil).Once()
	suite.mockChainRepo.On("FindChainContainingDoc", ctx, "doc-invoice").Return(existing, nil).Once()

	stats, err := suite.service.MatchAll(ctx, 0)

	suite.Require().NoError(err)
	suite.Equal(0, stats.MatchedChains)
	suite.mockMetaRepo.AssertNotCalled(suite.T(), "FindMetadataByDocID", mock.Anything, mock.Anything)
}

func (suite *MatcherServiceTestSuite) TestMatchAll_ExtractionFailureIsCounted() {
	ctx := context.Background()
	badDoc := domain.Document{DocumentID: "doc-bad", DocType: domain.DocTypeInvoice}

	suite.mockDocRepo.On("ListUnprocessedDocuments", ctx, 0).
		Return([]domain.Document{badDoc}, nil).Once()
	suite.mockExtraction.On("ExtractAndStore", ctx, "doc-bad").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDocRepo.On("ListDocumentsByType", ctx, domain.DocTypeOrder, 0).
		Return([]domain.Document{}, nil).Once()
	suite.mockDocRepo.On("ListDocumentsByType", ctx, domain.DocTypeInvoice, 0).
		Return([]domain.Document{}, nil).Once()

	stats, err := suite.service.MatchAll(ctx, 0)

	suite.Require().NoError(err)
	suite.Equal(1, stats.Total)
	suite.Equal(0, stats.Extracted)
	suite.Equal(1, stats.Failed)
}

func TestMatcherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MatcherServiceTestSuite))
}
