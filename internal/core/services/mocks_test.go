package services_test

import (
	"context"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, limit int, offset int) ([]domain.Document, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListUnprocessedDocuments(ctx context.Context, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByType(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, docType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) MarkDocumentProcessed(ctx context.Context, documentID string, now time.Time) error {
	args := m.Called(ctx, documentID, now)
	return args.Error(0)
}

// --- Mock MetadataRepository ---
type MockMetadataRepository struct {
	mock.Mock
}

func (m *MockMetadataRepository) FindMetadataByDocID(ctx context.Context, documentID string) (*domain.ExtractedInfo, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedInfo), args.Error(1)
}

func (m *MockMetadataRepository) FindByOrderNumber(ctx context.Context, orderNumber string, excludeDocID string) ([]domain.ExtractedInfo, error) {
	args := m.Called(ctx, orderNumber, excludeDocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractedInfo), args.Error(1)
}

func (m *MockMetadataRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string, excludeDocID string) ([]domain.ExtractedInfo, error) {
	args := m.Called(ctx, invoiceNumber, excludeDocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractedInfo), args.Error(1)
}

func (m *MockMetadataRepository) FindByVariableSymbol(ctx context.Context, variableSymbol string, excludeDocID string) ([]domain.ExtractedInfo, error) {
	args := m.Called(ctx, variableSymbol, excludeDocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractedInfo), args.Error(1)
}

func (m *MockMetadataRepository) UpsertMetadata(ctx context.Context, info domain.ExtractedInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

// --- Mock ChainRepository ---
type MockChainRepository struct {
	mock.Mock
}

func (m *MockChainRepository) FindChainByID(ctx context.Context, chainID string) (*domain.DocumentChain, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentChain), args.Error(1)
}

func (m *MockChainRepository) FindChainByAnchor(ctx context.Context, anchorDocID string) (*domain.DocumentChain, error) {
	args := m.Called(ctx, anchorDocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentChain), args.Error(1)
}

func (m *MockChainRepository) FindChainContainingDoc(ctx context.Context, documentID string) (*domain.DocumentChain, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentChain), args.Error(1)
}

func (m *MockChainRepository) ListChains(ctx context.Context, status *domain.ChainStatus, limit int, offset int) ([]domain.DocumentChain, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentChain), args.Error(1)
}

func (m *MockChainRepository) UpsertChain(ctx context.Context, chain domain.DocumentChain) error {
	args := m.Called(ctx, chain)
	return args.Error(0)
}

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) ListStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) SaveStatement(ctx context.Context, tx pgx.Tx, stmt domain.Statement) error {
	args := m.Called(ctx, tx, stmt)
	return args.Error(0)
}

func (m *MockStatementRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockStatementRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStatementRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
