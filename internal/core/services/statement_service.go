package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/bankparser"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/middleware"
)

type statementService struct {
	statementRepo portsrepo.StatementRepositoryFacade
	documentRepo  portsrepo.DocumentRepositoryFacade
	metadataRepo  portsrepo.MetadataRepositoryFacade
}

// NewStatementService creates the service that parses and imports bank
// statements.
func NewStatementService(
	statementRepo portsrepo.StatementRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	metadataRepo portsrepo.MetadataRepositoryFacade,
) portssvc.StatementSvc {
	return &statementService{
		statementRepo: statementRepo,
		documentRepo:  documentRepo,
		metadataRepo:  metadataRepo,
	}
}

var _ portssvc.StatementSvc = (*statementService)(nil)

// decodeStatement parses content with the declared format, falling back to
// auto-detection when no format is given.
func decodeStatement(content []byte, format domain.StatementFormat) (*domain.Statement, error) {
	if format == "" || format == domain.FormatUnknown {
		return bankparser.Parse(content)
	}
	parser, err := bankparser.New(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return parser.Parse(content)
}

// ParseStatement decodes raw content into a normalized statement without
// touching the store.
func (s *statementService) ParseStatement(ctx context.Context, content []byte, format domain.StatementFormat) (*domain.Statement, error) {
	stmt, err := decodeStatement(content, format)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// ImportStatement parses content, stores the statement atomically and then
// registers each transaction carrying a variable symbol as a payment
// candidate for chain matching. Returns the statement and the number of
// payment candidates registered. Re-importing the same statement replaces
// it and leaves the candidate set unchanged.
func (s *statementService) ImportStatement(ctx context.Context, content []byte, format domain.StatementFormat) (*domain.Statement, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stmt, err := decodeStatement(content, format)
	if err != nil {
		return nil, 0, err
	}

	tx, err := s.statementRepo.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin statement import: %w", err)
	}
	if err := s.statementRepo.SaveStatement(ctx, tx, *stmt); err != nil {
		_ = s.statementRepo.Rollback(ctx, tx)
		return nil, 0, fmt.Errorf("failed to save statement: %w", err)
	}
	if err := s.statementRepo.Commit(ctx, tx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit statement import: %w", err)
	}

	registered := 0
	for seq, txn := range stmt.Transactions {
		if txn.VariableSymbol == "" {
			continue // nothing to correlate on
		}
		if err := s.registerPaymentCandidate(ctx, stmt, seq, txn); err != nil {
			logger.Warn("Failed to register payment candidate",
				slog.String("statement_id", stmt.StatementID),
				slog.Int("seq", seq),
				slog.String("error", err.Error()))
			continue
		}
		registered++
	}

	logger.Info("Statement imported",
		slog.String("statement_id", stmt.StatementID),
		slog.String("format", string(stmt.OriginalFormat)),
		slog.Int("transactions", len(stmt.Transactions)),
		slog.Int("payment_candidates", registered))
	return stmt, registered, nil
}

// registerPaymentCandidate stores one statement transaction as a payment
// document plus its extraction record. The document id is derived from the
// statement id and line position, so re-imports hit the same document.
func (s *statementService) registerPaymentCandidate(ctx context.Context, stmt *domain.Statement, seq int, txn domain.Transaction) error {
	now := time.Now()
	docID := fmt.Sprintf("doc-%s-%d", stmt.StatementID, seq)

	doc := domain.Document{
		DocumentID: docID,
		DocType:    domain.DocTypePayment,
		Text:       txn.Description,
		Source:     fmt.Sprintf("statement:%s", stmt.StatementID),
		Processed:  true, // metadata comes from the parsed line, not the extractor
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}

	vs := txn.VariableSymbol
	amount := txn.Amount.Abs()
	date := txn.Date
	info := domain.ExtractedInfo{
		DocumentID:     docID,
		DocType:        domain.DocTypePayment,
		VariableSymbol: &vs,
		AmountWithVAT:  &amount,
		IssueDate:      &date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if txn.CounterpartyName != "" {
		name := txn.CounterpartyName
		info.VendorName = &name
	}
	return s.metadataRepo.UpsertMetadata(ctx, info)
}

func (s *statementService) GetStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	stmt, err := s.statementRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}
	return stmt, nil
}
