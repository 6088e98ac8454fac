package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	"github.com/docuchain/docuchain_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for bank statements.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

func toModelStatement(s domain.Statement, now time.Time) models.Statement {
	return models.Statement{
		StatementID:    s.StatementID,
		AccountNumber:  s.AccountNumber,
		IBAN:           emptyToNil(s.IBAN),
		BankCode:       emptyToNil(s.BankCode),
		CurrencyCode:   s.CurrencyCode,
		FromDate:       s.FromDate,
		ToDate:         s.ToDate,
		OpeningBalance: decimalToStringPtr(s.OpeningBalance),
		ClosingBalance: decimalToStringPtr(s.ClosingBalance),
		OriginalFormat: string(s.OriginalFormat),
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

func toDomainStatement(m models.Statement) domain.Statement {
	return domain.Statement{
		StatementID:    m.StatementID,
		AccountNumber:  m.AccountNumber,
		IBAN:           derefOrEmpty(m.IBAN),
		BankCode:       derefOrEmpty(m.BankCode),
		CurrencyCode:   m.CurrencyCode,
		FromDate:       m.FromDate,
		ToDate:         m.ToDate,
		OpeningBalance: stringPtrToDecimal(m.OpeningBalance),
		ClosingBalance: stringPtrToDecimal(m.ClosingBalance),
		OriginalFormat: domain.StatementFormat(m.OriginalFormat),
	}
}

func toModelStatementTxn(statementID string, seq int, t domain.Transaction) models.StatementTransaction {
	return models.StatementTransaction{
		StatementID:         statementID,
		TransactionID:       t.TransactionID,
		Seq:                 seq,
		Date:                t.Date,
		ValueDate:           t.ValueDate,
		Amount:              t.Amount.String(),
		TxnType:             string(t.Type),
		CurrencyCode:        t.CurrencyCode,
		Description:         emptyToNil(t.Description),
		CounterpartyName:    emptyToNil(t.CounterpartyName),
		CounterpartyAccount: emptyToNil(t.CounterpartyAccount),
		CounterpartyBank:    emptyToNil(t.CounterpartyBank),
		VariableSymbol:      emptyToNil(t.VariableSymbol),
		ConstantSymbol:      emptyToNil(t.ConstantSymbol),
		SpecificSymbol:      emptyToNil(t.SpecificSymbol),
	}
}

func toDomainStatementTxn(m models.StatementTransaction) domain.Transaction {
	t := domain.Transaction{
		TransactionID:       m.TransactionID,
		Date:                m.Date,
		ValueDate:           m.ValueDate,
		Type:                domain.TransactionType(m.TxnType),
		CurrencyCode:        m.CurrencyCode,
		Description:         derefOrEmpty(m.Description),
		CounterpartyName:    derefOrEmpty(m.CounterpartyName),
		CounterpartyAccount: derefOrEmpty(m.CounterpartyAccount),
		CounterpartyBank:    derefOrEmpty(m.CounterpartyBank),
		VariableSymbol:      derefOrEmpty(m.VariableSymbol),
		ConstantSymbol:      derefOrEmpty(m.ConstantSymbol),
		SpecificSymbol:      derefOrEmpty(m.SpecificSymbol),
	}
	if d := stringPtrToDecimal(&m.Amount); d != nil {
		t.Amount = *d
	}
	return t
}

const statementColumns = `statement_id, account_number, iban, bank_code, currency_code,
	from_date, to_date, opening_balance, closing_balance, original_format,
	created_at, last_updated_at`

const statementTxnColumns = `statement_id, transaction_id, seq, txn_date, value_date,
	amount, txn_type, currency_code, description, counterparty_name,
	counterparty_account, counterparty_bank, variable_symbol, constant_symbol,
	specific_symbol`

// SaveStatement persists the statement header and all its transactions in
// the given transaction. Re-importing a statement id replaces everything:
// statements are immutable snapshots of a source file, never merged.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, tx pgx.Tx, stmt domain.Statement) error {
	now := time.Now()

	if _, err := tx.Exec(ctx, `DELETE FROM statement_transactions WHERE statement_id = $1;`, stmt.StatementID); err != nil {
		return fmt.Errorf("failed to clear transactions for statement %s: %w", stmt.StatementID, err)
	}

	headerQuery := `
		INSERT INTO statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (statement_id) DO UPDATE SET
			account_number = EXCLUDED.account_number,
			iban = EXCLUDED.iban,
			bank_code = EXCLUDED.bank_code,
			currency_code = EXCLUDED.currency_code,
			from_date = EXCLUDED.from_date,
			to_date = EXCLUDED.to_date,
			opening_balance = EXCLUDED.opening_balance,
			closing_balance = EXCLUDED.closing_balance,
			original_format = EXCLUDED.original_format,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	h := toModelStatement(stmt, now)
	_, err := tx.Exec(ctx, headerQuery,
		h.StatementID, h.AccountNumber, h.IBAN, h.BankCode,
		h.CurrencyCode, h.FromDate, h.ToDate,
		h.OpeningBalance, h.ClosingBalance,
		h.OriginalFormat, h.CreatedAt, h.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save statement %s: %w", stmt.StatementID, err)
	}

	txnQuery := `
		INSERT INTO statement_transactions (` + statementTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for i, txn := range stmt.Transactions {
		m := toModelStatementTxn(stmt.StatementID, i, txn)
		_, err := tx.Exec(ctx, txnQuery,
			m.StatementID, m.TransactionID, m.Seq, m.Date, m.ValueDate,
			m.Amount, m.TxnType, m.CurrencyCode,
			m.Description, m.CounterpartyName,
			m.CounterpartyAccount, m.CounterpartyBank,
			m.VariableSymbol, m.ConstantSymbol, m.SpecificSymbol,
		)
		if err != nil {
			return fmt.Errorf("failed to save transaction %d of statement %s: %w", i, stmt.StatementID, err)
		}
	}
	return nil
}

// FindStatementByID retrieves a statement together with its transactions
// in their original file order.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM statements WHERE statement_id = $1;`

	h, err := scanStatementRow(r.Pool.QueryRow(ctx, query, statementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: statement %s", apperrors.ErrNotFound, statementID)
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}
	stmt := toDomainStatement(h)

	txnQuery := `SELECT ` + statementTxnColumns + ` FROM statement_transactions
		WHERE statement_id = $1 ORDER BY seq ASC;`
	rows, err := r.Pool.Query(ctx, txnQuery, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of statement %s: %w", statementID, err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanStatementTxnRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		stmt.Transactions = append(stmt.Transactions, toDomainStatementTxn(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return &stmt, nil
}

// ListStatements retrieves statement headers, newest first. Transactions
// are not loaded.
func (r *PgxStatementRepository) ListStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM statements
		ORDER BY created_at DESC, statement_id DESC
		LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	var stmts []domain.Statement
	for rows.Next() {
		h, err := scanStatementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		stmts = append(stmts, toDomainStatement(h))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", err)
	}
	return stmts, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanStatementRow(row rowScanner) (models.Statement, error) {
	var m models.Statement
	err := row.Scan(
		&m.StatementID, &m.AccountNumber, &m.IBAN, &m.BankCode, &m.CurrencyCode,
		&m.FromDate, &m.ToDate, &m.OpeningBalance, &m.ClosingBalance, &m.OriginalFormat,
		&m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return models.Statement{}, err
	}
	return m, nil
}

func scanStatementTxnRow(row rowScanner) (models.StatementTransaction, error) {
	var m models.StatementTransaction
	err := row.Scan(
		&m.StatementID, &m.TransactionID, &m.Seq, &m.Date, &m.ValueDate,
		&m.Amount, &m.TxnType, &m.CurrencyCode, &m.Description, &m.CounterpartyName,
		&m.CounterpartyAccount, &m.CounterpartyBank, &m.VariableSymbol,
		&m.ConstantSymbol, &m.SpecificSymbol,
	)
	if err != nil {
		return models.StatementTransaction{}, err
	}
	return m, nil
}
