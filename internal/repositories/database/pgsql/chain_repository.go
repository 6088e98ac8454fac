package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	"github.com/docuchain/docuchain_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxChainRepository struct {
	pool *pgxpool.Pool
}

// newPgxChainRepository creates a new repository for document chains.
func newPgxChainRepository(pool *pgxpool.Pool) portsrepo.ChainRepositoryFacade {
	return &PgxChainRepository{pool: pool}
}

var _ portsrepo.ChainRepositoryFacade = (*PgxChainRepository)(nil)

func toModelChain(c domain.DocumentChain) models.DocumentChain {
	return models.DocumentChain{
		ChainID:           c.ChainID,
		AnchorDocID:       c.AnchorDocID,
		OrderDocID:        c.OrderDocID,
		InvoiceDocID:      c.InvoiceDocID,
		DeliveryNoteDocID: c.DeliveryNoteDocID,
		PaymentDocID:      c.PaymentDocID,
		OrderNumber:       c.OrderNumber,
		InvoiceNumber:     c.InvoiceNumber,
		VariableSymbol:    c.VariableSymbol,
		VendorName:        c.VendorName,
		VendorICO:         c.VendorICO,
		TotalAmount:       decimalToStringPtr(c.TotalAmount),
		Status:            string(c.Status),
		Confidence:        c.Confidence.StringFixed(2),
		AuditFields: models.AuditFields{
			CreatedAt:     c.CreatedAt,
			LastUpdatedAt: c.LastUpdatedAt,
		},
	}
}

func toDomainChain(m models.DocumentChain) domain.DocumentChain {
	c := domain.DocumentChain{
		ChainID:           m.ChainID,
		AnchorDocID:       m.AnchorDocID,
		OrderDocID:        m.OrderDocID,
		InvoiceDocID:      m.InvoiceDocID,
		DeliveryNoteDocID: m.DeliveryNoteDocID,
		PaymentDocID:      m.PaymentDocID,
		OrderNumber:       m.OrderNumber,
		InvoiceNumber:     m.InvoiceNumber,
		VariableSymbol:    m.VariableSymbol,
		VendorName:        m.VendorName,
		VendorICO:         m.VendorICO,
		TotalAmount:       stringPtrToDecimal(m.TotalAmount),
		Status:            domain.ChainStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if conf, err := decimal.NewFromString(m.Confidence); err == nil {
		c.Confidence = conf
	}
	return c
}

const chainColumns = `chain_id, anchor_doc_id, order_doc_id, invoice_doc_id,
	delivery_note_doc_id, payment_doc_id, order_number, invoice_number,
	variable_symbol, vendor_name, vendor_ico, total_amount, status,
	confidence, created_at, last_updated_at`

// UpsertChain writes the chain, converging on one row per anchor document.
// COALESCE on the role columns keeps already-filled slots: a concurrent
// resolution can add documents to a chain but never replace one.
func (r *PgxChainRepository) UpsertChain(ctx context.Context, chain domain.DocumentChain) error {
	query := `
		INSERT INTO document_chains (` + chainColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (anchor_doc_id) DO UPDATE SET
			order_doc_id = COALESCE(document_chains.order_doc_id, EXCLUDED.order_doc_id),
			invoice_doc_id = COALESCE(document_chains.invoice_doc_id, EXCLUDED.invoice_doc_id),
			delivery_note_doc_id = COALESCE(document_chains.delivery_note_doc_id, EXCLUDED.delivery_note_doc_id),
			payment_doc_id = COALESCE(document_chains.payment_doc_id, EXCLUDED.payment_doc_id),
			order_number = COALESCE(EXCLUDED.order_number, document_chains.order_number),
			invoice_number = COALESCE(EXCLUDED.invoice_number, document_chains.invoice_number),
			variable_symbol = COALESCE(EXCLUDED.variable_symbol, document_chains.variable_symbol),
			vendor_name = COALESCE(EXCLUDED.vendor_name, document_chains.vendor_name),
			vendor_ico = COALESCE(EXCLUDED.vendor_ico, document_chains.vendor_ico),
			total_amount = COALESCE(EXCLUDED.total_amount, document_chains.total_amount),
			status = EXCLUDED.status,
			confidence = EXCLUDED.confidence,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	m := toModelChain(chain)
	_, err := r.pool.Exec(ctx, query,
		m.ChainID, m.AnchorDocID,
		m.OrderDocID, m.InvoiceDocID, m.DeliveryNoteDocID, m.PaymentDocID,
		m.OrderNumber, m.InvoiceNumber, m.VariableSymbol,
		m.VendorName, m.VendorICO, m.TotalAmount,
		m.Status, m.Confidence,
		m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert chain %s: %w", chain.ChainID, err)
	}
	return nil
}

// FindChainByID retrieves a chain by its identifier.
func (r *PgxChainRepository) FindChainByID(ctx context.Context, chainID string) (*domain.DocumentChain, error) {
	query := `SELECT ` + chainColumns + ` FROM document_chains WHERE chain_id = $1;`
	return r.findOne(ctx, query, chainID)
}

// FindChainByAnchor retrieves the chain anchored at a document, if any.
func (r *PgxChainRepository) FindChainByAnchor(ctx context.Context, anchorDocID string) (*domain.DocumentChain, error) {
	query := `SELECT ` + chainColumns + ` FROM document_chains WHERE anchor_doc_id = $1;`
	return r.findOne(ctx, query, anchorDocID)
}

// FindChainContainingDoc retrieves a chain where the document occupies any
// role slot. When the same document somehow appears on several chains the
// newest one wins.
func (r *PgxChainRepository) FindChainContainingDoc(ctx context.Context, documentID string) (*domain.DocumentChain, error) {
	query := `SELECT ` + chainColumns + ` FROM document_chains
		WHERE order_doc_id = $1 OR invoice_doc_id = $1 OR delivery_note_doc_id = $1 OR payment_doc_id = $1
		ORDER BY created_at DESC, chain_id DESC
		LIMIT 1;`
	return r.findOne(ctx, query, documentID)
}

// ListChains retrieves chains, newest first. A nil status returns chains in
// every state.
func (r *PgxChainRepository) ListChains(ctx context.Context, status *domain.ChainStatus, limit int, offset int) ([]domain.DocumentChain, error) {
	query := `SELECT ` + chainColumns + ` FROM document_chains`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, chain_id DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chains: %w", err)
	}
	defer rows.Close()

	var chains []domain.DocumentChain
	for rows.Next() {
		m, err := scanChainRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chain row: %w", err)
		}
		chains = append(chains, toDomainChain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chain rows: %w", err)
	}
	return chains, nil
}

func (r *PgxChainRepository) findOne(ctx context.Context, query string, arg any) (*domain.DocumentChain, error) {
	m, err := scanChainRow(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: chain", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find chain: %w", err)
	}
	c := toDomainChain(m)
	return &c, nil
}

func scanChainRow(row rowScanner) (models.DocumentChain, error) {
	var m models.DocumentChain
	err := row.Scan(
		&m.ChainID, &m.AnchorDocID,
		&m.OrderDocID, &m.InvoiceDocID, &m.DeliveryNoteDocID, &m.PaymentDocID,
		&m.OrderNumber, &m.InvoiceNumber, &m.VariableSymbol,
		&m.VendorName, &m.VendorICO, &m.TotalAmount,
		&m.Status, &m.Confidence, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return models.DocumentChain{}, err
	}
	return m, nil
}
