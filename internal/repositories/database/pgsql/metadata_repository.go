package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portsrepo "github.com/docuchain/docuchain_app/internal/core/ports/repositories"
	"github.com/docuchain/docuchain_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxMetadataRepository struct {
	pool *pgxpool.Pool
}

// newPgxMetadataRepository creates a new repository for extraction records.
func newPgxMetadataRepository(pool *pgxpool.Pool) portsrepo.MetadataRepositoryFacade {
	return &PgxMetadataRepository{pool: pool}
}

var _ portsrepo.MetadataRepositoryFacade = (*PgxMetadataRepository)(nil)

func decimalToStringPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func stringPtrToDecimal(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}

func toModelMetadata(info domain.ExtractedInfo) (models.Metadata, error) {
	var refs []byte
	if len(info.References) > 0 {
		encoded, err := json.Marshal(info.References)
		if err != nil {
			return models.Metadata{}, fmt.Errorf("failed to encode ref_numbers: %w", err)
		}
		refs = encoded
	}
	return models.Metadata{
		DocumentID:         info.DocumentID,
		DocType:            string(info.DocType),
		OrderNumber:        info.OrderNumber,
		InvoiceNumber:      info.InvoiceNumber,
		DeliveryNoteNumber: info.DeliveryNoteNumber,
		VariableSymbol:     info.VariableSymbol,
		AmountWithoutVAT:   decimalToStringPtr(info.AmountWithoutVAT),
		VATAmount:          decimalToStringPtr(info.VATAmount),
		AmountWithVAT:      decimalToStringPtr(info.AmountWithVAT),
		IssueDate:          info.IssueDate,
		DueDate:            info.DueDate,
		DeliveryDate:       info.DeliveryDate,
		VendorName:         info.VendorName,
		VendorICO:          info.VendorICO,
		CustomerName:       info.CustomerName,
		CustomerICO:        info.CustomerICO,
		RefNumbers:         refs,
		AuditFields: models.AuditFields{
			CreatedAt:     info.CreatedAt,
			LastUpdatedAt: info.LastUpdatedAt,
		},
	}, nil
}

func toDomainMetadata(m models.Metadata) domain.ExtractedInfo {
	info := domain.ExtractedInfo{
		DocumentID:         m.DocumentID,
		DocType:            domain.DocumentType(m.DocType),
		OrderNumber:        m.OrderNumber,
		InvoiceNumber:      m.InvoiceNumber,
		DeliveryNoteNumber: m.DeliveryNoteNumber,
		VariableSymbol:     m.VariableSymbol,
		AmountWithoutVAT:   stringPtrToDecimal(m.AmountWithoutVAT),
		VATAmount:          stringPtrToDecimal(m.VATAmount),
		AmountWithVAT:      stringPtrToDecimal(m.AmountWithVAT),
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		DeliveryDate:       m.DeliveryDate,
		VendorName:         m.VendorName,
		VendorICO:          m.VendorICO,
		CustomerName:       m.CustomerName,
		CustomerICO:        m.CustomerICO,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if len(m.RefNumbers) > 0 {
		// A corrupted array is ignored rather than failing the read.
		_ = json.Unmarshal(m.RefNumbers, &info.References)
	}
	return info
}

const metadataColumns = `document_id, doc_type, order_number, invoice_number, delivery_note_number,
	variable_symbol, amount_without_vat, vat_amount, amount_with_vat,
	issue_date, due_date, delivery_date, vendor_name, vendor_ico,
	customer_name, customer_ico, ref_numbers, created_at, last_updated_at`

// UpsertMetadata stores an extraction record. The whole row is replaced on
// conflict: re-extraction fully supersedes the previous record.
func (r *PgxMetadataRepository) UpsertMetadata(ctx context.Context, info domain.ExtractedInfo) error {
	m, err := toModelMetadata(info)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO document_metadata (` + metadataColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (document_id) DO UPDATE SET
			doc_type = EXCLUDED.doc_type,
			order_number = EXCLUDED.order_number,
			invoice_number = EXCLUDED.invoice_number,
			delivery_note_number = EXCLUDED.delivery_note_number,
			variable_symbol = EXCLUDED.variable_symbol,
			amount_without_vat = EXCLUDED.amount_without_vat,
			vat_amount = EXCLUDED.vat_amount,
			amount_with_vat = EXCLUDED.amount_with_vat,
			issue_date = EXCLUDED.issue_date,
			due_date = EXCLUDED.due_date,
			delivery_date = EXCLUDED.delivery_date,
			vendor_name = EXCLUDED.vendor_name,
			vendor_ico = EXCLUDED.vendor_ico,
			customer_name = EXCLUDED.customer_name,
			customer_ico = EXCLUDED.customer_ico,
			ref_numbers = EXCLUDED.ref_numbers,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err = r.pool.Exec(ctx, query,
		m.DocumentID, m.DocType, m.OrderNumber, m.InvoiceNumber, m.DeliveryNoteNumber,
		m.VariableSymbol, m.AmountWithoutVAT, m.VATAmount, m.AmountWithVAT,
		m.IssueDate, m.DueDate, m.DeliveryDate, m.VendorName, m.VendorICO,
		m.CustomerName, m.CustomerICO, m.RefNumbers, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metadata for document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindMetadataByDocID retrieves the extraction record for one document.
func (r *PgxMetadataRepository) FindMetadataByDocID(ctx context.Context, documentID string) (*domain.ExtractedInfo, error) {
	query := `SELECT ` + metadataColumns + ` FROM document_metadata WHERE document_id = $1;`

	m, err := scanMetadataRow(r.pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: metadata for document %s", apperrors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to find metadata for document %s: %w", documentID, err)
	}
	info := toDomainMetadata(m)
	return &info, nil
}

// FindByOrderNumber retrieves records sharing an order number, newest first.
func (r *PgxMetadataRepository) FindByOrderNumber(ctx context.Context, orderNumber string, excludeDocID string) ([]domain.ExtractedInfo, error) {
	return r.findByKey(ctx, "order_number", orderNumber, excludeDocID)
}

// FindByInvoiceNumber retrieves records sharing an invoice number, newest first.
func (r *PgxMetadataRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string, excludeDocID string) ([]domain.ExtractedInfo, error) {
	return r.findByKey(ctx, "invoice_number", invoiceNumber, excludeDocID)
}

// FindByVariableSymbol retrieves records sharing a variable symbol, newest first.
func (r *PgxMetadataRepository) FindByVariableSymbol(ctx context.Context, variableSymbol string, excludeDocID string) ([]domain.ExtractedInfo, error) {
	return r.findByKey(ctx, "variable_symbol", variableSymbol, excludeDocID)
}

// findByKey implements the secondary-index lookups. column is one of the
// three indexed identifier columns, never user input. Ordering is creation
// time descending with document id as the deterministic tie-break.
func (r *PgxMetadataRepository) findByKey(ctx context.Context, column, value, excludeDocID string) ([]domain.ExtractedInfo, error) {
	query := `SELECT ` + metadataColumns + ` FROM document_metadata
		WHERE ` + column + ` = $1 AND document_id <> $2
		ORDER BY created_at DESC, document_id DESC;`

	rows, err := r.pool.Query(ctx, query, value, excludeDocID)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata by %s: %w", column, err)
	}
	defer rows.Close()

	var result []domain.ExtractedInfo
	for rows.Next() {
		m, err := scanMetadataRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result = append(result, toDomainMetadata(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metadata rows: %w", err)
	}
	return result, nil
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetadataRow(row rowScanner) (models.Metadata, error) {
	var m models.Metadata
	var issue, due, delivery *time.Time
	err := row.Scan(
		&m.DocumentID, &m.DocType, &m.OrderNumber, &m.InvoiceNumber, &m.DeliveryNoteNumber,
		&m.VariableSymbol, &m.AmountWithoutVAT, &m.VATAmount, &m.AmountWithVAT,
		&issue, &due, &delivery, &m.VendorName, &m.VendorICO,
		&m.CustomerName, &m.CustomerICO, &m.RefNumbers, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return models.Metadata{}, err
	}
	m.IssueDate, m.DueDate, m.DeliveryDate = issue, due, delivery
	return m, nil
}
