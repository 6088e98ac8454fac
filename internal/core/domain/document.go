package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is the classification label assigned by the upstream
// OCR/classifier stage. The matcher only ever sees these values.
type DocumentType string

const (
	DocTypeOrder        DocumentType = "order"
	DocTypeInvoice      DocumentType = "invoice"
	DocTypeDeliveryNote DocumentType = "delivery_note"
	DocTypePayment      DocumentType = "payment"
	DocTypeBankStmt     DocumentType = "bank_statement"
	DocTypeUnknown      DocumentType = "unknown"
)

// IsValidDocumentType reports whether s is one of the known classifier labels.
func IsValidDocumentType(s string) bool {
	switch DocumentType(s) {
	case DocTypeOrder, DocTypeInvoice, DocTypeDeliveryNote, DocTypePayment, DocTypeBankStmt, DocTypeUnknown:
		return true
	}
	return false
}

// Document is one ingested business document: the raw OCR text plus the
// classifier's type label. Extraction and matching read from here.
type Document struct {
	DocumentID string       `json:"documentID"`
	DocType    DocumentType `json:"docType"`
	Text       string       `json:"text"`
	Source     string       `json:"source,omitempty"` // e.g. mailbox, scanner, import
	Processed  bool         `json:"processed"`        // metadata extracted at least once
	AuditFields
}

// MaxReferences caps the fallback reference list on an extraction record.
const MaxReferences = 10

// ExtractedInfo is the structured metadata pulled out of one document's text.
// Every field is optional: a nil pointer means the extractor found nothing
// usable for that field. An update fully replaces the stored record.
type ExtractedInfo struct {
	DocumentID string       `json:"documentID"`
	DocType    DocumentType `json:"docType"`

	OrderNumber        *string `json:"orderNumber,omitempty"`
	InvoiceNumber      *string `json:"invoiceNumber,omitempty"`
	DeliveryNoteNumber *string `json:"deliveryNoteNumber,omitempty"`
	VariableSymbol     *string `json:"variableSymbol,omitempty"`

	AmountWithoutVAT *decimal.Decimal `json:"amountWithoutVAT,omitempty"`
	VATAmount        *decimal.Decimal `json:"vatAmount,omitempty"`
	AmountWithVAT    *decimal.Decimal `json:"amountWithVAT,omitempty"`

	IssueDate    *time.Time `json:"issueDate,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`

	VendorName   *string `json:"vendorName,omitempty"`
	VendorICO    *string `json:"vendorICO,omitempty"` // 8-digit Czech company ID
	CustomerName *string `json:"customerName,omitempty"`
	CustomerICO  *string `json:"customerICO,omitempty"`

	// References is an ordered, deduplicated list of identifier-like
	// substrings found anywhere in the text, capped at MaxReferences.
	// Used as a matching fallback when no primary key hits.
	References []string `json:"references,omitempty"`

	AuditFields
}

// HasAnyIdentifier reports whether the record carries at least one of the
// three keys chain matching correlates on.
func (e ExtractedInfo) HasAnyIdentifier() bool {
	return e.OrderNumber != nil || e.InvoiceNumber != nil || e.VariableSymbol != nil
}
