package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChainStatus is the lifecycle state of a document chain. It only ever
// advances; roles are never removed by the matcher.
type ChainStatus string

const (
	StatusUnknown   ChainStatus = "unknown"
	StatusOrdered   ChainStatus = "ordered"
	StatusInvoiced  ChainStatus = "invoiced"
	StatusDelivered ChainStatus = "delivered"
	StatusCompleted ChainStatus = "completed"
)

// IsValidChainStatus reports whether s is a known chain status.
func IsValidChainStatus(s string) bool {
	switch ChainStatus(s) {
	case StatusUnknown, StatusOrdered, StatusInvoiced, StatusDelivered, StatusCompleted:
		return true
	}
	return false
}

// ChainRole names one of the four lifecycle slots on a chain.
type ChainRole string

const (
	RoleOrder        ChainRole = "order"
	RoleInvoice      ChainRole = "invoice"
	RoleDeliveryNote ChainRole = "delivery_note"
	RolePayment      ChainRole = "payment"
)

// RolePrecedence lists roles from highest to lowest precedence. The
// precedence drives both status derivation and the order in which
// denormalized chain fields are taken from role documents.
var RolePrecedence = []ChainRole{RolePayment, RoleDeliveryNote, RoleInvoice, RoleOrder}

// RoleForDocType maps a classifier document type onto a chain role.
// Bank statement transactions enter matching as payment-typed records.
func RoleForDocType(t DocumentType) (ChainRole, bool) {
	switch t {
	case DocTypeOrder:
		return RoleOrder, true
	case DocTypeInvoice:
		return RoleInvoice, true
	case DocTypeDeliveryNote:
		return RoleDeliveryNote, true
	case DocTypePayment, DocTypeBankStmt:
		return RolePayment, true
	}
	return "", false
}

// DocumentChain links related documents into one ordered commercial
// lifecycle: order -> invoice -> delivery -> payment. At most one document
// occupies each role; a later match for a filled role is discarded.
type DocumentChain struct {
	ChainID     string `json:"chainID"`
	AnchorDocID string `json:"anchorDocID"`

	OrderDocID        *string `json:"orderDocID,omitempty"`
	InvoiceDocID      *string `json:"invoiceDocID,omitempty"`
	DeliveryNoteDocID *string `json:"deliveryNoteDocID,omitempty"`
	PaymentDocID      *string `json:"paymentDocID,omitempty"`

	OrderNumber    *string          `json:"orderNumber,omitempty"`
	InvoiceNumber  *string          `json:"invoiceNumber,omitempty"`
	VariableSymbol *string          `json:"variableSymbol,omitempty"`
	VendorName     *string          `json:"vendorName,omitempty"`
	VendorICO      *string          `json:"vendorICO,omitempty"`
	TotalAmount    *decimal.Decimal `json:"totalAmount,omitempty"`

	Status     ChainStatus     `json:"status"`
	Confidence decimal.Decimal `json:"confidence"`
	AuditFields
}

// chainIDNamespace is the fixed UUIDv5 namespace for chain identifiers.
var chainIDNamespace = uuid.MustParse("8f1c9a52-14a7-4a7e-9d3a-6f0b2e5c7d41")

// NewChainID derives a chain identifier from the anchor document id.
// It is a pure function so that re-resolving the same anchor from any
// process always converges on the same chain row.
func NewChainID(anchorDocID string) string {
	return "chn-" + uuid.NewSHA1(chainIDNamespace, []byte(anchorDocID)).String()
}

// DocIDForRole returns the document occupying the given role, if any.
func (c *DocumentChain) DocIDForRole(role ChainRole) *string {
	switch role {
	case RoleOrder:
		return c.OrderDocID
	case RoleInvoice:
		return c.InvoiceDocID
	case RoleDeliveryNote:
		return c.DeliveryNoteDocID
	case RolePayment:
		return c.PaymentDocID
	}
	return nil
}

// FillRole assigns docID to the role slot if and only if the slot is empty.
// Returns true when the slot was filled. Filled slots are never overwritten.
func (c *DocumentChain) FillRole(role ChainRole, docID string) bool {
	slot := c.DocIDForRole(role)
	if slot != nil {
		return false
	}
	d := docID
	switch role {
	case RoleOrder:
		c.OrderDocID = &d
	case RoleInvoice:
		c.InvoiceDocID = &d
	case RoleDeliveryNote:
		c.DeliveryNoteDocID = &d
	case RolePayment:
		c.PaymentDocID = &d
	default:
		return false
	}
	return true
}

// ContainsDoc reports whether docID occupies any role on the chain.
func (c *DocumentChain) ContainsDoc(docID string) bool {
	for _, role := range RolePrecedence {
		if id := c.DocIDForRole(role); id != nil && *id == docID {
			return true
		}
	}
	return false
}

// DeriveStatus recomputes the chain status from the highest-precedence role
// present: payment > delivery_note > invoice > order.
func (c *DocumentChain) DeriveStatus() ChainStatus {
	switch {
	case c.PaymentDocID != nil:
		c.Status = StatusCompleted
	case c.DeliveryNoteDocID != nil:
		c.Status = StatusDelivered
	case c.InvoiceDocID != nil:
		c.Status = StatusInvoiced
	case c.OrderDocID != nil:
		c.Status = StatusOrdered
	default:
		c.Status = StatusUnknown
	}
	return c.Status
}
