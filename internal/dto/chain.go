package dto

import (
	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// ChainResponse is the API shape of a resolved document chain. Amounts are
// rendered as decimal strings, dates as ISO-8601.
type ChainResponse struct {
	ChainID           string  `json:"chainID"`
	OrderDocID        *string `json:"orderDocID,omitempty"`
	InvoiceDocID      *string `json:"invoiceDocID,omitempty"`
	DeliveryNoteDocID *string `json:"deliveryNoteDocID,omitempty"`
	PaymentDocID      *string `json:"paymentDocID,omitempty"`
	OrderNumber       *string `json:"orderNumber,omitempty"`
	InvoiceNumber     *string `json:"invoiceNumber,omitempty"`
	VariableSymbol    *string `json:"variableSymbol,omitempty"`
	VendorName        *string `json:"vendorName,omitempty"`
	VendorICO         *string `json:"vendorICO,omitempty"`
	TotalAmount       *string `json:"totalAmount,omitempty"`
	Status            string  `json:"status"`
	Confidence        string  `json:"confidence"`
}

// ToChainResponse maps a domain chain to its API shape.
func ToChainResponse(c domain.DocumentChain) ChainResponse {
	resp := ChainResponse{
		ChainID:           c.ChainID,
		OrderDocID:        c.OrderDocID,
		InvoiceDocID:      c.InvoiceDocID,
		DeliveryNoteDocID: c.DeliveryNoteDocID,
		PaymentDocID:      c.PaymentDocID,
		OrderNumber:       c.OrderNumber,
		InvoiceNumber:     c.InvoiceNumber,
		VariableSymbol:    c.VariableSymbol,
		VendorName:        c.VendorName,
		VendorICO:         c.VendorICO,
		Status:            string(c.Status),
		Confidence:        c.Confidence.StringFixed(2),
	}
	if c.TotalAmount != nil {
		amount := c.TotalAmount.String()
		resp.TotalAmount = &amount
	}
	return resp
}

// ListChainsResponse wraps a filtered chain listing.
type ListChainsResponse struct {
	Chains []ChainResponse `json:"chains"`
}
