package models

// DocumentChain is the DB row for one resolved chain. chain_id and
// anchor_doc_id are both unique: the anchor uniqueness is what makes
// concurrent re-resolution converge on a single row.
type DocumentChain struct {
	ChainID           string  `json:"chainID"` // Primary Key
	AnchorDocID       string  `json:"anchorDocID"`
	OrderDocID        *string `json:"orderDocID"`
	InvoiceDocID      *string `json:"invoiceDocID"`
	DeliveryNoteDocID *string `json:"deliveryNoteDocID"`
	PaymentDocID      *string `json:"paymentDocID"`
	OrderNumber       *string `json:"orderNumber"`
	InvoiceNumber     *string `json:"invoiceNumber"`
	VariableSymbol    *string `json:"variableSymbol"`
	VendorName        *string `json:"vendorName"`
	VendorICO         *string `json:"vendorICO"`
	TotalAmount       *string `json:"totalAmount"` // decimal string
	Status            string  `json:"status"`
	Confidence        string  `json:"confidence"` // decimal string
	AuditFields
}
