package models

import "time"

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Document is the DB row for one ingested document.
type Document struct {
	DocumentID string `json:"documentID"` // Primary Key
	DocType    string `json:"docType"`    // classifier label (Not Null)
	Text       string `json:"text"`       // raw OCR text / email body
	Source     string `json:"source"`     // Nullable
	Processed  bool   `json:"processed"`  // metadata extracted at least once
	AuditFields
}

// Metadata is the DB row for one extraction record. One row per document;
// an upsert replaces the whole row. Secondary indexes exist on
// order_number, invoice_number and variable_symbol.
type Metadata struct {
	DocumentID         string  `json:"documentID"` // Primary Key, FK -> documents
	DocType            string  `json:"docType"`
	OrderNumber        *string `json:"orderNumber"`
	InvoiceNumber      *string `json:"invoiceNumber"`
	DeliveryNoteNumber *string `json:"deliveryNoteNumber"`
	VariableSymbol     *string `json:"variableSymbol"`
	AmountWithoutVAT   *string `json:"amountWithoutVAT"` // decimal string
	VATAmount          *string `json:"vatAmount"`
	AmountWithVAT      *string `json:"amountWithVAT"`
	IssueDate          *time.Time `json:"issueDate"`
	DueDate            *time.Time `json:"dueDate"`
	DeliveryDate       *time.Time `json:"deliveryDate"`
	VendorName         *string `json:"vendorName"`
	VendorICO          *string `json:"vendorICO"`
	CustomerName       *string `json:"customerName"`
	CustomerICO        *string `json:"customerICO"`
	RefNumbers         []byte  `json:"refNumbers"` // JSON array, at most 10 entries
	AuditFields
}
