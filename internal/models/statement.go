package models

import "time"

// Statement is the DB row for one parsed bank statement header.
type Statement struct {
	StatementID    string     `json:"statementID"` // Primary Key
	AccountNumber  string     `json:"accountNumber"`
	IBAN           *string    `json:"iban"`
	BankCode       *string    `json:"bankCode"`
	CurrencyCode   string     `json:"currencyCode"`
	FromDate       *time.Time `json:"fromDate"`
	ToDate         *time.Time `json:"toDate"`
	OpeningBalance *string    `json:"openingBalance"` // decimal string
	ClosingBalance *string    `json:"closingBalance"`
	OriginalFormat string     `json:"originalFormat"`
	AuditFields
}

// StatementTransaction is the DB row for one statement line. Rows are
// replaced wholesale when the same statement id is re-imported.
type StatementTransaction struct {
	StatementID         string    `json:"statementID"` // FK -> statements
	TransactionID       string    `json:"transactionID"`
	Seq                 int       `json:"seq"` // position within the statement
	Date                time.Time `json:"date"`
	ValueDate           time.Time `json:"valueDate"`
	Amount              string    `json:"amount"` // signed decimal string
	TxnType             string    `json:"txnType"`
	CurrencyCode        string    `json:"currencyCode"`
	Description         *string   `json:"description"`
	CounterpartyName    *string   `json:"counterpartyName"`
	CounterpartyAccount *string   `json:"counterpartyAccount"`
	CounterpartyBank    *string   `json:"counterpartyBank"`
	VariableSymbol      *string   `json:"variableSymbol"`
	ConstantSymbol      *string   `json:"constantSymbol"`
	SpecificSymbol      *string   `json:"specificSymbol"`
}
