package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a statement transaction is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// StatementFormat identifies the wire/file format a statement was decoded from.
type StatementFormat string

const (
	FormatMT940   StatementFormat = "MT940"
	FormatCAMT053 StatementFormat = "CAMT053"
	FormatABO     StatementFormat = "ABO"
	FormatCSV     StatementFormat = "CSV"
	FormatUnknown StatementFormat = "UNKNOWN"
)

// DefaultCurrency is assumed when a statement or transaction does not state one.
const DefaultCurrency = "CZK"

// Transaction is one normalized statement line. Amount is signed:
// positive = credit/incoming, negative = debit/outgoing.
type Transaction struct {
	TransactionID       string          `json:"transactionID"` // format-local, generated if absent
	Date                time.Time       `json:"date"`
	ValueDate           time.Time       `json:"valueDate"`
	Amount              decimal.Decimal `json:"amount"`
	Type                TransactionType `json:"type"`
	CurrencyCode        string          `json:"currencyCode"`
	Description         string          `json:"description,omitempty"`
	CounterpartyName    string          `json:"counterpartyName,omitempty"`
	CounterpartyAccount string          `json:"counterpartyAccount,omitempty"`
	CounterpartyBank    string          `json:"counterpartyBank,omitempty"`
	VariableSymbol      string          `json:"variableSymbol,omitempty"`
	ConstantSymbol      string          `json:"constantSymbol,omitempty"`
	SpecificSymbol      string          `json:"specificSymbol,omitempty"`
}

// Statement is one parsed bank statement. Read-only after parsing;
// re-parsing the same file produces a fresh, replaceable Statement.
type Statement struct {
	StatementID    string           `json:"statementID"`
	AccountNumber  string           `json:"accountNumber"`
	IBAN           string           `json:"iban,omitempty"`
	BankCode       string           `json:"bankCode,omitempty"`
	CurrencyCode   string           `json:"currencyCode"`
	FromDate       *time.Time       `json:"fromDate,omitempty"`
	ToDate         *time.Time       `json:"toDate,omitempty"`
	OpeningBalance *decimal.Decimal `json:"openingBalance,omitempty"`
	ClosingBalance *decimal.Decimal `json:"closingBalance,omitempty"`
	OriginalFormat StatementFormat  `json:"originalFormat"`
	Transactions   []Transaction    `json:"transactions"`
}

// TransactionSum returns the signed sum of all transaction amounts.
func (s Statement) TransactionSum() decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range s.Transactions {
		sum = sum.Add(txn.Amount)
	}
	return sum
}

// DeriveClosingBalance fills ClosingBalance from OpeningBalance plus the
// transaction sum when the closing balance is missing from the source file.
func (s *Statement) DeriveClosingBalance() {
	if s.ClosingBalance != nil || s.OpeningBalance == nil {
		return
	}
	closing := s.OpeningBalance.Add(s.TransactionSum())
	s.ClosingBalance = &closing
}
