package dto

import (
	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// ImportStatementRequest carries raw statement content. The format is
// auto-detected unless explicitly declared.
type ImportStatementRequest struct {
	Content string `json:"content" binding:"required"`
	Format  string `json:"format" binding:"omitempty,oneof=MT940 CAMT053 ABO CSV"`
}

// StatementResponse summarizes an imported statement.
type StatementResponse struct {
	StatementID    string `json:"statementID"`
	AccountNumber  string `json:"accountNumber"`
	BankCode       string `json:"bankCode,omitempty"`
	IBAN           string `json:"iban,omitempty"`
	CurrencyCode   string `json:"currencyCode"`
	OriginalFormat string `json:"originalFormat"`
	OpeningBalance *string `json:"openingBalance,omitempty"`
	ClosingBalance *string `json:"closingBalance,omitempty"`
	Transactions   int    `json:"transactions"`
	PaymentDocs    int    `json:"paymentDocs"` // payment candidates registered for matching
}

// ToStatementResponse maps a parsed statement to its API shape.
func ToStatementResponse(s domain.Statement, paymentDocs int) StatementResponse {
	resp := StatementResponse{
		StatementID:    s.StatementID,
		AccountNumber:  s.AccountNumber,
		BankCode:       s.BankCode,
		IBAN:           s.IBAN,
		CurrencyCode:   s.CurrencyCode,
		OriginalFormat: string(s.OriginalFormat),
		Transactions:   len(s.Transactions),
		PaymentDocs:    paymentDocs,
	}
	if s.OpeningBalance != nil {
		v := s.OpeningBalance.String()
		resp.OpeningBalance = &v
	}
	if s.ClosingBalance != nil {
		v := s.ClosingBalance.String()
		resp.ClosingBalance = &v
	}
	return resp
}

// RunMatchRequest triggers a batch matching run.
type RunMatchRequest struct {
	Limit int `json:"limit" binding:"omitempty,min=0"`
}
