package bankparser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// CAMT053Parser decodes ISO 20022 bank-to-customer statements. The struct
// tags carry local element names only, so decoding works whether or not the
// document declares the ISO 20022 namespace.
type CAMT053Parser struct{}

func (p *CAMT053Parser) Format() domain.StatementFormat { return domain.FormatCAMT053 }

// Balance type codes per ISO 20022.
const (
	camtBalanceOpening = "OPBD"
	camtBalanceClosing = "CLBD"
	camtDebit          = "DBIT"
)

type camtDocument struct {
	XMLName    xml.Name
	Statements []camtStatement `xml:"BkToCstmrStmt>Stmt"`
}

type camtStatement struct {
	ID       string        `xml:"Id"`
	FromDate string        `xml:"FrToDt>FrDtTm"`
	ToDate   string        `xml:"FrToDt>ToDtTm"`
	Account  camtAccount   `xml:"Acct"`
	Balances []camtBalance `xml:"Bal"`
	Entries  []camtEntry   `xml:"Ntry"`
}

type camtAccount struct {
	IBAN     string `xml:"Id>IBAN"`
	Other    string `xml:"Id>Othr>Id"`
	Currency string `xml:"Ccy"`
}

type camtBalance struct {
	Code      string     `xml:"Tp>CdOrPrtry>Cd"`
	Amount    camtAmount `xml:"Amt"`
	Indicator string     `xml:"CdtDbtInd"`
	Date      string     `xml:"Dt>Dt"`
}

type camtAmount struct {
	Currency string `xml:"Ccy,attr"`
	Value    string `xml:",chardata"`
}

type camtEntry struct {
	Reference   string          `xml:"NtryRef"`
	Amount      camtAmount      `xml:"Amt"`
	Indicator   string          `xml:"CdtDbtInd"`
	BookingDate string          `xml:"BookgDt>Dt"`
	ValueDate   string          `xml:"ValDt>Dt"`
	Info        string          `xml:"AddtlNtryInf"`
	Details     camtEntryDetail `xml:"NtryDtls>TxDtls"`
}

type camtEntryDetail struct {
	EndToEnd     string `xml:"Refs>EndToEndId"`
	CreditorName string `xml:"RltdPties>Cdtr>Nm"`
	DebtorName   string `xml:"RltdPties>Dbtr>Nm"`
	CreditorIBAN string `xml:"RltdPties>CdtrAcct>Id>IBAN"`
	DebtorIBAN   string `xml:"RltdPties>DbtrAcct>Id>IBAN"`
	Remittance   string `xml:"RmtInf>Ustrd"`
}

// Parse decodes the first statement of a CAMT.053 document. Malformed XML
// surfaces as a parse error to the caller.
func (p *CAMT053Parser) Parse(content []byte) (*domain.Statement, error) {
	var doc camtDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("malformed CAMT.053 document: %w", err)
	}
	if len(doc.Statements) == 0 {
		return nil, fmt.Errorf("CAMT.053 document contains no statement")
	}
	src := doc.Statements[0]

	stmt := &domain.Statement{
		StatementID:    strings.TrimSpace(src.ID),
		CurrencyCode:   domain.DefaultCurrency,
		OriginalFormat: domain.FormatCAMT053,
	}
	if src.Account.Currency != "" {
		stmt.CurrencyCode = src.Account.Currency
	}

	applyCAMTAccount(stmt, src.Account)

	if d, ok := parseStatementDate(truncateISODateTime(src.FromDate)); ok {
		d := domain.DateOnly(d)
		stmt.FromDate = &d
	}
	if d, ok := parseStatementDate(truncateISODateTime(src.ToDate)); ok {
		d := domain.DateOnly(d)
		stmt.ToDate = &d
	}

	for _, bal := range src.Balances {
		amount, ok := parseDecimal(bal.Amount.Value)
		if !ok {
			continue
		}
		if bal.Indicator == camtDebit {
			amount = amount.Neg()
		}
		switch bal.Code {
		case camtBalanceOpening:
			stmt.OpeningBalance = &amount
		case camtBalanceClosing:
			stmt.ClosingBalance = &amount
		}
	}

	for i, entry := range src.Entries {
		txn, ok := parseCAMTEntry(entry, stmt.CurrencyCode, i)
		if !ok {
			continue
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}

	stmt.DeriveClosingBalance()
	return stmt, nil
}

// applyCAMTAccount fills account identity. A Czech IBAN is decomposed into
// bank code (IBAN chars 5-8) and national account number.
func applyCAMTAccount(stmt *domain.Statement, acct camtAccount) {
	if acct.IBAN != "" {
		stmt.IBAN = acct.IBAN
		if bankCode, account, ok := decomposeCzechIBAN(acct.IBAN); ok {
			stmt.BankCode = bankCode
			stmt.AccountNumber = account
			return
		}
		stmt.AccountNumber = acct.IBAN
		return
	}
	stmt.AccountNumber = strings.TrimSpace(acct.Other)
}

func parseCAMTEntry(entry camtEntry, currency string, seq int) (domain.Transaction, bool) {
	amount, ok := parseDecimal(entry.Amount.Value)
	if !ok {
		return domain.Transaction{}, false
	}
	txnType := domain.Credit
	if entry.Indicator == camtDebit {
		txnType = domain.Debit
		amount = amount.Neg()
	}

	bookingDate, _ := parseStatementDate(truncateISODateTime(entry.BookingDate))
	valueDate, hasValue := parseStatementDate(truncateISODateTime(entry.ValueDate))
	if !hasValue {
		valueDate = bookingDate
	}

	if entry.Amount.Currency != "" {
		currency = entry.Amount.Currency
	}

	id := strings.TrimSpace(entry.Reference)
	if id == "" {
		id = strings.TrimSpace(entry.Details.EndToEnd)
	}
	if id == "" {
		id = fmt.Sprintf("camt-%d", seq+1)
	}

	description := strings.TrimSpace(entry.Details.Remittance)
	if description == "" {
		description = strings.TrimSpace(entry.Info)
	}

	counterpartyName := entry.Details.CreditorName
	counterpartyIBAN := entry.Details.CreditorIBAN
	if txnType == domain.Credit {
		// Incoming money: the counterparty is the debtor side.
		counterpartyName = entry.Details.DebtorName
		counterpartyIBAN = entry.Details.DebtorIBAN
	}

	var counterpartyAccount, counterpartyBank string
	if bankCode, account, ok := decomposeCzechIBAN(counterpartyIBAN); ok {
		counterpartyAccount, counterpartyBank = account, bankCode
	} else {
		counterpartyAccount = counterpartyIBAN
	}

	vs, ks, ss := extractSymbols(description)

	return domain.Transaction{
		TransactionID:       id,
		Date:                domain.DateOnly(bookingDate),
		ValueDate:           domain.DateOnly(valueDate),
		Amount:              amount,
		Type:                txnType,
		CurrencyCode:        currency,
		Description:         description,
		CounterpartyName:    strings.TrimSpace(counterpartyName),
		CounterpartyAccount: counterpartyAccount,
		CounterpartyBank:    counterpartyBank,
		VariableSymbol:      vs,
		ConstantSymbol:      ks,
		SpecificSymbol:      ss,
	}, true
}

// truncateISODateTime reduces an ISO date-time to its date part.
func truncateISODateTime(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, 'T'); idx > 0 {
		return s[:idx]
	}
	return s
}
