package bankparser

import (
	"fmt"
	"strings"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ABO/GPC record type codes.
const (
	aboRecordHeader      = "074"
	aboRecordTransaction = "075"
)

// ABOParser decodes the Czech ABO/GPC fixed-width statement format.
// Fields sit at fixed byte offsets; amounts are in minor units (haléře).
type ABOParser struct{}

func (p *ABOParser) Format() domain.StatementFormat { return domain.FormatABO }

// Header record 074 layout (byte offsets into the line):
//
//	[0:3)    record code "074"
//	[3:19)   account number, zero padded
//	[19:23)  bank code
//	[23:26)  statement number
//	[26:32)  statement start date DDMMYY
//	[32:46)  opening balance, minor units
//	[46]     opening balance sign '+'/'-'
//	[47:61)  closing balance, minor units
//	[61]     closing balance sign
const aboHeaderLen = 62

// Transaction record 075 layout:
//
//	[0:3)    record code "075"
//	[3:19)   own account number
//	[19:35)  counterparty account number
//	[35:39)  counterparty bank code
//	[39:52)  document number
//	[52:62)  amount, minor units
//	[62]     posting flag: '0' credit, '1' debit
//	[63:73)  variable symbol
//	[73:83)  constant symbol
//	[83:93)  specific symbol
//	[93:99)  posting date DDMMYY
const aboTransactionLen = 99

func (p *ABOParser) Parse(content []byte) (*domain.Statement, error) {
	stmt := &domain.Statement{
		CurrencyCode:   domain.DefaultCurrency,
		OriginalFormat: domain.FormatABO,
	}

	sawHeader := false
	txnSeq := 0
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimRight(raw, "\r")
		switch {
		case strings.HasPrefix(line, aboRecordHeader) && len(line) >= aboHeaderLen:
			parseABOHeader(stmt, line)
			sawHeader = true
		case strings.HasPrefix(line, aboRecordTransaction) && len(line) >= aboTransactionLen:
			txnSeq++
			txn, ok := parseABOTransaction(line, stmt.CurrencyCode, txnSeq)
			if !ok {
				continue // unusable amount, skip the record
			}
			stmt.Transactions = append(stmt.Transactions, txn)
		}
	}

	if !sawHeader {
		return nil, fmt.Errorf("ABO content contains no 074 header record")
	}

	stmt.DeriveClosingBalance()
	return stmt, nil
}

func parseABOHeader(stmt *domain.Statement, line string) {
	stmt.AccountNumber = stripLeadingZeros(line[3:19])
	stmt.BankCode = strings.TrimSpace(line[19:23])
	stmt.StatementID = fmt.Sprintf("abo-%s-%s", stmt.AccountNumber, strings.TrimSpace(line[23:26]))

	if d, ok := parseABODate(line[26:32]); ok {
		stmt.FromDate = &d
		stmt.ToDate = &d
	}
	if bal, ok := parseABOAmount(line[32:46], line[46]); ok {
		stmt.OpeningBalance = &bal
	}
	if bal, ok := parseABOAmount(line[47:61], line[61]); ok {
		stmt.ClosingBalance = &bal
	}
}

func parseABOTransaction(line, currency string, seq int) (domain.Transaction, bool) {
	amount, ok := parseDecimal(line[52:62])
	if !ok {
		return domain.Transaction{}, false
	}
	// Amounts are carried in minor units.
	amount = amount.Div(decimal.NewFromInt(100))

	txnType := domain.Credit
	if line[62] == '1' {
		txnType = domain.Debit
		amount = amount.Neg()
	}

	date := time.Time{}
	if d, ok := parseABODate(line[93:99]); ok {
		date = d
	}

	id := stripLeadingZeros(line[39:52])
	if id == "" {
		id = fmt.Sprintf("abo-%d", seq)
	}

	return domain.Transaction{
		TransactionID:       id,
		Date:                date,
		ValueDate:           date,
		Amount:              amount,
		Type:                txnType,
		CurrencyCode:        currency,
		CounterpartyAccount: stripLeadingZeros(line[19:35]),
		CounterpartyBank:    strings.TrimSpace(line[35:39]),
		// An all-zero symbol field means absent, not the value zero.
		VariableSymbol: stripLeadingZeros(line[63:73]),
		ConstantSymbol: stripLeadingZeros(line[73:83]),
		SpecificSymbol: stripLeadingZeros(line[83:93]),
	}, true
}

// parseABOAmount decodes a fixed-width minor-unit balance with its sign byte.
func parseABOAmount(digits string, sign byte) (decimal.Decimal, bool) {
	d, ok := parseDecimal(strings.TrimSpace(digits))
	if !ok {
		return decimal.Zero, false
	}
	d = d.Div(decimal.NewFromInt(100))
	if sign == '-' {
		d = d.Neg()
	}
	return d, true
}

func parseABODate(s string) (time.Time, bool) {
	t, err := time.Parse("020106", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return domain.DateOnly(t), true
}
