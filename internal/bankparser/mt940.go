package bankparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MT940Parser decodes SWIFT MT940 plain-text statement messages.
type MT940Parser struct{}

func (p *MT940Parser) Format() domain.StatementFormat { return domain.FormatMT940 }

var (
	reMT940Ref     = regexp.MustCompile(`:20:([^\n]+)`)
	reMT940Account = regexp.MustCompile(`:25:([^\n]+)`)
	// :60F:/:62F: carry a D/C indicator, YYMMDD date, ISO currency, amount.
	reMT940Opening = regexp.MustCompile(`:60F:([DC])(\d{6})([A-Z]{3})([\d,.]+)`)
	reMT940Closing = regexp.MustCompile(`:62F:([DC])(\d{6})([A-Z]{3})([\d,.]+)`)
	// :61: carries value date YYMMDD, optional entry date MMDD, reversal/debit/credit
	// indicator, optional funds code letter, amount.
	reMT940Entry = regexp.MustCompile(`^(\d{6})(\d{4})?(R?[DC])([A-Z])?([\d,.]+)`)
)

// Parse walks the message tag by tag. Each :61: line is paired with the
// :86: free-text block that follows it, up to the next :61:/:62: tag.
func (p *MT940Parser) Parse(content []byte) (*domain.Statement, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	stmt := &domain.Statement{
		CurrencyCode:   domain.DefaultCurrency,
		OriginalFormat: domain.FormatMT940,
	}

	if m := reMT940Ref.FindStringSubmatch(text); m != nil {
		stmt.StatementID = strings.TrimSpace(m[1])
	}
	if m := reMT940Account.FindStringSubmatch(text); m != nil {
		applyMT940Account(stmt, strings.TrimSpace(m[1]))
	}

	if m := reMT940Opening.FindStringSubmatch(text); m != nil {
		amount, date, currency, ok := parseMT940Balance(m)
		if ok {
			stmt.OpeningBalance = &amount
			stmt.FromDate = &date
			stmt.CurrencyCode = currency
		}
	}
	if m := reMT940Closing.FindStringSubmatch(text); m != nil {
		amount, date, _, ok := parseMT940Balance(m)
		if ok {
			stmt.ClosingBalance = &amount
			stmt.ToDate = &date
		}
	}

	entries, err := pairMT940Entries(text)
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		txn, ok := parseMT940Entry(entry.line, entry.description, stmt.CurrencyCode, i)
		if !ok {
			continue // a line that cannot yield a usable amount is skipped
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}

	stmt.DeriveClosingBalance()
	return stmt, nil
}

// applyMT940Account fills account fields from the :25: tag, which carries
// either a Czech "account/bankcode" pair or an IBAN.
func applyMT940Account(stmt *domain.Statement, raw string) {
	if bankCode, account, ok := decomposeCzechIBAN(raw); ok {
		stmt.IBAN = raw
		stmt.BankCode = bankCode
		stmt.AccountNumber = account
		return
	}
	if idx := strings.LastIndex(raw, "/"); idx > 0 {
		stmt.AccountNumber = raw[:idx]
		stmt.BankCode = raw[idx+1:]
		return
	}
	stmt.AccountNumber = raw
}

// parseMT940Balance decodes a :60F:/:62F: submatch. A D indicator flips the
// sign, same as on transaction entries.
func parseMT940Balance(m []string) (decimal.Decimal, time.Time, string, bool) {
	amount, ok := parseDecimal(m[4])
	if !ok {
		return decimal.Zero, time.Time{}, "", false
	}
	if m[1] == "D" {
		amount = amount.Neg()
	}
	date, err := time.Parse("060102", m[2])
	if err != nil {
		return decimal.Zero, time.Time{}, "", false
	}
	return amount, domain.DateOnly(date), m[3], true
}

type mt940Entry struct {
	line        string // content of the :61: tag
	description string // accumulated :86: block
}

// pairMT940Entries walks the message line by line, attaching each :86:
// block (including continuation lines) to the preceding :61: entry.
func pairMT940Entries(text string) ([]mt940Entry, error) {
	var entries []mt940Entry
	var current *mt940Entry
	inDescription := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, ":61:"):
			if current != nil {
				entries = append(entries, *current)
			}
			current = &mt940Entry{line: strings.TrimSpace(line[4:])}
			inDescription = false
		case strings.HasPrefix(line, ":86:"):
			if current == nil {
				continue // information block with no owning entry
			}
			current.description = strings.TrimSpace(line[4:])
			inDescription = true
		case strings.HasPrefix(line, ":"), strings.HasPrefix(line, "-"):
			// Any other tag or the message trailer terminates the block.
			if current != nil {
				entries = append(entries, *current)
				current = nil
			}
			inDescription = false
		default:
			if inDescription && current != nil && strings.TrimSpace(line) != "" {
				current.description += " " + strings.TrimSpace(line)
			}
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries, nil
}

// parseMT940Entry decodes one :61: statement line plus its description.
func parseMT940Entry(line, description, currency string, seq int) (domain.Transaction, bool) {
	m := reMT940Entry.FindStringSubmatch(line)
	if m == nil {
		return domain.Transaction{}, false
	}

	valueDate, err := time.Parse("060102", m[1])
	if err != nil {
		return domain.Transaction{}, false
	}
	valueDate = domain.DateOnly(valueDate)

	bookingDate := valueDate
	if m[2] != "" {
		// Entry date is MMDD; it borrows the value date's year.
		if d, derr := time.Parse("0102", m[2]); derr == nil {
			bookingDate = time.Date(valueDate.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	amount, ok := parseDecimal(m[5])
	if !ok {
		return domain.Transaction{}, false
	}

	txnType := domain.Credit
	if strings.HasSuffix(m[3], "D") {
		txnType = domain.Debit
		amount = amount.Neg()
	}

	vs, ks, ss := extractSymbols(description)

	return domain.Transaction{
		TransactionID:  fmt.Sprintf("mt940-%s-%d", m[1], seq+1),
		Date:           bookingDate,
		ValueDate:      valueDate,
		Amount:         amount,
		Type:           txnType,
		CurrencyCode:   currency,
		Description:    description,
		VariableSymbol: vs,
		ConstantSymbol: ks,
		SpecificSymbol: ss,
	}, true
}
