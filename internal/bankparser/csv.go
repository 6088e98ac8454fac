package bankparser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/google/uuid"
)

// CSVParser decodes generic delimited statement exports. Column names are
// resolved through an ordered alias list per logical field across Czech,
// English and German headers.
type CSVParser struct{}

func (p *CSVParser) Format() domain.StatementFormat { return domain.FormatCSV }

// csvStatementNamespace is the fixed UUIDv5 namespace for CSV statement ids.
// CSV exports carry no statement number of their own, so the id is derived
// from the file content. Re-parsing the same file yields the same id, which
// lets a re-import replace the stored statement instead of duplicating it.
var csvStatementNamespace = uuid.MustParse("3c2d8b6e-9f41-4c5a-b0d7-2e8a5f1c4b90")

func (p *CSVParser) Parse(content []byte) (*domain.Statement, error) {
	text := strings.TrimPrefix(string(content), "\uFEFF")

	header := firstNonEmptyLine(text)
	delimiter := ','
	// Semicolon wins over comma when both appear in the header.
	if strings.Contains(header, ";") {
		delimiter = ';'
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV statement: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("CSV statement has no header row")
	}

	columns := resolveCSVColumns(records[0])
	if _, ok := columns["amount"]; !ok {
		return nil, fmt.Errorf("CSV statement header has no recognizable amount column")
	}

	stmt := &domain.Statement{
		StatementID:    "csv-" + uuid.NewSHA1(csvStatementNamespace, content).String(),
		CurrencyCode:   domain.DefaultCurrency,
		OriginalFormat: domain.FormatCSV,
	}

	for i, row := range records[1:] {
		txn, ok := parseCSVRow(row, columns, stmt.CurrencyCode, i)
		if !ok {
			continue // a row without a usable amount is skipped, not fatal
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}

	// Statement period is the span of observed transaction dates.
	for i := range stmt.Transactions {
		d := stmt.Transactions[i].Date
		if d.IsZero() {
			continue
		}
		if stmt.FromDate == nil || d.Before(*stmt.FromDate) {
			from := d
			stmt.FromDate = &from
		}
		if stmt.ToDate == nil || d.After(*stmt.ToDate) {
			to := d
			stmt.ToDate = &to
		}
	}

	return stmt, nil
}

// resolveCSVColumns maps logical field names onto column indexes using the
// alias table. For each field the earliest alias that matches wins.
func resolveCSVColumns(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	columns := make(map[string]int)
	for field, aliases := range csvHeaderAliases {
		for _, alias := range aliases {
			idx := -1
			for i, h := range normalized {
				if h == alias {
					idx = i
					break
				}
			}
			if idx >= 0 {
				columns[field] = idx
				break
			}
		}
	}
	return columns
}

func csvCell(row []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCSVRow(row []string, columns map[string]int, currency string, seq int) (domain.Transaction, bool) {
	amount, ok := parseDecimal(csvCell(row, columns, "amount"))
	if !ok {
		return domain.Transaction{}, false
	}

	txnType := domain.Credit
	if amount.IsNegative() {
		txnType = domain.Debit
	}

	txn := domain.Transaction{
		Amount:              amount,
		Type:                txnType,
		CurrencyCode:        currency,
		Description:         csvCell(row, columns, "description"),
		CounterpartyName:    csvCell(row, columns, "name"),
		CounterpartyAccount: csvCell(row, columns, "account"),
		VariableSymbol:      csvCell(row, columns, "vs"),
		ConstantSymbol:      csvCell(row, columns, "ks"),
		SpecificSymbol:      csvCell(row, columns, "ss"),
	}

	if c := csvCell(row, columns, "currency"); c != "" {
		txn.CurrencyCode = strings.ToUpper(c)
	}
	if d, ok := parseStatementDate(csvCell(row, columns, "date")); ok {
		txn.Date = domain.DateOnly(d)
		txn.ValueDate = txn.Date
	}

	txn.TransactionID = csvCell(row, columns, "id")
	if txn.TransactionID == "" {
		txn.TransactionID = fmt.Sprintf("csv-%d", seq+1)
	}

	return txn, true
}
