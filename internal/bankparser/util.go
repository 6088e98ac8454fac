package bankparser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseDecimal converts a statement amount string to a decimal. Both the
// SWIFT comma decimal mark ("1500,00") and the dotted form ("56500.00") are
// accepted; thousands separators and surrounding whitespace are dropped.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	// The later of the two separators is the decimal mark; the other one
	// groups thousands. "1.234,56" and "1,234.56" both become 1234.56.
	if lastComma := strings.LastIndex(s, ","); lastComma >= 0 {
		if lastComma > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// statementDateLayouts in attempt order: Czech dotted form first, then ISO.
var statementDateLayouts = []string{"2.1.2006", "02.01.2006", "2006-01-02"}

func parseStatementDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Czech payment symbols are labeled inline in free-text transaction
// descriptions (MT940 :86: blocks, CAMT remittance info).
var (
	reSymbolVS = regexp.MustCompile(`(?i)\bVS[: ]?(\d{1,10})\b`)
	reSymbolKS = regexp.MustCompile(`(?i)\bKS[: ]?(\d{1,10})\b`)
	reSymbolSS = regexp.MustCompile(`(?i)\bSS[: ]?(\d{1,10})\b`)
)

// extractSymbols pulls VS/KS/SS out of a description.
func extractSymbols(text string) (vs, ks, ss string) {
	if m := reSymbolVS.FindStringSubmatch(text); m != nil {
		vs = m[1]
	}
	if m := reSymbolKS.FindStringSubmatch(text); m != nil {
		ks = m[1]
	}
	if m := reSymbolSS.FindStringSubmatch(text); m != nil {
		ss = m[1]
	}
	return vs, ks, ss
}

// stripLeadingZeros normalizes fixed-width numeric fields. A field that is
// entirely zeros is absent, not the literal value zero.
func stripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(s), "0")
	return trimmed
}

// decomposeCzechIBAN splits a Czech IBAN into bank code (chars 5-8) and the
// national account number (remaining chars, leading zeros dropped).
func decomposeCzechIBAN(iban string) (bankCode, account string, ok bool) {
	iban = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(iban)), " ", "")
	if !strings.HasPrefix(iban, "CZ") || len(iban) < 12 {
		return "", "", false
	}
	return iban[4:8], strings.TrimLeft(iban[8:], "0"), true
}

// csvHeaderAliases resolves localized CSV column names onto logical fields.
// Ordered: earlier aliases win when several columns could serve a field.
var csvHeaderAliases = map[string][]string{
	"date":        {"datum zaúčtování", "datum", "date", "buchungsdatum", "booking date"},
	"amount":      {"částka", "castka", "amount", "betrag"},
	"currency":    {"měna", "mena", "currency", "währung", "waehrung"},
	"description": {"popis", "zpráva pro příjemce", "description", "verwendungszweck", "note"},
	"vs":          {"variabilní symbol", "variabilni symbol", "vs", "variable symbol"},
	"ks":          {"konstantní symbol", "konstantni symbol", "ks", "constant symbol"},
	"ss":          {"specifický symbol", "specificky symbol", "ss", "specific symbol"},
	"account":     {"protiúčet", "protiucet", "counterparty account", "gegenkonto"},
	"name":        {"název protiúčtu", "nazev protiuctu", "counterparty name", "name"},
	"id":          {"id transakce", "id", "transaction id", "reference"},
}

// hasKnownCSVHeader reports whether a header line carries at least a date
// or amount column under any known alias.
func hasKnownCSVHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, field := range []string{"date", "amount"} {
		for _, alias := range csvHeaderAliases[field] {
			if strings.Contains(lower, alias) {
				return true
			}
		}
	}
	return false
}
