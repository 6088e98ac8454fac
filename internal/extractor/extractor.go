// Package extractor pulls structured business identifiers out of noisy OCR
// text. Extraction is a pure function over the text: a field that cannot be
// recovered is left nil, and malformed input never produces an error.
package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// vendorScanLines bounds the head-of-document scan for the vendor name.
const vendorScanLines = 10

// centSlack tolerates OCR rounding when checking the VAT identity.
var centSlack = decimal.New(1, -2)

// Extract runs the document-type-specific pattern set over text and returns
// the structured record. docType selects which fields are attempted; for an
// unknown type every pattern runs.
func Extract(text string, docType domain.DocumentType) domain.ExtractedInfo {
	info := domain.ExtractedInfo{DocType: docType}
	if strings.TrimSpace(text) == "" {
		return info
	}

	for _, fp := range patternsFor(docType) {
		raw, ok := firstMatch(text, fp.patterns)
		if !ok {
			continue
		}
		applyField(&info, fp.field, raw)
	}

	checkVATIdentity(&info)

	if name := extractVendorName(text); name != "" {
		info.VendorName = &name
	}
	info.References = collectReferences(text)

	return info
}

// firstMatch returns the first capture of the first matching expression.
func firstMatch(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// applyField stores one matched raw value into its record slot, normalizing
// on the way in. A value that fails normalization is treated as not found.
func applyField(info *domain.ExtractedInfo, f field, raw string) {
	switch f {
	case fieldOrderNumber:
		info.OrderNumber = identifierPtr(raw)
	case fieldInvoiceNumber:
		info.InvoiceNumber = identifierPtr(raw)
	case fieldDeliveryNoteNumber:
		info.DeliveryNoteNumber = identifierPtr(raw)
	case fieldVariableSymbol:
		info.VariableSymbol = identifierPtr(raw)
	case fieldAmountWithoutVAT:
		info.AmountWithoutVAT = parseAmount(raw)
	case fieldVATAmount:
		info.VATAmount = parseAmount(raw)
	case fieldAmountWithVAT:
		info.AmountWithVAT = parseAmount(raw)
	case fieldIssueDate:
		info.IssueDate = parseDate(raw)
	case fieldDueDate:
		info.DueDate = parseDate(raw)
	case fieldDeliveryDate:
		info.DeliveryDate = parseDate(raw)
	case fieldVendorICO:
		info.VendorICO = identifierPtr(raw)
	case fieldCustomerICO:
		info.CustomerICO = identifierPtr(raw)
	}
}

// identifierPtr trims and upper-cases an identifier; empty maps to nil.
func identifierPtr(raw string) *string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	return &s
}

// parseAmount normalizes decimal/thousands separators and converts to a
// decimal. "1 234,56" and "1.234,56" both become 1234.56; when both
// separators appear, the later one is taken as the decimal mark, so
// English-grouped "1,234.56" parses correctly too. A failed numeric parse
// yields nil, never an error.
func parseAmount(raw string) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// European style: dot groups thousands, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		// English style: comma groups thousands, dot is the decimal mark.
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// dateLayouts in attempt order: Czech dotted dates first, then ISO-8601.
var dateLayouts = []string{"2.1.2006", "02.01.2006", "2006-01-02"}

// parseDate converts a captured date string to a calendar date. OCR often
// inserts spaces after the dots, so those are squeezed out first.
func parseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ". ", ".")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := domain.DateOnly(t)
			return &d
		}
	}
	return nil
}

// checkVATIdentity verifies amount_with_vat = amount_without_vat + vat_amount
// when all three were extracted. A violated identity marks the pair as
// unreliable: only the total survives.
func checkVATIdentity(info *domain.ExtractedInfo) {
	if info.AmountWithVAT == nil || info.AmountWithoutVAT == nil || info.VATAmount == nil {
		return
	}
	sum := info.AmountWithoutVAT.Add(*info.VATAmount)
	if sum.Sub(*info.AmountWithVAT).Abs().GreaterThan(centSlack) {
		info.AmountWithoutVAT = nil
		info.VATAmount = nil
	}
}

// extractVendorName scans the first few lines of the document for a line
// carrying a legal-entity suffix and returns it as the vendor name.
func extractVendorName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > vendorScanLines {
		lines = lines[:vendorScanLines]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		for _, suffix := range legalEntitySuffixes {
			idx := strings.Index(trimmed, suffix)
			if idx < 0 {
				continue
			}
			name := strings.TrimSpace(trimmed[:idx+len(suffix)])
			// Guard against a bare suffix with no actual name in front.
			if len(name) > len(suffix)+1 {
				return name
			}
		}
	}
	return ""
}

// collectReferences gathers identifier-like substrings across the whole
// text, in order of appearance, deduplicated and capped.
func collectReferences(text string) []string {
	matches := reReference.FindAllString(strings.ToUpper(text), -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	refs := make([]string, 0, domain.MaxReferences)
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		refs = append(refs, m)
		if len(refs) == domain.MaxReferences {
			break
		}
	}
	return refs
}
