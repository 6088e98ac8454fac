package extractor

import (
	"regexp"

	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// field names one logical slot on an ExtractedInfo record.
type field int

const (
	fieldOrderNumber field = iota
	fieldInvoiceNumber
	fieldDeliveryNoteNumber
	fieldVariableSymbol
	fieldAmountWithoutVAT
	fieldVATAmount
	fieldAmountWithVAT
	fieldIssueDate
	fieldDueDate
	fieldDeliveryDate
	fieldVendorICO
	fieldCustomerICO
)

// fieldPattern couples one logical field with its ordered candidate
// expressions. Within a field the first expression that matches wins;
// there is no scoring across patterns.
type fieldPattern struct {
	field    field
	patterns []*regexp.Regexp
}

// Keyword anchors are language-mixed (Czech, German, English) because the
// inbound documents are. All expressions capture the value in group 1.
var (
	reOrderNumber = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:číslo\s+objednávky|objednávka\s+(?:č\.|číslo)|obj\.\s*č\.)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`(?i)(?:purchase\s+order|order\s+(?:no|number|nr)\.?|PO\s+number)\s*:?\s*#?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`(?i)(?:bestellnummer|bestellung\s+nr\.?)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`\b(PO-[0-9]{4}-[0-9]{2,})\b`),
	}

	reInvoiceNumber = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:faktura\s+(?:č\.|číslo)|číslo\s+faktury|daňový\s+doklad\s+č\.)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`(?i)(?:invoice\s+(?:no|number|nr)\.?|invoice)\s*:?\s*#?\s*([A-Za-z0-9][A-Za-z0-9/_-]{3,})`),
		regexp.MustCompile(`(?i)(?:rechnungsnummer|rechnung\s+nr\.?)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`\b(FV-?[0-9]{4,})\b`),
	}

	reDeliveryNoteNumber = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:dodací\s+list\s+(?:č\.|číslo)|číslo\s+dodacího\s+listu)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`(?i)(?:delivery\s+note\s+(?:no|number)\.?)\s*:?\s*#?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`(?i)(?:lieferschein(?:nummer)?\s*(?:nr\.?)?)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{2,})`),
		regexp.MustCompile(`\b(DL-?[0-9]{4,})\b`),
	}

	reVariableSymbol = []*regexp.Regexp{
		regexp.MustCompile(`(?i)variabiln[ií]\s+symbol\s*:?\s*([0-9]{1,10})`),
		regexp.MustCompile(`(?i)(?:var\.\s*symbol|variable\s+symbol)\s*:?\s*([0-9]{1,10})`),
		regexp.MustCompile(`(?i)\bVS\s*:?\s*([0-9]{4,10})\b`),
	}

	reAmountWithVAT = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:celkem\s+k\s+úhradě|k\s+úhradě\s+celkem|celkem\s+s\s+DPH|částka\s+celkem)\s*:?\s*([0-9][0-9 .,\x{00a0}]*[0-9]|[0-9])`),
		regexp.MustCompile(`(?i)(?:total\s+(?:amount\s+)?(?:due|incl\.?\s*VAT)?|amount\s+due|gesamtbetrag)\s*:?\s*([0-9][0-9 .,\x{00a0}]*[0-9]|[0-9])`),
	}

	reAmountWithoutVAT = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:celkem\s+bez\s+DPH|základ\s+daně|cena\s+bez\s+DPH)\s*:?\s*([0-9][0-9 .,\x{00a0}]*[0-9]|[0-9])`),
		regexp.MustCompile(`(?i)(?:subtotal|total\s+excl\.?\s*VAT|nettobetrag)\s*:?\s*([0-9][0-9 .,\x{00a0}]*[0-9]|[0-9])`),
	}

	reVATAmount = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:DPH\s+(?:celkem|[0-9]{1,2}\s*%)|výše\s+DPH)\s*:?\s*([0-9][0-9 .,\x{00a0}]*[0-9]|[0-9])`),
		regexp.MustCompile(`(?i)(?:VAT(?:\s+amount| [0-9]{1,2}\s*%)?|mehrwertsteuer|mwst\.?)\s*:?\s*([0-9][0-9 .,\x{00a0}]*[0-9]|[0-9])`),
	}

	reIssueDate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:datum\s+vystavení|vystaveno\s+dne|vystaveno)\s*:?\s*([0-9]{1,2}\.\s*[0-9]{1,2}\.\s*[0-9]{4}|[0-9]{4}-[0-9]{2}-[0-9]{2})`),
		regexp.MustCompile(`(?i)(?:issue\s+date|date\s+of\s+issue|rechnungsdatum)\s*:?\s*([0-9]{1,2}\.\s*[0-9]{1,2}\.\s*[0-9]{4}|[0-9]{4}-[0-9]{2}-[0-9]{2})`),
	}

	reDueDate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:datum\s+splatnosti|splatnost(?:\s+do)?)\s*:?\s*([0-9]{1,2}\.\s*[0-9]{1,2}\.\s*[0-9]{4}|[0-9]{4}-[0-9]{2}-[0-9]{2})`),
		regexp.MustCompile(`(?i)(?:due\s+date|payable\s+by|fällig(?:keitsdatum)?(?:\s+am)?)\s*:?\s*([0-9]{1,2}\.\s*[0-9]{1,2}\.\s*[0-9]{4}|[0-9]{4}-[0-9]{2}-[0-9]{2})`),
	}

	reDeliveryDate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:datum\s+dodání|dodáno\s+dne|termín\s+dodání)\s*:?\s*([0-9]{1,2}\.\s*[0-9]{1,2}\.\s*[0-9]{4}|[0-9]{4}-[0-9]{2}-[0-9]{2})`),
		regexp.MustCompile(`(?i)(?:delivery\s+date|delivered\s+on|lieferdatum|liefertermin)\s*:?\s*([0-9]{1,2}\.\s*[0-9]{1,2}\.\s*[0-9]{4}|[0-9]{4}-[0-9]{2}-[0-9]{2})`),
	}

	reVendorICO = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:dodavatel[^\n]*?|supplier[^\n]*?|lieferant[^\n]*?)IČO?\s*:?\s*([0-9]{8})`),
		regexp.MustCompile(`(?i)\bIČO?\s*:?\s*([0-9]{8})\b`),
	}

	reCustomerICO = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:odběratel|zákazník|customer|kunde)[^\n]*?IČO?\s*:?\s*([0-9]{8})`),
	}
)

// patternTable maps each document type onto the subset of field patterns
// attempted for it. Order within the slice is the attempt order.
var patternTable = map[domain.DocumentType][]fieldPattern{
	domain.DocTypeOrder: {
		{fieldOrderNumber, reOrderNumber},
		{fieldAmountWithVAT, reAmountWithVAT},
		{fieldAmountWithoutVAT, reAmountWithoutVAT},
		{fieldVATAmount, reVATAmount},
		{fieldDeliveryDate, reDeliveryDate},
		{fieldVendorICO, reVendorICO},
		{fieldCustomerICO, reCustomerICO},
	},
	domain.DocTypeInvoice: {
		{fieldInvoiceNumber, reInvoiceNumber},
		{fieldOrderNumber, reOrderNumber},
		{fieldVariableSymbol, reVariableSymbol},
		{fieldAmountWithVAT, reAmountWithVAT},
		{fieldAmountWithoutVAT, reAmountWithoutVAT},
		{fieldVATAmount, reVATAmount},
		{fieldIssueDate, reIssueDate},
		{fieldDueDate, reDueDate},
		{fieldVendorICO, reVendorICO},
		{fieldCustomerICO, reCustomerICO},
	},
	domain.DocTypeDeliveryNote: {
		{fieldDeliveryNoteNumber, reDeliveryNoteNumber},
		{fieldOrderNumber, reOrderNumber},
		{fieldInvoiceNumber, reInvoiceNumber},
		{fieldDeliveryDate, reDeliveryDate},
		{fieldVendorICO, reVendorICO},
	},
	domain.DocTypePayment: {
		{fieldVariableSymbol, reVariableSymbol},
		{fieldAmountWithVAT, reAmountWithVAT},
		{fieldInvoiceNumber, reInvoiceNumber},
		{fieldIssueDate, reIssueDate},
	},
}

// allPatterns is the attempt order for unclassified documents: every field,
// document-number fields first.
var allPatterns = []fieldPattern{
	{fieldOrderNumber, reOrderNumber},
	{fieldInvoiceNumber, reInvoiceNumber},
	{fieldDeliveryNoteNumber, reDeliveryNoteNumber},
	{fieldVariableSymbol, reVariableSymbol},
	{fieldAmountWithVAT, reAmountWithVAT},
	{fieldAmountWithoutVAT, reAmountWithoutVAT},
	{fieldVATAmount, reVATAmount},
	{fieldIssueDate, reIssueDate},
	{fieldDueDate, reDueDate},
	{fieldDeliveryDate, reDeliveryDate},
	{fieldVendorICO, reVendorICO},
	{fieldCustomerICO, reCustomerICO},
}

// patternsFor returns the attempt list for the given document type.
func patternsFor(docType domain.DocumentType) []fieldPattern {
	if table, ok := patternTable[docType]; ok {
		return table
	}
	return allPatterns
}

// legalEntitySuffixes are the company-form markers looked for when scanning
// the document head for a vendor name.
var legalEntitySuffixes = []string{
	"s.r.o.", "s. r. o.", "spol. s r.o.", "a.s.", "a. s.",
	"k.s.", "v.o.s.", "GmbH", "AG", "Ltd", "Ltd.", "SE",
}

// reReference finds identifier-like substrings used as a matching fallback:
// alphanumeric tokens with at least four digits, optionally dashed/slashed.
var reReference = regexp.MustCompile(`\b[A-Z]{0,4}-?[0-9]{4,10}(?:[/-][0-9A-Z]{1,6})*\b`)
