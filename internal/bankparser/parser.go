// Package bankparser detects and decodes bank statement files in the four
// supported formats (SWIFT MT940, ISO 20022 CAMT.053, Czech ABO/GPC, generic
// CSV) into the normalized Statement model.
package bankparser

import (
	"fmt"
	"os"
	"strings"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// Parser decodes one statement format.
type Parser interface {
	// Parse decodes raw file content into a normalized Statement.
	Parse(content []byte) (*domain.Statement, error)
	// Format returns the format this parser handles.
	Format() domain.StatementFormat
}

// New returns the parser for the given format.
func New(format domain.StatementFormat) (Parser, error) {
	switch format {
	case domain.FormatMT940:
		return &MT940Parser{}, nil
	case domain.FormatCAMT053:
		return &CAMT053Parser{}, nil
	case domain.FormatABO:
		return &ABOParser{}, nil
	case domain.FormatCSV:
		return &CSVParser{}, nil
	default:
		return nil, fmt.Errorf("no parser for format %q", format)
	}
}

// DetectFormat identifies the statement format from raw content. The
// heuristics run in a fixed order: MT940, CAMT.053, ABO, CSV. Content that
// matches none of them yields an UnsupportedFormatError.
func DetectFormat(content []byte) (domain.StatementFormat, error) {
	text := string(content)

	// MT940: the mandatory tag triplet.
	if strings.Contains(text, ":20:") && strings.Contains(text, ":25:") && strings.Contains(text, ":60F:") {
		return domain.FormatMT940, nil
	}

	// CAMT.053: XML with the message namespace or root element.
	if strings.Contains(text, "camt.053") || strings.Contains(text, "BkToCstmrStmt") {
		return domain.FormatCAMT053, nil
	}

	// ABO/GPC: a line starting with the 074 header record code.
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), aboRecordHeader) {
			return domain.FormatABO, nil
		}
	}

	// CSV: delimited first line with a recognizable header token.
	if firstLine := firstNonEmptyLine(text); firstLine != "" {
		if strings.ContainsAny(firstLine, ";,") && hasKnownCSVHeader(firstLine) {
			return domain.FormatCSV, nil
		}
	}

	return domain.FormatUnknown, &apperrors.UnsupportedFormatError{Hint: snippet(text)}
}

// Parse auto-detects the format and decodes content.
func Parse(content []byte) (*domain.Statement, error) {
	format, err := DetectFormat(content)
	if err != nil {
		return nil, err
	}
	p, err := New(format)
	if err != nil {
		return nil, err
	}
	return p.Parse(content)
}

// ParseFile reads and parses a statement file from disk.
func ParseFile(path string) (*domain.Statement, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file %s: %w", path, err)
	}
	return Parse(content)
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func snippet(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 32 {
		trimmed = trimmed[:32]
	}
	return strings.ToValidUTF8(trimmed, "?")
}
