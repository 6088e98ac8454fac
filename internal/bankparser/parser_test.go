package bankparser

import (
	"encoding/json"
	"testing"

	"github.com/docuchain/docuchain_app/internal/apperrors"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.StatementFormat
	}{
		{
			name:    "MT940 tag triplet",
			content: ":20:REF\n:25:123/0100\n:60F:C240301CZK100,00\n",
			want:    domain.FormatMT940,
		},
		{
			name:    "CAMT.053 namespace",
			content: `<?xml version="1.0"?><Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02"></Document>`,
			want:    domain.FormatCAMT053,
		},
		{
			name:    "CAMT.053 root element without namespace",
			content: "<Document><BkToCstmrStmt/></Document>",
			want:    domain.FormatCAMT053,
		},
		{
			name:    "ABO header record",
			content: "0740000000123456789" + "0100" + "001" + "010324",
			want:    domain.FormatABO,
		},
		{
			name:    "CSV with Czech header",
			content: "Datum;Částka;Popis\n15.03.2024;100,00;x\n",
			want:    domain.FormatCSV,
		},
		{
			name:    "CSV with English header",
			content: "Date,Amount\n2024-03-15,1.00\n",
			want:    domain.FormatCSV,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Unknown(t *testing.T) {
	format, err := DetectFormat([]byte("just some random text"))
	assert.Equal(t, domain.FormatUnknown, format)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnsupportedFormat(err))
}

// JSON export and reload must preserve the statement identity fields, the
// transaction count and the signed transaction sum for every format.
func TestStatement_JSONRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"mt940": []byte(sampleMT940),
		"camt":  []byte(sampleCAMT),
		"csv": []byte("Datum;Částka;Variabilní symbol\n" +
			"15.03.2024;-1500,00;20240001\n20.03.2024;2500,00;20240002\n"),
	}

	for name, content := range inputs {
		t.Run(name, func(t *testing.T) {
			stmt, err := Parse(content)
			require.NoError(t, err)

			raw, err := json.Marshal(stmt)
			require.NoError(t, err)

			var reloaded domain.Statement
			require.NoError(t, json.Unmarshal(raw, &reloaded))

			assert.Equal(t, stmt.AccountNumber, reloaded.AccountNumber)
			assert.Equal(t, stmt.CurrencyCode, reloaded.CurrencyCode)
			assert.Len(t, reloaded.Transactions, len(stmt.Transactions))
			assert.True(t, stmt.TransactionSum().Equal(reloaded.TransactionSum()))
		})
	}
}

// The signed transaction sum equals closing minus opening balance, within
// a cent, whenever both balances are known.
func TestStatement_BalanceConsistency(t *testing.T) {
	for _, content := range [][]byte{[]byte(sampleMT940), []byte(sampleCAMT)} {
		stmt, err := Parse(content)
		require.NoError(t, err)
		require.NotNil(t, stmt.OpeningBalance)
		require.NotNil(t, stmt.ClosingBalance)

		diff := stmt.ClosingBalance.Sub(*stmt.OpeningBalance).Sub(stmt.TransactionSum()).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.New(1, -2)),
			"balance drift %s exceeds a cent", diff)
	}
}
