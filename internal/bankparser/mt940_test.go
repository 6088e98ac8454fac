package bankparser

import (
	"testing"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMT940 = `:20:STMT-2024-045
:25:123456789/0100
:28C:45/1
:60F:C240301CZK56500,00
:61:240315D1500,00NTRFNONREF
:86:Platba faktury FV-20240001 VS:20240001 KS:0308
pokracovani popisu
:61:2403200320C2500,00NTRF
:86:Prijata platba VS:20240002 SS:77
:62F:C240331CZK57500,00
-`

func TestMT940_Parse(t *testing.T) {
	stmt, err := (&MT940Parser{}).Parse([]byte(sampleMT940))
	require.NoError(t, err)

	assert.Equal(t, "STMT-2024-045", stmt.StatementID)
	assert.Equal(t, "123456789", stmt.AccountNumber)
	assert.Equal(t, "0100", stmt.BankCode)
	assert.Equal(t, "CZK", stmt.CurrencyCode)
	assert.Equal(t, domain.FormatMT940, stmt.OriginalFormat)

	require.NotNil(t, stmt.OpeningBalance)
	assert.True(t, stmt.OpeningBalance.Equal(decimal.NewFromInt(56500)))
	require.NotNil(t, stmt.ClosingBalance)
	assert.True(t, stmt.ClosingBalance.Equal(decimal.NewFromInt(57500)))

	require.NotNil(t, stmt.FromDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *stmt.FromDate)
	require.NotNil(t, stmt.ToDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), *stmt.ToDate)

	require.Len(t, stmt.Transactions, 2)

	debit := stmt.Transactions[0]
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), debit.ValueDate)
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(-1500)), "got %s", debit.Amount)
	assert.Equal(t, domain.Debit, debit.Type)
	assert.Equal(t, "20240001", debit.VariableSymbol)
	assert.Equal(t, "0308", debit.ConstantSymbol)
	assert.Contains(t, debit.Description, "pokracovani popisu")

	credit := stmt.Transactions[1]
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), credit.ValueDate)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), credit.Date)
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, domain.Credit, credit.Type)
	assert.Equal(t, "20240002", credit.VariableSymbol)
	assert.Equal(t, "77", credit.SpecificSymbol)
}

func TestMT940_DebitIndicatorFlipsSign(t *testing.T) {
	// Spec example: :61:240315D1500,00 for value 2024-03-15.
	txn, ok := parseMT940Entry("240315D1500,00NTRFNONREF", "", "CZK", 0)
	require.True(t, ok)
	assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(-1500.00)))
	assert.Equal(t, domain.Debit, txn.Type)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), txn.ValueDate)
}

func TestMT940_UnparseableEntrySkipped(t *testing.T) {
	msg := `:20:REF
:25:123/0100
:60F:C240301CZK100,00
:61:garbage-not-an-entry
:61:240315C50,00NTRF
:62F:C240331CZK150,00`

	stmt, err := (&MT940Parser{}).Parse([]byte(msg))
	require.NoError(t, err)
	require.Len(t, stmt.Transactions, 1)
	assert.True(t, stmt.Transactions[0].Amount.Equal(decimal.NewFromInt(50)))
}

func TestMT940_ClosingDerivedWhenMissing(t *testing.T) {
	msg := `:20:REF
:25:123/0100
:60F:C240301CZK100,00
:61:240315C50,00NTRF
:61:240316D30,00NTRF`

	stmt, err := (&MT940Parser{}).Parse([]byte(msg))
	require.NoError(t, err)
	require.NotNil(t, stmt.ClosingBalance)
	assert.True(t, stmt.ClosingBalance.Equal(decimal.NewFromInt(120)))
}

func TestMT940_IBANAccount(t *testing.T) {
	msg := `:20:REF
:25:CZ6501000000000123456789
:60F:C240301CZK0,00`

	stmt, err := (&MT940Parser{}).Parse([]byte(msg))
	require.NoError(t, err)
	assert.Equal(t, "CZ6501000000000123456789", stmt.IBAN)
	assert.Equal(t, "0100", stmt.BankCode)
	assert.Equal(t, "123456789", stmt.AccountNumber)
}
