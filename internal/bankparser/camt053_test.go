package bankparser

import (
	"testing"
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCAMT = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02">
  <BkToCstmrStmt>
    <Stmt>
      <Id>CAMT-2024-03</Id>
      <FrToDt><FrDtTm>2024-03-01T00:00:00</FrDtTm><ToDtTm>2024-03-31T23:59:59</ToDtTm></FrToDt>
      <Acct><Id><IBAN>CZ6501000000000123456789</IBAN></Id><Ccy>CZK</Ccy></Acct>
      <Bal>
        <Tp><CdOrPrtry><Cd>OPBD</Cd></CdOrPrtry></Tp>
        <Amt Ccy="CZK">55000.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <Dt><Dt>2024-03-01</Dt></Dt>
      </Bal>
      <Bal>
        <Tp><CdOrPrtry><Cd>CLBD</Cd></CdOrPrtry></Tp>
        <Amt Ccy="CZK">56500.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <Dt><Dt>2024-03-31</Dt></Dt>
      </Bal>
      <Ntry>
        <NtryRef>NTRY-1</NtryRef>
        <Amt Ccy="CZK">1500.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <BookgDt><Dt>2024-03-10</Dt></BookgDt>
        <ValDt><Dt>2024-03-10</Dt></ValDt>
        <NtryDtls><TxDtls>
          <Refs><EndToEndId>E2E-1</EndToEndId></Refs>
          <RltdPties>
            <Dbtr><Nm>Odberatel a.s.</Nm></Dbtr>
            <DbtrAcct><Id><IBAN>CZ0203000000000987654321</IBAN></Id></DbtrAcct>
          </RltdPties>
          <RmtInf><Ustrd>Uhrada faktury VS:20240001</Ustrd></RmtInf>
        </TxDtls></NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func TestCAMT053_Parse(t *testing.T) {
	stmt, err := (&CAMT053Parser{}).Parse([]byte(sampleCAMT))
	require.NoError(t, err)

	assert.Equal(t, "CAMT-2024-03", stmt.StatementID)
	assert.Equal(t, "CZ6501000000000123456789", stmt.IBAN)
	assert.Equal(t, "0100", stmt.BankCode)
	assert.Equal(t, "123456789", stmt.AccountNumber)
	assert.Equal(t, "CZK", stmt.CurrencyCode)

	// Spec example: a Bal with Cd=CLBD and Amt 56500.00 sets the closing balance.
	require.NotNil(t, stmt.ClosingBalance)
	assert.True(t, stmt.ClosingBalance.Equal(decimal.NewFromFloat(56500.00)))
	require.NotNil(t, stmt.OpeningBalance)
	assert.True(t, stmt.OpeningBalance.Equal(decimal.NewFromInt(55000)))

	require.NotNil(t, stmt.FromDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *stmt.FromDate)

	require.Len(t, stmt.Transactions, 1)
	txn := stmt.Transactions[0]
	assert.Equal(t, "NTRY-1", txn.TransactionID)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, domain.Credit, txn.Type)
	assert.Equal(t, "Odberatel a.s.", txn.CounterpartyName)
	assert.Equal(t, "0300", txn.CounterpartyBank)
	assert.Equal(t, "987654321", txn.CounterpartyAccount)
	assert.Equal(t, "20240001", txn.VariableSymbol)
}

func TestCAMT053_NoNamespace(t *testing.T) {
	// The traversal must work whether or not the ISO 20022 namespace is declared.
	doc := `<Document>
  <BkToCstmrStmt><Stmt>
    <Id>NONS-1</Id>
    <Acct><Id><Othr><Id>123456789</Id></Othr></Id></Acct>
    <Bal><Tp><CdOrPrtry><Cd>OPBD</Cd></CdOrPrtry></Tp><Amt Ccy="EUR">10.00</Amt><CdtDbtInd>CRDT</CdtDbtInd></Bal>
    <Ntry>
      <Amt Ccy="EUR">4.50</Amt>
      <CdtDbtInd>DBIT</CdtDbtInd>
      <BookgDt><Dt>2024-03-05</Dt></BookgDt>
    </Ntry>
  </Stmt></BkToCstmrStmt>
</Document>`

	stmt, err := (&CAMT053Parser{}).Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "NONS-1", stmt.StatementID)
	assert.Equal(t, "123456789", stmt.AccountNumber)

	require.Len(t, stmt.Transactions, 1)
	// DBIT negates the amount.
	assert.True(t, stmt.Transactions[0].Amount.Equal(decimal.NewFromFloat(-4.50)))
	assert.Equal(t, domain.Debit, stmt.Transactions[0].Type)

	// Closing balance derived from opening + transactions.
	require.NotNil(t, stmt.ClosingBalance)
	assert.True(t, stmt.ClosingBalance.Equal(decimal.NewFromFloat(5.50)))
}

func TestCAMT053_MalformedXML(t *testing.T) {
	_, err := (&CAMT053Parser{}).Parse([]byte("<Document><BkToCstmrStmt>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestCAMT053_EmptyDocument(t *testing.T) {
	_, err := (&CAMT053Parser{}).Parse([]byte("<Document></Document>"))
	require.Error(t, err)
}
