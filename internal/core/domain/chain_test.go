package domain_test

import (
	"testing"

	"github.com/docuchain/docuchain_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string { return &s }

func TestDocumentChain_DeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		chain domain.DocumentChain
		want  domain.ChainStatus
	}{
		{
			name:  "empty chain is unknown",
			chain: domain.DocumentChain{},
			want:  domain.StatusUnknown,
		},
		{
			name:  "order only",
			chain: domain.DocumentChain{OrderDocID: stringPtr("doc-1")},
			want:  domain.StatusOrdered,
		},
		{
			name: "order plus invoice",
			chain: domain.DocumentChain{
				OrderDocID:   stringPtr("doc-1"),
				InvoiceDocID: stringPtr("doc-2"),
			},
			want: domain.StatusInvoiced,
		},
		{
			name: "delivery note beats invoice",
			chain: domain.DocumentChain{
				InvoiceDocID:      stringPtr("doc-2"),
				DeliveryNoteDocID: stringPtr("doc-3"),
			},
			want: domain.StatusDelivered,
		},
		{
			name: "payment completes without delivery note",
			chain: domain.DocumentChain{
				OrderDocID:   stringPtr("doc-1"),
				InvoiceDocID: stringPtr("doc-2"),
				PaymentDocID: stringPtr("doc-4"),
			},
			want: domain.StatusCompleted,
		},
		{
			name:  "payment alone completes",
			chain: domain.DocumentChain{PaymentDocID: stringPtr("doc-4")},
			want:  domain.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.chain.DeriveStatus()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, tt.chain.Status)
		})
	}
}

func TestDocumentChain_FillRole(t *testing.T) {
	chain := domain.DocumentChain{}

	assert.True(t, chain.FillRole(domain.RoleOrder, "doc-1"))
	assert.Equal(t, "doc-1", *chain.OrderDocID)

	// A filled slot is never overwritten.
	assert.False(t, chain.FillRole(domain.RoleOrder, "doc-99"))
	assert.Equal(t, "doc-1", *chain.OrderDocID)

	assert.True(t, chain.FillRole(domain.RolePayment, "doc-4"))
	assert.True(t, chain.ContainsDoc("doc-4"))
	assert.False(t, chain.ContainsDoc("doc-99"))
}

func TestNewChainID_Deterministic(t *testing.T) {
	a := domain.NewChainID("doc-123")
	b := domain.NewChainID("doc-123")
	c := domain.NewChainID("doc-456")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "chn-")
}

func TestStatement_DeriveClosingBalance(t *testing.T) {
	opening := decimal.NewFromFloat(1000)
	stmt := domain.Statement{
		OpeningBalance: &opening,
		Transactions: []domain.Transaction{
			{Amount: decimal.NewFromFloat(250.50)},
			{Amount: decimal.NewFromFloat(-100.25)},
		},
	}

	stmt.DeriveClosingBalance()
	assert.NotNil(t, stmt.ClosingBalance)
	assert.True(t, stmt.ClosingBalance.Equal(decimal.NewFromFloat(1150.25)))

	// An explicit closing balance is left untouched.
	explicit := decimal.NewFromFloat(9999)
	stmt2 := domain.Statement{OpeningBalance: &opening, ClosingBalance: &explicit}
	stmt2.DeriveClosingBalance()
	assert.True(t, stmt2.ClosingBalance.Equal(explicit))
}

func TestRoleForDocType(t *testing.T) {
	role, ok := domain.RoleForDocType(domain.DocTypeInvoice)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleInvoice, role)

	role, ok = domain.RoleForDocType(domain.DocTypeBankStmt)
	assert.True(t, ok)
	assert.Equal(t, domain.RolePayment, role)

	_, ok = domain.RoleForDocType(domain.DocTypeUnknown)
	assert.False(t, ok)
}
