package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

func seedAuditEntries(t *testing.T, repo *memoryAuditRepo) {
	t.Helper()
	ctx := context.Background()
	entries := []*model.AppendAuditRequest{
		{
			AdminID: "admin-1", Action: model.AuditActionWireSuspend,
			TargetType: "wire_transfer", TargetID: "wire-1",
			Detail: map[string]any{"from": "pending", "to": "suspended", "amount_cents": 900000},
		},
		{
			AdminID: "admin-2", Action: model.AuditActionWireSuspend,
			TargetType: "wire_transfer", TargetID: "wire-2",
			Detail: map[string]any{"from": "pending", "to": "suspended", "amount_cents": 1200},
		},
		{
			AdminID: "admin-1", Action: model.AuditActionTransactionDelete,
			TargetType: "transaction", TargetID: "txn-1",
		},
	}
	for _, e := range entries {
		_, err := repo.Append(ctx, e)
		require.NoError(t, err)
	}
}

func TestAuditService_List_SQLFilters(t *testing.T) {
	repo := &memoryAuditRepo{}
	seedAuditEntries(t, repo)
	svc := NewAuditService(AuditServiceOptions{AuditRepo: repo})

	adminID := "admin-1"
	entries, err := svc.List(context.Background(), model.AuditListOptions{AdminID: &adminID})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAuditService_List_DetailQuery(t *testing.T) {
	repo := &memoryAuditRepo{}
	seedAuditEntries(t, repo)
	svc := NewAuditService(AuditServiceOptions{AuditRepo: repo})

	// Only the large suspended wire matches the threshold expression.
	entries, err := svc.List(context.Background(), model.AuditListOptions{
		DetailQuery: "amount_cents > `100000`",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wire-1", entries[0].TargetID)
}

func TestAuditService_List_DetailQueryDropsEmptyDetails(t *testing.T) {
	repo := &memoryAuditRepo{}
	seedAuditEntries(t, repo)
	svc := NewAuditService(AuditServiceOptions{AuditRepo: repo})

	entries, err := svc.List(context.Background(), model.AuditListOptions{
		DetailQuery: "to == 'suspended'",
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAuditService_List_InvalidQuery(t *testing.T) {
	repo := &memoryAuditRepo{}
	svc := NewAuditService(AuditServiceOptions{AuditRepo: repo})

	_, err := svc.List(context.Background(), model.AuditListOptions{DetailQuery: "amount_cents >"})
	assert.ErrorContains(t, err, "invalid detail query")
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, isTruthy(nil))
	assert.False(t, isTruthy(false))
	assert.False(t, isTruthy(""))
	assert.False(t, isTruthy([]any{}))
	assert.False(t, isTruthy(map[string]any{}))

	assert.True(t, isTruthy(true))
	assert.True(t, isTruthy("x"))
	assert.True(t, isTruthy([]any{1}))
	assert.True(t, isTruthy(map[string]any{"k": 1}))
	assert.True(t, isTruthy(float64(0))) // numbers are always truthy in JMESPath
}
