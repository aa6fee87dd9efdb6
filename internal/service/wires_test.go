package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbank/bankadmin-api/internal/data"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

func transitionRecorder(calls *[][2]model.WireStatus) *stubWireRepo {
	return &stubWireRepo{
		transitionFunc: func(_ context.Context, id string, from, to model.WireStatus) (*model.WireTransfer, error) {
			*calls = append(*calls, [2]model.WireStatus{from, to})
			return &model.WireTransfer{ID: id, Status: to}, nil
		},
	}
}

func TestWireService_SuspendAndRelease(t *testing.T) {
	var calls [][2]model.WireStatus
	audit := &memoryAuditRepo{}
	svc := NewWireService(WireServiceOptions{WireRepo: transitionRecorder(&calls), AuditRepo: audit})
	ctx := context.Background()

	wire, err := svc.Suspend(ctx, testActor(), "wire-1")
	require.NoError(t, err)
	assert.Equal(t, model.WireStatusSuspended, wire.Status)

	wire, err = svc.Release(ctx, testActor(), "wire-1")
	require.NoError(t, err)
	assert.Equal(t, model.WireStatusPending, wire.Status)

	require.Equal(t, [][2]model.WireStatus{
		{model.WireStatusPending, model.WireStatusSuspended},
		{model.WireStatusSuspended, model.WireStatusPending},
	}, calls)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, model.AuditActionWireSuspend, audit.entries[0].Action)
	assert.Equal(t, model.AuditActionWireRelease, audit.entries[1].Action)
}

func TestWireService_Suspend_InvalidTransition(t *testing.T) {
	repo := &stubWireRepo{
		transitionFunc: func(context.Context, string, model.WireStatus, model.WireStatus) (*model.WireTransfer, error) {
			return nil, data.ErrWireInvalidTransition
		},
	}
	audit := &memoryAuditRepo{}
	svc := NewWireService(WireServiceOptions{WireRepo: repo, AuditRepo: audit})

	_, err := svc.Suspend(context.Background(), testActor(), "wire-done")
	assert.ErrorIs(t, err, data.ErrWireInvalidTransition)
	assert.Empty(t, audit.entries)
}
