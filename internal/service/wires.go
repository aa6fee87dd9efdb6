package service

import (
	"context"
	"log/slog"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// WireServiceOptions groups dependencies for WireService.
type WireServiceOptions struct {
	WireRepo  core.WireRepository
	AuditRepo core.AuditRepository
	Logger    *slog.Logger
}

// WireService orchestrates staff intervention on outbound wire transfers.
// Suspend holds a pending wire for review; Release puts a suspended wire
// back in the outbound queue. Completed and cancelled wires are terminal.
type WireService struct {
	wires core.WireRepository
	audit auditTrail
}

// NewWireService constructs a new WireService.
func NewWireService(opts WireServiceOptions) *WireService {
	return &WireService{
		wires: opts.WireRepo,
		audit: newAuditTrail(opts.AuditRepo, opts.Logger),
	}
}

// GetByID retrieves a wire transfer by ID.
func (s *WireService) GetByID(ctx context.Context, id string) (*model.WireTransfer, error) {
	return s.wires.GetByID(ctx, id)
}

// List returns a page of wire transfers with optional filters.
func (s *WireService) List(ctx context.Context, opts model.WiresListOptions) ([]*model.WireTransfer, error) {
	return s.wires.List(ctx, opts)
}

// Suspend holds a pending wire transfer for manual review.
func (s *WireService) Suspend(ctx context.Context, actor domainauth.AuthContext, id string) (*model.WireTransfer, error) {
	wire, err := s.wires.Transition(ctx, id, model.WireStatusPending, model.WireStatusSuspended)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, model.AuditActionWireSuspend, "wire_transfer", id, map[string]any{
		"from": model.WireStatusPending,
		"to":   model.WireStatusSuspended,
	})
	return wire, nil
}

// Release returns a suspended wire transfer to the outbound queue.
func (s *WireService) Release(ctx context.Context, actor domainauth.AuthContext, id string) (*model.WireTransfer, error) {
	wire, err := s.wires.Transition(ctx, id, model.WireStatusSuspended, model.WireStatusPending)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, model.AuditActionWireRelease, "wire_transfer", id, map[string]any{
		"from": model.WireStatusSuspended,
		"to":   model.WireStatusPending,
	})
	return wire, nil
}
