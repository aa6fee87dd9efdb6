package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
	"github.com/meridianbank/bankadmin-api/internal/mocks"
)

func TestAuditTrailRecordsActorAndAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auditRepo := mocks.NewMockAuditRepository(ctrl)
	auditRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.AppendAuditRequest) (*model.AuditEntry, error) {
			assert.Equal(t, "admin-1", req.AdminID)
			assert.Equal(t, model.AuditActionRosterRemove, req.Action)
			assert.Equal(t, "admin_user", req.TargetType)
			assert.Equal(t, "staff-9", req.TargetID)
			return &model.AuditEntry{ID: "audit-1"}, nil
		})

	svc := NewRosterService(RosterServiceOptions{
		RosterRepo: &stubRosterRepo{
			removeFunc: func(context.Context, string) error { return nil },
		},
		AuditRepo: auditRepo,
	})
	require.NoError(t, svc.Remove(context.Background(), testActor(), "staff-9"))
}

func TestAuditTrailFailureDoesNotFailOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auditRepo := mocks.NewMockAuditRepository(ctrl)
	auditRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("audit store unavailable"))

	repo := &stubRosterRepo{
		addFunc: func(_ context.Context, id, email string, role domainauth.Role) (domainauth.AdminProfile, error) {
			return domainauth.AdminProfile{ID: id, Email: email, Role: role}, nil
		},
	}
	svc := NewRosterService(RosterServiceOptions{RosterRepo: repo, AuditRepo: auditRepo})

	profile, err := svc.Add(context.Background(), testActor(), "staff-9", "nine@meridianbank.example", domainauth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "staff-9", profile.ID)
}
