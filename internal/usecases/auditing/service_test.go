package auditing

import (
	"context"
	"errors"
	"testing"

	"github.com/adsight/adsight-api/infrastructure/repository/mocks"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_Elevate(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(auditRepo *mocks.MockAuditLogRepository)
		hasError bool
	}{
		{
			name: "Elevação só retorna escopo depois da auditoria persistida",
			setup: func(auditRepo *mocks.MockAuditLogRepository) {
				auditRepo.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *domain.AuditEntry) error {
						assert.NotEmpty(t, entry.ID)
						assert.Equal(t, "ops@adsight.io", entry.Actor)
						assert.Equal(t, "organization.create", entry.Action)
						assert.Equal(t, "org-9", entry.Target)
						return nil
					})
			},
		},
		{
			name: "Falha na escrita da auditoria nega o acesso elevado",
			setup: func(auditRepo *mocks.MockAuditLogRepository) {
				auditRepo.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					Return(errors.New("disk full"))
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auditRepo := mocks.NewMockAuditLogRepository(ctrl)
			service := NewService(auditRepo)
			tt.setup(auditRepo)

			scope, err := service.Elevate(context.Background(), "ops@adsight.io", "organization.create", "org-9")

			if tt.hasError {
				assert.Error(t, err)
				assert.False(t, scope.Elevated)
				assert.Empty(t, scope.Actor)
				return
			}

			assert.NoError(t, err)
			assert.True(t, scope.Elevated)
			assert.Equal(t, "ops@adsight.io", scope.Actor)
			assert.Empty(t, scope.OrganizationID)
		})
	}
}

func TestService_ListRecent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auditRepo := mocks.NewMockAuditLogRepository(ctrl)
	service := NewService(auditRepo)

	entries := []*domain.AuditEntry{
		{ID: "a-1", Actor: "ops@adsight.io", Action: "usage.read", Target: "organization:org-1"},
	}

	auditRepo.EXPECT().
		ListRecent(gomock.Any(), uint64(100)).
		Return(entries, nil)

	result, err := service.ListRecent(context.Background(), 100)

	assert.NoError(t, err)
	assert.Equal(t, entries, result)
}
