package scheduler

import (
	"sync"
	"testing"
	"time"

	repositoryMocks "github.com/adsight/adsight-api/infrastructure/repository/mocks"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/adsight/adsight-api/internal/domain"
	auditingMocks "github.com/adsight/adsight-api/internal/usecases/auditing/mocks"
	"github.com/adsight/adsight-api/internal/usecases/syncing"
	syncingMocks "github.com/adsight/adsight-api/internal/usecases/syncing/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// O GetStatus é servido pelo handler de cron enquanto a goroutine de
// sincronização escreve os timestamps; com -race qualquer leitura fora do
// mutex falha aqui.
func TestInsightSyncService_GetStatusDuranteSincronizacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgRepo := repositoryMocks.NewMockOrganizationRepository(ctrl)
	auditor := auditingMocks.NewMockAuditor(ctrl)
	syncer := syncingMocks.NewMockSyncer(ctrl)

	auditor.EXPECT().
		Elevate(gomock.Any(), "scheduler", "organization.list", "sync_all").
		Return(domain.VendorScope("scheduler"), nil)
	orgRepo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*domain.Organization{{ID: "org-1", Name: "Org Um"}}, nil)
	syncer.EXPECT().
		SyncPlatform(gomock.Any(), domain.TenantScope("org-1"), gomock.Any()).
		Return(nil, syncing.ErrCredentialMissing).
		Times(len(domain.Platforms))

	service := NewInsightSyncService(orgRepo, auditor, syncer, &config.Config{
		Sync: config.Sync{LookbackDays: 30, MaxConcurrentJobs: 2, RequestTimeoutSeconds: 5},
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				service.GetStatus()
			}
		}()
	}

	service.syncAllOrganizations()
	wg.Wait()

	status := service.GetStatus()
	started, ok := status["last_sync_started_at"].(time.Time)
	assert.True(t, ok)
	assert.False(t, started.IsZero())

	completed, ok := status["last_sync_completed_at"].(time.Time)
	assert.True(t, ok)
	assert.False(t, completed.IsZero())
	assert.False(t, completed.Before(started))
}
