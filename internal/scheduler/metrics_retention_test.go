package scheduler

import (
	"sync"
	"testing"
	"time"

	repositoryMocks "github.com/adsight/adsight-api/infrastructure/repository/mocks"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMetricsRetentionService_GetStatusDurantePoda(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	metricRepo := repositoryMocks.NewMockDailyMetricRepository(ctrl)
	metricRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), 90).
		Return(int64(12), nil)

	service := NewMetricsRetentionService(metricRepo, &config.Config{
		Retention: config.Retention{Days: 90},
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

	service.pruneOldMetrics()
	wg.Wait()

	status := service.GetStatus()
	assert.Equal(t, int64(12), status["last_deleted_rows"])

	lastRun, ok := status["last_run_at"].(time.Time)
	assert.True(t, ok)
	assert.False(t, lastRun.IsZero())
}
