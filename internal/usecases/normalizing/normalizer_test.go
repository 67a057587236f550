package normalizing

import (
	"testing"
	"time"

	"github.com/adsight/adsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      domain.RawInsight
		hasError bool
		validate func(t *testing.T, metric domain.DailyMetric)
	}{
		{
			name: "Registro completo deve derivar receita, conversões e razões",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Spend:             100.0,
				Impressions:       10000,
				Clicks:            250,
				Actions: []domain.RawAction{
					{Type: "purchase", Value: 10},
					{Type: "link_click", Value: 250},
				},
				ActionValues: []domain.RawAction{
					{Type: "purchase", Value: 400.0},
					{Type: "add_to_cart", Value: 999.0},
				},
			},
			validate: func(t *testing.T, metric domain.DailyMetric) {
				assert.Equal(t, 400.0, metric.Revenue)
				assert.Equal(t, int64(10), metric.Conversions)
				assert.Equal(t, 4.0, metric.ROAS)   // 400 / 100
				assert.Equal(t, 10.0, metric.CPA)   // 100 / 10
				assert.Equal(t, 0.025, metric.CTR)  // 250 / 10000
				assert.Equal(t, 0.04, metric.CVR)   // 10 / 250
			},
		},
		{
			name: "Gasto zero deve zerar ROAS sem NaN ou Inf",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Spend:             0,
				Impressions:       1000,
				Clicks:            50,
				ActionValues: []domain.RawAction{
					{Type: "purchase", Value: 300.0},
				},
			},
			validate: func(t *testing.T, metric domain.DailyMetric) {
				assert.Equal(t, 300.0, metric.Revenue)
				assert.Equal(t, 0.0, metric.ROAS)
				assert.Equal(t, 0.0, metric.CPA)
			},
		},
		{
			name: "Sem conversões deve zerar CPA e CVR",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Spend:             50.0,
				Impressions:       2000,
				Clicks:            100,
			},
			validate: func(t *testing.T, metric domain.DailyMetric) {
				assert.Equal(t, 0.0, metric.Revenue)
				assert.Equal(t, int64(0), metric.Conversions)
				assert.Equal(t, 0.0, metric.CPA)
				assert.Equal(t, 0.0, metric.CVR)
				assert.Equal(t, 0.05, metric.CTR)
			},
		},
		{
			name: "Sem impressões e sem cliques deve zerar CTR e CVR",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Spend:             10.0,
			},
			validate: func(t *testing.T, metric domain.DailyMetric) {
				assert.Equal(t, 0.0, metric.CTR)
				assert.Equal(t, 0.0, metric.CVR)
			},
		},
		{
			name: "Apenas tipos de ação de compra contam como receita",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Spend:             100.0,
				Impressions:       1000,
				Clicks:            100,
				Actions: []domain.RawAction{
					{Type: "omni_purchase", Value: 3},
					{Type: "offsite_conversion.fb_pixel_purchase", Value: 2},
					{Type: "complete_payment", Value: 1},
					{Type: "page_view", Value: 500},
					{Type: "add_to_cart", Value: 40},
				},
				ActionValues: []domain.RawAction{
					{Type: "omni_purchase", Value: 150.0},
					{Type: "onsite_conversion.purchase", Value: 50.0},
					{Type: "add_to_cart", Value: 2000.0},
				},
			},
			validate: func(t *testing.T, metric domain.DailyMetric) {
				assert.Equal(t, 200.0, metric.Revenue)
				assert.Equal(t, int64(6), metric.Conversions)
			},
		},
		{
			name: "Razões devem ser arredondadas",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Spend:             3.0,
				Impressions:       3000,
				Clicks:            7,
				Actions: []domain.RawAction{
					{Type: "purchase", Value: 3},
				},
				ActionValues: []domain.RawAction{
					{Type: "purchase", Value: 10.0},
				},
			},
			validate: func(t *testing.T, metric domain.DailyMetric) {
				assert.Equal(t, 3.33, metric.ROAS)  // 10 / 3 = 3.3333...
				assert.Equal(t, 1.0, metric.CPA)    // 3 / 3
				assert.Equal(t, 0.0023, metric.CTR) // 7 / 3000 = 0.002333...
				assert.Equal(t, 0.4286, metric.CVR) // 3 / 7 = 0.42857...
			},
		},
		{
			name: "Data zerada deve ser rejeitada",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Spend:             10.0,
			},
			hasError: true,
		},
		{
			name: "Gasto negativo deve ser rejeitado",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Spend:             -1.0,
			},
			hasError: true,
		},
		{
			name: "Impressões negativas devem ser rejeitadas",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Impressions:       -100,
			},
			hasError: true,
		},
		{
			name: "Cliques negativos devem ser rejeitados",
			raw: domain.RawInsight{
				ExternalAccountID: "act_123",
				Date:              date,
				Clicks:            -5,
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric, err := Normalize(tt.raw)

			if tt.hasError {
				assert.ErrorIs(t, err, ErrInvalidRecord)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.raw.Date, metric.Date)
			assert.Equal(t, tt.raw.Spend, metric.Spend)
			assert.Equal(t, tt.raw.Impressions, metric.Impressions)
			assert.Equal(t, tt.raw.Clicks, metric.Clicks)

			if tt.validate != nil {
				tt.validate(t, metric)
			}
		})
	}
}

func TestNormalize_Determinismo(t *testing.T) {
	raw := domain.RawInsight{
		ExternalAccountID: "act_999",
		Date:              time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Spend:             77.7,
		Impressions:       5432,
		Clicks:            321,
		Actions:           []domain.RawAction{{Type: "purchase", Value: 7}},
		ActionValues:      []domain.RawAction{{Type: "purchase", Value: 123.45}},
	}

	first, err := Normalize(raw)
	assert.NoError(t, err)

	second, err := Normalize(raw)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
