package domain

import "time"

// RawAction é um item da lista de ações retornada pela plataforma.
type RawAction struct {
	Type  string  `json:"action_type"`
	Value float64 `json:"value"`
}

// RawInsight é o registro diário bruto retornado por um conector, ainda na
// granularidade da plataforma. Actions carrega contagens por tipo de ação e
// ActionValues os valores monetários correspondentes.
type RawInsight struct {
	ExternalAccountID string      `json:"external_account_id"`
	Date              time.Time   `json:"date"`
	Spend             float64     `json:"spend"`
	Impressions       int64       `json:"impressions"`
	Clicks            int64       `json:"clicks"`
	Actions           []RawAction `json:"actions,omitempty"`
	ActionValues      []RawAction `json:"action_values,omitempty"`
}

// DailyMetric é o registro canônico diário de performance, independente da
// plataforma de origem. Único por (channel_id, date); re-ingestão sobrescreve.
type DailyMetric struct {
	ID          string     `json:"id,omitempty"`
	ChannelID   string     `json:"channel_id"`
	Date        time.Time  `json:"date"`
	Spend       float64    `json:"spend"`
	Revenue     float64    `json:"revenue"`
	Impressions int64      `json:"impressions"`
	Clicks      int64      `json:"clicks"`
	Conversions int64      `json:"conversions"`
	ROAS        float64    `json:"roas"`
	CPA         float64    `json:"cpa"`
	CTR         float64    `json:"ctr"`
	CVR         float64    `json:"cvr"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// MetricFilters delimita o período consultado nas séries temporais.
type MetricFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// DateRange é a janela fechada [Since, Until] solicitada a um conector.
type DateRange struct {
	Since time.Time
	Until time.Time
}

// TrailingWindow monta a janela dos últimos `days` dias terminando ontem.
func TrailingWindow(days int, now time.Time) DateRange {
	until := now.AddDate(0, 0, -1)
	return DateRange{
		Since: until.AddDate(0, 0, -(days - 1)),
		Until: until,
	}
}
