package domain

import "time"

// ResourceType classifica o consumo medido por tenant.
type ResourceType string

const (
	ResourceAPICall      ResourceType = "api_call"
	ResourceSync         ResourceType = "sync"
	ResourceBrainCompute ResourceType = "brain_compute"
	ResourceExport       ResourceType = "export"
)

// UsageLog é uma unidade de consumo contabilizada. Linhas são apenas
// anexadas, nunca mutadas; a agregação é por (organização, recurso, dia).
type UsageLog struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organization_id"`
	Resource       ResourceType      `json:"resource_type"`
	Count          int64             `json:"count"`
	Date           time.Time         `json:"date"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// Quota guarda os tetos diários por tipo de recurso e as flags de plano de
// uma organização. Recursos ausentes de Limits são ilimitados.
type Quota struct {
	OrganizationID string                 `json:"organization_id"`
	PlanTier       string                 `json:"plan_tier"`
	Limits         map[ResourceType]int64 `json:"limits"`
	Features       map[string]bool        `json:"features,omitempty"`
	UpdatedAt      *time.Time             `json:"updated_at,omitempty"`
}

// LimitFor retorna o teto configurado para o recurso. O segundo retorno é
// falso quando o recurso não tem teto configurado (ilimitado).
func (q *Quota) LimitFor(resource ResourceType) (int64, bool) {
	if q == nil || q.Limits == nil {
		return 0, false
	}
	limit, ok := q.Limits[resource]
	return limit, ok
}
