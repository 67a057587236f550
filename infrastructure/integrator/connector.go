package integrator

import (
	"context"

	"github.com/adsight/adsight-api/internal/domain"
)

// Connector busca os dados brutos de performance de uma plataforma para um
// intervalo de datas. Implementações não embutem política de retry: falhas
// retornam tipadas e a decisão de backoff pertence ao orquestrador.
type Connector interface {
	Platform() domain.Platform
	FetchInsights(ctx context.Context, credential *domain.Credential, window domain.DateRange) ([]domain.RawInsight, error)
}

// Registry resolve o conector pela tag da plataforma. É uma tabela de
// capacidades, não uma hierarquia de tipos.
type Registry struct {
	connectors map[domain.Platform]Connector
}

func NewRegistry(connectors ...Connector) *Registry {
	byPlatform := make(map[domain.Platform]Connector, len(connectors))
	for _, connector := range connectors {
		byPlatform[connector.Platform()] = connector
	}
	return &Registry{connectors: byPlatform}
}

// Lookup retorna o conector registrado para a plataforma, se houver.
func (r *Registry) Lookup(platform domain.Platform) (Connector, bool) {
	connector, ok := r.connectors[platform]
	return connector, ok
}
