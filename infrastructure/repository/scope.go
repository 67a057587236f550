package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/internal/domain"
)

// scoped aplica o filtro de isolamento de tenant em uma query de leitura.
// Escopos elevados (vendor) podem fixar uma organização alvo; sem alvo, o
// filtro é omitido por completo. Todo uso de escopo elevado é registrado em
// auditoria pela camada de caso de uso.
func scoped(b squirrel.SelectBuilder, scope domain.Scope, column string) squirrel.SelectBuilder {
	if scope.Elevated && scope.OrganizationID == "" {
		return b
	}
	return b.Where(squirrel.Eq{column: scope.OrganizationID})
}

// scopedUpdate é o equivalente de scoped para updates.
func scopedUpdate(b squirrel.UpdateBuilder, scope domain.Scope, column string) squirrel.UpdateBuilder {
	if scope.Elevated && scope.OrganizationID == "" {
		return b
	}
	return b.Where(squirrel.Eq{column: scope.OrganizationID})
}
