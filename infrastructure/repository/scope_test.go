package repository

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScoped(t *testing.T) {
	base := squirrel.Select("id").From("channels").PlaceholderFormat(squirrel.Dollar)

	tests := []struct {
		name        string
		scope       domain.Scope
		expectedSQL string
		expectedArg []any
	}{
		{
			name:        "Escopo de tenant sempre filtra pela organização",
			scope:       domain.TenantScope("org-1"),
			expectedSQL: "SELECT id FROM channels WHERE organization_id = $1",
			expectedArg: []any{"org-1"},
		},
		{
			name:        "Escopo elevado sem alvo omite o filtro",
			scope:       domain.VendorScope("ops@adsight.io"),
			expectedSQL: "SELECT id FROM channels",
			expectedArg: nil,
		},
		{
			name: "Escopo elevado com alvo fixa a organização alvo",
			scope: domain.Scope{
				Elevated:       true,
				Actor:          "ops@adsight.io",
				OrganizationID: "org-2",
			},
			expectedSQL: "SELECT id FROM channels WHERE organization_id = $1",
			expectedArg: []any{"org-2"},
		},
		{
			name:        "Escopo de tenant vazio filtra por organização vazia, não vaza dados",
			scope:       domain.TenantScope(""),
			expectedSQL: "SELECT id FROM channels WHERE organization_id = $1",
			expectedArg: []any{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := scoped(base, tt.scope, "organization_id").ToSql()

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedArg, args)
		})
	}
}

func TestScopedUpdate(t *testing.T) {
	base := squirrel.Update("credentials").Set("active", false).PlaceholderFormat(squirrel.Dollar)

	t.Run("Escopo de tenant filtra o update pela organização", func(t *testing.T) {
		sql, args, err := scopedUpdate(base, domain.TenantScope("org-1"), "organization_id").ToSql()

		assert.NoError(t, err)
		assert.Equal(t, "UPDATE credentials SET active = $1 WHERE organization_id = $2", sql)
		assert.Equal(t, []any{false, "org-1"}, args)
	})

	t.Run("Escopo elevado sem alvo não restringe o update", func(t *testing.T) {
		sql, args, err := scopedUpdate(base, domain.VendorScope("ops@adsight.io"), "organization_id").ToSql()

		assert.NoError(t, err)
		assert.Equal(t, "UPDATE credentials SET active = $1", sql)
		assert.Equal(t, []any{false}, args)
	})
}
