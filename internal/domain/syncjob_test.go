package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncJobStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     SyncJobStatus
		to       SyncJobStatus
		expected bool
	}{
		{"Pending pode ir para running", SyncJobPending, SyncJobRunning, true},
		{"Pending pode ir direto para failed", SyncJobPending, SyncJobFailed, true},
		{"Pending não pode pular para completed", SyncJobPending, SyncJobCompleted, false},
		{"Running pode completar", SyncJobRunning, SyncJobCompleted, true},
		{"Running pode falhar", SyncJobRunning, SyncJobFailed, true},
		{"Running não pode voltar para pending", SyncJobRunning, SyncJobPending, false},
		{"Completed é terminal", SyncJobCompleted, SyncJobRunning, false},
		{"Failed é terminal", SyncJobFailed, SyncJobRunning, false},
		{"Failed não pode completar", SyncJobFailed, SyncJobCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSyncJobStatus_Terminal(t *testing.T) {
	assert.False(t, SyncJobPending.Terminal())
	assert.False(t, SyncJobRunning.Terminal())
	assert.True(t, SyncJobCompleted.Terminal())
	assert.True(t, SyncJobFailed.Terminal())
}

func TestCredentialPayload_Valid(t *testing.T) {
	tests := []struct {
		name     string
		payload  CredentialPayload
		expected bool
	}{
		{
			name: "Token e ao menos uma conta é válido",
			payload: CredentialPayload{
				AccessToken: "token",
				Accounts:    []CredentialAccount{{ID: "act_123"}},
			},
			expected: true,
		},
		{
			name:     "Sem token é inválido",
			payload:  CredentialPayload{Accounts: []CredentialAccount{{ID: "act_123"}}},
			expected: false,
		},
		{
			name:     "Sem contas é inválido",
			payload:  CredentialPayload{AccessToken: "token"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.payload.Valid())
		})
	}
}
