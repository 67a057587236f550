package domain

import "time"

// SyncJobStatus representa o estado de uma tentativa de ingestão.
type SyncJobStatus string

const (
	SyncJobPending   SyncJobStatus = "pending"
	SyncJobRunning   SyncJobStatus = "running"
	SyncJobCompleted SyncJobStatus = "completed"
	SyncJobFailed    SyncJobStatus = "failed"
)

// Terminal indica se o estado é final. Jobs em estado terminal nunca são
// mutados novamente.
func (s SyncJobStatus) Terminal() bool {
	return s == SyncJobCompleted || s == SyncJobFailed
}

// CanTransitionTo valida a máquina de estados
// pending -> running -> {completed, failed}.
func (s SyncJobStatus) CanTransitionTo(next SyncJobStatus) bool {
	switch s {
	case SyncJobPending:
		return next == SyncJobRunning || next == SyncJobFailed
	case SyncJobRunning:
		return next == SyncJobCompleted || next == SyncJobFailed
	default:
		return false
	}
}

// SyncJob registra o ciclo de vida de uma tentativa de ingestão para um par
// (organização, plataforma).
type SyncJob struct {
	ID             string        `json:"id"`
	OrganizationID string        `json:"organization_id"`
	Platform       Platform      `json:"platform"`
	Status         SyncJobStatus `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	RecordsSynced  int           `json:"records_synced"`
	ErrorMessage   *string       `json:"error_message,omitempty"`
}
