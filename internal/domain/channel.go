package domain

import "time"

// Channel representa uma conta externa de plataforma conectada a uma
// organização. Único por (organization_id, platform, external_account_id).
// Canais são desativados ao desconectar, nunca removidos.
type Channel struct {
	ID                string     `json:"id"`
	OrganizationID    string     `json:"organization_id"`
	Platform          Platform   `json:"platform"`
	ExternalAccountID string     `json:"external_account_id"`
	Active            bool       `json:"active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}
