package domain

import "time"

// CredentialAccount identifica uma sub-conta acessível pela credencial.
type CredentialAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// CredentialPayload é o conteúdo opaco da credencial. O formato exato varia
// por plataforma; o armazenamento só valida a presença dos campos mínimos.
type CredentialPayload struct {
	AccessToken string              `json:"accessToken"`
	Accounts    []CredentialAccount `json:"accounts"`
	Extra       map[string]string   `json:"extra,omitempty"`
}

// Credential guarda o material de acesso de uma organização a uma
// plataforma. Exatamente uma credencial ativa por (organização, plataforma).
type Credential struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organization_id"`
	Platform       Platform          `json:"platform"`
	Payload        CredentialPayload `json:"payload"`
	Active         bool              `json:"active"`
	LastSyncedAt   *time.Time        `json:"last_synced_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Valid verifica os campos mínimos exigidos de qualquer plataforma:
// token de acesso e ao menos uma sub-conta.
func (p CredentialPayload) Valid() bool {
	return p.AccessToken != "" && len(p.Accounts) > 0
}
