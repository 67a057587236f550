package domain

import "time"

// AuditEntry é o registro imutável de uma ação privilegiada. Toda leitura ou
// escrita feita com escopo elevado gera exatamente uma entrada.
type AuditEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}
