package domain

import "time"

// Organization é a raiz de isolamento de tenant. Todas as demais entidades
// pertencem transitivamente a uma organização.
type Organization struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Onboarded bool       `json:"onboarded"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
