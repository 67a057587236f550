package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User é um usuário autenticável vinculado a uma organização. Usuários com
// a flag Vendor pertencem ao operador da plataforma e podem receber escopo
// elevado (sempre auditado).
type User struct {
	ID             int        `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Vendor         bool       `json:"vendor"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Claims são as claims JWT emitidas no login.
type Claims struct {
	UserID         int    `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email"`
	Vendor         bool   `json:"vendor"`
	jwt.RegisteredClaims
}
