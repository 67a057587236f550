package integrator

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/adsight/adsight-api/internal/domain"
)

// Erros tipados de upstream. O chamador distingue os três porque apenas
// ErrUpstreamRateLimited é elegível para retry com backoff.
var (
	ErrUpstreamUnavailable = errors.New("plataforma indisponível")
	ErrUpstreamRejected    = errors.New("plataforma rejeitou a requisição")
	ErrUpstreamRateLimited = errors.New("plataforma limitou a taxa de requisições")
)

// UpstreamError carrega o contexto de uma falha na API da plataforma.
type UpstreamError struct {
	Kind       error
	Platform   domain.Platform
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Platform, e.Kind.Error(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Platform, e.Kind.Error(), e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}

// NewTransportError classifica falhas de transporte (timeout, conexão
// recusada) como indisponibilidade upstream.
func NewTransportError(platform domain.Platform, err error) error {
	return &UpstreamError{
		Kind:     ErrUpstreamUnavailable,
		Platform: platform,
		Message:  err.Error(),
	}
}

// ClassifyStatus mapeia o status HTTP da plataforma para o erro tipado:
// 429 -> rate limited, demais 4xx -> rejeição, 5xx -> indisponível.
func ClassifyStatus(platform domain.Platform, statusCode int, message string) error {
	kind := ErrUpstreamUnavailable
	switch {
	case statusCode == http.StatusTooManyRequests:
		kind = ErrUpstreamRateLimited
	case statusCode >= 400 && statusCode < 500:
		kind = ErrUpstreamRejected
	}

	return &UpstreamError{
		Kind:       kind,
		Platform:   platform,
		StatusCode: statusCode,
		Message:    message,
	}
}
