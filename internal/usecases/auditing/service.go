package auditing

import (
	"context"

	"github.com/adsight/adsight-api/infrastructure/repository"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Auditor é o único caminho capaz de emitir escopos elevados (vendor). O
// escopo só é devolvido depois da entrada de auditoria estar persistida, de
// modo que não existe acesso privilegiado sem rastro.
type Auditor interface {
	Elevate(ctx context.Context, actor, action, target string) (domain.Scope, error)
	ListRecent(ctx context.Context, limit uint64) ([]*domain.AuditEntry, error)
}

type Service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Auditor {
	return &Service{auditRepo: auditRepo}
}

// Elevate registra a ação privilegiada e devolve um escopo sem filtro de
// organização. Falha na escrita da auditoria nega o acesso.
func (s *Service) Elevate(ctx context.Context, actor, action, target string) (domain.Scope, error) {
	entry := &domain.AuditEntry{
		ID:     uuid.New().String(),
		Actor:  actor,
		Action: action,
		Target: target,
	}

	if err := s.auditRepo.Append(ctx, entry); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"actor":  actor,
			"action": action,
			"target": target,
		}).Error("Erro ao registrar auditoria, acesso elevado negado")
		return domain.Scope{}, err
	}

	return domain.VendorScope(actor), nil
}

func (s *Service) ListRecent(ctx context.Context, limit uint64) ([]*domain.AuditEntry, error) {
	return s.auditRepo.ListRecent(ctx, limit)
}
