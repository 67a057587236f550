package syncing

import "errors"

// Erros de pré-condição da sincronização. Nenhum deles cria um sync job:
// eles acontecem antes de qualquer chamada ao upstream.
var (
	ErrUnsupportedPlatform = errors.New("plataforma não suportada")
	ErrCredentialMissing   = errors.New("nenhuma credencial ativa para a plataforma")
	ErrCredentialInvalid   = errors.New("credencial sem token de acesso ou sem sub-contas")
	ErrQuotaExceeded       = errors.New("quota diária de sincronização excedida")
	ErrSyncAlreadyRunning  = errors.New("já existe uma sincronização em andamento para a plataforma")
)
