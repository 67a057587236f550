package domain

// Scope delimita o tenant de toda operação de leitura/escrita. Os
// repositórios aplicam o filtro de organização em SQL a partir deste valor;
// um escopo elevado (vendor) ignora o filtro e só pode ser emitido pelo
// caminho auditado.
type Scope struct {
	OrganizationID string
	Elevated       bool
	Actor          string
}

// TenantScope cria um escopo restrito a uma organização.
func TenantScope(organizationID string) Scope {
	return Scope{OrganizationID: organizationID}
}

// VendorScope cria um escopo elevado que ignora o filtro por organização.
// Todo acesso feito com este escopo deve gerar uma entrada de auditoria.
func VendorScope(actor string) Scope {
	return Scope{Elevated: true, Actor: actor}
}
