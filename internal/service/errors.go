// errors.go — erros de negócio da camada de serviço.
package service

import "errors"

var (
	// ErrValidation — entrada com formato, tamanho ou valor inválido.
	ErrValidation = errors.New("erro de validação")
	// ErrNotFound — recurso referenciado não existe.
	ErrNotFound = errors.New("recurso não encontrado")
	// ErrInvalidState — operação não permitida no estado atual do recurso.
	ErrInvalidState = errors.New("operação não permitida no estado atual")
	// ErrRateLimited — submissão pública acima do limite de frequência.
	ErrRateLimited = errors.New("limite de submissões excedido")
	// ErrConflict — conflito com registro existente.
	ErrConflict = errors.New("conflito — registro já existe")
	// ErrStore — falha de comunicação com o banco (causa opaca embrulhada).
	ErrStore = errors.New("falha no armazenamento")
)
