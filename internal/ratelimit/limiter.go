// Pacote ratelimit — limitação de frequência das submissões públicas por IP.
// Janela fixa: no máximo N submissões por endereço dentro da janela.
// O limitador falha aberto: erro de infraestrutura nunca bloqueia submissão.
package ratelimit

import "context"

// Limiter — verificação de limite de frequência por chave (endereço IP).
type Limiter interface {
	// Allow registra uma tentativa para a chave e informa se ela cabe
	// no limite da janela corrente. Erros de infraestrutura devem ser
	// tratados pelo chamador como permissão (fail open).
	Allow(ctx context.Context, key string) (bool, error)
}
