package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxTrackedKeys — teto de endereços acompanhados simultaneamente.
// O LRU descarta os mais antigos; um descarte prematuro apenas
// reinicia a janela daquele endereço (comportamento aceitável).
const maxTrackedKeys = 4096

// MemoryLimiter — limitador de janela fixa em memória.
// Usado quando o Redis não está configurado (dev e testes).
// Contadores expiram junto com a janela via LRU expirável.
type MemoryLimiter struct {
	mu     sync.Mutex
	cache  *expirable.LRU[string, int]
	limit  int
	window time.Duration
}

// NewMemoryLimiter cria o limitador em memória.
// limit — submissões permitidas por chave dentro de window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		cache:  expirable.NewLRU[string, int](maxTrackedKeys, nil, window),
		limit:  limit,
		window: window,
	}
}

// Allow incrementa o contador da chave e compara com o limite.
// Nunca devolve erro: a implementação é local.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count, _ := l.cache.Get(key)
	count++
	l.cache.Add(key, count)

	return count <= l.limit, nil
}
