package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter — limitador de janela fixa sobre Redis (INCR + EXPIRE).
// A chave expira junto com a janela, então não há limpeza manual.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter cria o limitador Redis.
// limit — submissões permitidas por chave dentro de window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow incrementa o contador da chave e compara com o limite.
// O EXPIRE é definido apenas na primeira tentativa da janela.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:leads:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao incrementar contador no Redis: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("erro ao definir expiração no Redis: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

// CheckReady verifica a conexão com o Redis via ping.
// Implementa handlers.ReadinessChecker.
func (l *RedisLimiter) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := l.client.Ping(ctx).Err(); err != nil {
		return "fail", fmt.Sprintf("Redis indisponível: %v", err)
	}
	return "ok", "conexão ativa"
}
