// logging.go — middleware de log estruturado das requisições HTTP.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogger devolve um middleware que registra cada requisição:
// método, caminho, status, duração e endereço de origem.
// Cada requisição ganha um request_id (o X-Request-ID recebido, ou um
// UUID novo), devolvido também no header da resposta para correlação.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	componentLogger := logger.With(slog.String("component", "http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			// Nível pelo grupo do status: 5xx erro, 4xx aviso, resto info.
			level := slog.LevelInfo
			switch {
			case wrapped.statusCode >= 500:
				level = slog.LevelError
			case wrapped.statusCode >= 400:
				level = slog.LevelWarn
			}

			componentLogger.Log(r.Context(), level, "Requisição atendida",
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
