// health.go — handlers dos endpoints de saúde do back-office.
// /health/live — liveness probe (processo vivo)
// /health/ready — readiness probe (PostgreSQL, Redis e IdP)
// /metrics — métricas Prometheus
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ferreiradev/studio-backoffice/internal/config"
)

// ReadinessChecker — interface de verificação de prontidão de dependência.
type ReadinessChecker interface {
	// CheckReady devolve o status ("ok", "degraded", "fail") e uma mensagem.
	CheckReady() (status string, message string)
}

// HealthHandler — handler dos endpoints de saúde.
type HealthHandler struct {
	pgChecker    ReadinessChecker
	redisChecker ReadinessChecker
	idpChecker   ReadinessChecker
	promHandler  http.Handler
}

// NewHealthHandler cria o handler dos endpoints de saúde.
// pgChecker — verificação do PostgreSQL; redisChecker — verificação do Redis
// (nil quando o limitador é em memória); idpChecker — verificação do IdP
// (nil quando a autenticação está desativada). Checagens nil são omitidas.
func NewHealthHandler(pgChecker, redisChecker, idpChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		pgChecker:    pgChecker,
		redisChecker: redisChecker,
		idpChecker:   idpChecker,
		promHandler:  promhttp.Handler(),
	}
}

// healthCheckResult — resultado da verificação de uma dependência.
type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthLiveResponse — resposta do liveness probe.
type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// healthReadyResponse — resposta do readiness probe.
type healthReadyResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
	Checks    struct {
		PostgreSQL healthCheckResult  `json:"postgresql"`
		Redis      *healthCheckResult `json:"redis,omitempty"`
		IdP        *healthCheckResult `json:"idp,omitempty"`
	} `json:"checks"`
}

// HealthLive — liveness probe. Devolve 200 se o processo está vivo.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	resp := healthLiveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "studio-backoffice",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// HealthReady — readiness probe. Verifica PostgreSQL e, se configurado, Redis.
// Devolve 200 (ok/degraded) ou 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := healthReadyResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "studio-backoffice",
	}

	// PostgreSQL
	if h.pgChecker != nil {
		pgStatus, pgMsg := h.pgChecker.CheckReady()
		resp.Checks.PostgreSQL = healthCheckResult{Status: pgStatus, Message: pgMsg}
	} else {
		resp.Checks.PostgreSQL = healthCheckResult{Status: "fail", Message: "não inicializado"}
	}

	statuses := []string{resp.Checks.PostgreSQL.Status}

	// Redis entra na checagem apenas quando o limitador usa Redis.
	// O limitador falha aberto, então Redis fora do ar é degraded, não fail.
	if h.redisChecker != nil {
		redisStatus, redisMsg := h.redisChecker.CheckReady()
		if redisStatus == "fail" {
			redisStatus = "degraded"
		}
		resp.Checks.Redis = &healthCheckResult{Status: redisStatus, Message: redisMsg}
		statuses = append(statuses, redisStatus)
	}

	// IdP fora do ar não derruba a prontidão: os tokens continuam sendo
	// validados com as chaves JWKS em cache.
	if h.idpChecker != nil {
		idpStatus, idpMsg := h.idpChecker.CheckReady()
		if idpStatus == "fail" {
			idpStatus = "degraded"
		}
		resp.Checks.IdP = &healthCheckResult{Status: idpStatus, Message: idpMsg}
		statuses = append(statuses, idpStatus)
	}

	resp.Status = overallStatus(statuses...)

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == "fail" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// GetMetrics — métricas Prometheus.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// overallStatus combina os status das dependências.
// Qualquer fail → fail; qualquer degraded → degraded; senão ok.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == "fail" {
			return "fail"
		}
		if s == "degraded" {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return "degraded"
	}
	return "ok"
}
