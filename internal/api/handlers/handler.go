// handler.go — agregador dos handlers da API.
// Reúne os handlers de domínio e delega as requisições à camada de serviço.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/service"
)

// APIHandler — handler principal da API do back-office.
// Delega as requisições à camada de serviço.
type APIHandler struct {
	health       *HealthHandler
	leads        *service.LeadService
	promotion    *service.PromotionService
	projects     *service.ProjectService
	tasks        *service.TaskService
	finances     *service.FinanceService
	certificates *service.CertificateService
	logger       *slog.Logger
}

// NewAPIHandler cria o handler principal da API.
func NewAPIHandler(
	health *HealthHandler,
	leads *service.LeadService,
	promotion *service.PromotionService,
	projects *service.ProjectService,
	tasks *service.TaskService,
	finances *service.FinanceService,
	certificates *service.CertificateService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:       health,
		leads:        leads,
		promotion:    promotion,
		projects:     projects,
		tasks:        tasks,
		finances:     finances,
		certificates: certificates,
		logger:       logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (delegado ao HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (delegado ao HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — métricas Prometheus (delegado ao HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Funções auxiliares ---

// writeJSON grava a resposta JSON com o status indicado.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extrai o parâmetro de rota {name} como int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	return strconv.ParseInt(raw, 10, 64)
}

// queryInt lê um parâmetro inteiro da query string. Ausente ou inválido
// devolve o padrão.
func queryInt(r *http.Request, name string, defaultVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return n
}

// writeServiceError traduz os erros sentinela da camada de serviço nas
// respostas HTTP padronizadas.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		apierrors.InvalidState(w, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		apierrors.RateLimited(w, "Limite de submissões atingido. Tente novamente em 1 hora.")
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, err.Error())
	case errors.Is(err, service.ErrStore):
		h.logger.Error("Falha na camada de persistência", slog.String("error", err.Error()))
		apierrors.StoreError(w, "Falha interna de armazenamento")
	default:
		h.logger.Error("Erro não mapeado", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Erro interno")
	}
}
