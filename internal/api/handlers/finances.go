// finances.go — handlers de lançamentos financeiros.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// createFinanceRequest — corpo de criação de lançamento.
type createFinanceRequest struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	OccurredOn  string  `json:"occurred_on"`
	ProjectID   *int64  `json:"project_id,omitempty"`
}

// CreateFinance — POST /api/v1/finances.
func (h *APIHandler) CreateFinance(w http.ResponseWriter, r *http.Request) {
	var req createFinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	occurredOn, err := time.Parse("2006-01-02", req.OccurredOn)
	if err != nil {
		apierrors.ValidationError(w, "occurred_on deve estar no formato YYYY-MM-DD")
		return
	}

	entry := &model.FinanceEntry{
		Kind:        model.FinanceKind(req.Kind),
		Description: req.Description,
		Amount:      req.Amount,
		OccurredOn:  occurredOn,
		ProjectID:   req.ProjectID,
	}

	created, err := h.finances.Create(r.Context(), entry)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFinanceResponse(created))
}

// ListFinances — GET /api/v1/finances?project_id=&kind=&limit=&offset=.
func (h *APIHandler) ListFinances(w http.ResponseWriter, r *http.Request) {
	var projectID *int64
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apierrors.ValidationError(w, "project_id inválido")
			return
		}
		projectID = &id
	}

	var kind *model.FinanceKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k := model.FinanceKind(raw)
		kind = &k
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	entries, err := h.finances.List(r.Context(), projectID, kind, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	items := make([]financeResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toFinanceResponse(entry))
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GetFinanceSummary — GET /api/v1/finances/summary?project_id=.
func (h *APIHandler) GetFinanceSummary(w http.ResponseWriter, r *http.Request) {
	var projectID *int64
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apierrors.ValidationError(w, "project_id inválido")
			return
		}
		projectID = &id
	}

	summary, err := h.finances.Summary(r.Context(), projectID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, financeSummaryResponse{
		Income:  summary.Income,
		Expense: summary.Expense,
		Net:     summary.Net,
	})
}

// DeleteFinance — DELETE /api/v1/finances/{id}.
func (h *APIHandler) DeleteFinance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	if err := h.finances.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
