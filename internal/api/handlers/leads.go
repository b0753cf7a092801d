// leads.go — handlers administrativos do ciclo de vida de leads.
package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/service"
)

// createLeadRequest — corpo do cadastro manual de lead pelo admin.
type createLeadRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Company     *string `json:"company,omitempty"`
	Message     *string `json:"message,omitempty"`
	ProjectType *string `json:"project_type,omitempty"`
}

// CreateLead — POST /api/v1/leads.
// Cadastro manual: passa pelo mesmo saneamento da submissão pública,
// mas sem limite de frequência por IP de visitante.
func (h *APIHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	lead, err := h.leads.Create(r.Context(), service.LeadInput{
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Message:     req.Message,
		ProjectType: req.ProjectType,
		IPAddress:   clientIP(r),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeadResponse(lead))
}

// ListLeads — GET /api/v1/leads?status=&search=&limit=&offset=.
func (h *APIHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	filter := model.LeadFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit", 100),
		Offset: queryInt(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.LeadStatus(raw)
		if !status.Valid() {
			apierrors.ValidationError(w, "status desconhecido: "+raw)
			return
		}
		filter.Status = &status
	}

	leads, total, err := h.leads.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leadListResponse{
		Items: toLeadResponses(leads),
		Total: total,
	})
}

// GetLead — GET /api/v1/leads/{id}.
func (h *APIHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	lead, err := h.leads.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

// updateLeadStatusRequest — corpo da transição de status.
type updateLeadStatusRequest struct {
	Status string `json:"status"`
}

// UpdateLeadStatus — PUT /api/v1/leads/{id}/status.
func (h *APIHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	var req updateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	if err := h.leads.UpdateStatus(r.Context(), id, model.LeadStatus(req.Status)); err != nil {
		h.writeServiceError(w, err)
		return
	}

	lead, err := h.leads.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

// ArchiveLead — POST /api/v1/leads/{id}/archive.
func (h *APIHandler) ArchiveLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	if err := h.leads.Archive(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	lead, err := h.leads.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

// PromoteLead — POST /api/v1/leads/{id}/promote.
// Marca o lead como converted e devolve o rascunho de projeto para revisão.
// O rascunho não é persistido: a criação do projeto é uma ação separada.
func (h *APIHandler) PromoteLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	draft, err := h.promotion.Promote(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projectDraftResponse{
		Title:            draft.Title,
		ClientName:       draft.ClientName,
		ShortDescription: draft.ShortDescription,
		Budget:           draft.Budget,
		SourceLeadID:     draft.SourceLeadID,
	})
}

// patchValueRequest — corpo das atualizações parciais tipadas.
// null limpa o campo; valor presente substitui.
type patchValueRequest struct {
	Value *string `json:"value"`
}

// patchLead aplica uma operação tipada de atualização parcial.
func (h *APIHandler) patchLead(w http.ResponseWriter, r *http.Request, build func(*string) model.LeadPatch) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	var req patchValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	lead, err := h.leads.ApplyPatch(r.Context(), id, build(req.Value))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

// SetLeadPhone — PUT /api/v1/leads/{id}/phone.
func (h *APIHandler) SetLeadPhone(w http.ResponseWriter, r *http.Request) {
	h.patchLead(w, r, func(v *string) model.LeadPatch { return model.SetPhone{Value: v} })
}

// SetLeadProjectType — PUT /api/v1/leads/{id}/project-type.
func (h *APIHandler) SetLeadProjectType(w http.ResponseWriter, r *http.Request) {
	h.patchLead(w, r, func(v *string) model.LeadPatch { return model.SetProjectType{Value: v} })
}

// SetLeadBudgetEstimate — PUT /api/v1/leads/{id}/budget-estimate.
func (h *APIHandler) SetLeadBudgetEstimate(w http.ResponseWriter, r *http.Request) {
	h.patchLead(w, r, func(v *string) model.LeadPatch { return model.SetBudgetEstimate{Value: v} })
}

// SetLeadNotes — PUT /api/v1/leads/{id}/notes.
func (h *APIHandler) SetLeadNotes(w http.ResponseWriter, r *http.Request) {
	h.patchLead(w, r, func(v *string) model.LeadPatch { return model.SetNotes{Value: v} })
}

// SetLeadProposalLink — PUT /api/v1/leads/{id}/proposal-link.
func (h *APIHandler) SetLeadProposalLink(w http.ResponseWriter, r *http.Request) {
	h.patchLead(w, r, func(v *string) model.LeadPatch { return model.SetProposalLink{Value: v} })
}

// DeleteLead — DELETE /api/v1/leads/{id}.
func (h *APIHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	if err := h.leads.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
