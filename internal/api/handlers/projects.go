// projects.go — handlers administrativos de projetos.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// projectRequest — corpo de criação/atualização de projeto.
// Na criação via promoção, o admin envia o rascunho revisado com
// source_lead_id preenchido.
type projectRequest struct {
	Title            string   `json:"title"`
	Slug             *string  `json:"slug,omitempty"`
	ClientName       *string  `json:"client_name,omitempty"`
	CoverImage       *string  `json:"cover_image,omitempty"`
	GalleryImages    []string `json:"gallery_images,omitempty"`
	TechStack        []string `json:"tech_stack,omitempty"`
	Status           string   `json:"status,omitempty"`
	Budget           *float64 `json:"budget,omitempty"`
	Deadline         *string  `json:"deadline,omitempty"`
	Progress         int      `json:"progress,omitempty"`
	IsPublic         bool     `json:"is_public,omitempty"`
	IsFeatured       bool     `json:"is_featured,omitempty"`
	ShortDescription *string  `json:"short_description,omitempty"`
	FullDescription  *string  `json:"full_description,omitempty"`
	RepoURL          *string  `json:"repo_url,omitempty"`
	LiveURL          *string  `json:"live_url,omitempty"`
	SourceLeadID     *int64   `json:"source_lead_id,omitempty"`
}

// toModel converte o corpo da requisição no modelo de domínio.
func (req *projectRequest) toModel() (*model.Project, error) {
	p := &model.Project{
		Title:            req.Title,
		Slug:             req.Slug,
		ClientName:       req.ClientName,
		CoverImage:       req.CoverImage,
		GalleryImages:    req.GalleryImages,
		TechStack:        req.TechStack,
		Status:           model.ProjectStatus(req.Status),
		Budget:           req.Budget,
		Progress:         req.Progress,
		IsPublic:         req.IsPublic,
		IsFeatured:       req.IsFeatured,
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		RepoURL:          req.RepoURL,
		LiveURL:          req.LiveURL,
		SourceLeadID:     req.SourceLeadID,
	}

	if req.Deadline != nil && *req.Deadline != "" {
		d, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			// Aceita também data pura (formulários enviam só a data)
			d, err = time.Parse("2006-01-02", *req.Deadline)
			if err != nil {
				return nil, err
			}
		}
		p.Deadline = &d
	}

	return p, nil
}

// CreateProject — POST /api/v1/projects.
func (h *APIHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	p, err := req.toModel()
	if err != nil {
		apierrors.ValidationError(w, "deadline em formato inválido")
		return
	}

	created, err := h.projects.Create(r.Context(), p)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(created))
}

// ListProjects — GET /api/v1/projects?status=&public=&limit=&offset=.
func (h *APIHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var status *model.ProjectStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := model.ProjectStatus(raw)
		if !s.Valid() {
			apierrors.ValidationError(w, "status desconhecido: "+raw)
			return
		}
		status = &s
	}

	var public *bool
	if raw := r.URL.Query().Get("public"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.ValidationError(w, "public deve ser true ou false")
			return
		}
		public = &b
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	projects, total, err := h.projects.List(r.Context(), status, public, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	items := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, projectListResponse{Items: items, Total: total})
}

// GetProject — GET /api/v1/projects/{id}.
func (h *APIHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// UpdateProject — PUT /api/v1/projects/{id}.
func (h *APIHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	p, err := req.toModel()
	if err != nil {
		apierrors.ValidationError(w, "deadline em formato inválido")
		return
	}
	p.ID = id

	updated, err := h.projects.Update(r.Context(), p)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(updated))
}

// DeleteProject — DELETE /api/v1/projects/{id}.
// As tarefas do projeto caem em cascata no banco.
func (h *APIHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
