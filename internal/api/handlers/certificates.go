// certificates.go — handlers de certificados.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// certificateRequest — corpo de criação/atualização de certificado.
type certificateRequest struct {
	Title         string  `json:"title"`
	Issuer        string  `json:"issuer"`
	CredentialURL *string `json:"credential_url,omitempty"`
	IssuedOn      *string `json:"issued_on,omitempty"`
	IsPublic      bool    `json:"is_public,omitempty"`
}

// toModel converte o corpo da requisição no modelo de domínio.
func (req *certificateRequest) toModel() (*model.Certificate, error) {
	cert := &model.Certificate{
		Title:         req.Title,
		Issuer:        req.Issuer,
		CredentialURL: req.CredentialURL,
		IsPublic:      req.IsPublic,
	}

	if req.IssuedOn != nil && *req.IssuedOn != "" {
		d, err := time.Parse("2006-01-02", *req.IssuedOn)
		if err != nil {
			return nil, err
		}
		cert.IssuedOn = &d
	}

	return cert, nil
}

// CreateCertificate — POST /api/v1/certificates.
func (h *APIHandler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var req certificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	cert, err := req.toModel()
	if err != nil {
		apierrors.ValidationError(w, "issued_on deve estar no formato YYYY-MM-DD")
		return
	}

	created, err := h.certificates.Create(r.Context(), cert)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCertificateResponse(created))
}

// ListCertificates — GET /api/v1/certificates?public=&limit=&offset=.
func (h *APIHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	onlyPublic := r.URL.Query().Get("public") == "true"
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	certs, err := h.certificates.List(r.Context(), onlyPublic, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	items := make([]certificateResponse, 0, len(certs))
	for _, cert := range certs {
		items = append(items, toCertificateResponse(cert))
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GetCertificate — GET /api/v1/certificates/{id}.
func (h *APIHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	cert, err := h.certificates.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCertificateResponse(cert))
}

// UpdateCertificate — PUT /api/v1/certificates/{id}.
func (h *APIHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	var req certificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	cert, err := req.toModel()
	if err != nil {
		apierrors.ValidationError(w, "issued_on deve estar no formato YYYY-MM-DD")
		return
	}
	cert.ID = id

	updated, err := h.certificates.Update(r.Context(), cert)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCertificateResponse(updated))
}

// DeleteCertificate — DELETE /api/v1/certificates/{id}.
func (h *APIHandler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	if err := h.certificates.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
