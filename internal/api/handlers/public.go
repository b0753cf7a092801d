// public.go — endpoint público de submissão de leads do formulário de contato.
// Único endpoint sem autenticação: saneamento e limite de frequência são a
// linha de defesa. A resposta não expõe dados internos do lead.
package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/service"
)

// publicLeadRequest — corpo da submissão do formulário público.
type publicLeadRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Company     *string `json:"company,omitempty"`
	Message     *string `json:"message,omitempty"`
	ProjectType *string `json:"project_type,omitempty"`
}

// publicLeadResponse — resposta da submissão pública.
type publicLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PublicCreateLead — POST /api/v1/public/leads.
// 200 em sucesso; 400 em entrada inválida; 429 quando o IP excede o limite.
func (h *APIHandler) PublicCreateLead(w http.ResponseWriter, r *http.Request) {
	var req publicLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	input := service.LeadInput{
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Message:     req.Message,
		ProjectType: req.ProjectType,
		IPAddress:   clientIP(r),
	}

	if _, err := h.leads.Create(r.Context(), input); err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, publicLeadResponse{
		Success: true,
		Message: "Mensagem recebida. Entraremos em contato em breve!",
	})
}

// clientIP extrai o endereço de origem da requisição.
// Ordem: X-Forwarded-For (primeiro endereço), X-Real-IP, RemoteAddr.
// Falha na captura nunca bloqueia a submissão: devolve "unknown".
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}
