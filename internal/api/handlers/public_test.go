// public_test.go — testes do endpoint público de submissão de leads.
// Usa o serviço real de leads sobre um repositório em memória.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
	"github.com/ferreiradev/studio-backoffice/internal/sanitize"
	"github.com/ferreiradev/studio-backoffice/internal/service"
)

// memLeadRepo — repositório de leads em memória para os testes de handler.
type memLeadRepo struct {
	leads  map[int64]*model.Lead
	nextID int64
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: make(map[int64]*model.Lead), nextID: 1}
}

func (r *memLeadRepo) Create(_ context.Context, lead *model.Lead) error {
	lead.ID = r.nextID
	r.nextID++
	lead.CreatedAt = time.Now().UTC()
	lead.UpdatedAt = lead.CreatedAt
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *memLeadRepo) GetByID(_ context.Context, id int64) (*model.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *lead
	return &cp, nil
}

func (r *memLeadRepo) List(_ context.Context, _ model.LeadFilter) ([]*model.Lead, error) {
	var result []*model.Lead
	for _, lead := range r.leads {
		cp := *lead
		result = append(result, &cp)
	}
	return result, nil
}

func (r *memLeadRepo) Count(_ context.Context, _ model.LeadFilter) (int, error) {
	return len(r.leads), nil
}

func (r *memLeadRepo) UpdateStatus(_ context.Context, id int64, status model.LeadStatus) error {
	lead, ok := r.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	lead.Status = status
	return nil
}

func (r *memLeadRepo) Update(_ context.Context, lead *model.Lead) error {
	if _, ok := r.leads[lead.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *memLeadRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.leads, id)
	return nil
}

// stubLimiter — limitador determinístico para os testes de handler.
type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAPIHandler(repo *memLeadRepo, limiter *stubLimiter) *APIHandler {
	logger := discardLogger()
	leads := service.NewLeadService(repo, sanitize.New(), limiter, logger)
	return NewAPIHandler(nil, leads, nil, nil, nil, nil, nil, logger)
}

// errorResponse — envelope de erro da API para decodificação nos testes.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TestPublicCreateLead — submissão válida devolve 200 e persiste o lead.
func TestPublicCreateLead(t *testing.T) {
	repo := newMemLeadRepo()
	limiter := &stubLimiter{allow: true}
	h := newTestAPIHandler(repo, limiter)

	body := `{"name":"Maria Silva","email":"maria@example.com","company":"ACME Ltda","message":"Quero um orçamento","project_type":"site"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/leads", strings.NewReader(body))
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	h.PublicCreateLead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado 200, corpo: %s", rec.Code, rec.Body.String())
	}

	var resp publicLeadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("resposta não é JSON: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, esperado true")
	}

	if len(repo.leads) != 1 {
		t.Fatalf("leads persistidos = %d, esperado 1", len(repo.leads))
	}
	lead := repo.leads[1]
	if lead.Status != model.LeadStatusNew {
		t.Errorf("status = %q, esperado new", lead.Status)
	}
	if lead.IPAddress == nil || *lead.IPAddress != "203.0.113.7" {
		t.Errorf("ip_address = %v, esperado o primeiro do X-Forwarded-For", lead.IPAddress)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.7" {
		t.Errorf("limitador chamado com %v", limiter.keys)
	}
}

// TestPublicCreateLeadValidation — entrada inválida devolve 400.
func TestPublicCreateLeadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"JSON malformado", `{"name":`},
		{"nome vazio", `{"name":"","email":"maria@example.com"}`},
		{"email inválido", `{"name":"Maria","email":"sem-arroba"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemLeadRepo()
			h := newTestAPIHandler(repo, &stubLimiter{allow: true})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/public/leads", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.PublicCreateLead(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, esperado 400", rec.Code)
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("resposta não é JSON: %v", err)
			}
			if resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q, esperado VALIDATION_ERROR", resp.Error.Code)
			}
			if len(repo.leads) != 0 {
				t.Error("nada deve ser persistido")
			}
		})
	}
}

// TestPublicCreateLeadRateLimited — IP acima do limite devolve 429.
func TestPublicCreateLeadRateLimited(t *testing.T) {
	repo := newMemLeadRepo()
	h := newTestAPIHandler(repo, &stubLimiter{allow: false})

	body := `{"name":"Maria Silva","email":"maria@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/leads", strings.NewReader(body))
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rec := httptest.NewRecorder()

	h.PublicCreateLead(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, esperado 429, corpo: %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("resposta não é JSON: %v", err)
	}
	if resp.Error.Code != "RATE_LIMITED" {
		t.Errorf("code = %q, esperado RATE_LIMITED", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "Tente novamente em 1 hora") {
		t.Errorf("message = %q, esperado a orientação de tentar em 1 hora", resp.Error.Message)
	}
	if len(repo.leads) != 0 {
		t.Error("submissão limitada não deve ser persistida")
	}
}

// TestPublicCreateLeadLimiterDown — limitador indisponível não bloqueia (200).
func TestPublicCreateLeadLimiterDown(t *testing.T) {
	repo := newMemLeadRepo()
	h := newTestAPIHandler(repo, &stubLimiter{allow: false, err: errors.New("redis fora do ar")})

	body := `{"name":"Maria Silva","email":"maria@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/leads", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PublicCreateLead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado 200 (fail open), corpo: %s", rec.Code, rec.Body.String())
	}
	if len(repo.leads) != 1 {
		t.Errorf("leads persistidos = %d, esperado 1", len(repo.leads))
	}
}

// TestClientIP — ordem de extração do endereço de origem.
func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "X-Forwarded-For com cadeia",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			expected:   "203.0.113.7",
		},
		{
			name:       "X-Real-IP",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			expected:   "203.0.113.8",
		},
		{
			name:       "RemoteAddr",
			remoteAddr: "203.0.113.9:5678",
			expected:   "203.0.113.9",
		},
		{
			name:       "RemoteAddr sem porta",
			remoteAddr: "inválido",
			expected:   "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/public/leads", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := clientIP(req); got != tt.expected {
				t.Errorf("clientIP() = %q, esperado %q", got, tt.expected)
			}
		})
	}
}
