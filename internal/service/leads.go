// leads.go — serviço do ciclo de vida de leads.
// Valida toda mutação antes de persistir; sem retries — no máximo uma
// tentativa por chamada.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/ratelimit"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
	"github.com/ferreiradev/studio-backoffice/internal/sanitize"
)

// Limites de tamanho dos campos de lead.
const (
	maxLeadNameLen    = 100
	maxLeadCompanyLen = 150
	maxLeadMessageLen = 2000
	maxLeadEmailLen   = 254
)

// LeadInput — dados da submissão pública (pós-decodificação, pré-saneamento).
type LeadInput struct {
	// Name — nome do contato (obrigatório)
	Name string
	// Email — e-mail do contato (obrigatório)
	Email string
	// Company — empresa (opcional)
	Company *string
	// Message — mensagem livre (opcional)
	Message *string
	// ProjectType — tipo de projeto desejado (opcional)
	ProjectType *string
	// IPAddress — endereço de origem ("unknown" quando indeterminável)
	IPAddress string
}

// LeadService — serviço do ciclo de vida de leads.
type LeadService struct {
	repo      repository.LeadRepository
	sanitizer *sanitize.Sanitizer
	limiter   ratelimit.Limiter
	logger    *slog.Logger
}

// NewLeadService cria o serviço de leads.
func NewLeadService(
	repo repository.LeadRepository,
	sanitizer *sanitize.Sanitizer,
	limiter ratelimit.Limiter,
	logger *slog.Logger,
) *LeadService {
	return &LeadService{
		repo:      repo,
		sanitizer: sanitizer,
		limiter:   limiter,
		logger:    logger.With(slog.String("component", "lead_service")),
	}
}

// Create sanea, valida e persiste um lead vindo da submissão pública
// (ou de cadastro manual do admin). O lead nasce sempre com status new,
// sem anotações e sem link de proposta.
//
// O limitador de frequência falha aberto: erro de infraestrutura do
// limitador nunca bloqueia a submissão. A captura de IP também nunca
// bloqueia — "unknown" é contabilizado como chave própria.
func (s *LeadService) Create(ctx context.Context, input LeadInput) (*model.Lead, error) {
	// Saneamento antes da validação: os limites valem para o texto limpo.
	name := s.sanitizer.Text(input.Name)
	email := sanitize.Email(input.Email)
	company := s.sanitizer.OptionalText(input.Company)
	message := s.sanitizer.OptionalText(input.Message)
	projectType := s.sanitizer.OptionalText(input.ProjectType)

	if err := validateLeadFields(name, email, company, message); err != nil {
		return nil, err
	}

	// Limite de frequência por endereço de origem.
	ip := input.IPAddress
	if ip == "" {
		ip = "unknown"
	}
	allowed, err := s.limiter.Allow(ctx, ip)
	if err != nil {
		// Fail open: o limitador indisponível não pode derrubar submissões.
		s.logger.Warn("Limitador de frequência indisponível, submissão permitida",
			slog.String("ip", ip),
			slog.String("error", err.Error()),
		)
		allowed = true
	}
	if !allowed {
		return nil, fmt.Errorf("%w: endereço %s", ErrRateLimited, ip)
	}

	lead := &model.Lead{
		Name:        name,
		Email:       email,
		Company:     company,
		Message:     message,
		Status:      model.LeadStatusNew,
		ProjectType: projectType,
		IPAddress:   &ip,
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Lead criado",
		slog.Int64("lead_id", lead.ID),
		slog.String("email", lead.Email),
	)

	return lead, nil
}

// validateLeadFields valida os campos saneados de um lead.
// Acumula todos os campos inválidos em uma única mensagem.
func validateLeadFields(name, email string, company, message *string) error {
	var invalid []string

	if name == "" {
		invalid = append(invalid, "name é obrigatório")
	} else if utf8.RuneCountInString(name) > maxLeadNameLen {
		invalid = append(invalid, fmt.Sprintf("name excede %d caracteres", maxLeadNameLen))
	}

	if email == "" {
		invalid = append(invalid, "email é obrigatório")
	} else if len(email) > maxLeadEmailLen || !validEmail(email) {
		invalid = append(invalid, "email em formato inválido")
	}

	if company != nil && utf8.RuneCountInString(*company) > maxLeadCompanyLen {
		invalid = append(invalid, fmt.Sprintf("company excede %d caracteres", maxLeadCompanyLen))
	}
	if message != nil && utf8.RuneCountInString(*message) > maxLeadMessageLen {
		invalid = append(invalid, fmt.Sprintf("message excede %d caracteres", maxLeadMessageLen))
	}

	if len(invalid) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(invalid, "; "))
	}
	return nil
}

// validEmail verifica se o e-mail tem formato RFC (endereço puro, sem nome).
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Get devolve um lead pelo id.
func (s *LeadService) Get(ctx context.Context, id int64) (*model.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: lead %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return lead, nil
}

// List devolve leads conforme o filtro explícito, junto com o total.
func (s *LeadService) List(ctx context.Context, filter model.LeadFilter) ([]*model.Lead, int, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	leads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return leads, total, nil
}

// UpdateStatus transiciona o lead para qualquer um dos cinco status
// enumerados. Nenhuma transição é proibida nesta camada — o admin é
// confiável; converted deveria, na prática, vir apenas da promoção.
func (s *LeadService) UpdateStatus(ctx context.Context, id int64, status model.LeadStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q desconhecido", ErrValidation, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: lead %d", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Status do lead atualizado",
		slog.Int64("lead_id", id),
		slog.String("status", string(status)),
	)
	return nil
}

// Archive arquiva o lead. Equivale a UpdateStatus(id, archived).
func (s *LeadService) Archive(ctx context.Context, id int64) error {
	return s.UpdateStatus(ctx, id, model.LeadStatusArchived)
}

// ApplyPatch aplica uma operação tipada de atualização parcial.
// O switch é exaustivo sobre o conjunto fechado de variantes.
func (s *LeadService) ApplyPatch(ctx context.Context, id int64, patch model.LeadPatch) (*model.Lead, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch p := patch.(type) {
	case model.SetPhone:
		lead.Phone = s.sanitizer.OptionalText(p.Value)
	case model.SetProjectType:
		lead.ProjectType = s.sanitizer.OptionalText(p.Value)
	case model.SetBudgetEstimate:
		lead.EstimatedBudget = s.sanitizer.OptionalText(p.Value)
	case model.SetNotes:
		lead.AdminNotes = p.Value
	case model.SetProposalLink:
		lead.ProposalLink = p.Value
	default:
		return nil, fmt.Errorf("%w: operação de atualização desconhecida", ErrValidation)
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: lead %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return lead, nil
}

// Delete exclui o lead definitivamente.
// A confirmação prévia é responsabilidade da camada chamadora.
func (s *LeadService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: lead %d", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Lead excluído", slog.Int64("lead_id", id))
	return nil
}
