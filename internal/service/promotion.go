// promotion.go — motor de promoção: converte um lead em rascunho de projeto.
// Operação em duas fases deliberadamente não atômica: o rascunho volta ao
// chamador para revisão do admin e é persistido em ação separada
// (criação de projeto); apenas o status do lead é gravado aqui.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
)

// PromotionService — motor de promoção lead → projeto.
type PromotionService struct {
	leadRepo repository.LeadRepository
	logger   *slog.Logger
}

// NewPromotionService cria o motor de promoção.
func NewPromotionService(leadRepo repository.LeadRepository, logger *slog.Logger) *PromotionService {
	return &PromotionService{
		leadRepo: leadRepo,
		logger:   logger.With(slog.String("component", "promotion_service")),
	}
}

// Promote converte o lead em rascunho de projeto e marca o lead como
// converted. Leads em status terminal (converted, archived) não são
// promovíveis: ErrInvalidState, sem nenhuma mutação.
//
// Se a gravação do status falhar depois do rascunho montado, a operação
// inteira é reportada como falha e o rascunho é descartado — lacuna de
// consistência aceita do handoff em duas fases.
func (s *PromotionService) Promote(ctx context.Context, leadID int64) (*model.ProjectDraft, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: lead %d", ErrNotFound, leadID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	if lead.Status.Terminal() {
		return nil, fmt.Errorf("%w: lead %d está %s e não pode ser promovido",
			ErrInvalidState, leadID, lead.Status)
	}

	draft := buildDraft(lead)

	if err := s.leadRepo.UpdateStatus(ctx, leadID, model.LeadStatusConverted); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: lead %d", ErrNotFound, leadID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Lead promovido a rascunho de projeto",
		slog.Int64("lead_id", leadID),
		slog.String("title", draft.Title),
	)

	return draft, nil
}

// buildDraft deriva o rascunho de projeto a partir do lead.
func buildDraft(lead *model.Lead) *model.ProjectDraft {
	source := lead.Name
	if lead.Company != nil && *lead.Company != "" {
		source = *lead.Company
	}

	message := "No message provided"
	if lead.Message != nil && *lead.Message != "" {
		message = *lead.Message
	}

	var budgetText string
	if lead.EstimatedBudget != nil {
		budgetText = *lead.EstimatedBudget
	}

	return &model.ProjectDraft{
		Title:            "Project: " + source,
		ClientName:       lead.Name,
		ShortDescription: fmt.Sprintf("Lead #%d: %s", lead.ID, message),
		Budget:           ParseBudget(budgetText),
		SourceLeadID:     lead.ID,
	}
}
