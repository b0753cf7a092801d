// finances.go — serviço de lançamentos financeiros (receitas e despesas).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
)

// FinanceService — serviço de lançamentos financeiros.
type FinanceService struct {
	repo   repository.FinanceRepository
	logger *slog.Logger
}

// NewFinanceService cria o serviço financeiro.
func NewFinanceService(repo repository.FinanceRepository, logger *slog.Logger) *FinanceService {
	return &FinanceService{
		repo:   repo,
		logger: logger.With(slog.String("component", "finance_service")),
	}
}

// Create persiste um novo lançamento.
func (s *FinanceService) Create(ctx context.Context, entry *model.FinanceEntry) (*model.FinanceEntry, error) {
	if !entry.Kind.Valid() {
		return nil, fmt.Errorf("%w: kind %q desconhecido", ErrValidation, entry.Kind)
	}
	entry.Description = strings.TrimSpace(entry.Description)
	if entry.Description == "" {
		return nil, fmt.Errorf("%w: description é obrigatória", ErrValidation)
	}
	if entry.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount deve ser positivo", ErrValidation)
	}
	if entry.OccurredOn.IsZero() {
		return nil, fmt.Errorf("%w: occurred_on é obrigatória", ErrValidation)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: projeto inexistente", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Lançamento criado",
		slog.Int64("finance_id", entry.ID),
		slog.String("kind", string(entry.Kind)),
		slog.Float64("amount", entry.Amount),
	)
	return entry, nil
}

// List devolve lançamentos com filtros opcionais de projeto e natureza.
func (s *FinanceService) List(ctx context.Context, projectID *int64, kind *model.FinanceKind, limit, offset int) ([]*model.FinanceEntry, error) {
	if kind != nil && !kind.Valid() {
		return nil, fmt.Errorf("%w: kind %q desconhecido", ErrValidation, *kind)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.repo.List(ctx, projectID, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return entries, nil
}

// Summary devolve os totais agregados, opcionalmente por projeto.
func (s *FinanceService) Summary(ctx context.Context, projectID *int64) (*model.FinanceSummary, error) {
	summary, err := s.repo.Summarize(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return summary, nil
}

// Delete exclui o lançamento definitivamente.
func (s *FinanceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: lançamento %d", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Lançamento excluído", slog.Int64("finance_id", id))
	return nil
}
