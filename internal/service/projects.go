// projects.go — serviço de projetos do estúdio.
// Criação direta pelo admin ou a partir do rascunho produzido pela promoção.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
)

const maxProjectTitleLen = 200

// ProjectService — serviço de projetos.
type ProjectService struct {
	repo   repository.ProjectRepository
	logger *slog.Logger
}

// NewProjectService cria o serviço de projetos.
func NewProjectService(repo repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		logger: logger.With(slog.String("component", "project_service")),
	}
}

// validateProject valida os invariantes de um projeto antes de persistir.
func validateProject(p *model.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return fmt.Errorf("%w: title é obrigatório", ErrValidation)
	}
	if utf8.RuneCountInString(p.Title) > maxProjectTitleLen {
		return fmt.Errorf("%w: title excede %d caracteres", ErrValidation, maxProjectTitleLen)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: status %q desconhecido", ErrValidation, p.Status)
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("%w: progress deve estar entre 0 e 100", ErrValidation)
	}
	if p.Budget != nil && *p.Budget < 0 {
		return fmt.Errorf("%w: budget não pode ser negativo", ErrValidation)
	}
	return nil
}

// Create persiste um novo projeto. Status vazio assume planning.
// É por aqui que o admin conclui a segunda fase da promoção, enviando o
// rascunho revisado (com source_lead_id preenchido).
func (s *ProjectService) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	if p.Status == "" {
		p.Status = model.ProjectStatusPlanning
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("%w: %s", ErrConflict, err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: lead de origem inexistente", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Projeto criado",
		slog.Int64("project_id", p.ID),
		slog.String("title", p.Title),
	)
	return p, nil
}

// Get devolve um projeto pelo id.
func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: projeto %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return p, nil
}

// List devolve projetos com filtros opcionais e o total.
func (s *ProjectService) List(ctx context.Context, status *model.ProjectStatus, public *bool, limit, offset int) ([]*model.Project, int, error) {
	if status != nil && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: status %q desconhecido", ErrValidation, *status)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	projects, err := s.repo.List(ctx, status, public, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	total, err := s.repo.Count(ctx, status, public)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return projects, total, nil
}

// Update persiste os campos mutáveis do projeto.
func (s *ProjectService) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: projeto %d", ErrNotFound, p.ID)
		case errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("%w: %s", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Projeto atualizado", slog.Int64("project_id", p.ID))
	return p, nil
}

// Delete exclui o projeto. As tarefas associadas caem em cascata no banco.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: projeto %d", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Projeto excluído", slog.Int64("project_id", id))
	return nil
}
