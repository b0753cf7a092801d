package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// ProjectRepository — interface CRUD da tabela projects.
type ProjectRepository interface {
	// Create insere um novo projeto.
	Create(ctx context.Context, p *model.Project) error
	// GetByID devolve um projeto pelo id.
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	// Exists informa se o projeto existe.
	Exists(ctx context.Context, id int64) (bool, error)
	// List devolve projetos com filtros opcionais de status e visibilidade.
	List(ctx context.Context, status *model.ProjectStatus, public *bool, limit, offset int) ([]*model.Project, error)
	// Count devolve a quantidade de projetos conforme os filtros.
	Count(ctx context.Context, status *model.ProjectStatus, public *bool) (int, error)
	// Update persiste os campos mutáveis do projeto.
	Update(ctx context.Context, p *model.Project) error
	// Delete remove o projeto (as tarefas caem em cascata no banco).
	Delete(ctx context.Context, id int64) error
}

// projectRepo — implementação de ProjectRepository.
type projectRepo struct {
	db DBTX
}

// NewProjectRepository cria o repositório de projetos.
func NewProjectRepository(db DBTX) ProjectRepository {
	return &projectRepo{db: db}
}

// projectColumns — colunas lidas em todas as consultas de projeto.
const projectColumns = `id, title, slug, client_name, cover_image,
	gallery_images, tech_stack, status, budget, deadline, progress,
	is_public, is_featured, short_description, full_description,
	repo_url, live_url, source_lead_id, created_at, updated_at`

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	query := `
		INSERT INTO projects (title, slug, client_name, cover_image,
			gallery_images, tech_stack, status, budget, deadline, progress,
			is_public, is_featured, short_description, full_description,
			repo_url, live_url, source_lead_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.Title, p.Slug, p.ClientName, p.CoverImage,
		p.GalleryImages, p.TechStack, p.Status, p.Budget, p.Deadline, p.Progress,
		p.IsPublic, p.IsFeatured, p.ShortDescription, p.FullDescription,
		p.RepoURL, p.LiveURL, p.SourceLeadID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug já em uso", ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: lead de origem inexistente", ErrNotFound)
		}
		return fmt.Errorf("erro ao criar projeto: %w", err)
	}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns)

	p := &model.Project{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Slug, &p.ClientName, &p.CoverImage,
		&p.GalleryImages, &p.TechStack, &p.Status, &p.Budget, &p.Deadline,
		&p.Progress, &p.IsPublic, &p.IsFeatured, &p.ShortDescription,
		&p.FullDescription, &p.RepoURL, &p.LiveURL, &p.SourceLeadID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar projeto: %w", err)
	}
	return p, nil
}

func (r *projectRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar projeto: %w", err)
	}
	return exists, nil
}

// buildProjectFilter monta o WHERE dos filtros de projeto.
func buildProjectFilter(status *model.ProjectStatus, public *bool) (string, []any, int) {
	var conditions []string
	var args []any
	argNum := 1

	if status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *status)
		argNum++
	}
	if public != nil {
		conditions = append(conditions, fmt.Sprintf("is_public = $%d", argNum))
		args = append(args, *public)
		argNum++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args, argNum
}

func (r *projectRepo) List(ctx context.Context, status *model.ProjectStatus, public *bool, limit, offset int) ([]*model.Project, error) {
	where, args, argNum := buildProjectFilter(status, public)

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, projectColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar projetos: %w", err)
	}
	defer rows.Close()

	var result []*model.Project
	for rows.Next() {
		p := &model.Project{}
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.ClientName, &p.CoverImage,
			&p.GalleryImages, &p.TechStack, &p.Status, &p.Budget, &p.Deadline,
			&p.Progress, &p.IsPublic, &p.IsFeatured, &p.ShortDescription,
			&p.FullDescription, &p.RepoURL, &p.LiveURL, &p.SourceLeadID,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler projeto: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *projectRepo) Count(ctx context.Context, status *model.ProjectStatus, public *bool) (int, error) {
	where, args, _ := buildProjectFilter(status, public)

	var count int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM projects %s`, where), args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar projetos: %w", err)
	}
	return count, nil
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	query := `
		UPDATE projects
		SET title = $2, slug = $3, client_name = $4, cover_image = $5,
			gallery_images = $6, tech_stack = $7, status = $8, budget = $9,
			deadline = $10, progress = $11, is_public = $12, is_featured = $13,
			short_description = $14, full_description = $15,
			repo_url = $16, live_url = $17, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Slug, p.ClientName, p.CoverImage,
		p.GalleryImages, p.TechStack, p.Status, p.Budget, p.Deadline,
		p.Progress, p.IsPublic, p.IsFeatured, p.ShortDescription,
		p.FullDescription, p.RepoURL, p.LiveURL,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug já em uso", ErrConflict)
		}
		return fmt.Errorf("erro ao atualizar projeto: %w", err)
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir projeto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
