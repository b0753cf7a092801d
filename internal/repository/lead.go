package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// LeadRepository — interface CRUD da tabela leads.
type LeadRepository interface {
	// Create insere um novo lead.
	Create(ctx context.Context, lead *model.Lead) error
	// GetByID devolve um lead pelo id.
	GetByID(ctx context.Context, id int64) (*model.Lead, error)
	// List devolve leads conforme o filtro, ordenados por created_at DESC.
	List(ctx context.Context, filter model.LeadFilter) ([]*model.Lead, error)
	// Count devolve a quantidade de leads conforme o filtro.
	Count(ctx context.Context, filter model.LeadFilter) (int, error)
	// UpdateStatus atualiza apenas o status do lead.
	UpdateStatus(ctx context.Context, id int64, status model.LeadStatus) error
	// Update persiste os campos mutáveis do lead.
	Update(ctx context.Context, lead *model.Lead) error
	// Delete remove o lead definitivamente.
	Delete(ctx context.Context, id int64) error
}

// leadRepo — implementação de LeadRepository.
type leadRepo struct {
	db DBTX
}

// NewLeadRepository cria o repositório de leads.
func NewLeadRepository(db DBTX) LeadRepository {
	return &leadRepo{db: db}
}

// leadColumns — colunas lidas em todas as consultas de lead.
const leadColumns = `id, name, email, company, phone, message, status,
	project_type, estimated_budget, admin_notes, proposal_link, ip_address,
	created_at, updated_at`

func (r *leadRepo) Create(ctx context.Context, lead *model.Lead) error {
	query := `
		INSERT INTO leads (name, email, company, phone, message, status,
			project_type, estimated_budget, admin_notes, proposal_link, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		lead.Name, lead.Email, lead.Company, lead.Phone, lead.Message,
		lead.Status, lead.ProjectType, lead.EstimatedBudget,
		lead.AdminNotes, lead.ProposalLink, lead.IPAddress,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar lead: %w", err)
	}
	return nil
}

func (r *leadRepo) GetByID(ctx context.Context, id int64) (*model.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)

	lead := &model.Lead{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Company, &lead.Phone,
		&lead.Message, &lead.Status, &lead.ProjectType, &lead.EstimatedBudget,
		&lead.AdminNotes, &lead.ProposalLink, &lead.IPAddress,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lead: %w", err)
	}
	return lead, nil
}

// buildLeadFilter monta o WHERE do filtro de leads.
// Devolve a cláusula, os argumentos e o próximo número de placeholder.
func buildLeadFilter(filter model.LeadFilter) (string, []any, int) {
	var conditions []string
	var args []any
	argNum := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *filter.Status)
		argNum++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)",
			argNum, argNum, argNum))
		args = append(args, "%"+filter.Search+"%")
		argNum++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args, argNum
}

func (r *leadRepo) List(ctx context.Context, filter model.LeadFilter) ([]*model.Lead, error) {
	where, args, argNum := buildLeadFilter(filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, leadColumns, where, argNum, argNum+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	var result []*model.Lead
	for rows.Next() {
		lead := &model.Lead{}
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Company, &lead.Phone,
			&lead.Message, &lead.Status, &lead.ProjectType, &lead.EstimatedBudget,
			&lead.AdminNotes, &lead.ProposalLink, &lead.IPAddress,
			&lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler lead: %w", err)
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}

func (r *leadRepo) Count(ctx context.Context, filter model.LeadFilter) (int, error) {
	where, args, _ := buildLeadFilter(filter)

	var count int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM leads %s`, where), args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar leads: %w", err)
	}
	return count, nil
}

func (r *leadRepo) UpdateStatus(ctx context.Context, id int64, status model.LeadStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE leads SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *leadRepo) Update(ctx context.Context, lead *model.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, email = $3, company = $4, phone = $5, message = $6,
			status = $7, project_type = $8, estimated_budget = $9,
			admin_notes = $10, proposal_link = $11, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Company, lead.Phone, lead.Message,
		lead.Status, lead.ProjectType, lead.EstimatedBudget,
		lead.AdminNotes, lead.ProposalLink,
	).Scan(&lead.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("erro ao atualizar lead: %w", err)
	}
	return nil
}

func (r *leadRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
