package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// FinanceRepository — interface CRUD da tabela finances.
type FinanceRepository interface {
	// Create insere um novo lançamento.
	Create(ctx context.Context, entry *model.FinanceEntry) error
	// GetByID devolve um lançamento pelo id.
	GetByID(ctx context.Context, id int64) (*model.FinanceEntry, error)
	// List devolve lançamentos, opcionalmente filtrados por projeto e natureza.
	List(ctx context.Context, projectID *int64, kind *model.FinanceKind, limit, offset int) ([]*model.FinanceEntry, error)
	// Summarize devolve os totais de receitas e despesas,
	// opcionalmente filtrados por projeto.
	Summarize(ctx context.Context, projectID *int64) (*model.FinanceSummary, error)
	// Delete remove o lançamento.
	Delete(ctx context.Context, id int64) error
}

// financeRepo — implementação de FinanceRepository.
type financeRepo struct {
	db DBTX
}

// NewFinanceRepository cria o repositório de lançamentos financeiros.
func NewFinanceRepository(db DBTX) FinanceRepository {
	return &financeRepo{db: db}
}

func (r *financeRepo) Create(ctx context.Context, entry *model.FinanceEntry) error {
	query := `
		INSERT INTO finances (kind, description, amount, occurred_on, project_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		entry.Kind, entry.Description, entry.Amount, entry.OccurredOn, entry.ProjectID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: projeto inexistente", ErrNotFound)
		}
		return fmt.Errorf("erro ao criar lançamento: %w", err)
	}
	return nil
}

func (r *financeRepo) GetByID(ctx context.Context, id int64) (*model.FinanceEntry, error) {
	query := `
		SELECT id, kind, description, amount, occurred_on, project_id, created_at
		FROM finances
		WHERE id = $1`

	entry := &model.FinanceEntry{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.Kind, &entry.Description, &entry.Amount,
		&entry.OccurredOn, &entry.ProjectID, &entry.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}
	return entry, nil
}

func (r *financeRepo) List(ctx context.Context, projectID *int64, kind *model.FinanceKind, limit, offset int) ([]*model.FinanceEntry, error) {
	var conditions []string
	var args []any
	argNum := 1

	if projectID != nil {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", argNum))
		args = append(args, *projectID)
		argNum++
	}
	if kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argNum))
		args = append(args, *kind)
		argNum++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, kind, description, amount, occurred_on, project_id, created_at
		FROM finances
		%s
		ORDER BY occurred_on DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lançamentos: %w", err)
	}
	defer rows.Close()

	var result []*model.FinanceEntry
	for rows.Next() {
		entry := &model.FinanceEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.Kind, &entry.Description, &entry.Amount,
			&entry.OccurredOn, &entry.ProjectID, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler lançamento: %w", err)
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *financeRepo) Summarize(ctx context.Context, projectID *int64) (*model.FinanceSummary, error) {
	where := ""
	var args []any
	if projectID != nil {
		where = "WHERE project_id = $1"
		args = append(args, *projectID)
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM finances
		%s`, where)

	summary := &model.FinanceSummary{}
	err := r.db.QueryRow(ctx, query, args...).Scan(&summary.Income, &summary.Expense)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar lançamentos: %w", err)
	}
	summary.Net = summary.Income - summary.Expense
	return summary, nil
}

func (r *financeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM finances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir lançamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
