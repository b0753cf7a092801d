package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// TaskRepository — interface CRUD da tabela tasks.
type TaskRepository interface {
	// Create insere uma nova tarefa.
	Create(ctx context.Context, task *model.Task) error
	// GetByID devolve uma tarefa pelo id.
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	// ListByProject devolve as tarefas do projeto,
	// ordenadas por created_at DESC com desempate por id DESC.
	ListByProject(ctx context.Context, projectID int64) ([]*model.Task, error)
	// UpdateStatus atualiza apenas a raia da tarefa.
	UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error
	// Update persiste título, prioridade e prazo.
	Update(ctx context.Context, task *model.Task) error
	// Delete remove a tarefa.
	Delete(ctx context.Context, id int64) error
}

// taskRepo — implementação de TaskRepository.
type taskRepo struct {
	db DBTX
}

// NewTaskRepository cria o repositório de tarefas.
func NewTaskRepository(db DBTX) TaskRepository {
	return &taskRepo{db: db}
}

// taskColumns — colunas lidas em todas as consultas de tarefa.
const taskColumns = `id, project_id, title, status, priority, due_date, created_at, updated_at`

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (project_id, title, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		task.ProjectID, task.Title, task.Status, task.Priority, task.DueDate,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: projeto inexistente", ErrNotFound)
		}
		return fmt.Errorf("erro ao criar tarefa: %w", err)
	}
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)

	task := &model.Task{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Status, &task.Priority,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tarefa: %w", err)
	}
	return task, nil
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID int64) ([]*model.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC`, taskColumns)

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tarefas: %w", err)
	}
	defer rows.Close()

	var result []*model.Task
	for rows.Next() {
		task := &model.Task{}
		if err := rows.Scan(
			&task.ID, &task.ProjectID, &task.Title, &task.Status, &task.Priority,
			&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler tarefa: %w", err)
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func (r *taskRepo) UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da tarefa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, priority = $3, due_date = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		task.ID, task.Title, task.Priority, task.DueDate,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("erro ao atualizar tarefa: %w", err)
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir tarefa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
