// tasks.go — serviço do quadro de tarefas de três raias.
// Movimentação de uma raia por vez com saturação nas bordas;
// atribuição direta de raia para correções e drag-drop.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
)

// TaskService — serviço do quadro de tarefas.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	logger      *slog.Logger
}

// NewTaskService cria o serviço do quadro de tarefas.
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		logger:      logger.With(slog.String("component", "task_service")),
	}
}

// Board devolve as tarefas do projeto agrupadas pelas três raias.
// Dentro de cada raia a ordem é created_at DESC (desempate por id DESC) —
// determinística para os mesmos dados.
func (s *TaskService) Board(ctx context.Context, projectID int64) (*model.TaskBoard, error) {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: projeto %d", ErrNotFound, projectID)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	board := &model.TaskBoard{}
	for _, task := range tasks {
		switch task.Status {
		case model.TaskStatusTodo:
			board.Todo = append(board.Todo, task)
		case model.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, task)
		case model.TaskStatusDone:
			board.Done = append(board.Done, task)
		}
	}
	return board, nil
}

// Create cria uma tarefa sob um projeto existente.
// Título obrigatório após trim; raia padrão todo; prioridade padrão medium.
func (s *TaskService) Create(ctx context.Context, projectID int64, title string, status model.TaskStatus, priority model.TaskPriority, dueDate *time.Time) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title é obrigatório", ErrValidation)
	}

	if status == "" {
		status = model.TaskStatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q desconhecido", ErrValidation, status)
	}

	if priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: priority %q desconhecida", ErrValidation, priority)
	}

	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: projeto %d", ErrNotFound, projectID)
	}

	task := &model.Task{
		ProjectID: projectID,
		Title:     title,
		Status:    status,
		Priority:  priority,
		DueDate:   dueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: projeto %d", ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Tarefa criada",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", projectID),
		slog.String("status", string(task.Status)),
	)

	return task, nil
}

// Move desloca a tarefa uma raia na direção indicada.
// Recuar de todo e avançar de done são no-ops silenciosos:
// sem erro e sem escrita no banco.
func (s *TaskService) Move(ctx context.Context, taskID int64, direction model.MoveDirection) (*model.Task, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: direção %q desconhecida", ErrValidation, direction)
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tarefa %d", ErrNotFound, taskID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	var next model.TaskStatus
	if direction == model.MoveForward {
		next = task.Status.Next()
	} else {
		next = task.Status.Prev()
	}

	// Saturação na borda: nada muda e nada é gravado.
	if next == task.Status {
		return task, nil
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tarefa %d", ErrNotFound, taskID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	task.Status = next
	s.logger.Info("Tarefa movida",
		slog.Int64("task_id", taskID),
		slog.String("status", string(next)),
	)
	return task, nil
}

// SetStatus atribui a raia diretamente, sem a restrição de um passo.
// Aceita apenas os três valores enumerados.
func (s *TaskService) SetStatus(ctx context.Context, taskID int64, status model.TaskStatus) (*model.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q desconhecido", ErrValidation, status)
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tarefa %d", ErrNotFound, taskID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	if task.Status == status {
		return task, nil
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: tarefa %d", ErrNotFound, taskID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	task.Status = status
	return task, nil
}

// Delete exclui a tarefa definitivamente.
// A confirmação prévia é responsabilidade da camada chamadora.
func (s *TaskService) Delete(ctx context.Context, taskID int64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: tarefa %d", ErrNotFound, taskID)
		}
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Tarefa excluída", slog.Int64("task_id", taskID))
	return nil
}
