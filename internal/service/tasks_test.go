// tasks_test.go — testes do quadro de tarefas de três raias.
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

func newTaskServiceForTest(t *testing.T) (*TaskService, *fakeTaskRepo, int64) {
	t.Helper()
	taskRepo := newFakeTaskRepo()
	projectRepo := newFakeProjectRepo()

	project := &model.Project{Title: "Site institucional", Status: model.ProjectStatusDevelopment}
	if err := projectRepo.Create(context.Background(), project); err != nil {
		t.Fatalf("seed do projeto: %v", err)
	}
	return NewTaskService(taskRepo, projectRepo, testLogger()), taskRepo, project.ID
}

// TestTaskCreateDefaults verifica raia e prioridade padrão.
func TestTaskCreateDefaults(t *testing.T) {
	svc, _, projectID := newTaskServiceForTest(t)

	task, err := svc.Create(context.Background(), projectID, "  Fix bug  ", "", "", nil)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if task.Title != "Fix bug" {
		t.Errorf("title = %q, esperado aparado", task.Title)
	}
	if task.Status != model.TaskStatusTodo {
		t.Errorf("status = %q, esperado todo", task.Status)
	}
	if task.Priority != model.TaskPriorityMedium {
		t.Errorf("priority = %q, esperado medium", task.Priority)
	}
}

// TestTaskCreateValidation verifica entradas inválidas na criação.
func TestTaskCreateValidation(t *testing.T) {
	svc, _, projectID := newTaskServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, projectID, "   ", "", "", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("título vazio: err = %v, esperado ErrValidation", err)
	}
	if _, err := svc.Create(ctx, projectID, "Fix bug", "doing", "", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("status desconhecido: err = %v, esperado ErrValidation", err)
	}
	if _, err := svc.Create(ctx, projectID, "Fix bug", "", "urgentíssima", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("prioridade desconhecida: err = %v, esperado ErrValidation", err)
	}
	if _, err := svc.Create(ctx, 9999, "Fix bug", "", "", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("projeto inexistente: err = %v, esperado ErrNotFound", err)
	}
}

// TestTaskBoard verifica o agrupamento pelas três raias.
func TestTaskBoard(t *testing.T) {
	svc, _, projectID := newTaskServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, projectID, "Fix bug", "", "", nil); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if _, err := svc.Create(ctx, projectID, "Escrever docs", model.TaskStatusInProgress, "", nil); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if _, err := svc.Create(ctx, projectID, "Deploy", model.TaskStatusDone, model.TaskPriorityHigh, nil); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	board, err := svc.Board(ctx, projectID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(board.Todo) != 1 || board.Todo[0].Title != "Fix bug" {
		t.Errorf("raia todo = %+v, esperado apenas Fix bug", board.Todo)
	}
	if len(board.InProgress) != 1 || board.InProgress[0].Title != "Escrever docs" {
		t.Errorf("raia in_progress = %+v", board.InProgress)
	}
	if len(board.Done) != 1 || board.Done[0].Title != "Deploy" {
		t.Errorf("raia done = %+v", board.Done)
	}

	if _, err := svc.Board(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("projeto inexistente: err = %v, esperado ErrNotFound", err)
	}
}

// TestTaskBoardOrdering verifica a ordem determinística dentro da raia.
func TestTaskBoardOrdering(t *testing.T) {
	svc, _, projectID := newTaskServiceForTest(t)
	ctx := context.Background()

	for _, title := range []string{"primeira", "segunda", "terceira"} {
		if _, err := svc.Create(ctx, projectID, title, "", "", nil); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	board, err := svc.Board(ctx, projectID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	want := []string{"terceira", "segunda", "primeira"}
	if len(board.Todo) != len(want) {
		t.Fatalf("raia todo com %d tarefas, esperado %d", len(board.Todo), len(want))
	}
	for i, title := range want {
		if board.Todo[i].Title != title {
			t.Errorf("posição %d = %q, esperado %q (mais recente primeiro)", i, board.Todo[i].Title, title)
		}
	}
}

// TestTaskMoveForwardChain verifica o avanço todo → in_progress → done.
func TestTaskMoveForwardChain(t *testing.T) {
	svc, repo, projectID := newTaskServiceForTest(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, projectID, "Fix bug", "", "", nil)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	for _, want := range []model.TaskStatus{model.TaskStatusInProgress, model.TaskStatusDone} {
		moved, err := svc.Move(ctx, task.ID, model.MoveForward)
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if moved.Status != want {
			t.Errorf("status = %q, esperado %q", moved.Status, want)
		}
	}
	if repo.updates != 2 {
		t.Errorf("escritas de status = %d, esperado 2", repo.updates)
	}
}

// TestTaskMoveSaturation verifica a saturação nas bordas sem escrita.
func TestTaskMoveSaturation(t *testing.T) {
	tests := []struct {
		name      string
		start     model.TaskStatus
		direction model.MoveDirection
	}{
		{"recuar de todo", model.TaskStatusTodo, model.MoveBackward},
		{"avançar de done", model.TaskStatusDone, model.MoveForward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, projectID := newTaskServiceForTest(t)
			ctx := context.Background()

			task, err := svc.Create(ctx, projectID, "Fix bug", tt.start, "", nil)
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			writesBefore := repo.updates

			moved, err := svc.Move(ctx, task.ID, tt.direction)
			if err != nil {
				t.Fatalf("borda deve ser no-op, não erro: %v", err)
			}
			if moved.Status != tt.start {
				t.Errorf("status = %q, esperado %q intacto", moved.Status, tt.start)
			}
			if repo.updates != writesBefore {
				t.Error("no-op de borda não pode gravar no banco")
			}
		})
	}
}

// TestTaskMoveValidation verifica direção e tarefa inválidas.
func TestTaskMoveValidation(t *testing.T) {
	svc, _, _ := newTaskServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Move(ctx, 1, "sideways"); !errors.Is(err, ErrValidation) {
		t.Errorf("direção desconhecida: err = %v, esperado ErrValidation", err)
	}
	if _, err := svc.Move(ctx, 9999, model.MoveForward); !errors.Is(err, ErrNotFound) {
		t.Errorf("tarefa inexistente: err = %v, esperado ErrNotFound", err)
	}
}

// TestTaskSetStatus verifica a atribuição direta de raia.
func TestTaskSetStatus(t *testing.T) {
	svc, repo, projectID := newTaskServiceForTest(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, projectID, "Fix bug", "", "", nil)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	// Salto direto todo → done, sem a restrição de um passo.
	moved, err := svc.SetStatus(ctx, task.ID, model.TaskStatusDone)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if moved.Status != model.TaskStatusDone {
		t.Errorf("status = %q, esperado done", moved.Status)
	}

	// Mesmo status é no-op sem escrita.
	writesBefore := repo.updates
	if _, err := svc.SetStatus(ctx, task.ID, model.TaskStatusDone); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if repo.updates != writesBefore {
		t.Error("atribuir o mesmo status não pode gravar no banco")
	}

	if _, err := svc.SetStatus(ctx, task.ID, "doing"); !errors.Is(err, ErrValidation) {
		t.Errorf("status desconhecido: err = %v, esperado ErrValidation", err)
	}
}

// TestTaskDelete verifica a exclusão definitiva.
func TestTaskDelete(t *testing.T) {
	svc, _, projectID := newTaskServiceForTest(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, projectID, "Fix bug", "", "", nil)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if err := svc.Delete(ctx, task.ID); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if err := svc.Delete(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("segunda exclusão: err = %v, esperado ErrNotFound", err)
	}
}
