// tasks.go — handlers do quadro de tarefas.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// GetBoard — GET /api/v1/projects/{id}/board.
// Devolve as tarefas do projeto agrupadas pelas três raias.
func (h *APIHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	board, err := h.tasks.Board(r.Context(), projectID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardResponse(board))
}

// createTaskRequest — corpo de criação de tarefa.
type createTaskRequest struct {
	Title    string  `json:"title"`
	Status   string  `json:"status,omitempty"`
	Priority string  `json:"priority,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
}

// CreateTask — POST /api/v1/projects/{id}/tasks.
func (h *APIHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			d, err = time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				apierrors.ValidationError(w, "due_date em formato inválido")
				return
			}
		}
		dueDate = &d
	}

	task, err := h.tasks.Create(r.Context(), projectID, req.Title,
		model.TaskStatus(req.Status), model.TaskPriority(req.Priority), dueDate)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// moveTaskRequest — corpo da movimentação de tarefa.
type moveTaskRequest struct {
	Direction string `json:"direction"`
}

// MoveTask — POST /api/v1/tasks/{id}/move.
// Desloca uma raia na direção indicada; nas bordas é no-op silencioso.
func (h *APIHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	var req moveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	task, err := h.tasks.Move(r.Context(), id, model.MoveDirection(req.Direction))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// setTaskStatusRequest — corpo da atribuição direta de raia.
type setTaskStatusRequest struct {
	Status string `json:"status"`
}

// SetTaskStatus — PUT /api/v1/tasks/{id}/status.
// Atribuição direta de raia, sem a restrição de um passo (drag-drop).
func (h *APIHandler) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	var req setTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Corpo da requisição inválido")
		return
	}

	task, err := h.tasks.SetStatus(r.Context(), id, model.TaskStatus(req.Status))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// DeleteTask — DELETE /api/v1/tasks/{id}.
func (h *APIHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.ValidationError(w, "id inválido")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
