package model

import "time"

// TaskStatus — raia do quadro de tarefas.
// Cadeia totalmente ordenada com exatamente três variantes:
// todo → in_progress → done.
type TaskStatus string

const (
	// TaskStatusTodo — a fazer.
	TaskStatusTodo TaskStatus = "todo"
	// TaskStatusInProgress — em andamento.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusDone — concluída.
	TaskStatusDone TaskStatus = "done"
)

// Valid informa se o valor pertence às três raias enumeradas.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Next devolve a raia seguinte na ordem fixa.
// Em done o avanço é saturado: devolve done.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusTodo:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusDone
	default:
		return TaskStatusDone
	}
}

// Prev devolve a raia anterior na ordem fixa.
// Em todo o recuo é saturado: devolve todo.
func (s TaskStatus) Prev() TaskStatus {
	switch s {
	case TaskStatusDone:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusTodo
	default:
		return TaskStatusTodo
	}
}

// MoveDirection — direção de movimento de uma tarefa no quadro.
type MoveDirection string

const (
	// MoveForward — uma raia à frente.
	MoveForward MoveDirection = "forward"
	// MoveBackward — uma raia atrás.
	MoveBackward MoveDirection = "backward"
)

// Valid informa se a direção é uma das duas permitidas.
func (d MoveDirection) Valid() bool {
	return d == MoveForward || d == MoveBackward
}

// TaskPriority — prioridade de uma tarefa.
type TaskPriority string

const (
	// TaskPriorityLow — baixa.
	TaskPriorityLow TaskPriority = "low"
	// TaskPriorityMedium — média (padrão).
	TaskPriorityMedium TaskPriority = "medium"
	// TaskPriorityHigh — alta.
	TaskPriorityHigh TaskPriority = "high"
	// TaskPriorityCritical — crítica.
	TaskPriorityCritical TaskPriority = "critical"
)

// Valid informa se o valor pertence ao conjunto enumerado.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task — tarefa de um projeto no quadro de três raias.
// Armazenada na tabela tasks.
type Task struct {
	// ID — identificador numérico
	ID int64
	// ProjectID — projeto dono da tarefa (obrigatório)
	ProjectID int64
	// Title — título da tarefa
	Title string
	// Status — raia atual
	Status TaskStatus
	// Priority — prioridade
	Priority TaskPriority
	// DueDate — prazo (opcional)
	DueDate *time.Time
	// CreatedAt — momento da criação
	CreatedAt time.Time
	// UpdatedAt — momento da última atualização
	UpdatedAt time.Time
}

// TaskBoard — tarefas de um projeto agrupadas pelas três raias.
// Dentro de cada raia a ordem é created_at decrescente (desempate por id).
type TaskBoard struct {
	// Todo — raia "a fazer"
	Todo []*Task
	// InProgress — raia "em andamento"
	InProgress []*Task
	// Done — raia "concluída"
	Done []*Task
}
