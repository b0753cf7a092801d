// fakes_test.go — implementações em memória dos repositórios para os
// testes unitários da camada de serviço.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
)

// fakeLeadRepo — repositório de leads em memória.
type fakeLeadRepo struct {
	leads  map[int64]*model.Lead
	nextID int64
	// failOn — nome do método que deve falhar (simula indisponibilidade)
	failOn string
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[int64]*model.Lead), nextID: 1}
}

var errFakeStore = errors.New("banco indisponível")

func (r *fakeLeadRepo) Create(_ context.Context, lead *model.Lead) error {
	if r.failOn == "Create" {
		return errFakeStore
	}
	lead.ID = r.nextID
	r.nextID++
	lead.CreatedAt = time.Now().UTC()
	lead.UpdatedAt = lead.CreatedAt
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByID(_ context.Context, id int64) (*model.Lead, error) {
	if r.failOn == "GetByID" {
		return nil, errFakeStore
	}
	lead, ok := r.leads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *lead
	return &cp, nil
}

func (r *fakeLeadRepo) List(_ context.Context, filter model.LeadFilter) ([]*model.Lead, error) {
	var result []*model.Lead
	for _, lead := range r.leads {
		if filter.Status != nil && lead.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(lead.Name), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *lead
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *fakeLeadRepo) Count(_ context.Context, filter model.LeadFilter) (int, error) {
	leads, _ := r.List(context.Background(), filter)
	return len(leads), nil
}

func (r *fakeLeadRepo) UpdateStatus(_ context.Context, id int64, status model.LeadStatus) error {
	if r.failOn == "UpdateStatus" {
		return errFakeStore
	}
	lead, ok := r.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	lead.Status = status
	lead.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeLeadRepo) Update(_ context.Context, lead *model.Lead) error {
	if _, ok := r.leads[lead.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.leads, id)
	return nil
}

// fakeProjectRepo — repositório de projetos em memória.
type fakeProjectRepo struct {
	projects map[int64]*model.Project
	nextID   int64
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int64]*model.Project), nextID: 1}
}

func (r *fakeProjectRepo) Create(_ context.Context, p *model.Project) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.projects[id]
	return ok, nil
}

func (r *fakeProjectRepo) List(_ context.Context, status *model.ProjectStatus, public *bool, limit, offset int) ([]*model.Project, error) {
	var result []*model.Project
	for _, p := range r.projects {
		if status != nil && p.Status != *status {
			continue
		}
		if public != nil && p.IsPublic != *public {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *fakeProjectRepo) Count(_ context.Context, status *model.ProjectStatus, public *bool) (int, error) {
	projects, _ := r.List(context.Background(), status, public, 0, 0)
	return len(projects), nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *model.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

// fakeTaskRepo — repositório de tarefas em memória.
type fakeTaskRepo struct {
	tasks   map[int64]*model.Task
	nextID  int64
	updates int // escritas de status efetuadas
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*model.Task), nextID: 1}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	task.ID = r.nextID
	r.nextID++
	task.CreatedAt = time.Now().UTC().Add(time.Duration(task.ID) * time.Millisecond)
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*model.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTaskRepo) ListByProject(_ context.Context, projectID int64) ([]*model.Task, error) {
	var result []*model.Task
	for _, task := range r.tasks {
		if task.ProjectID != projectID {
			continue
		}
		cp := *task
		result = append(result, &cp)
	}
	// Mesma ordem do SQL: created_at DESC com desempate por id DESC.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id int64, status model.TaskStatus) error {
	task, ok := r.tasks[id]
	if !ok {
		return repository.ErrNotFound
	}
	task.Status = status
	r.updates++
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// fakeLimiter — limitador determinístico para testes.
type fakeLimiter struct {
	allow bool
	err   error
	calls []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.calls = append(l.calls, key)
	return l.allow, l.err
}
