package application

import (
	"context"

	"github.com/movalle/proyectra/internal/domain/apperr"
	"github.com/movalle/proyectra/internal/domain/entity"
)

// In-memory repository fakes backed by maps. They mimic the postgres
// implementations' contract: lookup misses return apperr.ErrNotFound
// and slices come back as copies.

type memUserRepo struct {
	nextID int64
	users  map[int64]entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memProjectRepo struct {
	nextID   int64
	projects map[int64]entity.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[int64]entity.Project{}}
}

func (r *memProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.nextID++
	p.ID = r.nextID
	r.projects[p.ID] = *p
	return nil
}

func (r *memProjectRepo) GetByID(_ context.Context, id int64) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *memProjectRepo) List(_ context.Context) ([]entity.Project, error) {
	out := make([]entity.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProjectRepo) ListByOwner(_ context.Context, username string) ([]entity.Project, error) {
	out := []entity.Project{}
	for _, p := range r.projects {
		if p.OwnerUsername == username {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) CountByOwner(_ context.Context, username string) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if p.OwnerUsername == username {
			n++
		}
	}
	return n, nil
}

func (r *memProjectRepo) Update(_ context.Context, p *entity.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.projects[p.ID] = *p
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

type memTaskRepo struct {
	nextID int64
	tasks  map[int64]entity.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[int64]entity.Task{}}
}

func (r *memTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.nextID++
	t.ID = r.nextID
	r.tasks[t.ID] = *t
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (r *memTaskRepo) List(_ context.Context) ([]entity.Task, error) {
	out := make([]entity.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (r *memTaskRepo) ListByProject(_ context.Context, projectID int64) ([]entity.Task, error) {
	out := []entity.Task{}
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) CountByProject(_ context.Context, projectID int64) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (r *memTaskRepo) Update(_ context.Context, t *entity.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.tasks[t.ID] = *t
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
