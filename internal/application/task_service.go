package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/movalle/proyectra/internal/domain/apperr"
	"github.com/movalle/proyectra/internal/domain/entity"
	"github.com/movalle/proyectra/internal/domain/repository"
)

// TaskService enforces the task invariants: a title is mandatory, the
// owning project is fixed at creation, and only pending tasks may be
// deleted.
type TaskService struct {
	Tasks    repository.TaskRepository
	Projects repository.ProjectRepository
	Logger   *logrus.Logger
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Projects: projects, Logger: logger}
}

// TaskInput carries the mutable task fields from a form submission.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      entity.TaskStatus
}

func (s *TaskService) validate(in TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validation("titulo", "must not be empty")
	}
	if in.Status != "" && !in.Status.Valid() {
		return apperr.Validation("estado", "is not a valid task status")
	}
	return nil
}

func (s *TaskService) ListAll(ctx context.Context) ([]entity.Task, error) {
	return s.Tasks.List(ctx)
}

// ListByProject returns the project's tasks; an empty slice when there
// are none, never nil.
func (s *TaskService) ListByProject(ctx context.Context, projectID int64) ([]entity.Task, error) {
	tasks, err := s.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	return s.Tasks.GetByID(ctx, id)
}

// Create attaches a new task to an existing project. A missing project
// fails with ErrNotFound and nothing is persisted.
func (s *TaskService) Create(ctx context.Context, in TaskInput, projectID int64) (*entity.Task, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.TaskPending
	}

	t := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		ProjectID:   p.ID,
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": t.ID, "project_id": p.ID}).Info("task created")
	}
	return t, nil
}

// Update overwrites title, description, due date and status. The owning
// project is always the stored one; callers cannot move a task between
// projects.
func (s *TaskService) Update(ctx context.Context, id int64, in TaskInput) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = in.DueDate
	if in.Status != "" {
		t.Status = in.Status
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task only while it is still pending.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	t, err := s.Tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if t.Status == entity.TaskInProgress || t.Status == entity.TaskCompleted {
		return apperr.Conflict("cannot delete a task that is in progress or completed")
	}

	return s.Tasks.Delete(ctx, id)
}
