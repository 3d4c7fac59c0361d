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

// ProjectService enforces the project invariants: a name and start date
// are mandatory, the owner is fixed at creation, and a project with
// tasks cannot be deleted.
type ProjectService struct {
	Projects repository.ProjectRepository
	Tasks    repository.TaskRepository
	Logger   *logrus.Logger
}

func NewProjectService(projects repository.ProjectRepository, tasks repository.TaskRepository, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Projects: projects, Tasks: tasks, Logger: logger}
}

// ProjectInput carries the mutable project fields from a form submission.
type ProjectInput struct {
	Name        string
	Description string
	StartDate   time.Time
	Status      entity.ProjectStatus
}

func (s *ProjectService) validate(in ProjectInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validation("nombre", "must not be empty")
	}
	if in.StartDate.IsZero() {
		return apperr.Validation("fecha_inicio", "is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return apperr.Validation("estado", "is not a valid project status")
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context) ([]entity.Project, error) {
	return s.Projects.List(ctx)
}

func (s *ProjectService) ListByOwner(ctx context.Context, username string) ([]entity.Project, error) {
	return s.Projects.ListByOwner(ctx, username)
}

func (s *ProjectService) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	return s.Projects.GetByID(ctx, id)
}

// Create persists a new project owned by the given principal. The owner
// comes in explicitly from the handler, never from ambient state.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput, owner entity.Principal) (*entity.Project, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.ProjectActive
	}

	p := &entity.Project{
		Name:          in.Name,
		Description:   in.Description,
		StartDate:     in.StartDate,
		Status:        status,
		OwnerUsername: owner.Username,
	}
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"project_id": p.ID, "owner": p.OwnerUsername}).Info("project created")
	}
	return p, nil
}

// Update overwrites name, description, start date and status. The owner
// is not reassignable.
func (s *ProjectService) Update(ctx context.Context, id int64, in ProjectInput) (*entity.Project, error) {
	p, err := s.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.StartDate = in.StartDate
	if in.Status != "" {
		p.Status = in.Status
	}
	if err := s.Projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project only when it owns no tasks.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Projects.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.Tasks.CountByProject(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("cannot delete a project with assigned tasks")
	}

	return s.Projects.Delete(ctx, id)
}
