package repository

import (
	"context"

	"github.com/movalle/proyectra/internal/domain/entity"
)

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context) ([]entity.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]entity.Task, error)
	CountByProject(ctx context.Context, projectID int64) (int64, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id int64) error
}
