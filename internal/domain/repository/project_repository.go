package repository

import (
	"context"

	"github.com/movalle/proyectra/internal/domain/entity"
)

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	List(ctx context.Context) ([]entity.Project, error)
	ListByOwner(ctx context.Context, username string) ([]entity.Project, error)
	CountByOwner(ctx context.Context, username string) (int64, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id int64) error
}
