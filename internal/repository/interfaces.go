package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type WbsItemRepo interface {
	Create(ctx context.Context, w *domain.WbsItem) error
	GetByID(ctx context.Context, id string) (*domain.WbsItem, error)
	GetByCode(ctx context.Context, projectID, code string) (*domain.WbsItem, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.WbsItem, error)
	ListChildren(ctx context.Context, parentID string) ([]domain.WbsItem, error)
	Update(ctx context.Context, w *domain.WbsItem) error
	// UpdateSchedule writes only the date fields, leaving costs untouched.
	UpdateSchedule(ctx context.Context, id string, start, end time.Time) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	Delete(ctx context.Context, predecessorID, successorID string) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
	ListPredecessors(ctx context.Context, itemID string) ([]domain.Dependency, error)
	ListSuccessors(ctx context.Context, itemID string) ([]domain.Dependency, error)
}
