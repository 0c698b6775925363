package service

import (
	"context"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/importer"
	"github.com/alexanderramin/trestle/internal/report"
	"github.com/alexanderramin/trestle/internal/scheduler"
	"github.com/alexanderramin/trestle/internal/wbs"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type WbsService interface {
	Create(ctx context.Context, w *domain.WbsItem) error
	GetByID(ctx context.Context, id string) (*domain.WbsItem, error)
	GetByCode(ctx context.Context, projectID, code string) (*domain.WbsItem, error)
	// List returns the project's items ordered by WBS code.
	List(ctx context.Context, projectID string) ([]domain.WbsItem, error)
	// Tree returns the project's hierarchy with every level ordered by code.
	Tree(ctx context.Context, projectID string) ([]*wbs.Node, error)
	Update(ctx context.Context, w *domain.WbsItem) error
	Delete(ctx context.Context, id string) error
}

type DependencyService interface {
	Add(ctx context.Context, d *domain.Dependency) error
	Remove(ctx context.Context, predecessorID, successorID string) error
	List(ctx context.Context, projectID string) ([]domain.Dependency, error)
	// Check reports whether Add would accept the edge without writing it.
	Check(ctx context.Context, predecessorID, successorID string) error
}

// PropagateOptions controls a schedule propagation run.
type PropagateOptions struct {
	// UntilStable repeats propagation until no item moves.
	UntilStable bool
	// MaxPasses bounds UntilStable runs; zero means one more than the item count.
	MaxPasses int
	// DryRun computes the changes without persisting them.
	DryRun bool
}

// PropagateResult describes what a propagation run moved.
type PropagateResult struct {
	Changes []wbs.Change
	Passes  int
}

type ScheduleService interface {
	Propagate(ctx context.Context, projectID string, opts PropagateOptions) (*PropagateResult, error)
	// NetworkOrder returns the project's item IDs in dependency order.
	NetworkOrder(ctx context.Context, projectID string) ([]string, error)
	Risk(ctx context.Context, projectID string, asOf time.Time) (*scheduler.RiskResult, error)
}

type CostService interface {
	Report(ctx context.Context, projectID string, asOf time.Time) (*report.CostReport, error)
	ExportXLSX(ctx context.Context, projectID string, asOf time.Time, path string) (*report.CostReport, error)
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project         *domain.Project
	ItemCount       int
	DependencyCount int
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
