package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/repository"
	"github.com/alexanderramin/trestle/internal/wbs"
)

type dependencyService struct {
	items    repository.WbsItemRepo
	deps     repository.DependencyRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewDependencyService(
	items repository.WbsItemRepo,
	deps repository.DependencyRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) DependencyService {
	return &dependencyService{
		items:    items,
		deps:     deps,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dependencyService) Add(ctx context.Context, d *domain.Dependency) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"predecessor_id": d.PredecessorID,
		"successor_id":   d.SuccessorID,
		"lag_days":       d.Lag,
	}
	defer func() { observeUseCase(ctx, s.observer, "add-dependency", startedAt, fields, err) }()

	if d.Type == "" {
		d.Type = domain.FinishToStart
	}
	if !domain.ValidDependencyTypes[string(d.Type)] {
		return fmt.Errorf("unknown dependency type %q", d.Type)
	}
	fields["type"] = string(d.Type)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		if err := checkEdge(ctx, repository.NewSQLiteWbsItemRepo(tx), txDeps, d.PredecessorID, d.SuccessorID); err != nil {
			return err
		}
		return txDeps.Create(ctx, d)
	})
}

func (s *dependencyService) Remove(ctx context.Context, predecessorID, successorID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"predecessor_id": predecessorID, "successor_id": successorID}
	defer func() { observeUseCase(ctx, s.observer, "remove-dependency", startedAt, fields, err) }()

	return s.deps.Delete(ctx, predecessorID, successorID)
}

func (s *dependencyService) List(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	return s.deps.ListByProject(ctx, projectID)
}

func (s *dependencyService) Check(ctx context.Context, predecessorID, successorID string) error {
	return checkEdge(ctx, s.items, s.deps, predecessorID, successorID)
}

// checkEdge loads both endpoints and the project's current edges, then asks
// the engine whether the candidate edge is acceptable.
func checkEdge(ctx context.Context, items repository.WbsItemRepo, deps repository.DependencyRepo, predecessorID, successorID string) error {
	if predecessorID == successorID {
		return wbs.ErrSelfDependency
	}
	pred, err := items.GetByID(ctx, predecessorID)
	if err != nil {
		return fmt.Errorf("loading predecessor: %w", err)
	}
	succ, err := items.GetByID(ctx, successorID)
	if err != nil {
		return fmt.Errorf("loading successor: %w", err)
	}
	if pred.ProjectID != succ.ProjectID {
		return ErrCrossProjectDependency
	}
	existing, err := deps.ListByProject(ctx, pred.ProjectID)
	if err != nil {
		return err
	}
	if err := wbs.CheckDependency(predecessorID, successorID, existing); err != nil {
		return fmt.Errorf("%s -> %s: %w", pred.Code, succ.Code, err)
	}
	return nil
}
