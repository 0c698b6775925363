package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/repository"
	"github.com/alexanderramin/trestle/internal/scheduler"
	"github.com/alexanderramin/trestle/internal/wbs"
)

type scheduleService struct {
	projects repository.ProjectRepo
	items    repository.WbsItemRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewScheduleService(
	projects repository.ProjectRepo,
	items repository.WbsItemRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		projects: projects,
		items:    items,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Propagate pushes successor start dates forward to satisfy dependency lags
// and persists every moved item in one transaction.
func (s *scheduleService) Propagate(ctx context.Context, projectID string, opts PropagateOptions) (result *PropagateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id":   projectID,
		"until_stable": opts.UntilStable,
		"dry_run":      opts.DryRun,
	}
	defer func() { observeUseCase(ctx, s.observer, "propagate-schedule", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWbsItemRepo(tx)
		before, deps, err := loadNetwork(ctx, tx, projectID)
		if err != nil {
			return err
		}

		after, passes, err := runPropagation(before, deps, opts)
		if err != nil {
			return err
		}

		changes := wbs.Diff(before, after)
		fields["passes"] = passes
		fields["moved"] = len(changes)
		result = &PropagateResult{Changes: changes, Passes: passes}

		if opts.DryRun {
			return nil
		}
		for _, c := range changes {
			if err := txItems.UpdateSchedule(ctx, c.ID, c.ToStartDate, c.ToEndDate); err != nil {
				return fmt.Errorf("moving %s: %w", c.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func runPropagation(items []domain.WbsItem, deps []domain.Dependency, opts PropagateOptions) ([]domain.WbsItem, int, error) {
	if !opts.UntilStable {
		return wbs.CalculateDependencyConstraints(items, deps), 1, nil
	}
	return wbs.ResolveConstraints(items, deps, opts.MaxPasses)
}

func (s *scheduleService) NetworkOrder(ctx context.Context, projectID string) (order []string, err error) {
	err = s.uow.Snapshot(ctx, func(ctx context.Context, tx db.DBTX) error {
		items, deps, err := loadNetwork(ctx, tx, projectID)
		if err != nil {
			return err
		}
		order, err = wbs.TopologicalOrder(items, deps)
		return err
	})
	return order, err
}

func loadNetwork(ctx context.Context, tx db.DBTX, projectID string) ([]domain.WbsItem, []domain.Dependency, error) {
	items, err := repository.NewSQLiteWbsItemRepo(tx).ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	deps, err := repository.NewSQLiteDependencyRepo(tx).ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return items, deps, nil
}

// Risk compares the forecast finish, the latest item end date, against the
// project's target date, using the project-level earned value as of asOf.
func (s *scheduleService) Risk(ctx context.Context, projectID string, asOf time.Time) (*scheduler.RiskResult, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	finish := p.StartDate
	for _, it := range items {
		if it.EndDate.After(finish) {
			finish = it.EndDate
		}
	}
	total := wbs.RollupAll(wbs.BuildHierarchy(items), asOf)

	result := scheduler.ComputeRisk(scheduler.RiskInput{
		AsOf:           asOf,
		TargetDate:     p.TargetDate,
		ForecastFinish: finish,
		ProgressPct:    total.PercentComplete,
		TimeElapsedPct: scheduler.ElapsedPct(p.StartDate, p.TargetDate, asOf),
		SPI:            total.SPI,
	})
	return &result, nil
}
