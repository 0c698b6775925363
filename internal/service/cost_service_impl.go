package service

import (
	"context"
	"time"

	"github.com/alexanderramin/trestle/internal/report"
	"github.com/alexanderramin/trestle/internal/repository"
)

type costService struct {
	projects repository.ProjectRepo
	items    repository.WbsItemRepo
	observer UseCaseObserver
}

func NewCostService(projects repository.ProjectRepo, items repository.WbsItemRepo, observers ...UseCaseObserver) CostService {
	return &costService{projects: projects, items: items, observer: useCaseObserverOrNoop(observers)}
}

func (s *costService) Report(ctx context.Context, projectID string, asOf time.Time) (*report.CostReport, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return report.BuildCostReport(project, items, asOf), nil
}

func (s *costService) ExportXLSX(ctx context.Context, projectID string, asOf time.Time, path string) (r *report.CostReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "path": path}
	defer func() { observeUseCase(ctx, s.observer, "export-cost-report", startedAt, fields, err) }()

	r, err = s.Report(ctx, projectID, asOf)
	if err != nil {
		return nil, err
	}
	fields["lines"] = len(r.Lines)
	if err = report.SaveXLSX(r, path); err != nil {
		return nil, err
	}
	return r, nil
}
