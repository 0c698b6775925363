package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"short_id": p.ShortID}
	defer func() { observeUseCase(ctx, s.observer, "create-project", startedAt, fields, err) }()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.ShortID = strings.ToUpper(p.ShortID)
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	if err = validateProject(p); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	return s.projects.GetByShortID(ctx, strings.ToUpper(shortID))
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": p.ID}
	defer func() { observeUseCase(ctx, s.observer, "update-project", startedAt, fields, err) }()

	p.ShortID = strings.ToUpper(p.ShortID)
	if err = validateProject(p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": id}
	defer func() { observeUseCase(ctx, s.observer, "delete-project", startedAt, fields, err) }()

	return s.projects.Delete(ctx, id)
}

func validateProject(p *domain.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if err := p.ValidateShortID(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	if !domain.ValidProjectStatuses[string(p.Status)] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProject, p.Status)
	}
	if p.TargetDate != nil && p.TargetDate.Before(p.StartDate) {
		return fmt.Errorf("%w: target date %s is before start date %s", ErrInvalidProject,
			p.TargetDate.Format(domain.DateLayout), p.StartDate.Format(domain.DateLayout))
	}
	return nil
}
