package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/importer"
	"github.com/alexanderramin/trestle/internal/repository"
	"github.com/alexanderramin/trestle/internal/wbs"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"short_id": schema.Project.ShortID}
	defer func() { observeUseCase(ctx, s.observer, "import-project", startedAt, fields, err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, importer.JoinErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txItems := repository.NewSQLiteWbsItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		if err := txProjects.Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, item := range generated.Items {
			if err := item.Validate(); err != nil {
				return err
			}
			if err := txItems.Create(ctx, item); err != nil {
				return fmt.Errorf("creating wbs item %s: %w", item.Code, err)
			}
		}

		accepted := make([]domain.Dependency, 0, len(generated.Dependencies))
		for _, dep := range generated.Dependencies {
			if err := wbs.CheckDependency(dep.PredecessorID, dep.SuccessorID, accepted); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
			if err := txDeps.Create(ctx, &dep); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
			accepted = append(accepted, dep)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["items"] = len(generated.Items)
	fields["dependencies"] = len(generated.Dependencies)
	return &ImportResult{
		Project:         generated.Project,
		ItemCount:       len(generated.Items),
		DependencyCount: len(generated.Dependencies),
	}, nil
}
