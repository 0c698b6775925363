package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/repository"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/google/uuid"
)

type wbsService struct {
	items    repository.WbsItemRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewWbsService(items repository.WbsItemRepo, uow db.UnitOfWork, observers ...UseCaseObserver) WbsService {
	return &wbsService{items: items, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *wbsService) Create(ctx context.Context, w *domain.WbsItem) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": w.ProjectID, "code": w.Code}
	defer func() { observeUseCase(ctx, s.observer, "create-wbs-item", startedAt, fields, err) }()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Type == "" {
		w.Type = domain.WbsWorkPackage
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txItems := repository.NewSQLiteWbsItemRepo(tx)

		if _, err := txProjects.GetByID(ctx, w.ProjectID); err != nil {
			return fmt.Errorf("loading project: %w", err)
		}
		if err := s.placeUnderParent(ctx, txItems, w); err != nil {
			return err
		}
		w.DeriveEndDate()
		if err := w.Validate(); err != nil {
			return err
		}
		return txItems.Create(ctx, w)
	})
}

func (s *wbsService) GetByID(ctx context.Context, id string) (*domain.WbsItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *wbsService) GetByCode(ctx context.Context, projectID, code string) (*domain.WbsItem, error) {
	return s.items.GetByCode(ctx, projectID, code)
}

func (s *wbsService) List(ctx context.Context, projectID string) ([]domain.WbsItem, error) {
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	wbs.SortByCode(items)
	return items, nil
}

func (s *wbsService) Tree(ctx context.Context, projectID string) ([]*wbs.Node, error) {
	items, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	roots := wbs.BuildHierarchy(items)
	wbs.SortTree(roots)
	return roots, nil
}

func (s *wbsService) Update(ctx context.Context, w *domain.WbsItem) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"wbs_item_id": w.ID, "code": w.Code}
	defer func() { observeUseCase(ctx, s.observer, "update-wbs-item", startedAt, fields, err) }()

	w.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWbsItemRepo(tx)

		existing, err := txItems.GetByID(ctx, w.ID)
		if err != nil {
			return err
		}
		w.ProjectID = existing.ProjectID
		w.CreatedAt = existing.CreatedAt

		if w.ParentID != nil {
			if err := s.ensureNotDescendant(ctx, txItems, w.ID, *w.ParentID); err != nil {
				return err
			}
		}
		if err := s.placeUnderParent(ctx, txItems, w); err != nil {
			return err
		}
		w.DeriveEndDate()
		if err := w.Validate(); err != nil {
			return err
		}
		if err := txItems.Update(ctx, w); err != nil {
			return err
		}
		if w.Level != existing.Level {
			fields["relevelled"] = true
			return relevelChildren(ctx, txItems, w)
		}
		return nil
	})
}

func (s *wbsService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"wbs_item_id": id}
	defer func() { observeUseCase(ctx, s.observer, "delete-wbs-item", startedAt, fields, err) }()

	return s.items.Delete(ctx, id)
}

// placeUnderParent derives Level from the parent and checks that the parent
// lives in the same project.
func (s *wbsService) placeUnderParent(ctx context.Context, items repository.WbsItemRepo, w *domain.WbsItem) error {
	if w.ParentID == nil {
		w.Level = 1
		return nil
	}
	parent, err := items.GetByID(ctx, *w.ParentID)
	if err != nil {
		return fmt.Errorf("loading parent: %w", err)
	}
	if parent.ProjectID != w.ProjectID {
		return ErrParentOutsideProject
	}
	w.Level = parent.Level + 1
	return nil
}

// ensureNotDescendant walks up from newParentID and fails if it meets id.
func (s *wbsService) ensureNotDescendant(ctx context.Context, items repository.WbsItemRepo, id, newParentID string) error {
	seen := make(map[string]bool)
	cur := newParentID
	for {
		if cur == id {
			return ErrParentCycle
		}
		if seen[cur] {
			return nil
		}
		seen[cur] = true
		node, err := items.GetByID(ctx, cur)
		if err != nil {
			return fmt.Errorf("loading ancestor: %w", err)
		}
		if node.ParentID == nil {
			return nil
		}
		cur = *node.ParentID
	}
}

func relevelChildren(ctx context.Context, items repository.WbsItemRepo, parent *domain.WbsItem) error {
	children, err := items.ListChildren(ctx, parent.ID)
	if err != nil {
		return err
	}
	for i := range children {
		child := &children[i]
		child.Level = parent.Level + 1
		child.UpdatedAt = parent.UpdatedAt
		if err := items.Update(ctx, child); err != nil {
			return err
		}
		if err := relevelChildren(ctx, items, child); err != nil {
			return err
		}
	}
	return nil
}
