package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/repository"
)

// resolveProject finds a project by short ID (case-insensitive), full ID or
// unambiguous ID prefix.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project is required (use --project)")
	}

	p, err := app.Projects.GetByShortID(ctx, strings.ToUpper(input))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Project
	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItem looks up a WBS item by code within a project.
func resolveItem(ctx context.Context, app *App, projectID, code string) (*domain.WbsItem, error) {
	item, err := app.Wbs.GetByCode(ctx, projectID, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("wbs item %q not found", code)
		}
		return nil, err
	}
	return item, nil
}

// itemCodes maps item IDs to codes for rendering edges.
func itemCodes(items []domain.WbsItem) map[string]string {
	codes := make(map[string]string, len(items))
	for _, it := range items {
		codes[it.ID] = it.Code
	}
	return codes
}
