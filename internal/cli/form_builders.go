package cli

import (
	"strconv"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/charmbracelet/huh"
)

// depFormValues collects the answers of the dependency form.
type depFormValues struct {
	Predecessor string
	Successor   string
	Type        string
	Lag         string
}

// lagDays parses the lag answer; empty means zero.
func (v depFormValues) lagDays() int {
	n, _ := strconv.Atoi(v.Lag)
	return n
}

// itemOptions builds select options labelled "code  title", valued by code.
func itemOptions(items []domain.WbsItem) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(items))
	for _, it := range items {
		opts = append(opts, huh.NewOption(it.Code+"  "+it.Title, it.Code))
	}
	return opts
}

// dependencyForm asks for both endpoints, the type and the lag. Fields
// already given as flags are prefilled.
func dependencyForm(items []domain.WbsItem, v *depFormValues) *huh.Form {
	if v.Type == "" {
		v.Type = string(domain.FinishToStart)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Predecessor").
				Options(itemOptions(items)...).
				Value(&v.Predecessor),
			huh.NewSelect[string]().
				Title("Successor").
				Options(itemOptions(items)...).
				Value(&v.Successor).
				Validate(func(s string) error {
					if s == v.Predecessor {
						return errSameEndpoint
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Finish to start", string(domain.FinishToStart)),
					huh.NewOption("Start to start", string(domain.StartToStart)),
					huh.NewOption("Finish to finish", string(domain.FinishToFinish)),
					huh.NewOption("Start to finish", string(domain.StartToFinish)),
				).
				Value(&v.Type).
				Validate(validateDependencyType),
			huh.NewInput().
				Title("Lag (days, negative for lead)").
				Placeholder("0").
				Value(&v.Lag).
				Validate(validateLag),
		),
	).WithTheme(trestleHuhTheme()).WithShowHelp(false)
}
