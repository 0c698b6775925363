package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a project import file.
// Items refer to each other by WBS code.
type ImportSchema struct {
	Project      ProjectImport      `json:"project" yaml:"project"`
	Defaults     *DefaultsImport    `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Items        []ItemImport       `json:"items" yaml:"items"`
	Dependencies []DependencyImport `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	ShortID    string  `json:"short_id" yaml:"short_id"`
	Name       string  `json:"name" yaml:"name"`
	Client     string  `json:"client,omitempty" yaml:"client,omitempty"`
	Status     string  `json:"status,omitempty" yaml:"status,omitempty"`
	StartDate  string  `json:"start_date" yaml:"start_date"`
	TargetDate *string `json:"target_date,omitempty" yaml:"target_date,omitempty"`
}

// DefaultsImport defines project-wide defaults that cascade to items and
// dependencies.
type DefaultsImport struct {
	ItemType       string `json:"item_type,omitempty" yaml:"item_type,omitempty"`
	DurationDays   *int   `json:"duration_days,omitempty" yaml:"duration_days,omitempty"`
	DependencyType string `json:"dependency_type,omitempty" yaml:"dependency_type,omitempty"`
}

// ItemImport defines a WBS item. Money fields are decimal strings so that
// JSON and YAML files round the same way.
type ItemImport struct {
	Code            string   `json:"code" yaml:"code"`
	Parent          *string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Title           string   `json:"title" yaml:"title"`
	Type            string   `json:"type,omitempty" yaml:"type,omitempty"`
	StartDate       string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	DurationDays    *int     `json:"duration_days,omitempty" yaml:"duration_days,omitempty"`
	BudgetedCost    string   `json:"budgeted_cost,omitempty" yaml:"budgeted_cost,omitempty"`
	ActualCost      string   `json:"actual_cost,omitempty" yaml:"actual_cost,omitempty"`
	PercentComplete *float64 `json:"percent_complete,omitempty" yaml:"percent_complete,omitempty"`
}

// DependencyImport defines an edge between two items by code.
type DependencyImport struct {
	Predecessor string `json:"predecessor" yaml:"predecessor"`
	Successor   string `json:"successor" yaml:"successor"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	LagDays     int    `json:"lag_days,omitempty" yaml:"lag_days,omitempty"`
}

// LoadImportSchema reads an import file. .yaml and .yml files are parsed as
// YAML; anything else is parsed as JSON with comments and trailing commas
// allowed.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON or JSONC import document.
func ParseJSON(data []byte) (*ImportSchema, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	var schema ImportSchema
	if err := json.Unmarshal(std, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// ParseYAML parses a YAML import document.
func ParseYAML(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
