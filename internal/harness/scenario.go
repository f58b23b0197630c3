package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a seeded catalog, a flow
// of mutations, and the expected outcome of each step. The final catalog
// state is compared against a golden file named after the scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup seeds the catalog before the flow runs. Setup entries are
	// assumed to succeed.
	Setup Setup `yaml:"setup,omitempty"`

	// Steps is the main flow: mutations with expected outcomes.
	Steps []Step `yaml:"steps"`
}

// Setup seeds items and combos before the flow.
type Setup struct {
	Items  []SetupItem  `yaml:"items,omitempty"`
	Combos []SetupCombo `yaml:"combos,omitempty"`
}

// SetupItem seeds one item. Category is a role name (main, drink, side)
// resolved against the seeded category set.
type SetupItem struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Price       float64 `yaml:"price"`
	Photo       string  `yaml:"photo,omitempty"`
	Category    string  `yaml:"category"`
}

// SetupCombo seeds one combo. Empty drink/side leave the slot null.
type SetupCombo struct {
	Name  string `yaml:"name"`
	Main  string `yaml:"main"`
	Drink string `yaml:"drink,omitempty"`
	Side  string `yaml:"side,omitempty"`
}

// Step is one mutation in the flow.
type Step struct {
	// Op selects the operation: insert_item, update_item, delete_item,
	// add_combo.
	Op string `yaml:"op"`

	// Item holds the payload for insert_item.
	Item *SetupItem `yaml:"item,omitempty"`

	// Ref addresses the target item by name for update_item/delete_item.
	Ref string `yaml:"ref,omitempty"`

	// Fields holds the partial update for update_item.
	Fields *StepFields `yaml:"fields,omitempty"`

	// Combo holds the payload for add_combo.
	Combo *SetupCombo `yaml:"combo,omitempty"`

	// Expect is the expected outcome: "ok" (or empty) for success, or a
	// catalog error code such as DUPLICATE_NAME or MISSING_ITEMS.
	Expect string `yaml:"expect,omitempty"`
}

// StepFields mirrors the partial-update shape; absent keys stay untouched.
type StepFields struct {
	Name        *string  `yaml:"name,omitempty"`
	Description *string  `yaml:"description,omitempty"`
	Price       *float64 `yaml:"price,omitempty"`
	Photo       *string  `yaml:"photo,omitempty"`
}

// LoadScenario reads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml scenario in a directory, sorted by
// file name for deterministic test ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Validate checks the scenario for structural problems before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	for i, step := range s.Steps {
		switch step.Op {
		case "insert_item":
			if step.Item == nil {
				return fmt.Errorf("step %d: insert_item requires item", i)
			}
		case "update_item":
			if step.Ref == "" {
				return fmt.Errorf("step %d: update_item requires ref", i)
			}
		case "delete_item":
			if step.Ref == "" {
				return fmt.Errorf("step %d: delete_item requires ref", i)
			}
		case "add_combo":
			if step.Combo == nil {
				return fmt.Errorf("step %d: add_combo requires combo", i)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return nil
}
