// Package seedspec loads the starter catalog (demo items and combos) from
// a CUE file and validates it against the embedded schema before anything
// touches the database.
package seedspec

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

//go:embed default_seed.cue
var defaultSeedCUE string

// Item is a starter menu item. Category is the category display name;
// the store resolves it to an id at seed time.
type Item struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Photo       string  `json:"photo"`
	Category    string  `json:"category"`
}

// Combo is a starter combo. Drink and Side may be empty (slot absent).
// Prices are never part of the seed; the store derives them.
type Combo struct {
	Name  string `json:"name"`
	Main  string `json:"main"`
	Drink string `json:"drink,omitempty"`
	Side  string `json:"side,omitempty"`
}

// Catalog is a validated seed catalog.
type Catalog struct {
	Items  []Item  `json:"items"`
	Combos []Combo `json:"combos"`
}

// LoadError reports a seed file that failed to load or validate.
type LoadError struct {
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("seed %s: %s", e.Path, e.Message)
	}
	return "seed: " + e.Message
}

// Load reads and validates a seed catalog from a CUE file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	cat, err := parse(string(data))
	if err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}
	return cat, nil
}

// Default returns the embedded starter catalog.
func Default() (*Catalog, error) {
	cat, err := parse(defaultSeedCUE)
	if err != nil {
		return nil, &LoadError{Path: "default_seed.cue", Message: err.Error()}
	}
	return cat, nil
}

// parse compiles the seed source, unifies it with the schema, and decodes
// it once validation passes.
func parse(src string) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	value := ctx.CompileString(src)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling seed: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating seed: %w", err)
	}

	var cat Catalog
	if err := unified.LookupPath(cue.ParsePath("catalog")).Decode(&cat); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return &cat, nil
}
