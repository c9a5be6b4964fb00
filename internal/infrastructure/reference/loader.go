// Package reference loads the ingredient, concern and shade tables the
// matching engine scores against.
package reference

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beautymatch/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Load returns the embedded tables, or the tables in path when path is set.
func Load(path string) (*domain.ReferenceTables, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Default parses the embedded tables
func Default() (*domain.ReferenceTables, error) {
	return Parse(defaultTablesYAML)
}

// MustDefault is Default for callers that cannot continue without tables
func MustDefault() *domain.ReferenceTables {
	tables, err := Default()
	if err != nil {
		panic(fmt.Sprintf("load embedded tables.yaml: %v", err))
	}
	return tables
}

// LoadFile reads and parses a tables file in the embedded schema
func LoadFile(path string) (*domain.ReferenceTables, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read reference tables: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML tables, folds every name, and validates the result
func Parse(data []byte) (*domain.ReferenceTables, error) {
	var raw rawTables
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidReferenceData, err)
	}
	tables, err := mapTables(raw)
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// Marshal renders tables back into the YAML schema
func Marshal(tables *domain.ReferenceTables) ([]byte, error) {
	return yaml.Marshal(tables)
}
