// Package transfer exports and imports the whole household as one JSON document.
package transfer

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/internal/storage"
)

// ErrInvalidDocument rejects documents lacking the keys a household must have.
var ErrInvalidDocument = errors.New("invalid export document")

// requiredKeys must be present at the top level of an imported document.
var requiredKeys = []string{"accounts", "families"}

// Export renders m as an indented JSON document mirroring the data model.
func Export(m *domain.DataModel) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// Import parses a document into a full replacement model. A document missing any
// required key is rejected as a whole; nothing is partially applied.
func Import(data []byte) (*domain.DataModel, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for _, k := range requiredKeys {
		if _, ok := top[k]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidDocument, k)
		}
	}
	m, err := storage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return m, nil
}

// ExportFile writes the export document to path.
func ExportFile(path string, m *domain.DataModel) error {
	data, err := Export(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ImportFile reads and validates an export document from path.
func ImportFile(path string) (*domain.DataModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	return Import(data)
}
