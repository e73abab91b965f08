package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fhvi/provider-directory/internal/domain/entities"
	apperrors "github.com/fhvi/provider-directory/pkg/errors"
)

// Load reads and parses a provider dataset from a JSON file.
func Load(path string) (*entities.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read dataset file", err)
	}

	var ds entities.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, apperrors.NewInternalError("failed to parse dataset", err)
	}

	if err := Validate(&ds); err != nil {
		return nil, err
	}

	return &ds, nil
}

// Validate checks that every record has a unique, non-empty id. Beyond
// identity nothing is assumed well-formed; absent nested collections are a
// recognized state the query layer tolerates.
func Validate(ds *entities.Dataset) error {
	seen := make(map[string]struct{}, len(ds.Data))

	for i, p := range ds.Data {
		if p == nil {
			return fmt.Errorf("record at index %d: empty record", i)
		}
		if p.ID == "" {
			return fmt.Errorf("record at index %d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("record at index %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return nil
}
