package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// NumericColumns is the count of leading numeric features: area, bathrooms, bedrooms.
const NumericColumns = 3

// Schema is the ordered list of model input columns. Columns after the
// numeric ones are lowercase location names, one per one-hot slot.
type Schema struct {
	columns   []string
	locations map[string]int
}

type columnsFile struct {
	DataColumns []string `json:"data_columns"`
}

// LoadSchema reads a columns file of the form {"data_columns": [...]}.
func LoadSchema(path string) (*Schema, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file columnsFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSchema, err)
	}
	if file.DataColumns == nil {
		return nil, fmt.Errorf("%w: data_columns missing", ErrMalformedSchema)
	}
	return NewSchema(file.DataColumns)
}

func NewSchema(columns []string) (*Schema, error) {
	if len(columns) < NumericColumns {
		return nil, fmt.Errorf("%w: need at least %d columns, got %d", ErrMalformedSchema, NumericColumns, len(columns))
	}
	for i, name := range columns[:NumericColumns] {
		if name == "" {
			return nil, fmt.Errorf("%w: numeric column %d has no name", ErrMalformedSchema, i)
		}
	}

	locations := make(map[string]int, len(columns)-NumericColumns)
	for i := NumericColumns; i < len(columns); i++ {
		name := columns[i]
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: location column %d has no name", ErrMalformedSchema, i)
		case strings.ToLower(name) != name:
			return nil, fmt.Errorf("%w: location %q is not lowercase", ErrMalformedSchema, name)
		}
		if prev, dup := locations[name]; dup {
			return nil, fmt.Errorf("%w: location %q repeated at columns %d and %d", ErrMalformedSchema, name, prev, i)
		}
		locations[name] = i
	}

	return &Schema{
		columns:   append([]string(nil), columns...),
		locations: locations,
	}, nil
}

func (s *Schema) Len() int {
	return len(s.columns)
}

func (s *Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Locations returns the location names in file order.
func (s *Schema) Locations() []string {
	return append([]string(nil), s.columns[NumericColumns:]...)
}

// LocationIndex matches location case-insensitively against the location
// columns and reports its slot in the feature vector.
func (s *Schema) LocationIndex(location string) (int, bool) {
	idx, ok := s.locations[strings.ToLower(location)]
	return idx, ok
}
