package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML reads a YAML or JSON document holding a list of objects, or an
// object whose "rows" key holds that list
type YAML struct {
	Path  string
	Limit int
}

func (y *YAML) Name() string { return y.Path }

func (y *YAML) Close() error { return nil }

func (y *YAML) Load(ctx context.Context) (*Dataset, error) {
	data, err := os.ReadFile(y.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", y.Path, err)
	}

	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		var doc struct {
			Rows []map[string]any `yaml:"rows"`
		}
		if derr := yaml.Unmarshal(data, &doc); derr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", y.Path, err)
		}
		rows = doc.Rows
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if y.Limit > 0 && len(records) >= y.Limit {
			break
		}
		rec := make(Record, len(row))
		for k, v := range row {
			rec[k] = normalize(v)
		}
		records = append(records, rec)
	}

	return &Dataset{Fields: fieldsOf(records), Records: records}, nil
}

// normalize flattens nested values to their text form so every cell is a
// scalar the filters understand
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any, []any:
		out, err := yaml.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimSpace(string(out))
	case int:
		return int64(t)
	default:
		return v
	}
}
