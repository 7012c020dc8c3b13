// Package source loads grid data from files and databases.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rebeliceyang/lazygrid/internal/config"
)

var (
	ErrUnknownKind = errors.New("unknown source kind")
	ErrMissingPath = errors.New("source path is required")
	ErrMissingDSN  = errors.New("postgres source requires a dsn")
	ErrNoTable     = errors.New("source table is required")
)

// Record is one row keyed by field name
type Record map[string]any

// Dataset is a loaded set of records. Total is set only by sources that
// page on the server, and is then the full row count rather than
// len(Records).
type Dataset struct {
	Fields  []string
	Records []Record
	Total   int
}

// Source loads a dataset in one go
type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
	Close() error
}

// PageRequest asks a server-paged source for one page
type PageRequest struct {
	PageIndex int
	PageSize  int
}

// Pager is a source that pages on the server
type Pager interface {
	Source
	Page(ctx context.Context, req PageRequest) (*Dataset, error)
}

// Open creates the source described by cfg. An empty kind is inferred from
// the file extension.
func Open(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	kind := strings.ToLower(cfg.Kind)
	if kind == "" {
		kind = kindFromPath(cfg.Path)
	}

	switch kind {
	case "csv", "tsv":
		if cfg.Path == "" {
			return nil, ErrMissingPath
		}
		return &CSV{Path: cfg.Path, Limit: cfg.Limit, Tab: kind == "tsv"}, nil
	case "yaml", "yml", "json":
		if cfg.Path == "" {
			return nil, ErrMissingPath
		}
		return &YAML{Path: cfg.Path, Limit: cfg.Limit}, nil
	case "sqlite", "sqlite3", "db":
		if cfg.Path == "" {
			return nil, ErrMissingPath
		}
		return OpenSQLite(cfg.Path, cfg.Table, cfg.Limit)
	case "postgres", "postgresql", "pg":
		if cfg.DSN == "" {
			return nil, ErrMissingDSN
		}
		return OpenPostgres(ctx, cfg.DSN, cfg.Table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

func kindFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "sqlite3", "sqlite", "db":
		return "sqlite"
	}
	return ext
}

// fieldsOf returns the union of record keys, ordered by first appearance
// and then by name for keys a map iteration would otherwise shuffle
func fieldsOf(records []Record) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, r := range records {
		keys := make([]string, 0, len(r))
		for k := range r {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			fields = append(fields, k)
		}
	}
	return fields
}

// IsNumericField reports whether every non-empty value of a field is a number
func IsNumericField(records []Record, field string) bool {
	found := false
	for _, r := range records {
		switch v := r[field].(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			return false
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			found = true
		default:
			return false
		}
	}
	return found
}
