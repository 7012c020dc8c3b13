package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite reads one table of a SQLite database into memory
type SQLite struct {
	Path  string
	Table string
	Limit int

	db *sql.DB
}

// OpenSQLite opens the database. With no table the first user table is used.
func OpenSQLite(path, table string, limit int) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return &SQLite{Path: path, Table: table, Limit: limit, db: db}, nil
}

func (s *SQLite) Name() string {
	return fmt.Sprintf("%s:%s", s.Path, s.Table)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load(ctx context.Context) (*Dataset, error) {
	if s.Table == "" {
		table, err := s.firstTable(ctx)
		if err != nil {
			return nil, err
		}
		s.Table = table
	}

	q := sq.Select("*").From(quoteIdent(s.Table))
	if s.Limit > 0 {
		q = q.Limit(uint64(s.Limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}
	defer func() { _ = rows.Close() }()

	fields, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(fields))
		ptrs := make([]any, len(fields))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec := make(Record, len(fields))
		for i, name := range fields {
			if b, ok := values[i].([]byte); ok {
				rec[name] = string(b)
			} else {
				rec[name] = values[i]
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &Dataset{Fields: fields, Records: records}, nil
}

func (s *SQLite) firstTable(ctx context.Context) (string, error) {
	query, args, err := sq.Select("name").
		From("sqlite_master").
		Where(sq.Eq{"type": "table"}).
		Where(sq.NotLike{"name": "sqlite_%"}).
		OrderBy("name").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	var name string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNoTable
		}
		return "", fmt.Errorf("failed to list tables: %w", err)
	}
	return name, nil
}

// quoteIdent quotes an identifier for SQLite and Postgres: "na""me"
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
