package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres pages through a table on the server. The grid gets one page at a
// time plus the table's row count, which puts it in manual pagination.
type Postgres struct {
	Table string

	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// OpenPostgres connects to the database behind dsn
func OpenPostgres(ctx context.Context, dsn, table string) (*Postgres, error) {
	if table == "" {
		return nil, ErrNoTable
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	// Configure pool settings
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{
		Table: table,
		pool:  pool,
		psql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func (p *Postgres) Name() string { return p.Table }

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// Load fetches the first page with the default page size
func (p *Postgres) Load(ctx context.Context) (*Dataset, error) {
	return p.Page(ctx, PageRequest{PageIndex: 0, PageSize: 10})
}

// Page fetches one page and the table's row count
func (p *Postgres) Page(ctx context.Context, req PageRequest) (*Dataset, error) {
	countSQL, countArgs, selectSQL, selectArgs, err := p.pageQueries(req)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := p.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	rows, err := p.pool.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	fields := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		fields[i] = fd.Name
	}

	var records []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rec := make(Record, len(fields))
		for i, name := range fields {
			rec[name] = pgValue(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &Dataset{Fields: fields, Records: records, Total: int(total)}, nil
}

// pageQueries builds the count and page queries. A PageSize below 1 asks
// for every row, with no LIMIT or OFFSET.
func (p *Postgres) pageQueries(req PageRequest) (string, []any, string, []any, error) {
	index := req.PageIndex
	if index < 0 {
		index = 0
	}
	table := quoteTable(p.Table)

	countSQL, countArgs, err := p.psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("failed to build count query: %w", err)
	}
	query := p.psql.Select("*").From(table)
	if size := req.PageSize; size > 0 {
		query = query.Limit(uint64(size)).Offset(uint64(index * size))
	}
	selectSQL, selectArgs, err := query.ToSql()
	if err != nil {
		return "", nil, "", nil, fmt.Errorf("failed to build page query: %w", err)
	}
	return countSQL, countArgs, selectSQL, selectArgs, nil
}

// quoteTable quotes schema.table, each part on its own
func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}

// pgValue converts driver values the grid cannot compare into text
func pgValue(v any) any {
	switch t := v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", t[0:4], t[4:6], t[6:8], t[8:10], t[10:16])
	case int32:
		return int64(t)
	case int16:
		return int64(t)
	default:
		return v
	}
}
