package source

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazygrid/internal/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCSV_Load(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age,score\nann,31,4.5\nbob,,x\ncid,40\n")

	ds, err := (&CSV{Path: path}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "score"}, ds.Fields)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, int64(31), ds.Records[0]["age"])
	assert.Equal(t, 4.5, ds.Records[0]["score"])
	assert.Equal(t, "x", ds.Records[1]["score"])
	assert.Nil(t, ds.Records[2]["score"], "short rows are padded with nil")
	assert.Zero(t, ds.Total)

	assert.True(t, IsNumericField(ds.Records, "age"))
	assert.False(t, IsNumericField(ds.Records, "score"))
	assert.False(t, IsNumericField(ds.Records, "name"))
}

func TestCSV_Limit(t *testing.T) {
	path := writeFile(t, "n.csv", "n\n1\n2\n3\n")

	ds, err := (&CSV{Path: path, Limit: 2}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Records, 2)
}

func TestYAML_ListAndRowsKey(t *testing.T) {
	list := writeFile(t, "list.yaml", "- name: ann\n  age: 31\n- name: bob\n  tags: [a, b]\n")
	ds, err := (&YAML{Path: list}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "name", "tags"}, ds.Fields)
	assert.Equal(t, int64(31), ds.Records[0]["age"])
	assert.IsType(t, "", ds.Records[1]["tags"])

	wrapped := writeFile(t, "doc.json", `{"rows": [{"id": 1}, {"id": 2}]}`)
	ds, err = (&YAML{Path: wrapped}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Records, 2)
}

func TestSQLite_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE people (name TEXT, age INTEGER);
		INSERT INTO people VALUES ('ann', 31), ('bob', 25), ('cid', NULL);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	src, err := OpenSQLite(path, "", 2)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "people", src.Table)
	assert.Equal(t, []string{"name", "age"}, ds.Fields)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "ann", ds.Records[0]["name"])
	assert.Equal(t, int64(31), ds.Records[0]["age"])
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, config.SourceConfig{Kind: "parquet", Path: "x"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Open(ctx, config.SourceConfig{Kind: "csv"})
	assert.ErrorIs(t, err, ErrMissingPath)

	_, err = Open(ctx, config.SourceConfig{Kind: "postgres"})
	assert.ErrorIs(t, err, ErrMissingDSN)

	src, err := Open(ctx, config.SourceConfig{Path: "people.CSV"})
	require.NoError(t, err)
	assert.IsType(t, &CSV{}, src)
}

func TestPostgres_PageQueries(t *testing.T) {
	p := &Postgres{Table: "public.people", psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}

	countSQL, _, selectSQL, _, err := p.pageQueries(PageRequest{PageIndex: 2, PageSize: 25})
	require.NoError(t, err)

	assert.Equal(t, `SELECT count(*) FROM "public"."people"`, countSQL)
	assert.Contains(t, selectSQL, `FROM "public"."people"`)
	assert.Contains(t, selectSQL, "LIMIT 25")
	assert.Contains(t, selectSQL, "OFFSET 50")
}

func TestPostgres_PageQueriesWithoutLimit(t *testing.T) {
	p := &Postgres{Table: "people", psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}

	for _, size := range []int{0, -5} {
		_, _, selectSQL, _, err := p.pageQueries(PageRequest{PageIndex: 3, PageSize: size})
		require.NoError(t, err)
		assert.Equal(t, `SELECT * FROM "people"`, selectSQL)
	}
}
