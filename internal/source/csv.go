package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSV reads a delimited file with a header row. Cells that parse as
// numbers are loaded as int64 or float64.
type CSV struct {
	Path  string
	Limit int
	Tab   bool
}

func (c *CSV) Name() string { return c.Path }

func (c *CSV) Close() error { return nil }

func (c *CSV) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if c.Tab {
		r.Comma = '\t'
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	fields := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		fields[i] = h
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.Limit > 0 && len(records) >= c.Limit {
			break
		}
		line, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+2, err)
		}
		rec := make(Record, len(fields))
		for i, name := range fields {
			if i < len(line) {
				rec[name] = coerce(line[i])
			} else {
				rec[name] = nil
			}
		}
		records = append(records, rec)
	}

	return &Dataset{Fields: fields, Records: records}, nil
}

// coerce turns numeric text into a number and leaves everything else as is
func coerce(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}
