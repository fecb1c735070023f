package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// queryResult is the executed result set in response shape.
type queryResult struct {
	Columns       []string
	Records       []map[string]any
	Truncated     bool
	ExecutionTime float64 // milliseconds
}

var errNotReadOnly = errors.New("only SELECT statements are allowed")

// checkReadOnly rejects anything but a single read statement.
func checkReadOnly(query string) error {
	q := strings.ToLower(strings.TrimSpace(query))
	if !strings.HasPrefix(q, "select") && !strings.HasPrefix(q, "with") {
		return errNotReadOnly
	}
	// A semicolon inside the statement body could smuggle a second one.
	if i := strings.Index(q, ";"); i >= 0 && strings.TrimSpace(q[i+1:]) != "" {
		return errNotReadOnly
	}
	return nil
}

// execute runs a read-only query, capping the result at maxRows+1 so the
// caller can tell whether truncation occurred.
func (s *Server) execute(ctx context.Context, query string) (*queryResult, error) {
	if err := checkReadOnly(query); err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &queryResult{Columns: cols}
	for rows.Next() {
		if len(res.Records) >= s.maxRows {
			res.Truncated = true
			break
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			rec[col] = val
		}
		res.Records = append(res.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.ExecutionTime = float64(time.Since(start).Microseconds()) / 1000
	return res, nil
}
