package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/askdb-io/askdb/internal/result"
)

// QueryResponse is the shared shape of /api/query and /api/execute-sql
// responses. Rows is derived from the raw payload after decoding so the
// backend's column order survives the round trip.
type QueryResponse struct {
	SQL           string          `json:"sql_query"`
	LegacySQL     string          `json:"sql"` // older backends use "sql"
	Columns       []string        `json:"columns"`
	RawResults    json.RawMessage `json:"results"`
	NumResults    int             `json:"num_results"`
	ExecutionTime float64         `json:"execution_time"`
	Truncated     bool            `json:"truncated"`

	Rows result.Rows `json:"-"`
}

// buildRows materializes Rows from the raw results, preferring the
// explicit columns list, then the first row's key order in the raw JSON,
// then sorted keys as a last resort.
func (r *QueryResponse) buildRows() error {
	if r.SQL == "" {
		r.SQL = r.LegacySQL
	}

	var records []map[string]any
	if len(r.RawResults) > 0 {
		if err := json.Unmarshal(r.RawResults, &records); err != nil {
			return fmt.Errorf("malformed results payload: %w", err)
		}
	}

	cols := r.Columns
	if len(cols) == 0 {
		cols = firstRowKeyOrder(r.RawResults)
	}
	if len(cols) == 0 && len(records) > 0 {
		for k := range records[0] {
			cols = append(cols, k)
		}
		sort.Strings(cols)
	}

	r.Rows = result.Rows{Columns: cols, Records: records}
	if r.NumResults == 0 {
		r.NumResults = len(records)
	}
	return nil
}

// firstRowKeyOrder recovers the key order of the first object in a JSON
// array. encoding/json maps lose ordering, but the wire bytes keep it.
func firstRowKeyOrder(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('[') {
		return nil
	}
	if !dec.More() {
		return nil
	}
	tok, err = dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
	}
	return keys
}

// HealthResponse reports backend availability.
type HealthResponse struct {
	Status       string `json:"status"`
	SchemaLoaded bool   `json:"schema_loaded"`
}
