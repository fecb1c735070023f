package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHandleQueryCount(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	rec, body := doJSON(t, h, http.MethodPost, "/api/query", map[string]string{
		"query": "How many orders are there?",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SELECT COUNT(*) AS total_count FROM orders", body["sql_query"])
	assert.Equal(t, float64(1), body["num_results"])

	results := body["results"].([]any)
	require.Len(t, results, 1)
	row := results[0].(map[string]any)
	assert.Equal(t, float64(5), row["total_count"])
}

func TestHandleQuerySelectsBestTable(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	rec, body := doJSON(t, h, http.MethodPost, "/api/query", map[string]string{
		"query": "Show me all customers",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body["sql_query"], "FROM customers")
	assert.Equal(t, float64(5), body["num_results"])
}

func TestHandleQueryEmpty(t *testing.T) {
	s := newTestServer(t)

	rec, body := doJSON(t, s.Handler(), http.MethodPost, "/api/query", map[string]string{"query": "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestHandleExecuteSQL(t *testing.T) {
	s := newTestServer(t)

	rec, body := doJSON(t, s.Handler(), http.MethodPost, "/api/execute-sql", map[string]string{
		"sql": "SELECT name, country FROM customers WHERE country = 'France' ORDER BY name",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["num_results"])
	assert.Equal(t, []any{"name", "country"}, body["columns"])
}

func TestHandleExecuteSQLRejectsWrites(t *testing.T) {
	s := newTestServer(t)

	for _, stmt := range []string{
		"DROP TABLE customers",
		"DELETE FROM orders",
		"SELECT 1; DROP TABLE customers",
	} {
		rec, body := doJSON(t, s.Handler(), http.MethodPost, "/api/execute-sql", map[string]string{"sql": stmt})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "statement %q should be rejected", stmt)
		assert.NotEmpty(t, body["error"])
	}
}

func TestHandleExecuteSQLBadQuery(t *testing.T) {
	s := newTestServer(t)

	rec, body := doJSON(t, s.Handler(), http.MethodPost, "/api/execute-sql", map[string]string{
		"sql": "SELECT * FROM no_such_table",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestHandleSchema(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schema", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var schema map[string]tableSchema
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))

	require.Contains(t, schema, "customers")
	require.Contains(t, schema, "orders")
	assert.NotContains(t, schema, "query_log")

	orders := schema["orders"]
	assert.Equal(t, []string{"id"}, orders.PrimaryKeys)
	assert.Equal(t, "customers.id", orders.ForeignKeys["customer_id"])
}

func TestHandleExamples(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/examples", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var groups []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.NotEmpty(t, groups)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec, body := doJSON(t, s.Handler(), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestQueryLogRecordsExecutions(t *testing.T) {
	s := newTestServer(t)

	_, _ = doJSON(t, s.Handler(), http.MethodPost, "/api/query", map[string]string{
		"query": "count customers",
	})

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM query_log").Scan(&n))
	assert.Equal(t, 1, n)
}
