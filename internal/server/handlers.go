package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

type queryRequest struct {
	Query string `json:"query"`
}

type sqlRequest struct {
	SQL string `json:"sql"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question := strings.TrimSpace(req.Query)
	if question == "" {
		respondError(w, http.StatusBadRequest, "Query cannot be empty")
		return
	}

	sqlQuery, err := s.translate(r.Context(), question)
	if err != nil {
		s.logger.Error("translation failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := s.execute(r.Context(), sqlQuery)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"sql_query": sqlQuery,
			"error":     err.Error(),
		})
		return
	}

	s.logQuery(r.Context(), question, sqlQuery, len(res.Records))

	respondJSON(w, http.StatusOK, map[string]any{
		"sql_query":      sqlQuery,
		"results":        recordsPayload(res),
		"columns":        res.Columns,
		"num_results":    len(res.Records),
		"execution_time": res.ExecutionTime,
		"truncated":      res.Truncated,
	})
}

func (s *Server) handleExecuteSQL(w http.ResponseWriter, r *http.Request) {
	var req sqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	query := strings.TrimSpace(req.SQL)
	if query == "" {
		respondError(w, http.StatusBadRequest, "SQL cannot be empty")
		return
	}

	res, err := s.execute(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logQuery(r.Context(), "", query, len(res.Records))

	respondJSON(w, http.StatusOK, map[string]any{
		"sql_query":      query,
		"results":        recordsPayload(res),
		"columns":        res.Columns,
		"num_results":    len(res.Records),
		"execution_time": res.ExecutionTime,
		"truncated":      res.Truncated,
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := s.introspect(r.Context())
	if err != nil {
		s.logger.Error("schema introspection failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, schema)
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, exampleCatalog)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]any{
		"status":        status,
		"schema_loaded": true,
	})
}

// recordsPayload keeps empty result sets as [] rather than null.
func recordsPayload(res *queryResult) []map[string]any {
	if res.Records == nil {
		return []map[string]any{}
	}
	return res.Records
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// exampleCatalog is served from /api/examples.
var exampleCatalog = []map[string]any{
	{"category": "Basic", "queries": []string{
		"Show me all customers",
		"List all products",
	}},
	{"category": "Aggregation", "queries": []string{
		"How many orders are there?",
		"Count customers",
	}},
	{"category": "Filtering", "queries": []string{
		"Show orders",
		"Show me products",
	}},
}
