package server

import (
	"context"
	"fmt"
	"strings"
)

// translate maps a natural language question to SQL with a keyword match
// against table and column names. This is a stand-in for the production
// translation service so the client can be exercised end to end offline.
func (s *Server) translate(ctx context.Context, question string) (string, error) {
	schema, err := s.introspect(ctx)
	if err != nil {
		return "", err
	}
	if len(schema) == 0 {
		return "", fmt.Errorf("database has no tables")
	}

	tokens := tokenize(question)

	best := ""
	bestScore := -1
	for _, table := range tableNames(schema) {
		score := scoreTable(table, schema[table].columnNames(), tokens)
		if score > bestScore {
			best, bestScore = table, score
		}
	}

	if wantsCount(tokens) {
		return fmt.Sprintf("SELECT COUNT(*) AS total_count FROM %s", best), nil
	}
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d", best, s.maxRows), nil
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '_'
	})
	return fields
}

// scoreTable counts question tokens matching the table name or one of its
// columns, tolerating trailing-s plurals in either direction.
func scoreTable(table string, columns []string, tokens []string) int {
	names := append([]string{strings.ToLower(table)}, columns...)
	score := 0
	for _, tok := range tokens {
		for _, name := range names {
			if tok == name || tok+"s" == name || tok == name+"s" {
				score++
				break
			}
		}
	}
	return score
}

func wantsCount(tokens []string) bool {
	for i, tok := range tokens {
		if tok == "count" {
			return true
		}
		if tok == "how" && i+1 < len(tokens) && tokens[i+1] == "many" {
			return true
		}
	}
	return false
}
