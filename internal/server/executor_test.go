package server

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockServer(t *testing.T, maxRows int) (*Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &Server{
		db:      db,
		driver:  "sqlite",
		maxRows: maxRows,
		logger:  slog.New(slog.DiscardHandler),
	}, mock
}

func TestExecuteRejectsNonSelect(t *testing.T) {
	s, _ := mockServer(t, 10)

	for _, stmt := range []string{
		"UPDATE t SET a = 1",
		"insert into t values (1)",
		"  drop table t",
	} {
		_, err := s.execute(context.Background(), stmt)
		assert.ErrorIs(t, err, errNotReadOnly, "statement %q", stmt)
	}
}

func TestExecuteAllowsCTE(t *testing.T) {
	s, mock := mockServer(t, 10)

	mock.ExpectQuery("WITH x AS (SELECT 1 AS n) SELECT n FROM x").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	res, err := s.execute(context.Background(), "WITH x AS (SELECT 1 AS n) SELECT n FROM x")
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutePropagatesQueryError(t *testing.T) {
	s, mock := mockServer(t, 10)

	mock.ExpectQuery("SELECT * FROM broken").
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.execute(context.Background(), "SELECT * FROM broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestExecuteTruncatesAtMaxRows(t *testing.T) {
	s, mock := mockServer(t, 2)

	rows := sqlmock.NewRows([]string{"n"}).AddRow(1).AddRow(2).AddRow(3)
	mock.ExpectQuery("SELECT n FROM t").WillReturnRows(rows)

	res, err := s.execute(context.Background(), "SELECT n FROM t")
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.True(t, res.Truncated)
}

func TestExecuteConvertsBytesToString(t *testing.T) {
	s, mock := mockServer(t, 10)

	rows := sqlmock.NewRows([]string{"name"}).AddRow([]byte("hello"))
	mock.ExpectQuery("SELECT name FROM t").WillReturnRows(rows)

	res, err := s.execute(context.Background(), "SELECT name FROM t")
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Records[0]["name"])
}

func TestExecuteStripsTrailingSemicolon(t *testing.T) {
	s, mock := mockServer(t, 10)

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	_, err := s.execute(context.Background(), "SELECT 1;")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
