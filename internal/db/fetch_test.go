package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanID(rows pgx.Rows) (int, error) {
	var id int
	err := rows.Scan(&id)
	return id, err
}

func idRows(from, n int) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id"})
	for i := 0; i < n; i++ {
		rows.AddRow(from + i)
	}
	return rows
}

var testQuery = PageQuery{
	Table:   "job_ads",
	Columns: []string{"id"},
	Column:  "published_at",
	Since:   "2024-01-01T00:00:00Z",
}

func TestPageQuery_SQL(t *testing.T) {
	q := PageQuery{
		Table:   "public.job_ads",
		Columns: []string{"id", "published_at"},
		Column:  "published_at",
		OrderBy: []string{"published_at", "id"},
	}
	assert.Equal(t,
		`SELECT "id", "published_at" FROM "public"."job_ads" WHERE "published_at" >= $1 ORDER BY "published_at", "id" LIMIT $2 OFFSET $3`,
		q.SQL())

	q.OrderBy = nil
	assert.Contains(t, q.SQL(), `ORDER BY "published_at" LIMIT`)
}

func TestPageQuery_QuotesIdentifiers(t *testing.T) {
	q := PageQuery{Table: `ads"; DROP TABLE x; --`, Columns: []string{"id"}, Column: "ts"}
	assert.Contains(t, q.SQL(), `FROM "ads""; DROP TABLE x; --"`)
}

func TestFetchAll_ReadsUntilShortPage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	stmt := regexp.QuoteMeta(testQuery.SQL())
	for page := 0; page < 3; page++ {
		mock.ExpectQuery(stmt).
			WithArgs(testQuery.Since, 1000, page*1000).
			WillReturnRows(idRows(page*1000, 1000))
	}
	mock.ExpectQuery(stmt).
		WithArgs(testQuery.Since, 1000, 3000).
		WillReturnRows(idRows(3000, 137))

	ids, err := FetchAll(context.Background(), mock, testQuery, scanID)

	require.NoError(t, err)
	assert.Len(t, ids, 3137)
	assert.Equal(t, 0, ids[0])
	assert.Equal(t, 3136, ids[3136])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_StopsOnEmptyPage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	stmt := regexp.QuoteMeta(testQuery.SQL())
	mock.ExpectQuery(stmt).
		WithArgs(testQuery.Since, 1000, 0).
		WillReturnRows(idRows(0, 1000))
	mock.ExpectQuery(stmt).
		WithArgs(testQuery.Since, 1000, 1000).
		WillReturnRows(idRows(0, 0))

	ids, err := FetchAll(context.Background(), mock, testQuery, scanID)

	require.NoError(t, err)
	assert.Len(t, ids, 1000)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_EmptyTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(testQuery.SQL())).
		WithArgs(testQuery.Since, 1000, 0).
		WillReturnRows(idRows(0, 0))

	ids, err := FetchAll(context.Background(), mock, testQuery, scanID)

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_CustomPageSize(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	q := testQuery
	q.PageSize = 2
	stmt := regexp.QuoteMeta(q.SQL())
	mock.ExpectQuery(stmt).WithArgs(q.Since, 2, 0).WillReturnRows(idRows(0, 2))
	mock.ExpectQuery(stmt).WithArgs(q.Since, 2, 2).WillReturnRows(idRows(2, 1))

	ids, err := FetchAll(context.Background(), mock, q, scanID)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_PageErrorAbortsWithoutPartialResult(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	backendErr := errors.New("connection reset")
	stmt := regexp.QuoteMeta(testQuery.SQL())
	mock.ExpectQuery(stmt).
		WithArgs(testQuery.Since, 1000, 0).
		WillReturnRows(idRows(0, 1000))
	mock.ExpectQuery(stmt).
		WithArgs(testQuery.Since, 1000, 1000).
		WillReturnError(backendErr)

	ids, err := FetchAll(context.Background(), mock, testQuery, scanID)

	require.Error(t, err)
	assert.Nil(t, ids)
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, backendErr)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "job_ads", fetchErr.Table)
	assert.Equal(t, 1000, fetchErr.Offset)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_RowErrorAborts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rowErr := errors.New("bad row")
	mock.ExpectQuery(regexp.QuoteMeta(testQuery.SQL())).
		WithArgs(testQuery.Since, 1000, 0).
		WillReturnRows(idRows(0, 3).RowError(1, rowErr))

	ids, err := FetchAll(context.Background(), mock, testQuery, scanID)

	assert.Nil(t, ids)
	assert.ErrorIs(t, err, rowErr)
	assert.ErrorIs(t, err, ErrFetch)
}
