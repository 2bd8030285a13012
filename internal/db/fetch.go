package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"jobmetrics/internal/metrics"
)

// DefaultPageSize is the number of rows requested per page.
const DefaultPageSize = 1000

// PageQuery describes a range-filtered read of one table: every row where
// Column >= Since, projected onto Columns.
type PageQuery struct {
	Table    string
	Columns  []string
	Column   string
	Since    string
	OrderBy  []string // defaults to Column
	PageSize int      // defaults to DefaultPageSize
}

func (q PageQuery) size() int {
	if q.PageSize <= 0 {
		return DefaultPageSize
	}
	return q.PageSize
}

// SQL renders the page statement. $1 is the lower bound, $2 the limit and $3
// the offset.
func (q PageQuery) SQL() string {
	order := q.OrderBy
	if len(order) == 0 {
		order = []string{q.Column}
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s >= $1 ORDER BY %s LIMIT $2 OFFSET $3",
		quoteList(q.Columns), quoteTable(q.Table), quote(q.Column), quoteList(order))
}

// FetchAll reads every row matching q, page by page, until a page comes back
// short. Pages are fetched sequentially. Any page error discards the rows read
// so far and is returned as a *FetchError.
func FetchAll[T any](ctx context.Context, db Querier, q PageQuery, scan func(pgx.Rows) (T, error)) ([]T, error) {
	size := q.size()
	stmt := q.SQL()

	var out []T
	for offset := 0; ; offset += size {
		page, err := fetchPage(ctx, db, stmt, q.Since, size, offset, scan)
		if err != nil {
			return nil, &FetchError{Table: q.Table, Offset: offset, Err: err}
		}
		metrics.ObservePage(q.Table, len(page))

		out = append(out, page...)
		if len(page) < size {
			return out, nil
		}
	}
}

func fetchPage[T any](ctx context.Context, db Querier, stmt, since string, limit, offset int, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, stmt, since, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := make([]T, 0, limit)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		page = append(page, v)
	}
	return page, rows.Err()
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// quoteTable handles schema-qualified names such as "public.job_ads".
func quoteTable(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return strings.Join(quoted, ", ")
}
