package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobmetrics/internal/models"
)

var (
	postingColumns = []string{
		"id", "published_at", "employer_name", "employer_workplace",
		"employment_type", "region", "occupation_label", "number_of_vacancies",
	}
	rawPostingColumns = []string{"publication_date", "occupation_area_id"}
)

// PostingsQuery returns the paginated read of the enriched feed since t.
func (d *DB) PostingsQuery(since time.Time) PageQuery {
	return PageQuery{
		Table:    d.Tables.Postings,
		Columns:  postingColumns,
		Column:   "published_at",
		Since:    since.UTC().Format(time.RFC3339),
		OrderBy:  []string{"published_at", "id"},
		PageSize: d.PageSize,
	}
}

// RawPostingsQuery returns the paginated read of the raw feed since the
// calendar day of t.
func (d *DB) RawPostingsQuery(since time.Time) PageQuery {
	return PageQuery{
		Table:    d.Tables.RawPostings,
		Columns:  rawPostingColumns,
		Column:   "publication_date",
		Since:    since.UTC().Format(time.DateOnly),
		OrderBy:  []string{"publication_date", "id"},
		PageSize: d.PageSize,
	}
}

// ListPostingsSince returns every enriched posting published at or after since.
func (d *DB) ListPostingsSince(ctx context.Context, since time.Time) ([]models.Posting, error) {
	return FetchAll(ctx, d.Pool, d.PostingsQuery(since), scanPosting)
}

// ListRawPostingsSince returns every raw posting published on or after the day of since.
func (d *DB) ListRawPostingsSince(ctx context.Context, since time.Time) ([]models.RawPosting, error) {
	return FetchAll(ctx, d.Pool, d.RawPostingsQuery(since), scanRawPosting)
}

// ListOccupationAreas loads the whole occupation area lookup as id -> label.
func (d *DB) ListOccupationAreas(ctx context.Context) (map[string]string, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s", quoteList([]string{"id", "label"}), quoteTable(d.Tables.OccupationAreas))
	rows, err := d.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%w: occupation areas: %w", ErrFetch, err)
	}
	defer rows.Close()

	areas := make(map[string]string)
	for rows.Next() {
		var (
			id    string
			label *string
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("%w: occupation areas: %w", ErrFetch, err)
		}
		areas[id] = models.Deref(label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: occupation areas: %w", ErrFetch, err)
	}
	return areas, nil
}

func scanPosting(rows pgx.Rows) (models.Posting, error) {
	var (
		id             uuid.UUID
		publishedAt    *time.Time
		employer       *string
		workplace      *string
		employmentType *string
		region         *string
		occupation     *string
		positions      *int
	)
	if err := rows.Scan(&id, &publishedAt, &employer, &workplace, &employmentType, &region, &occupation, &positions); err != nil {
		return models.Posting{}, err
	}

	p := models.Posting{
		ID:             id,
		Employer:       models.Label(models.Deref(employer), models.Deref(workplace)),
		EmploymentType: models.Label(models.Deref(employmentType)),
		Region:         models.Label(models.Deref(region)),
		Occupation:     models.Label(models.Deref(occupation)),
		Positions:      positions,
	}
	if publishedAt != nil {
		p.PublishedAt = publishedAt.UTC()
	}
	return p, nil
}

func scanRawPosting(rows pgx.Rows) (models.RawPosting, error) {
	var (
		publishedOn *time.Time
		areaID      *string
	)
	if err := rows.Scan(&publishedOn, &areaID); err != nil {
		return models.RawPosting{}, err
	}

	r := models.RawPosting{AreaID: areaID}
	if publishedOn != nil {
		r.PublishedOn = *publishedOn
	}
	return r, nil
}
