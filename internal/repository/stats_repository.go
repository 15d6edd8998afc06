package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Content tables counted on the admin dashboard.
const (
	TableBlogs    = "blogs"
	TableSeoPages = "seo_pages"
	TableBlogFaqs = "blog_faqs"
	TableLeads    = "leads"
)

// StatsRepository counts rows for dashboard widgets.
type StatsRepository interface {
	Count(ctx context.Context, table string) (int64, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates the repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

var countQueries = map[string]string{
	TableBlogs:    `SELECT COUNT(*) FROM blogs`,
	TableSeoPages: `SELECT COUNT(*) FROM seo_pages`,
	TableBlogFaqs: `SELECT COUNT(*) FROM blog_faqs`,
	TableLeads:    `SELECT COUNT(*) FROM leads`,
}

func (r *statsRepository) Count(ctx context.Context, table string) (int64, error) {
	if r.pool == nil {
		return 0, ErrNoDatabase
	}
	query, ok := countQueries[table]
	if !ok {
		return 0, fmt.Errorf("count: unknown table %q", table)
	}
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
