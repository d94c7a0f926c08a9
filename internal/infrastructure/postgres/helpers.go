package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirewire/hirewire-api/internal/domain/repository"
)

// dailyCounts runs a (day, count) aggregate query used by the trend reports.
func dailyCounts(ctx context.Context, pool *pgxpool.Pool, query string, since time.Time) ([]repository.DailyCount, error) {
	rows, err := pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.DailyCount
	for rows.Next() {
		var dc repository.DailyCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// termCounts runs a (term, count) aggregate query used by the facet reports.
func termCounts(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]repository.TermCount, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.TermCount
	for rows.Next() {
		var tc repository.TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
