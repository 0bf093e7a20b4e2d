package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"nexwms-backend/internal/domains/analytics/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) SKUVelocity(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sku_snapshot, SUM(quantity_change * -1)
		FROM transaction_logs
		WHERE timestamp >= $1 AND action IN ('PICK', 'PACK', 'SHIP')
		GROUP BY sku_snapshot`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate velocity: %w", err)
	}
	defer rows.Close()

	velocity := map[string]int{}
	for rows.Next() {
		var sku string
		var moved int
		if err := rows.Scan(&sku, &moved); err != nil {
			return nil, err
		}
		velocity[sku] = moved
	}
	return velocity, rows.Err()
}

func (r *postgresRepository) AllSKUs(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT sku, abc_class FROM items`)
	if err != nil {
		return nil, fmt.Errorf("failed to list SKUs: %w", err)
	}
	defer rows.Close()

	skus := map[string]string{}
	for rows.Next() {
		var sku, class string
		if err := rows.Scan(&sku, &class); err != nil {
			return nil, err
		}
		skus[sku] = class
	}
	return skus, rows.Err()
}

func (r *postgresRepository) DashboardStats(ctx context.Context, lowStockThreshold int) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0), COUNT(*),
		       COUNT(*) FILTER (WHERE quantity < $1)
		FROM inventories`, lowStockThreshold,
	).Scan(&stats.TotalStock, &stats.TotalLocations, &stats.LowStock)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stock: %w", err)
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transaction_logs`).Scan(&stats.RecentMoves); err != nil {
		return nil, fmt.Errorf("failed to count journal: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT location_snapshot, COUNT(*) AS activity
		FROM transaction_logs
		GROUP BY location_snapshot
		ORDER BY activity DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to build heatmap: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry model.HeatmapEntry
		if err := rows.Scan(&entry.Location, &entry.Activity); err != nil {
			return nil, err
		}
		stats.Heatmap = append(stats.Heatmap, entry)
	}
	return stats, rows.Err()
}

func (r *postgresRepository) OperatorStats(ctx context.Context, since time.Time) (*model.OperatorStats, error) {
	stats := &model.OperatorStats{}

	rows, err := r.pool.Query(ctx, `
		SELECT actor, COUNT(*) AS total_actions
		FROM transaction_logs
		GROUP BY actor
		ORDER BY total_actions DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	for rows.Next() {
		var s model.OperatorStat
		var actor *string
		if err := rows.Scan(&actor, &s.TotalActions); err != nil {
			rows.Close()
			return nil, err
		}
		s.Actor = model.DisplayActor(actor)
		stats.Leaderboard = append(stats.Leaderboard, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hourly, err := r.pool.Query(ctx, `
		SELECT date_trunc('hour', timestamp) AS hour, actor, COUNT(*)
		FROM transaction_logs
		WHERE timestamp >= $1 AND action = 'PICK'
		GROUP BY hour, actor
		ORDER BY hour ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hourly picks: %w", err)
	}
	defer hourly.Close()

	for hourly.Next() {
		var h model.HourlyPicks
		var actor *string
		if err := hourly.Scan(&h.Hour, &actor, &h.Count); err != nil {
			return nil, err
		}
		h.Actor = model.DisplayActor(actor)
		stats.HourlyPicks = append(stats.HourlyPicks, h)
	}
	return stats, hourly.Err()
}
