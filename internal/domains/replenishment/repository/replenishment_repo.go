package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexwms-backend/internal/domains/replenishment/model"
	"nexwms-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) UpsertConfig(ctx context.Context, cfg *model.LocationConfiguration) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO location_configurations (id, location_code, is_pick_face, item_id, min_qty, max_qty)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (location_code) DO UPDATE
		SET is_pick_face = EXCLUDED.is_pick_face,
		    item_id = EXCLUDED.item_id,
		    min_qty = EXCLUDED.min_qty,
		    max_qty = EXCLUDED.max_qty
		RETURNING id`,
		cfg.ID, cfg.LocationCode, cfg.IsPickFace, cfg.ItemID, cfg.MinQty, cfg.MaxQty,
	).Scan(&cfg.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert pick-face config: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListConfigs(ctx context.Context) ([]model.LocationConfiguration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.location_code, c.is_pick_face, c.item_id, i.sku, c.min_qty, c.max_qty
		FROM location_configurations c
		LEFT JOIN items i ON i.id = c.item_id
		ORDER BY c.location_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pick-face configs: %w", err)
	}
	defer rows.Close()

	var configs []model.LocationConfiguration
	for rows.Next() {
		var c model.LocationConfiguration
		if err := rows.Scan(&c.ID, &c.LocationCode, &c.IsPickFace, &c.ItemID, &c.SKU,
			&c.MinQty, &c.MaxQty); err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (r *postgresRepository) GenerateTasks(ctx context.Context) (int, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int, error) {
		rows, err := tx.Query(ctx, `
			SELECT c.location_code, c.item_id, i.sku, c.min_qty, c.max_qty
			FROM location_configurations c
			JOIN items i ON i.id = c.item_id
			WHERE c.is_pick_face = true AND c.item_id IS NOT NULL
			ORDER BY c.location_code ASC`)
		if err != nil {
			return 0, fmt.Errorf("failed to load pick faces: %w", err)
		}

		type face struct {
			location string
			itemID   uuid.UUID
			sku      string
			minQty   int
			maxQty   int
		}
		var faces []face
		for rows.Next() {
			var f face
			if err := rows.Scan(&f.location, &f.itemID, &f.sku, &f.minQty, &f.maxQty); err != nil {
				rows.Close()
				return 0, err
			}
			faces = append(faces, f)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return 0, err
		}

		created := 0
		for _, f := range faces {
			var current int
			err := tx.QueryRow(ctx, `
				SELECT COALESCE(SUM(quantity), 0) FROM inventories
				WHERE location_code = $1 AND item_id = $2 AND status = 'AVAILABLE'`,
				f.location, f.itemID).Scan(&current)
			if err != nil {
				return 0, fmt.Errorf("failed to measure pick face %s: %w", f.location, err)
			}
			if current >= f.minQty {
				continue
			}

			// One open task per face at a time.
			var pending bool
			err = tx.QueryRow(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM replenishment_tasks
					WHERE status = $1 AND dest_location = $2 AND item_id = $3)`,
				model.TaskPending, f.location, f.itemID).Scan(&pending)
			if err != nil {
				return 0, err
			}
			if pending {
				continue
			}

			// Pull from the fullest reserve bin.
			var source string
			var reserveQty int
			err = tx.QueryRow(ctx, `
				SELECT location_code, quantity FROM inventories
				WHERE item_id = $1 AND quantity > 0 AND status = 'AVAILABLE'
				  AND location_code <> $2
				ORDER BY quantity DESC
				LIMIT 1`, f.itemID, f.location).Scan(&source, &reserveQty)
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			if err != nil {
				return 0, fmt.Errorf("failed to find reserve for %s: %w", f.sku, err)
			}

			toMove := min(f.maxQty-current, reserveQty)
			_, err = tx.Exec(ctx, `
				INSERT INTO replenishment_tasks (id, item_id, source_location, dest_location, qty_to_move, status)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.New(), f.itemID, source, f.location, toMove, model.TaskPending)
			if err != nil {
				return 0, fmt.Errorf("failed to create replenishment task: %w", err)
			}
			created++
		}
		return created, nil
	})
}

func (r *postgresRepository) ClaimTask(ctx context.Context, id uuid.UUID) (*model.ReplenishmentTask, error) {
	var t model.ReplenishmentTask
	err := r.pool.QueryRow(ctx, `
		UPDATE replenishment_tasks t
		SET status = $2
		FROM items i
		WHERE t.id = $1 AND t.status = $3 AND i.id = t.item_id
		RETURNING t.id, t.item_id, i.sku, t.source_location, t.dest_location,
		          t.qty_to_move, t.status, t.created_at`,
		id, model.TaskCompleted, model.TaskPending,
	).Scan(&t.ID, &t.ItemID, &t.SKU, &t.SourceLocation, &t.DestLocation,
		&t.QtyToMove, &t.Status, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either missing or not PENDING; disambiguate for the caller.
		var exists bool
		if checkErr := r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM replenishment_tasks WHERE id = $1)`, id,
		).Scan(&exists); checkErr == nil && exists {
			return nil, model.ErrAlreadyCompleted
		}
		return nil, model.NewTaskNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}
	return &t, nil
}

func (r *postgresRepository) ReopenTask(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE replenishment_tasks SET status = $2 WHERE id = $1`,
		id, model.TaskPending)
	if err != nil {
		return fmt.Errorf("failed to reopen task: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListTasks(ctx context.Context, status string, offset, limit int) ([]model.ReplenishmentTask, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE t.status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM replenishment_tasks t"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := `
		SELECT t.id, t.item_id, i.sku, t.source_location, t.dest_location,
		       t.qty_to_move, t.status, t.created_at
		FROM replenishment_tasks t
		JOIN items i ON i.id = t.item_id` + where +
		fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.ReplenishmentTask
	for rows.Next() {
		var t model.ReplenishmentTask
		if err := rows.Scan(&t.ID, &t.ItemID, &t.SKU, &t.SourceLocation, &t.DestLocation,
			&t.QtyToMove, &t.Status, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}
