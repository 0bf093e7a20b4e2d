package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	invmodel "nexwms-backend/internal/domains/inventory/model"
	inventoryrepo "nexwms-backend/internal/domains/inventory/repository"
	"nexwms-backend/internal/domains/returns/model"
	"nexwms-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, rma *model.RMA, lines []model.RMALine) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rma.ID = uuid.New()
		rma.RMANumber = fmt.Sprintf("RMA-%05d", 10000+rand.Intn(90000))
		rma.Status = model.StatusRequested

		err := tx.QueryRow(ctx, `
			INSERT INTO rmas (id, order_id, rma_number, status, reason)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`,
			rma.ID, rma.OrderID, rma.RMANumber, rma.Status, rma.Reason,
		).Scan(&rma.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create RMA: %w", err)
		}

		for i := range lines {
			lines[i].ID = uuid.New()
			lines[i].RMAID = rma.ID
			_, err := tx.Exec(ctx, `
				INSERT INTO rma_lines (id, rma_id, item_id, qty_to_return, qty_received)
				VALUES ($1, $2, $3, $4, 0)`,
				lines[i].ID, rma.ID, lines[i].ItemID, lines[i].QtyToReturn)
			if err != nil {
				return fmt.Errorf("failed to create RMA line: %w", err)
			}
		}

		rma.Lines = lines
		return nil
	})
}

func (r *postgresRepository) loadLines(ctx context.Context, q database.Querier, rmaID uuid.UUID) ([]model.RMALine, error) {
	rows, err := q.Query(ctx, `
		SELECT l.id, l.rma_id, l.item_id, i.sku, l.qty_to_return, l.qty_received
		FROM rma_lines l
		JOIN items i ON i.id = l.item_id
		WHERE l.rma_id = $1
		ORDER BY l.id ASC`, rmaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load RMA lines: %w", err)
	}
	defer rows.Close()

	var lines []model.RMALine
	for rows.Next() {
		var l model.RMALine
		if err := rows.Scan(&l.ID, &l.RMAID, &l.ItemID, &l.SKU, &l.QtyToReturn, &l.QtyReceived); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RMA, error) {
	var rma model.RMA
	err := r.pool.QueryRow(ctx, `
		SELECT rma.id, rma.order_id, o.order_number, rma.rma_number, rma.status, rma.reason, rma.created_at
		FROM rmas rma
		JOIN orders o ON o.id = rma.order_id
		WHERE rma.id = $1`, id,
	).Scan(&rma.ID, &rma.OrderID, &rma.OrderNumber, &rma.RMANumber, &rma.Status, &rma.Reason, &rma.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewRMANotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get RMA: %w", err)
	}

	rma.Lines, err = r.loadLines(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	return &rma, nil
}

func (r *postgresRepository) List(ctx context.Context, status string, offset, limit int) ([]model.RMA, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE rma.status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM rmas rma"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count RMAs: %w", err)
	}

	query := `
		SELECT rma.id, rma.order_id, o.order_number, rma.rma_number, rma.status, rma.reason, rma.created_at
		FROM rmas rma
		JOIN orders o ON o.id = rma.order_id` + where +
		fmt.Sprintf(" ORDER BY rma.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list RMAs: %w", err)
	}
	defer rows.Close()

	var rmas []model.RMA
	for rows.Next() {
		var rma model.RMA
		if err := rows.Scan(&rma.ID, &rma.OrderID, &rma.OrderNumber, &rma.RMANumber,
			&rma.Status, &rma.Reason, &rma.CreatedAt); err != nil {
			return nil, 0, err
		}
		rmas = append(rmas, rma)
	}
	return rmas, total, rows.Err()
}

// ProcessReceipt restocks every line into QUARANTINE. Returned goods never
// re-enter AVAILABLE stock without an explicit adjustment after inspection.
func (r *postgresRepository) ProcessReceipt(ctx context.Context, id uuid.UUID, locationCode, actor string) (*model.RMA, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.RMA, error) {
		var rma model.RMA
		err := tx.QueryRow(ctx, `
			SELECT id, order_id, rma_number, status, reason, created_at
			FROM rmas WHERE id = $1
			FOR UPDATE`, id,
		).Scan(&rma.ID, &rma.OrderID, &rma.RMANumber, &rma.Status, &rma.Reason, &rma.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewRMANotFoundError(id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock RMA: %w", err)
		}
		if rma.Status == model.StatusReceived {
			return nil, model.ErrAlreadyProcessed
		}

		lines, err := r.loadLines(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		for i := range lines {
			var invID uuid.UUID
			err := tx.QueryRow(ctx, `
				SELECT id FROM inventories
				WHERE item_id = $1 AND location_code = $2
				  AND lot_number IS NULL AND status = $3
				FOR UPDATE`,
				lines[i].ItemID, locationCode, invmodel.StatusQuarantine,
			).Scan(&invID)
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				_, err = tx.Exec(ctx, `
					INSERT INTO inventories (id, item_id, sku, location_code, lot_number, status,
						quantity, reserved_quantity, version)
					VALUES ($1, $2, $3, $4, NULL, $5, $6, 0, 1)`,
					uuid.New(), lines[i].ItemID, lines[i].SKU, locationCode,
					invmodel.StatusQuarantine, lines[i].QtyToReturn)
				if err != nil {
					return nil, fmt.Errorf("failed to restock return: %w", err)
				}
			case err != nil:
				return nil, fmt.Errorf("failed to lock quarantine bin: %w", err)
			default:
				_, err = tx.Exec(ctx, `
					UPDATE inventories
					SET quantity = quantity + $2, version = version + 1
					WHERE id = $1`, invID, lines[i].QtyToReturn)
				if err != nil {
					return nil, fmt.Errorf("failed to restock return: %w", err)
				}
			}

			if _, err := tx.Exec(ctx,
				`UPDATE rma_lines SET qty_received = qty_to_return WHERE id = $1`,
				lines[i].ID); err != nil {
				return nil, fmt.Errorf("failed to update RMA line: %w", err)
			}
			lines[i].QtyReceived = lines[i].QtyToReturn

			// Shipped serials for this item on the original order come back
			// as RETURNED, capped at the returned quantity.
			if _, err := tx.Exec(ctx, `
				UPDATE serial_numbers SET status = 'RETURNED', updated_at = NOW()
				WHERE id IN (
					SELECT sn.id FROM serial_numbers sn
					JOIN order_lines ol ON ol.id = sn.order_line_id
					WHERE ol.order_id = $1 AND sn.item_id = $2 AND sn.status = 'SHIPPED'
					ORDER BY sn.serial ASC
					LIMIT $3
				)`, rma.OrderID, lines[i].ItemID, lines[i].QtyToReturn); err != nil {
				return nil, fmt.Errorf("failed to return serials: %w", err)
			}

			if err := inventoryrepo.InsertJournalTx(ctx, tx, invmodel.ActionReceive,
				lines[i].SKU, locationCode, lines[i].QtyToReturn, nil, actor); err != nil {
				return nil, err
			}
		}

		rma.Status = model.StatusReceived
		if _, err := tx.Exec(ctx,
			`UPDATE rmas SET status = $2 WHERE id = $1`, id, rma.Status); err != nil {
			return nil, fmt.Errorf("failed to complete RMA: %w", err)
		}

		rma.Lines = lines
		return &rma, nil
	})
}
