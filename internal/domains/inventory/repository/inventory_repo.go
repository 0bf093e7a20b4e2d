package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexwms-backend/internal/domains/inventory/model"
	"nexwms-backend/pkg/database"
)

const inventoryColumns = `id, item_id, sku, location_code, lot_number, status, expiry_date,
	quantity, reserved_quantity, version, updated_at`

// pickRetries bounds the optimistic blind-pick loop before surfacing a
// version conflict.
const pickRetries = 3

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanInventory(row pgx.Row) (*model.Inventory, error) {
	var inv model.Inventory
	err := row.Scan(&inv.ID, &inv.ItemID, &inv.SKU, &inv.LocationCode, &inv.LotNumber,
		&inv.Status, &inv.ExpiryDate, &inv.Quantity, &inv.ReservedQuantity,
		&inv.Version, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// InsertJournalTx appends one audit record inside the caller's transaction.
// Shared by every domain that mutates stock; the journal has no update or
// delete path anywhere in the codebase.
func InsertJournalTx(ctx context.Context, tx pgx.Tx, action, sku, location string, qtyChange int, lot *string, actor string) error {
	query := `INSERT INTO transaction_logs (action, sku_snapshot, location_snapshot, quantity_change, lot_snapshot, actor)
	VALUES ($1, $2, $3, $4, $5, $6)`

	var actorPtr *string
	if actor != "" {
		actorPtr = &actor
	}

	if _, err := tx.Exec(ctx, query, action, sku, location, qtyChange, lot, actorPtr); err != nil {
		return fmt.Errorf("failed to append journal: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventories WHERE id = $1`, inventoryColumns)

	inv, err := scanInventory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewInventoryNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return inv, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Inventory, int, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.SKU != "" {
		where += fmt.Sprintf(` AND sku = $%d`, idx)
		args = append(args, filter.SKU)
		idx++
	}
	if filter.LocationCode != "" {
		where += fmt.Sprintf(` AND location_code = $%d`, idx)
		args = append(args, filter.LocationCode)
		idx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, filter.Status)
		idx++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM inventories %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inventories: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	query := fmt.Sprintf(`SELECT %s FROM inventories %s
	ORDER BY location_code ASC, sku ASC OFFSET $%d LIMIT $%d`, inventoryColumns, where, idx, idx+1)
	args = append(args, filter.Offset, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventories: %w", err)
	}
	defer rows.Close()

	var result []model.Inventory
	for rows.Next() {
		var inv model.Inventory
		if err := rows.Scan(&inv.ID, &inv.ItemID, &inv.SKU, &inv.LocationCode, &inv.LotNumber,
			&inv.Status, &inv.ExpiryDate, &inv.Quantity, &inv.ReservedQuantity,
			&inv.Version, &inv.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan inventory: %w", err)
		}
		result = append(result, inv)
	}

	return result, total, rows.Err()
}

// Receive upserts the row for the composite key (item, location, lot,
// status) under a row lock, registers serials and journals the inbound in
// one transaction. Two concurrent receives of the same key serialize on the
// row lock and each bump the version once.
func (r *postgresRepository) Receive(ctx context.Context, p ReceiveParams) (*model.Inventory, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Inventory, error) {
		lockQuery := fmt.Sprintf(`SELECT %s FROM inventories
		WHERE item_id = $1 AND location_code = $2
		  AND lot_number IS NOT DISTINCT FROM $3 AND status = $4
		FOR UPDATE`, inventoryColumns)

		inv, err := scanInventory(tx.QueryRow(ctx, lockQuery, p.ItemID, p.LocationCode, p.LotNumber, p.Status))
		switch {
		case err == nil:
			updateQuery := `UPDATE inventories
			SET quantity = quantity + $2,
			    expiry_date = COALESCE($3, expiry_date),
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING quantity, reserved_quantity, expiry_date, version, updated_at`

			err = tx.QueryRow(ctx, updateQuery, inv.ID, p.Quantity, p.ExpiryDate).
				Scan(&inv.Quantity, &inv.ReservedQuantity, &inv.ExpiryDate, &inv.Version, &inv.UpdatedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to increment inventory: %w", err)
			}

		case errors.Is(err, pgx.ErrNoRows):
			insertQuery := fmt.Sprintf(`INSERT INTO inventories
			(item_id, sku, location_code, lot_number, status, expiry_date, quantity, reserved_quantity, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 1)
			RETURNING %s`, inventoryColumns)

			inv, err = scanInventory(tx.QueryRow(ctx, insertQuery,
				p.ItemID, p.SKU, p.LocationCode, p.LotNumber, p.Status, p.ExpiryDate, p.Quantity))
			if err != nil {
				return nil, fmt.Errorf("failed to insert inventory: %w", err)
			}

		default:
			return nil, fmt.Errorf("failed to lock inventory: %w", err)
		}

		for _, serial := range p.Serials {
			_, err := tx.Exec(ctx, `INSERT INTO serial_numbers (serial, item_id, location_code, inventory_id, status)
			VALUES ($1, $2, $3, $4, $5)`,
				serial, p.ItemID, p.LocationCode, inv.ID, model.SerialInStock)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return nil, fmt.Errorf("%w: serial %s already registered", model.ErrSerialMismatch, serial)
				}
				return nil, fmt.Errorf("failed to register serial: %w", err)
			}
		}

		if err := InsertJournalTx(ctx, tx, model.ActionReceive, p.SKU, p.LocationCode, p.Quantity, p.LotNumber, p.Actor); err != nil {
			return nil, err
		}

		return inv, nil
	})
}

// PickBlind decrements a known row on the optimistic path: read, then a
// conditional update guarded by the version column. A lost race re-reads
// and retries with jittered backoff before surfacing a conflict.
func (r *postgresRepository) PickBlind(ctx context.Context, id uuid.UUID, qty int, actor string) (*model.Inventory, error) {
	for attempt := 0; attempt < pickRetries; attempt++ {
		inv, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if inv.Quantity < qty {
			return nil, model.NewNoStockError(qty, inv.Quantity)
		}

		updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Inventory, error) {
			query := fmt.Sprintf(`UPDATE inventories
			SET quantity = quantity - $3,
			    reserved_quantity = GREATEST(reserved_quantity - $3, 0),
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = $1 AND version = $2 AND quantity >= $3
			RETURNING %s`, inventoryColumns)

			row, err := scanInventory(tx.QueryRow(ctx, query, id, inv.Version, qty))
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, model.ErrVersionConflict
				}
				return nil, fmt.Errorf("failed to pick inventory: %w", err)
			}

			if err := InsertJournalTx(ctx, tx, model.ActionPick, row.SKU, row.LocationCode, -qty, row.LotNumber, actor); err != nil {
				return nil, err
			}
			return row, nil
		})

		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, model.ErrVersionConflict) {
			return nil, err
		}

		// Lost the race; back off briefly and retry against the new version.
		time.Sleep(time.Duration(10*(attempt+1))*time.Millisecond +
			time.Duration(rand.Intn(10))*time.Millisecond)
	}

	return nil, fmt.Errorf("%w: id=%s after %d attempts", model.ErrVersionConflict, id, pickRetries)
}

// Move relocates stock: a pick at the source fused with a receive at the
// destination, preserving lot, status and expiry. One MOVE journal entry
// with the "src > dst" location form.
func (r *postgresRepository) Move(ctx context.Context, p MoveParams) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		srcQuery := fmt.Sprintf(`SELECT %s FROM inventories
		WHERE item_id = $1 AND location_code = $2 AND status = $3 AND quantity > 0
		ORDER BY expiry_date ASC NULLS LAST, version ASC
		LIMIT 1
		FOR UPDATE`, inventoryColumns)

		src, err := scanInventory(tx.QueryRow(ctx, srcQuery, p.ItemID, p.Source, model.StatusAvailable))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: no stock of %s at %s", model.ErrNoStock, p.SKU, p.Source)
			}
			return fmt.Errorf("failed to lock source inventory: %w", err)
		}
		if src.Quantity < p.Qty {
			return model.NewNoStockError(p.Qty, src.Quantity)
		}

		_, err = tx.Exec(ctx, `UPDATE inventories
		SET quantity = quantity - $2,
		    reserved_quantity = GREATEST(reserved_quantity - $2, 0),
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1`, src.ID, p.Qty)
		if err != nil {
			return fmt.Errorf("failed to decrement source: %w", err)
		}

		dstQuery := fmt.Sprintf(`SELECT %s FROM inventories
		WHERE item_id = $1 AND location_code = $2
		  AND lot_number IS NOT DISTINCT FROM $3 AND status = $4
		FOR UPDATE`, inventoryColumns)

		dst, err := scanInventory(tx.QueryRow(ctx, dstQuery, p.ItemID, p.Dest, src.LotNumber, src.Status))
		switch {
		case err == nil:
			_, err = tx.Exec(ctx, `UPDATE inventories
			SET quantity = quantity + $2,
			    expiry_date = COALESCE($3, expiry_date),
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = $1`, dst.ID, p.Qty, src.ExpiryDate)
			if err != nil {
				return fmt.Errorf("failed to increment destination: %w", err)
			}

		case errors.Is(err, pgx.ErrNoRows):
			var dstID uuid.UUID
			err = tx.QueryRow(ctx, `INSERT INTO inventories
			(item_id, sku, location_code, lot_number, status, expiry_date, quantity, reserved_quantity, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 1)
			RETURNING id`, p.ItemID, p.SKU, p.Dest, src.LotNumber, src.Status, src.ExpiryDate, p.Qty).Scan(&dstID)
			if err != nil {
				return fmt.Errorf("failed to create destination inventory: %w", err)
			}
			dst = &model.Inventory{ID: dstID}

		default:
			return fmt.Errorf("failed to lock destination inventory: %w", err)
		}

		// Re-point up to qty resident serials to the destination row.
		_, err = tx.Exec(ctx, `UPDATE serial_numbers
		SET inventory_id = $1, location_code = $2, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM serial_numbers
			WHERE inventory_id = $3 AND status = $4
			ORDER BY serial ASC
			LIMIT $5
		)`, dst.ID, p.Dest, src.ID, model.SerialInStock, p.Qty)
		if err != nil {
			return fmt.Errorf("failed to re-point serials: %w", err)
		}

		location := fmt.Sprintf("%s > %s", p.Source, p.Dest)
		return InsertJournalTx(ctx, tx, model.ActionMove, p.SKU, location, p.Qty, src.LotNumber, p.Actor)
	})
}

// Adjust overwrites the quantity after a recount. Reserved quantity is
// clamped so quantity >= reserved_quantity survives downward corrections.
func (r *postgresRepository) Adjust(ctx context.Context, id uuid.UUID, newQty int, actor string) (*model.Inventory, int, error) {
	var delta int
	inv, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Inventory, error) {
		lockQuery := fmt.Sprintf(`SELECT %s FROM inventories WHERE id = $1 FOR UPDATE`, inventoryColumns)
		inv, err := scanInventory(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.NewInventoryNotFoundError(id)
			}
			return nil, fmt.Errorf("failed to lock inventory: %w", err)
		}

		delta = newQty - inv.Quantity

		updateQuery := fmt.Sprintf(`UPDATE inventories
		SET quantity = $2,
		    reserved_quantity = LEAST(reserved_quantity, $2),
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, inventoryColumns)

		updated, err := scanInventory(tx.QueryRow(ctx, updateQuery, id, newQty))
		if err != nil {
			return nil, fmt.Errorf("failed to adjust inventory: %w", err)
		}

		if err := InsertJournalTx(ctx, tx, model.ActionAdjust, inv.SKU, inv.LocationCode, delta, inv.LotNumber, actor); err != nil {
			return nil, err
		}
		return updated, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return inv, delta, nil
}

// AssignLot re-lots a row. When a row for the target lot already exists at
// the same location and status, the source merges into it and is deleted;
// that is the only deletion path for inventory rows.
func (r *postgresRepository) AssignLot(ctx context.Context, id uuid.UUID, lot string, expiry *time.Time, actor string) (*model.Inventory, bool, error) {
	var merged bool
	inv, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Inventory, error) {
		lockQuery := fmt.Sprintf(`SELECT %s FROM inventories WHERE id = $1 FOR UPDATE`, inventoryColumns)
		src, err := scanInventory(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.NewInventoryNotFoundError(id)
			}
			return nil, fmt.Errorf("failed to lock inventory: %w", err)
		}

		targetQuery := fmt.Sprintf(`SELECT %s FROM inventories
		WHERE item_id = $1 AND location_code = $2 AND status = $3
		  AND lot_number IS NOT DISTINCT FROM $4 AND id <> $5
		FOR UPDATE`, inventoryColumns)

		target, err := scanInventory(tx.QueryRow(ctx, targetQuery,
			src.ItemID, src.LocationCode, src.Status, lot, src.ID))
		switch {
		case err == nil:
			merged = true
			mergeQuery := fmt.Sprintf(`UPDATE inventories
			SET quantity = quantity + $2,
			    reserved_quantity = reserved_quantity + $3,
			    expiry_date = COALESCE($4, expiry_date),
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING %s`, inventoryColumns)

			updated, err := scanInventory(tx.QueryRow(ctx, mergeQuery,
				target.ID, src.Quantity, src.ReservedQuantity, expiry))
			if err != nil {
				return nil, fmt.Errorf("failed to merge into target lot: %w", err)
			}

			_, err = tx.Exec(ctx, `UPDATE serial_numbers SET inventory_id = $1, updated_at = NOW()
			WHERE inventory_id = $2`, target.ID, src.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to re-point serials: %w", err)
			}

			if _, err := tx.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, src.ID); err != nil {
				return nil, fmt.Errorf("failed to delete merged row: %w", err)
			}

			note := fmt.Sprintf("merged into lot %s", lot)
			if err := InsertJournalTx(ctx, tx, model.ActionAdjust, src.SKU, src.LocationCode, 0, &note, actor); err != nil {
				return nil, err
			}
			return updated, nil

		case errors.Is(err, pgx.ErrNoRows):
			updateQuery := fmt.Sprintf(`UPDATE inventories
			SET lot_number = $2,
			    expiry_date = COALESCE($3, expiry_date),
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING %s`, inventoryColumns)

			updated, err := scanInventory(tx.QueryRow(ctx, updateQuery, src.ID, lot, expiry))
			if err != nil {
				return nil, fmt.Errorf("failed to assign lot: %w", err)
			}

			if err := InsertJournalTx(ctx, tx, model.ActionAdjust, src.SKU, src.LocationCode, 0, &lot, actor); err != nil {
				return nil, err
			}
			return updated, nil

		default:
			return nil, fmt.Errorf("failed to look up target lot: %w", err)
		}
	})
	if err != nil {
		return nil, false, err
	}
	return inv, merged, nil
}

// SuggestPutaway prefers the location already holding the most of the SKU.
// With no existing stock it derives a stable zone slot from the SKU.
func (r *postgresRepository) SuggestPutaway(ctx context.Context, itemID uuid.UUID, sku string) (string, error) {
	query := `SELECT location_code FROM inventories
	WHERE item_id = $1 AND quantity > 0
	ORDER BY quantity DESC
	LIMIT 1`

	var code string
	err := r.pool.QueryRow(ctx, query, itemID).Scan(&code)
	if err == nil {
		return code, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to suggest putaway: %w", err)
	}

	var sum int
	for _, ch := range sku {
		sum += int(ch)
	}
	return fmt.Sprintf("ZONE-%c-01", 'A'+rune(sum%5)), nil
}

func (r *postgresRepository) ListJournal(ctx context.Context, filter model.JournalFilter) ([]model.JournalEntry, int, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.SKU != "" {
		where += fmt.Sprintf(` AND sku_snapshot = $%d`, idx)
		args = append(args, filter.SKU)
		idx++
	}
	if filter.Action != "" {
		where += fmt.Sprintf(` AND action = $%d`, idx)
		args = append(args, filter.Action)
		idx++
	}
	if filter.Since != nil {
		where += fmt.Sprintf(` AND timestamp >= $%d`, idx)
		args = append(args, *filter.Since)
		idx++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM transaction_logs %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count journal: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := fmt.Sprintf(`SELECT id, timestamp, action, sku_snapshot, location_snapshot, quantity_change, lot_snapshot, actor
	FROM transaction_logs %s
	ORDER BY timestamp DESC OFFSET $%d LIMIT $%d`, where, idx, idx+1)
	args = append(args, filter.Offset, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list journal: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		var e model.JournalEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.SKUSnapshot, &e.LocationSnapshot,
			&e.QuantityChange, &e.LotSnapshot, &e.Actor); err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

func (r *postgresRepository) GetSerial(ctx context.Context, serial string) (*model.SerialNumber, error) {
	query := `SELECT id, serial, item_id, location_code, inventory_id, order_line_id, status, updated_at
	FROM serial_numbers WHERE serial = $1`

	var sn model.SerialNumber
	err := r.pool.QueryRow(ctx, query, serial).
		Scan(&sn.ID, &sn.Serial, &sn.ItemID, &sn.LocationCode, &sn.InventoryID, &sn.OrderLineID, &sn.Status, &sn.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: serial=%s", model.ErrInvalidSerial, serial)
		}
		return nil, fmt.Errorf("failed to get serial: %w", err)
	}
	return &sn, nil
}

func (r *postgresRepository) ListSerialsByInventory(ctx context.Context, inventoryID uuid.UUID) ([]model.SerialNumber, error) {
	query := `SELECT id, serial, item_id, location_code, inventory_id, order_line_id, status, updated_at
	FROM serial_numbers WHERE inventory_id = $1 ORDER BY serial ASC`

	rows, err := r.pool.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list serials: %w", err)
	}
	defer rows.Close()

	var serials []model.SerialNumber
	for rows.Next() {
		var sn model.SerialNumber
		if err := rows.Scan(&sn.ID, &sn.Serial, &sn.ItemID, &sn.LocationCode, &sn.InventoryID,
			&sn.OrderLineID, &sn.Status, &sn.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan serial: %w", err)
		}
		serials = append(serials, sn)
	}

	return serials, rows.Err()
}
