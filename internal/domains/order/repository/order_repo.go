package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	countingrepo "nexwms-backend/internal/domains/counting/repository"
	invmodel "nexwms-backend/internal/domains/inventory/model"
	inventoryrepo "nexwms-backend/internal/domains/inventory/repository"
	"nexwms-backend/internal/domains/order/model"
	"nexwms-backend/pkg/database"
)

const orderColumns = `id, order_number, status, priority, is_on_hold, batch_id,
	customer_name, customer_address, customer_city, customer_state, customer_zip,
	tracking_number, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.Priority, &o.IsOnHold, &o.BatchID,
		&o.CustomerName, &o.CustomerAddress, &o.CustomerCity, &o.CustomerState, &o.CustomerZip,
		&o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepository) loadLines(ctx context.Context, q database.Querier, orderID uuid.UUID) ([]model.OrderLine, error) {
	rows, err := q.Query(ctx, `
		SELECT l.id, l.order_id, l.item_id, i.sku, l.qty_ordered, l.qty_allocated, l.qty_picked
		FROM order_lines l
		JOIN items i ON i.id = l.item_id
		WHERE l.order_id = $1
		ORDER BY l.id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.SKU,
			&l.QtyOrdered, &l.QtyAllocated, &l.QtyPicked); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// lockOrder reads the order row FOR UPDATE. Locking the order before any
// line or inventory row keeps the pipeline's lock ordering consistent.
func lockOrder(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	return order, nil
}

func (r *postgresRepository) Create(ctx context.Context, order *model.Order, lines []model.OrderLine) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		order.ID = uuid.New()
		order.OrderNumber = fmt.Sprintf("ORD-%05d", 10000+rand.Intn(90000))
		order.Status = model.StatusPending

		err := tx.QueryRow(ctx, `
			INSERT INTO orders (id, order_number, status, priority, is_on_hold,
				customer_name, customer_address, customer_city, customer_state, customer_zip)
			VALUES ($1, $2, $3, $4, false, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at`,
			order.ID, order.OrderNumber, order.Status, order.Priority,
			order.CustomerName, order.CustomerAddress, order.CustomerCity,
			order.CustomerState, order.CustomerZip,
		).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("order number collision, retry: %w", err)
			}
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range lines {
			lines[i].ID = uuid.New()
			lines[i].OrderID = order.ID
			_, err := tx.Exec(ctx, `
				INSERT INTO order_lines (id, order_id, item_id, qty_ordered, qty_allocated, qty_picked)
				VALUES ($1, $2, $3, $4, 0, 0)`,
				lines[i].ID, order.ID, lines[i].ItemID, lines[i].QtyOrdered)
			if err != nil {
				return fmt.Errorf("failed to create order line: %w", err)
			}
		}

		order.Lines = lines
		return nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.Lines, err = r.loadLines(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Order, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.OnHold != nil {
		where += fmt.Sprintf(" AND is_on_hold = $%d", argPos)
		args = append(args, *filter.OnHold)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Status, &o.Priority, &o.IsOnHold, &o.BatchID,
			&o.CustomerName, &o.CustomerAddress, &o.CustomerCity, &o.CustomerState, &o.CustomerZip,
			&o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *postgresRepository) SetHold(ctx context.Context, id uuid.UUID, onHold bool) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `
		UPDATE orders SET is_on_hold = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns, id, onHold))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update hold flag: %w", err)
	}
	return order, nil
}

// Allocate soft-reserves stock for every line, FEFO first. The order stays
// PENDING when stock runs out so a later pass can finish the job.
func (r *postgresRepository) Allocate(ctx context.Context, id uuid.UUID, actor string) (*model.AllocateResult, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.AllocateResult, error) {
		order, err := lockOrder(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if err := model.EnsureAllocatable(order.Status); err != nil {
			return nil, err
		}

		lines, err := r.loadLines(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		for i := range lines {
			needed := lines[i].QtyOrdered - lines[i].QtyAllocated
			if needed <= 0 {
				continue
			}

			// Only good stock is allocatable. Expiring lots go first, id
			// breaks ties so concurrent allocators lock rows in the same order.
			rows, err := tx.Query(ctx, `
				SELECT id, quantity, reserved_quantity, expiry_date
				FROM inventories
				WHERE item_id = $1 AND status = 'AVAILABLE' AND quantity > reserved_quantity
				ORDER BY expiry_date ASC NULLS LAST, id ASC
				FOR UPDATE`, lines[i].ItemID)
			if err != nil {
				return nil, fmt.Errorf("failed to load allocation candidates: %w", err)
			}

			var candidates []invmodel.Inventory
			for rows.Next() {
				var c invmodel.Inventory
				if err := rows.Scan(&c.ID, &c.Quantity, &c.ReservedQuantity, &c.ExpiryDate); err != nil {
					rows.Close()
					return nil, err
				}
				candidates = append(candidates, c)
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return nil, err
			}

			takes, _ := invmodel.PlanTakes(candidates, needed, func(row invmodel.Inventory) int {
				return row.AvailableQuantity()
			})
			for _, t := range takes {
				_, err := tx.Exec(ctx, `
					UPDATE inventories
					SET reserved_quantity = reserved_quantity + $2, version = version + 1
					WHERE id = $1`, t.Row.ID, t.Qty)
				if err != nil {
					return nil, fmt.Errorf("failed to reserve stock: %w", err)
				}
				lines[i].QtyAllocated += t.Qty
			}

			_, err = tx.Exec(ctx,
				`UPDATE order_lines SET qty_allocated = $2 WHERE id = $1`,
				lines[i].ID, lines[i].QtyAllocated)
			if err != nil {
				return nil, fmt.Errorf("failed to update line allocation: %w", err)
			}
		}

		status := model.StatusAllocated
		for _, l := range lines {
			if l.QtyAllocated != l.QtyOrdered {
				status = model.StatusPending
				break
			}
		}
		if _, err := tx.Exec(ctx,
			`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
			id, status); err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}

		result := &model.AllocateResult{Status: status}
		for _, l := range lines {
			result.Lines = append(result.Lines, model.AllocationLine{
				SKU:       l.SKU,
				Ordered:   l.QtyOrdered,
				Allocated: l.QtyAllocated,
			})
		}
		return result, nil
	})
}

// PickItem confirms a scan against one line: hard-decrements the bin,
// releases the matching reservation and advances the order to PICKED once
// every line is complete.
func (r *postgresRepository) PickItem(ctx context.Context, orderID uuid.UUID, req model.PickItemRequest, actor string) (string, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (string, error) {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return "", err
		}
		if err := model.EnsurePickable(order.Status); err != nil {
			return "", err
		}

		var itemID uuid.UUID
		var isSerialized bool
		err = tx.QueryRow(ctx,
			`SELECT id, is_serialized FROM items WHERE sku = $1`, req.SKU,
		).Scan(&itemID, &isSerialized)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: sku=%s", model.ErrLineNotFound, req.SKU)
		}
		if err != nil {
			return "", fmt.Errorf("failed to resolve sku: %w", err)
		}

		var line model.OrderLine
		err = tx.QueryRow(ctx, `
			SELECT id, qty_ordered, qty_allocated, qty_picked
			FROM order_lines
			WHERE order_id = $1 AND item_id = $2`, orderID, itemID,
		).Scan(&line.ID, &line.QtyOrdered, &line.QtyAllocated, &line.QtyPicked)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: sku=%s", model.ErrLineNotFound, req.SKU)
		}
		if err != nil {
			return "", fmt.Errorf("failed to load order line: %w", err)
		}

		if isSerialized {
			if req.Serial == nil || *req.Serial == "" {
				return "", model.ErrSerialRequired
			}
			var serialID uuid.UUID
			var serialLoc string
			err = tx.QueryRow(ctx, `
				SELECT id, location_code FROM serial_numbers
				WHERE serial = $1 AND item_id = $2 AND status = 'IN_STOCK'`,
				*req.Serial, itemID,
			).Scan(&serialID, &serialLoc)
			if errors.Is(err, pgx.ErrNoRows) {
				return "", fmt.Errorf("%w: serial %s unavailable", invmodel.ErrInvalidSerial, *req.Serial)
			}
			if err != nil {
				return "", fmt.Errorf("failed to look up serial: %w", err)
			}
			if serialLoc != req.LocationCode {
				return "", fmt.Errorf("%w: serial %s is at %s, not %s",
					invmodel.ErrInvalidSerial, *req.Serial, serialLoc, req.LocationCode)
			}
			_, err = tx.Exec(ctx, `
				UPDATE serial_numbers
				SET status = 'PACKED', order_line_id = $2, updated_at = NOW()
				WHERE id = $1`, serialID, line.ID)
			if err != nil {
				return "", fmt.Errorf("failed to attach serial: %w", err)
			}
		}

		if line.QtyPicked+req.Quantity > line.QtyAllocated {
			return "", fmt.Errorf("%w: picked=%d, requested=%d, allocated=%d",
				model.ErrOverPick, line.QtyPicked, req.Quantity, line.QtyAllocated)
		}

		invQuery := `
			SELECT id, quantity, lot_number
			FROM inventories
			WHERE item_id = $1 AND location_code = $2 AND quantity > 0 AND status = 'AVAILABLE'`
		invArgs := []interface{}{itemID, req.LocationCode}
		if req.LotNumber != nil {
			invQuery += ` AND lot_number = $3`
			invArgs = append(invArgs, *req.LotNumber)
		}
		invQuery += ` ORDER BY expiry_date ASC NULLS LAST, version ASC LIMIT 1 FOR UPDATE`

		var invID uuid.UUID
		var invQty int
		var invLot *string
		err = tx.QueryRow(ctx, invQuery, invArgs...).Scan(&invID, &invQty, &invLot)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", invmodel.NewNoStockError(req.Quantity, 0)
		}
		if err != nil {
			return "", fmt.Errorf("failed to lock bin: %w", err)
		}
		if invQty < req.Quantity {
			return "", invmodel.NewNoStockError(req.Quantity, invQty)
		}

		_, err = tx.Exec(ctx, `
			UPDATE inventories
			SET quantity = quantity - $2,
			    reserved_quantity = GREATEST(reserved_quantity - $2, 0),
			    version = version + 1
			WHERE id = $1`, invID, req.Quantity)
		if err != nil {
			return "", fmt.Errorf("failed to decrement bin: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE order_lines SET qty_picked = qty_picked + $2 WHERE id = $1`,
			line.ID, req.Quantity)
		if err != nil {
			return "", fmt.Errorf("failed to update line: %w", err)
		}

		var short int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM order_lines WHERE order_id = $1 AND qty_picked < qty_ordered`,
			orderID).Scan(&short)
		if err != nil {
			return "", err
		}
		status := order.Status
		if short == 0 {
			status = model.StatusPicked
			if _, err := tx.Exec(ctx,
				`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
				orderID, status); err != nil {
				return "", fmt.Errorf("failed to update order status: %w", err)
			}
		}

		if err := inventoryrepo.InsertJournalTx(ctx, tx, invmodel.ActionPick,
			req.SKU, req.LocationCode, -req.Quantity, invLot, actor); err != nil {
			return "", err
		}
		return status, nil
	})
}

func (r *postgresRepository) Pack(ctx context.Context, orderID uuid.UUID, actor string) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.StatusPicked {
			return model.NewInvalidStateError(order.Status, "pack")
		}

		if _, err := tx.Exec(ctx,
			`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
			orderID, model.StatusPacked); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		lines, err := r.loadLines(ctx, tx, orderID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if err := inventoryrepo.InsertJournalTx(ctx, tx, invmodel.ActionPack,
				l.SKU, "PACKING_BENCH", 0, nil, actor); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepository) Ship(ctx context.Context, orderID uuid.UUID, trackingNumber, actor string) (*model.Order, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Order, error) {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return nil, err
		}
		if order.Status != model.StatusPicked && order.Status != model.StatusPacked {
			return nil, model.NewInvalidStateError(order.Status, "ship")
		}

		order, err = scanOrder(tx.QueryRow(ctx, `
			UPDATE orders SET status = $2, tracking_number = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING `+orderColumns, orderID, model.StatusShipped, trackingNumber))
		if err != nil {
			return nil, fmt.Errorf("failed to ship order: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE serial_numbers SET status = 'SHIPPED', updated_at = NOW()
			WHERE order_line_id IN (SELECT id FROM order_lines WHERE order_id = $1)`,
			orderID)
		if err != nil {
			return nil, fmt.Errorf("failed to ship serials: %w", err)
		}

		lines, err := r.loadLines(ctx, tx, orderID)
		if err != nil {
			return nil, err
		}
		for _, l := range lines {
			if err := inventoryrepo.InsertJournalTx(ctx, tx, invmodel.ActionShip,
				l.SKU, "OUTBOUND", 0, nil, actor); err != nil {
				return nil, err
			}
		}

		order.Lines = lines
		return order, nil
	})
}

// ShortPick releases the missing reservation, opens an audit count against
// the suspect bin and reverts the order to PENDING when it is no longer
// fully allocated.
func (r *postgresRepository) ShortPick(ctx context.Context, orderID uuid.UUID, req model.ShortPickRequest, actor string) (*model.ShortPickResult, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.ShortPickResult, error) {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return nil, err
		}
		if err := model.EnsureShortPickable(order.Status); err != nil {
			return nil, err
		}

		var itemID uuid.UUID
		err = tx.QueryRow(ctx, `SELECT id FROM items WHERE sku = $1`, req.SKU).Scan(&itemID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sku=%s", model.ErrLineNotFound, req.SKU)
		}
		if err != nil {
			return nil, err
		}

		var lineID uuid.UUID
		var qtyAllocated int
		err = tx.QueryRow(ctx,
			`SELECT id, qty_allocated FROM order_lines WHERE order_id = $1 AND item_id = $2`,
			orderID, itemID).Scan(&lineID, &qtyAllocated)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sku=%s", model.ErrLineNotFound, req.SKU)
		}
		if err != nil {
			return nil, err
		}

		shortage := model.CapShortage(qtyAllocated, req.QtyMissing)

		var invID *uuid.UUID
		var invQty int
		if shortage > 0 {
			if _, err := tx.Exec(ctx,
				`UPDATE order_lines SET qty_allocated = qty_allocated - $2 WHERE id = $1`,
				lineID, shortage); err != nil {
				return nil, fmt.Errorf("failed to release line allocation: %w", err)
			}

			var id uuid.UUID
			err = tx.QueryRow(ctx, `
				SELECT id, quantity FROM inventories
				WHERE item_id = $1 AND location_code = $2 AND status = 'AVAILABLE'
				ORDER BY id ASC LIMIT 1
				FOR UPDATE`, itemID, req.LocationCode).Scan(&id, &invQty)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("failed to lock suspect bin: %w", err)
			}
			if err == nil {
				invID = &id
				if _, err := tx.Exec(ctx, `
					UPDATE inventories
					SET reserved_quantity = GREATEST(reserved_quantity - $2, 0), version = version + 1
					WHERE id = $1`, id, shortage); err != nil {
					return nil, fmt.Errorf("failed to release reservation: %w", err)
				}
			}
		}

		if err := inventoryrepo.InsertJournalTx(ctx, tx, invmodel.ActionAdjust,
			req.SKU, req.LocationCode, 0, nil, actor); err != nil {
			return nil, err
		}

		ref, err := countingrepo.CreateSystemErrorTaskTx(ctx, tx, invID, invQty)
		if err != nil {
			return nil, err
		}

		var underAllocated int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM order_lines WHERE order_id = $1 AND qty_allocated < qty_ordered`,
			orderID).Scan(&underAllocated)
		if err != nil {
			return nil, err
		}

		status := order.Status
		if underAllocated > 0 && status != model.StatusPending {
			status = model.StatusPending
			if _, err := tx.Exec(ctx,
				`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
				orderID, status); err != nil {
				return nil, fmt.Errorf("failed to revert order: %w", err)
			}
			// Serials staged for this order go back on the shelf with the revert.
			if _, err := tx.Exec(ctx, `
				UPDATE serial_numbers SET status = 'IN_STOCK', order_line_id = NULL, updated_at = NOW()
				WHERE status = 'PACKED'
				  AND order_line_id IN (SELECT id FROM order_lines WHERE order_id = $1)`,
				orderID); err != nil {
				return nil, fmt.Errorf("failed to release serials: %w", err)
			}
		}

		return &model.ShortPickResult{
			NewOrderStatus: status,
			CountReference: ref,
			Shortage:       shortage,
		}, nil
	})
}

// WavePlan aggregates pick demand per SKU across eligible orders. Read only;
// the orders are not locked or mutated.
func (r *postgresRepository) WavePlan(ctx context.Context, orderIDs []uuid.UUID) ([]model.WaveLine, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE id = ANY($1) AND status = $2 AND is_on_hold = false
		ORDER BY priority DESC, created_at ASC`, orderIDs, model.StatusAllocated)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load wave orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Status, &o.Priority, &o.IsOnHold, &o.BatchID,
			&o.CustomerName, &o.CustomerAddress, &o.CustomerCity, &o.CustomerState, &o.CustomerZip,
			&o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return nil, 0, model.ErrEmptyWave
	}

	summary := map[string]*model.WaveLine{}
	for _, o := range orders {
		lines, err := r.loadLines(ctx, r.pool, o.ID)
		if err != nil {
			return nil, 0, err
		}
		for _, l := range lines {
			entry, ok := summary[l.SKU]
			if !ok {
				entry = &model.WaveLine{SKU: l.SKU, Location: "Unknown"}
				summary[l.SKU] = entry

				// Anchor the SKU at its first available bin for walk ordering.
				err := r.pool.QueryRow(ctx, `
					SELECT inv.location_code, COALESCE(loc.x, 0), COALESCE(loc.y, 0)
					FROM inventories inv
					LEFT JOIN locations loc ON loc.location_code = inv.location_code
					WHERE inv.item_id = $1 AND inv.quantity > 0 AND inv.status = 'AVAILABLE'
					ORDER BY inv.id ASC LIMIT 1`, l.ItemID,
				).Scan(&entry.Location, &entry.X, &entry.Y)
				if err != nil && !errors.Is(err, pgx.ErrNoRows) {
					return nil, 0, err
				}
			}
			entry.TotalQty += l.QtyAllocated
			entry.Orders = append(entry.Orders, o.OrderNumber)
			entry.OrderIDs = append(entry.OrderIDs, o.ID)
		}
	}

	pickList := make([]model.WaveLine, 0, len(summary))
	for _, entry := range summary {
		pickList = append(pickList, *entry)
	}
	model.SortWaveLines(pickList)
	return pickList, len(orders), nil
}

// CompleteWave force-picks each order's remaining allocation from the first
// available bin. Failures are reported per order, not rolled up.
func (r *postgresRepository) CompleteWave(ctx context.Context, orderIDs []uuid.UUID, actor string) ([]string, error) {
	var results []string
	for _, oid := range orderIDs {
		order, err := r.GetByID(ctx, oid)
		if err != nil {
			results = append(results, fmt.Sprintf("Error picking %s: %v", oid, err))
			continue
		}

		var pickErr error
		for _, line := range order.Lines {
			remaining := line.Remaining()
			if remaining <= 0 {
				continue
			}
			var loc string
			err := r.pool.QueryRow(ctx, `
				SELECT location_code FROM inventories
				WHERE item_id = $1 AND quantity > 0 AND status = 'AVAILABLE'
				ORDER BY id ASC LIMIT 1`, line.ItemID).Scan(&loc)
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			if err != nil {
				pickErr = err
				break
			}
			if _, err := r.PickItem(ctx, oid, model.PickItemRequest{
				SKU:          line.SKU,
				LocationCode: loc,
				Quantity:     remaining,
			}, actor); err != nil {
				pickErr = err
				break
			}
		}

		if pickErr != nil {
			results = append(results, fmt.Sprintf("Error picking %s: %v", order.OrderNumber, pickErr))
		} else {
			results = append(results, fmt.Sprintf("Picked %s", order.OrderNumber))
		}
	}
	return results, nil
}

func (r *postgresRepository) CreateBatch(ctx context.Context, orderIDs []uuid.UUID, picker string) (*model.PickBatch, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.PickBatch, error) {
		var eligible int
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM orders
			WHERE id = ANY($1) AND status = $2 AND batch_id IS NULL`,
			orderIDs, model.StatusAllocated).Scan(&eligible)
		if err != nil {
			return nil, fmt.Errorf("failed to validate batch orders: %w", err)
		}
		if eligible != len(orderIDs) {
			return nil, model.ErrAlreadyBatched
		}

		batch := &model.PickBatch{
			ID:          uuid.New(),
			BatchNumber: fmt.Sprintf("BATCH-%05d", 10000+rand.Intn(90000)),
			Picker:      picker,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO pick_batches (id, batch_number, picker)
			VALUES ($1, $2, $3)
			RETURNING created_at`,
			batch.ID, batch.BatchNumber, batch.Picker).Scan(&batch.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create batch: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE orders SET batch_id = $1, updated_at = NOW() WHERE id = ANY($2)`,
			batch.ID, orderIDs); err != nil {
			return nil, fmt.Errorf("failed to link orders to batch: %w", err)
		}
		return batch, nil
	})
}

func (r *postgresRepository) GetBatch(ctx context.Context, id uuid.UUID) (*model.PickBatch, error) {
	var b model.PickBatch
	err := r.pool.QueryRow(ctx,
		`SELECT id, batch_number, picker, created_at FROM pick_batches WHERE id = $1`, id,
	).Scan(&b.ID, &b.BatchNumber, &b.Picker, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%s", model.ErrBatchNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &b, nil
}

// ClusterTasks aggregates the batch's outstanding demand per SKU, drains
// FEFO bins against it and splits every grab across the waiting totes.
func (r *postgresRepository) ClusterTasks(ctx context.Context, batchID uuid.UUID) ([]model.ClusterTask, error) {
	if _, err := r.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT o.order_number, l.id, l.item_id, i.sku, l.qty_allocated - l.qty_picked
		FROM orders o
		JOIN order_lines l ON l.order_id = o.id
		JOIN items i ON i.id = l.item_id
		WHERE o.batch_id = $1 AND l.qty_allocated > l.qty_picked
		ORDER BY o.created_at ASC, l.id ASC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch demand: %w", err)
	}
	defer rows.Close()

	type skuDemand struct {
		itemID  uuid.UUID
		total   int
		demands []*model.ClusterDemand
	}
	demand := map[string]*skuDemand{}
	var skus []string
	for rows.Next() {
		var orderNumber, sku string
		var lineID, itemID uuid.UUID
		var remaining int
		if err := rows.Scan(&orderNumber, &lineID, &itemID, &sku, &remaining); err != nil {
			return nil, err
		}
		d, ok := demand[sku]
		if !ok {
			d = &skuDemand{itemID: itemID}
			demand[sku] = d
			skus = append(skus, sku)
		}
		d.total += remaining
		d.demands = append(d.demands, &model.ClusterDemand{
			OrderNumber: orderNumber,
			LineID:      lineID,
			Remaining:   remaining,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(skus)

	var tasks []model.ClusterTask
	for _, sku := range skus {
		d := demand[sku]
		needed := d.total

		binRows, err := r.pool.Query(ctx, `
			SELECT location_code, quantity FROM inventories
			WHERE item_id = $1 AND quantity > 0 AND status = 'AVAILABLE'
			ORDER BY expiry_date ASC NULLS LAST, quantity ASC`, d.itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to load bins for %s: %w", sku, err)
		}
		for binRows.Next() {
			if needed <= 0 {
				break
			}
			var loc string
			var qty int
			if err := binRows.Scan(&loc, &qty); err != nil {
				binRows.Close()
				return nil, err
			}
			take := min(qty, needed)
			tasks = append(tasks, model.ClusterTask{
				Location:     loc,
				SKU:          sku,
				TotalQty:     take,
				DistributeTo: model.DistributeTake(take, d.demands),
			})
			needed -= take
		}
		binRows.Close()
		if err := binRows.Err(); err != nil {
			return nil, err
		}
	}

	model.SortClusterTasks(tasks)
	return tasks, nil
}
