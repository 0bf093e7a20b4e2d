package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexwms-backend/internal/domains/purchasing/model"
	"nexwms-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateSupplier(ctx context.Context, s *model.Supplier) error {
	s.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (id, name, contact_email)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		s.ID, s.Name, s.ContactEmail).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetOrCreateSupplier(ctx context.Context, name, contactEmail string) (*model.Supplier, error) {
	var s model.Supplier
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, contact_email, created_at FROM suppliers WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name, &s.ContactEmail, &s.CreatedAt)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up supplier: %w", err)
	}

	s = model.Supplier{Name: name, ContactEmail: contactEmail}
	if err := r.CreateSupplier(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepository) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, contact_email, created_at FROM suppliers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []model.Supplier
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.CreatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

// CreatePO assigns the next sequential PO number, skipping over collisions
// left by concurrent creators.
func (r *postgresRepository) CreatePO(ctx context.Context, po *model.PurchaseOrder) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var next int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) + 1 FROM purchase_orders`).Scan(&next); err != nil {
			return fmt.Errorf("failed to number purchase order: %w", err)
		}
		for {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM purchase_orders WHERE po_number = $1)`,
				fmt.Sprintf("PO-%05d", next)).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				break
			}
			next++
		}
		po.PONumber = fmt.Sprintf("PO-%05d", next)

		po.ID = uuid.New()
		if po.Status == "" {
			po.Status = model.StatusDraft
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO purchase_orders (id, supplier_id, po_number, status, lines)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`,
			po.ID, po.SupplierID, po.PONumber, po.Status, po.Lines,
		).Scan(&po.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) GetPO(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.pool.QueryRow(ctx, `
		SELECT po.id, po.supplier_id, s.name, po.po_number, po.status, po.lines, po.created_at
		FROM purchase_orders po
		JOIN suppliers s ON s.id = po.supplier_id
		WHERE po.id = $1`, id,
	).Scan(&po.ID, &po.SupplierID, &po.SupplierName, &po.PONumber, &po.Status, &po.Lines, &po.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewPONotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	return &po, nil
}

func (r *postgresRepository) ListPOs(ctx context.Context, status string, offset, limit int) ([]model.PurchaseOrder, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE po.status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM purchase_orders po"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	query := `
		SELECT po.id, po.supplier_id, s.name, po.po_number, po.status, po.lines, po.created_at
		FROM purchase_orders po
		JOIN suppliers s ON s.id = po.supplier_id` + where +
		fmt.Sprintf(" ORDER BY po.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	defer rows.Close()

	var pos []model.PurchaseOrder
	for rows.Next() {
		var po model.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.SupplierID, &po.SupplierName, &po.PONumber,
			&po.Status, &po.Lines, &po.CreatedAt); err != nil {
			return nil, 0, err
		}
		pos = append(pos, po)
	}
	return pos, total, rows.Err()
}

func (r *postgresRepository) RecordReceipt(ctx context.Context, poID uuid.UUID, sku string, qty int) (*model.ReceivePOItemResult, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.ReceivePOItemResult, error) {
		var lines model.POLines
		var status string
		err := tx.QueryRow(ctx,
			`SELECT lines, status FROM purchase_orders WHERE id = $1 FOR UPDATE`, poID,
		).Scan(&lines, &status)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewPONotFoundError(poID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock purchase order: %w", err)
		}

		target := -1
		for i, line := range lines {
			if line.SKU == sku {
				target = i
				break
			}
		}
		if target == -1 {
			return nil, fmt.Errorf("%w: sku=%s", model.ErrItemNotInPO, sku)
		}

		lines[target].Received += qty
		status = lines.DeriveStatus(status)

		if _, err := tx.Exec(ctx,
			`UPDATE purchase_orders SET lines = $2, status = $3 WHERE id = $1`,
			poID, lines, status); err != nil {
			return nil, fmt.Errorf("failed to update purchase order: %w", err)
		}

		return &model.ReceivePOItemResult{
			POStatus:     status,
			LineProgress: fmt.Sprintf("%d/%d", lines[target].Received, lines[target].Qty),
		}, nil
	})
}

func (r *postgresRepository) LowStock(ctx context.Context, threshold int) ([]LowStockRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sku, quantity FROM inventories WHERE quantity < $1 ORDER BY sku ASC`, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock: %w", err)
	}
	defer rows.Close()

	var result []LowStockRow
	for rows.Next() {
		var row LowStockRow
		if err := rows.Scan(&row.SKU, &row.Quantity); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
