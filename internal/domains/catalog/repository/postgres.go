package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexwms-backend/internal/domains/catalog/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.Item, error) {
	query := `INSERT INTO items (sku, name, attributes, is_serialized, abc_class)
	VALUES ($1, $2, $3, $4, 'C')
	RETURNING id, created_at`

	item := model.Item{
		SKU:          req.SKU,
		Name:         req.Name,
		Attributes:   req.Attributes,
		IsSerialized: req.IsSerialized,
		ABCClass:     model.ABCClassC,
	}
	if item.Attributes == nil {
		item.Attributes = model.Attributes{}
	}

	err := r.pool.QueryRow(ctx, query, req.SKU, req.Name, item.Attributes, req.IsSerialized).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicateSKU, req.SKU)
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return &item, nil
}

func (r *postgresRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	query := `SELECT id, sku, name, attributes, is_serialized, abc_class, created_at FROM items WHERE id = $1`

	var item model.Item
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&item.ID, &item.SKU, &item.Name, &item.Attributes, &item.IsSerialized, &item.ABCClass, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%s", model.ErrItemNotFound, id)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

func (r *postgresRepository) GetItemBySKU(ctx context.Context, sku string) (*model.Item, error) {
	query := `SELECT id, sku, name, attributes, is_serialized, abc_class, created_at FROM items WHERE sku = $1`

	var item model.Item
	err := r.pool.QueryRow(ctx, query, sku).
		Scan(&item.ID, &item.SKU, &item.Name, &item.Attributes, &item.IsSerialized, &item.ABCClass, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewItemNotFoundError(sku)
		}
		return nil, fmt.Errorf("failed to get item by sku: %w", err)
	}

	return &item, nil
}

func (r *postgresRepository) ListItems(ctx context.Context, search string, offset, limit int) ([]model.Item, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = `WHERE sku ILIKE $1 OR name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM items %s`, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, sku, name, attributes, is_serialized, abc_class, created_at FROM items %s
	ORDER BY sku ASC OFFSET $%d LIMIT $%d`, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.SKU, &item.Name, &item.Attributes, &item.IsSerialized, &item.ABCClass, &item.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, total, rows.Err()
}

// UpdateABCClasses bulk-assigns velocity classes. SKUs absent from the map
// keep their current class.
func (r *postgresRepository) UpdateABCClasses(ctx context.Context, classes map[string]string) error {
	if len(classes) == 0 {
		return nil
	}

	skus := make([]string, 0, len(classes))
	tiers := make([]string, 0, len(classes))
	for sku, class := range classes {
		skus = append(skus, sku)
		tiers = append(tiers, class)
	}

	query := `UPDATE items SET abc_class = v.class
	FROM (SELECT UNNEST($1::text[]) AS sku, UNNEST($2::text[]) AS class) v
	WHERE items.sku = v.sku`

	if _, err := r.pool.Exec(ctx, query, skus, tiers); err != nil {
		return fmt.Errorf("failed to update abc classes: %w", err)
	}
	return nil
}

func (r *postgresRepository) CreateLocation(ctx context.Context, req model.CreateLocationRequest) (*model.Location, error) {
	query := `INSERT INTO locations (location_code, location_type, zone, x, y)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

	loc := model.Location{
		LocationCode: req.LocationCode,
		LocationType: req.LocationType,
		Zone:         req.Zone,
		X:            req.X,
		Y:            req.Y,
	}

	err := r.pool.QueryRow(ctx, query, req.LocationCode, req.LocationType, req.Zone, req.X, req.Y).
		Scan(&loc.ID, &loc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicateLocation, req.LocationCode)
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return &loc, nil
}

func (r *postgresRepository) GetLocationByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	query := `SELECT id, location_code, location_type, zone, x, y, created_at
	FROM locations WHERE id = $1`

	var loc model.Location
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&loc.ID, &loc.LocationCode, &loc.LocationType, &loc.Zone, &loc.X, &loc.Y, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%s", model.ErrLocationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &loc, nil
}

func (r *postgresRepository) GetLocationByCode(ctx context.Context, code string) (*model.Location, error) {
	query := `SELECT id, location_code, location_type, zone, x, y, created_at
	FROM locations WHERE location_code = $1`

	var loc model.Location
	err := r.pool.QueryRow(ctx, query, code).
		Scan(&loc.ID, &loc.LocationCode, &loc.LocationType, &loc.Zone, &loc.X, &loc.Y, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewLocationNotFoundError(code)
		}
		return nil, fmt.Errorf("failed to get location by code: %w", err)
	}

	return &loc, nil
}

func (r *postgresRepository) ListLocations(ctx context.Context, zone string, offset, limit int) ([]model.Location, int, error) {
	where := ""
	args := []interface{}{}
	if zone != "" {
		where = `WHERE zone = $1`
		args = append(args, zone)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM locations %s`, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, location_code, location_type, zone, x, y, created_at
	FROM locations %s ORDER BY location_code ASC OFFSET $%d LIMIT $%d`, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locs []model.Location
	for rows.Next() {
		var loc model.Location
		if err := rows.Scan(&loc.ID, &loc.LocationCode, &loc.LocationType, &loc.Zone, &loc.X, &loc.Y, &loc.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan location: %w", err)
		}
		locs = append(locs, loc)
	}

	return locs, total, rows.Err()
}

// GetLocationsByCodes loads locations keyed by code. Missing codes are
// simply absent from the map; callers decide whether that is an error.
func (r *postgresRepository) GetLocationsByCodes(ctx context.Context, codes []string) (map[string]model.Location, error) {
	if len(codes) == 0 {
		return map[string]model.Location{}, nil
	}

	query := `SELECT id, location_code, location_type, zone, x, y, created_at
	FROM locations WHERE location_code = ANY($1)`

	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to get locations by codes: %w", err)
	}
	defer rows.Close()

	result := make(map[string]model.Location, len(codes))
	for rows.Next() {
		var loc model.Location
		if err := rows.Scan(&loc.ID, &loc.LocationCode, &loc.LocationType, &loc.Zone, &loc.X, &loc.Y, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		result[loc.LocationCode] = loc
	}

	return result, rows.Err()
}
