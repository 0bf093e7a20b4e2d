package repository

import (
	"context"

	"github.com/google/uuid"

	"nexwms-backend/internal/domains/catalog/model"
)

// Repository is the persistence port for items and locations.
type Repository interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.Item, error)
	GetItemByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	GetItemBySKU(ctx context.Context, sku string) (*model.Item, error)
	ListItems(ctx context.Context, search string, offset, limit int) ([]model.Item, int, error)
	UpdateABCClasses(ctx context.Context, classes map[string]string) error

	CreateLocation(ctx context.Context, req model.CreateLocationRequest) (*model.Location, error)
	GetLocationByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	GetLocationByCode(ctx context.Context, code string) (*model.Location, error)
	ListLocations(ctx context.Context, zone string, offset, limit int) ([]model.Location, int, error)
	GetLocationsByCodes(ctx context.Context, codes []string) (map[string]model.Location, error)
}
