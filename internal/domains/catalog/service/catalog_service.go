package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"nexwms-backend/internal/domains/catalog/model"
	"nexwms-backend/internal/domains/catalog/repository"
	"nexwms-backend/internal/infrastructure/label"
)

type catalogService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.Item, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.SKU, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateItem(ctx, req)
}

func (s *catalogService) GetItemByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return s.repo.GetItemByID(ctx, id)
}

func (s *catalogService) GetItemBySKU(ctx context.Context, sku string) (*model.Item, error) {
	return s.repo.GetItemBySKU(ctx, sku)
}

func (s *catalogService) ListItems(ctx context.Context, search string, offset, limit int) ([]model.Item, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListItems(ctx, search, offset, limit)
}

func (s *catalogService) CreateLocation(ctx context.Context, req model.CreateLocationRequest) (*model.Location, error) {
	if !model.IsValidLocationType(req.LocationType) {
		return nil, model.ErrInvalidLocationType
	}

	err := validation.ValidateStruct(&req,
		validation.Field(&req.LocationCode, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Zone, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.X, validation.Min(0)),
		validation.Field(&req.Y, validation.Min(0)),
	)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateLocation(ctx, req)
}

func (s *catalogService) GetLocationByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	return s.repo.GetLocationByID(ctx, id)
}

func (s *catalogService) GetLocationByCode(ctx context.Context, code string) (*model.Location, error) {
	return s.repo.GetLocationByCode(ctx, code)
}

func (s *catalogService) ListLocations(ctx context.Context, zone string, offset, limit int) ([]model.Location, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.repo.ListLocations(ctx, zone, offset, limit)
}

func (s *catalogService) BinLabel(ctx context.Context, id uuid.UUID) ([]byte, error) {
	loc, err := s.repo.GetLocationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return label.BinLabel(loc.Zone, loc.LocationCode, loc.LocationType), nil
}
