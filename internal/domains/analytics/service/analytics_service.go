package service

import (
	"context"
	"fmt"
	"time"

	"nexwms-backend/internal/domains/analytics/model"
	"nexwms-backend/internal/domains/analytics/repository"
	catalogrepo "nexwms-backend/internal/domains/catalog/repository"
	"nexwms-backend/pkg/cache"
	"nexwms-backend/pkg/logger"
)

const (
	defaultWindowDays = 30

	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second

	operatorWindow = 24 * time.Hour
)

type analyticsService struct {
	repo              repository.Repository
	catalog           catalogrepo.Repository
	cache             cache.Cache
	lowStockThreshold int
}

func NewService(repo repository.Repository, catalog catalogrepo.Repository, c cache.Cache, lowStockThreshold int) Service {
	return &analyticsService{
		repo:              repo,
		catalog:           catalog,
		cache:             c,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *analyticsService) RunABCAnalysis(ctx context.Context, windowDays int) (*model.ABCStats, error) {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	velocity, err := s.repo.SKUVelocity(ctx, since)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.AllSKUs(ctx)
	if err != nil {
		return nil, err
	}

	skus := make([]string, 0, len(current))
	for sku := range current {
		skus = append(skus, sku)
	}
	ranked := model.RankSKUs(skus, velocity)

	stats := &model.ABCStats{}
	changed := map[string]string{}
	for i, sku := range ranked {
		tier := model.TierFor(i, len(ranked))
		switch tier {
		case "A":
			stats.A++
		case "B":
			stats.B++
		default:
			stats.C++
		}
		if current[sku] != tier {
			changed[sku] = tier
		}
	}

	if len(changed) > 0 {
		if err := s.catalog.UpdateABCClasses(ctx, changed); err != nil {
			return nil, fmt.Errorf("failed to persist ABC classes: %w", err)
		}
	}
	stats.Updated = len(changed)

	logger.Info("ABC analysis complete", map[string]interface{}{
		"window_days": windowDays,
		"ranked":      len(ranked),
		"updated":     stats.Updated,
	})
	return stats, nil
}

func (s *analyticsService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var cached model.DashboardStats
	if found, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	stats, err := s.repo.DashboardStats(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		logger.Error("failed to cache dashboard stats", err)
	}
	return stats, nil
}

func (s *analyticsService) OperatorStats(ctx context.Context) (*model.OperatorStats, error) {
	return s.repo.OperatorStats(ctx, time.Now().Add(-operatorWindow))
}
