package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexwms-backend/internal/domains/analytics/model"
	catalogrepo "nexwms-backend/internal/domains/catalog/repository"
)

type fakeRepo struct {
	velocity map[string]int
	classes  map[string]string
	stats    *model.DashboardStats

	dashboardCalls int
}

func (f *fakeRepo) SKUVelocity(ctx context.Context, since time.Time) (map[string]int, error) {
	return f.velocity, nil
}

func (f *fakeRepo) AllSKUs(ctx context.Context) (map[string]string, error) {
	return f.classes, nil
}

func (f *fakeRepo) DashboardStats(ctx context.Context, lowStockThreshold int) (*model.DashboardStats, error) {
	f.dashboardCalls++
	return f.stats, nil
}

func (f *fakeRepo) OperatorStats(ctx context.Context, since time.Time) (*model.OperatorStats, error) {
	return &model.OperatorStats{}, nil
}

// fakeCatalog records bulk class updates. Unused methods come from the
// embedded interface and panic if called.
type fakeCatalog struct {
	catalogrepo.Repository
	updated map[string]string
}

func (f *fakeCatalog) UpdateABCClasses(ctx context.Context, classes map[string]string) error {
	f.updated = classes
	return nil
}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (f *fakeCache) Ping(ctx context.Context) error                          { return nil }

func TestRunABCAnalysisReclassifies(t *testing.T) {
	// Ten SKUs, all currently C. The two fastest movers become A, the
	// next three B.
	classes := map[string]string{}
	velocity := map[string]int{}
	names := []string{"S00", "S01", "S02", "S03", "S04", "S05", "S06", "S07", "S08", "S09"}
	for i, sku := range names {
		classes[sku] = "C"
		velocity[sku] = 100 - i*10
	}

	repo := &fakeRepo{velocity: velocity, classes: classes}
	catalog := &fakeCatalog{}
	svc := NewService(repo, catalog, newFakeCache(), 10)

	stats, err := svc.RunABCAnalysis(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.A)
	assert.Equal(t, 3, stats.B)
	assert.Equal(t, 5, stats.C)
	assert.Equal(t, 5, stats.Updated)

	assert.Equal(t, "A", catalog.updated["S00"])
	assert.Equal(t, "A", catalog.updated["S01"])
	assert.Equal(t, "B", catalog.updated["S04"])
	// SKUs already C are not rewritten.
	_, touched := catalog.updated["S09"]
	assert.False(t, touched)
}

func TestRunABCAnalysisNoChangesSkipsWrite(t *testing.T) {
	repo := &fakeRepo{
		velocity: map[string]int{"ONLY": 5},
		classes:  map[string]string{"ONLY": "C"},
	}
	catalog := &fakeCatalog{}
	svc := NewService(repo, catalog, newFakeCache(), 10)

	stats, err := svc.RunABCAnalysis(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Updated)
	assert.Nil(t, catalog.updated)
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	repo := &fakeRepo{stats: &model.DashboardStats{TotalStock: 123, TotalLocations: 4}}
	svc := NewService(repo, &fakeCatalog{}, newFakeCache(), 10)

	first, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 123, first.TotalStock)
	assert.Equal(t, 1, repo.dashboardCalls)

	// Second read hits the cache, not the database.
	second, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 123, second.TotalStock)
	assert.Equal(t, 1, repo.dashboardCalls)
}
