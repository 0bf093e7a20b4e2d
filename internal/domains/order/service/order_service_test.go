package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexwms-backend/internal/domains/order/model"
	"nexwms-backend/internal/domains/order/repository"
)

// fakeRepo walks the order status machine in memory using the same gates
// the postgres repository enforces. Unimplemented methods panic.
type fakeRepo struct {
	repository.Repository

	status string
	order  *model.Order

	pickCalls    int
	shortCalls   int
	shipTracking string

	shortResult *model.ShortPickResult
	waveLines   []model.WaveLine
	waveOrders  int
}

func (f *fakeRepo) Allocate(ctx context.Context, id uuid.UUID, actor string) (*model.AllocateResult, error) {
	if err := model.EnsureAllocatable(f.status); err != nil {
		return nil, err
	}
	f.status = model.StatusAllocated
	return &model.AllocateResult{Status: f.status}, nil
}

func (f *fakeRepo) PickItem(ctx context.Context, orderID uuid.UUID, req model.PickItemRequest, actor string) (string, error) {
	f.pickCalls++
	if err := model.EnsurePickable(f.status); err != nil {
		return "", err
	}
	return f.status, nil
}

func (f *fakeRepo) ShortPick(ctx context.Context, orderID uuid.UUID, req model.ShortPickRequest, actor string) (*model.ShortPickResult, error) {
	f.shortCalls++
	if err := model.EnsureShortPickable(f.status); err != nil {
		return nil, err
	}
	return f.shortResult, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return f.order, nil
}

func (f *fakeRepo) Ship(ctx context.Context, orderID uuid.UUID, trackingNumber, actor string) (*model.Order, error) {
	f.shipTracking = trackingNumber
	shipped := *f.order
	shipped.Status = model.StatusShipped
	shipped.TrackingNumber = &trackingNumber
	return &shipped, nil
}

func (f *fakeRepo) WavePlan(ctx context.Context, orderIDs []uuid.UUID) ([]model.WaveLine, int, error) {
	return f.waveLines, f.waveOrders, nil
}

type recordingBroadcaster struct {
	events []string
}

func (r *recordingBroadcaster) Publish(_ context.Context, eventType string, _ interface{}) {
	r.events = append(r.events, eventType)
}

func TestAllocateRunsOnceOnly(t *testing.T) {
	repo := &fakeRepo{status: model.StatusPending}
	svc := NewService(repo, nil, &recordingBroadcaster{})

	result, err := svc.Allocate(context.Background(), uuid.New(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAllocated, result.Status)

	// A second pass must not double-reserve.
	_, err = svc.Allocate(context.Background(), uuid.New(), "jdoe")
	assert.True(t, model.IsInvalidStateError(err))
}

func TestPickItemRejectedBeforeAllocation(t *testing.T) {
	repo := &fakeRepo{status: model.StatusPending}
	svc := NewService(repo, nil, &recordingBroadcaster{})

	_, err := svc.PickItem(context.Background(), uuid.New(), model.PickItemRequest{
		SKU:          "WIDGET-1",
		LocationCode: "A-01-01",
		Quantity:     2,
	}, "jdoe")
	assert.True(t, model.IsInvalidStateError(err))
}

func TestPickItemValidationSkipsRepository(t *testing.T) {
	repo := &fakeRepo{status: model.StatusAllocated}
	svc := NewService(repo, nil, &recordingBroadcaster{})

	_, err := svc.PickItem(context.Background(), uuid.New(), model.PickItemRequest{
		LocationCode: "A-01-01",
		Quantity:     2,
	}, "jdoe")
	assert.Error(t, err)
	assert.Zero(t, repo.pickCalls)
}

func TestShortPickRejectedAfterShip(t *testing.T) {
	repo := &fakeRepo{status: model.StatusShipped}
	svc := NewService(repo, nil, &recordingBroadcaster{})

	_, err := svc.ShortPick(context.Background(), uuid.New(), model.ShortPickRequest{
		SKU:          "WIDGET-1",
		LocationCode: "A-01-01",
		QtyMissing:   1,
	}, "jdoe")
	assert.True(t, model.IsInvalidStateError(err))
}

func TestShortPickReportsRevertAndAudit(t *testing.T) {
	repo := &fakeRepo{
		status: model.StatusAllocated,
		shortResult: &model.ShortPickResult{
			NewOrderStatus: model.StatusPending,
			CountReference: "CC-SYS-0001",
			Shortage:       3,
		},
	}
	svc := NewService(repo, nil, &recordingBroadcaster{})

	result, err := svc.ShortPick(context.Background(), uuid.New(), model.ShortPickRequest{
		SKU:          "WIDGET-1",
		LocationCode: "A-01-01",
		QtyMissing:   3,
	}, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, result.NewOrderStatus)
	assert.Equal(t, "CC-SYS-0001", result.CountReference)
	assert.Equal(t, 3, result.Shortage)

	// Zero-quantity reports never reach the repository.
	_, err = svc.ShortPick(context.Background(), uuid.New(), model.ShortPickRequest{
		SKU:          "WIDGET-1",
		LocationCode: "A-01-01",
	}, "jdoe")
	assert.Error(t, err)
	assert.Equal(t, 1, repo.shortCalls)
}

func TestShipDerivesTrackingAndBroadcasts(t *testing.T) {
	repo := &fakeRepo{
		status: model.StatusPacked,
		order:  &model.Order{OrderNumber: "ORD-00042", Status: model.StatusPacked},
	}
	bc := &recordingBroadcaster{}
	svc := NewService(repo, nil, bc)

	order, err := svc.Ship(context.Background(), uuid.New(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "1Z000420392", repo.shipTracking)
	assert.Equal(t, model.StatusShipped, order.Status)
	assert.Contains(t, bc.events, "ORDER_SHIPPED")
}

func TestWavePlanBroadcasts(t *testing.T) {
	repo := &fakeRepo{
		waveLines:  []model.WaveLine{{SKU: "WIDGET-1", TotalQty: 5}},
		waveOrders: 2,
	}
	bc := &recordingBroadcaster{}
	svc := NewService(repo, nil, bc)

	plan, err := svc.WavePlan(context.Background(), model.WavePlanRequest{OrderIDs: []uuid.UUID{uuid.New()}}, "jdoe")
	require.NoError(t, err)
	assert.Regexp(t, `^WAVE-\d{4}$`, plan.WaveID)
	assert.Equal(t, 2, plan.OrderCount)
	assert.Len(t, plan.PickList, 1)
	assert.Contains(t, bc.events, "WAVE_GENERATED")
}

func TestCreateBatchRequiresOrders(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, &recordingBroadcaster{})

	_, err := svc.CreateBatch(context.Background(), model.CreateBatchRequest{}, "jdoe")
	assert.ErrorIs(t, err, model.ErrEmptyWave)
}
