package draft

import (
	"context"
	"encoding/json"
	"testing"

	"photobooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCacheRepository struct {
	mock.Mock
	lastPayload []byte
}

func (m *MockCacheRepository) Save(ctx context.Context, draftID string, payload []byte) error {
	m.lastPayload = payload
	args := m.Called(ctx, draftID, payload)
	return args.Error(0)
}

func (m *MockCacheRepository) Load(ctx context.Context, draftID string) ([]byte, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Delete(ctx context.Context, draftID string) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func newTestStore() (*Store, *MockCacheRepository) {
	cache := new(MockCacheRepository)
	cache.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cache.On("Delete", mock.Anything, mock.Anything).Return(nil)
	return NewStore(cache, nil), cache
}

var testService = domain.Service{
	ID: 1, Name: "Wedding Premium", BasePrice: 500000, DiscountValue: 50000, IsActive: true,
}

func TestStore_Create_EmptyDraft(t *testing.T) {
	store, _ := newTestStore()

	d, err := store.Create(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Nil(t, d.Service)
	assert.Equal(t, 1, d.CurrentStep)
	assert.Equal(t, int64(0), d.Totals.TotalPrice)
}

func TestStore_TotalsInvariant_AfterEveryMutation(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	id := d.ID

	d, err := store.SelectService(ctx, id, testService)
	assert.NoError(t, err)
	assert.Equal(t, int64(450000), d.Totals.TotalPrice)

	d, err = store.SetAddon(ctx, id, domain.AddonSelection{
		AddonID: 7, Name: "Extra album", Quantity: 2, PriceAtBooking: 100000,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(650000), d.Totals.TotalPrice)

	// Worked example: 500000 - 50000 + 200000 - 75000 = 575000.
	d, err = store.SetCoupon(ctx, id, "HEMAT75", 75000)
	assert.NoError(t, err)
	assert.Equal(t, int64(575000), d.Totals.TotalPrice)
	assert.Equal(t, int64(75000), d.Totals.CouponDiscount)
}

func TestStore_TotalsClampAtZero(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	_, _ = store.SelectService(ctx, d.ID, testService)
	_, _ = store.SetAddon(ctx, d.ID, domain.AddonSelection{AddonID: 7, Quantity: 2, PriceAtBooking: 100000})

	updated, err := store.SetCoupon(ctx, d.ID, "MEGA", 700000)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), updated.Totals.TotalPrice)
}

func TestStore_SelectDifferentService_ClearsAddonsAndCoupon(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	_, _ = store.SelectService(ctx, d.ID, testService)
	_, _ = store.SetAddon(ctx, d.ID, domain.AddonSelection{AddonID: 7, Quantity: 1, PriceAtBooking: 100000})
	_, _ = store.SetCoupon(ctx, d.ID, "HEMAT", 25000)

	other := domain.Service{ID: 2, Name: "Studio Indoor", BasePrice: 300000}
	updated, err := store.SelectService(ctx, d.ID, other)

	assert.NoError(t, err)
	assert.Empty(t, updated.Addons)
	assert.Empty(t, updated.Coupon.Code)
	assert.Equal(t, int64(0), updated.Coupon.Discount)
	assert.Equal(t, int64(300000), updated.Totals.TotalPrice)
}

func TestStore_ReselectSameService_KeepsAddons(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	_, _ = store.SelectService(ctx, d.ID, testService)
	_, _ = store.SetAddon(ctx, d.ID, domain.AddonSelection{AddonID: 7, Quantity: 1, PriceAtBooking: 100000})

	updated, err := store.SelectService(ctx, d.ID, testService)

	assert.NoError(t, err)
	assert.Len(t, updated.Addons, 1)
}

func TestStore_SetAddon_ClearsAppliedCoupon(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	_, _ = store.SelectService(ctx, d.ID, testService)
	_, _ = store.SetCoupon(ctx, d.ID, "HEMAT", 25000)

	updated, err := store.SetAddon(ctx, d.ID, domain.AddonSelection{AddonID: 3, Quantity: 1, PriceAtBooking: 50000})

	assert.NoError(t, err)
	assert.Empty(t, updated.Coupon.Code)
	assert.Equal(t, int64(0), updated.Totals.CouponDiscount)
}

func TestStore_SetAddon_QuantityBelowOneRemovesLine(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	_, _ = store.SelectService(ctx, d.ID, testService)
	_, _ = store.SetAddon(ctx, d.ID, domain.AddonSelection{AddonID: 3, Quantity: 2, PriceAtBooking: 50000})

	updated, err := store.SetAddon(ctx, d.ID, domain.AddonSelection{AddonID: 3, Quantity: 0})

	assert.NoError(t, err)
	assert.Empty(t, updated.Addons)
	assert.Equal(t, int64(450000), updated.Totals.TotalPrice)
}

func TestStore_PersistedProjection_ExcludesCouponAndProof(t *testing.T) {
	store, cache := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	_, _ = store.SelectService(ctx, d.ID, testService)
	_, _ = store.SetCoupon(ctx, d.ID, "SECRET", 25000)
	_, _ = store.SetProof(ctx, d.ID, "2026/08/30/proof.jpg", "/static/uploads/2026/08/30/proof.jpg")

	var raw map[string]interface{}
	assert.NoError(t, json.Unmarshal(cache.lastPayload, &raw))
	assert.NotContains(t, raw, "coupon")
	assert.NotContains(t, raw, "totals")
	assert.NotContains(t, raw, "proof_path")
	assert.NotContains(t, raw, "payment")
}

func TestStore_Restore_RecomputesAndDropsExcludedFields(t *testing.T) {
	store, cache := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	_, _ = store.SelectService(ctx, d.ID, testService)
	_, _ = store.SetAddon(ctx, d.ID, domain.AddonSelection{AddonID: 7, Quantity: 2, PriceAtBooking: 100000})
	_, _ = store.SetCoupon(ctx, d.ID, "HEMAT75", 75000)
	_, _ = store.SetProof(ctx, d.ID, "2026/08/30/proof.jpg", "/static/uploads/2026/08/30/proof.jpg")
	payload := cache.lastPayload

	// A fresh node: nothing in memory, only the durable cache.
	fresh := new(MockCacheRepository)
	fresh.On("Load", mock.Anything, d.ID).Return(payload, nil)
	restoredStore := NewStore(fresh, nil)

	restored, err := restoredStore.Get(ctx, d.ID)

	assert.NoError(t, err)
	assert.Equal(t, testService.ID, restored.Service.ID)
	assert.Len(t, restored.Addons, 1)
	// Coupon and proof never survive a restore; totals are recomputed fresh.
	assert.Empty(t, restored.Coupon.Code)
	assert.Equal(t, int64(0), restored.Coupon.Discount)
	assert.Empty(t, restored.Payment.ProofPath)
	assert.Equal(t, int64(650000), restored.Totals.TotalPrice)
}

func TestStore_Get_UnknownDraft(t *testing.T) {
	cache := new(MockCacheRepository)
	cache.On("Load", mock.Anything, "missing").Return(nil, nil)
	store := NewStore(cache, nil)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Reset_DeletesCacheAndMemory(t *testing.T) {
	store, cache := newTestStore()
	ctx := context.Background()

	d, _ := store.Create(ctx)
	assert.NoError(t, store.Reset(ctx, d.ID))
	cache.AssertCalled(t, "Delete", mock.Anything, d.ID)

	cache.On("Load", mock.Anything, d.ID).Return(nil, nil)
	_, err := store.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
