package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScheduler struct {
	mu        sync.Mutex
	snapshots [][]model.LineItem
}

func (r *recordingScheduler) Schedule(items []model.LineItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, model.CloneItems(items))
}

func (r *recordingScheduler) last() []model.LineItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

type recordingNotifier struct {
	events []CartEvent
}

func (r *recordingNotifier) Publish(event CartEvent) {
	r.events = append(r.events, event)
}

type cartServiceFixture struct {
	service   CartService
	snapshots repository.CartSnapshotRepository
	scheduler *recordingScheduler
	notifier  *recordingNotifier
	apple     model.Product
	grapes    model.Product
}

func setupCartServiceTest(t *testing.T) *cartServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	apple := model.Product{Name: "Apple", Price: decimal.NewFromInt(100), Category: "Fruit"}
	grapes := model.Product{Name: "Grapes", Price: decimal.NewFromInt(150), Category: "Fruit"}
	require.NoError(t, testDB.Create(&apple).Error)
	require.NoError(t, testDB.Create(&grapes).Error)

	snapshots := repository.NewCartSnapshotRepository(repository.NewMemoryBlobStore(), "cart")
	scheduler := &recordingScheduler{}
	notifier := &recordingNotifier{}
	products := NewProductService(repository.NewProductRepository(testDB))

	return &cartServiceFixture{
		service:   NewCartService(products, snapshots, scheduler, DefaultPricingRules(), notifier),
		snapshots: snapshots,
		scheduler: scheduler,
		notifier:  notifier,
		apple:     apple,
		grapes:    grapes,
	}
}

func TestCartService_AddToCart(t *testing.T) {
	f := setupCartServiceTest(t)

	line, err := f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "Apple", line.Name)

	line, err = f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	cart := f.service.GetCart("")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.HistoryDepth)
	assert.True(t, cart.CanUndo)
	assert.Equal(t, "200", cart.Summary.Subtotal.String())
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	f := setupCartServiceTest(t)

	_, err := f.service.AddToCart(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Empty(t, f.service.GetCart("").Items)
	assert.Empty(t, f.scheduler.snapshots)
	assert.Empty(t, f.notifier.events)
}

func TestCartService_GetCart_Pricing(t *testing.T) {
	f := setupCartServiceTest(t)

	_, err := f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)
	_, err = f.service.AddToCart(f.grapes.ID)
	require.NoError(t, err)

	cart := f.service.GetCart("SAVE10")
	assert.Equal(t, "250", cart.Summary.Subtotal.String())
	assert.Equal(t, "25", cart.Summary.ThresholdDiscount.String())
	assert.Equal(t, "25", cart.Summary.CouponDiscount.String())
	assert.Equal(t, "200", cart.Summary.Total.String())

	cart = f.service.GetCart("save10")
	assert.True(t, cart.Summary.CouponDiscount.IsZero())
}

func TestCartService_RemoveFromCart(t *testing.T) {
	f := setupCartServiceTest(t)

	_, err := f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.RemoveFromCart(int(f.apple.ID)))
	assert.Empty(t, f.service.GetCart("").Items)
	assert.Empty(t, f.scheduler.last())
}

func TestCartService_RemoveFromCart_NotFound(t *testing.T) {
	f := setupCartServiceTest(t)

	_, err := f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)
	scheduled := len(f.scheduler.snapshots)

	err = f.service.RemoveFromCart(int(f.grapes.ID))
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	cart := f.service.GetCart("")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.HistoryDepth)
	assert.Len(t, f.scheduler.snapshots, scheduled)
}

func TestCartService_UndoLast(t *testing.T) {
	f := setupCartServiceTest(t)

	_, err := f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)
	_, err = f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.RemoveFromCart(int(f.apple.ID)))

	assert.True(t, f.service.UndoLast())
	cart := f.service.GetCart("")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	assert.True(t, f.service.UndoLast())
	assert.True(t, f.service.UndoLast())
	assert.Empty(t, f.service.GetCart("").Items)

	assert.False(t, f.service.UndoLast())
	assert.False(t, f.service.GetCart("").CanUndo)
}

func TestCartService_SchedulesAndPublishesEveryMutation(t *testing.T) {
	f := setupCartServiceTest(t)

	_, err := f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)
	_, err = f.service.AddToCart(f.grapes.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.RemoveFromCart(int(f.apple.ID)))
	require.True(t, f.service.UndoLast())
	require.True(t, f.service.UndoLast())

	require.Len(t, f.scheduler.snapshots, 5)
	require.Len(t, f.notifier.events, 5)

	types := make([]CartEventType, 0, len(f.notifier.events))
	for _, e := range f.notifier.events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []CartEventType{
		CartEventAdded, CartEventAdded, CartEventRemoved, CartEventUndone, CartEventUndone,
	}, types)

	last := f.notifier.events[4]
	assert.Equal(t, 1, last.HistoryDepth)
	require.Len(t, last.Items, 1)
	assert.Equal(t, int(f.apple.ID), last.Items[0].ID)
	assert.Equal(t, f.scheduler.last(), last.Items)
}

func TestCartService_Restore(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()

	f.snapshots.Save(ctx, []model.LineItem{
		{ID: int(f.apple.ID), Name: "Apple", Price: decimal.NewFromInt(100), Quantity: 3},
	})

	f.service.Restore(ctx)

	cart := f.service.GetCart("")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Zero(t, cart.HistoryDepth)
	assert.False(t, f.service.UndoLast())

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, CartEventRestored, f.notifier.events[0].Type)
	assert.Empty(t, f.scheduler.snapshots)
}

func TestCartService_RestoreEmpty(t *testing.T) {
	f := setupCartServiceTest(t)

	f.service.Restore(context.Background())

	assert.Empty(t, f.service.GetCart("").Items)
	assert.Empty(t, f.notifier.events)
}

func TestCartService_WithSnapshotWriter(t *testing.T) {
	f := setupCartServiceTest(t)
	ctx := context.Background()

	store := repository.NewMemoryBlobStore()
	snapshots := repository.NewCartSnapshotRepository(store, "cart")
	writer := NewSnapshotWriter(snapshots)
	products := f.service.(*cartService).products
	svc := NewCartService(products, snapshots, writer, DefaultPricingRules())

	_, err := svc.AddToCart(f.apple.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(f.grapes.ID)
	require.NoError(t, err)
	writer.Close()

	restored := NewCartService(products, snapshots, nil, DefaultPricingRules())
	restored.Restore(ctx)

	cart := restored.GetCart("")
	require.Len(t, cart.Items, 2)
	assert.Equal(t, int(f.apple.ID), cart.Items[0].ID)
	assert.Equal(t, int(f.grapes.ID), cart.Items[1].ID)
}

func TestCartService_Checkpoint(t *testing.T) {
	f := setupCartServiceTest(t)

	_, err := f.service.AddToCart(f.apple.ID)
	require.NoError(t, err)

	f.service.Checkpoint()

	require.Len(t, f.scheduler.snapshots, 2)
	assert.Equal(t, f.scheduler.snapshots[0], f.scheduler.snapshots[1])
	assert.Len(t, f.notifier.events, 1)
	assert.Equal(t, 1, f.service.GetCart("").HistoryDepth)
}
