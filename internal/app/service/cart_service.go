package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/pkg/logger"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartEventType string

const (
	CartEventSnapshot CartEventType = "cart.snapshot"
	CartEventRestored CartEventType = "cart.restored"
	CartEventAdded    CartEventType = "cart.added"
	CartEventRemoved  CartEventType = "cart.removed"
	CartEventUndone   CartEventType = "cart.undone"
)

// CartEvent is pushed to cart feed subscribers after every mutation.
type CartEvent struct {
	Type         CartEventType    `json:"type"`
	Items        []model.LineItem `json:"items"`
	HistoryDepth int              `json:"history_depth"`
}

type CartNotifier interface {
	Publish(event CartEvent)
}

type SnapshotScheduler interface {
	Schedule(items []model.LineItem)
}

// CartView is what readers of the cart receive.
type CartView struct {
	Items        []model.LineItem `json:"items"`
	HistoryDepth int              `json:"history_depth"`
	CanUndo      bool             `json:"can_undo"`
	Summary      PriceSummary     `json:"summary"`
}

type CartService interface {
	Restore(ctx context.Context)
	GetCart(coupon string) CartView
	AddToCart(productID uint) (model.LineItem, error)
	RemoveFromCart(productID int) error
	UndoLast() bool
	Checkpoint()
}

type cartService struct {
	mu sync.Mutex

	engine       *CartEngine
	products     ProductService
	snapshotRepo repository.CartSnapshotRepository
	scheduler    SnapshotScheduler
	notifier     CartNotifier
	pricing      PricingRules
}

func NewCartService(
	products ProductService,
	snapshotRepo repository.CartSnapshotRepository,
	scheduler SnapshotScheduler,
	pricing PricingRules,
	notifier ...CartNotifier,
) CartService {
	var n CartNotifier
	if len(notifier) > 0 {
		n = notifier[0]
	}
	return &cartService{
		engine:       NewCartEngine(),
		products:     products,
		snapshotRepo: snapshotRepo,
		scheduler:    scheduler,
		notifier:     n,
		pricing:      pricing,
	}
}

// Restore hydrates the engine from the last saved snapshot. An empty or
// unreadable snapshot leaves the cart empty.
func (s *cartService) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.snapshotRepo.Load(ctx)
	if len(items) == 0 {
		logger.Info("No saved cart to restore")
		return
	}
	s.engine.Hydrate(items)

	logger.Info("Cart restored", map[string]interface{}{
		"count": len(s.engine.items),
	})
	s.publish(CartEventRestored)
}

func (s *cartService) GetCart(coupon string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.engine.Items()
	return CartView{
		Items:        items,
		HistoryDepth: s.engine.HistoryLen(),
		CanUndo:      s.engine.CanUndo(),
		Summary:      s.pricing.Summarize(items, coupon),
	}
}

func (s *cartService) AddToCart(productID uint) (model.LineItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"product_id": productID,
	})

	product, err := s.products.GetProductByID(productID)
	if err != nil {
		return model.LineItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := product.BaseProduct()
	s.engine.Add(base)
	s.changed(CartEventAdded)

	items := s.engine.items
	line := items[model.IndexOf(items, base.ID)]
	logger.Info("Item added to cart", map[string]interface{}{
		"product_id": productID,
		"quantity":   line.Quantity,
	})
	return line, nil
}

func (s *cartService) RemoveFromCart(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.engine.Remove(productID) {
		logger.Warn("Cannot remove: item not in cart", map[string]interface{}{
			"product_id": productID,
		})
		return ErrCartItemNotFound
	}
	s.changed(CartEventRemoved)

	logger.Info("Item removed from cart", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}

func (s *cartService) UndoLast() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.engine.UndoLast() {
		logger.Debug("Nothing to undo")
		return false
	}
	s.changed(CartEventUndone)

	logger.Info("Last cart action undone", map[string]interface{}{
		"history_depth": s.engine.HistoryLen(),
	})
	return true
}

// Checkpoint schedules a save of the current items without mutating them.
// A store that was down at the last mutation converges on the next one.
func (s *cartService) Checkpoint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return
	}
	s.scheduler.Schedule(s.engine.items)
	logger.Debug("Cart checkpoint scheduled", map[string]interface{}{
		"count": len(s.engine.items),
	})
}

// changed must be called with mu held.
func (s *cartService) changed(kind CartEventType) {
	if s.scheduler != nil {
		s.scheduler.Schedule(s.engine.items)
	}
	s.publish(kind)
}

func (s *cartService) publish(kind CartEventType) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(CartEvent{
		Type:         kind,
		Items:        s.engine.Items(),
		HistoryDepth: s.engine.HistoryLen(),
	})
}
