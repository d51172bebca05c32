package order

import (
	"context"
	"strings"

	"mandimart-be/internal/cache"
	"mandimart-be/internal/cart"
	"mandimart-be/internal/logger"
	"mandimart-be/internal/notification"
	"mandimart-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, buyerID uint, address string) (*Order, error)
	Transition(ctx context.Context, params TransitionParams) (*Order, error)
	GetOrders(ctx context.Context, callerID uint, role string) ([]*Order, error)
	GetOrderDetail(ctx context.Context, callerID uint, role string, orderID uint) (*Order, error)
	GetStatus(ctx context.Context, callerID uint, role string, orderID uint) (Status, error)
	Track(ctx context.Context, buyerID, orderID uint) (*Tracking, error)
}

type service struct {
	repo     Repository
	carts    cart.Repository
	notifier notification.Service
	cache    *cache.Client
}

func NewService(repo Repository, carts cart.Repository, notifier notification.Service, cache *cache.Client) Service {
	return &service{repo: repo, carts: carts, notifier: notifier, cache: cache}
}

// Checkout converts the buyer's cart into a committed order. The cart
// snapshot carries the current prices, which become the frozen line item
// prices the moment the transaction commits.
func (s *service) Checkout(ctx context.Context, buyerID uint, address string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Uint("buyer_id", buyerID),
	)

	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}

	lines, err := s.carts.Snapshot(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, cart.ErrCartEmpty
	}

	for _, l := range lines {
		if !l.InStock {
			log.Warn("cart holds a disabled product", zap.Uint("product_id", l.ProductID))
			return nil, cart.ErrProductUnavailable
		}
	}

	o, err := s.repo.CreateOrder(ctx, buyerID, address, lines)
	if err != nil {
		return nil, err
	}

	s.cache.SetOrderStatus(ctx, o.ID, string(o.Status))

	// Fan-out after commit, best effort.
	s.notifier.OrderPlaced(ctx, notification.OrderEvent{
		OrderID:   o.ID,
		ToStatus:  string(StatusPending),
		BuyerID:   o.BuyerID,
		SellerIDs: o.SellerIDs(),
		Total:     o.Total,
	})

	log.Info("checkout completed",
		zap.Uint("order_id", o.ID),
		zap.Int("items", len(o.Items)),
	)

	return o, nil
}

// Transition applies one state machine edge on behalf of the caller and
// fans the change out once it is durable. No-op re-application emits
// nothing.
func (s *service) Transition(ctx context.Context, params TransitionParams) (*Order, error) {
	if !ValidStatus(params.Target) {
		return nil, ErrInvalidStatus
	}

	res, err := s.repo.Transition(ctx, params)
	if err != nil {
		return nil, err
	}
	if res.NoOp {
		return res.Order, nil
	}

	s.cache.SetOrderStatus(ctx, res.Order.ID, string(res.Order.Status))

	s.notifier.OrderTransitioned(ctx, notification.OrderEvent{
		OrderID:    res.Order.ID,
		FromStatus: string(res.From),
		ToStatus:   string(res.Order.Status),
		BuyerID:    res.Order.BuyerID,
		SellerIDs:  res.Order.SellerIDs(),
		Total:      res.Order.Total,
	})

	return res.Order, nil
}

func (s *service) GetOrders(ctx context.Context, callerID uint, role string) ([]*Order, error) {
	switch role {
	case utils.RoleSeller:
		return s.repo.ListBySeller(ctx, callerID)
	case utils.RoleAgent:
		return s.repo.ListByAgent(ctx, callerID)
	default:
		return s.repo.ListByBuyer(ctx, callerID)
	}
}

func (s *service) GetOrderDetail(ctx context.Context, callerID uint, role string, orderID uint) (*Order, error) {
	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(o, role, callerID); err != nil {
		return nil, err
	}
	return o, nil
}

// GetStatus serves the lightweight status poll, redis first. Buyers may
// only poll their own orders; the ownership check is a single indexed
// read, so a cache hit still skips the items join.
func (s *service) GetStatus(ctx context.Context, callerID uint, role string, orderID uint) (Status, error) {
	if role == utils.RoleBuyer {
		ownerID, err := s.repo.GetOwner(ctx, orderID)
		if err != nil {
			return "", err
		}
		if ownerID != callerID {
			return "", ErrForbidden
		}
	}

	if cached, ok := s.cache.GetOrderStatus(ctx, orderID); ok {
		return Status(cached), nil
	}

	status, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return "", err
	}

	s.cache.SetOrderStatus(ctx, orderID, string(status))
	return status, nil
}
