package notification

import (
	"context"
	"fmt"

	"mandimart-be/internal/cache"
	"mandimart-be/internal/logger"
	"mandimart-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the only writer of notification rows. Fan-out is best effort:
// a failed write for one recipient is logged and never rolls back the
// order work that triggered it.
type Service interface {
	OrderPlaced(ctx context.Context, ev OrderEvent)
	OrderTransitioned(ctx context.Context, ev OrderEvent)
	AgentAssigned(ctx context.Context, agentID, orderID uint)

	List(ctx context.Context, recipientID uint, role string, limit int32) ([]*Notification, error)
	MarkRead(ctx context.Context, recipientID uint, role string, ids []uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, recipientID uint, role string) (int64, error)
}

type service struct {
	repo  Repository
	cache *cache.Client
}

func NewService(repo Repository, cache *cache.Client) Service {
	return &service{repo: repo, cache: cache}
}

// OrderPlaced emits the buyer's order confirmation plus a new-order alert
// for each distinct seller with a line item in the order.
func (s *service) OrderPlaced(ctx context.Context, ev OrderEvent) {
	s.deliver(ctx, &Notification{
		RecipientID:   ev.BuyerID,
		RecipientRole: utils.RoleBuyer,
		Type:          TypeOrderConfirmation,
		OrderID:       ev.OrderID,
		Title:         "Order placed",
		Message:       fmt.Sprintf("Your order #%d for ₹%.2f has been placed.", ev.OrderID, ev.Total),
	})

	for _, sellerID := range ev.SellerIDs {
		s.deliver(ctx, &Notification{
			RecipientID:   sellerID,
			RecipientRole: utils.RoleSeller,
			Type:          TypeNewOrder,
			OrderID:       ev.OrderID,
			Title:         "New order",
			Message:       fmt.Sprintf("You have new items to prepare in order #%d.", ev.OrderID),
		})
	}
}

// OrderTransitioned fans a status change out to every interested party.
// The caller never emits no-op transitions, so every event here is a real
// edge.
func (s *service) OrderTransitioned(ctx context.Context, ev OrderEvent) {
	title, message := buyerStatusMessage(ev)
	s.deliver(ctx, &Notification{
		RecipientID:   ev.BuyerID,
		RecipientRole: utils.RoleBuyer,
		Type:          TypeOrderStatus,
		OrderID:       ev.OrderID,
		Title:         title,
		Message:       message,
	})

	if ev.ToStatus == "CANCELLED" {
		for _, sellerID := range ev.SellerIDs {
			s.deliver(ctx, &Notification{
				RecipientID:   sellerID,
				RecipientRole: utils.RoleSeller,
				Type:          TypeOrderStatus,
				OrderID:       ev.OrderID,
				Title:         "Order cancelled",
				Message:       fmt.Sprintf("Order #%d was cancelled. Reserved stock has been restored.", ev.OrderID),
			})
		}
	}
}

func (s *service) AgentAssigned(ctx context.Context, agentID, orderID uint) {
	s.deliver(ctx, &Notification{
		RecipientID:   agentID,
		RecipientRole: utils.RoleAgent,
		Type:          TypeOrderAssigned,
		OrderID:       orderID,
		Title:         "Delivery assigned",
		Message:       fmt.Sprintf("Order #%d is yours to deliver.", orderID),
	})
}

func buyerStatusMessage(ev OrderEvent) (string, string) {
	switch ev.ToStatus {
	case "PROCESSING":
		return "Order confirmed", fmt.Sprintf("Order #%d is being prepared by the seller.", ev.OrderID)
	case "SHIPPED":
		return "Order shipped", fmt.Sprintf("Order #%d is on its way.", ev.OrderID)
	case "DELIVERED":
		return "Order delivered", fmt.Sprintf("Order #%d was delivered successfully.", ev.OrderID)
	case "CANCELLED":
		return "Order cancelled", fmt.Sprintf("Order #%d has been cancelled.", ev.OrderID)
	}
	return "Order update", fmt.Sprintf("Order #%d is now %s.", ev.OrderID, ev.ToStatus)
}

func (s *service) deliver(ctx context.Context, n *Notification) {
	n.ID = uuid.New()

	if err := s.repo.Create(ctx, n); err != nil {
		logger.FromCtx(ctx).Error("failed to deliver notification",
			zap.String("type", string(n.Type)),
			zap.Uint("recipient_id", n.RecipientID),
			zap.String("recipient_role", n.RecipientRole),
			zap.Uint("order_id", n.OrderID),
			zap.Error(err),
		)
		return
	}

	s.cache.InvalidateUnreadCount(ctx, n.RecipientRole, n.RecipientID)
}

func (s *service) List(ctx context.Context, recipientID uint, role string, limit int32) ([]*Notification, error) {
	return s.repo.List(ctx, recipientID, role, limit)
}

func (s *service) MarkRead(ctx context.Context, recipientID uint, role string, ids []uuid.UUID) (int64, error) {
	n, err := s.repo.MarkRead(ctx, recipientID, role, ids)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.cache.InvalidateUnreadCount(ctx, role, recipientID)
	}
	return n, nil
}

func (s *service) UnreadCount(ctx context.Context, recipientID uint, role string) (int64, error) {
	if n, ok := s.cache.GetUnreadCount(ctx, role, recipientID); ok {
		return n, nil
	}

	n, err := s.repo.CountUnread(ctx, recipientID, role)
	if err != nil {
		return 0, err
	}
	s.cache.SetUnreadCount(ctx, role, recipientID, n)

	return n, nil
}
