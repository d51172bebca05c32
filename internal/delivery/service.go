package delivery

import (
	"context"

	"mandimart-be/internal/logger"
	"mandimart-be/internal/notification"
	"mandimart-be/internal/order"

	"go.uber.org/zap"
)

type Service interface {
	Claim(ctx context.Context, agentID, orderID uint) error
	ToggleAvailability(ctx context.Context, agentID uint) (bool, error)
	AvailableOrders(ctx context.Context, agentID uint) ([]*order.Order, error)
	AssignedOrders(ctx context.Context, agentID uint) ([]*order.Order, error)
}

type service struct {
	repo     Repository
	notifier notification.Service
}

func NewService(repo Repository, notifier notification.Service) Service {
	return &service{repo: repo, notifier: notifier}
}

// Claim takes ownership of an unassigned PROCESSING order for the agent.
// Claiming does not advance the status; the agent ships via the normal
// transition afterwards.
func (s *service) Claim(ctx context.Context, agentID, orderID uint) error {
	agent, err := s.repo.GetAgent(ctx, agentID)
	if err != nil {
		return err
	}
	if !agent.Active {
		return ErrAgentInactive
	}

	if err := s.repo.Claim(ctx, agentID, orderID); err != nil {
		return err
	}

	s.notifier.AgentAssigned(ctx, agentID, orderID)

	logger.FromCtx(ctx).Info("delivery claimed",
		zap.Uint("agent_id", agentID),
		zap.Uint("order_id", orderID),
	)
	return nil
}

// ToggleAvailability flips the agent's availability flag. Orders the agent
// already claimed are unaffected.
func (s *service) ToggleAvailability(ctx context.Context, agentID uint) (bool, error) {
	return s.repo.ToggleAvailability(ctx, agentID)
}

// AvailableOrders lists the open pool. Agents who marked themselves
// unavailable see an empty pool instead of an error.
func (s *service) AvailableOrders(ctx context.Context, agentID uint) ([]*order.Order, error) {
	agent, err := s.repo.GetAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.Active || !agent.Available {
		return nil, nil
	}

	return s.repo.AvailableOrders(ctx)
}

func (s *service) AssignedOrders(ctx context.Context, agentID uint) ([]*order.Order, error) {
	return s.repo.AssignedOrders(ctx, agentID)
}
