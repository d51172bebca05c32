package delivery

import (
	"context"
	"database/sql"

	"mandimart-be/internal/logger"
	"mandimart-be/internal/order"

	"go.uber.org/zap"
)

type Repository interface {
	GetAgent(ctx context.Context, agentID uint) (*Agent, error)
	ToggleAvailability(ctx context.Context, agentID uint) (bool, error)
	Claim(ctx context.Context, agentID, orderID uint) error
	AvailableOrders(ctx context.Context) ([]*order.Order, error)
	AssignedOrders(ctx context.Context, agentID uint) ([]*order.Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAgent(ctx context.Context, agentID uint) (*Agent, error) {
	var a Agent
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, available, active
		FROM agents
		WHERE user_id = $1
	`, agentID).Scan(&a.UserID, &a.Available, &a.Active)

	if err == sql.ErrNoRows {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) ToggleAvailability(ctx context.Context, agentID uint) (bool, error) {
	var available bool
	err := r.db.QueryRowContext(ctx, `
		UPDATE agents
		SET available = NOT available
		WHERE user_id = $1
		RETURNING available
	`, agentID).Scan(&available)

	if err == sql.ErrNoRows {
		return false, ErrAgentNotFound
	}
	if err != nil {
		return false, err
	}

	return available, nil
}

// Claim is one conditional update: it succeeds only while the order is
// PROCESSING and unassigned, so concurrent claims resolve to exactly one
// winner. The follow-up read only classifies why the loser lost.
func (r *repository) Claim(ctx context.Context, agentID, orderID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Claim"),
		zap.Uint("agent_id", agentID),
		zap.Uint("order_id", orderID),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET agent_id = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'PROCESSING' AND agent_id IS NULL
	`, agentID, orderID)
	if err != nil {
		log.Error("claim update failed", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		log.Info("order claimed")
		return nil
	}

	var status string
	var assigned sql.NullInt64
	err = r.db.QueryRowContext(ctx,
		`SELECT status, agent_id FROM orders WHERE id = $1`, orderID,
	).Scan(&status, &assigned)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if assigned.Valid {
		log.Warn("claim lost", zap.Int64("winner", assigned.Int64))
		return ErrAlreadyClaimed
	}
	return ErrNotClaimable
}

func (r *repository) AvailableOrders(ctx context.Context) ([]*order.Order, error) {
	return r.listOrders(ctx, `
		SELECT id, buyer_id, status, address, total, agent_id, created_at, updated_at
		FROM orders
		WHERE status = 'PROCESSING' AND agent_id IS NULL
		ORDER BY created_at
	`)
}

func (r *repository) AssignedOrders(ctx context.Context, agentID uint) ([]*order.Order, error) {
	return r.listOrders(ctx, `
		SELECT id, buyer_id, status, address, total, agent_id, created_at, updated_at
		FROM orders
		WHERE agent_id = $1 AND status IN ('PROCESSING', 'SHIPPED')
		ORDER BY created_at
	`, agentID)
}

func (r *repository) listOrders(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o := &order.Order{}
		if err := rows.Scan(
			&o.ID, &o.BuyerID, &o.Status, &o.Address, &o.Total,
			&o.AgentID, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
