package order

import (
	"context"
	"database/sql"
	"fmt"

	"mandimart-be/internal/cart"
	"mandimart-be/internal/inventory"
	"mandimart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, buyerID uint, address string, lines []cart.SnapshotLine) (*Order, error)
	Transition(ctx context.Context, params TransitionParams) (*TransitionResult, error)
	GetDetail(ctx context.Context, orderID uint) (*Order, error)
	GetStatus(ctx context.Context, orderID uint) (Status, error)
	GetOwner(ctx context.Context, orderID uint) (uint, error)
	ListByBuyer(ctx context.Context, buyerID uint) ([]*Order, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]*Order, error)
	ListByAgent(ctx context.Context, agentID uint) ([]*Order, error)
}

type repository struct {
	db     *sql.DB
	ledger inventory.Ledger
	carts  cart.Repository
}

func NewRepository(db *sql.DB, ledger inventory.Ledger, carts cart.Repository) Repository {
	return &repository{db: db, ledger: ledger, carts: carts}
}

// CreateOrder is the checkout transaction: reserve stock for every line,
// insert the order and its frozen items, and delete the consumed cart
// lines. Whole-or-nothing: the first failed reservation rolls everything
// back, including reservations already taken for earlier lines.
func (r *repository) CreateOrder(ctx context.Context, buyerID uint, address string, lines []cart.SnapshotLine) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Uint("buyer_id", buyerID),
		zap.Int("line_count", len(lines)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var total float64
	for _, l := range lines {
		if err := r.ledger.ReserveTx(ctx, tx, l.ProductID, l.Quantity); err != nil {
			log.Warn("reservation failed, aborting checkout",
				zap.Uint("product_id", l.ProductID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("reserve product %d: %w", l.ProductID, err)
		}
		total += l.Price * float64(l.Quantity)
	}

	o := &Order{
		BuyerID: buyerID,
		Status:  StatusPending,
		Address: address,
		Total:   total,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (buyer_id, status, address, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, buyerID, o.Status, address, total).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	productIDs := make([]uint, 0, len(lines))
	for _, l := range lines {
		item := Item{
			OrderID:     o.ID,
			ProductID:   l.ProductID,
			SellerID:    l.SellerID,
			ProductName: l.ProductName,
			Price:       l.Price,
			Quantity:    l.Quantity,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, seller_id, product_name, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, item.OrderID, item.ProductID, item.SellerID, item.ProductName, item.Price, item.Quantity).
			Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Uint("product_id", l.ProductID),
				zap.Error(err),
			)
			return nil, err
		}
		o.Items = append(o.Items, item)
		productIDs = append(productIDs, l.ProductID)
	}

	if err := r.carts.ClearTx(ctx, tx, buyerID, productIDs); err != nil {
		log.Error("failed to clear cart lines", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Float64("total", total),
	)

	return o, nil
}

// Transition serializes per order via FOR UPDATE so concurrent requests
// observe a consistent prior state. Re-applying the current status is a
// no-op success. Cancellation releases every line's stock inside the same
// transaction.
func (r *repository) Transition(ctx context.Context, params TransitionParams) (*TransitionResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Transition"),
		zap.Uint("order_id", params.OrderID),
		zap.String("role", params.Role),
		zap.Uint("caller_id", params.CallerID),
		zap.String("target", string(params.Target)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	o := &Order{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, buyer_id, status, address, total, agent_id, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, params.OrderID).
		Scan(&o.ID, &o.BuyerID, &o.Status, &o.Address, &o.Total, &o.AgentID, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to lock order row", zap.Error(err))
		return nil, err
	}

	o.Items, err = loadItems(ctx, tx, o.ID)
	if err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}

	if err := authorize(o, params.Role, params.CallerID); err != nil {
		log.Warn("transition forbidden")
		return nil, err
	}

	from := o.Status
	if from == params.Target {
		// Double-submit of the same edge; succeed without an event.
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		committed = true
		log.Debug("transition no-op")
		return &TransitionResult{Order: o, From: from, NoOp: true}, nil
	}

	if !AllowedFor(params.Role, from, params.Target) {
		log.Warn("edge not permitted", zap.String("from", string(from)))
		return nil, ErrInvalidTransition
	}

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	if col := timestampColumn(params.Target); col != "" {
		query = fmt.Sprintf(
			`UPDATE orders SET status = $1, updated_at = NOW(), %s = NOW() WHERE id = $2`,
			col,
		)
	}
	if _, err := tx.ExecContext(ctx, query, params.Target, o.ID); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return nil, err
	}

	if params.Target == StatusCancelled {
		for _, it := range o.Items {
			if err := r.ledger.ReleaseTx(ctx, tx, it.ProductID, it.Quantity); err != nil {
				log.Error("failed to release stock on cancellation",
					zap.Uint("product_id", it.ProductID),
					zap.Error(err),
				)
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transition", zap.Error(err))
		return nil, err
	}
	committed = true

	o.Status = params.Target
	log.Info("order transitioned",
		zap.String("from", string(from)),
		zap.String("to", string(params.Target)),
	)

	return &TransitionResult{Order: o, From: from}, nil
}

// authorize checks the caller's relationship to the order: buyers own it,
// agents are assigned to it, sellers hold at least one line item. Admin
// passes.
func authorize(o *Order, role string, callerID uint) error {
	switch role {
	case "ADMIN":
		return nil
	case "BUYER":
		if o.BuyerID == callerID {
			return nil
		}
	case "SELLER":
		if o.OwnedBySeller(callerID) {
			return nil
		}
	case "AGENT":
		if o.AgentID != nil && *o.AgentID == callerID {
			return nil
		}
	}
	return ErrForbidden
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadItems(ctx context.Context, q queryer, orderID uint) ([]Item, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, order_id, product_id, seller_id, product_name, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.SellerID,
			&it.ProductName, &it.Price, &it.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetDetail(ctx context.Context, orderID uint) (*Order, error) {
	o := &Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, buyer_id, status, address, total, agent_id,
		       created_at, updated_at, processing_at, shipped_at, delivered_at, cancelled_at
		FROM orders
		WHERE id = $1
	`, orderID).
		Scan(&o.ID, &o.BuyerID, &o.Status, &o.Address, &o.Total, &o.AgentID,
			&o.CreatedAt, &o.UpdatedAt, &o.ProcessingAt, &o.ShippedAt, &o.DeliveredAt, &o.CancelledAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	o.Items, err = loadItems(ctx, r.db, o.ID)
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) GetStatus(ctx context.Context, orderID uint) (Status, error) {
	var s Status
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1`, orderID,
	).Scan(&s)
	if err == sql.ErrNoRows {
		return "", ErrOrderNotFound
	}
	return s, err
}

func (r *repository) GetOwner(ctx context.Context, orderID uint) (uint, error) {
	var buyerID uint
	err := r.db.QueryRowContext(ctx,
		`SELECT buyer_id FROM orders WHERE id = $1`, orderID,
	).Scan(&buyerID)
	if err == sql.ErrNoRows {
		return 0, ErrOrderNotFound
	}
	return buyerID, err
}

func (r *repository) ListByBuyer(ctx context.Context, buyerID uint) ([]*Order, error) {
	return r.list(ctx, `
		SELECT id, buyer_id, status, address, total, agent_id, created_at, updated_at
		FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`, buyerID)
}

func (r *repository) ListBySeller(ctx context.Context, sellerID uint) ([]*Order, error) {
	return r.list(ctx, `
		SELECT DISTINCT o.id, o.buyer_id, o.status, o.address, o.total, o.agent_id, o.created_at, o.updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.seller_id = $1
		ORDER BY o.created_at DESC
	`, sellerID)
}

func (r *repository) ListByAgent(ctx context.Context, agentID uint) ([]*Order, error) {
	return r.list(ctx, `
		SELECT id, buyer_id, status, address, total, agent_id, created_at, updated_at
		FROM orders
		WHERE agent_id = $1
		ORDER BY created_at DESC
	`, agentID)
}

func (r *repository) list(ctx context.Context, query string, arg any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
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
