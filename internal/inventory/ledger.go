package inventory

import (
	"context"
	"database/sql"

	"mandimart-be/internal/logger"

	"go.uber.org/zap"
)

// Execer is the slice of database/sql shared by *sql.DB and *sql.Tx. The
// checkout and cancellation transactions pass their *sql.Tx here so stock
// moves commit or roll back together with the order rows, while all stock
// mutation still goes through this package.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ledger is the single owner of products.stock.
type Ledger interface {
	Reserve(ctx context.Context, productID uint, quantity int) error
	Release(ctx context.Context, productID uint, quantity int) error
	ReserveTx(ctx context.Context, tx Execer, productID uint, quantity int) error
	ReleaseTx(ctx context.Context, tx Execer, productID uint, quantity int) error
}

type ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) Reserve(ctx context.Context, productID uint, quantity int) error {
	return l.ReserveTx(ctx, l.db, productID, quantity)
}

func (l *ledger) Release(ctx context.Context, productID uint, quantity int) error {
	return l.ReleaseTx(ctx, l.db, productID, quantity)
}

// ReserveTx decrements stock only when enough remains. The conditional
// update is the only guard against oversell: two concurrent reservations
// for the last unit serialize on the row, and the loser matches zero rows.
func (l *ledger) ReserveTx(ctx context.Context, tx Execer, productID uint, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "inventory"),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, quantity, productID)
	if err != nil {
		log.Error("reserve failed", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
		log.Warn("reserve rejected: insufficient stock")
		return ErrInsufficientStock
	}

	log.Debug("stock reserved")
	return nil
}

// ReleaseTx puts quantity back. Idempotency is the caller's concern: the
// cancellation edge runs exactly once per order.
func (l *ledger) ReleaseTx(ctx context.Context, tx Execer, productID uint, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "inventory"),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	_, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, productID)
	if err != nil {
		log.Error("release failed", zap.Error(err))
		return err
	}

	log.Debug("stock released")
	return nil
}
