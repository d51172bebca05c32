package cart

import (
	"context"
	"database/sql"

	"mandimart-be/internal/inventory"
	"mandimart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, params UpsertParams) (*Line, error)
	Remove(ctx context.Context, buyerID, productID uint) error
	Snapshot(ctx context.Context, buyerID uint) ([]SnapshotLine, error)
	Clear(ctx context.Context, buyerID uint, productIDs []uint) error
	ClearTx(ctx context.Context, tx inventory.Execer, buyerID uint, productIDs []uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, params UpsertParams) (*Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertCartLine"),
		zap.Uint("buyer_id", params.BuyerID),
		zap.Uint("product_id", params.ProductID),
	)

	var line Line
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (buyer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (buyer_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, buyer_id, product_id, quantity, created_at, updated_at
	`, params.BuyerID, params.ProductID, params.Quantity).
		Scan(&line.ID, &line.BuyerID, &line.ProductID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert cart line", zap.Error(err))
		return nil, err
	}

	log.Info("cart line upserted", zap.Int("quantity", line.Quantity))
	return &line, nil
}

// Remove is idempotent. Deleting a line that is already gone is a success.
func (r *repository) Remove(ctx context.Context, buyerID, productID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE buyer_id = $1 AND product_id = $2
	`, buyerID, productID)
	return err
}

func (r *repository) Snapshot(ctx context.Context, buyerID uint) ([]SnapshotLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Snapshot"),
		zap.Uint("buyer_id", buyerID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.product_id,
			p.seller_id,
			p.name,
			p.price,
			c.quantity,
			p.stock,
			p.in_stock
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.buyer_id = $1
		ORDER BY c.created_at
	`, buyerID)
	if err != nil {
		log.Error("snapshot query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lines []SnapshotLine
	for rows.Next() {
		var l SnapshotLine
		if err := rows.Scan(
			&l.ProductID, &l.SellerID, &l.ProductName,
			&l.Price, &l.Quantity, &l.Stock, &l.InStock,
		); err != nil {
			log.Error("snapshot scan failed", zap.Error(err))
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("snapshot loaded", zap.Int("lines", len(lines)))
	return lines, nil
}

func (r *repository) Clear(ctx context.Context, buyerID uint, productIDs []uint) error {
	return r.ClearTx(ctx, r.db, buyerID, productIDs)
}

// ClearTx removes exactly the purchased lines. Checkout runs it on the
// order transaction so a failed checkout leaves the cart untouched and a
// committed one cannot leave purchased lines behind.
func (r *repository) ClearTx(ctx context.Context, tx inventory.Execer, buyerID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, int64(id))
	}

	_, err := tx.ExecContext(ctx, `
		DELETE FROM carts
		WHERE buyer_id = $1 AND product_id = ANY($2)
	`, buyerID, pq.Array(ids))
	return err
}
