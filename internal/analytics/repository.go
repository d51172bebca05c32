package analytics

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	SellerOrderEarnings(ctx context.Context, sellerID uint, since time.Time) ([]OrderEarnings, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SellerOrderEarnings(ctx context.Context, sellerID uint, since time.Time) ([]OrderEarnings, error) {
	query := `
		SELECT o.id, o.status, o.created_at, SUM(oi.price * oi.quantity)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.seller_id = $1
	`
	args := []any{sellerID}

	if !since.IsZero() {
		query += ` AND o.created_at >= $2`
		args = append(args, since)
	}

	query += `
		GROUP BY o.id, o.status, o.created_at
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderEarnings
	for rows.Next() {
		var e OrderEarnings
		if err := rows.Scan(&e.OrderID, &e.Status, &e.CreatedAt, &e.SellerTotal); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
