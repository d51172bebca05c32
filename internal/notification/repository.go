package notification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, recipientID uint, role string, limit int32) ([]*Notification, error)
	MarkRead(ctx context.Context, recipientID uint, role string, ids []uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, recipientID uint, role string) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO notifications (id, recipient_id, recipient_role, type, order_id, title, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, n.ID, n.RecipientID, n.RecipientRole, n.Type, n.OrderID, n.Title, n.Message).
		Scan(&n.CreatedAt)
}

func (r *repository) List(ctx context.Context, recipientID uint, role string, limit int32) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient_id, recipient_role, type, order_id, title, message, read, created_at
		FROM notifications
		WHERE recipient_id = $1 AND recipient_role = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, recipientID, role, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.RecipientRole, &n.Type,
			&n.OrderID, &n.Title, &n.Message, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// MarkRead flips the read flag on the caller's own rows only. Ids owned by
// someone else simply do not match.
func (r *repository) MarkRead(ctx context.Context, recipientID uint, role string, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET read = TRUE
		WHERE recipient_id = $1 AND recipient_role = $2 AND id = ANY($3)
	`, recipientID, role, pq.Array(strIDs))
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *repository) CountUnread(ctx context.Context, recipientID uint, role string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND recipient_role = $2 AND read = FALSE
	`, recipientID, role).Scan(&n)
	return n, err
}
