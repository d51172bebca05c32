package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	n := &Notification{
		ID:            id,
		RecipientID:   1,
		RecipientRole: "BUYER",
		Type:          TypeOrderConfirmation,
		OrderID:       100,
		Title:         "Order placed",
		Message:       "Your order #100 for ₹620.00 has been placed.",
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(id, uint(1), "BUYER", TypeOrderConfirmation, uint(100), n.Title, n.Message).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	err = repo.Create(context.Background(), n)
	assert.NoError(t, err)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "recipient_id", "recipient_role", "type", "order_id", "title", "message", "read", "created_at"}).
			AddRow(uuid.New(), 1, "BUYER", "ORDER_STATUS", 100, "Order shipped", "Order #100 is on its way.", false, now).
			AddRow(uuid.New(), 1, "BUYER", "ORDER_CONFIRMATION", 100, "Order placed", "placed", true, now.Add(-time.Hour))

		mock.ExpectQuery("FROM notifications\\s+WHERE recipient_id").
			WithArgs(uint(1), "BUYER", int32(20)).
			WillReturnRows(rows)

		list, err := repo.List(context.Background(), 1, "BUYER", 20)
		assert.NoError(t, err)
		require.Len(t, list, 2)
		assert.False(t, list[0].Read)
		assert.True(t, list[1].Read)
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		mock.ExpectQuery("FROM notifications\\s+WHERE recipient_id").
			WithArgs(uint(1), "BUYER", int32(50)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "recipient_id", "recipient_role", "type", "order_id", "title", "message", "read", "created_at"}))

		list, err := repo.List(context.Background(), 1, "BUYER", 0)
		assert.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestRepository_MarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("OwnRows", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		strIDs := []string{ids[0].String(), ids[1].String()}

		mock.ExpectExec("UPDATE notifications").
			WithArgs(uint(1), "BUYER", pq.Array(strIDs)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.MarkRead(context.Background(), 1, "BUYER", ids)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("ForeignRows_NoMatch", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New()}

		mock.ExpectExec("UPDATE notifications").
			WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := repo.MarkRead(context.Background(), 2, "BUYER", ids)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("EmptyInput_NoQuery", func(t *testing.T) {
		n, err := repo.MarkRead(context.Background(), 1, "BUYER", nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestRepository_CountUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notifications").
		WithArgs(uint(1), "BUYER").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountUnread(context.Background(), 1, "BUYER")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
