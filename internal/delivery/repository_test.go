package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetAgent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id, available, active").
			WithArgs(uint(5)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "available", "active"}).AddRow(5, true, true))

		a, err := repo.GetAgent(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, uint(5), a.UserID)
		assert.True(t, a.Available)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id, available, active").
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "available", "active"}))

		_, err := repo.GetAgent(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAgentNotFound)
	})
}

func TestRepository_ToggleAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("FlipsFlag", func(t *testing.T) {
		mock.ExpectQuery("SET available = NOT available").
			WithArgs(uint(5)).
			WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(false))

		available, err := repo.ToggleAvailability(context.Background(), 5)
		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SET available = NOT available").
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"available"}))

		_, err := repo.ToggleAvailability(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAgentNotFound)
	})
}

func TestRepository_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("Winner", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("SET agent_id = \\$1").
			WithArgs(uint(5), uint(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRepository(db)
		assert.NoError(t, repo.Claim(ctx, 5, 100))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Loser_AlreadyClaimed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// The conditional update matched nothing because another agent won
		// the race; the follow-up read shows who.
		mock.ExpectExec("SET agent_id = \\$1").
			WithArgs(uint(5), uint(100)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status, agent_id FROM orders").
			WithArgs(uint(100)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "agent_id"}).AddRow("PROCESSING", 7))

		repo := NewRepository(db)
		assert.ErrorIs(t, repo.Claim(ctx, 5, 100), ErrAlreadyClaimed)
	})

	t.Run("WrongStatus", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("SET agent_id = \\$1").
			WithArgs(uint(5), uint(100)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status, agent_id FROM orders").
			WithArgs(uint(100)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "agent_id"}).AddRow("PENDING", nil))

		repo := NewRepository(db)
		assert.ErrorIs(t, repo.Claim(ctx, 5, 100), ErrNotClaimable)
	})

	t.Run("OrderMissing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("SET agent_id = \\$1").
			WithArgs(uint(5), uint(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status, agent_id FROM orders").
			WithArgs(uint(999)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "agent_id"}))

		repo := NewRepository(db)
		assert.ErrorIs(t, repo.Claim(ctx, 5, 999), ErrOrderNotFound)
	})
}

func TestRepository_AvailableOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "buyer_id", "status", "address", "total", "agent_id", "created_at", "updated_at"}).
		AddRow(100, 1, "PROCESSING", "addr", 620.0, nil, now, now).
		AddRow(101, 2, "PROCESSING", "addr", 120.0, nil, now, now)

	mock.ExpectQuery("WHERE status = 'PROCESSING' AND agent_id IS NULL").
		WillReturnRows(rows)

	repo := NewRepository(db)
	orders, err := repo.AvailableOrders(context.Background())
	assert.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Nil(t, orders[0].AgentID)
}

func TestRepository_AssignedOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "buyer_id", "status", "address", "total", "agent_id", "created_at", "updated_at"}).
		AddRow(100, 1, "SHIPPED", "addr", 620.0, 5, now, now)

	mock.ExpectQuery("WHERE agent_id = \\$1 AND status IN").
		WithArgs(uint(5)).
		WillReturnRows(rows)

	repo := NewRepository(db)
	orders, err := repo.AssignedOrders(context.Background(), 5)
	assert.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].AgentID)
	assert.Equal(t, uint(5), *orders[0].AgentID)
}
