package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A nil client means redis is not configured; every read must degrade to
// a miss and every write must be a silent no-op.
func TestNilClient(t *testing.T) {
	ctx := context.Background()
	var c *Client

	s, ok := c.GetOrderStatus(ctx, 100)
	assert.False(t, ok)
	assert.Empty(t, s)

	n, ok := c.GetUnreadCount(ctx, "BUYER", 1)
	assert.False(t, ok)
	assert.Zero(t, n)

	c.SetOrderStatus(ctx, 100, "PENDING")
	c.InvalidateOrderStatus(ctx, 100)
	c.SetUnreadCount(ctx, "BUYER", 1, 3)
	c.InvalidateUnreadCount(ctx, "BUYER", 1)
}

func TestUnreachableRedisDegradesToMiss(t *testing.T) {
	ctx := context.Background()
	c := New("127.0.0.1:1", 0)

	_, ok := c.GetOrderStatus(ctx, 100)
	assert.False(t, ok)

	_, ok = c.GetUnreadCount(ctx, "BUYER", 1)
	assert.False(t, ok)

	// Writes swallow the connection error.
	c.SetOrderStatus(ctx, 100, "PENDING")
}
