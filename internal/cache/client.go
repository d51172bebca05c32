package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a thin wrapper around redis used for read-path caches only.
// Every getter degrades to a miss on error, so redis being down never
// fails a request.
type Client struct {
	rdb *redis.Client
}

func New(addr string, db int) *Client {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	_ = r.WithTimeout(2 * time.Second)
	return &Client{rdb: r}
}

func (c *Client) GetOrderStatus(ctx context.Context, orderID uint) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	s, err := c.rdb.Get(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Result()
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func (c *Client) SetOrderStatus(ctx context.Context, orderID uint, status string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, fmt.Sprintf(KeyOrderStatus, orderID), status, TTLStatusCache).Err()
}

func (c *Client) InvalidateOrderStatus(ctx context.Context, orderID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Err()
}

func (c *Client) GetUnreadCount(ctx context.Context, role string, recipientID uint) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	s, err := c.rdb.Get(ctx, fmt.Sprintf(KeyUnreadCount, role, recipientID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Client) SetUnreadCount(ctx context.Context, role string, recipientID uint, n int64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, fmt.Sprintf(KeyUnreadCount, role, recipientID), n, TTLUnreadCount).Err()
}

func (c *Client) InvalidateUnreadCount(ctx context.Context, role string, recipientID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, fmt.Sprintf(KeyUnreadCount, role, recipientID)).Err()
}
