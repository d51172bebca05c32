package cache

import "time"

const (
	// Cache order status for the tracking poll: order_status:{order_id} -> status string
	KeyOrderStatus = "order_status:%d"

	// Unread notification counter: notif_unread:{role}:{recipient_id} -> int
	KeyUnreadCount = "notif_unread:%s:%d"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLUnreadCount = time.Minute
)
