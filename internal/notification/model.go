package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeOrderConfirmation Type = "ORDER_CONFIRMATION"
	TypeOrderStatus       Type = "ORDER_STATUS"
	TypeNewOrder          Type = "NEW_ORDER"
	TypeOrderAssigned     Type = "ORDER_ASSIGNED"
)

type Notification struct {
	ID            uuid.UUID
	RecipientID   uint
	RecipientRole string
	Type          Type
	OrderID       uint
	Title         string
	Message       string
	Read          bool
	CreatedAt     time.Time
}

// OrderEvent is the transition fact the order component emits after a
// commit. sellerIDs carries each distinct seller owning a line item.
type OrderEvent struct {
	OrderID    uint
	FromStatus string
	ToStatus   string
	BuyerID    uint
	SellerIDs  []uint
	Total      float64
}
