package cart

import "time"

type Line struct {
	ID        uint
	BuyerID   uint
	ProductID uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnapshotLine is a cart line joined with live product data. Prices here
// are current, not frozen: the cart is pre-purchase state and the freeze
// happens at checkout.
type SnapshotLine struct {
	ProductID   uint
	SellerID    uint
	ProductName string
	Price       float64
	Quantity    int
	Stock       int
	InStock     bool
}

type UpsertParams struct {
	BuyerID   uint
	ProductID uint
	Quantity  int
}
