package order

import "time"

type Order struct {
	ID        uint
	BuyerID   uint
	Status    Status
	Address   string
	Total     float64
	AgentID   *uint
	CreatedAt time.Time
	UpdatedAt time.Time

	ProcessingAt *time.Time
	ShippedAt    *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time

	Items []Item
}

// Item is a frozen line: price, name and seller are copies taken at
// checkout and never follow later product edits.
type Item struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	SellerID    uint
	ProductName string
	Price       float64
	Quantity    int
}

// SellerIDs returns each distinct seller owning a line item.
func (o *Order) SellerIDs() []uint {
	seen := make(map[uint]bool, len(o.Items))
	var ids []uint
	for _, it := range o.Items {
		if !seen[it.SellerID] {
			seen[it.SellerID] = true
			ids = append(ids, it.SellerID)
		}
	}
	return ids
}

// OwnedBySeller reports whether the seller owns at least one line item.
func (o *Order) OwnedBySeller(sellerID uint) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

type TransitionParams struct {
	OrderID  uint
	Target   Status
	Role     string
	CallerID uint
}

type TransitionResult struct {
	Order *Order
	From  Status
	NoOp  bool
}
