package product

import "time"

type Product struct {
	ID          uint
	SellerID    uint
	Name        string
	Description string
	Price       float64
	Stock       int
	InStock     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateProductParams struct {
	SellerID    uint
	Name        string
	Description string
	Price       float64
	Stock       int
}

type UpdateProductParams struct {
	ProductID   uint
	SellerID    uint
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	InStock     *bool
}

func HasAnyUpdateField(p UpdateProductParams) bool {
	return p.Name != nil ||
		p.Description != nil ||
		p.Price != nil ||
		p.Stock != nil ||
		p.InStock != nil
}
