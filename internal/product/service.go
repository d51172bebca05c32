package product

import (
	"context"

	"mandimart-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the seller product catalogue.
type Service interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
	GetProduct(ctx context.Context, productID uint) (*Product, error)
	ListAvailable(ctx context.Context, search *string, limit, page *int32) ([]*Product, error)
	ListSellerProducts(ctx context.Context, sellerID uint) ([]*Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (*Product, error)
	DeleteProduct(ctx context.Context, productID, sellerID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error) {
	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock < 0 {
		return nil, ErrInvalidStock
	}
	return s.repo.Create(ctx, params)
}

func (s *service) GetProduct(ctx context.Context, productID uint) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *service) ListAvailable(ctx context.Context, search *string, limit, page *int32) ([]*Product, error) {
	return s.repo.ListAvailable(ctx, search, limit, page)
}

func (s *service) ListSellerProducts(ctx context.Context, sellerID uint) ([]*Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *service) UpdateProduct(ctx context.Context, params UpdateProductParams) (*Product, error) {
	if !HasAnyUpdateField(params) {
		return nil, ErrNoFields
	}
	if params.Price != nil && *params.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock != nil && *params.Stock < 0 {
		return nil, ErrInvalidStock
	}
	return s.repo.Update(ctx, params)
}

// DeleteProduct removes a product outright only when nothing ever ordered
// it. A product with order history backs frozen line items, so it is
// soft-disabled instead.
func (s *service) DeleteProduct(ctx context.Context, productID, sellerID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.Uint("product_id", productID),
		zap.Uint("seller_id", sellerID),
	)

	n, err := s.repo.CountOrderHistory(ctx, productID)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("product has order history, disabling instead of deleting",
			zap.Int64("order_items", n),
		)
		if err := s.repo.SetInStock(ctx, productID, sellerID, false); err != nil {
			return err
		}
		return ErrHasOrderHistory
	}

	return s.repo.Delete(ctx, productID, sellerID)
}
