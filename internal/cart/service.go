package cart

import (
	"context"

	"mandimart-be/internal/product"
)

// Service defines the business logic for carts.
type Service interface {
	AddOrUpdate(ctx context.Context, params UpsertParams) (*Line, error)
	Remove(ctx context.Context, buyerID, productID uint) error
	Snapshot(ctx context.Context, buyerID uint) ([]SnapshotLine, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddOrUpdate upserts a cart line. Quantities below one are rejected, and
// only purchasable products can be carted.
func (s *service) AddOrUpdate(ctx context.Context, params UpsertParams) (*Line, error) {
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		if err == product.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !p.InStock {
		return nil, ErrProductUnavailable
	}

	return s.repo.Upsert(ctx, params)
}

func (s *service) Remove(ctx context.Context, buyerID, productID uint) error {
	return s.repo.Remove(ctx, buyerID, productID)
}

func (s *service) Snapshot(ctx context.Context, buyerID uint) ([]SnapshotLine, error) {
	return s.repo.Snapshot(ctx, buyerID)
}
