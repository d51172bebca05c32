package analytics

import (
	"context"
	"time"
)

type Service interface {
	SellerEarnings(ctx context.Context, sellerID uint, rng Range) (*Summary, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// SellerEarnings aggregates the seller's per-order subtotals over the
// range. Cancelled orders appear in the status counts but not in gross
// earnings or the average.
func (s *service) SellerEarnings(ctx context.Context, sellerID uint, rng Range) (*Summary, error) {
	since, err := rng.Since(s.now())
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.SellerOrderEarnings(ctx, sellerID, since)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Range:          rng,
		CountsByStatus: make(map[string]int64),
		Orders:         orders,
	}
	if rng == "" {
		summary.Range = RangeAll
	}

	var earning int64
	for _, o := range orders {
		summary.CountsByStatus[o.Status]++
		if o.Status == "CANCELLED" {
			continue
		}
		summary.GrossEarnings += o.SellerTotal
		earning++
	}

	summary.OrderCount = int64(len(orders))
	if earning > 0 {
		summary.AverageOrderValue = summary.GrossEarnings / float64(earning)
	}

	return summary, nil
}
