package analytics

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("invalid analytics range")

type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "7d"
	RangeMonth Range = "30d"
	RangeAll   Range = "all"
)

// Since resolves the range to its lower bound; the zero time means
// unbounded.
func (r Range) Since(now time.Time) (time.Time, error) {
	switch r {
	case RangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case RangeWeek:
		return now.AddDate(0, 0, -7), nil
	case RangeMonth:
		return now.AddDate(0, 0, -30), nil
	case RangeAll, "":
		return time.Time{}, nil
	}
	return time.Time{}, ErrInvalidRange
}

// OrderEarnings is one order seen through a single seller's line items: a
// multi-seller order contributes only that seller's subtotal here.
type OrderEarnings struct {
	OrderID     uint
	Status      string
	SellerTotal float64
	CreatedAt   time.Time
}

type Summary struct {
	Range             Range
	GrossEarnings     float64
	OrderCount        int64
	CountsByStatus    map[string]int64
	AverageOrderValue float64
	Orders            []OrderEarnings
}
