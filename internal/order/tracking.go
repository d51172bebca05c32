package order

import (
	"context"
	"time"
)

type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepPending   StepState = "pending"
)

type TrackingStep struct {
	Label string
	State StepState
	At    *time.Time
}

type Tracking struct {
	OrderID           uint
	Status            Status
	Steps             []TrackingStep
	EstimatedDelivery *time.Time
}

// statusRank orders the forward path for the timeline. Cancelled orders
// are handled separately.
var statusRank = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// Track synthesizes the buyer-facing timeline from the stored per-status
// timestamps. Estimated delivery is a display value, not a commitment.
func (s *service) Track(ctx context.Context, buyerID, orderID uint) (*Tracking, error) {
	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrForbidden
	}

	t := &Tracking{OrderID: o.ID, Status: o.Status}

	if o.Status == StatusCancelled {
		t.Steps = []TrackingStep{
			{Label: "Order placed", State: StepCompleted, At: &o.CreatedAt},
			{Label: "Cancelled", State: StepCurrent, At: o.CancelledAt},
		}
		if o.ProcessingAt != nil {
			t.Steps = []TrackingStep{
				t.Steps[0],
				{Label: "Processing", State: StepCompleted, At: o.ProcessingAt},
				t.Steps[1],
			}
		}
		return t, nil
	}

	rank := statusRank[o.Status]
	steps := []struct {
		label  string
		status Status
		at     *time.Time
	}{
		{"Order placed", StatusPending, &o.CreatedAt},
		{"Processing", StatusProcessing, o.ProcessingAt},
		{"Shipped", StatusShipped, o.ShippedAt},
		{"Delivered", StatusDelivered, o.DeliveredAt},
	}

	for _, st := range steps {
		state := StepPending
		switch {
		case statusRank[st.status] < rank:
			state = StepCompleted
		case statusRank[st.status] == rank:
			state = StepCurrent
		}
		t.Steps = append(t.Steps, TrackingStep{Label: st.label, State: state, At: st.at})
	}

	if o.Status != StatusDelivered {
		eta := o.CreatedAt.Add(5 * 24 * time.Hour)
		t.EstimatedDelivery = &eta
	}

	return t, nil
}
