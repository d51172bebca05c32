package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus("PAID"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("pending"))
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

	allowed := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_NoSkipping(t *testing.T) {
	assert.False(t, CanTransition(StatusPending, StatusShipped))
	assert.False(t, CanTransition(StatusPending, StatusDelivered))
	assert.False(t, CanTransition(StatusProcessing, StatusDelivered))
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, to := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusCancelled} {
		assert.False(t, CanTransition(StatusDelivered, to))
		assert.False(t, CanTransition(StatusCancelled, to))
	}
	// Cancellation window closes at SHIPPED.
	assert.False(t, CanTransition(StatusShipped, StatusCancelled))
}

func TestAllowedFor(t *testing.T) {
	t.Run("Seller", func(t *testing.T) {
		assert.True(t, AllowedFor("SELLER", StatusPending, StatusProcessing))
		assert.False(t, AllowedFor("SELLER", StatusProcessing, StatusShipped))
		assert.False(t, AllowedFor("SELLER", StatusPending, StatusCancelled))
	})

	t.Run("Agent", func(t *testing.T) {
		assert.True(t, AllowedFor("AGENT", StatusProcessing, StatusShipped))
		assert.True(t, AllowedFor("AGENT", StatusShipped, StatusDelivered))
		assert.False(t, AllowedFor("AGENT", StatusPending, StatusProcessing))
		assert.False(t, AllowedFor("AGENT", StatusProcessing, StatusCancelled))
	})

	t.Run("Buyer", func(t *testing.T) {
		assert.True(t, AllowedFor("BUYER", StatusPending, StatusCancelled))
		assert.False(t, AllowedFor("BUYER", StatusProcessing, StatusCancelled))
		assert.False(t, AllowedFor("BUYER", StatusPending, StatusProcessing))
		assert.False(t, AllowedFor("BUYER", StatusShipped, StatusDelivered))
	})

	t.Run("Admin", func(t *testing.T) {
		// Admin may drive any edge, including ones no other role holds.
		assert.True(t, AllowedFor("ADMIN", StatusProcessing, StatusCancelled))
		assert.True(t, AllowedFor("ADMIN", StatusPending, StatusProcessing))
		assert.True(t, AllowedFor("ADMIN", StatusShipped, StatusDelivered))
	})

	t.Run("UnknownRole", func(t *testing.T) {
		assert.False(t, AllowedFor("GUEST", StatusPending, StatusProcessing))
		assert.False(t, AllowedFor("", StatusPending, StatusCancelled))
	})
}

func TestTimestampColumn(t *testing.T) {
	assert.Equal(t, "processing_at", timestampColumn(StatusProcessing))
	assert.Equal(t, "shipped_at", timestampColumn(StatusShipped))
	assert.Equal(t, "delivered_at", timestampColumn(StatusDelivered))
	assert.Equal(t, "cancelled_at", timestampColumn(StatusCancelled))
	assert.Equal(t, "", timestampColumn(StatusPending))
}
