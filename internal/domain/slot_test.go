package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestTimeGrid(t *testing.T) {
	t.Run("standard operating hours", func(t *testing.T) {
		grid := domain.TimeGrid(8, 22)

		require.Len(t, grid, 14)
		assert.Equal(t, types.TimeString("08:00"), grid[0])
		assert.Equal(t, types.TimeString("21:00"), grid[len(grid)-1])
	})

	t.Run("grid is chronological", func(t *testing.T) {
		grid := domain.TimeGrid(6, 23)
		for i := 1; i < len(grid); i++ {
			assert.True(t, grid[i-1].IsBefore(grid[i]))
		}
	})

	t.Run("single hour", func(t *testing.T) {
		grid := domain.TimeGrid(10, 11)
		require.Len(t, grid, 1)
		assert.Equal(t, types.TimeString("10:00"), grid[0])
	})

	t.Run("degenerate interval gives empty grid", func(t *testing.T) {
		assert.Empty(t, domain.TimeGrid(22, 8))
		assert.Empty(t, domain.TimeGrid(10, 10))
	})
}

func TestBooking_PaidPercent(t *testing.T) {
	tests := []struct {
		name       string
		price      float64
		paidAmount float64
		want       float64
	}{
		{name: "half paid", price: 200, paidAmount: 100, want: 50},
		{name: "fully paid", price: 200, paidAmount: 200, want: 100},
		{name: "nothing paid", price: 200, paidAmount: 0, want: 0},
		{name: "zero price is zero percent", price: 0, paidAmount: 0, want: 0},
		{name: "negative price is zero percent", price: -10, paidAmount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &domain.Booking{Price: tt.price, PaidAmount: tt.paidAmount}
			assert.InDelta(t, tt.want, b.PaidPercent(), 1e-9)
		})
	}
}

func TestBooking_StatusPredicates(t *testing.T) {
	active := &domain.Booking{Status: domain.StatusPending}
	cancelled := &domain.Booking{Status: domain.StatusCancelled}
	completed := &domain.Booking{Status: domain.StatusCompleted}

	assert.True(t, active.IsActive())
	assert.False(t, cancelled.IsActive())
	assert.True(t, completed.IsActive())

	assert.True(t, active.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())
	assert.False(t, completed.CanBeCancelled())
}

func TestVenue_SlotCount(t *testing.T) {
	v := &domain.Venue{OpenHour: 8, CloseHour: 22}
	assert.True(t, v.HasValidHours())
	assert.Equal(t, 14, v.SlotCount())

	degenerate := &domain.Venue{OpenHour: 22, CloseHour: 8}
	assert.False(t, degenerate.HasValidHours())
	assert.Equal(t, 0, degenerate.SlotCount())
}
