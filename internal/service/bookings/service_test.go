package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	byID map[int64]*domain.Booking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.VenueID != filter.VenueID {
			continue
		}
		if b.IsCancelled() && !filter.IncludeCancelled {
			continue
		}
		if filter.CourtID != nil && b.CourtID != *filter.CourtID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	b, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	return nil
}

func (r *fakeBookingRepo) UpdatePayment(_ context.Context, id int64, paidAmount float64, status domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaidAmount = paidAmount
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) SetHold(_ context.Context, id int64, heldAt *time.Time) error {
	b, ok := r.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.HeldInCartSince = heldAt
	return nil
}

type fakeVenueRepo struct {
	byID map[int64]*domain.Venue
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(b *fakeBookingRepo) *bookings.Service {
	venues := &fakeVenueRepo{byID: map[int64]*domain.Venue{
		1: {ID: 1, MinDepositPercent: 50, IsActive: true},
	}}
	return bookings.NewService(b, venues, nopLogger{})
}

func pendingBooking(id int64, price, paid float64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		VenueID:       1,
		CourtID:       10,
		BookingDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     "19:00",
		DurationHours: 2,
		Status:        domain.StatusPending,
		Price:         price,
		PaidAmount:    paid,
		CustomerName:  "Budi",
	}
}

func TestRecordPayment_StatusThresholds(t *testing.T) {
	tests := []struct {
		name       string
		price      float64
		alreadyPaid float64
		amount     float64
		wantStatus string
	}{
		{name: "full payment", price: 200, amount: 200, wantStatus: string(domain.StatusPaid)},
		{name: "deposit exactly at threshold", price: 200, amount: 100, wantStatus: string(domain.StatusDeposit)},
		{name: "deposit above threshold", price: 200, amount: 150, wantStatus: string(domain.StatusDeposit)},
		{name: "below threshold", price: 200, amount: 50, wantStatus: string(domain.StatusUnpaid)},
		{name: "second payment completes", price: 200, alreadyPaid: 150, amount: 50, wantStatus: string(domain.StatusPaid)},
		{name: "second payment reaches deposit", price: 200, alreadyPaid: 60, amount: 40, wantStatus: string(domain.StatusDeposit)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{
				1: pendingBooking(1, tt.price, tt.alreadyPaid),
			}}
			svc := newService(repo)

			resp, err := svc.RecordPayment(context.Background(), 1, &models.RecordPaymentRequest{Amount: tt.amount})

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.alreadyPaid+tt.amount, resp.PaidAmount)
		})
	}
}

func TestRecordPayment_Errors(t *testing.T) {
	t.Run("exceeds price", func(t *testing.T) {
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: pendingBooking(1, 200, 150)}}
		svc := newService(repo)

		_, err := svc.RecordPayment(context.Background(), 1, &models.RecordPaymentRequest{Amount: 100})
		assert.ErrorIs(t, err, bookings.ErrPaymentExceedsPrice)

		// Сумма не изменилась
		b, _ := repo.GetByID(context.Background(), 1)
		assert.Equal(t, 150.0, b.PaidAmount)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: pendingBooking(1, 200, 0)}}
		svc := newService(repo)

		_, err := svc.RecordPayment(context.Background(), 1, &models.RecordPaymentRequest{Amount: 0})
		assert.ErrorIs(t, err, bookings.ErrInvalidInput)

		_, err = svc.RecordPayment(context.Background(), 1, &models.RecordPaymentRequest{Amount: -10})
		assert.ErrorIs(t, err, bookings.ErrInvalidInput)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		b := pendingBooking(1, 200, 0)
		b.Status = domain.StatusCancelled
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: b}}
		svc := newService(repo)

		_, err := svc.RecordPayment(context.Background(), 1, &models.RecordPaymentRequest{Amount: 50})
		assert.ErrorIs(t, err, bookings.ErrBookingCancelled)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newService(&fakeBookingRepo{byID: map[int64]*domain.Booking{}})

		_, err := svc.RecordPayment(context.Background(), 99, &models.RecordPaymentRequest{Amount: 50})
		assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: pendingBooking(1, 200, 0)}}
		svc := newService(repo)

		resp, err := svc.Cancel(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.NotNil(t, resp.CancelledAt)
	})

	t.Run("already cancelled", func(t *testing.T) {
		b := pendingBooking(1, 200, 0)
		b.Status = domain.StatusCancelled
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: b}}
		svc := newService(repo)

		_, err := svc.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, bookings.ErrCannotCancel)
	})

	t.Run("completed booking", func(t *testing.T) {
		b := pendingBooking(1, 200, 200)
		b.Status = domain.StatusCompleted
		repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: b}}
		svc := newService(repo)

		_, err := svc.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, bookings.ErrCannotCancel)
	})
}

func TestHoldAndRelease(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: pendingBooking(1, 200, 0)}}
	svc := newService(repo)

	held, err := svc.Hold(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, held.HeldInCart)
	require.NotNil(t, held.HeldInCartSince)

	released, err := svc.Release(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, released.HeldInCart)
	assert.Nil(t, released.HeldInCartSince)
}

func TestHold_CancelledBooking(t *testing.T) {
	b := pendingBooking(1, 200, 0)
	b.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: b}}
	svc := newService(repo)

	_, err := svc.Hold(context.Background(), 1)
	assert.ErrorIs(t, err, bookings.ErrBookingCancelled)
}

func TestGetVenueBookings_LegacyStatusFilter(t *testing.T) {
	paid := pendingBooking(1, 200, 200)
	paid.Status = domain.StatusPaid
	unpaid := pendingBooking(2, 200, 0)
	unpaid.Status = domain.StatusUnpaid

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: paid, 2: unpaid}}
	svc := newService(repo)

	// Legacy-имя статуса в фильтре маппится на каноническое
	legacy := "LUNAS"
	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID: 1,
		Status:  &legacy,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
	assert.Equal(t, string(domain.StatusPaid), resp.Bookings[0].Status)
	assert.Equal(t, "LUNAS", resp.Bookings[0].LegacyStatus)
}

func TestGetVenueBookings_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{}}
	svc := newService(repo)

	bad := "NOT_A_STATUS"
	_, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID: 1,
		Status:  &bad,
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestGetVenueBookings_ExcludesCancelledByDefault(t *testing.T) {
	active := pendingBooking(1, 200, 0)
	cancelled := pendingBooking(2, 200, 0)
	cancelled.Status = domain.StatusCancelled

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{1: active, 2: cancelled}}
	svc := newService(repo)

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{VenueID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	resp, err = svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID:          1,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetVenueBookings_UnknownVenue(t *testing.T) {
	svc := newService(&fakeBookingRepo{byID: map[int64]*domain.Booking{}})

	_, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{VenueID: 99})
	assert.ErrorIs(t, err, bookings.ErrVenueNotFound)
}
