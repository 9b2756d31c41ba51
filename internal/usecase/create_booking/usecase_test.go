package create_booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/venue"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// fakeBookingRepo имитирует атомарность вставки: под мьютексом повторяет
// проверку пересечения, как это делает exclusion constraint в Postgres
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.CourtID != b.CourtID || !existing.BookingDate.Equal(b.BookingDate) {
			continue
		}
		if !existing.IsActive() {
			continue
		}
		a, err := domain.BookingInterval(existing)
		if err != nil {
			continue
		}
		candidate, err := domain.BookingInterval(b)
		if err != nil {
			return nil, err
		}
		if a.Overlaps(candidate) {
			return nil, bookingRepo.ErrSlotConflict
		}
	}

	if b.IdempotencyKey != nil {
		for _, existing := range r.bookings {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *b.IdempotencyKey {
				return nil, bookingRepo.ErrDuplicateRequest
			}
		}
	}

	stored := *b
	stored.ID = r.nextID
	r.nextID++
	r.bookings = append(r.bookings, &stored)

	out := stored
	return &out, nil
}

func (r *fakeBookingRepo) GetByCourtAndDate(_ context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.CourtID == courtID && b.BookingDate.Equal(date) && b.IsActive() {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByIdempotencyKey(_ context.Context, key uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.IdempotencyKey != nil && *b.IdempotencyKey == key {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeVenueRepo struct {
	venues map[int64]*domain.Venue
	courts map[int64]*domain.Court
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

func (r *fakeVenueRepo) GetCourt(_ context.Context, courtID int64) (*domain.Court, error) {
	c, ok := r.courts[courtID]
	if !ok {
		return nil, venueRepo.ErrCourtNotFound
	}
	return c, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func defaultVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{
		venues: map[int64]*domain.Venue{
			1: {ID: 1, Name: "GOR Badminton", OpenHour: 8, CloseHour: 22, ToleranceMinutes: 15, MinDepositPercent: 50, IsActive: true},
			2: {ID: 2, Name: "Inactive Hall", OpenHour: 8, CloseHour: 22, IsActive: false},
		},
		courts: map[int64]*domain.Court{
			10: {ID: 10, VenueID: 1, CourtNumber: 1, Name: "Court 1", HourlyRate: 100, IsActive: true},
			11: {ID: 11, VenueID: 1, CourtNumber: 2, Name: "Court 2", HourlyRate: 120, IsActive: false},
			12: {ID: 12, VenueID: 1, CourtNumber: 3, Name: "Court 3", HourlyRate: 110, IsActive: true},
			20: {ID: 20, VenueID: 2, CourtNumber: 1, Name: "Other venue court", HourlyRate: 90, IsActive: true},
		},
	}
}

func newUseCase(repo *fakeBookingRepo) *createBooking.UseCase {
	uc := createBooking.NewUseCase(repo, defaultVenueRepo(), &fakeTxManager{}, nopLogger{})
	return uc.WithTimeProvider(fixedTime{t: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)})
}

func validRequest() *createBooking.Request {
	return &createBooking.Request{
		VenueID:       1,
		CourtID:       10,
		Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("19:00"),
		DurationHours: 2,
		CustomerName:  "Budi Santoso",
		CustomerPhone: "+62-812-0000-0000",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 200.0, resp.Price) // 100/час * 2 часа
	assert.Equal(t, 0.0, resp.PaidAmount)
	assert.False(t, resp.HeldInCart)
	assert.Equal(t, 1, repo.count())
}

func TestExecute_HoldInCart(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newUseCase(repo)

	req := validRequest()
	req.HoldInCart = true

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.HeldInCart)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*createBooking.Request)
		wantErr error
	}{
		{name: "zero venue", mutate: func(r *createBooking.Request) { r.VenueID = 0 }, wantErr: createBooking.ErrInvalidInput},
		{name: "zero court", mutate: func(r *createBooking.Request) { r.CourtID = 0 }, wantErr: createBooking.ErrInvalidInput},
		{name: "zero date", mutate: func(r *createBooking.Request) { r.Date = time.Time{} }, wantErr: createBooking.ErrInvalidInput},
		{name: "empty start time", mutate: func(r *createBooking.Request) { r.StartTime = "" }, wantErr: createBooking.ErrInvalidInput},
		{name: "bad start time", mutate: func(r *createBooking.Request) { r.StartTime = "25:00" }, wantErr: createBooking.ErrInvalidInput},
		{name: "zero duration", mutate: func(r *createBooking.Request) { r.DurationHours = 0 }, wantErr: createBooking.ErrInvalidInput},
		{name: "duration too long", mutate: func(r *createBooking.Request) { r.DurationHours = 13 }, wantErr: createBooking.ErrInvalidInput},
		{name: "empty customer name", mutate: func(r *createBooking.Request) { r.CustomerName = "  " }, wantErr: createBooking.ErrInvalidInput},
		{name: "non-whole hour start", mutate: func(r *createBooking.Request) { r.StartTime = "19:30" }, wantErr: createBooking.ErrInvalidInput},
		{name: "before opening", mutate: func(r *createBooking.Request) { r.StartTime = "07:00" }, wantErr: createBooking.ErrOutsideOperatingHours},
		{name: "runs past closing", mutate: func(r *createBooking.Request) { r.StartTime = "21:00" }, wantErr: createBooking.ErrOutsideOperatingHours},
		{name: "unknown venue", mutate: func(r *createBooking.Request) { r.VenueID = 99 }, wantErr: createBooking.ErrVenueNotFound},
		{name: "inactive venue", mutate: func(r *createBooking.Request) { r.VenueID = 2; r.CourtID = 20 }, wantErr: createBooking.ErrVenueNotFound},
		{name: "unknown court", mutate: func(r *createBooking.Request) { r.CourtID = 99 }, wantErr: createBooking.ErrCourtNotFound},
		{name: "inactive court", mutate: func(r *createBooking.Request) { r.CourtID = 11 }, wantErr: createBooking.ErrCourtNotFound},
		{name: "court from another venue", mutate: func(r *createBooking.Request) { r.CourtID = 20 }, wantErr: createBooking.ErrCourtNotInVenue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			uc := newUseCase(repo)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, repo.count())
		})
	}
}

// Полные сутки при рабочих часах [8, 22): бронь у самой границы закрытия
func TestExecute_LastSlotOfDay(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newUseCase(repo)

	req := validRequest()
	req.StartTime = "21:00"
	req.DurationHours = 1

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	t.Run("same interval", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, createBooking.ErrSlotConflict)
	})

	t.Run("overlapping interval", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "20:00"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, createBooking.ErrSlotConflict)
	})

	t.Run("touching interval succeeds", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "17:00" // [17, 19) касается [19, 21)
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("other court is independent", func(t *testing.T) {
		req := validRequest()
		req.CourtID = 12
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("other date is independent", func(t *testing.T) {
		req := validRequest()
		req.Date = req.Date.AddDate(0, 0, 1)
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

// Гонка за один слот: из N конкурентных запросов успешен ровно один,
// остальные получают ErrSlotConflict
func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	const workers = 5

	repo := newFakeBookingRepo()
	uc := newUseCase(repo)

	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			results[i] = err
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, createBooking.ErrSlotConflict):
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Equal(t, 1, repo.count())
}

func TestExecute_IdempotencyKey(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newUseCase(repo)

	key := uuid.New()
	req := validRequest()
	req.IdempotencyKey = &key

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повтор с тем же ключом возвращает исходное бронирование
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.count())

	// Другой ключ на другой слот создает новое бронирование
	otherKey := uuid.New()
	other := validRequest()
	other.StartTime = "10:00"
	other.IdempotencyKey = &otherKey

	third, err := uc.Execute(context.Background(), other)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}
