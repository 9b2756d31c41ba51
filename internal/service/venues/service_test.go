package venues_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/venues"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/venues/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

type fakeVenueRepo struct {
	byID   map[int64]*domain.Venue
	courts map[int64][]*domain.Court
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVenueRepo) UpdateConfig(_ context.Context, venueID int64, openHour, closeHour, toleranceMinutes int, minDepositPercent float64) error {
	v, ok := r.byID[venueID]
	if !ok {
		return venueRepo.ErrVenueNotFound
	}
	v.OpenHour = openHour
	v.CloseHour = closeHour
	v.ToleranceMinutes = toleranceMinutes
	v.MinDepositPercent = minDepositPercent
	return nil
}

func (r *fakeVenueRepo) ListActiveCourts(_ context.Context, venueID int64) ([]*domain.Court, error) {
	return r.courts[venueID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRepo() *fakeVenueRepo {
	return &fakeVenueRepo{
		byID: map[int64]*domain.Venue{
			1: {ID: 1, Name: "GOR Badminton", OpenHour: 8, CloseHour: 22, ToleranceMinutes: 15, MinDepositPercent: 50, IsActive: true},
		},
		courts: map[int64][]*domain.Court{
			1: {
				{ID: 10, VenueID: 1, CourtNumber: 1, Name: "Court 1", HourlyRate: 100, IsActive: true},
				{ID: 11, VenueID: 1, CourtNumber: 2, Name: "Court 2", HourlyRate: 120, IsActive: true},
			},
		},
	}
}

func TestGetConfig(t *testing.T) {
	svc := venues.NewService(newRepo(), nopLogger{})

	cfg, err := svc.GetConfig(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.VenueID)
	assert.Equal(t, 8, cfg.OpenHour)
	assert.Equal(t, 22, cfg.CloseHour)
	assert.Equal(t, 15, cfg.ToleranceMinutes)
	assert.Equal(t, 50.0, cfg.MinDepositPercent)
	require.Len(t, cfg.Courts, 2)
	assert.Equal(t, 1, cfg.Courts[0].CourtNumber)
}

func TestGetConfig_NotFound(t *testing.T) {
	svc := venues.NewService(newRepo(), nopLogger{})

	_, err := svc.GetConfig(context.Background(), 99)
	assert.ErrorIs(t, err, venues.ErrVenueNotFound)
}

func TestUpdateConfig_PartialUpdate(t *testing.T) {
	repo := newRepo()
	svc := venues.NewService(repo, nopLogger{})

	cfg, err := svc.UpdateConfig(context.Background(), 1, &models.UpdateVenueConfigRequest{
		ToleranceMinutes: ptr.Ptr(30),
	})

	require.NoError(t, err)
	assert.Equal(t, 30, cfg.ToleranceMinutes)
	// Остальные поля не тронуты
	assert.Equal(t, 8, cfg.OpenHour)
	assert.Equal(t, 22, cfg.CloseHour)
	assert.Equal(t, 50.0, cfg.MinDepositPercent)
}

func TestUpdateConfig_FullUpdate(t *testing.T) {
	repo := newRepo()
	svc := venues.NewService(repo, nopLogger{})

	cfg, err := svc.UpdateConfig(context.Background(), 1, &models.UpdateVenueConfigRequest{
		OpenHour:          ptr.Ptr(6),
		CloseHour:         ptr.Ptr(23),
		ToleranceMinutes:  ptr.Ptr(60),
		MinDepositPercent: ptr.Ptr(25.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 6, cfg.OpenHour)
	assert.Equal(t, 23, cfg.CloseHour)
	assert.Equal(t, 60, cfg.ToleranceMinutes)
	assert.Equal(t, 25.0, cfg.MinDepositPercent)
}

func TestUpdateConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateVenueConfigRequest
	}{
		{name: "open after close", req: &models.UpdateVenueConfigRequest{OpenHour: ptr.Ptr(23)}},
		{name: "open equals close", req: &models.UpdateVenueConfigRequest{OpenHour: ptr.Ptr(10), CloseHour: ptr.Ptr(10)}},
		{name: "negative open hour", req: &models.UpdateVenueConfigRequest{OpenHour: ptr.Ptr(-1)}},
		{name: "close hour too late", req: &models.UpdateVenueConfigRequest{CloseHour: ptr.Ptr(25)}},
		{name: "negative tolerance", req: &models.UpdateVenueConfigRequest{ToleranceMinutes: ptr.Ptr(-5)}},
		{name: "negative deposit", req: &models.UpdateVenueConfigRequest{MinDepositPercent: ptr.Ptr(-1.0)}},
		{name: "deposit over 100", req: &models.UpdateVenueConfigRequest{MinDepositPercent: ptr.Ptr(101.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			svc := venues.NewService(repo, nopLogger{})

			_, err := svc.UpdateConfig(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, venues.ErrInvalidInput)

			// Конфигурация не изменилась
			assert.Equal(t, 8, repo.byID[1].OpenHour)
			assert.Equal(t, 22, repo.byID[1].CloseHour)
		})
	}
}

func TestUpdateConfig_NotFound(t *testing.T) {
	svc := venues.NewService(newRepo(), nopLogger{})

	_, err := svc.UpdateConfig(context.Background(), 99, &models.UpdateVenueConfigRequest{})
	assert.ErrorIs(t, err, venues.ErrVenueNotFound)
}
