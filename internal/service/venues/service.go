package venues

import (
	"context"
	"errors"
	"fmt"

	venueRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/venues/models"
)

// Service сервис для работы с конфигурацией площадок
type Service struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// GetConfig получает конфигурацию площадки вместе со списком активных кортов
func (s *Service) GetConfig(ctx context.Context, venueID int64) (*models.VenueConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for venue=%d", venueID)

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetConfig: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetConfig: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	courts, err := s.venueRepo.ListActiveCourts(ctx, venueID)
	if err != nil {
		s.logger.Error("GetConfig: failed to list courts for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetConfig - failed to list courts: %v", ErrInternal, err)
	}

	return models.FromDomainVenue(venue, courts), nil
}

// UpdateConfig обновляет политику бронирования площадки. Поля запроса,
// равные nil, сохраняют текущие значения. Итоговая конфигурация
// валидируется целиком.
func (s *Service) UpdateConfig(ctx context.Context, venueID int64, req *models.UpdateVenueConfigRequest) (*models.VenueConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating config for venue=%d", venueID)

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("UpdateConfig: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("UpdateConfig: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	openHour := venue.OpenHour
	closeHour := venue.CloseHour
	toleranceMinutes := venue.ToleranceMinutes
	minDepositPercent := venue.MinDepositPercent

	if req.OpenHour != nil {
		openHour = *req.OpenHour
	}
	if req.CloseHour != nil {
		closeHour = *req.CloseHour
	}
	if req.ToleranceMinutes != nil {
		toleranceMinutes = *req.ToleranceMinutes
	}
	if req.MinDepositPercent != nil {
		minDepositPercent = *req.MinDepositPercent
	}

	if err := validateConfig(openHour, closeHour, toleranceMinutes, minDepositPercent); err != nil {
		s.logger.Warn("UpdateConfig: validation failed for venue=%d: %v", venueID, err)
		return nil, err
	}

	if err := s.venueRepo.UpdateConfig(ctx, venueID, openHour, closeHour, toleranceMinutes, minDepositPercent); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("UpdateConfig: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: venue=%d hours=[%d,%d) tolerance=%dm deposit=%.1f%%",
		venueID, openHour, closeHour, toleranceMinutes, minDepositPercent)

	return s.GetConfig(ctx, venueID)
}

// validateConfig проверяет согласованность политики бронирования
func validateConfig(openHour, closeHour, toleranceMinutes int, minDepositPercent float64) error {
	if openHour < 0 || openHour > 23 {
		return fmt.Errorf("%w: open_hour must be in [0, 23]", ErrInvalidInput)
	}
	if closeHour < 1 || closeHour > 24 {
		return fmt.Errorf("%w: close_hour must be in [1, 24]", ErrInvalidInput)
	}
	if openHour >= closeHour {
		return fmt.Errorf("%w: open_hour must be before close_hour", ErrInvalidInput)
	}
	if toleranceMinutes < 0 {
		return fmt.Errorf("%w: tolerance_minutes must be non-negative", ErrInvalidInput)
	}
	if minDepositPercent < 0 || minDepositPercent > 100 {
		return fmt.Errorf("%w: min_deposit_percent must be in [0, 100]", ErrInvalidInput)
	}
	return nil
}
