package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider устанавливает провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetVenueBookings получает бронирования площадки с фильтрацией
// по корту, дате и статусу. Отмененные бронирования не возвращаются,
// если явно не запрошены.
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d", req.VenueID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid status=%v for venue=%d", req.Status, req.VenueID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if _, err := s.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetVenueBookings: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetVenueBookings: venue repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - venue repository error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Отмена мягкая: запись сохраняется со
// статусом cancelled и перестает участвовать в проверке конфликтов.
// Отмена завершенного или уже отмененного бронирования запрещена.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status=%s cannot be cancelled", id, booking.Status)
		return nil, fmt.Errorf("%w: status=%s", ErrCannotCancel, booking.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.getBooking(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return models.FromDomainBooking(cancelled), nil
}

// RecordPayment фиксирует оплату по бронированию и пересчитывает статус:
//   - оплачено полностью -> paid
//   - доля оплаты >= минимального депозита площадки -> deposit
//   - иначе -> unpaid
func (s *Service) RecordPayment(ctx context.Context, id int64, req *models.RecordPaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("RecordPayment: recording payment amount=%.2f for booking id=%d", req.Amount, id)

	if req.Amount <= 0 {
		s.logger.Warn("RecordPayment: non-positive amount=%.2f for booking id=%d", req.Amount, id)
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, id, "RecordPayment")
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("RecordPayment: booking id=%d is cancelled", id)
		return nil, ErrBookingCancelled
	}

	newPaidAmount := booking.PaidAmount + req.Amount
	if newPaidAmount > booking.Price {
		s.logger.Warn("RecordPayment: payment %.2f exceeds price %.2f for booking id=%d", newPaidAmount, booking.Price, id)
		return nil, fmt.Errorf("%w: paid %.2f of %.2f", ErrPaymentExceedsPrice, newPaidAmount, booking.Price)
	}

	venue, err := s.venueRepo.GetByID(ctx, booking.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("RecordPayment: venue id=%d not found for booking id=%d", booking.VenueID, id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("RecordPayment: venue repository error for venue=%d: %v", booking.VenueID, err)
		return nil, fmt.Errorf("%w: RecordPayment - venue repository error: %v", ErrInternal, err)
	}

	newStatus := paymentStatus(newPaidAmount, booking.Price, venue.MinDepositPercent)

	if err := s.bookingRepo.UpdatePayment(ctx, id, newPaidAmount, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("RecordPayment: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: RecordPayment - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, id, "RecordPayment")
	if err != nil {
		return nil, err
	}

	s.logger.Info("RecordPayment: booking id=%d paid=%.2f status=%s", id, newPaidAmount, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Hold помечает бронирование как удерживаемое в корзине. Удерживаемые
// бронирования не удаляются фоновой очисткой просроченных.
func (s *Service) Hold(ctx context.Context, id int64) (*models.BookingResponse, error) {
	now := s.timeProvider.Now()
	return s.setHold(ctx, id, "Hold", &now)
}

// Release снимает удержание бронирования в корзине
func (s *Service) Release(ctx context.Context, id int64) (*models.BookingResponse, error) {
	return s.setHold(ctx, id, "Release", nil)
}

func (s *Service) setHold(ctx context.Context, id int64, op string, heldAt *time.Time) (*models.BookingResponse, error) {
	s.logger.Info("%s: updating hold for booking id=%d", op, id)

	booking, err := s.getBooking(ctx, id, op)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("%s: booking id=%d is cancelled", op, id)
		return nil, ErrBookingCancelled
	}

	if err := s.bookingRepo.SetHold(ctx, id, heldAt); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	updated, err := s.getBooking(ctx, id, op)
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d hold updated", op, id)
	return models.FromDomainBooking(updated), nil
}

// getBooking получает бронирование по ID с маппингом ошибок репозитория
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

// paymentStatus вычисляет статус оплаты по доле внесенной суммы
func paymentStatus(paidAmount, price, minDepositPercent float64) domain.BookingStatus {
	if paidAmount >= price {
		return domain.StatusPaid
	}

	var pct float64
	if price > 0 {
		pct = paidAmount / price * 100
	}

	if pct >= minDepositPercent {
		return domain.StatusDeposit
	}

	return domain.StatusUnpaid
}
