package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/venue"
)

// UseCase use case для создания бронирования корта
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Гарантию отсутствия двойного бронирования дает exclusion constraint
// на уровне БД (см. Repository.Create) - из N конкурентных запросов на
// один слот фиксируется ровно один. Предварительная проверка через
// FindConflict внутри сериализуемой транзакции нужна для дружелюбной
// диагностики: она находит конкретное пересекающееся бронирование
// до обращения к constraint'у.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: venue=%d, court=%d, date=%s, time=%s, duration=%dh",
		req.VenueID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Идемпотентность: повтор запроса возвращает исходный результат
	if req.IdempotencyKey != nil {
		existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, *req.IdempotencyKey)
		if err == nil {
			uc.logger.Info("CreateBooking: idempotency key %s already used, returning booking id=%d",
				req.IdempotencyKey, existing.ID)
			return toResponse(existing), nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check idempotency key: %v", err)
			return nil, fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
		}
	}

	// 3. Получаем площадку; деактивированная площадка неотличима
	// от отсутствующей для вызывающего
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.IsActive {
		uc.logger.Warn("CreateBooking: venue id=%d is inactive", req.VenueID)
		return nil, ErrVenueNotFound
	}

	// 4. Интервал должен целиком лежать в рабочих часах
	if err := validateWithinOperatingHours(venue, req); err != nil {
		uc.logger.Warn("CreateBooking: operating hours validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем корт и проверяем принадлежность площадке
	court, err := uc.venueRepo.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if court.VenueID != req.VenueID {
		uc.logger.Warn("CreateBooking: court id=%d belongs to venue id=%d, not %d",
			req.CourtID, court.VenueID, req.VenueID)
		return nil, ErrCourtNotInVenue
	}
	if !court.IsActive {
		uc.logger.Warn("CreateBooking: court id=%d is inactive", req.CourtID)
		return nil, ErrCourtNotFound
	}

	now := uc.timeProvider.Now()

	booking := &domain.Booking{
		VenueID:        req.VenueID,
		CourtID:        req.CourtID,
		BookingDate:    req.Date,
		StartTime:      req.StartTime,
		DurationHours:  req.DurationHours,
		Status:         domain.StatusPending,
		Price:          court.HourlyRate * float64(req.DurationHours),
		PaidAmount:     0,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		IdempotencyKey: req.IdempotencyKey,
	}
	if req.HoldInCart {
		booking.HeldInCartSince = &now
	}

	// 6. Проверка и вставка в сериализуемой транзакции
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные бронирования корта на дату с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetByCourtAndDate(txCtx, req.CourtID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.2. Предварительная проверка пересечения
		conflict, err := domain.FindConflict(req.StartTime, req.DurationHours, existing)
		if err != nil {
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s+%dh conflicts with booking id=%d (%s)",
				req.StartTime, req.DurationHours, conflict.ID, conflict.Status)
			return ErrSlotConflict
		}

		// 6.3. Атомарная вставка; exclusion constraint закрывает гонку,
		// которую предварительная проверка закрыть не может
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict), errors.Is(err, bookingRepo.ErrSlotConflict):
			return nil, ErrSlotConflict

		case errors.Is(err, bookingRepo.ErrDuplicateRequest):
			// Конкурентный запрос с тем же ключом успел раньше -
			// возвращаем его результат
			return uc.resolveDuplicate(ctx, req)

		case errors.Is(err, ErrInternal):
			return nil, err

		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (court=%d, %s %s+%dh)",
		result.ID, result.CourtID, result.BookingDate.Format(domain.DateFormat), result.StartTime, result.DurationHours)

	return toResponse(result), nil
}

// resolveDuplicate возвращает бронирование, созданное конкурентным
// запросом с тем же идемпотентным ключом
func (uc *UseCase) resolveDuplicate(ctx context.Context, req *Request) (*Response, error) {
	if req.IdempotencyKey == nil {
		return nil, fmt.Errorf("%w: duplicate request without idempotency key", ErrInternal)
	}

	existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, *req.IdempotencyKey)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve duplicate for key %s: %v", req.IdempotencyKey, err)
		return nil, fmt.Errorf("%w: failed to resolve duplicate request: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: duplicate request resolved to booking id=%d", existing.ID)
	return toResponse(existing), nil
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		VenueID:       b.VenueID,
		CourtID:       b.CourtID,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		Status:        string(b.Status),
		Price:         b.Price,
		PaidAmount:    b.PaidAmount,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		HeldInCart:    b.IsHeldInCart(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
