package expire_bookings

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case развертки просроченных бронирований.
//
// Для каждой активной площадки вычисляет cutoff = now - tolerance
// и удаляет недоплаченные (ниже порога депозита), не удерживаемые
// в корзине бронирования старше cutoff. Удаление жесткое: слот должен
// освободиться для exclusion constraint'а.
//
// Проход идемпотентен и без состояния, поэтому at-least-once доставка
// триггера (тикер, cron) безопасна: повторный запуск сразу после
// успешного удаляет 0 строк.
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход развертки по всем активным площадкам.
// Ошибка одной площадки записывается в Report.Failures, проход продолжается:
// сбой одной площадки не должен блокировать уборку остальных.
func (uc *UseCase) Execute(ctx context.Context) (*Report, error) {
	now := uc.timeProvider.Now()
	report := &Report{StartedAt: now}

	venues, err := uc.venueRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("ExpireBookings: failed to list active venues: %v", err)
		return nil, fmt.Errorf("%w: failed to list active venues: %v", ErrInternal, err)
	}

	for _, venue := range venues {
		cutoff := now.Add(-time.Duration(venue.ToleranceMinutes) * time.Minute)

		deleted, err := uc.bookingRepo.DeleteExpired(ctx, venue.ID, cutoff, venue.MinDepositPercent)
		if err != nil {
			uc.logger.Error("ExpireBookings: venue id=%d sweep failed: %v", venue.ID, err)
			report.Failures = append(report.Failures, VenueFailure{VenueID: venue.ID, Err: err})
			continue
		}

		report.VenuesProcessed++
		report.Deleted += deleted

		if deleted > 0 {
			uc.logger.Info("ExpireBookings: venue id=%d: deleted %d expired bookings (cutoff=%s, minDeposit=%.0f%%)",
				venue.ID, deleted, cutoff.Format(time.RFC3339), venue.MinDepositPercent)
		}
	}

	report.FinishedAt = uc.timeProvider.Now()

	uc.logger.Info("ExpireBookings: sweep finished: venues=%d, deleted=%d, failures=%d",
		report.VenuesProcessed, report.Deleted, len(report.Failures))

	return report, nil
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}
