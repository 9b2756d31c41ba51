package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// Имена constraint'ов из миграций
const (
	constraintNoOverlap      = "bookings_no_overlap"
	constraintIdempotencyKey = "bookings_idempotency_key_key"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"venue_id",
	"court_id",
	"booking_date",
	"start_time",
	"duration_hours",
	"status",
	"price",
	"paid_amount",
	"customer_name",
	"customer_phone",
	"held_in_cart_since",
	"idempotency_key",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями.
// Единственный компонент, который мутирует состояние бронирований.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование атомарно: проверку пересечения
// выполняет exclusion constraint bookings_no_overlap на уровне БД
// (btree_gist по court_id, booking_date и диапазону часов, только для
// неотмененных строк). Application-level check-then-insert здесь
// принципиально недостаточен - между SELECT и INSERT есть гонка.
//
// При пересечении интервалов возвращает ErrSlotConflict: из N конкурентных
// вставок одного слота ровно одна фиксируется, остальные получают конфликт.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"venue_id",
			"court_id",
			"booking_date",
			"start_time",
			"duration_hours",
			"status",
			"price",
			"paid_amount",
			"customer_name",
			"customer_phone",
			"held_in_cart_since",
			"idempotency_key",
		).
		Values(
			booking.VenueID,
			booking.CourtID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationHours,
			booking.Status,
			booking.Price,
			booking.PaidAmount,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.HeldInCartSince,
			uuidValue(booking.IdempotencyKey),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isConstraintViolation(err, pgExclusionViolation, constraintNoOverlap) {
			return nil, ErrSlotConflict
		}
		if isConstraintViolation(err, pgUniqueViolation, constraintIdempotencyKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByIdempotencyKey получает бронирование по идемпотентному ключу.
// Используется для возврата исходного результата при повторе запроса.
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCourtAndDate получает все неотмененные бронирования корта на дату,
// упорядоченные по времени начала. Используется детектором конфликтов
// и построителем сетки доступности.
//
// Внутри транзакции добавляет FOR UPDATE - блокировка строк на время
// проверки доступности в usecase создания бронирования.
func (r *Repository) GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByVenueWithFilter получает бронирования площадки с гибкой фильтрацией
// по корту, дате и статусу. Отмененные бронирования по умолчанию исключаются.
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.CourtID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"court_id": *filter.CourtID})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	// Для конкретной даты сортируем по времени, иначе - сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("court_id ASC, start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel отменяет бронирование: статус cancelled освобождает интервал
// для exclusion constraint (его предикат игнорирует отмененные строки)
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// UpdatePayment записывает абсолютную сумму оплаты и новый статус.
// Расчет статуса (paid/deposit/unpaid) - ответственность сервисного слоя.
func (r *Repository) UpdatePayment(ctx context.Context, id int64, paidAmount float64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("paid_amount", paidAmount).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdatePayment", query, args)
}

// SetHold устанавливает или снимает (heldAt == nil) отметку корзины.
// Бронирование с отметкой корзины освобождается от expiry sweep.
func (r *Repository) SetHold(ctx context.Context, id int64, heldAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("held_in_cart_since", heldAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetHold - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetHold", query, args)
}

// DeleteExpired физически удаляет недоплаченные бронирования площадки,
// созданные до cutoff. Возвращает количество удаленных строк.
//
// Критерии удаления:
//   - created_at < cutoff (tolerance площадки уже вычтен вызывающим)
//   - нет отметки корзины (held_in_cart_since IS NULL)
//   - статус не из защищенного набора (cancelled, completed)
//   - процент оплаты ниже minDepositPercent; price <= 0 считается как 0%
//
// Жесткое удаление намеренное: слот должен стать свободным для
// exclusion constraint, а не остаться интервалом-призраком.
// Операция идемпотентна - повторный запуск с тем же cutoff удаляет 0 строк.
func (r *Repository) DeleteExpired(ctx context.Context, venueID int64, cutoff time.Time, minDepositPercent float64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	protected := make([]string, len(domain.SweepProtectedStatuses))
	for i, s := range domain.SweepProtectedStatuses {
		protected[i] = string(s)
	}

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Lt{"created_at": cutoff}).
		Where(squirrel.Eq{"held_in_cart_since": nil}).
		Where(squirrel.NotEq{"status": protected}).
		Where(squirrel.Expr(
			"(CASE WHEN price <= 0 THEN 0 ELSE paid_amount * 100.0 / price END) < ?",
			minDepositPercent,
		)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// execExpectingRow выполняет мутацию, которая обязана затронуть одну строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в domain.Booking
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var heldSince, cancelledAt, createdAt, updatedAt sql.NullTime
	var idempotencyKey uuid.NullUUID

	err := row.Scan(
		&booking.ID,
		&booking.VenueID,
		&booking.CourtID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationHours,
		&booking.Status,
		&booking.Price,
		&booking.PaidAmount,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&heldSince,
		&idempotencyKey,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if heldSince.Valid {
		booking.HeldInCartSince = &heldSince.Time
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	if idempotencyKey.Valid {
		booking.IdempotencyKey = &idempotencyKey.UUID
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// uuidValue конвертирует *uuid.UUID в NULL-совместимое значение
func uuidValue(key *uuid.UUID) uuid.NullUUID {
	if key == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *key, Valid: true}
}

// isConstraintViolation проверяет код и имя нарушенного constraint'а
func isConstraintViolation(err error, code, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == code && pqErr.Constraint == constraint
}
