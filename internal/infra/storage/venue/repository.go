package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// venueColumns полный набор колонок таблицы venues
var venueColumns = []string{
	"id",
	"name",
	"open_hour",
	"close_hour",
	"tolerance_minutes",
	"min_deposit_percent",
	"is_active",
	"created_at",
	"updated_at",
}

// courtColumns полный набор колонок таблицы courts
var courtColumns = []string{
	"id",
	"venue_id",
	"court_number",
	"name",
	"hourly_rate",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками и кортами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID (включая деактивированные - проверка
// активности остается за вызывающим слоем)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	venue, err := r.scanVenue(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %v", ErrScanRow, err)
	}

	return venue, nil
}

// ListActive получает все активные площадки.
// Используется expiry sweeper'ом для обхода площадок.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		venue, err := r.scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

// UpdateConfig обновляет политику бронирования площадки.
// Валидация значений (open < close, неотрицательные tolerance/deposit) -
// ответственность сервисного слоя.
func (r *Repository) UpdateConfig(ctx context.Context, venueID int64, openHour, closeHour, toleranceMinutes int, minDepositPercent float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("open_hour", openHour).
		Set("close_hour", closeHour).
		Set("tolerance_minutes", toleranceMinutes).
		Set("min_deposit_percent", minDepositPercent).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": venueID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVenueNotFound
	}

	return nil
}

// GetCourt получает корт по ID
func (r *Repository) GetCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"id": courtID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - build select query: %v", ErrBuildQuery, err)
	}

	court, err := r.scanCourt(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - scan court: %v", ErrScanRow, err)
	}

	return court, nil
}

// ListActiveCourts получает активные корты площадки, упорядоченные
// по номеру корта - стабильный порядок для сетки доступности
func (r *Repository) ListActiveCourts(ctx context.Context, venueID int64) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("court_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		court, err := r.scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveCourts - scan row: %v", ErrScanRow, err)
		}
		courts = append(courts, court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveCourts - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanVenue(row rowScanner) (*domain.Venue, error) {
	var venue domain.Venue
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.OpenHour,
		&venue.CloseHour,
		&venue.ToleranceMinutes,
		&venue.MinDepositPercent,
		&venue.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return &venue, nil
}

func (r *Repository) scanCourt(row rowScanner) (*domain.Court, error) {
	var court domain.Court
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&court.ID,
		&court.VenueID,
		&court.CourtNumber,
		&court.Name,
		&court.HourlyRate,
		&court.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	court.CreatedAt = createdAt.Time
	court.UpdatedAt = updatedAt.Time

	return &court, nil
}
