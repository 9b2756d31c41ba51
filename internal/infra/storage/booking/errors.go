package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда exclusion constraint отклонил вставку:
	// интервал пересекается с существующим активным бронированием.
	// Ожидаемая ошибка, не системный сбой.
	ErrSlotConflict = errors.New("booking.repository: slot conflicts with an existing booking")

	// ErrDuplicateRequest возвращается при повторной вставке с тем же
	// идемпотентным ключом
	ErrDuplicateRequest = errors.New("booking.repository: duplicate idempotency key")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
