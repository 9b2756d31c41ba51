package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена или деактивирована
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrCourtNotFound возвращается, когда корт не найден или деактивирован
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrCourtNotInVenue возвращается, когда корт принадлежит другой площадке
	ErrCourtNotInVenue = errors.New("create_booking: court does not belong to this venue")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// бронированием. Ожидаемый исход гонки за слот, а не системный сбой.
	ErrSlotConflict = errors.New("create_booking: slot is already booked")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит
	// за рабочие часы площадки
	ErrOutsideOperatingHours = errors.New("create_booking: interval is outside operating hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
