package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrBookingCancelled возвращается при операции над отмененным бронированием
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrPaymentExceedsPrice возвращается, когда оплата превысила бы цену.
	// Инвариант paid_amount <= price проверяется на записи, а не молча
	// доверяется входным данным.
	ErrPaymentExceedsPrice = errors.New("payment exceeds booking price")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
