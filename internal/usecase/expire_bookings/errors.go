package expire_bookings

import "errors"

var (
	// ErrInternal возвращается, когда развертка не смогла начаться
	// (например, не удалось получить список площадок). Ошибки отдельных
	// площадок НЕ прерывают развертку - они собираются в Report.
	ErrInternal = errors.New("expire_bookings: internal error")
)
