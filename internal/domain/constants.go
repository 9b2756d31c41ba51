package domain

// Default venue policy values
const (
	DefaultToleranceMinutes  = 15
	DefaultMinDepositPercent = 50.0
)

// Business validation constants
const (
	MinDurationHours = 1
	MaxDurationHours = 12 // защита от опечаток, один корт на полдня максимум

	MinOperatingHour = 0
	MaxOperatingHour = 24

	MaxCustomerNameLength  = 200
	MaxCustomerPhoneLength = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SweepProtectedStatuses статусы, которые уборщик никогда не удаляет.
// Отмененные бронирования уже не занимают слот, завершенные - история.
var SweepProtectedStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// AllStatuses полный закрытый набор статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusPaid,
	StatusDeposit,
	StatusUnpaid,
	StatusCancelled,
	StatusCompleted,
}
