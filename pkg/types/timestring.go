package types

import (
	"database/sql/driver"
	"fmt"
	"math"
	"time"
)

// timeFormat формат времени HH:MM (24-часовой)
const timeFormat = "15:04"

// minutesPerDay количество минут в сутках
const minutesPerDay = 24 * 60

// TimeString представляет время суток в формате "HH:MM".
// Используется как граничное представление времени (API, БД),
// внутренняя арифметика интервалов выполняется в десятичных часах.
type TimeString string

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromHour создает TimeString из целого часа суток (0-23)
func NewTimeStringFromHour(hour int) TimeString {
	return TimeString(fmt.Sprintf("%02d:00", hour))
}

// NewTimeStringFromDecimalHours создает TimeString из десятичных часов.
// Минуты округляются до ближайшей целой минуты.
// Round-trip гарантия: DecimalHours() -> NewTimeStringFromDecimalHours()
// возвращает исходное значение для любого валидного "HH:MM".
func NewTimeStringFromDecimalHours(hours float64) (TimeString, error) {
	totalMinutes := int(math.Round(hours * 60))
	if totalMinutes < 0 || totalMinutes >= minutesPerDay {
		return "", fmt.Errorf("decimal hours %v is out of range [0, 24)", hours)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что строка соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	if t.IsZero() {
		return fmt.Errorf("time string is empty")
	}
	if _, err := time.Parse(timeFormat, string(t)); err != nil {
		return fmt.Errorf("invalid time string format %q, expected HH:MM: %v", string(t), err)
	}
	return nil
}

// Clock возвращает часы и минуты
func (t TimeString) Clock() (hour, minute int, err error) {
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time string %q: %v", string(t), err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// DecimalHours возвращает время как десятичные часы (hour + minute/60).
// Внутреннее представление для арифметики пересечения интервалов.
func (t TimeString) DecimalHours() (float64, error) {
	hour, minute, err := t.Clock()
	if err != nil {
		return 0, err
	}
	return float64(hour) + float64(minute)/60.0, nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед.
// Выход за границу суток считается ошибкой (бронирования не пересекают полночь).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	hour, minute, err := t.Clock()
	if err != nil {
		return "", err
	}

	total := hour*60 + minute + minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("time %s + %d minutes is out of day bounds", t, minutes)
	}
	// Граница суток: 24:00 не представима как время, но используется только
	// как конец интервала и не должна попадать в TimeString
	if total == minutesPerDay {
		return "", fmt.Errorf("time %s + %d minutes crosses midnight", t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// AddHours возвращает новое время, сдвинутое на hours часов вперед
func (t TimeString) AddHours(hours int) (TimeString, error) {
	return t.AddMinutes(hours * 60)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.totalMinutes() < other.totalMinutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.totalMinutes() > other.totalMinutes()
}

// totalMinutes возвращает минуты с начала суток (-1 для невалидного значения)
func (t TimeString) totalMinutes() int {
	hour, minute, err := t.Clock()
	if err != nil {
		return -1
	}
	return hour*60 + minute
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Postgres TIME может приходить как time.Time, string или []byte
// в зависимости от драйвера.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres возвращает TIME как "15:04:05", обрезаем секунды
	if len(s) > len(timeFormat) {
		s = s[:len(timeFormat)]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
