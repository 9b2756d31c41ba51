package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "08:00", want: "08:00"},
		{name: "valid evening", input: "19:30", want: "19:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "empty", input: "", wantErr: true},
		{name: "no leading zero", input: "8:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_DecimalHours(t *testing.T) {
	tests := []struct {
		input types.TimeString
		want  float64
	}{
		{"00:00", 0},
		{"08:00", 8},
		{"19:30", 19.5},
		{"09:15", 9.25},
		{"23:59", 23 + 59.0/60.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			got, err := tt.input.DecimalHours()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// Round-trip: для любого валидного "HH:MM" конвертация в десятичные часы
// и обратно возвращает исходное значение
func TestTimeString_DecimalHoursRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 7 {
			original := types.NewTimeStringFromHour(hour)
			original, err := original.AddMinutes(minute)
			require.NoError(t, err)

			hours, err := original.DecimalHours()
			require.NoError(t, err)

			back, err := types.NewTimeStringFromDecimalHours(hours)
			require.NoError(t, err)
			assert.Equal(t, original, back)
		}
	}
}

func TestNewTimeStringFromDecimalHours_OutOfRange(t *testing.T) {
	_, err := types.NewTimeStringFromDecimalHours(-0.5)
	assert.Error(t, err)

	_, err = types.NewTimeStringFromDecimalHours(24.0)
	assert.Error(t, err)
}

func TestTimeString_AddHours(t *testing.T) {
	start := types.TimeString("19:00")

	end, err := start.AddHours(2)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("21:00"), end)

	// Бронирования не пересекают полночь
	_, err = start.AddHours(5)
	assert.Error(t, err)

	_, err = start.AddHours(6)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, types.TimeString("08:00").IsBefore("08:30"))
	assert.True(t, types.TimeString("21:00").IsAfter("08:30"))
	assert.False(t, types.TimeString("10:00").IsBefore("10:00"))
	assert.False(t, types.TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts types.TimeString

	// Postgres TIME приходит как time.Time у части драйверов
	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 19, 30, 0, 0, time.UTC)))
	assert.Equal(t, types.TimeString("19:30"), ts)

	// lib/pq отдает строку с секундами
	require.NoError(t, ts.Scan("08:00:00"))
	assert.Equal(t, types.TimeString("08:00"), ts)

	require.NoError(t, ts.Scan([]byte("21:00:00")))
	assert.Equal(t, types.TimeString("21:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := types.TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = types.TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
