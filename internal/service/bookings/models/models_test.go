package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

func TestToDomainBookingStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.BookingStatus
		wantErr bool
	}{
		// Канонические значения
		{input: "pending", want: domain.StatusPending},
		{input: "paid", want: domain.StatusPaid},
		{input: "deposit", want: domain.StatusDeposit},
		{input: "unpaid", want: domain.StatusUnpaid},
		{input: "cancelled", want: domain.StatusCancelled},
		{input: "completed", want: domain.StatusCompleted},
		// Legacy-словарь партнерского API
		{input: "LUNAS", want: domain.StatusPaid},
		{input: "DP", want: domain.StatusDeposit},
		{input: "BELUM_BAYAR", want: domain.StatusUnpaid},
		// Набор закрыт
		{input: "PAID", wantErr: true},
		{input: "lunas", wantErr: true},
		{input: "", wantErr: true},
		{input: "unknown", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := models.ToDomainBookingStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLegacyStatusName(t *testing.T) {
	assert.Equal(t, "LUNAS", models.LegacyStatusName(domain.StatusPaid))
	assert.Equal(t, "DP", models.LegacyStatusName(domain.StatusDeposit))
	assert.Equal(t, "BELUM_BAYAR", models.LegacyStatusName(domain.StatusUnpaid))

	// Статусы без legacy-имени возвращаются как есть
	assert.Equal(t, "pending", models.LegacyStatusName(domain.StatusPending))
	assert.Equal(t, "cancelled", models.LegacyStatusName(domain.StatusCancelled))
	assert.Equal(t, "completed", models.LegacyStatusName(domain.StatusCompleted))
}
