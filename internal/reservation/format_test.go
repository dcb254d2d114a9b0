package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateES(t *testing.T) {
	assert.Equal(t, "lunes, 2 de marzo de 2026",
		FormatDateES(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "sábado, 28 de febrero de 2026",
		FormatDateES(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "jueves, 31 de diciembre de 2026",
		FormatDateES(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.Local)))
}

func TestFormatPriceARS(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$ 0,00"},
		{950, "$ 950,00"},
		{10000, "$ 10.000,00"},
		{10000.5, "$ 10.000,50"},
		{1234567.89, "$ 1.234.567,89"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPriceARS(tt.amount))
	}
}
