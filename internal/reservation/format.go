package reservation

import (
	"fmt"
	"time"
)

var weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDateES renders a date the way the mobile client showed it:
// "lunes, 2 de marzo de 2026".
func FormatDateES(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysES[int(t.Weekday())], t.Day(), monthsES[int(t.Month())-1], t.Year())
}

// FormatPriceARS renders an amount in Argentine pesos with thousands
// separators: "$ 10.000,00".
func FormatPriceARS(amount float64) string {
	cents := int64(amount*100 + 0.5)
	if amount < 0 {
		cents = -int64(-amount*100 + 0.5)
	}
	whole := cents / 100
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}

	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}

	digits := fmt.Sprintf("%d", whole)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("%s$ %s,%02d", sign, grouped, frac)
}
