package layout

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatInteger renders whole numbers with thousands grouping. Fractional
// values render as the empty string so only integral axis ticks are labelled.
func FormatInteger(v float64) string {
	if v != math.Trunc(v) {
		return ""
	}
	return humanize.FormatFloat("#,###.", v)
}

// FormatOneDecimal renders v with thousands grouping and one decimal.
func FormatOneDecimal(v float64) string {
	return humanize.FormatFloat("#,###.#", v)
}

// FormatPlain renders v in its shortest exact form ("6", "2.5").
func FormatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MonthName returns the short name of a zero based month index, or "".
func MonthName(i int) string {
	if i < 0 || i >= len(monthNames) {
		return ""
	}
	return monthNames[i]
}

// MonthTickLabel labels the i-th tick of the month axis: tick 0 is blank and
// ticks 1..12 carry Jan..Dec.
func MonthTickLabel(i int) string {
	if i <= 0 {
		return ""
	}
	return MonthName(i - 1)
}

// Pluralize renders a like count: singular exactly when n == 1.
func Pluralize(n int) string {
	if n == 1 {
		return "1 like"
	}
	return strconv.Itoa(n) + " likes"
}
