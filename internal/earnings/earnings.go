// Package earnings converts tracked time into money.
package earnings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultConversionRate is the fixed USD to INR multiplier.
const DefaultConversionRate = 85

const secondsInAnHour = 3600

// Compute returns the earnings in the local currency for the elapsed
// seconds at the given hourly rate, rounded to two decimal places.
func Compute(elapsedSeconds, hourlyRateUSD, conversionRate float64) float64 {
	hours := elapsedSeconds / secondsInAnHour

	return Round(hours * hourlyRateUSD * conversionRate)
}

// Round rounds an amount half away from zero to two decimal places.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Format renders an amount with two decimal places.
func Format(amount float64) string {
	return strconv.FormatFloat(Round(amount), 'f', 2, 64)
}

// FormatINR renders an amount in rupees.
func FormatINR(amount float64) string {
	return "₹" + Format(amount)
}

// FormatUSD renders an amount in dollars.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%s", Format(amount))
}

// ParseRate parses a user supplied hourly rate. Text that is empty, not a
// number, negative or not finite yields zero.
func ParseRate(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
