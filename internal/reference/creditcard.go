package reference

import "time"

// CreditCardMonths lists the selectable expiration months starting at
// startMonth (1-12). A start month outside that range falls back to 1.
func CreditCardMonths(startMonth int) []int {
	if startMonth < 1 || startMonth > 12 {
		startMonth = 1
	}
	months := make([]int, 0, 12-startMonth+1)
	for m := startMonth; m <= 12; m++ {
		months = append(months, m)
	}
	return months
}

// CreditCardYears lists the current year plus the next ten.
func CreditCardYears() []int {
	start := time.Now().Year()
	years := make([]int, 0, 11)
	for y := start; y <= start+10; y++ {
		years = append(years, y)
	}
	return years
}
