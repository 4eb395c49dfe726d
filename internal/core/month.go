package core

import "time"

const monthKeyLayout = "2006-01"

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

// MonthKeyOf returns the month key of t in t's location. It reports false
// for the zero time.
func MonthKeyOf(t time.Time) (MonthKey, bool) {
	if t.IsZero() {
		return "", false
	}
	return MonthKey(t.Format(monthKeyLayout)), true
}

// TrailingMonths returns the n month keys ending with the month of now,
// oldest first, computed in now's location.
func TrailingMonths(now time.Time, n int) []MonthKey {
	if n <= 0 {
		return nil
	}
	keys := make([]MonthKey, 0, n)
	y, m, _ := now.Date()
	for i := n - 1; i >= 0; i-- {
		first := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		keys = append(keys, MonthKey(first.Format(monthKeyLayout)))
	}
	return keys
}

// Label renders the key as e.g. "Mar 2024". Malformed keys are returned as is.
func (k MonthKey) Label() string {
	t, err := time.Parse(monthKeyLayout, string(k))
	if err != nil {
		return string(k)
	}
	return t.Format("Jan 2006")
}
