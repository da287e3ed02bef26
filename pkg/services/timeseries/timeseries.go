// Package timeseries buckets dates into month and ISO-week keys and emits
// gap-free series for charts. All arithmetic is done in UTC.
package timeseries

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

type Point[T any] struct {
	Key   string
	Value T
}

// MonthKey formats t as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ISOWeekKey formats t as "YYYY-Www" using the ISO-8601 week-numbering year.
func ISOWeekKey(t time.Time) string {
	year, week := ISOWeek(t)
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ISOWeek shifts the date to the Thursday of its week (Sunday counts as day
// 7) and numbers weeks from the first Thursday of that Thursday's year.
func ISOWeek(t time.Time) (year, week int) {
	d := truncateDay(t)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := d.AddDate(0, 0, 4-weekday)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart) / day)
	return thursday.Year(), days/7 + 1
}

// TrailingMonths returns n month keys, oldest first, ending with now's month.
func TrailingMonths(now time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	first := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = MonthKey(first.AddDate(0, i-(n-1), 0))
	}
	return keys
}

// TrailingWeeks returns n ISO week keys, oldest first, ending with now's week.
func TrailingWeeks(now time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	d := truncateDay(now)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = ISOWeekKey(d.AddDate(0, 0, -7*(n-1-i)))
	}
	return keys
}

// FillGaps returns exactly one point per key in the given order. Keys absent
// from buckets get the zero value of T; buckets outside keys are dropped.
func FillGaps[T any](buckets map[string]T, keys []string) []Point[T] {
	out := make([]Point[T], len(keys))
	for i, k := range keys {
		out[i] = Point[T]{Key: k, Value: buckets[k]}
	}
	return out
}

// DaysBetween is the fractional number of days from one instant to another.
func DaysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
