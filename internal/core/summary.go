package core

import (
	"sort"
	"time"
)

// CategoryHours is a total keyed by a category or subcategory name.
type CategoryHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// DayHours is a total for one calendar day.
type DayHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// The reducers below are total functions over caller-supplied entry slices:
// empty input yields an empty (or zero-filled) result, never a failure.
// Callers pre-filter with the entry store's query operations.

// HoursByOwner sums entry hours grouped by owner key.
func HoursByOwner(entries []TimeEntry) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.OwnerKey] += e.Hours
	}
	return totals
}

// HoursByMainCategory sums entry hours grouped by main category.
func HoursByMainCategory(entries []TimeEntry) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.MainCategory] += e.Hours
	}
	return totals
}

// TopSubCategories sums entry hours grouped by subcategory, sorted by total
// descending (name ascending on ties, for a stable presentation order). A
// positive n truncates the result to the top n groups.
func TopSubCategories(entries []TimeEntry, n int) []CategoryHours {
	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.SubCategory] += e.Hours
	}
	out := make([]CategoryHours, 0, len(totals))
	for name, hours := range totals {
		out = append(out, CategoryHours{Name: name, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// HoursByDay sums entry hours per calendar day over the inclusive range
// [start, end], one element per day in chronological order, zero-filled for
// days without entries. Entries outside the range are ignored. The only
// failure mode is a malformed range date.
func HoursByDay(entries []TimeEntry, start, end string) ([]DayHours, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, ErrInvalidDate
	}

	totals := make(map[string]float64)
	for _, e := range entries {
		if e.Date >= start && e.Date <= end {
			totals[e.Date] += e.Hours
		}
	}

	var out []DayHours
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		out = append(out, DayHours{Date: date, Hours: totals[date]})
	}
	return out, nil
}
