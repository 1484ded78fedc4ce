package core

import (
	"reflect"
	"testing"
)

func entry(owner, date string, hours float64, main, sub string) TimeEntry {
	return TimeEntry{
		OwnerKey:     owner,
		Date:         date,
		Hours:        hours,
		MainCategory: main,
		SubCategory:  sub,
	}
}

func TestHoursByOwner(t *testing.T) {
	entries := []TimeEntry{
		entry("1", "2024-01-01", 3, "Development", "Backend"),
		entry("2", "2024-01-01", 2, "Design", "UI Design"),
		entry("1", "2024-01-02", 1.5, "Meeting", "Team Meeting"),
	}
	got := HoursByOwner(entries)
	want := map[string]float64{"1": 4.5, "2": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := HoursByOwner(nil); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %v", got)
	}
}

func TestHoursByMainCategory(t *testing.T) {
	entries := []TimeEntry{
		entry("1", "2024-01-01", 3, "Development", "Backend"),
		entry("2", "2024-01-01", 2, "Development", "Frontend"),
		entry("1", "2024-01-02", 1, "Design", "UI Design"),
	}
	got := HoursByMainCategory(entries)
	want := map[string]float64{"Development": 5, "Design": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTopSubCategories(t *testing.T) {
	entries := []TimeEntry{
		entry("1", "2024-01-01", 4, "Development", "Backend"),
		entry("1", "2024-01-02", 2, "Development", "Frontend"),
		entry("1", "2024-01-03", 2, "Development", "Backend"),
		entry("1", "2024-01-04", 2, "Design", "UI Design"),
		entry("1", "2024-01-05", 2, "Meeting", "Team Meeting"),
	}

	got := TopSubCategories(entries, 0)
	want := []CategoryHours{
		{Name: "Backend", Hours: 6},
		{Name: "Frontend", Hours: 2},
		{Name: "Team Meeting", Hours: 2},
		{Name: "UI Design", Hours: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	top2 := TopSubCategories(entries, 2)
	if len(top2) != 2 || top2[0].Name != "Backend" || top2[1].Name != "Frontend" {
		t.Fatalf("expected top 2 [Backend Frontend], got %v", top2)
	}

	if got := TopSubCategories(nil, 10); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %v", got)
	}
}

func TestHoursByDay(t *testing.T) {
	entries := []TimeEntry{
		entry("1", "2024-01-01", 2, "Development", "Backend"),
		entry("1", "2024-01-01", 1.5, "Meeting", "Team Meeting"),
		entry("1", "2024-01-03", 4, "Design", "UI Design"),
		entry("1", "2024-02-01", 8, "Leave", "Annual Leave"), // outside range
	}
	got, err := HoursByDay(entries, "2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []DayHours{
		{Date: "2024-01-01", Hours: 3.5},
		{Date: "2024-01-02", Hours: 0},
		{Date: "2024-01-03", Hours: 4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHoursByDayEmptyInput(t *testing.T) {
	got, err := HoursByDay(nil, "2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 zero-filled days, got %d", len(got))
	}
	for i, d := range got {
		if d.Hours != 0 {
			t.Fatalf("day %d expected zero hours, got %v", i, d.Hours)
		}
	}
	if got[0].Date != "2024-01-01" || got[2].Date != "2024-01-03" {
		t.Fatalf("days out of order: %v", got)
	}
}

func TestHoursByDayInvalidRange(t *testing.T) {
	if _, err := HoursByDay(nil, "bogus", "2024-01-03"); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	// Inverted range yields no days, not an error.
	got, err := HoursByDay(nil, "2024-01-05", "2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result for inverted range, got %v", got)
	}
}
