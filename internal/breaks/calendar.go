// Package breaks computes the static morning break and the staggered
// per-semester meal windows, grounded in spec.md §3 (Break calendar) and
// §4.5.
package breaks

import (
	"sort"
	"time"

	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

const (
	mealPeriodStartHour, mealPeriodStartMinute = 12, 30
	mealPeriodEndHour, mealPeriodEndMinute     = 14, 0
	mealDurationMinutes                        = 60
)

// Window is a half-open [start, end) wall-clock meal window.
type Window struct {
	Start time.Time
	End   time.Time
}

// Calendar holds the computed meal window per semester base, plus the fixed
// morning break.
type Calendar struct {
	meals map[int]Window
}

// New computes a Calendar for the given set of distinct semester bases (the
// leading digit of each semester label present in the catalog). The open
// question on a stagger that runs past MEAL_PERIOD_END (spec.md §9) is left
// unclamped, matching the original's accepted-as-is behavior.
func New(semesterBases []int) *Calendar {
	bases := uniqueSorted(semesterBases)
	cal := &Calendar{meals: make(map[int]Window, len(bases))}

	if len(bases) == 0 {
		return cal
	}

	base := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	periodStart := base.Add(time.Duration(mealPeriodStartHour)*time.Hour + time.Duration(mealPeriodStartMinute)*time.Minute)
	periodEnd := base.Add(time.Duration(mealPeriodEndHour)*time.Hour + time.Duration(mealPeriodEndMinute)*time.Minute)
	totalWindow := int(periodEnd.Sub(periodStart).Minutes())

	denom := len(bases) - 1
	if denom < 1 {
		denom = 1
	}
	staggerInterval := (totalWindow - mealDurationMinutes) / denom

	for i, sem := range bases {
		offset := 0
		if len(bases) > 1 {
			offset = i * staggerInterval
		}
		start := periodStart.Add(time.Duration(offset) * time.Minute)
		end := start.Add(mealDurationMinutes * time.Minute)
		cal.meals[sem] = Window{Start: start, End: end}
	}
	return cal
}

// IsBreak reports whether the slot falls in the morning break or in the meal
// window for the given semester base.
func (c *Calendar) IsBreak(slot timeslot.Slot, semesterBase int) bool {
	if slot.IsMorningBreak() {
		return true
	}
	window, ok := c.meals[semesterBase]
	if !ok {
		return false
	}
	return !slot.Start.Before(window.Start) && slot.Start.Before(window.End)
}

// MealWindow returns the computed meal window for a semester base.
func (c *Calendar) MealWindow(semesterBase int) (Window, bool) {
	w, ok := c.meals[semesterBase]
	return w, ok
}

func uniqueSorted(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
