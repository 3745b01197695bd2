// Package timeslot defines the fixed discretization of the working day and
// the tagged variant for session kinds, grounded in spec.md §3/§6's Constants.
package timeslot

import "time"

const (
	// dayStart* and dayEnd* bound the scheduled day. 09:00–18:30 in 30-minute
	// slots yields 19 slots indexed 0..18.
	dayStartHour, dayStartMinute = 9, 0
	dayEndHour, dayEndMinute     = 18, 30

	slotMinutes = 30

	// morningBreakStart*/morningBreakEnd* are the fixed 10:30–11:00 morning break.
	morningBreakStartHour, morningBreakStartMinute = 10, 30
	morningBreakEndHour, morningBreakEndMinute     = 11, 0

	// Buffer is the single-slot gap enforced around lecture placements.
	Buffer = 1
)

// Day indexes a class day, Monday=0 .. Friday=4.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Days lists the five scheduled class days in order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// dayNames gives the display name for each day.
var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// String returns the day's display name.
func (d Day) String() string {
	if int(d) < 0 || int(d) >= len(dayNames) {
		return "Unknown"
	}
	return dayNames[d]
}

// Slot is a half-open [start, end) wall-clock window on a generic weekday.
type Slot struct {
	Index int
	Start time.Time
	End   time.Time
}

// Grid is the ordered sequence of slots partitioning the working day.
type Grid struct {
	slots []Slot
}

// NewGrid builds the fixed 30-minute slot grid from 09:00 to 18:30.
func NewGrid() *Grid {
	base := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	start := base.Add(time.Duration(dayStartHour)*time.Hour + time.Duration(dayStartMinute)*time.Minute)
	end := base.Add(time.Duration(dayEndHour)*time.Hour + time.Duration(dayEndMinute)*time.Minute)

	var slots []Slot
	for cur := start; cur.Before(end); cur = cur.Add(slotMinutes * time.Minute) {
		slots = append(slots, Slot{
			Index: len(slots),
			Start: cur,
			End:   cur.Add(slotMinutes * time.Minute),
		})
	}
	return &Grid{slots: slots}
}

// Len returns the number of slots in the day (19 for the fixed window).
func (g *Grid) Len() int { return len(g.slots) }

// At returns the slot at the given index.
func (g *Grid) At(index int) Slot { return g.slots[index] }

// Label renders a slot as "HH:MM-HH:MM", the xlsx header format spec.md §6
// requires.
func (s Slot) Label() string {
	return s.Start.Format("15:04") + "-" + s.End.Format("15:04")
}

// IsMorningBreak reports whether the slot falls in the fixed 10:30–11:00
// morning break.
func (s Slot) IsMorningBreak() bool {
	base := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	breakStart := base.Add(time.Duration(morningBreakStartHour)*time.Hour + time.Duration(morningBreakStartMinute)*time.Minute)
	breakEnd := base.Add(time.Duration(morningBreakEndHour)*time.Hour + time.Duration(morningBreakEndMinute)*time.Minute)
	return !s.Start.Before(breakStart) && s.Start.Before(breakEnd)
}

// Kind is the tagged variant for a session's activity type.
type Kind int

const (
	// None marks an empty slot.
	None Kind = iota
	LEC
	TUT
	LAB
	SS
)

// String renders the kind's short code, as used in the catalog and the
// rendered workbook.
func (k Kind) String() string {
	switch k {
	case LEC:
		return "LEC"
	case TUT:
		return "TUT"
	case LAB:
		return "LAB"
	case SS:
		return "SS"
	default:
		return ""
	}
}

// Length returns the slot count a session of this kind occupies.
func (k Kind) Length() int {
	switch k {
	case LEC:
		return 3
	case LAB:
		return 4
	case TUT:
		return 2
	case SS:
		return 2
	default:
		return 0
	}
}

// IsClassComponent reports whether the kind counts toward the instructor's
// daily component load (LEC/LAB/TUT do, SS does not — spec.md §4.2).
func (k Kind) IsClassComponent() bool {
	return k == LEC || k == LAB || k == TUT
}
