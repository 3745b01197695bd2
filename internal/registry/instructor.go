// Package registry holds the scheduler's global resource registers: the
// instructor occupancy register and the room occupancy register. Both are
// shared, mutable structures threaded explicitly through the placement
// engine rather than module-level globals (spec.md §9 Design Notes).
package registry

import (
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

// InstructorRegister tracks which (day, slot) pairs each instructor is
// already committed to, across every section being scheduled (spec.md §3
// Instructor register: global, shared across sections).
type InstructorRegister struct {
	occupied map[string][5]map[int]struct{}
}

// NewInstructorRegister builds an empty register.
func NewInstructorRegister() *InstructorRegister {
	return &InstructorRegister{occupied: make(map[string][5]map[int]struct{})}
}

func (r *InstructorRegister) ensure(faculty string) [5]map[int]struct{} {
	days, ok := r.occupied[faculty]
	if !ok {
		for d := range days {
			days[d] = make(map[int]struct{})
		}
		r.occupied[faculty] = days
	}
	return days
}

// IsBusy reports whether the instructor already has a commitment at (day, slot).
func (r *InstructorRegister) IsBusy(faculty string, day timeslot.Day, slot int) bool {
	days, ok := r.occupied[faculty]
	if !ok {
		return false
	}
	_, busy := days[day][slot]
	return busy
}

// Reserve marks [startSlot, startSlot+length) as occupied for the instructor
// on the given day.
func (r *InstructorRegister) Reserve(faculty string, day timeslot.Day, startSlot, length int) {
	days := r.ensure(faculty)
	for i := 0; i < length; i++ {
		days[day][startSlot+i] = struct{}{}
	}
}
