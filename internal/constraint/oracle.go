// Package constraint implements the pedagogical constraint oracle: break
// overlap, instructor daily load, same-course spacing, and adjacent-lecture
// buffering, grounded in spec.md §4.2.
package constraint

import (
	"github.com/andes-indica/timetable-scheduler/internal/breaks"
	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/registry"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

// Oracle evaluates whether a candidate placement violates any of the
// scheduler's pedagogical rules.
type Oracle struct {
	calendar    *breaks.Calendar
	instructors *registry.InstructorRegister
}

// New builds an oracle over the given break calendar and instructor register.
func New(calendar *breaks.Calendar, instructors *registry.InstructorRegister) *Oracle {
	return &Oracle{calendar: calendar, instructors: instructors}
}

// IsBreak reports whether the slot falls in a break for the given semester.
func (o *Oracle) IsBreak(slot timeslot.Slot, semesterBase int) bool {
	return o.calendar.IsBreak(slot, semesterBase)
}

// Reserved always reports false: spec.md §4.2 keeps the reserved-slot hook
// with its full signature for future extension, but no reservation source
// exists yet.
func (o *Oracle) Reserved(slot timeslot.Slot, day timeslot.Day, semesterBase int, department string) bool {
	return false
}

// InstructorDailyLoad reports whether the instructor can take on one more
// class component (LEC/LAB/TUT) on the given day, given what they've
// already been assigned on that day in this section's timetable.
//
// Non-elective courses cap at 2 components/day. Elective courses relax the
// cap to 3 when this section's timetable already holds a session from the
// same elective group that day (taught by anyone), otherwise they're capped
// at 2 like any other course (spec.md §4.2 check_faculty_daily_components).
func (o *Oracle) InstructorDailyLoad(tt *domain.Timetable, faculty string, day timeslot.Day, courseCode string, isElective bool) bool {
	componentCount := 0
	countedElectiveCodes := make(map[string]struct{})

	for slot := 0; slot < 19; slot++ {
		cell := tt.At(day, slot)
		if cell.Faculty != faculty || !cell.Kind.IsClassComponent() {
			continue
		}
		code := cell.Code
		if code == "" {
			continue
		}
		if !domain.IsElectiveCode(code) {
			componentCount++
			continue
		}
		if _, seen := countedElectiveCodes[code]; !seen {
			componentCount++
			countedElectiveCodes[code] = struct{}{}
		}
	}

	if isElective {
		group := domain.ElectiveGroupOf(courseCode)
		if hasElectiveGroupSlot(tt, day, group) {
			return componentCount < 3
		}
	}
	return componentCount < 2
}

func hasElectiveGroupSlot(tt *domain.Timetable, day timeslot.Day, group string) bool {
	for slot := 0; slot < 19; slot++ {
		code := tt.At(day, slot).Code
		if code != "" && domain.ElectiveGroupOf(code) == group {
			return true
		}
	}
	return false
}

// requiredGapSlots is the minimum slot distance enforced between two
// sessions of the same course with the same instructor: 3 hours == 6
// 30-minute slots.
const requiredGapSlots = 6

// SameCourseSpacing reports whether placing a LEC/TUT session of courseCode
// at startSlot keeps at least requiredGapSlots away from every other
// LEC/TUT session of the same course taught by the same instructor that
// day. Labs and self-study sessions are exempt (spec.md §4.2
// check_faculty_course_gap).
func (o *Oracle) SameCourseSpacing(tt *domain.Timetable, faculty, courseCode string, day timeslot.Day, startSlot int) bool {
	lo := startSlot - requiredGapSlots
	if lo < 0 {
		lo = 0
	}
	hi := startSlot + requiredGapSlots
	if hi > 19 {
		hi = 19
	}
	for slot := lo; slot < hi; slot++ {
		if slot == startSlot {
			continue
		}
		cell := tt.At(day, slot)
		if cell.Code == courseCode && cell.Faculty == faculty && (cell.Kind == timeslot.LEC || cell.Kind == timeslot.TUT) {
			return false
		}
	}
	return true
}

// AdjacentLectureBuffer reports whether placing a LEC session across
// [startSlot, startSlot+length) keeps a Buffer-slot gap from any other
// LEC/LAB/TUT session immediately before or after it (spec.md §4.2
// is_lecture_scheduled, applied only to LEC placements).
func (o *Oracle) AdjacentLectureBuffer(tt *domain.Timetable, day timeslot.Day, startSlot, length int) bool {
	before := tt.HasClassComponentAdjacent(day, startSlot-timeslot.Buffer, startSlot)
	after := tt.HasClassComponentAdjacent(day, startSlot+length, startSlot+length+timeslot.Buffer)
	return !before && !after
}
