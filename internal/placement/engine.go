// Package placement implements the priority-ordered placement engine:
// course priority scoring, lab-courses-first course ordering, random-restart
// search for LEC/TUT/SS, and systematic day-shuffle enumeration for LAB,
// grounded in spec.md §4.4. Courses are placed one at a time, each in the
// order lectures, tutorials, labs, self-study; there is no section-wide pass
// that places every course's labs before any lecture.
package placement

import (
	"math/rand"
	"sort"

	"github.com/andes-indica/timetable-scheduler/internal/constraint"
	"github.com/andes-indica/timetable-scheduler/internal/deriver"
	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/metrics"
	"github.com/andes-indica/timetable-scheduler/internal/registry"
	"github.com/andes-indica/timetable-scheduler/internal/roomalloc"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

// maxRandomAttempts bounds the random-restart search for LEC, TUT, and SS
// placements (spec.md §4.4, §5 hard retry budget).
const maxRandomAttempts = 1000

// slotCount is the fixed number of 30-minute slots in the working day.
const slotCount = 19

// Engine places every course's required sessions for one section.
type Engine struct {
	oracle      *constraint.Oracle
	instructors *registry.InstructorRegister
	allocator   *roomalloc.Allocator
	rng         *rand.Rand
	metrics     *metrics.Collector
}

// New builds a placement engine. rng should be seeded deterministically by
// the caller for reproducible tests (spec.md §9 Design Notes). An optional
// Collector records each room allocation's outcome; a nil collector (the
// zero value when omitted) is always safe to use.
func New(oracle *constraint.Oracle, instructors *registry.InstructorRegister, allocator *roomalloc.Allocator, rng *rand.Rand, collectors ...*metrics.Collector) *Engine {
	var collector *metrics.Collector
	if len(collectors) > 0 {
		collector = collectors[0]
	}
	return &Engine{oracle: oracle, instructors: instructors, allocator: allocator, rng: rng, metrics: collector}
}

// allocateRoom wraps the allocator's Allocate call with outcome metrics.
func (e *Engine) allocateRoom(req roomalloc.Request) (string, bool) {
	roomID, ok := e.allocator.Allocate(req)
	if ok {
		e.metrics.ObserveRoomAllocation("ok")
	} else {
		e.metrics.ObserveRoomAllocation("failed")
	}
	return roomID, ok
}

// CoursePlacement pairs a course with the required session counts and batch
// context needed for room allocation.
type CoursePlacement struct {
	Course      domain.Course
	Requirement deriver.Requirement
	BatchTotal  int
	RequiredCap int
}

// Priority implements spec.md §4.4's get_course_priority: regular labs rank
// highest, then electives lowest among components, then heavy lectures,
// then tutorials.
func Priority(c domain.Course) int {
	if c.P > 0 && !c.IsElective() {
		priority := 10
		if c.HasLabPriorityBonus() {
			priority += 2
		}
		return priority
	}
	if c.IsElective() {
		return 1
	}
	if c.L > 2 {
		return 3
	}
	if c.T > 0 {
		return 2
	}
	return 0
}

// OrderCourses sorts courses for one section's placement pass: all lab
// courses (P>0) first ordered by priority descending, then all non-lab
// courses ordered by priority descending (spec.md §4.4's lab_courses +
// non_lab_courses concatenation).
func OrderCourses(courses []domain.Course) []domain.Course {
	var labs, nonLabs []domain.Course
	for _, c := range courses {
		if c.P > 0 {
			labs = append(labs, c)
		} else {
			nonLabs = append(nonLabs, c)
		}
	}
	sortByPriorityDescending(labs)
	sortByPriorityDescending(nonLabs)
	return append(labs, nonLabs...)
}

func sortByPriorityDescending(courses []domain.Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		return Priority(courses[i]) > Priority(courses[j])
	})
}

// Result summarizes a course's placement outcome for the unscheduled reporter.
type Result struct {
	Requirement deriver.Requirement
	PlacedLEC   int
	PlacedTUT   int
	PlacedLAB   int
	PlacedSS    int
}

// PlaceCourse runs every pass (lectures, tutorials, labs, self-study — the
// caller drives the lab-first course ordering via OrderCourses, so this
// places whichever sessions the course still requires) for one course
// against the section's timetable, mutating it and the shared registers in
// place.
func (e *Engine) PlaceCourse(tt *domain.Timetable, semesterBase int, department, semester string, cp CoursePlacement) Result {
	code := cp.Course.Code
	name := cp.Course.Name
	faculty := cp.Course.SelectedFaculty()
	isElective := cp.Course.IsElective()

	result := Result{Requirement: cp.Requirement}

	for i := 0; i < cp.Requirement.Lectures; i++ {
		if e.placeRandomRestart(tt, semesterBase, timeslot.LEC, code, name, faculty, isElective, true, cp) {
			result.PlacedLEC++
		}
	}

	for i := 0; i < cp.Requirement.Tutorials; i++ {
		if e.placeRandomRestart(tt, semesterBase, timeslot.TUT, code, name, faculty, isElective, false, cp) {
			result.PlacedTUT++
		}
	}

	if cp.Requirement.Labs > 0 {
		roomType := cp.Course.RequiredRoomType()
		for i := 0; i < cp.Requirement.Labs; i++ {
			if e.placeLab(tt, semesterBase, code, name, faculty, roomType, cp) {
				result.PlacedLAB++
			}
		}
	}

	for i := 0; i < cp.Requirement.SelfStudy; i++ {
		if e.placeRandomRestart(tt, semesterBase, timeslot.SS, code, name, faculty, isElective, false, cp) {
			result.PlacedSS++
		}
	}

	return result
}

// placeRandomRestart implements the random-restart search spec.md §4.4 uses
// for LEC, TUT, and SS: draw a random day and start slot, check
// constraints, and commit on first success, up to maxRandomAttempts. The
// start slot is always drawn before SameCourseSpacing is checked — the
// original's stale-start_slot bug on the first tutorial attempt is not
// reproduced here (spec.md §9 Open Question).
func (e *Engine) placeRandomRestart(tt *domain.Timetable, semesterBase int, kind timeslot.Kind, code, name, faculty string, isElective, enforceBuffer bool, cp CoursePlacement) bool {
	length := kind.Length()
	grid := timeslot.NewGrid()

	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		day := timeslot.Days[e.rng.Intn(len(timeslot.Days))]
		startSlot := e.rng.Intn(slotCount - length + 1)

		if kind != timeslot.SS {
			if !e.oracle.SameCourseSpacing(tt, faculty, code, day, startSlot) {
				continue
			}
		}

		if e.slotsReserved(grid, day, startSlot, length, semesterBase) {
			continue
		}

		if kind != timeslot.SS {
			if !e.oracle.InstructorDailyLoad(tt, faculty, day, code, isElective) {
				continue
			}
		}

		if !e.slotsAvailable(tt, grid, faculty, day, startSlot, length, semesterBase) {
			continue
		}

		if enforceBuffer && !e.oracle.AdjacentLectureBuffer(tt, day, startSlot, length) {
			continue
		}

		roomID, ok := e.allocateRoom(roomalloc.Request{
			RoomType:      "LECTURE_ROOM",
			Day:           day,
			StartSlot:     startSlot,
			Length:        length,
			RequiredCap:   cp.RequiredCap,
			CourseCode:    code,
			IsElective:    isElective,
			ElectiveGroup: cp.Course.ElectiveGroup(),
			BatchTotal:    cp.BatchTotal,
			OverlappingAt: overlapLookup(tt),
		})
		if !ok {
			continue
		}

		e.instructors.Reserve(faculty, day, startSlot, length)
		tt.Commit(day, startSlot, kind, code, name, faculty, roomID)
		return true
	}
	return false
}

// placeLab implements the systematic day-shuffle + exhaustive start-slot
// enumeration spec.md §4.4 requires for labs: days are tried in shuffled
// order, and within each day every free start slot is tried until a room
// allocation succeeds.
func (e *Engine) placeLab(tt *domain.Timetable, semesterBase int, code, name, faculty, roomType string, cp CoursePlacement) bool {
	length := timeslot.LAB.Length()
	grid := timeslot.NewGrid()

	days := append([]timeslot.Day(nil), timeslot.Days...)
	e.rng.Shuffle(len(days), func(i, j int) { days[i], days[j] = days[j], days[i] })

	for _, day := range days {
		for startSlot := 0; startSlot <= slotCount-length; startSlot++ {
			if e.slotsReserved(grid, day, startSlot, length, semesterBase) {
				continue
			}
			if !e.slotsAvailable(tt, grid, faculty, day, startSlot, length, semesterBase) {
				continue
			}

			roomID, ok := e.allocateRoom(roomalloc.Request{
				RoomType:    roomType,
				Day:         day,
				StartSlot:   startSlot,
				Length:      length,
				RequiredCap: cp.RequiredCap,
				CourseCode:  code,
				BatchTotal:  cp.BatchTotal,
			})
			if !ok {
				continue
			}

			e.instructors.Reserve(faculty, day, startSlot, length)
			tt.Commit(day, startSlot, timeslot.LAB, code, name, faculty, roomID)
			return true
		}
	}
	return false
}

// slotsAvailable reports whether [startSlot, startSlot+length) on day is
// free of instructor conflicts, other sessions already in this section's
// timetable, and break overlap (spec.md §4.4's slots_free check).
func (e *Engine) slotsAvailable(tt *domain.Timetable, grid *timeslot.Grid, faculty string, day timeslot.Day, startSlot, length, semesterBase int) bool {
	for i := 0; i < length; i++ {
		slot := startSlot + i
		if e.instructors.IsBusy(faculty, day, slot) {
			return false
		}
		if tt.Occupied(day, slot) {
			return false
		}
		if e.oracle.IsBreak(grid.At(slot), semesterBase) {
			return false
		}
	}
	return true
}

func (e *Engine) slotsReserved(grid *timeslot.Grid, day timeslot.Day, startSlot, length, semesterBase int) bool {
	for i := 0; i < length; i++ {
		if e.oracle.Reserved(grid.At(startSlot+i), day, semesterBase, "") {
			return true
		}
	}
	return false
}

func overlapLookup(tt *domain.Timetable) func(day timeslot.Day, slot int) (string, string, bool) {
	return func(day timeslot.Day, slot int) (string, string, bool) {
		cell := tt.At(day, slot)
		if !cell.Occupied() {
			return "", "", false
		}
		return cell.Code, cell.Classroom, true
	}
}
