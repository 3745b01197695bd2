package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andes-indica/timetable-scheduler/internal/breaks"
	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/registry"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

func newOracle() *Oracle {
	cal := breaks.New([]int{3})
	instructors := registry.NewInstructorRegister()
	return New(cal, instructors)
}

func TestReservedAlwaysFalse(t *testing.T) {
	o := newOracle()
	grid := timeslot.NewGrid()
	assert.False(t, o.Reserved(grid.At(0), timeslot.Monday, 3, "CS"))
}

func TestInstructorDailyLoadCapsNonElectiveAtTwo(t *testing.T) {
	o := newOracle()
	tt := domain.NewTimetable(19)
	tt.Commit(timeslot.Monday, 0, timeslot.LEC, "CS301", "Algo", "Dr. Rao", "201")
	assert.True(t, o.InstructorDailyLoad(tt, "Dr. Rao", timeslot.Monday, "CS302", false))

	tt.Commit(timeslot.Monday, 5, timeslot.TUT, "CS302", "DS", "Dr. Rao", "202")
	assert.False(t, o.InstructorDailyLoad(tt, "Dr. Rao", timeslot.Monday, "CS303", false))
}

func TestInstructorDailyLoadRelaxesForElectiveGroup(t *testing.T) {
	o := newOracle()
	tt := domain.NewTimetable(19)
	tt.Commit(timeslot.Monday, 0, timeslot.LEC, "CS301", "Algo", "Dr. Rao", "201")
	tt.Commit(timeslot.Monday, 5, timeslot.LEC, "B1-CS501", "Elective 1", "Dr. Rao", "202")

	// Group slot already present for B1 -> cap relaxes to 3.
	assert.True(t, o.InstructorDailyLoad(tt, "Dr. Rao", timeslot.Monday, "B1-CS502", true))
}

func TestInstructorDailyLoadWithoutGroupSlotStaysAtTwo(t *testing.T) {
	o := newOracle()
	tt := domain.NewTimetable(19)
	tt.Commit(timeslot.Monday, 0, timeslot.LEC, "CS301", "Algo", "Dr. Rao", "201")
	tt.Commit(timeslot.Monday, 5, timeslot.TUT, "CS302", "DS", "Dr. Rao", "202")

	assert.False(t, o.InstructorDailyLoad(tt, "Dr. Rao", timeslot.Monday, "B1-CS501", true))
}

func TestSameCourseSpacingRejectsWithinSixSlots(t *testing.T) {
	o := newOracle()
	tt := domain.NewTimetable(19)
	tt.Commit(timeslot.Monday, 2, timeslot.LEC, "CS301", "Algo", "Dr. Rao", "201")

	assert.False(t, o.SameCourseSpacing(tt, "Dr. Rao", "CS301", timeslot.Monday, 7))
	assert.True(t, o.SameCourseSpacing(tt, "Dr. Rao", "CS301", timeslot.Monday, 9))
}

func TestSameCourseSpacingIgnoresLabsAndSS(t *testing.T) {
	o := newOracle()
	tt := domain.NewTimetable(19)
	tt.Commit(timeslot.Monday, 2, timeslot.LAB, "CS301", "Algo", "Dr. Rao", "201")

	assert.True(t, o.SameCourseSpacing(tt, "Dr. Rao", "CS301", timeslot.Monday, 4))
}

func TestAdjacentLectureBufferRejectsAdjacentComponent(t *testing.T) {
	o := newOracle()
	tt := domain.NewTimetable(19)
	tt.Commit(timeslot.Monday, 0, timeslot.LEC, "CS301", "Algo", "Dr. Rao", "201")

	assert.False(t, o.AdjacentLectureBuffer(tt, timeslot.Monday, 3, 3))
	assert.True(t, o.AdjacentLectureBuffer(tt, timeslot.Monday, 4, 3))
}
