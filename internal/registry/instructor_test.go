package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

func TestInstructorRegisterReserveAndIsBusy(t *testing.T) {
	reg := NewInstructorRegister()
	assert.False(t, reg.IsBusy("Dr. Rao", timeslot.Monday, 2))

	reg.Reserve("Dr. Rao", timeslot.Monday, 2, 3)

	assert.True(t, reg.IsBusy("Dr. Rao", timeslot.Monday, 2))
	assert.True(t, reg.IsBusy("Dr. Rao", timeslot.Monday, 4))
	assert.False(t, reg.IsBusy("Dr. Rao", timeslot.Monday, 5))
	assert.False(t, reg.IsBusy("Dr. Rao", timeslot.Tuesday, 2))
}

func TestInstructorRegisterIsolatesFaculty(t *testing.T) {
	reg := NewInstructorRegister()
	reg.Reserve("Dr. Rao", timeslot.Monday, 0, 2)
	assert.False(t, reg.IsBusy("Dr. Iyer", timeslot.Monday, 0))
}
