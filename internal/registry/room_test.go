package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

func TestRoomRegisterEmptyWhenNoInventory(t *testing.T) {
	reg := NewRoomRegister(nil)
	assert.True(t, reg.Empty())
	assert.True(t, reg.IsFree("ANY", timeslot.Monday, 0, 3))
}

func TestRoomRegisterReserveAndIsFree(t *testing.T) {
	reg := NewRoomRegister([]domain.Room{{ID: "R1", Capacity: 60, Type: "LECTURE_ROOM", RoomNumber: "201"}})
	assert.False(t, reg.Empty())

	require.True(t, reg.IsFree("R1", timeslot.Monday, 0, 3))
	reg.Reserve("R1", timeslot.Monday, 0, 3)
	assert.False(t, reg.IsFree("R1", timeslot.Monday, 0, 3))
	assert.False(t, reg.IsFree("R1", timeslot.Monday, 2, 1))
	assert.True(t, reg.IsFree("R1", timeslot.Monday, 3, 1))
	assert.True(t, reg.IsFree("R1", timeslot.Tuesday, 0, 3))
}

func TestWeeklyUsageAndOrdering(t *testing.T) {
	reg := NewRoomRegister([]domain.Room{
		{ID: "R1", Type: "LECTURE_ROOM", RoomNumber: "201"},
		{ID: "R2", Type: "LECTURE_ROOM", RoomNumber: "202"},
	})
	reg.Reserve("R2", timeslot.Monday, 0, 3)

	assert.Equal(t, 0, reg.WeeklyUsage("R1"))
	assert.Equal(t, 3, reg.WeeklyUsage("R2"))

	ordered := reg.IDsByUsageAscending([]string{"R2", "R1"})
	assert.Equal(t, []string{"R1", "R2"}, ordered)
}

func TestOrderedIDsPreservesInventoryOrder(t *testing.T) {
	reg := NewRoomRegister([]domain.Room{
		{ID: "R9", Type: "LECTURE_ROOM", RoomNumber: "101"},
		{ID: "R1", Type: "LECTURE_ROOM", RoomNumber: "102"},
	})
	assert.Equal(t, []string{"R9", "R1"}, reg.OrderedIDs())
}
