package roomalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/registry"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

func TestAllocateDefaultRoomWhenNoInventory(t *testing.T) {
	reg := registry.NewRoomRegister(nil)
	alloc := New(reg)

	id, ok := alloc.Allocate(Request{RoomType: "LECTURE_ROOM", Day: timeslot.Monday, StartSlot: 0, Length: 3, RequiredCap: 60})
	require.True(t, ok)
	assert.Equal(t, domain.DefaultRoom, id)
}

func TestAllocateLectureRoomBeforeSeater(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "SEAT1", Capacity: 100, Type: "SEATER", RoomNumber: "301"},
		{ID: "LEC1", Capacity: 60, Type: "LECTURE_ROOM", RoomNumber: "201"},
	})
	alloc := New(reg)

	id, ok := alloc.Allocate(Request{RoomType: "LECTURE_ROOM", Day: timeslot.Monday, StartSlot: 0, Length: 3, RequiredCap: 50})
	require.True(t, ok)
	assert.Equal(t, "LEC1", id)
}

func TestAllocateSkipsLibrary(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "LIB", Capacity: 200, Type: "LIBRARY", RoomNumber: "101"},
		{ID: "LEC1", Capacity: 60, Type: "LECTURE_ROOM", RoomNumber: "201"},
	})
	alloc := New(reg)

	id, ok := alloc.Allocate(Request{RoomType: "LECTURE_ROOM", Day: timeslot.Monday, StartSlot: 0, Length: 3, RequiredCap: 50})
	require.True(t, ok)
	assert.Equal(t, "LEC1", id)
}

func TestAllocateFailsWhenCapacityTooSmall(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "LEC1", Capacity: 30, Type: "LECTURE_ROOM", RoomNumber: "201"},
	})
	alloc := New(reg)

	_, ok := alloc.Allocate(Request{RoomType: "LECTURE_ROOM", Day: timeslot.Monday, StartSlot: 0, Length: 3, RequiredCap: 50})
	assert.False(t, ok)
}

func TestAllocateLabIgnoresCapacityForExactTypeMatch(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "LAB1", Capacity: 20, Type: "COMPUTER_LAB", RoomNumber: "401"},
	})
	alloc := New(reg)

	id, ok := alloc.Allocate(Request{RoomType: "COMPUTER_LAB", Day: timeslot.Monday, StartSlot: 0, Length: 4, RequiredCap: 60, BatchTotal: 20})
	require.True(t, ok)
	assert.Equal(t, "LAB1", id)
}

func TestAllocateLabDoesNotMatchWrongLabType(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "LAB1", Capacity: 20, Type: "HARDWARE_LAB", RoomNumber: "401"},
	})
	alloc := New(reg)

	_, ok := alloc.Allocate(Request{RoomType: "COMPUTER_LAB", Day: timeslot.Monday, StartSlot: 0, Length: 4, RequiredCap: 60, BatchTotal: 20})
	assert.False(t, ok)
}

func TestOversizedLabGetsAdjacentPair(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "LAB201", Capacity: 35, Type: "COMPUTER_LAB", RoomNumber: "201"},
		{ID: "LAB202", Capacity: 35, Type: "COMPUTER_LAB", RoomNumber: "202"},
	})
	alloc := New(reg)

	id, ok := alloc.Allocate(Request{
		RoomType: "COMPUTER_LAB", Day: timeslot.Monday, StartSlot: 0, Length: 4,
		RequiredCap: 35, BatchTotal: 70,
	})
	require.True(t, ok)
	assert.Equal(t, "LAB201,LAB202", id)
}

func TestOversizedLabFallsBackWithoutAdjacentRoom(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "LAB201", Capacity: 35, Type: "COMPUTER_LAB", RoomNumber: "201"},
		{ID: "LAB310", Capacity: 35, Type: "COMPUTER_LAB", RoomNumber: "310"},
	})
	alloc := New(reg)

	id, ok := alloc.Allocate(Request{
		RoomType: "COMPUTER_LAB", Day: timeslot.Monday, StartSlot: 0, Length: 4,
		RequiredCap: 35, BatchTotal: 70,
	})
	require.True(t, ok)
	assert.Equal(t, "LAB201", id)
}

func TestElectiveReusesGroupRoomAcrossSessions(t *testing.T) {
	reg := registry.NewRoomRegister([]domain.Room{
		{ID: "LEC1", Capacity: 60, Type: "LECTURE_ROOM", RoomNumber: "201"},
	})
	alloc := New(reg)

	req := Request{RoomType: "LECTURE_ROOM", Day: timeslot.Monday, StartSlot: 0, Length: 3,
		RequiredCap: 40, CourseCode: "B1-CS501", IsElective: true, ElectiveGroup: "B1"}
	id1, ok := alloc.Allocate(req)
	require.True(t, ok)
	assert.Equal(t, "LEC1", id1)

	req2 := req
	req2.StartSlot = 10
	id2, ok := alloc.Allocate(req2)
	require.True(t, ok)
	assert.Equal(t, id1, id2)
}
