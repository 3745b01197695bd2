package domain

import (
	"strconv"
	"strings"
)

// DefaultRoom is the sentinel room identifier used when no room inventory
// was loaded at all (rooms.csv missing), spec.md §4.1.
const DefaultRoom = "DEFAULT_ROOM"

// Room is one row of rooms.csv: an allocatable teaching space. LIBRARY-typed
// rooms are never allocated (spec.md §3 Room).
type Room struct {
	ID         string
	Capacity   int
	Type       string
	RoomNumber string
}

// TypeUpper returns the room type upper-cased, the form every eligibility
// check in spec.md §4.1 compares against.
func (r Room) TypeUpper() string {
	return strings.ToUpper(r.Type)
}

// IsLibrary reports whether this room is never eligible for allocation.
func (r Room) IsLibrary() bool {
	return r.TypeUpper() == "LIBRARY"
}

// Floor extracts the numeric room-number prefix (the hundreds digit group)
// used to determine adjacency for paired lab rooms: two rooms are on the
// same floor when room_number/100 matches (spec.md §4.1 find_adjacent_lab_room).
func (r Room) Floor() int {
	return roomNumberDigits(r.RoomNumber) / 100
}

// Number returns the numeric value embedded in the room number string,
// ignoring any non-digit characters (e.g. "Room-201" -> 201).
func (r Room) Number() int {
	return roomNumberDigits(r.RoomNumber)
}

func roomNumberDigits(roomNumber string) int {
	var b strings.Builder
	for _, r := range roomNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, _ := strconv.Atoi(b.String())
	return n
}
