// Package roomalloc implements the room allocator: eligibility filtering,
// availability checks, lab room pairing for oversized batches, and
// elective-group room affinity, grounded in spec.md §4.1.
package roomalloc

import (
	"strings"

	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/registry"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

// oversizeThreshold is the batch size above which a lab session needs a
// same-floor adjacent pair of rooms instead of one.
const oversizeThreshold = 35

// Allocator assigns rooms to sessions against a shared RoomRegister.
type Allocator struct {
	rooms *registry.RoomRegister

	// electiveGroupRooms remembers which room each elective course code
	// last settled into, so a later session of the same course can reuse it
	// when no other room is free (spec.md §4.1 elective grouping).
	electiveGroupRooms map[string]string
}

// New builds an allocator over the given room register.
func New(rooms *registry.RoomRegister) *Allocator {
	return &Allocator{
		rooms:              rooms,
		electiveGroupRooms: make(map[string]string),
	}
}

// Request describes one room-allocation attempt.
type Request struct {
	RoomType       string // "LECTURE_ROOM" (covers LEC/TUT/SS and electives), "COMPUTER_LAB", "HARDWARE_LAB"
	Day            timeslot.Day
	StartSlot      int
	Length         int
	RequiredCap    int
	CourseCode     string
	IsElective     bool
	ElectiveGroup  string
	OverlappingAt  func(day timeslot.Day, slot int) (code string, classroom string, ok bool) // current timetable lookup, for elective collision detection
	BatchTotal     int // total enrolled students, used for lab oversizing
}

// Allocate finds a room (or paired rooms, comma-joined) for the request, or
// returns "", false when none is available. When no inventory was loaded at
// all, it always returns the DEFAULT_ROOM sentinel (spec.md §4.1, Scenario F).
func (a *Allocator) Allocate(req Request) (string, bool) {
	if a.rooms.Empty() {
		return domain.DefaultRoom, true
	}

	switch req.RoomType {
	case "COMPUTER_LAB", "HARDWARE_LAB":
		return a.allocateLab(req)
	default:
		return a.allocateLectureLike(req)
	}
}

func (a *Allocator) allocateLab(req Request) (string, bool) {
	if req.BatchTotal > oversizeThreshold {
		if pair, ok := a.findAdjacentPair(req); ok {
			return pair, true
		}
	}
	return a.tryAllocate(a.rooms.OrderedIDs(), req.RoomType, req.RequiredCap, req.Day, req.StartSlot, req.Length, nil)
}

// findAdjacentPair looks for a free room of the exact lab type together
// with a same-floor, adjacent-numbered, also-free room of the same type
// (spec.md §4.1 find_adjacent_lab_room).
func (a *Allocator) findAdjacentPair(req Request) (string, bool) {
	for _, id := range a.rooms.OrderedIDs() {
		room, _ := a.rooms.Room(id)
		if room.TypeUpper() != req.RoomType {
			continue
		}
		if !a.rooms.IsFree(id, req.Day, req.StartSlot, req.Length) {
			continue
		}
		adjacentID, ok := a.findAdjacent(room)
		if !ok {
			continue
		}
		if !a.rooms.IsFree(adjacentID, req.Day, req.StartSlot, req.Length) {
			continue
		}
		a.rooms.Reserve(id, req.Day, req.StartSlot, req.Length)
		a.rooms.Reserve(adjacentID, req.Day, req.StartSlot, req.Length)
		return id + "," + adjacentID, true
	}
	return "", false
}

func (a *Allocator) findAdjacent(room domain.Room) (string, bool) {
	for _, id := range a.rooms.OrderedIDs() {
		other, _ := a.rooms.Room(id)
		if other.ID == room.ID || other.TypeUpper() != room.TypeUpper() {
			continue
		}
		if other.Floor() == room.Floor() && abs(other.Number()-room.Number()) == 1 {
			return other.ID, true
		}
	}
	return "", false
}

// allocateLectureLike handles LEC/TUT/SS and elective courses: lecture rooms
// are tried before seater rooms, and elective courses get group-affinity
// handling (spec.md §4.1).
func (a *Allocator) allocateLectureLike(req Request) (string, bool) {
	lectureRooms := a.roomsOfType("LECTURE_ROOM")
	seaterRooms := a.roomsOfType("SEATER")

	if req.IsElective {
		return a.allocateElective(req, lectureRooms, seaterRooms)
	}

	if id, ok := a.tryAllocate(lectureRooms, "LEC", req.RequiredCap, req.Day, req.StartSlot, req.Length, nil); ok {
		return id, true
	}
	return a.tryAllocate(seaterRooms, "LEC", req.RequiredCap, req.Day, req.StartSlot, req.Length, nil)
}

// allocateElective implements spec.md §4.1's elective room affinity: rank
// candidate rooms by ascending weekly usage, skip rooms that the section's
// session at the requested start slot holds for a different elective group,
// and reuse the room this course code was last given when nothing new is
// free.
func (a *Allocator) allocateElective(req Request, lectureRooms, seaterRooms []string) (string, bool) {
	excluded := make(map[string]struct{})

	for _, candidates := range [][]string{lectureRooms, seaterRooms} {
		ranked := a.rooms.IDsByUsageAscending(candidates)
		for _, id := range ranked {
			if _, skip := excluded[id]; skip {
				continue
			}
			if !a.rooms.IsFree(id, req.Day, req.StartSlot, req.Length) {
				a.markExcludedIfForeignGroup(req, id, excluded)
				continue
			}
			room, _ := a.rooms.Room(id)
			if room.Capacity < req.RequiredCap {
				continue
			}
			a.rooms.Reserve(id, req.Day, req.StartSlot, req.Length)
			a.electiveGroupRooms[req.CourseCode] = id
			return id, true
		}
	}

	if id, ok := a.electiveGroupRooms[req.CourseCode]; ok {
		return id, true
	}

	if id, ok := a.tryAllocate(lectureRooms, "LEC", req.RequiredCap, req.Day, req.StartSlot, req.Length, excluded); ok {
		a.electiveGroupRooms[req.CourseCode] = id
		return id, true
	}
	if id, ok := a.tryAllocate(seaterRooms, "LEC", req.RequiredCap, req.Day, req.StartSlot, req.Length, excluded); ok {
		a.electiveGroupRooms[req.CourseCode] = id
		return id, true
	}
	return "", false
}

// markExcludedIfForeignGroup records a room as off-limits for the rest of
// this allocation attempt when it is occupied by a course from a different
// elective group at the requested time.
func (a *Allocator) markExcludedIfForeignGroup(req Request, roomID string, excluded map[string]struct{}) {
	if req.OverlappingAt == nil {
		return
	}
	occupyingCode, classroom, ok := req.OverlappingAt(req.Day, req.StartSlot)
	if !ok || classroom != roomID {
		return
	}
	if domain.ElectiveGroupOf(occupyingCode) != req.ElectiveGroup {
		excluded[roomID] = struct{}{}
	}
}

// tryAllocate scans candidate room IDs in order and reserves the first one
// eligible by type, capacity, and availability (spec.md §4.1
// try_room_allocation).
func (a *Allocator) tryAllocate(ids []string, courseType string, requiredCap int, day timeslot.Day, startSlot, length int, excluded map[string]struct{}) (string, bool) {
	for _, id := range ids {
		if _, skip := excluded[id]; skip {
			continue
		}
		room, ok := a.rooms.Room(id)
		if !ok || room.IsLibrary() {
			continue
		}

		switch courseType {
		case "LEC", "TUT", "SS":
			if !strings.Contains(room.TypeUpper(), "LECTURE_ROOM") && !strings.Contains(room.TypeUpper(), "SEATER") {
				continue
			}
		case "COMPUTER_LAB":
			if room.TypeUpper() != "COMPUTER_LAB" {
				continue
			}
		case "HARDWARE_LAB":
			if room.TypeUpper() != "HARDWARE_LAB" {
				continue
			}
		}

		isLab := courseType == "COMPUTER_LAB" || courseType == "HARDWARE_LAB"
		if !isLab && room.Capacity < requiredCap {
			continue
		}

		if !a.rooms.IsFree(id, day, startSlot, length) {
			continue
		}

		a.rooms.Reserve(id, day, startSlot, length)
		return id, true
	}
	return "", false
}

func (a *Allocator) roomsOfType(substr string) []string {
	var ids []string
	for _, id := range a.rooms.OrderedIDs() {
		room, _ := a.rooms.Room(id)
		if strings.Contains(room.TypeUpper(), substr) {
			ids = append(ids, id)
		}
	}
	return ids
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
