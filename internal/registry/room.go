package registry

import (
	"sort"

	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

// RoomRegister tracks each room's day -> occupied-slot-set, the shared
// structure the room allocator consults and mutates (spec.md §3 Room).
type RoomRegister struct {
	rooms    map[string]domain.Room
	order    []string // preserves rooms.csv row order, the allocator's iteration order
	occupied map[string][5]map[int]struct{}
}

// NewRoomRegister builds a register from the loaded room inventory. A nil or
// empty slice yields an empty register (the "no rooms.csv" case, spec.md §6
// Scenario F).
func NewRoomRegister(rooms []domain.Room) *RoomRegister {
	reg := &RoomRegister{
		rooms:    make(map[string]domain.Room, len(rooms)),
		order:    make([]string, 0, len(rooms)),
		occupied: make(map[string][5]map[int]struct{}, len(rooms)),
	}
	for _, room := range rooms {
		reg.rooms[room.ID] = room
		reg.order = append(reg.order, room.ID)
		var days [5]map[int]struct{}
		for d := range days {
			days[d] = make(map[int]struct{})
		}
		reg.occupied[room.ID] = days
	}
	return reg
}

// Empty reports whether no room inventory was loaded at all.
func (r *RoomRegister) Empty() bool {
	return len(r.rooms) == 0
}

// Room looks up a room by ID.
func (r *RoomRegister) Room(id string) (domain.Room, bool) {
	room, ok := r.rooms[id]
	return room, ok
}

// OrderedIDs returns every room ID in the loaded inventory's original order.
func (r *RoomRegister) OrderedIDs() []string {
	return r.order
}

// IsFree reports whether [startSlot, startSlot+length) is unoccupied for a
// room on the given day.
func (r *RoomRegister) IsFree(id string, day timeslot.Day, startSlot, length int) bool {
	days, ok := r.occupied[id]
	if !ok {
		return true
	}
	for i := 0; i < length; i++ {
		if _, busy := days[day][startSlot+i]; busy {
			return false
		}
	}
	return true
}

// Reserve marks [startSlot, startSlot+length) as occupied for a room on the
// given day.
func (r *RoomRegister) Reserve(id string, day timeslot.Day, startSlot, length int) {
	days, ok := r.occupied[id]
	if !ok {
		return
	}
	for i := 0; i < length; i++ {
		days[day][startSlot+i] = struct{}{}
	}
}

// WeeklyUsage returns the total number of occupied slots across the whole
// week for a room, used to rank rooms by usage for elective-group
// allocation (spec.md §4.1).
func (r *RoomRegister) WeeklyUsage(id string) int {
	days, ok := r.occupied[id]
	if !ok {
		return 0
	}
	total := 0
	for d := range days {
		total += len(days[d])
	}
	return total
}

// IDsByUsageAscending returns the given room IDs sorted by ascending weekly
// usage, breaking ties by original inventory order (a stable sort keeps the
// allocator deterministic for a fixed RNG seed).
func (r *RoomRegister) IDsByUsageAscending(ids []string) []string {
	sorted := append([]string(nil), ids...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return r.WeeklyUsage(sorted[i]) < r.WeeklyUsage(sorted[j])
	})
	return sorted
}
