// Package domain holds the scheduler's core entities: courses, sections,
// rooms, and the placed-session timetable, grounded in spec.md §3 (Data
// Model).
package domain

import "strings"

// Course is one row of the course catalog (combined.csv), spec.md §6.1.
type Course struct {
	Department string
	Semester   string
	Code       string
	Name       string
	Faculty    string // raw value, possibly "/"-separated alternatives

	L float64 // lecture credits
	T int     // tutorial hours
	P int     // lab hours
	S int     // self-study hours
	C int     // total credits

	Schedule bool // false only when the catalog row explicitly opts out
}

// Key identifies a course uniquely within the catalog.
type Key struct {
	Department string
	Semester   string
	Code       string
}

// Key returns the course's identifying tuple.
func (c Course) Key() Key {
	return Key{Department: c.Department, Semester: c.Semester, Code: c.Code}
}

// SelectedFaculty resolves the faculty field to the single instructor the
// scheduler assigns: the first of any "/"-separated alternatives (spec.md
// §4.4's select_faculty rule).
func (c Course) SelectedFaculty() string {
	if idx := strings.Index(c.Faculty, "/"); idx >= 0 {
		options := strings.Split(c.Faculty, "/")
		return strings.TrimSpace(options[0])
	}
	return c.Faculty
}

// IsElective reports whether the course code marks it as an elective
// (basket) course: it starts with "B" and contains a "-" (spec.md §3).
func (c Course) IsElective() bool {
	return IsElectiveCode(c.Code)
}

// IsElectiveCode reports whether a raw course code marks an elective.
func IsElectiveCode(code string) bool {
	upper := strings.ToUpper(code)
	return strings.HasPrefix(upper, "B") && strings.Contains(upper, "-")
}

// ElectiveGroup returns the elective basket this course belongs to (the code
// prefix before the first "-"), or "" if the course isn't an elective.
func (c Course) ElectiveGroup() string {
	return ElectiveGroupOf(c.Code)
}

// ElectiveGroupOf returns the elective group for a raw course code.
func ElectiveGroupOf(code string) string {
	if !IsElectiveCode(code) {
		return ""
	}
	idx := strings.Index(code, "-")
	return code[:idx]
}

// SemesterBase extracts the leading digit of a semester label (e.g. "4" from
// "4A"), used to pick the staggered meal window (spec.md §3 Break calendar).
func SemesterBase(semester string) int {
	if semester == "" || semester[0] < '0' || semester[0] > '9' {
		return 0
	}
	return int(semester[0] - '0')
}

// RequiredRoomType returns the room type a course's lab component needs:
// COMPUTER_LAB for CS/DS courses, HARDWARE_LAB for EC courses, COMPUTER_LAB
// as the default otherwise (spec.md §4.3 get_required_room_type).
func (c Course) RequiredRoomType() string {
	code := strings.ToUpper(c.Code)
	switch {
	case strings.Contains(code, "CS"), strings.Contains(code, "DS"):
		return "COMPUTER_LAB"
	case strings.Contains(code, "EC"):
		return "HARDWARE_LAB"
	default:
		return "COMPUTER_LAB"
	}
}

// HasLabPriorityBonus reports whether a lab course gets the extra +2
// priority bump for CS/EC courses (spec.md §4.4 get_course_priority).
func (c Course) HasLabPriorityBonus() bool {
	code := strings.ToUpper(c.Code)
	return strings.Contains(code, "CS") || strings.Contains(code, "EC")
}
