// Package report implements the unscheduled-session reporter: it diffs each
// course's required session counts against what actually got placed,
// grounded in spec.md §4.6.
package report

import (
	"fmt"

	"github.com/andes-indica/timetable-scheduler/internal/deriver"
	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/placement"
)

// Entry is one course's unscheduled-session deficit within a section.
type Entry struct {
	Department     string
	Semester       string
	Code           string
	Name           string
	Faculty        string
	ExpectedSlots  int
	ScheduledSlots int

	// RequiredComponents and MissingComponents render as e.g. "LEC:2, TUT:1",
	// the per-section worksheet block's format.
	RequiredComponents string
	MissingComponents  string
}

// MissingSlots returns how many required slots never got placed.
func (e Entry) MissingSlots() int {
	return e.ExpectedSlots - e.ScheduledSlots
}

// ComponentBreakdown renders the per-kind requirement, e.g. "LEC:2, TUT:1".
func ComponentBreakdown(req deriver.Requirement) string {
	return joinComponents(req.Lectures, "LEC", req.Tutorials, "TUT", req.Labs, "LAB", req.SelfStudy, "SS")
}

func joinComponents(pairs ...interface{}) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		count := pairs[i].(int)
		label := pairs[i+1].(string)
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", label, count))
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// FromResult builds an Entry from one course's placement result, or returns
// ok=false when nothing is missing (every required session got placed).
func FromResult(department, semester string, course domain.Course, res placement.Result) (Entry, bool) {
	req := res.Requirement
	expected := req.Lectures + req.Tutorials + req.Labs + req.SelfStudy
	scheduled := res.PlacedLEC + res.PlacedTUT + res.PlacedLAB + res.PlacedSS
	if scheduled >= expected {
		return Entry{}, false
	}

	missing := deriver.Requirement{
		Lectures:  req.Lectures - res.PlacedLEC,
		Tutorials: req.Tutorials - res.PlacedTUT,
		Labs:      req.Labs - res.PlacedLAB,
		SelfStudy: req.SelfStudy - res.PlacedSS,
	}

	return Entry{
		Department:          department,
		Semester:            semester,
		Code:                course.Code,
		Name:                course.Name,
		Faculty:             course.SelectedFaculty(),
		ExpectedSlots:       expected,
		ScheduledSlots:      scheduled,
		RequiredComponents:  ComponentBreakdown(req),
		MissingComponents:   ComponentBreakdown(missing),
	}, true
}

// Report is the global list of unscheduled entries accumulated across every
// department, semester, and section in a run.
type Report struct {
	Entries []Entry
}

// Add records an entry if it represents a genuine deficit.
func (r *Report) Add(entry Entry, ok bool) {
	if ok {
		r.Entries = append(r.Entries, entry)
	}
}

// Empty reports whether every course in the run was fully scheduled.
func (r *Report) Empty() bool {
	return len(r.Entries) == 0
}
