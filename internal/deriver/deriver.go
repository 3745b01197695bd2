// Package deriver computes how many lecture, tutorial, lab, and self-study
// sessions a course needs from its credit tuple, grounded in spec.md §4.3.
package deriver

import (
	"math"

	"github.com/andes-indica/timetable-scheduler/internal/domain"
)

// Requirement is the session count the placement engine must satisfy for
// one course.
type Requirement struct {
	Lectures   int
	Tutorials  int
	Labs       int
	SelfStudy  int
}

// Derive computes the session requirement for a course (spec.md §4.3
// calculate_required_slots):
//   - a pure self-study course (S>0, L=T=P=0) needs nothing scheduled
//   - lectures = max(1, round(L*2/3)) when L>0, else 0
//   - tutorials = T
//   - labs = P/2 (integer division, 2 hours per lab session)
//   - self-study = S/4 when any of L, T, P is nonzero, else 0
func Derive(c domain.Course) Requirement {
	if c.S > 0 && c.L == 0 && c.T == 0 && c.P == 0 {
		return Requirement{}
	}

	var lectures int
	if c.L > 0 {
		lectures = int(math.Round(c.L * 2 / 3))
		if lectures < 1 {
			lectures = 1
		}
	}

	tutorials := c.T
	labs := c.P / 2

	selfStudy := 0
	if c.L > 0 || c.T > 0 || c.P > 0 {
		selfStudy = c.S / 4
	}

	return Requirement{Lectures: lectures, Tutorials: tutorials, Labs: labs, SelfStudy: selfStudy}
}
