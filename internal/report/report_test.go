package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andes-indica/timetable-scheduler/internal/deriver"
	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/placement"
)

func TestFromResultSkipsFullyScheduledCourses(t *testing.T) {
	course := domain.Course{Code: "CS101", Name: "Intro", Faculty: "Dr. Rao"}
	res := placement.Result{
		Requirement: deriver.Requirement{Lectures: 2},
		PlacedLEC:   2,
	}
	_, ok := FromResult("CS", "3", course, res)
	assert.False(t, ok)
}

// Scenario E: an unplaceable course surfaces with expected > scheduled.
func TestFromResultSurfacesDeficit(t *testing.T) {
	course := domain.Course{Code: "CS999", Name: "Impossible", Faculty: "Dr. Busy"}
	res := placement.Result{
		Requirement: deriver.Requirement{Lectures: 2, Tutorials: 1},
		PlacedLEC:   0,
		PlacedTUT:   0,
	}
	entry, ok := FromResult("CS", "3", course, res)
	require.True(t, ok)
	assert.Equal(t, 3, entry.ExpectedSlots)
	assert.Equal(t, 0, entry.ScheduledSlots)
	assert.Equal(t, 3, entry.MissingSlots())
	assert.Equal(t, "LEC:2, TUT:1", entry.RequiredComponents)
	assert.Equal(t, "LEC:2, TUT:1", entry.MissingComponents)
}

func TestFromResultMissingComponentsReflectsPartialPlacement(t *testing.T) {
	course := domain.Course{Code: "CS998", Name: "Partial", Faculty: "Dr. Rao"}
	res := placement.Result{
		Requirement: deriver.Requirement{Lectures: 2, Tutorials: 1},
		PlacedLEC:   1,
		PlacedTUT:   1,
	}
	entry, ok := FromResult("CS", "3", course, res)
	require.True(t, ok)
	assert.Equal(t, "LEC:2, TUT:1", entry.RequiredComponents)
	assert.Equal(t, "LEC:1", entry.MissingComponents)
}

func TestComponentBreakdown(t *testing.T) {
	req := deriver.Requirement{Lectures: 2, Tutorials: 1, Labs: 0, SelfStudy: 0}
	assert.Equal(t, "LEC:2, TUT:1", ComponentBreakdown(req))
}

func TestReportAccumulatesOnlyDeficits(t *testing.T) {
	var r Report
	r.Add(FromResult("CS", "3", domain.Course{Code: "A"}, placement.Result{Requirement: deriver.Requirement{Lectures: 1}, PlacedLEC: 1}))
	assert.True(t, r.Empty())

	r.Add(FromResult("CS", "3", domain.Course{Code: "B"}, placement.Result{Requirement: deriver.Requirement{Lectures: 1}}))
	assert.False(t, r.Empty())
	assert.Len(t, r.Entries, 1)
}
