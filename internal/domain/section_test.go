package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBatchInfo(t *testing.T) {
	info := DeriveBatchInfo(70, 35)
	assert.Equal(t, 2, info.NumSections)
	assert.Equal(t, 35, info.SectionSize)

	info = DeriveBatchInfo(71, 35)
	assert.Equal(t, 3, info.NumSections)
	assert.Equal(t, 24, info.SectionSize)
}

func TestDeriveElectiveBatchInfo(t *testing.T) {
	info := DeriveElectiveBatchInfo(42)
	assert.Equal(t, 1, info.NumSections)
	assert.Equal(t, 42, info.SectionSize)
}

func TestSectionLabel(t *testing.T) {
	single := Section{Department: "CS", Semester: "3", Index: 0, TotalCount: 1}
	assert.Equal(t, "CS3", single.Label())

	multiA := Section{Department: "CS", Semester: "3", Index: 0, TotalCount: 2}
	multiB := Section{Department: "CS", Semester: "3", Index: 1, TotalCount: 2}
	assert.Equal(t, "CS3_A", multiA.Label())
	assert.Equal(t, "CS3_B", multiB.Label())
}
