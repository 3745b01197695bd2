package domain

import "fmt"

// BatchInfo describes enrollment for a (Department, Semester) pair or a
// single elective course, sourced from updated_batches.csv or
// elective_registration.csv (spec.md §3 Section).
type BatchInfo struct {
	Total       int
	NumSections int
	SectionSize int
}

// DeriveBatchInfo computes the section count and section size for a
// regular (non-elective) course's department/semester cohort:
// num_sections = ceil(total/max_batch), section_size = ceil(total/num_sections)
// (spec.md §3 Section, original load_batch_data).
func DeriveBatchInfo(totalStudents, maxBatchSize int) BatchInfo {
	if maxBatchSize <= 0 {
		maxBatchSize = 1
	}
	numSections := (totalStudents + maxBatchSize - 1) / maxBatchSize
	if numSections < 1 {
		numSections = 1
	}
	sectionSize := (totalStudents + numSections - 1) / numSections
	return BatchInfo{Total: totalStudents, NumSections: numSections, SectionSize: sectionSize}
}

// DeriveElectiveBatchInfo builds the BatchInfo for a single elective
// course: electives are always a single section sized to the full
// registration count.
func DeriveElectiveBatchInfo(totalStudents int) BatchInfo {
	return BatchInfo{Total: totalStudents, NumSections: 1, SectionSize: totalStudents}
}

// Section identifies one cohort of a department/semester that gets its own
// worksheet. Index is 0-based; Label renders the worksheet title spec.md §6
// requires: "<Dept><Sem>" when there is a single section, else
// "<Dept><Sem>_<A|B|...>".
type Section struct {
	Department  string
	Semester    string
	Index       int
	TotalCount  int // number of sections this department/semester was split into
}

// Label renders the worksheet title for this section.
func (s Section) Label() string {
	if s.TotalCount <= 1 {
		return fmt.Sprintf("%s%s", s.Department, s.Semester)
	}
	return fmt.Sprintf("%s%s_%c", s.Department, s.Semester, rune('A'+s.Index))
}
