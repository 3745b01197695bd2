// Package schedule orchestrates one full generation run: it loads the four
// CSV inputs, builds the break calendar and shared registers, iterates
// departments -> semesters -> sections, drives the placement engine per
// course, and renders the resulting workbook. Grounded on the teacher
// repository's ScheduleGeneratorService.Generate (same shape: validate
// input, build state, run the constraint pass, produce a report), adapted
// from a single HTTP request to a CSV-in/xlsx-out batch run (spec.md §4,
// generate_all_timetables).
package schedule

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andes-indica/timetable-scheduler/internal/breaks"
	"github.com/andes-indica/timetable-scheduler/internal/constraint"
	"github.com/andes-indica/timetable-scheduler/internal/deriver"
	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/export"
	"github.com/andes-indica/timetable-scheduler/internal/ingest"
	"github.com/andes-indica/timetable-scheduler/internal/metrics"
	"github.com/andes-indica/timetable-scheduler/internal/placement"
	"github.com/andes-indica/timetable-scheduler/internal/registry"
	"github.com/andes-indica/timetable-scheduler/internal/report"
	"github.com/andes-indica/timetable-scheduler/internal/roomalloc"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
)

// Inputs names the four CSV files a run reads, resolved relative to the
// configured input directory (spec.md §6.1).
type Inputs struct {
	CatalogPath               string
	RoomsPath                 string
	BatchesPath               string
	ElectiveRegistrationsPath string
}

// Result is what a run produces: the rendered workbook path and the global
// unscheduled report.
type Result struct {
	RunID        string
	OutputPath   string
	Unscheduled  report.Report
	SectionCount int
}

// Run executes one full generation pass and writes the workbook to
// outputPath (or a locked-retry suffix of it). An optional Collector
// instruments the run; omit it (or pass nil) to run uninstrumented.
func Run(inputs Inputs, outputPath string, seed int64, logger *zap.Logger, collectors ...*metrics.Collector) (Result, error) {
	var collector *metrics.Collector
	if len(collectors) > 0 {
		collector = collectors[0]
	}

	started := time.Now()
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	courses, err := ingest.LoadCatalog(inputs.CatalogPath)
	if err != nil {
		return Result{}, err
	}

	rooms, err := ingest.LoadRooms(inputs.RoomsPath)
	if err != nil {
		return Result{}, err
	}
	if rooms == nil {
		logger.Warn("rooms_csv_missing", zap.String("path", inputs.RoomsPath))
	}
	collector.SetCatalogSize(len(courses), len(rooms))

	batches, err := ingest.LoadBatches(inputs.BatchesPath)
	if err != nil {
		return Result{}, err
	}

	electives, err := ingest.LoadElectiveRegistrations(inputs.ElectiveRegistrationsPath)
	if err != nil {
		return Result{}, err
	}

	grid := timeslot.NewGrid()
	calendar := breaks.New(distinctSemesterBases(courses))
	instructors := registry.NewInstructorRegister()
	roomReg := registry.NewRoomRegister(rooms)
	oracle := constraint.New(calendar, instructors)
	allocator := roomalloc.New(roomReg)
	rng := rand.New(rand.NewSource(seed))
	engine := placement.New(oracle, instructors, allocator, rng, collector)

	wb := export.New(grid, calendar)
	var unscheduled report.Report
	sectionCount := 0

	for _, department := range distinctDepartments(courses) {
		for _, semester := range semestersForDepartment(courses, department) {
			sectionCourses := activeCourses(courses, department, semester)
			if len(sectionCourses) == 0 {
				continue
			}

			numSections := sectionCountFor(batches, department, semester)
			ordered := placement.OrderCourses(sectionCourses)

			for idx := 0; idx < numSections; idx++ {
				section := domain.Section{Department: department, Semester: semester, Index: idx, TotalCount: numSections}
				tt := domain.NewTimetable(grid.Len())

				var sectionUnscheduled []report.Entry
				for _, course := range ordered {
					req := deriver.Derive(course)
					cp := placement.CoursePlacement{
						Course:      course,
						Requirement: req,
						BatchTotal:  batchTotal(batches, electives, department, semester, course),
						RequiredCap: requiredCapacity(batches, electives, department, semester, course),
					}
					res := engine.PlaceCourse(tt, domain.SemesterBase(semester), department, semester, cp)
					recordSessionMetrics(collector, res)

					entry, ok := report.FromResult(department, semester, course, res)
					if ok {
						logger.Info("session_unplaceable",
							zap.String("department", department),
							zap.String("semester", semester),
							zap.String("code", course.Code),
							zap.Int("missing_slots", entry.MissingSlots()),
						)
						sectionUnscheduled = append(sectionUnscheduled, entry)
						unscheduled.Add(entry, true)
					}
				}

				if err := wb.AddSection(export.SectionSheet{
					Section:     section,
					Timetable:   tt,
					Unscheduled: sectionUnscheduled,
				}); err != nil {
					return Result{}, err
				}
				sectionCount++
				logger.Info("section_scheduled",
					zap.String("department", department),
					zap.String("semester", semester),
					zap.String("section", section.Label()),
				)
			}
		}
	}

	if err := wb.AddSummary(unscheduled); err != nil {
		return Result{}, err
	}

	savedPath, err := wb.Save(outputPath)
	if err != nil {
		return Result{}, err
	}

	collector.ObserveRunDuration(time.Since(started).Seconds())
	return Result{RunID: runID, OutputPath: savedPath, Unscheduled: unscheduled, SectionCount: sectionCount}, nil
}

func recordSessionMetrics(collector *metrics.Collector, res placement.Result) {
	placed := map[string]int{
		"LEC": res.PlacedLEC,
		"TUT": res.PlacedTUT,
		"LAB": res.PlacedLAB,
		"SS":  res.PlacedSS,
	}
	required := map[string]int{
		"LEC": res.Requirement.Lectures,
		"TUT": res.Requirement.Tutorials,
		"LAB": res.Requirement.Labs,
		"SS":  res.Requirement.SelfStudy,
	}
	for kind, have := range placed {
		for i := 0; i < have; i++ {
			collector.ObservePlaced(kind)
		}
		if missing := required[kind] - have; missing > 0 {
			for i := 0; i < missing; i++ {
				collector.ObserveUnplaceable(kind)
			}
		}
	}
}

func distinctSemesterBases(courses []domain.Course) []int {
	seen := make(map[int]struct{})
	var bases []int
	for _, c := range courses {
		base := domain.SemesterBase(c.Semester)
		if _, ok := seen[base]; !ok {
			seen[base] = struct{}{}
			bases = append(bases, base)
		}
	}
	return bases
}

func distinctDepartments(courses []domain.Course) []string {
	seen := make(map[string]struct{})
	var departments []string
	for _, c := range courses {
		if _, ok := seen[c.Department]; !ok {
			seen[c.Department] = struct{}{}
			departments = append(departments, c.Department)
		}
	}
	sort.Strings(departments)
	return departments
}

func semestersForDepartment(courses []domain.Course, department string) []string {
	seen := make(map[string]struct{})
	var semesters []string
	for _, c := range courses {
		if c.Department != department {
			continue
		}
		if _, ok := seen[c.Semester]; !ok {
			seen[c.Semester] = struct{}{}
			semesters = append(semesters, c.Semester)
		}
	}
	sort.Strings(semesters)
	return semesters
}

func activeCourses(courses []domain.Course, department, semester string) []domain.Course {
	var active []domain.Course
	for _, c := range courses {
		if c.Department == department && c.Semester == semester && c.Schedule {
			active = append(active, c)
		}
	}
	return active
}

func sectionCountFor(batches map[ingest.BatchKey]domain.BatchInfo, department, semester string) int {
	info, ok := batches[ingest.BatchKey{Department: department, Semester: semester}]
	if !ok {
		return 1
	}
	return info.NumSections
}

func requiredCapacity(batches map[ingest.BatchKey]domain.BatchInfo, electives map[string]domain.BatchInfo, department, semester string, course domain.Course) int {
	const fallbackCapacity = 60
	if course.IsElective() {
		if info, ok := electives[course.Code]; ok {
			return info.SectionSize
		}
		return fallbackCapacity
	}
	if info, ok := batches[ingest.BatchKey{Department: department, Semester: semester}]; ok {
		return info.SectionSize
	}
	return fallbackCapacity
}

func batchTotal(batches map[ingest.BatchKey]domain.BatchInfo, electives map[string]domain.BatchInfo, department, semester string, course domain.Course) int {
	if course.IsElective() {
		if info, ok := electives[course.Code]; ok {
			return info.Total
		}
		return 0
	}
	if info, ok := batches[ingest.BatchKey{Department: department, Semester: semester}]; ok {
		return info.Total
	}
	return 0
}
