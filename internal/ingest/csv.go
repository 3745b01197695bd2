// Package ingest loads the scheduler's four CSV inputs with the encoding
// fallback and row validation spec.md §6.1 requires, grounded in the
// teacher repository's repository-layer loading pattern adapted to flat
// files instead of SQL.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/charmap"

	"github.com/andes-indica/timetable-scheduler/internal/domain"
	apperrors "github.com/andes-indica/timetable-scheduler/pkg/errors"
)

var validate = validator.New()

// decodeWithFallback tries the decodings spec.md §6.1 mandates, in order:
// utf-8-sig (BOM-stripped UTF-8), plain UTF-8, then cp1252.
func decodeWithFallback(raw []byte) (string, error) {
	// utf-8-sig: a UTF-8 BOM prefix decodes as ordinary UTF-8 once stripped.
	trimmed := bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(trimmed) {
		return string(trimmed), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err == nil {
		return string(decoded), nil
	}

	return "", apperrors.Wrap(err, apperrors.ErrCatalogEncoding.Code, apperrors.ErrCatalogEncoding.Message)
}

func readRows(path string) ([]map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, err := decodeWithFallback(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CourseRow mirrors one combined.csv row for validator-tag enforcement
// before it's converted into a domain.Course.
type CourseRow struct {
	Department string `validate:"required"`
	Semester   string `validate:"required"`
	CourseCode string `validate:"required"`
	CourseName string
	Faculty    string
	L          string
	T          string
	P          string
	S          string
	C          string
	Schedule   string
}

// LoadCatalog loads combined.csv. A missing file is a fatal, required-input
// error (spec.md §7); an empty file is likewise fatal.
func LoadCatalog(path string) ([]domain.Course, error) {
	rows, err := readRows(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Clone(apperrors.ErrCatalogMissing, fmt.Sprintf("course catalog not found: %s", path))
		}
		return nil, apperrors.FromError(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrCatalogEmpty
	}

	courses := make([]domain.Course, 0, len(rows))
	for _, row := range rows {
		cr := CourseRow{
			Department: row["Department"],
			Semester:   row["Semester"],
			CourseCode: row["Course Code"],
			CourseName: row["Course Name"],
			Faculty:    row["Faculty"],
			L:          row["L"],
			T:          row["T"],
			P:          row["P"],
			S:          row["S"],
			C:          row["C"],
			Schedule:   row["Schedule"],
		}
		if err := validate.Struct(cr); err != nil {
			continue // malformed row: skip rather than abort the whole catalog
		}

		courses = append(courses, domain.Course{
			Department: cr.Department,
			Semester:   cr.Semester,
			Code:       cr.CourseCode,
			Name:       cr.CourseName,
			Faculty:    cr.Faculty,
			L:          parseFloat(cr.L),
			T:          parseInt(cr.T),
			P:          parseInt(cr.P),
			S:          parseInt(cr.S),
			C:          parseInt(cr.C),
			Schedule:   scheduleActive(cr.Schedule),
		})
	}
	return courses, nil
}

func scheduleActive(raw string) bool {
	if raw == "" {
		return true
	}
	return strings.EqualFold(raw, "yes")
}

// LoadRooms loads rooms.csv. A missing file returns (nil, nil): the
// allocator interprets a nil room list as "use DEFAULT_ROOM" (spec.md §6.1,
// Scenario F), not a fatal error.
func LoadRooms(path string) ([]domain.Room, error) {
	rows, err := readRows(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.FromError(err)
	}

	rooms := make([]domain.Room, 0, len(rows))
	for _, row := range rows {
		capacity, convErr := strconv.Atoi(row["capacity"])
		if convErr != nil {
			continue
		}
		rooms = append(rooms, domain.Room{
			ID:         row["id"],
			Capacity:   capacity,
			Type:       row["type"],
			RoomNumber: row["roomNumber"],
		})
	}
	return rooms, nil
}

// BatchKey identifies one (Department, Semester) cohort.
type BatchKey struct {
	Department string
	Semester   string
}

// LoadBatches loads updated_batches.csv. A missing file returns an empty
// map: every department/semester then falls back to a single section
// (spec.md §6.1).
func LoadBatches(path string) (map[BatchKey]domain.BatchInfo, error) {
	rows, err := readRows(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[BatchKey]domain.BatchInfo{}, nil
		}
		return nil, apperrors.FromError(err)
	}

	batches := make(map[BatchKey]domain.BatchInfo, len(rows))
	for _, row := range rows {
		total, tErr := strconv.Atoi(row["Total_Students"])
		maxBatch, mErr := strconv.Atoi(row["MaxBatchSize"])
		if tErr != nil || mErr != nil {
			continue
		}
		key := BatchKey{Department: row["Department"], Semester: row["Semester"]}
		batches[key] = domain.DeriveBatchInfo(total, maxBatch)
	}
	return batches, nil
}

// LoadElectiveRegistrations loads elective_registration.csv, keyed by
// course code. A missing file returns an empty map (spec.md §6.1).
func LoadElectiveRegistrations(path string) (map[string]domain.BatchInfo, error) {
	rows, err := readRows(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.BatchInfo{}, nil
		}
		return nil, apperrors.FromError(err)
	}

	registrations := make(map[string]domain.BatchInfo, len(rows))
	for _, row := range rows {
		total, convErr := strconv.Atoi(row["Total Students"])
		if convErr != nil {
			continue
		}
		registrations[row["Course Code"]] = domain.DeriveElectiveBatchInfo(total)
	}
	return registrations, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

