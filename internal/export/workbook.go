// Package export renders the generated schedule into the single xlsx
// workbook spec.md §6 requires: one worksheet per section, merged cells for
// multi-slot sessions, per-kind fills, and a locked-file retry-with-suffix
// save path. Grounded on the teacher repository's pkg/export, replacing its
// CSV/PDF rendering with github.com/xuri/excelize/v2 (out-of-pack: no repo
// in the corpus writes spreadsheets).
package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/andes-indica/timetable-scheduler/internal/breaks"
	"github.com/andes-indica/timetable-scheduler/internal/domain"
	"github.com/andes-indica/timetable-scheduler/internal/report"
	"github.com/andes-indica/timetable-scheduler/internal/timeslot"
	apperrors "github.com/andes-indica/timetable-scheduler/pkg/errors"
)

const maxLockedRetries = 100

// Fill colors per session kind (spec.md §6): LEC=sky blue, LAB=skin tone,
// TUT=orange.
var fillByKind = map[timeslot.Kind]string{
	timeslot.LEC: "87CEEB",
	timeslot.LAB: "FAE5D3",
	timeslot.TUT: "FFB347",
}

// SectionSheet is one worksheet's worth of rendering input.
type SectionSheet struct {
	Section   domain.Section
	Timetable *domain.Timetable
	Unscheduled []report.Entry
}

// Workbook accumulates section sheets before being saved.
type Workbook struct {
	file     *excelize.File
	grid     *timeslot.Grid
	calendar *breaks.Calendar
}

// New builds an empty workbook over the given slot grid and break calendar.
func New(grid *timeslot.Grid, calendar *breaks.Calendar) *Workbook {
	f := excelize.NewFile()
	// excelize always starts a workbook with a default "Sheet1"; every real
	// sheet is added explicitly, so drop the placeholder once at least one
	// real sheet exists (done in Save).
	return &Workbook{file: f, grid: grid, calendar: calendar}
}

// AddSection renders one section's timetable and unscheduled list onto its
// own worksheet, named per spec.md §6 ("<Dept><Sem>" or
// "<Dept><Sem>_<A|B|...>").
func (w *Workbook) AddSection(sheet SectionSheet) error {
	name := sheet.Section.Label()
	index, err := w.file.NewSheet(name)
	if err != nil {
		return apperrors.FromError(err)
	}
	w.file.SetActiveSheet(index)

	if err := w.writeHeader(name); err != nil {
		return err
	}
	if err := w.writeGrid(name, sheet); err != nil {
		return err
	}
	if err := w.writeUnscheduled(name, sheet.Unscheduled); err != nil {
		return err
	}
	return nil
}

// AddSummary renders the workbook-global "Unscheduled Summary" sheet spec.md
// §6 requires, listing every course across every section that fell short of
// its required sessions. Grounded on the original's global "Unscheduled
// Courses" sheet (Department/Semester/Course Code/Course Name/Faculty/
// Expected Slots/Scheduled Slots/Missing Slots columns); skipped entirely
// when the report is empty, matching the original's `if unscheduled_courses:`
// guard.
func (w *Workbook) AddSummary(rep report.Report) error {
	if rep.Empty() {
		return nil
	}

	const sheetName = "Unscheduled Summary"
	if _, err := w.file.NewSheet(sheetName); err != nil {
		return apperrors.FromError(err)
	}

	bold, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "center"}})
	if err != nil {
		return err
	}
	centered, err := w.file.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}})
	if err != nil {
		return err
	}

	headers := []string{"Department", "Semester", "Course Code", "Course Name", "Faculty", "Expected Slots", "Scheduled Slots", "Missing Slots"}
	for i, h := range headers {
		ref, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := w.file.SetCellValue(sheetName, ref, h); err != nil {
			return err
		}
		if err := w.file.SetCellStyle(sheetName, ref, ref, bold); err != nil {
			return err
		}
	}

	for i, entry := range rep.Entries {
		row := i + 2
		values := []interface{}{
			entry.Department, entry.Semester, entry.Code, entry.Name, entry.Faculty,
			entry.ExpectedSlots, entry.ScheduledSlots, entry.MissingSlots(),
		}
		for col, v := range values {
			ref, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := w.file.SetCellValue(sheetName, ref, v); err != nil {
				return err
			}
			if err := w.file.SetCellStyle(sheetName, ref, ref, centered); err != nil {
				return err
			}
		}
	}

	for col := 1; col <= len(headers); col++ {
		letter, _ := excelize.ColumnNumberToName(col)
		if err := w.file.SetColWidth(sheetName, letter, letter, 18); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) writeHeader(sheet string) error {
	bold, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"}})
	if err != nil {
		return err
	}
	if err := w.file.SetCellValue(sheet, "A1", "Day"); err != nil {
		return err
	}
	for i := 0; i < w.grid.Len(); i++ {
		cellRef, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := w.file.SetCellValue(sheet, cellRef, w.grid.At(i).Label()); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(w.grid.Len()+1, 1)
	return w.file.SetCellStyle(sheet, "A1", lastCol, bold)
}

func (w *Workbook) writeGrid(sheet string, s SectionSheet) error {
	semesterBase := domain.SemesterBase(s.Section.Semester)
	wrapCenter, err := w.file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "center", Horizontal: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}

	fillStyles := make(map[timeslot.Kind]int)
	for kind, color := range fillByKind {
		style, err := w.file.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "center", Horizontal: "center"},
			Border:    thinBorder(),
		})
		if err != nil {
			return err
		}
		fillStyles[kind] = style
	}

	for dayIdx, day := range timeslot.Days {
		row := dayIdx + 2
		rowRef, _ := excelize.CoordinatesToCellName(1, row)
		if err := w.file.SetCellValue(sheet, rowRef, day.String()); err != nil {
			return err
		}

		slot := 0
		for slot < w.grid.Len() {
			cell := s.Timetable.At(day, slot)
			col := slot + 2

			switch {
			case w.calendar.IsBreak(w.grid.At(slot), semesterBase):
				ref, _ := excelize.CoordinatesToCellName(col, row)
				if err := w.file.SetCellValue(sheet, ref, "BREAK"); err != nil {
					return err
				}
				if err := w.file.SetCellStyle(sheet, ref, ref, wrapCenter); err != nil {
					return err
				}
				slot++

			case cell.Occupied() && cell.Code != "":
				length := cell.Kind.Length()
				startRef, _ := excelize.CoordinatesToCellName(col, row)
				endRef, _ := excelize.CoordinatesToCellName(col+length-1, row)
				value := fmt.Sprintf("%s %s\n%s\n%s", cell.Code, cell.Kind.String(), cell.Classroom, cell.Faculty)
				if err := w.file.SetCellValue(sheet, startRef, value); err != nil {
					return err
				}
				if length > 1 {
					if err := w.file.MergeCell(sheet, startRef, endRef); err != nil {
						return err
					}
				}
				style := fillStyles[cell.Kind]
				if style == 0 {
					style = wrapCenter
				}
				if err := w.file.SetCellStyle(sheet, startRef, startRef, style); err != nil {
					return err
				}
				slot += length

			default:
				ref, _ := excelize.CoordinatesToCellName(col, row)
				if err := w.file.SetCellStyle(sheet, ref, ref, wrapCenter); err != nil {
					return err
				}
				slot++
			}
		}
	}

	for i := 1; i <= w.grid.Len()+1; i++ {
		colLetter, _ := excelize.ColumnNumberToName(i)
		if err := w.file.SetColWidth(sheet, colLetter, colLetter, 15); err != nil {
			return err
		}
	}
	for row := 2; row <= len(timeslot.Days)+1; row++ {
		if err := w.file.SetRowHeight(sheet, row, 40); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) writeUnscheduled(sheet string, entries []report.Entry) error {
	bold, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "center"}})
	if err != nil {
		return err
	}
	centered, err := w.file.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}, Border: thinBorder()})
	if err != nil {
		return err
	}

	headerRow := len(timeslot.Days) + 4
	if err := w.file.SetCellValue(sheet, fmt.Sprintf("A%d", headerRow), "Unscheduled Courses"); err != nil {
		return err
	}
	if err := w.file.MergeCell(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("E%d", headerRow)); err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("A%d", headerRow), bold); err != nil {
		return err
	}

	columnHeaders := []string{"Course Code", "Course Name", "Faculty", "Required Components", "Missing Components"}
	labelRow := headerRow + 1
	for i, h := range columnHeaders {
		ref, _ := excelize.CoordinatesToCellName(i+1, labelRow)
		if err := w.file.SetCellValue(sheet, ref, h); err != nil {
			return err
		}
		if err := w.file.SetCellStyle(sheet, ref, ref, bold); err != nil {
			return err
		}
	}

	for i, entry := range entries {
		row := labelRow + i + 1
		values := []interface{}{entry.Code, entry.Name, entry.Faculty, entry.RequiredComponents, entry.MissingComponents}
		for col, v := range values {
			ref, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := w.file.SetCellValue(sheet, ref, v); err != nil {
				return err
			}
			if err := w.file.SetCellStyle(sheet, ref, ref, centered); err != nil {
				return err
			}
		}
	}

	for col := 1; col <= 5; col++ {
		letter, _ := excelize.ColumnNumberToName(col)
		if err := w.file.SetColWidth(sheet, letter, letter, 20); err != nil {
			return err
		}
	}
	return nil
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "top", "right", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		borders = append(borders, excelize.Border{Type: s, Color: "000000", Style: 1})
	}
	return borders
}

// Save writes the workbook to path, retrying with a numeric suffix up to
// maxLockedRetries times when the target is locked (spec.md §6/§7).
func (w *Workbook) Save(path string) (string, error) {
	w.file.DeleteSheet("Sheet1")

	if err := w.file.SaveAs(path); err == nil {
		return path, nil
	} else if !isPermissionError(err) {
		return "", apperrors.FromError(err)
	}

	base, ext := splitExt(path)
	for counter := 1; counter <= maxLockedRetries; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", base, counter, ext)
		if err := w.file.SaveAs(candidate); err == nil {
			return candidate, nil
		} else if !isPermissionError(err) {
			return "", apperrors.FromError(err)
		}
	}
	return "", apperrors.ErrOutputLocked
}

func isPermissionError(err error) bool {
	return os.IsPermission(err)
}

func splitExt(path string) (string, string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i], path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return path, ""
}

