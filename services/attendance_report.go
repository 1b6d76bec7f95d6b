package services

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/attendance-portal/models"
)

const (
	ReportSheet       = "Attendance Records"
	ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	reportAccent  = "6366F1"
	reportCreator = "Attendance Portal"
	unknownUser   = "Unknown"
	checkGlyph    = "✓"
	crossGlyph    = "✗"
)

var reportColumns = []struct {
	Header string
	Width  float64
}{
	{"Date", 15},
	{"Supervisor Name", 25},
	{"Supervisor Email", 30},
	{"Cleaning", 12},
	{"Sweeping", 12},
	{"Mopping", 12},
	{"Total Tasks", 12},
}

// AttendanceReport is a rendered monthly workbook ready to be written out.
type AttendanceReport struct {
	Filename string
	Records  int
	file     *excelize.File
}

func (r *AttendanceReport) WriteTo(w io.Writer) (int64, error) {
	return r.file.WriteTo(w)
}

func (r *AttendanceReport) Close() error {
	return r.file.Close()
}

func taskGlyph(done bool) string {
	if done {
		return checkGlyph
	}
	return crossGlyph
}

func supervisorLabel(u *models.User) (name, email string) {
	name, email = unknownUser, unknownUser
	if u == nil {
		return
	}
	if u.Name != "" {
		name = u.Name
	}
	if u.Email != "" {
		email = u.Email
	}
	return
}

func reportRow(e models.Attendance, loc *time.Location) []interface{} {
	name, email := supervisorLabel(e.Supervisor)
	return []interface{}{
		e.Date.In(loc).Format(dayLayout),
		name,
		email,
		taskGlyph(e.Cleaning),
		taskGlyph(e.Sweeping),
		taskGlyph(e.Mopping),
		e.TasksCompleted(),
	}
}

// BuildAttendanceReport lays out a title row, a header row, one row per entry and a trailing record count.
func BuildAttendanceReport(period MonthPeriod, entries []models.Attendance, created time.Time) (*AttendanceReport, error) {
	if period.Loc == nil {
		period.Loc = time.Local
	}
	f := excelize.NewFile()
	if err := writeAttendanceSheet(f, period, entries, created); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("build attendance report: %w", err)
	}
	return &AttendanceReport{
		Filename: period.Filename(),
		Records:  len(entries),
		file:     f,
	}, nil
}

func writeAttendanceSheet(f *excelize.File, period MonthPeriod, entries []models.Attendance, created time.Time) error {
	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return err
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: reportCreator,
		Created: created.UTC().Format(time.RFC3339),
		Title:   "Attendance Report - " + period.Title(),
	}); err != nil {
		return err
	}
	tabColor := reportAccent
	if err := f.SetSheetProps(ReportSheet, &excelize.SheetPropsOptions{
		TabColorRGB: &tabColor,
	}); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(reportColumns))
	if err != nil {
		return err
	}
	for i, col := range reportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ReportSheet, name, name, col.Width); err != nil {
			return err
		}
	}

	// Row 1: title across every column.
	if err := f.MergeCell(ReportSheet, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellValue(ReportSheet, "A1", "Attendance Report - "+period.Title()); err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ReportSheet, "A1", lastCol+"1", titleStyle); err != nil {
		return err
	}

	// Row 2: headers.
	headers := make([]interface{}, len(reportColumns))
	for i, col := range reportColumns {
		headers[i] = col.Header
	}
	if err := f.SetSheetRow(ReportSheet, "A2", &headers); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{reportAccent}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ReportSheet, "A2", lastCol+"2", headerStyle); err != nil {
		return err
	}

	row := 3
	for _, e := range entries {
		values := reportRow(e, period.Loc)
		if err := f.SetSheetRow(ReportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	summary := []interface{}{"Total Records:", len(entries)}
	return f.SetSheetRow(ReportSheet, fmt.Sprintf("A%d", row), &summary)
}
