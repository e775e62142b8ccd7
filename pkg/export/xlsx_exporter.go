package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Fill colors, one per label category.
const (
	colorWeekend = "DDDDE0"
	colorHoliday = "DDDDFF"
	colorPresent = "C6EFCE"
	colorLeave   = "FFEB9C"
)

// AttendanceSheet is the rendered form of the attendance matrix: people as
// rows, days as columns, plus the per-person count of "Present" cells.
type AttendanceSheet struct {
	Days    []time.Time
	People  []string
	Cells   [][]string
	Present []int
	// Holidays marks the day columns to fill with the holiday color.
	Holidays map[time.Time]bool
}

// XLSXExporter renders an AttendanceSheet into an xlsx workbook: weekday
// and day-number header rows, weekend and holiday columns filled whole,
// presence and leave cells filled individually, and a color legend below
// the table.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

type sheetStyles struct {
	bold        int
	weekend     int
	weekendBold int
	holiday     int
	holidayBold int
	present     int
	leave       int
}

// Render produces the workbook bytes.
func (e *XLSXExporter) Render(sheet AttendanceSheet) ([]byte, error) {
	if len(sheet.Days) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one day column")
	}
	if len(sheet.Cells) != len(sheet.People) || len(sheet.Present) != len(sheet.People) {
		return nil, fmt.Errorf("xlsx row count mismatch: %d people, %d label rows, %d present counts",
			len(sheet.People), len(sheet.Cells), len(sheet.Present))
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck
	const name = "Sheet1"

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, fmt.Errorf("build styles: %w", err)
	}

	var setErr error
	set := func(col, row int, value any) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err == nil {
			err = f.SetCellValue(name, cell, value)
		}
		if err != nil && setErr == nil {
			setErr = err
		}
	}
	style := func(col, fromRow, toRow, styleID int) {
		from, err := excelize.CoordinatesToCellName(col, fromRow)
		if err != nil && setErr == nil {
			setErr = err
			return
		}
		to, err := excelize.CoordinatesToCellName(col, toRow)
		if err == nil {
			err = f.SetCellStyle(name, from, to, styleID)
		}
		if err != nil && setErr == nil {
			setErr = err
		}
	}

	// Header rows: weekday abbreviation over day number. Day columns start
	// at B; the first column holds names.
	set(1, 2, "Member")
	for j, day := range sheet.Days {
		col := j + 2
		set(col, 1, day.Format("Mon"))
		set(col, 2, day.Format("02"))
	}
	presentCol := len(sheet.Days) + 2
	set(presentCol, 2, "Present")

	for i, person := range sheet.People {
		row := i + 3
		set(1, row, person)
		for j, label := range sheet.Cells[i] {
			if label != "" {
				set(j+2, row, label)
			}
		}
		set(presentCol, row, sheet.Present[i])
	}

	// Column fills cover the table plus one open row below, like the
	// original report layout.
	lastRow := len(sheet.People) + 3
	for j, day := range sheet.Days {
		col := j + 2
		switch {
		case day.Weekday() == time.Saturday || day.Weekday() == time.Sunday:
			style(col, 1, lastRow, styles.weekend)
			style(col, 1, 2, styles.weekendBold)
		case sheet.Holidays[day]:
			style(col, 1, lastRow, styles.holiday)
			style(col, 1, 2, styles.holidayBold)
		default:
			style(col, 1, 2, styles.bold)
			for i, label := range columnLabels(sheet.Cells, j) {
				if id := labelStyle(styles, label); id != 0 {
					style(col, i+3, i+3, id)
				}
			}
		}
	}
	style(1, 2, 2, styles.bold)
	style(presentCol, 2, 2, styles.bold)

	legendRow := len(sheet.People) + 5
	legend := []struct {
		styleID int
		text    string
	}{
		{styles.weekend, "Weekly off"},
		{styles.holiday, "Holiday"},
		{styles.present, "Present"},
		{styles.leave, "Time off"},
	}
	for i, item := range legend {
		style(2, legendRow+i, legendRow+i, item.styleID)
		set(3, legendRow+i, item.text)
	}

	if setErr != nil {
		return nil, fmt.Errorf("populate sheet: %w", setErr)
	}

	nameWidth := float64(len("Member"))
	for _, person := range sheet.People {
		if w := float64(len(person)); w > nameWidth {
			nameWidth = w
		}
	}
	if err := f.SetColWidth(name, "A", "A", nameWidth+2); err != nil {
		return nil, fmt.Errorf("size name column: %w", err)
	}
	lastDayCol, err := excelize.ColumnNumberToName(presentCol - 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(name, "B", lastDayCol, 5); err != nil {
		return nil, fmt.Errorf("size day columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	build := func(color string, bold bool) int {
		if err != nil {
			return 0
		}
		style := &excelize.Style{}
		if color != "" {
			style.Fill = excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
		}
		if bold {
			style.Font = &excelize.Font{Bold: true}
		}
		var id int
		id, err = f.NewStyle(style)
		return id
	}
	s.bold = build("", true)
	s.weekend = build(colorWeekend, false)
	s.weekendBold = build(colorWeekend, true)
	s.holiday = build(colorHoliday, false)
	s.holidayBold = build(colorHoliday, true)
	s.present = build(colorPresent, false)
	s.leave = build(colorLeave, false)
	return s, err
}

// labelStyle picks the fill for a cell on a plain weekday column. Anything
// that is neither blank nor "Present" there is a leave label (the policy
// name, "0.5 "-prefixed for half days).
func labelStyle(styles sheetStyles, label string) int {
	switch {
	case label == "Present":
		return styles.present
	case label != "":
		return styles.leave
	default:
		return 0
	}
}

func columnLabels(cells [][]string, col int) []string {
	labels := make([]string, len(cells))
	for i, row := range cells {
		if col < len(row) {
			labels[i] = row[col]
		}
	}
	return labels
}
