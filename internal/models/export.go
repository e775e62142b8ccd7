package models

// ExportFormat selects the attendance report's output rendering.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
)

// Valid returns true when the format is a supported value.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatXLSX, FormatCSV, FormatPDF:
		return true
	default:
		return false
	}
}

// Ext returns the file extension including the dot.
func (f ExportFormat) Ext() string { return "." + string(f) }
