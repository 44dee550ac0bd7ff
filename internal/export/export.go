package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tavola/internal/domain"
	"tavola/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// Exporter writes booking ranges out as spreadsheet files for staff.
type Exporter struct {
	store  domain.Store
	path   string
	logger *zerolog.Logger
}

func NewExporter(store domain.Store, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, path: path, logger: logger}
}

// BookingsToExcel exports all bookings with dates in [start, end] to an
// .xlsx file and returns its path.
func (e *Exporter) BookingsToExcel(ctx context.Context, start, end string) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings, err := e.store.ListBookingsByDateRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Bookings %s to %s", start, end))
	lastCol, _ := excelize.ColumnNumberToName(len(columnHeaders))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	e.writeHeaders(f)
	e.writeRows(f, bookings)
	e.setColumnWidths(f)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx", start, end)
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}

var columnHeaders = []string{
	"ID", "Date", "Time", "Party", "Guest", "Phone", "Email",
	"Occasion", "Special Requests", "Status", "Source", "Created At",
}

func (e *Exporter) writeHeaders(f *excelize.File) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range columnHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func (e *Exporter) writeRows(f *excelize.File, bookings []models.Booking) {
	for i := range bookings {
		b := &bookings[i]
		row := i + 3

		values := []interface{}{
			b.ID, b.Date, b.Time, b.PartySize, b.GuestName, b.GuestPhone,
			b.GuestEmail, b.Occasion, b.SpecialRequests, b.EffectiveStatus(),
			b.Source, b.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}

		if styleID, err := e.statusStyle(f, b.EffectiveStatus()); err == nil {
			statusCell, _ := excelize.CoordinatesToCellName(10, row)
			_ = f.SetCellStyle(sheetName, statusCell, statusCell, styleID)
		}
	}
}

func (e *Exporter) statusStyle(f *excelize.File, status string) (int, error) {
	var color string
	switch status {
	case models.StatusConfirmed, models.StatusCompleted:
		color = "#C6EFCE"
	case models.StatusNoShow:
		color = "#FFEB9C"
	case models.StatusCancelled:
		color = "#FFC7CE"
	default:
		color = "#FFFFFF"
	}

	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func (e *Exporter) setColumnWidths(f *excelize.File) {
	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "C", 12)
	_ = f.SetColWidth(sheetName, "D", "D", 8)
	_ = f.SetColWidth(sheetName, "E", "G", 24)
	_ = f.SetColWidth(sheetName, "H", "I", 20)
	_ = f.SetColWidth(sheetName, "J", "K", 12)
	_ = f.SetColWidth(sheetName, "L", "L", 18)
}
