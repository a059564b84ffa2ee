package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/domain"
)

var repairExportHeader = []string{
	"ID",
	"Repair Type",
	"Short Description",
	"Description",
	"Status",
	"Submission Date",
	"Scheduled Start",
	"Scheduled End",
	"Actual Start",
	"Actual End",
	"Proposed Cost",
	"Accepted",
	"Repair Address",
	"Property ID",
	"Deleted",
}

// Export streams the full repair ledger as an xlsx workbook.
func (h *RepairHandler) Export(w http.ResponseWriter, r *http.Request) {
	repairs, err := h.repairs.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := generateRepairExport(repairs)
	if err != nil {
		h.logger.Error("Repair export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("export failed"))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="repairs.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func generateRepairExport(repairs []*domain.Repair) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close only on the error paths.

	sheetName := "Repairs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range repairExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, rp := range repairs {
		row := rowIdx + 2
		values := []any{
			rp.ID,
			string(rp.RepairType),
			rp.ShortDescription,
			rp.Description,
			string(rp.RepairStatus),
			formatDateTime(rp.SubmissionDate),
			formatDateTime(rp.ScheduledStartDate),
			formatDateTime(rp.ScheduledEndDate),
			formatDateTime(rp.ActualStartDate),
			formatDateTime(rp.ActualEndDate),
			rp.ProposedCost,
			formatAcceptance(rp.AcceptanceStatus),
			rp.RepairAddress,
			rp.PropertyID,
			rp.Deleted,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	// Freeze the header row.
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDateTime(d *domain.DateTime) string {
	if d == nil {
		return ""
	}
	return d.Format(domain.TimeLayout)
}

func formatAcceptance(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "Yes"
	}
	return "No"
}
