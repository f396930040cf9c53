// handlers/reconciliation_export.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"p9e.in/buildtrack/models"
)

var reconciliationHeaders = []string{
	"Work", "Status", "Estimated Value", "Income", "Expenses",
	"Net Position", "Variance", "Budget Status", "Completion %",
}

// ExportReconciliation streams the per-work reconciliation table as an
// .xlsx download.
func (h *FinanceHandler) ExportReconciliation(w http.ResponseWriter, r *http.Request) {
	var works []models.Work
	if err := h.db.Find(&works).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var entries []models.FinanceEntry
	if err := h.db.Find(&entries).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	summaries := h.engine.ReconcileWorks(works, entries)
	statuses := make(map[uuid.UUID]models.WorkStatus, len(works))
	for _, work := range works {
		statuses[work.ID] = work.Status
	}

	f := excelize.NewFile()
	sheetName := "Reconciliation"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", "Financial Reconciliation")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	for colIdx, header := range reconciliationHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	for rowIdx, summary := range summaries {
		row := rowIdx + 5
		values := []interface{}{
			summary.WorkTitle,
			string(statuses[summary.WorkID]),
			summary.EstimatedValue,
			summary.TotalIncome,
			summary.TotalExpenses,
			summary.NetPosition,
			summary.Variance,
			summary.BudgetStatus,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
		pctCell, _ := excelize.CoordinatesToCellName(9, row)
		if summary.HasCompletionPercentage {
			f.SetCellValue(sheetName, pctCell, summary.CompletionPercentage)
		} else {
			f.SetCellValue(sheetName, pctCell, "n/a")
		}
		startCell, _ := excelize.CoordinatesToCellName(3, row)
		endCell, _ := excelize.CoordinatesToCellName(7, row)
		f.SetCellStyle(sheetName, startCell, endCell, moneyStyle)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("reconciliation_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
