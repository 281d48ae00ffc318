package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/finca/config"
	"p9e.in/finca/middleware"
	"p9e.in/finca/models"
)

// ExportCodes streams the caller's visible code roster as an .xlsx file.
func ExportCodes(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var codes []models.Code
	q := scope.Scoped(config.DB).Preload("Zone").Preload("Farm").Order("code")
	if err := q.Find(&codes).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	sheet := "Codes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Code", "First Name", "Last Name", "Phone", "Farm", "Zone", "Active", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, c := range codes {
		farmName, zoneName := "", ""
		if c.Farm != nil {
			farmName = c.Farm.Name
		}
		if c.Zone != nil {
			zoneName = c.Zone.Name
		}
		values := []interface{}{
			c.Code, c.PersonFirstName, c.PersonLastName, c.Phone,
			farmName, zoneName, c.IsActive, c.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("codes_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
