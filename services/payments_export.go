package services

import (
	"fmt"
	"io"

	"cabinet_avocat_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportPaymentsXLSX writes the lawyer's payments ledger as a spreadsheet.
// Date filters apply to the payment creation date ("2006-01-02" strings,
// empty means unbounded).
func ExportPaymentsXLSX(db *gorm.DB, lawyerID, startDate, endDate string, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Client", "Case Number", "Total Amount", "Paid Amount", "Mode", "Status"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	query := db.Model(&models.Payment{}).
		Preload("Client").Preload("Case").
		Where("lawyer_id = ?", lawyerID)
	if startDate != "" {
		query = query.Where("created_at >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("created_at <= ?", endDate+" 23:59:59")
	}

	var payments []models.Payment
	row := 2
	batchSize := 100
	result := query.FindInBatches(&payments, batchSize, func(tx *gorm.DB, batch int) error {
		for _, p := range payments {
			caseNumber := ""
			if p.Case != nil {
				caseNumber = p.Case.CaseNumber
			}

			values := []interface{}{
				p.CreatedAt.Format("2006-01-02"),
				p.Client.FullName(),
				caseNumber,
				p.TotalAmount,
				p.PaidAmount,
				p.PaymentMode,
				p.Status,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
		return nil
	})
	if result.Error != nil {
		return fmt.Errorf("failed to export payments: %w", result.Error)
	}

	return f.Write(w)
}
