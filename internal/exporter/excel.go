package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

const detailSheetName = "詳細データ"

// ExportDetailExcel 把明细数据导出为 Excel 文件
func ExportDetailExcel(path string, rows []model.DetailRow) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", detailSheetName)

	// 表头样式：加粗 + 浅灰底色
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E8EAED"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, name := range detailHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(detailSheetName, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(detailSheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for rowIdx, row := range rows {
		values := []interface{}{
			row.DeptName,
			row.AccountName,
			row.PriorBalance,
			row.Debit,
			row.Credit,
			row.Balance,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(detailSheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	// 名称列放宽，金额列统一宽度
	if err := f.SetColWidth(detailSheetName, "A", "B", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(detailSheetName, "C", "F", 16); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}
	return nil
}
