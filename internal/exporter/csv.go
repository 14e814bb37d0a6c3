package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

// 明细导出的列头（与明细画面的投影一致）
var detailHeader = []string{"部課名", "科目名", "前残高", "借方", "貸方", "残高"}

// WriteDetailCSV 把明细数据写出为 CSV
// 头部带 UTF-8 BOM，保证 Excel 等表格软件直接打开不乱码
func WriteDetailCSV(w io.Writer, rows []model.DetailRow) error {
	if _, err := w.Write([]byte("\uFEFF")); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(detailHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.DeptName,
			row.AccountName,
			formatAmount(row.PriorBalance),
			formatAmount(row.Debit),
			formatAmount(row.Credit),
			formatAmount(row.Balance),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportDetailCSV 把明细数据导出到指定路径
func ExportDetailCSV(path string, rows []model.DetailRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteDetailCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
