package aggregator

import (
	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

// Column 取值列
type Column int

const (
	ColumnBalance      Column = iota // 残高
	ColumnPriorBalance               // 前残高
	ColumnDebit                      // 借方
	ColumnCredit                     // 貸方
)

// Aggregator 损益计算书数据的加工与集计
//
// 持有 Ledger 快照的只读引用，全部查询均为纯函数，可任意顺序反复调用。
// 数据重新加载后整体重建 Aggregator，不做增量更新。
// 空数据、不存在的部课/年月一律返回零值或空结果，不产生错误
type Aggregator struct {
	ledger model.Ledger
}

// New 基于 Ledger 快照创建 Aggregator
func New(ledger model.Ledger) *Aggregator {
	return &Aggregator{ledger: ledger}
}

// FilterByDepartment 按部课过滤，deptCode 为 nil 时返回全部门
func (a *Aggregator) FilterByDepartment(deptCode *int) model.Ledger {
	if deptCode == nil {
		return a.ledger
	}
	var result model.Ledger
	for _, row := range a.ledger {
		if row.DeptCode == *deptCode {
			result = append(result, row)
		}
	}
	return result
}

// FilterByPeriod 按对象年月过滤，period 为空串时返回全期间
func (a *Aggregator) FilterByPeriod(period string) model.Ledger {
	if period == "" {
		return a.ledger
	}
	var result model.Ledger
	for _, row := range a.ledger {
		if row.Period == period {
			result = append(result, row)
		}
	}
	return result
}

// filter 部课与年月的复合过滤（两个条件为且的关系）
func (a *Aggregator) filter(deptCode *int, period string) model.Ledger {
	var result model.Ledger
	for _, row := range a.ledger {
		if deptCode != nil && row.DeptCode != *deptCode {
			continue
		}
		if period != "" && row.Period != period {
			continue
		}
		result = append(result, row)
	}
	return result
}

// MainAccounts 损益计算书本体（出力帳票=0）
func (a *Aggregator) MainAccounts(rows model.Ledger) model.Ledger {
	return filterReportType(rows, model.ReportTypeMain)
}

// CostBreakdown 製造原価内訳（出力帳票=1）
func (a *Aggregator) CostBreakdown(rows model.Ledger) model.Ledger {
	return filterReportType(rows, model.ReportTypeCostBreakdown)
}

func filterReportType(rows model.Ledger, reportType int) model.Ledger {
	var result model.Ledger
	for _, row := range rows {
		if row.ReportType == reportType {
			result = append(result, row)
		}
	}
	return result
}

// AccountValue 取指定科目コード的值
// 同一分区内科目コード视为唯一，命中多行时取首行；无命中返回 0
func (a *Aggregator) AccountValue(rows model.Ledger, accountCode int, column Column) float64 {
	for _, row := range rows {
		if row.AccountCode != accountCode {
			continue
		}
		switch column {
		case ColumnPriorBalance:
			return row.PriorBalance
		case ColumnDebit:
			return row.Debit
		case ColumnCredit:
			return row.Credit
		default:
			return row.Balance
		}
	}
	return 0
}

// balanceOf AccountValue 的残高列简写
func balanceOf(rows model.Ledger, accountCode int) float64 {
	for _, row := range rows {
		if row.AccountCode == accountCode {
			return row.Balance
		}
	}
	return 0
}

// departmentCodes 行集合中出现的部课编码（按首次出现顺序去重）
func departmentCodes(rows model.Ledger) []int {
	seen := make(map[int]bool)
	var codes []int
	for _, row := range rows {
		if !seen[row.DeptCode] {
			seen[row.DeptCode] = true
			codes = append(codes, row.DeptCode)
		}
	}
	return codes
}

// departmentRows 行集合中指定部课的子集
func departmentRows(rows model.Ledger, deptCode int) model.Ledger {
	var result model.Ledger
	for _, row := range rows {
		if row.DeptCode == deptCode {
			result = append(result, row)
		}
	}
	return result
}

// margin 利益率(%)，収入計为 0 时固定返回 0
func margin(profit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return profit / revenue * 100
}
