package aggregator

import (
	"sort"

	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

// DepartmentBreakdown 部门别的销售、利润集计（按部课编码升序）
func (a *Aggregator) DepartmentBreakdown(period string) []model.DepartmentSummary {
	mainRows := a.MainAccounts(a.FilterByPeriod(period))

	codes := departmentCodes(mainRows)
	sort.Ints(codes)

	result := make([]model.DepartmentSummary, 0, len(codes))
	for _, code := range codes {
		deptRows := departmentRows(mainRows, code)
		name := ""
		if len(deptRows) > 0 {
			name = deptRows[0].DeptName
		}

		revenue := balanceOf(deptRows, model.AccountRevenue)
		grossProfit := balanceOf(deptRows, model.AccountGrossProfit)
		operatingIncome := balanceOf(deptRows, model.AccountOperatingIncome)
		ordinaryIncome := balanceOf(deptRows, model.AccountOrdinaryIncome)

		result = append(result, model.DepartmentSummary{
			DeptCode:        code,
			DeptName:        name,
			Revenue:         revenue,
			GrossProfit:     grossProfit,
			OperatingIncome: operatingIncome,
			OrdinaryIncome:  ordinaryIncome,
			GrossMargin:     margin(grossProfit, revenue),
			OpMargin:        margin(operatingIncome, revenue),
		})
	}
	return result
}

// CostStructure 原价构成
//
// 材料費/労務費/経費 取自製造原価内訳（出力帳票=1），
// 制造原价合计取自损益计算书本体（出力帳票=0）。
// 两者是同一期间的不同帐票口径，三费之和与合计行不要求一致
func (a *Aggregator) CostStructure(deptCode *int, period string) model.CostStructure {
	filtered := a.filter(deptCode, period)
	costRows := a.CostBreakdown(filtered)
	mainRows := a.MainAccounts(filtered)

	var cs model.CostStructure

	if deptCode == nil {
		// 全公司：与 KPI 相同，逐部门取值后求和
		for _, code := range departmentCodes(costRows) {
			deptCost := departmentRows(costRows, code)
			cs.MaterialCost += balanceOf(deptCost, model.AccountMaterialCost)
			cs.LaborCost += balanceOf(deptCost, model.AccountLaborCost)
			cs.Expense += balanceOf(deptCost, model.AccountExpenseCost)
		}
		for _, code := range departmentCodes(mainRows) {
			deptMain := departmentRows(mainRows, code)
			cs.MfgCost += balanceOf(deptMain, model.AccountMfgCost)
		}
	} else {
		cs.MaterialCost = balanceOf(costRows, model.AccountMaterialCost)
		cs.LaborCost = balanceOf(costRows, model.AccountLaborCost)
		cs.Expense = balanceOf(costRows, model.AccountExpenseCost)
		cs.MfgCost = balanceOf(mainRows, model.AccountMfgCost)
	}

	return cs
}

// CostBreakdownByDept 部门别的原价构成（按部课编码升序）
func (a *Aggregator) CostBreakdownByDept(period string) []model.DepartmentCost {
	filtered := a.FilterByPeriod(period)
	costRows := a.CostBreakdown(filtered)
	mainRows := a.MainAccounts(filtered)

	codes := departmentCodes(costRows)
	sort.Ints(codes)

	result := make([]model.DepartmentCost, 0, len(codes))
	for _, code := range codes {
		deptCost := departmentRows(costRows, code)
		deptMain := departmentRows(mainRows, code)
		name := ""
		if len(deptCost) > 0 {
			name = deptCost[0].DeptName
		}

		result = append(result, model.DepartmentCost{
			DeptCode:     code,
			DeptName:     name,
			MaterialCost: balanceOf(deptCost, model.AccountMaterialCost),
			LaborCost:    balanceOf(deptCost, model.AccountLaborCost),
			Expense:      balanceOf(deptCost, model.AccountExpenseCost),
			MfgCost:      balanceOf(deptMain, model.AccountMfgCost),
		})
	}
	return result
}

// SGABreakdown 販管費内訳
//
// 取损益计算书本体中科目コード在 [6000, 6299) 区间的明细科目，
// 按科目跨部门直接合计残高（此处不走逐部门取值再求和的口径），
// 合计为 0 的科目剔除，按金额降序返回
func (a *Aggregator) SGABreakdown(deptCode *int, period string) []model.SGAItem {
	mainRows := a.MainAccounts(a.filter(deptCode, period))

	var sgaRows model.Ledger
	for _, row := range mainRows {
		if row.AccountCode >= model.SGARangeLow && row.AccountCode < model.SGARangeHigh {
			sgaRows = append(sgaRows, row)
		}
	}

	seen := make(map[int]bool)
	var result []model.SGAItem
	for _, row := range sgaRows {
		if seen[row.AccountCode] {
			continue
		}
		seen[row.AccountCode] = true

		total := 0.0
		for _, item := range sgaRows {
			if item.AccountCode == row.AccountCode {
				total += item.Balance
			}
		}
		if total != 0 {
			result = append(result, model.SGAItem{
				AccountCode: row.AccountCode,
				AccountName: row.AccountName,
				Amount:      total,
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

// DetailRows 明细数据（表格显示/导出用）
// 按 (部課名, 科目名) 升序排列的投影，不做任何集计
func (a *Aggregator) DetailRows(deptCode *int, period string, reportType int) []model.DetailRow {
	filtered := a.filter(deptCode, period)

	result := make([]model.DetailRow, 0)
	for _, row := range filtered {
		if row.ReportType != reportType {
			continue
		}
		result = append(result, model.DetailRow{
			DeptName:     row.DeptName,
			AccountName:  row.AccountName,
			PriorBalance: row.PriorBalance,
			Debit:        row.Debit,
			Credit:       row.Credit,
			Balance:      row.Balance,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DeptName != result[j].DeptName {
			return result[i].DeptName < result[j].DeptName
		}
		return result[i].AccountName < result[j].AccountName
	})
	return result
}
