package aggregator

import (
	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

// CalculateKPI 计算重要经营指标
//
// deptCode 为 nil 时表示全公司：逐部门取科目值后求和，
// 而不是对整个列直接求和。科目行若在未过滤层面出现重复，
// 逐部门的首行命中语义可以把影响限制在单个部门内
func (a *Aggregator) CalculateKPI(deptCode *int, period string) model.KPI {
	filtered := a.filter(deptCode, period)
	mainRows := a.MainAccounts(filtered)

	var kpi model.KPI

	if deptCode == nil {
		for _, code := range departmentCodes(mainRows) {
			deptRows := departmentRows(mainRows, code)
			kpi.Revenue += balanceOf(deptRows, model.AccountRevenue)
			kpi.CostOfSales += balanceOf(deptRows, model.AccountCostOfSales)
			kpi.GrossProfit += balanceOf(deptRows, model.AccountGrossProfit)
			kpi.SGA += balanceOf(deptRows, model.AccountSGA)
			kpi.OperatingIncome += balanceOf(deptRows, model.AccountOperatingIncome)
			kpi.OrdinaryIncome += balanceOf(deptRows, model.AccountOrdinaryIncome)
			kpi.NetIncome += balanceOf(deptRows, model.AccountNetIncome)
		}
	} else {
		kpi.Revenue = balanceOf(mainRows, model.AccountRevenue)
		kpi.CostOfSales = balanceOf(mainRows, model.AccountCostOfSales)
		kpi.GrossProfit = balanceOf(mainRows, model.AccountGrossProfit)
		kpi.SGA = balanceOf(mainRows, model.AccountSGA)
		kpi.OperatingIncome = balanceOf(mainRows, model.AccountOperatingIncome)
		kpi.OrdinaryIncome = balanceOf(mainRows, model.AccountOrdinaryIncome)
		kpi.NetIncome = balanceOf(mainRows, model.AccountNetIncome)
	}

	kpi.GrossMargin = margin(kpi.GrossProfit, kpi.Revenue)
	kpi.OpMargin = margin(kpi.OperatingIncome, kpi.Revenue)
	kpi.OrdMargin = margin(kpi.OrdinaryIncome, kpi.Revenue)
	kpi.NetMargin = margin(kpi.NetIncome, kpi.Revenue)

	return kpi
}
