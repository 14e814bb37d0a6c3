package model

// 主要科目コード
// 固定的会计科目体系，启动时即确定，运行期不存在任何修改路径
const (
	AccountRevenue         = 4199 // 【収入計】
	AccountCostOfSales     = 5399 // 【売上原価】
	AccountGrossProfit     = 5400 // 【売上総利益】
	AccountSGA             = 6299 // (販売費及び一般管理費)
	AccountOperatingIncome = 7000 // 【営業利益】
	AccountNonOpRevenue    = 7199 // 【営業外収益】
	AccountNonOpExpense    = 7599 // 【営業外費用】
	AccountOrdinaryIncome  = 8000 // 【経常利益】
	AccountExtraIncome     = 8199 // 【特別利益】
	AccountExtraLoss       = 8299 // 【特別損失】
	AccountPretaxIncome    = 8300 // 【税引前当期利益】
	AccountNetIncome       = 9000 // 【当期利益】

	// 製造原価内訳（出力帳票=1）
	AccountMaterialCost = 5419 // (製)材料費計
	AccountLaborCost    = 5439 // (製)労務費計
	AccountExpenseCost  = 5469 // (製)経費計

	// 製造原価（出力帳票=0）
	AccountMfgCost = 5299 // 【当期製品製造原価】

	// 販管費明细科目的编码区间 [6000, 6299)
	// 注意区间不含 6299（6299 是販管費合计行）
	SGARangeLow  = 6000
	SGARangeHigh = 6299
)

// AccountGuideEntry 科目说明（帮助页用）
type AccountGuideEntry struct {
	Key         string `json:"key"`
	Code        int    `json:"code"`
	Name        string `json:"name"`
	ReportType  int    `json:"reportType"`
	Description string `json:"description"`
}

// AccountGuide 返回主要科目一览
// 每次调用返回新切片，调用方无法篡改科目表本身
func AccountGuide() []AccountGuideEntry {
	return []AccountGuideEntry{
		{Key: "revenue", Code: AccountRevenue, Name: "収入計", ReportType: ReportTypeMain, Description: "売上高合计"},
		{Key: "cost_of_sales", Code: AccountCostOfSales, Name: "売上原価", ReportType: ReportTypeMain, Description: "销售成本"},
		{Key: "gross_profit", Code: AccountGrossProfit, Name: "売上総利益", ReportType: ReportTypeMain, Description: "毛利"},
		{Key: "sga", Code: AccountSGA, Name: "販売費及び一般管理費", ReportType: ReportTypeMain, Description: "販管費合计行"},
		{Key: "operating_income", Code: AccountOperatingIncome, Name: "営業利益", ReportType: ReportTypeMain, Description: "营业利润"},
		{Key: "non_op_revenue", Code: AccountNonOpRevenue, Name: "営業外収益", ReportType: ReportTypeMain, Description: "营业外收益"},
		{Key: "non_op_expense", Code: AccountNonOpExpense, Name: "営業外費用", ReportType: ReportTypeMain, Description: "营业外费用"},
		{Key: "ordinary_income", Code: AccountOrdinaryIncome, Name: "経常利益", ReportType: ReportTypeMain, Description: "经常利润"},
		{Key: "extra_income", Code: AccountExtraIncome, Name: "特別利益", ReportType: ReportTypeMain, Description: "特别利益"},
		{Key: "extra_loss", Code: AccountExtraLoss, Name: "特別損失", ReportType: ReportTypeMain, Description: "特别损失"},
		{Key: "pretax_income", Code: AccountPretaxIncome, Name: "税引前当期利益", ReportType: ReportTypeMain, Description: "税前利润"},
		{Key: "net_income", Code: AccountNetIncome, Name: "当期利益", ReportType: ReportTypeMain, Description: "当期净利"},
		{Key: "material_cost", Code: AccountMaterialCost, Name: "(製)材料費計", ReportType: ReportTypeCostBreakdown, Description: "制造原价中的材料费"},
		{Key: "labor_cost", Code: AccountLaborCost, Name: "(製)労務費計", ReportType: ReportTypeCostBreakdown, Description: "制造原价中的劳务费"},
		{Key: "expense_cost", Code: AccountExpenseCost, Name: "(製)経費計", ReportType: ReportTypeCostBreakdown, Description: "制造原价中的经费"},
		{Key: "mfg_cost", Code: AccountMfgCost, Name: "当期製品製造原価", ReportType: ReportTypeMain, Description: "损益计算书本体中的制造原价合计"},
	}
}
