package model

// KPI 重要经营指标
// 利益率为百分比值（×100），収入計为 0 时全部利益率固定为 0
type KPI struct {
	Revenue         float64 `json:"revenue"`         // 収入計
	CostOfSales     float64 `json:"costOfSales"`     // 売上原価
	GrossProfit     float64 `json:"grossProfit"`     // 売上総利益
	SGA             float64 `json:"sga"`             // 販管費
	OperatingIncome float64 `json:"operatingIncome"` // 営業利益
	OrdinaryIncome  float64 `json:"ordinaryIncome"`  // 経常利益
	NetIncome       float64 `json:"netIncome"`       // 当期利益
	GrossMargin     float64 `json:"grossMargin"`     // 売上総利益率(%)
	OpMargin        float64 `json:"opMargin"`        // 営業利益率(%)
	OrdMargin       float64 `json:"ordMargin"`       // 経常利益率(%)
	NetMargin       float64 `json:"netMargin"`       // 当期利益率(%)
}

// DepartmentSummary 部门别的销售、利润汇总（表格/图表用）
type DepartmentSummary struct {
	DeptCode        int     `json:"deptCode"`
	DeptName        string  `json:"deptName"`
	Revenue         float64 `json:"revenue"`
	GrossProfit     float64 `json:"grossProfit"`
	OperatingIncome float64 `json:"operatingIncome"`
	OrdinaryIncome  float64 `json:"ordinaryIncome"`
	GrossMargin     float64 `json:"grossMargin"`
	OpMargin        float64 `json:"opMargin"`
}

// CostStructure 原价构成
// 材料費/労務費/経費 取自製造原価内訳（出力帳票=1），
// MfgCost 取自损益计算书本体（出力帳票=0），两者口径不同，不强求相等
type CostStructure struct {
	MaterialCost float64 `json:"materialCost"` // 材料費
	LaborCost    float64 `json:"laborCost"`    // 労務費
	Expense      float64 `json:"expense"`      // 経費
	MfgCost      float64 `json:"mfgCost"`      // 当期製品製造原価
}

// DepartmentCost 部门别的原价构成
type DepartmentCost struct {
	DeptCode     int     `json:"deptCode"`
	DeptName     string  `json:"deptName"`
	MaterialCost float64 `json:"materialCost"`
	LaborCost    float64 `json:"laborCost"`
	Expense      float64 `json:"expense"`
	MfgCost      float64 `json:"mfgCost"`
}

// SGAItem 販管費内訳的一项（按科目跨部门合计后的金额）
type SGAItem struct {
	AccountCode int     `json:"accountCode"`
	AccountName string  `json:"accountName"`
	Amount      float64 `json:"amount"`
}

// DetailRow 明细表的一行（表格显示/导出用投影）
type DetailRow struct {
	DeptName     string  `json:"deptName"`     // 部課名
	AccountName  string  `json:"accountName"`  // 科目名
	PriorBalance float64 `json:"priorBalance"` // 前残高
	Debit        float64 `json:"debit"`        // 借方
	Credit       float64 `json:"credit"`       // 貸方
	Balance      float64 `json:"balance"`      // 残高
}

// FileError 单个文件的读取失败记录
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// LoadReport 一次加载的结果报告
// 失败文件不中断整体加载，逐个记录在 Failures 中供上层展示
type LoadReport struct {
	LoadedFiles []string    `json:"loadedFiles"`
	Failures    []FileError `json:"failures"`
	RowCount    int         `json:"rowCount"`
}
