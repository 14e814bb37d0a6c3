package model

// LedgerRow 损益计算书 CSV 的一行明细
// 对应固定 23 列结构（事業所/部課/科目/金额），外加读取时打上的
// 来源文件与对象年月两个派生字段
type LedgerRow struct {
	OfficeCode       int     `json:"officeCode"`       // 事業所ｺｰﾄﾞ
	OfficeName       string  `json:"officeName"`       // 事業所名
	OfficeShortName  string  `json:"officeShortName"`  // 事業所略名
	DeptCode         int     `json:"deptCode"`         // 部課ｺｰﾄﾞ
	DeptName         string  `json:"deptName"`         // 部課名
	DeptShortName    string  `json:"deptShortName"`    // 部課略名
	ReportType       int     `json:"reportType"`       // 出力帳票 0=损益计算书本体 1=製造原価内訳
	PageBreakNo      int     `json:"pageBreakNo"`      // 改頁№
	SeqNo            int     `json:"seqNo"`            // SEQNO
	AccountCode      int     `json:"accountCode"`      // 科目ｺｰﾄﾞ
	SubAccountCode   int     `json:"subAccountCode"`   // 補助ｺｰﾄﾞ
	AccountName      string  `json:"accountName"`      // 科目名
	SubAccountName   string  `json:"subAccountName"`   // 補助科目名
	AccountShortName string  `json:"accountShortName"` // 科目略名
	DebitCreditClass int     `json:"debitCreditClass"` // 貸借区分
	AttributeClass   int     `json:"attributeClass"`   // 属性区分
	RuleLineClass    int     `json:"ruleLineClass"`    // 罫線区分
	PriorBalance     float64 `json:"priorBalance"`     // 前残高
	Debit            float64 `json:"debit"`            // 借方
	Credit           float64 `json:"credit"`           // 貸方
	Balance          float64 `json:"balance"`          // 残高（各集计均以此列为准）
	StartPeriod      string  `json:"startPeriod"`      // 開始年月
	EndPeriod        string  `json:"endPeriod"`        // 終了年月
	SourceFile       string  `json:"sourceFile"`       // 来源文件名
	Period           string  `json:"period"`           // 对象年月 "YYYY/MM"，无法判定时为空串
}

// Ledger 全部 CSV 合并后的行集合
// 保持 文件名升序 × 文件内行序 的插入顺序，不做跨文件去重
type Ledger []LedgerRow

// Department 部课（部门）
type Department struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// 报表种类（出力帳票）
const (
	ReportTypeMain          = 0 // 损益计算书本体
	ReportTypeCostBreakdown = 1 // 製造原価内訳
)
