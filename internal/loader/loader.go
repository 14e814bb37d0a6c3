package loader

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

// CSV 固定 23 列表头（会计系统导出格式，列名为半角假名混排，原样保留）
var columnNames = []string{
	"事業所ｺｰﾄﾞ", "事業所名", "事業所略名", "部課ｺｰﾄﾞ", "部課名", "部課略名",
	"出力帳票", "改頁№", "SEQNO", "科目ｺｰﾄﾞ", "補助ｺｰﾄﾞ", "科目名",
	"補助科目名", "科目略名", "貸借区分", "属性区分", "罫線区分",
	"前残高", "借方", "貸方", "残高", "開始年月", "終了年月",
}

// 文件名中的对象年月，例: 2025_07_損益計算書.csv
var periodPattern = regexp.MustCompile(`(\d{4})_(\d{2})_`)

// Loader 损益计算书 CSV 的读取与缓存
//
// 数据目录内的全部 CSV 按文件名升序读入并合并为一个 Ledger。
// 单个文件解析失败只告警跳过，不影响其余文件；目录不存在时自动创建，
// 返回空 Ledger（GUI 侧仍可正常启动）。
// 非并发安全：Reload 与查询的互斥由上层负责
type Loader struct {
	dataDir string
	ledger  model.Ledger
	loaded  bool
	report  model.LoadReport
}

// New 创建 Loader
func New(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// DataDir 数据目录路径
func (l *Loader) DataDir() string {
	return l.dataDir
}

// Ledger 获取合并后的数据集（首次访问时触发 LoadAll，之后返回缓存）
func (l *Loader) Ledger() model.Ledger {
	if !l.loaded {
		if _, err := l.LoadAll(); err != nil {
			log.Printf("警告: 数据加载失败: %v", err)
		}
	}
	return l.ledger
}

// LoadedFiles 最近一次加载成功的文件名列表（按文件名升序）
func (l *Loader) LoadedFiles() []string {
	return l.report.LoadedFiles
}

// Report 最近一次加载的结果报告（含失败文件明细）
func (l *Loader) Report() model.LoadReport {
	return l.report
}

// LoadAll 读取数据目录内全部 CSV 并合并
func (l *Loader) LoadAll() (model.Ledger, error) {
	l.ledger = model.Ledger{}
	l.report = model.LoadReport{}
	l.loaded = true

	if _, err := os.Stat(l.dataDir); os.IsNotExist(err) {
		// 目录不存在不算错误，建好目录以空数据启动
		if mkErr := os.MkdirAll(l.dataDir, 0755); mkErr != nil {
			return l.ledger, fmt.Errorf("failed to create data directory: %w", mkErr)
		}
		return l.ledger, nil
	}

	files, err := filepath.Glob(filepath.Join(l.dataDir, "*.csv"))
	if err != nil {
		return l.ledger, fmt.Errorf("failed to scan data directory: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		name := filepath.Base(path)
		rows, err := LoadFile(path)
		if err != nil {
			log.Printf("警告: %s 读取失败，已跳过: %v", name, err)
			l.report.Failures = append(l.report.Failures, model.FileError{
				File:  name,
				Error: err.Error(),
			})
			continue
		}
		l.ledger = append(l.ledger, rows...)
		l.report.LoadedFiles = append(l.report.LoadedFiles, name)
	}

	l.report.RowCount = len(l.ledger)
	return l.ledger, nil
}

// Reload 丢弃缓存并重新加载
func (l *Loader) Reload() (model.Ledger, error) {
	l.ledger = nil
	l.loaded = false
	l.report = model.LoadReport{}
	return l.LoadAll()
}

// Departments 数据中出现的 (部課ｺｰﾄﾞ, 部課名) 一览，按部课编码升序
func (l *Loader) Departments() []model.Department {
	seen := make(map[model.Department]bool)
	var result []model.Department
	for _, row := range l.Ledger() {
		dept := model.Department{Code: row.DeptCode, Name: row.DeptName}
		if !seen[dept] {
			seen[dept] = true
			result = append(result, dept)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})
	return result
}

// Periods 对象年月一览，升序去重（"YYYY/MM" 的字典序即时间序）
func (l *Loader) Periods() []string {
	seen := make(map[string]bool)
	var result []string
	for _, row := range l.Ledger() {
		if row.Period == "" || seen[row.Period] {
			continue
		}
		seen[row.Period] = true
		result = append(result, row.Period)
	}
	sort.Strings(result)
	return result
}

// LatestPeriod 最新的对象年月，无数据时返回空串
func (l *Loader) LatestPeriod() string {
	periods := l.Periods()
	if len(periods) == 0 {
		return ""
	}
	return periods[len(periods)-1]
}

// ExtractPeriodFromFilename 从文件名提取对象年月
// "2025_07_損益計算書.csv" → "2025/07"，不匹配时返回空串
func ExtractPeriodFromFilename(filename string) string {
	matches := periodPattern.FindStringSubmatch(filename)
	if len(matches) >= 3 {
		return matches[1] + "/" + matches[2]
	}
	return ""
}

// LoadFile 读取单个 CSV 文件
//
// 整数列解析失败视为文件级错误（交由 LoadAll 跳过该文件），
// 金额列空白或无法解析时按 0 处理。每行打上来源文件名与对象年月，
// 年月优先取文件名中的 YYYY_MM_，其次取文件内 開始年月 列的首个非空值
func LoadFile(path string) ([]model.LedgerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	header := records[0]
	if len(header) > 0 {
		// 会计系统导出的 CSV 带 UTF-8 BOM
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range columnNames {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	filename := filepath.Base(path)
	period := ExtractPeriodFromFilename(filename)

	rows := make([]model.LedgerRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(record, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		row.SourceFile = filename
		rows = append(rows, row)
	}

	if period == "" {
		// 文件名无法判定时回退到文件内 開始年月 列的首个非空值
		for _, row := range rows {
			if row.StartPeriod != "" {
				period = row.StartPeriod
				break
			}
		}
	}
	for i := range rows {
		rows[i].Period = period
	}

	return rows, nil
}

// parseRow 解析一行数据
func parseRow(record []string, col map[string]int) (model.LedgerRow, error) {
	var row model.LedgerRow
	var err error

	field := func(name string) string {
		return strings.TrimSpace(record[col[name]])
	}
	intField := func(name string) (int, error) {
		v, convErr := strconv.Atoi(field(name))
		if convErr != nil {
			return 0, fmt.Errorf("invalid integer in column %q: %q", name, field(name))
		}
		return v, nil
	}

	if row.OfficeCode, err = intField("事業所ｺｰﾄﾞ"); err != nil {
		return row, err
	}
	row.OfficeName = field("事業所名")
	row.OfficeShortName = field("事業所略名")
	if row.DeptCode, err = intField("部課ｺｰﾄﾞ"); err != nil {
		return row, err
	}
	row.DeptName = field("部課名")
	row.DeptShortName = field("部課略名")
	if row.ReportType, err = intField("出力帳票"); err != nil {
		return row, err
	}
	if row.PageBreakNo, err = intField("改頁№"); err != nil {
		return row, err
	}
	if row.SeqNo, err = intField("SEQNO"); err != nil {
		return row, err
	}
	if row.AccountCode, err = intField("科目ｺｰﾄﾞ"); err != nil {
		return row, err
	}
	if row.SubAccountCode, err = intField("補助ｺｰﾄﾞ"); err != nil {
		return row, err
	}
	row.AccountName = field("科目名")
	row.SubAccountName = field("補助科目名")
	row.AccountShortName = field("科目略名")
	if row.DebitCreditClass, err = intField("貸借区分"); err != nil {
		return row, err
	}
	if row.AttributeClass, err = intField("属性区分"); err != nil {
		return row, err
	}
	if row.RuleLineClass, err = intField("罫線区分"); err != nil {
		return row, err
	}
	row.PriorBalance = parseAmount(field("前残高"))
	row.Debit = parseAmount(field("借方"))
	row.Credit = parseAmount(field("貸方"))
	row.Balance = parseAmount(field("残高"))
	row.StartPeriod = field("開始年月")
	row.EndPeriod = field("終了年月")

	return row, nil
}

// parseAmount 金额列解析，空白或非数值一律按 0
func parseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
