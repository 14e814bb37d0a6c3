package api

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hatauchi-tech/Fukui-BI/internal/aggregator"
	"github.com/hatauchi-tech/Fukui-BI/internal/loader"
	"github.com/hatauchi-tech/Fukui-BI/internal/model"
	"github.com/hatauchi-tech/Fukui-BI/internal/store"
)

// Handler API 处理器
//
// 持有 Loader 与当前 Ledger 快照上的 Aggregator。
// 查询走读锁，刷新走写锁并整体重建 Aggregator（单写者模型）
type Handler struct {
	mu        sync.RWMutex
	loader    *loader.Loader
	agg       *aggregator.Aggregator
	store     *store.Store
	exportDir string
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器并执行首次数据加载
// store 允许为 nil（加载履历功能降级，查询不受影响）
func NewHandler(l *loader.Loader, st *store.Store, exportDir string) *Handler {
	h := &Handler{
		loader:    l,
		store:     st,
		exportDir: exportDir,
		downloads: newExportDownloadStore(),
	}
	h.refresh("startup")
	return h
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 选择项
	router.GET("/periods", h.ListPeriods)
	router.GET("/departments", h.ListDepartments)

	// 集计查询
	router.GET("/kpi", h.GetKPI)
	router.GET("/departments/breakdown", h.GetDepartmentBreakdown)
	router.GET("/cost/structure", h.GetCostStructure)
	router.GET("/cost/departments", h.GetCostBreakdownByDept)
	router.GET("/sga", h.GetSGABreakdown)
	router.GET("/detail", h.GetDetail)

	// 数据刷新与履历
	router.POST("/reload", h.Reload)
	router.GET("/files", h.ListFiles)
	router.GET("/loads", h.ListLoads)

	// 导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)

	// 科目说明
	router.GET("/guide", h.GetGuide)
}

// loadSnapshot 一次刷新的结果快照
// 写锁内一次性取齐，保证 report 与选择项描述同一次加载
type loadSnapshot struct {
	report       model.LoadReport
	periods      []string
	latestPeriod string
	departments  []model.Department
}

// refresh 重新加载 CSV 数据并整体重建 Aggregator
func (h *Handler) refresh(trigger string) loadSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	ledger, err := h.loader.Reload()
	if err != nil {
		log.Printf("警告: 数据加载失败: %v", err)
	}
	h.agg = aggregator.New(ledger)
	report := h.loader.Report()

	snapshot := loadSnapshot{
		report:       report,
		periods:      h.loader.Periods(),
		latestPeriod: h.loader.LatestPeriod(),
		departments:  h.loader.Departments(),
	}

	if h.store != nil {
		entry := store.LoadLog{
			TriggerType:  trigger,
			FileCount:    len(report.LoadedFiles),
			RowCount:     report.RowCount,
			FailedCount:  len(report.Failures),
			DurationMs:   time.Since(start).Milliseconds(),
			LatestPeriod: snapshot.latestPeriod,
		}
		for _, failure := range report.Failures {
			entry.FailedFiles = append(entry.FailedFiles, failure.File)
		}
		if _, err := h.store.RecordLoad(entry); err != nil {
			log.Printf("警告: 加载履历写入失败: %v", err)
		}
	}

	return snapshot
}

// deptCodeParam 解析可选的部课编码参数
// 未指定时返回 nil（全部门），非整数时报参数错误
func deptCodeParam(c *gin.Context) (*int, bool) {
	raw := c.Query("dept")
	if raw == "" {
		return nil, true
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "部课编码必须为整数"})
		return nil, false
	}
	return &code, true
}

// reportTypeParam 解析帐票种类参数，默认损益计算书本体
func reportTypeParam(c *gin.Context) (int, bool) {
	raw := c.Query("reportType")
	if raw == "" {
		return model.ReportTypeMain, true
	}
	reportType, err := strconv.Atoi(raw)
	if err != nil || (reportType != model.ReportTypeMain && reportType != model.ReportTypeCostBreakdown) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "帐票种类必须为 0 或 1"})
		return 0, false
	}
	return reportType, true
}
