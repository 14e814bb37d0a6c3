package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

// Reload 重新加载 CSV 数据
// 整体重建 Ledger 与 Aggregator，并把刷新后的选择项一并返回，
// GUI 侧无需再分别请求 periods / departments。
// 选择项取自 refresh 写锁内的快照，与 report 描述同一次加载
// POST /api/reload
func (h *Handler) Reload(c *gin.Context) {
	snapshot := h.refresh("reload")

	periods := snapshot.periods
	departments := snapshot.departments
	if periods == nil {
		periods = []string{}
	}
	if departments == nil {
		departments = []model.Department{}
	}
	c.JSON(http.StatusOK, gin.H{
		"report":      snapshot.report,
		"periods":     periods,
		"latest":      snapshot.latestPeriod,
		"departments": departments,
	})
}

// ListFiles 最近一次加载的文件明细（成功与失败）
// GET /api/files
func (h *Handler) ListFiles(c *gin.Context) {
	h.mu.RLock()
	report := h.loader.Report()
	h.mu.RUnlock()

	if report.LoadedFiles == nil {
		report.LoadedFiles = []string{}
	}
	if report.Failures == nil {
		report.Failures = []model.FileError{}
	}
	c.JSON(http.StatusOK, report)
}

// ListLoads 加载履历（时间倒序）
// GET /api/loads?limit=20
func (h *Handler) ListLoads(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"loads": []interface{}{}})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	loads, err := h.store.ListLoads(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加载履历查询失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loads": loads})
}
