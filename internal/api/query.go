package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

// ListPeriods 对象年月一览（升序）
// GET /api/periods
func (h *Handler) ListPeriods(c *gin.Context) {
	h.mu.RLock()
	periods := h.loader.Periods()
	latest := h.loader.LatestPeriod()
	h.mu.RUnlock()

	if periods == nil {
		periods = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"periods": periods,
		"latest":  latest,
	})
}

// ListDepartments 部课一览（按部课编码升序）
// GET /api/departments
func (h *Handler) ListDepartments(c *gin.Context) {
	h.mu.RLock()
	departments := h.loader.Departments()
	h.mu.RUnlock()

	if departments == nil {
		departments = []model.Department{}
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// GetKPI 重要经营指标
// GET /api/kpi?dept=210&period=2025/07
func (h *Handler) GetKPI(c *gin.Context) {
	deptCode, ok := deptCodeParam(c)
	if !ok {
		return
	}
	period := c.Query("period")

	h.mu.RLock()
	kpi := h.agg.CalculateKPI(deptCode, period)
	h.mu.RUnlock()

	c.JSON(http.StatusOK, kpi)
}

// GetDepartmentBreakdown 部门别的销售、利润集计
// GET /api/departments/breakdown?period=2025/07
func (h *Handler) GetDepartmentBreakdown(c *gin.Context) {
	period := c.Query("period")

	h.mu.RLock()
	breakdown := h.agg.DepartmentBreakdown(period)
	h.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"departments": breakdown})
}

// GetCostStructure 原价构成
// GET /api/cost/structure?dept=210&period=2025/07
func (h *Handler) GetCostStructure(c *gin.Context) {
	deptCode, ok := deptCodeParam(c)
	if !ok {
		return
	}
	period := c.Query("period")

	h.mu.RLock()
	cs := h.agg.CostStructure(deptCode, period)
	h.mu.RUnlock()

	c.JSON(http.StatusOK, cs)
}

// GetCostBreakdownByDept 部门别的原价构成
// GET /api/cost/departments?period=2025/07
func (h *Handler) GetCostBreakdownByDept(c *gin.Context) {
	period := c.Query("period")

	h.mu.RLock()
	breakdown := h.agg.CostBreakdownByDept(period)
	h.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"departments": breakdown})
}

// GetSGABreakdown 販管費内訳（金额降序，零项剔除）
// GET /api/sga?dept=210&period=2025/07
func (h *Handler) GetSGABreakdown(c *gin.Context) {
	deptCode, ok := deptCodeParam(c)
	if !ok {
		return
	}
	period := c.Query("period")

	h.mu.RLock()
	items := h.agg.SGABreakdown(deptCode, period)
	h.mu.RUnlock()

	if items == nil {
		items = []model.SGAItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetDetail 明细数据
// GET /api/detail?dept=210&period=2025/07&reportType=0
func (h *Handler) GetDetail(c *gin.Context) {
	deptCode, ok := deptCodeParam(c)
	if !ok {
		return
	}
	reportType, ok := reportTypeParam(c)
	if !ok {
		return
	}
	period := c.Query("period")

	h.mu.RLock()
	rows := h.agg.DetailRows(deptCode, period, reportType)
	h.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// GetGuide 主要科目说明（帮助页用）
// GET /api/guide
func (h *Handler) GetGuide(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": model.AccountGuide()})
}
