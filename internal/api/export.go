package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hatauchi-tech/Fukui-BI/internal/exporter"
)

const downloadTTL = 10 * time.Minute

// ExportRequest 明细导出请求
type ExportRequest struct {
	DeptCode   *int   `json:"deptCode"`
	Period     string `json:"period"`
	ReportType int    `json:"reportType"`
	Format     string `json:"format"` // csv / xlsx，默认 csv
}

// Export 导出明细数据，返回一次性下载 token
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.ReportType != 0 && req.ReportType != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "帐票种类必须为 0 或 1"})
		return
	}
	format := req.Format
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的导出格式"})
		return
	}

	h.mu.RLock()
	rows := h.agg.DetailRows(req.DeptCode, req.Period, req.ReportType)
	h.mu.RUnlock()

	filename := fmt.Sprintf("詳細データ_%s.%s", time.Now().Format("20060102_150405"), format)
	path := filepath.Join(h.exportDir, filename)

	var err error
	switch format {
	case "xlsx":
		err = exporter.ExportDetailExcel(path, rows)
	default:
		err = exporter.ExportDetailCSV(path, rows)
	}
	if err != nil {
		// 磁盘满、无写权限等场景：明确把失败告知用户，不做自动重试
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("导出失败: %v", err)})
		return
	}

	token := h.downloads.put(path, filename, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"filename":    filename,
		"rowCount":    len(rows),
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载已导出的文件（一次性）
// 下载完成后令牌立即失效，导出文件随之删除
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.FileAttachment(item.filePath, item.fileName)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
