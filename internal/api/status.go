package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hatauchi-tech/Fukui-BI/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized  bool           `json:"initialized"`  // 是否有数据
	FileCount    int            `json:"fileCount"`    // 加载成功的文件数
	FailedCount  int            `json:"failedCount"`  // 加载失败的文件数
	RowCount     int            `json:"rowCount"`     // 合并后的总行数
	LatestPeriod string         `json:"latestPeriod"` // 最新对象年月
	DataDir      string         `json:"dataDir"`      // CSV 数据目录
	LastLoad     *store.LoadLog `json:"lastLoad"`     // 最近一次加载履历
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	h.mu.RLock()
	report := h.loader.Report()
	latest := h.loader.LatestPeriod()
	dataDir := h.loader.DataDir()
	h.mu.RUnlock()

	var lastLoad *store.LoadLog
	if h.store != nil {
		entry, err := h.store.LastLoad()
		if err == nil {
			lastLoad = entry
		}
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  report.RowCount > 0,
		FileCount:    len(report.LoadedFiles),
		FailedCount:  len(report.Failures),
		RowCount:     report.RowCount,
		LatestPeriod: latest,
		DataDir:      dataDir,
		LastLoad:     lastLoad,
	})
}
