package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized    bool   `json:"initialized"`    // 是否已导入数据
	AnalysisCount  int    `json:"analysisCount"`  // 分析记录总数
	CurrentID      string `json:"currentId"`      // 当前分析记录 ID
	Filename       string `json:"filename"`       // 当前分析文件名
	Vendor         string `json:"vendor"`         // 当前分析的厂商格式
	WellCount      int    `json:"wellCount"`      // 当前分析孔位数
	PlateType      string `json:"plateType"`      // 板型（96/384）
	LastImportTime string `json:"lastImportTime"` // 最后导入时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	current, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{
			Initialized:   false,
			AnalysisCount: h.store.Count(),
		})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    true,
		AnalysisCount:  h.store.Count(),
		CurrentID:      current.ID,
		Filename:       current.Filename,
		Vendor:         current.Vendor,
		WellCount:      len(current.Plate.Wells),
		PlateType:      current.Plate.PlateType,
		LastImportTime: current.ImportedAt.Format("2006-01-02 15:04:05"),
	})
}
