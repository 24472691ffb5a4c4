// Package api HTTP API 处理器
package api

import (
	"github.com/gin-gonic/gin"

	"qpcr/internal/config"
	"qpcr/internal/ingest"
	"qpcr/internal/store"
)

// Handler API 处理器
type Handler struct {
	store       *store.MemoryStore
	coordinator *ingest.Coordinator
	cfg         *config.AppConfig
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.MemoryStore, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:       st,
		coordinator: ingest.NewCoordinator(st),
		cfg:         cfg,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据导入
	router.POST("/import", h.Import)

	// 分析记录管理
	router.GET("/analyses", h.ListAnalyses)
	router.GET("/analyses/:id", h.GetAnalysis)
	router.POST("/analyses/:id/select", h.SelectAnalysis)

	// 曲线数据查询
	router.GET("/wells", h.ListWells)
	router.GET("/channels", h.ListChannels)
	router.GET("/curves", h.GetCurves)
}
