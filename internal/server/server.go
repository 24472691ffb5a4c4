// Package server HTTP 服务器
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qpcr/internal/api"
	"qpcr/internal/config"
	"qpcr/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.MemoryStore
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	memStore := store.NewMemoryStore()
	apiHandler := api.NewHandler(memStore, cfg)

	s := &Server{
		router: gin.Default(),
		store:  memStore,
		api:    apiHandler,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 内置最简上传页，正式前端接入前的兜底
		s.router.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}

const indexHTML = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>qPCR 数据导入</title>
</head>
<body>
<h2>qPCR 数据导入</h2>
<form id="f">
<input type="file" name="file" accept=".xls,.xlsx">
<button type="submit">导入</button>
</form>
<pre id="log"></pre>
<script>
document.getElementById('f').addEventListener('submit', async function (e) {
  e.preventDefault();
  const body = new FormData(e.target);
  const log = document.getElementById('log');
  log.textContent = '';
  const resp = await fetch('/api/import', { method: 'POST', body: body });
  const reader = resp.body.getReader();
  const decoder = new TextDecoder();
  for (;;) {
    const { done, value } = await reader.read();
    if (done) break;
    log.textContent += decoder.decode(value);
  }
});
</script>
</body>
</html>
`
