package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hatauchi-tech/Fukui-BI/internal/api"
	"github.com/hatauchi-tech/Fukui-BI/internal/config"
	"github.com/hatauchi-tech/Fukui-BI/internal/loader"
	"github.com/hatauchi-tech/Fukui-BI/internal/store"
)

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 创建服务器
// 启动时完成首次 CSV 加载；加载履历库打开失败只降级告警，不阻断启动
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir := config.ResolveDataDir(cfg)
	csvLoader := loader.New(dataDir)

	sqliteStore, err := store.New(config.ResolveDBPath(cfg))
	if err != nil {
		log.Printf("警告: 加载履历库初始化失败，履历功能不可用: %v", err)
		sqliteStore = nil
	}

	exportDir, err := config.ResolveExportDir(cfg)
	if err != nil {
		log.Printf("警告: 导出目录创建失败: %v", err)
		exportDir = "."
	}

	apiHandler := api.NewHandler(csvLoader, sqliteStore, exportDir)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
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
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
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
		// 开发模式：前端走本地开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		s.router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放资源
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
