package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"conn-hub/internal/adapter/probe"
	"conn-hub/internal/api/handler"
	"conn-hub/internal/api/middleware"
	"conn-hub/internal/pkg/auth"
	"conn-hub/internal/pkg/config"
	"conn-hub/internal/pkg/jwt"
	"conn-hub/internal/repository"
	"conn-hub/internal/service"

	_ "conn-hub/docs"
)

// Dependencies 路由依赖的存储与外部适配器
type Dependencies struct {
	Connections repository.ConnectionRepository
	AuditLogs   repository.AuditLogRepository
	Prober      probe.Prober
}

// Setup 设置路由
func Setup(cfg *config.Config, deps *Dependencies) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Service
	auditService := service.NewAuditService(deps.AuditLogs, cfg.Audit.Enabled)
	connectionService := service.NewConnectionService(deps.Connections, auditService, deps.Prober, cfg.API.MaximumPageLimit)

	// 初始化Handler
	connectionHandler := handler.NewConnectionHandler(connectionService, cfg.Core.TestConnectionEnabled())
	auditLogHandler := handler.NewAuditLogHandler(auditService)

	tokens := jwt.NewManager(&cfg.Auth.JWT)

	// API v1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(tokens))
	{
		// 连接管理
		groupConnections := v1.Group("/connections")
		{
			groupConnections.GET("", middleware.RequirePermission(auth.PermConnectionRead), connectionHandler.List)                       // 列表查询
			groupConnections.POST("", middleware.RequirePermission(auth.PermConnectionCreate), connectionHandler.Create)                  // 创建连接
			groupConnections.POST("/test", middleware.RequirePermission(auth.PermConnectionCreate), connectionHandler.Test)               // 测试连接
			groupConnections.GET("/:connection_id", middleware.RequirePermission(auth.PermConnectionRead), connectionHandler.Get)         // 获取详情
			groupConnections.PATCH("/:connection_id", middleware.RequirePermission(auth.PermConnectionEdit), connectionHandler.Update)    // 更新连接
			groupConnections.DELETE("/:connection_id", middleware.RequirePermission(auth.PermConnectionDelete), connectionHandler.Delete) // 删除连接
		}

		// 审计日志
		v1.GET("/audit-logs", middleware.RequirePermission(auth.PermAuditLogRead), auditLogHandler.List)
	}

	return r
}
