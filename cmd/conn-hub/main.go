package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"conn-hub/internal/adapter/probe"
	"conn-hub/internal/api/router"
	"conn-hub/internal/pkg/config"
	"conn-hub/internal/pkg/crypto"
	"conn-hub/internal/pkg/database"
	"conn-hub/internal/pkg/jwt"
	"conn-hub/internal/pkg/logger"
	"conn-hub/internal/repository"
	"conn-hub/internal/scheduler"
	"conn-hub/internal/service"
	"conn-hub/pkg/constants"
)

// @title Conn Hub API
// @version 1.0
// @description 连接记录管理 API 文档
// @description 提供连接的增删改查、局部更新及连通性测试

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var (
	configFile = flag.String("config", "", "配置文件路径 (例如: -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "显示版本信息")
	importFile = flag.String("import", "", "从 YAML/JSON 文件导入连接后退出，已存在的连接跳过")
	issueToken = flag.String("issue-token", "", "签发访问Token后退出，格式 user:role1,role2")
)

const (
	appVersion = "1.0.0"
	appName    = "conn-hub"
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 显示版本信息
	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	// init config logger
	var cfg *config.Config
	{
		// 优先级: 命令行参数 > 环境变量 > 默认路径
		configPath := getConfigPath()

		// 加载配置
		c, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("加载配置失败: %v\n", err)
			fmt.Println("\n使用方式:")
			fmt.Println("  1. 命令行参数指定:")
			fmt.Println("     ./conn-hub -config=configs/config.yaml")
			fmt.Println("  2. 环境变量指定:")
			fmt.Println("     export CONFIG_FILE=configs/config.yaml")
			fmt.Println("     ./conn-hub")
			fmt.Println("  3. 使用默认配置:")
			fmt.Println("     ./conn-hub  (将使用 configs/config.yaml)")
			os.Exit(1)
		}
		cfg = c

		// 初始化日志
		if err := logger.Init(&cfg.Log); err != nil {
			fmt.Printf("初始化日志失败: %v\n", err)
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Load config file: %s of %s", configPath, getConfigSource()))

		defer func() {
			_ = logger.Close()
		}()
	}

	if *issueToken != "" {
		if err := printToken(cfg, *issueToken); err != nil {
			fmt.Printf("签发Token失败: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger.Info(fmt.Sprintf("服务 %s 启动中...", appName), zap.String("version", appVersion))

	// 密码加密
	if c, err := crypto.NewCipher(cfg.Crypto.SecretKey); err == nil {
		crypto.SetDefault(c)
	} else if cfg.Database.Driver == constants.DBDriverMySQL {
		logger.Fatal("初始化加密组件失败", zap.Error(err))
	}

	// 初始化存储
	var deps *router.Dependencies
	switch cfg.Database.Driver {
	case constants.DBDriverMemory:
		logger.Warn("使用内存存储，重启后数据丢失")
		deps = &router.Dependencies{
			Connections: repository.NewMemoryConnectionRepository(),
			AuditLogs:   repository.NewMemoryAuditLogRepository(),
		}
	default:
		if err := database.Init(&cfg.Database); err != nil {
			logger.Fatal("初始化数据库失败", zap.Error(err))
		}
		defer func() {
			_ = database.Close()
		}()
		logger.Info(fmt.Sprintf("数据库连接成功 %s:%v", cfg.Database.Host, cfg.Database.Port), zap.String("database", cfg.Database.Database))

		deps = &router.Dependencies{
			Connections: repository.NewConnectionRepository(database.GetDB()),
			AuditLogs:   repository.NewAuditLogRepository(database.GetDB()),
		}
	}
	deps.Prober = probe.NewRegistry(cfg.Core.GetTestConnectionTimeout())

	auditService := service.NewAuditService(deps.AuditLogs, cfg.Audit.Enabled)

	if *importFile != "" {
		if err := importConnections(cfg, deps, auditService, *importFile); err != nil {
			logger.Fatal("导入连接失败", zap.Error(err))
		}
		return
	}

	// 初始化并启动定时任务调度器
	taskScheduler := scheduler.NewScheduler(auditService, logger.Log, &cfg.Audit)
	if err := taskScheduler.Start(); err != nil {
		logger.Warn("定时任务调度器启动失败", zap.Error(err))
	}

	// 设置路由
	r := router.Setup(cfg, deps)

	// 创建HTTP服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logger.Info(fmt.Sprintf("%s 服务启动成功", cfg.Server.Name),
			zap.String("address", addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("test_connection", cfg.Core.TestConnection),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务正在关闭...")

	// 关闭定时任务调度器
	taskScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}

// importConnections 导入文件中的连接
func importConnections(cfg *config.Config, deps *router.Dependencies, audit service.AuditService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	connections := service.NewConnectionService(deps.Connections, audit, deps.Prober, cfg.API.MaximumPageLimit)
	result, err := service.NewImportService(connections).Import(context.Background(), f)
	if result != nil {
		logger.Info("导入连接完成",
			zap.String("file", path),
			zap.Strings("created", result.Created),
			zap.Strings("skipped", result.Skipped),
		)
	}
	return err
}

// printToken 解析 user:role1,role2 并输出访问Token
func printToken(cfg *config.Config, arg string) error {
	username, roles, _ := strings.Cut(arg, ":")
	if username == "" {
		return fmt.Errorf("用户名不能为空: %q", arg)
	}

	var roleList []string
	for _, r := range strings.Split(roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := jwt.NewManager(&cfg.Auth.JWT).GenerateAccessToken(username, roleList)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

// getConfigPath 获取配置文件路径
// 优先级: 命令行参数 > 环境变量 > 默认路径
func getConfigPath() string {
	// 1. 命令行参数
	if *configFile != "" {
		return *configFile
	}

	// 2. 环境变量
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}

	// 3. 默认路径
	return "configs/config.yaml"
}

// getConfigSource 获取配置来源说明
func getConfigSource() string {
	if *configFile != "" {
		return "命令行参数"
	}
	if os.Getenv("CONFIG_FILE") != "" {
		return "环境变量"
	}
	return "默认配置"
}
