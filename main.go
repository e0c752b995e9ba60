package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Xushengqwer/blog_service/docs" // 确保导入了 docs 包

	// 导入项目包
	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/controller"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/router"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/tasks"

	// 导入公共模块
	sharedCore "github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// @title           Blog Service API
// @version         1.0
// @description     博客平台服务，提供博客发布、评论互动、关注与管理等功能。
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8082

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式: "Bearer {token}"

// @schemes http https
func main() {
	// --- 配置和基础设置 ---
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置
	var cfg appConfig.BlogConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// 打印最终生效的配置以供调试
	configBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatalf("无法序列化配置以进行打印: %v", err)
	}
	log.Printf("✅ 配置加载成功！最终生效的配置如下:\n%s\n", string(configBytes))

	// 2. 初始化 Logger
	logger, loggerErr := sharedCore.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		logger.Info("正在同步日志...")
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功")

	// 3. 初始化 TracerProvider
	var tracerShutdown func(context.Context) error
	if cfg.TracerConfig.Enabled {
		var err error
		tracerShutdown, err = sharedTracing.InitTracerProvider(
			constant.ServiceName,
			constant.ServiceVersion,
			cfg.TracerConfig,
		)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("正在关闭 TracerProvider...")
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			} else {
				logger.Info("TracerProvider 已成功关闭")
			}
		}()
		logger.Info("分布式追踪已初始化")
		// 当前服务没有出站 HTTP 调用，仅初始化 Transport 备用
		_ = otelhttp.NewTransport(http.DefaultTransport)
	} else {
		logger.Info("分布式追踪已禁用")
		tracerShutdown = func(ctx context.Context) error { return nil }
	}

	// --- 4. 初始化核心依赖 ---
	// 4.1 数据库 (MySQL)
	db, dbErr := dependencies.InitMySQL(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化 MySQL 数据库失败", zap.Error(dbErr))
	}
	logger.Info("MySQL 数据库连接成功")

	// 4.2 Redis
	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(redisErr))
	}
	logger.Info("Redis 连接成功")

	// 4.3 COS 客户端 (博客封面图存储)
	cos, cosErr := dependencies.InitCOS(&cfg.COSConfig, logger)
	if cosErr != nil {
		logger.Fatal("初始化 COS 客户端失败", zap.Error(cosErr))
	}
	logger.Info("COS 客户端初始化成功")

	// 4.4 邮件客户端 (验证码与密码重置邮件)
	emailClient, emailErr := dependencies.InitEmailClient(&cfg.EmailConfig, logger)
	if emailErr != nil {
		logger.Fatal("初始化邮件客户端失败", zap.Error(emailErr))
	}
	logger.Info("邮件客户端初始化成功")

	// 4.5 Kafka 生产者
	var kafkaProducer *producer.KafkaProducer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		defer func() {
			if err := kafkaProducer.Close(); err != nil {
				logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
			}
		}()
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，Kafka 生产者将为 nil")
	}

	// --- 5. 初始化数据仓库层 (Repositories) ---
	blogRepo := mysql.NewBlogRepository(db, logger)
	blogAdminRepo := mysql.NewBlogAdminRepository(db, logger)
	blogBatchRepo := mysql.NewBlogBatchOperationsRepository(db, logger, cfg.ViewSyncConfig)
	commentRepo := mysql.NewCommentRepository(db, logger)
	reportRepo := mysql.NewReportRepository(db, logger)
	engageRepo := mysql.NewEngagementRepository(db, logger)
	userRepo := mysql.NewUserRepository(db, logger)
	profileRepo := mysql.NewProfileRepository(db, logger)
	adminRepo := mysql.NewAdminRepository(db, logger)
	actionLogRepo := mysql.NewActionLogRepository(db, logger)
	logger.Debug("MySQL Repositories 初始化完成")

	cacheRepo := redisrepo.NewCache(rdb, logger)
	blogViewRepo := redisrepo.NewBlogViewRepository(rdb, logger, cfg.ViewSyncConfig)
	otpRepo := redisrepo.NewOTPRepository(rdb, logger)
	rateLimiter := redisrepo.NewRateLimiter(rdb, logger)
	logger.Debug("Redis Repositories 初始化完成")

	// --- 6. 初始化服务层 (Services) ---
	authService := service.NewAuthService(db, userRepo, profileRepo, otpRepo, emailClient, cfg.JWTConfig, logger)
	blogService := service.NewBlogService(db, blogRepo, commentRepo, reportRepo, engageRepo, cacheRepo, blogViewRepo, cos, kafkaProducer, logger)
	commentService := service.NewCommentService(db, blogRepo, commentRepo, engageRepo, cacheRepo, logger)
	engageService := service.NewEngagementService(db, blogRepo, commentRepo, engageRepo, blogBatchRepo, cacheRepo, logger)
	reportService := service.NewReportService(db, blogRepo, reportRepo, logger)
	profileService := service.NewProfileService(db, userRepo, profileRepo, blogRepo, engageRepo, logger)
	adminService := service.NewAdminService(db, adminRepo, userRepo, blogRepo, blogAdminRepo, commentRepo, reportRepo, engageRepo, profileRepo, actionLogRepo, cacheRepo, kafkaProducer, cfg.JWTConfig, logger)
	logger.Debug("Services 初始化完成")

	// --- 7. 初始化控制器层 (Controllers) ---
	authController := controller.NewAuthController(authService, rateLimiter)
	blogController := controller.NewBlogController(blogService, engageService, reportService)
	commentController := controller.NewCommentController(commentService, engageService)
	profileController := controller.NewProfileController(profileService, blogService)
	adminController := controller.NewAdminController(adminService, rateLimiter)
	logger.Debug("Controllers 初始化完成")

	// --- 8. 初始化认证中间件 ---
	userAuth := middleware.UserAuthMiddleware(cfg.JWTConfig, userRepo, logger)
	optionalAuth := middleware.OptionalUserAuthMiddleware(cfg.JWTConfig)
	adminAuth := middleware.AdminAuthMiddleware(cfg.JWTConfig, adminRepo, logger)

	// --- 9. 初始化定时任务 ---
	syncTask := tasks.NewViewCountSyncTask(blogViewRepo, blogBatchRepo, logger)
	cacheTask := tasks.NewPopularBlogsCacheTask(blogRepo, cacheRepo, logger)
	logger.Info("后台定时任务已初始化并启动")

	// --- 10. 设置 Gin 路由器 ---
	ginRouter := router.SetupRouter(logger, &cfg,
		authController, blogController, commentController, profileController, adminController,
		userAuth, optionalAuth, adminAuth,
	)
	logger.Info("Gin 路由器已设置")

	// --- 11. 启动 HTTP 服务器 ---
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
		logger.Info("HTTP 服务器已停止监听")
	}()

	// --- 12. 实现优雅关停 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancelFunc := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancelFunc()

	// a. 停止 HTTP 服务器 (允许处理完当前请求)
	logger.Info("正在关闭 HTTP 服务器...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	} else {
		logger.Info("HTTP 服务器已成功关闭")
	}

	// b. 停止定时任务调度器 (等待正在执行的任务结束)
	logger.Info("正在停止定时任务...")
	syncStopCtx := syncTask.Stop()
	cacheStopCtx := cacheTask.Stop()

	waitTask := func(name string, stopCtx context.Context) {
		select {
		case <-stopCtx.Done():
			logger.Info(name + "已停止")
		case <-shutdownCtx.Done():
			logger.Error("等待定时任务停止超时", zap.String("task", name), zap.Error(shutdownCtx.Err()))
		}
	}
	waitTask("浏览量同步任务", syncStopCtx)
	waitTask("热门博客缓存任务", cacheStopCtx)
	logger.Info("所有定时任务已停止")

	logger.Info("服务已成功关闭")
}
