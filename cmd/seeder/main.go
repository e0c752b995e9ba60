package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/service"
)

func main() {
	// --- 0. 解析命令行参数 ---
	var configFile string
	var numUsers int
	var numBlogs int
	var waitSeconds int
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&numUsers, "users", 10, "要生成的测试用户数量 (默认: 10)")
	flag.IntVar(&numBlogs, "n", 50, "要生成的博客数量 (默认: 50)")
	flag.IntVar(&waitSeconds, "wait", 5, "数据填充后等待的秒数 (确保异步任务完成, 默认: 5秒)")
	flag.Parse()

	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		fmt.Printf("无法获取配置文件的绝对路径 '%s': %v\n", configFile, err)
		absConfigFile = configFile
	}
	fmt.Printf("准备使用配置文件 '%s' 生成 %d 个用户与 %d 篇博客...\n", absConfigFile, numUsers, numBlogs)

	if numUsers <= 0 || numBlogs <= 0 {
		fmt.Println("错误: 生成的用户和博客数量必须大于 0")
		os.Exit(1)
	}
	if waitSeconds < 0 {
		fmt.Println("错误: 等待秒数不能为负")
		os.Exit(1)
	}

	// --- 1. 加载配置 ---
	var cfg appConfig.BlogConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}
	fmt.Println("配置加载成功。")

	// --- 2. 初始化日志记录器 ---
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", loggerErr)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Logger().Sync()
	}()
	logger.Info("Logger 初始化成功 (Seeder)")

	// --- 3. 初始化 MySQL 数据库连接 ---
	db, dbErr := dependencies.InitMySQL(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化 MySQL 失败 (Seeder)", zap.Error(dbErr))
	}
	logger.Info("MySQL 连接成功 (Seeder)")

	// --- 4. 初始化 Redis 与 COS ---
	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败 (Seeder)", zap.Error(redisErr))
	}
	cos, cosErr := dependencies.InitCOS(&cfg.COSConfig, logger)
	if cosErr != nil {
		logger.Fatal("初始化 COS 客户端失败 (Seeder)", zap.Error(cosErr))
	}

	// --- 5. 初始化 Kafka 生产者 ---
	var kafkaProducer *producer.KafkaProducer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		logger.Info("Kafka 生产者已初始化 (Seeder)")
	}

	// --- 6. 初始化 Repositories 与 Service ---
	blogRepo := mysql.NewBlogRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	reportRepo := mysql.NewReportRepository(db, logger)
	engageRepo := mysql.NewEngagementRepository(db, logger)
	userRepo := mysql.NewUserRepository(db, logger)
	adminRepo := mysql.NewAdminRepository(db, logger)

	cacheRepo := redisRepo.NewCache(rdb, logger)
	blogViewRepo := redisRepo.NewBlogViewRepository(rdb, logger, cfg.ViewSyncConfig)

	blogSvc := service.NewBlogService(db, blogRepo, commentRepo, reportRepo, engageRepo, cacheRepo, blogViewRepo, cos, kafkaProducer, logger)
	logger.Info("BlogService 已初始化 (Seeder)")

	// --- 7. 执行数据填充 ---
	ctx := context.Background()
	startTime := time.Now()

	Seed(ctx, db, blogSvc, userRepo, adminRepo, logger, numUsers, numBlogs)

	duration := time.Since(startTime)
	logger.Info("数据填充主要逻辑完成！", zap.Duration("耗时", duration))

	// --- 8. 等待异步 Kafka 任务完成 ---
	if waitSeconds > 0 {
		logger.Info(fmt.Sprintf("Seeder: 等待 %d 秒以允许异步 Kafka 消息发送...", waitSeconds))
		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	fmt.Printf("数据填充完成！总耗时（包括等待）: %v\n", time.Since(startTime))
}
