package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
)

// 种子管理员的默认凭证，仅用于开发环境。
const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123!"
	seedUserPassword  = "password123"
)

var blogCategories = []string{"技术", "生活", "旅行", "美食", "读书", "随笔"}

// Seed 填充测试数据: 一个全权限管理员、若干已验证用户，以及通过服务层创建的博客。
func Seed(
	ctx context.Context,
	db *gorm.DB,
	blogSvc service.BlogService,
	userRepo mysql.UserRepository,
	adminRepo mysql.AdminRepository,
	logger *core.ZapLogger,
	numUsers, numBlogs int,
) {
	logger.Info("开始填充测试数据...", zap.Int("用户数量", numUsers), zap.Int("博客数量", numBlogs))

	// --- 1. 管理员账号 ---
	seedAdmin(ctx, adminRepo, logger)

	// --- 2. 测试用户 ---
	userIDs := make([]string, 0, numUsers)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("生成用户密码哈希失败", zap.Error(err))
	}
	for i := 0; i < numUsers; i++ {
		hash := string(passwordHash)
		user := &entities.User{
			ID:           uuid.New().String(),
			Username:     gofakeit.Username(),
			Email:        gofakeit.Email(),
			PasswordHash: &hash,
			Avatar:       gofakeit.ImageURL(100, 100),
			IsVerified:   true,
		}
		if err := userRepo.CreateUser(ctx, db, user); err != nil {
			logger.Error(fmt.Sprintf("创建用户 %d/%d 失败", i+1, numUsers), zap.Error(err), zap.String("email", user.Email))
			continue
		}
		userIDs = append(userIDs, user.ID)
	}
	logger.Info("测试用户填充完毕", zap.Int("成功数量", len(userIDs)))
	if len(userIDs) == 0 {
		logger.Fatal("没有可用的测试用户，无法继续填充博客")
	}

	// --- 3. 博客 ---
	var wg sync.WaitGroup
	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numBlogs; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			authorID := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			createReq := &dto.CreateBlogRequest{
				Title:    gofakeit.Sentence(gofakeit.Number(5, 15)),
				Content:  gofakeit.Paragraph(3, 5, 20, "\n\n"),
				Category: blogCategories[gofakeit.Number(0, len(blogCategories)-1)],
				Tags:     []string{gofakeit.Word(), gofakeit.Word()},
				CoverURL: gofakeit.ImageURL(640, 360),
			}

			resp, err := blogSvc.CreateBlog(ctx, authorID, createReq)
			if err != nil {
				logger.Error(fmt.Sprintf("创建博客 %d/%d 失败", itemIndex+1, numBlogs),
					zap.Error(err),
					zap.String("title", createReq.Title),
					zap.String("author_id", authorID))
			} else {
				logger.Info(fmt.Sprintf("成功创建博客 %d/%d", itemIndex+1, numBlogs),
					zap.Uint64("blog_id", resp.ID),
					zap.String("title", resp.Title))
			}
		}(i)
	}

	wg.Wait()
	logger.Info("测试数据填充完毕。")
}

// seedAdmin 确保存在一个持有全部能力的管理员账号，已存在时跳过。
func seedAdmin(ctx context.Context, adminRepo mysql.AdminRepository, logger *core.ZapLogger) {
	if _, err := adminRepo.GetAdminByUsername(ctx, seedAdminUsername); err == nil {
		logger.Info("种子管理员已存在，跳过创建", zap.String("username", seedAdminUsername))
		return
	} else if !errors.Is(err, commonerrors.ErrRepoNotFound) {
		logger.Fatal("查询种子管理员失败", zap.Error(err))
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("生成管理员密码哈希失败", zap.Error(err))
	}
	admin := &entities.Admin{
		Username:     seedAdminUsername,
		Email:        "admin@blog.example.com",
		PasswordHash: string(passwordHash),
		Permissions: enums.Permissions{
			enums.PermManageUsers,
			enums.PermManageBlogs,
			enums.PermManageComments,
			enums.PermManageReports,
			enums.PermViewLogs,
		},
	}
	if err := adminRepo.CreateAdmin(ctx, admin); err != nil {
		logger.Fatal("创建种子管理员失败", zap.Error(err))
	}
	logger.Info("种子管理员已创建", zap.String("username", seedAdminUsername))
}
