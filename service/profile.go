package service

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// ProfileService 定义了用户资料与关注关系的业务逻辑接口。
type ProfileService interface {
	// GetProfile 查询用户资料页，附带关注计数与博客数。
	// - viewerID 非空时填充 IsFollowing。
	GetProfile(ctx context.Context, userID string, viewerID string) (*vo.ProfileVO, error)

	// UpdateProfile 创建或更新当前用户的资料。
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*vo.ProfileVO, error)

	// ToggleFollow 切换关注关系: 未关注则建立，已关注则解除。
	// - 返回操作后是否处于关注状态。自己关注自己返回 myErrors.ErrSelfFollow。
	ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, error)

	// GetFollowStats 查询用户的关注关系计数。
	GetFollowStats(ctx context.Context, userID string) (*vo.FollowStatsVO, error)
}

type profileService struct {
	db          *gorm.DB
	userRepo    mysql.UserRepository
	profileRepo mysql.ProfileRepository
	blogRepo    mysql.BlogRepository
	engageRepo  mysql.EngagementRepository
	logger      *core.ZapLogger
}

// NewProfileService 是 profileService 的构造函数。
func NewProfileService(db *gorm.DB, userRepo mysql.UserRepository, profileRepo mysql.ProfileRepository, blogRepo mysql.BlogRepository, engageRepo mysql.EngagementRepository, logger *core.ZapLogger) ProfileService {
	return &profileService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		blogRepo:    blogRepo,
		engageRepo:  engageRepo,
		logger:      logger,
	}
}

// GetProfile 实现资料页查询。
func (s *profileService) GetProfile(ctx context.Context, userID string, viewerID string) (*vo.ProfileVO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil && !errors.Is(err, commonerrors.ErrRepoNotFound) {
		return nil, err
	}
	// 资料未编辑过时 profile 为 nil，资料字段返回空值。

	result := vo.MapProfileToVO(user, profile)

	if result.FollowerCount, err = s.engageRepo.CountFollowers(ctx, userID); err != nil {
		return nil, err
	}
	if result.FollowingCount, err = s.engageRepo.CountFollowing(ctx, userID); err != nil {
		return nil, err
	}

	// 博客数只统计公开可见的。
	query := &dto.ListBlogsQuery{AuthorID: userID, PageSize: 1}
	if _, result.BlogCount, err = s.blogRepo.ListPublicBlogs(ctx, query); err != nil {
		return nil, err
	}

	if viewerID != "" && viewerID != userID {
		if result.IsFollowing, err = s.engageRepo.HasFollow(ctx, viewerID, userID); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UpdateProfile 实现资料编辑。
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*vo.ProfileVO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &entities.Profile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Website:     req.Website,
		Location:    req.Location,
	}
	if err := s.profileRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	return vo.MapProfileToVO(user, profile), nil
}

// ToggleFollow 实现关注关系的切换。
func (s *profileService) ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == followeeID {
		return false, myErrors.ErrSelfFollow
	}
	if _, err := s.userRepo.GetUserByID(ctx, followeeID); err != nil {
		return false, err
	}

	var following bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先尝试删除: 删到行说明之前已关注，本次为取关。
		removed, txErr := s.engageRepo.RemoveFollow(ctx, tx, followerID, followeeID)
		if txErr != nil {
			return txErr
		}
		if removed {
			return nil
		}
		if txErr := s.engageRepo.AddFollow(ctx, tx, followerID, followeeID); txErr != nil {
			return txErr
		}
		following = true
		return nil
	})
	if err != nil {
		s.logger.Error("切换关注关系失败",
			zap.String("followerID", followerID),
			zap.String("followeeID", followeeID),
			zap.Error(err),
		)
		return false, err
	}
	return following, nil
}

// GetFollowStats 实现关注计数查询。
func (s *profileService) GetFollowStats(ctx context.Context, userID string) (*vo.FollowStatsVO, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	followers, err := s.engageRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.engageRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &vo.FollowStatsVO{FollowerCount: followers, FollowingCount: following}, nil
}
