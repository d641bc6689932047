package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 租户解析业务错误 ──

var (
	// ErrScopeUnresolved 调用方归属的学校无法确定，所有依赖租户边界的操作必须拒绝
	ErrScopeUnresolved = errors.New("无法确定所属学校")
	// ErrMemberInactive 用户存在但已停用或被暂停
	ErrMemberInactive = errors.New("用户已停用")
)

// ScopeService 租户（学校）解析接口
// 每个请求先解析出唯一的学校边界，之后的查询一律限定在该边界内
type ScopeService interface {
	// ResolveMemberScope 由已认证用户解析其学校，用户必须处于 Active 状态
	ResolveMemberScope(ctx context.Context, userID string) (*model.User, *model.School, error)
	// ResolveScannerScope 由扫码设备 API Key 解析其绑定的学校
	ResolveScannerScope(ctx context.Context, apiKey string) (*model.ScannerDevice, *model.School, error)
}

type scopeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScopeService 创建 ScopeService 实例
func NewScopeService(repo *repository.Repository, logger *zap.Logger) ScopeService {
	return &scopeService{repo: repo, logger: logger}
}

// ────────────────────── ResolveMemberScope ──────────────────────

func (s *scopeService) ResolveMemberScope(ctx context.Context, userID string) (*model.User, *model.School, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrScopeUnresolved
		}
		return nil, nil, err
	}
	if user.Status != model.StatusActive {
		return nil, nil, ErrMemberInactive
	}

	school, err := s.repo.School.GetByID(ctx, user.SchoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 用户指向的学校不存在属于数据异常，按未解析处理并留日志
			s.logger.Error("用户归属的学校不存在",
				zap.String("user_id", userID),
				zap.String("school_id", user.SchoolID))
			return nil, nil, ErrScopeUnresolved
		}
		return nil, nil, err
	}

	return user, school, nil
}

// ────────────────────── ResolveScannerScope ──────────────────────

func (s *scopeService) ResolveScannerScope(ctx context.Context, apiKey string) (*model.ScannerDevice, *model.School, error) {
	device, err := s.repo.Scanner.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrScopeUnresolved
		}
		return nil, nil, err
	}

	school, err := s.repo.School.GetByID(ctx, device.SchoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("扫码设备归属的学校不存在",
				zap.String("scanner_id", device.ScannerID),
				zap.String("school_id", device.SchoolID))
			return nil, nil, ErrScopeUnresolved
		}
		return nil, nil, err
	}

	return device, school, nil
}
