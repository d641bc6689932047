package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
	"github.com/Riya-jhankda/FitDotDodge/pkg/redis"
)

// ── QR 模块业务错误 ──

var (
	// ErrQRNotRecognized 令牌不存在、或属于其他学校的用户
	ErrQRNotRecognized = errors.New("二维码无法识别")
	ErrUserNotFound    = errors.New("用户不存在")
)

// qrResolveCacheTTL 解析缓存有效期。令牌不可变，过期只为兜底用户状态变化
const qrResolveCacheTTL = 10 * time.Minute

// QRService 二维码身份接口
// 令牌首次申请时生成，一经生成终身不变；解析严格限定在单个学校内
type QRService interface {
	// GenerateToken 返回用户的二维码令牌，首次调用时生成，之后幂等返回同一值
	GenerateToken(ctx context.Context, userID string) (string, error)
	// Resolve 在指定学校范围内将令牌解析为用户；他校令牌视同不存在
	Resolve(ctx context.Context, schoolID, token string) (*model.User, error)
}

type qrService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewQRService 创建 QRService 实例。cache 允许为 nil（降级为纯数据库解析）
func NewQRService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) QRService {
	return &qrService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── GenerateToken ──────────────────────

func (s *qrService) GenerateToken(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.QRToken != nil && *user.QRToken != "" {
		return *user.QRToken, nil
	}

	token := "QR-" + uuid.NewString()
	ok, err := s.repo.User.SetQRTokenIfEmpty(ctx, userID, token)
	if err != nil {
		s.logger.Error("生成二维码令牌失败", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}
	if !ok {
		// 并发请求先到一步，读回已生成的令牌
		user, err = s.repo.User.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		if user.QRToken == nil {
			return "", errors.New("二维码令牌写入后读取为空")
		}
		return *user.QRToken, nil
	}

	s.logger.Info("二维码令牌已生成", zap.String("user_id", userID))
	return token, nil
}

// ────────────────────── Resolve ──────────────────────

func (s *qrService) Resolve(ctx context.Context, schoolID, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrQRNotRecognized
	}

	// 缓存键按学校隔离，命中即省掉一次令牌查询
	if s.cache != nil {
		if userID, err := s.cache.GetQRResolution(ctx, schoolID, token); err == nil && userID != "" {
			user, err := s.repo.User.GetByIDInSchool(ctx, userID, schoolID)
			if err == nil {
				return s.checkResolved(user)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			// 缓存指向的用户已不在该校，穿透回数据库
		}
	}

	user, err := s.repo.User.GetByQRToken(ctx, schoolID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQRNotRecognized
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheQRResolution(ctx, schoolID, token, user.UserID, qrResolveCacheTTL); err != nil {
			s.logger.Warn("二维码解析结果写缓存失败", zap.Error(err))
		}
	}

	return s.checkResolved(user)
}

func (s *qrService) checkResolved(user *model.User) (*model.User, error) {
	if user.Status != model.StatusActive {
		return nil, ErrMemberInactive
	}
	return user, nil
}
