package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
	"github.com/Riya-jhankda/FitDotDodge/pkg/jwt"
)

// ── 用户模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrBirthDateInvalid   = errors.New("出生日期格式不正确")
)

// UserService 用户业务接口
type UserService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type userService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, jwtMgr *jwt.Manager, logger *zap.Logger) UserService {
	return &userService{repo: repo, jwtMgr: jwtMgr, logger: logger}
}

// ────────────────────── Login ──────────────────────

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != model.StatusActive {
		return nil, ErrMemberInactive
	}

	token, err := s.jwtMgr.GenerateAccessToken(user.UserID, string(user.Role), user.SchoolID)
	if err != nil {
		s.logger.Error("签发访问令牌失败", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        *toUserResponse(user),
	}, nil
}

// ────────────────────── GetProfile ──────────────────────

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := toProfileResponse(user)
	if err := s.attachStats(ctx, resp, userID); err != nil {
		return nil, err
	}
	return resp, nil
}

// ────────────────────── UpdateProfile ──────────────────────

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}
	if req.WaistCm != nil {
		user.WaistCm = req.WaistCm
	}
	if req.HipCm != nil {
		user.HipCm = req.HipCm
	}
	if req.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, ErrBirthDateInvalid
		}
		user.BirthDate = &birth
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新个人资料失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toProfileResponse(user)
	if err := s.attachStats(ctx, resp, userID); err != nil {
		return nil, err
	}
	return resp, nil
}

// attachStats 填充选课与出勤累计（出勤只计实到）
func (s *userService) attachStats(ctx context.Context, resp *dto.ProfileResponse, userID string) error {
	enrolled, err := s.repo.Enrollment.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	attended, err := s.repo.Attendance.CountPresentByUser(ctx, userID)
	if err != nil {
		return err
	}
	resp.EnrolledClassCount = enrolled
	resp.ClassesAttendedTotal = attended
	return nil
}

// ── 映射 ──

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserID:   user.UserID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     string(user.Role),
		Status:   string(user.Status),
		SchoolID: user.SchoolID,
	}
}

func toProfileResponse(user *model.User) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserResponse: *toUserResponse(user),
		Gender:       user.Gender,
		HeightCm:     user.HeightCm,
		WeightKg:     user.WeightKg,
		WaistCm:      user.WaistCm,
		HipCm:        user.HipCm,
	}
	if user.BirthDate != nil {
		b := user.BirthDate.Format("2006-01-02")
		resp.BirthDate = &b
	}

	// 派生指标：数据齐全时才计算，两位小数
	if user.HeightCm != nil && user.WeightKg != nil && *user.HeightCm > 0 {
		heightM := *user.HeightCm / 100
		bmi := round2(*user.WeightKg / (heightM * heightM))
		resp.BMI = &bmi
	}
	if user.WaistCm != nil && user.HipCm != nil && *user.HipCm > 0 {
		whr := round2(*user.WaistCm / *user.HipCm)
		resp.WaistHipRatio = &whr
	}

	return resp
}
