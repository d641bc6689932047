package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 管理模块业务错误 ──

var ErrSchoolNameTaken = errors.New("学校名称已存在")

// AdminService 学校管理与平台运营接口
type AdminService interface {
	// ListUsers 按角色分页查询本校用户，支持姓名/邮箱模糊搜索
	ListUsers(ctx context.Context, schoolID string, req *dto.ListUsersRequest) ([]dto.UserResponse, int64, error)
	// SchoolStats 本校规模概览
	SchoolStats(ctx context.Context, schoolID string) (*dto.SchoolStatsResponse, error)
	ListClasses(ctx context.Context, schoolID string) ([]dto.ClassResponse, error)
	ListScanners(ctx context.Context, schoolID string) ([]dto.ScannerDeviceResponse, error)
	// RegisterScanner 登记扫码设备；API Key 只在响应中出现一次
	RegisterScanner(ctx context.Context, schoolID string, req *dto.RegisterScannerRequest) (*dto.RegisterScannerResponse, error)
	// CreateSchool 开通新学校（仅平台所有者）
	CreateSchool(ctx context.Context, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error)
	ListSchools(ctx context.Context) ([]dto.SchoolResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

// ────────────────────── ListUsers ──────────────────────

func (s *adminService) ListUsers(ctx context.Context, schoolID string, req *dto.ListUsersRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.ListByRole(ctx, schoolID, model.Role(req.Role), req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *toUserResponse(&users[i]))
	}
	return out, total, nil
}

// ────────────────────── SchoolStats ──────────────────────

func (s *adminService) SchoolStats(ctx context.Context, schoolID string) (*dto.SchoolStatsResponse, error) {
	members, err := s.repo.User.CountByRole(ctx, schoolID, model.RoleMember)
	if err != nil {
		return nil, err
	}
	coaches, err := s.repo.User.CountByRole(ctx, schoolID, model.RoleCoach)
	if err != nil {
		return nil, err
	}
	classes, err := s.repo.Class.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	scanners, err := s.repo.Scanner.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	return &dto.SchoolStatsResponse{
		MemberCount:  members,
		CoachCount:   coaches,
		ClassCount:   int64(len(classes)),
		ScannerCount: int64(len(scanners)),
	}, nil
}

// ────────────────────── ListClasses ──────────────────────

func (s *adminService) ListClasses(ctx context.Context, schoolID string) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		out = append(out, *toClassResponse(&classes[i]))
	}
	return out, nil
}

// ────────────────────── ListScanners ──────────────────────

func (s *adminService) ListScanners(ctx context.Context, schoolID string) ([]dto.ScannerDeviceResponse, error) {
	devices, err := s.repo.Scanner.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ScannerDeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, dto.ScannerDeviceResponse{
			ScannerID: d.ScannerID,
			Name:      d.Name,
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ────────────────────── RegisterScanner ──────────────────────

func (s *adminService) RegisterScanner(ctx context.Context, schoolID string, req *dto.RegisterScannerRequest) (*dto.RegisterScannerResponse, error) {
	device := &model.ScannerDevice{
		Name:     req.Name,
		APIKey:   "SCN-" + uuid.NewString(),
		SchoolID: schoolID,
	}
	if err := s.repo.Scanner.Create(ctx, device); err != nil {
		s.logger.Error("登记扫码设备失败", zap.String("school_id", schoolID), zap.Error(err))
		return nil, err
	}

	return &dto.RegisterScannerResponse{
		ScannerID: device.ScannerID,
		Name:      device.Name,
		APIKey:    device.APIKey,
	}, nil
}

// ────────────────────── CreateSchool ──────────────────────

func (s *adminService) CreateSchool(ctx context.Context, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	if _, err := s.repo.School.GetByName(ctx, req.Name); err == nil {
		return nil, ErrSchoolNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	school := &model.School{
		Name:             req.Name,
		UTCOffsetMinutes: req.UTCOffsetMinutes,
	}
	if err := s.repo.School.Create(ctx, school); err != nil {
		// 预检到创建之间的并发开通，按同名处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSchoolNameTaken
		}
		s.logger.Error("开通学校失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	return toSchoolResponse(school), nil
}

// ────────────────────── ListSchools ──────────────────────

func (s *adminService) ListSchools(ctx context.Context) ([]dto.SchoolResponse, error) {
	schools, err := s.repo.School.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		out = append(out, *toSchoolResponse(&schools[i]))
	}
	return out, nil
}

// ── 映射 ──

func toSchoolResponse(school *model.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		SchoolID:         school.SchoolID,
		Name:             school.Name,
		UTCOffsetMinutes: school.UTCOffsetMinutes,
	}
}
