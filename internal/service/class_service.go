package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrClassTypeInvalid = errors.New("课程类型不合法")
	ErrClassTimeInvalid = errors.New("课程结束时间必须晚于开始时间")
	ErrClassNameTaken   = errors.New("同名课程已存在")
	ErrEmailConflict    = errors.New("邮箱已被其他学校的用户使用")
)

// ClassService 课程业务接口
type ClassService interface {
	Create(ctx context.Context, coachID, schoolID string, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	Update(ctx context.Context, coachID, classID string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error)
	// UpdateNote 整体覆盖教练备注，传空串表示清除
	UpdateNote(ctx context.Context, coachID, classID, note string) (*dto.ClassResponse, error)
	// ListForMember 学员视角：已选课程按今日/将来/已结束分组
	ListForMember(ctx context.Context, userID string) (*dto.ClassListResponse, error)
	// ListForCoach 教练视角：自己的课程按今日/将来/已结束分组
	ListForCoach(ctx context.Context, coachID string) (*dto.ClassListResponse, error)
	// ListTodayForSchool 扫码设备视角：本校今日的课程
	ListTodayForSchool(ctx context.Context, school *model.School) ([]dto.ClassResponse, error)
	// EnrolledUsers 本班在读学员名单
	EnrolledUsers(ctx context.Context, coachID, classID string) ([]dto.RosterUserResponse, error)
	// AddMember 按邮箱找到或创建学员，并幂等加入课程
	AddMember(ctx context.Context, coachID, schoolID string, req *dto.AddMemberToClassRequest) (*dto.AddMemberToClassResponse, error)
	// CoachProfile 教练主页概览
	CoachProfile(ctx context.Context, coachID string) (*dto.CoachProfileResponse, error)
}

type classService struct {
	repo       *repository.Repository
	scope      ScopeService
	enrollment EnrollmentService
	logger     *zap.Logger
	nowFn      func() time.Time
}

// NewClassService 创建 ClassService 实例
func NewClassService(repo *repository.Repository, scope ScopeService, enrollment EnrollmentService, logger *zap.Logger) ClassService {
	return &classService{
		repo:       repo,
		scope:      scope,
		enrollment: enrollment,
		logger:     logger,
		nowFn:      time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *classService) Create(ctx context.Context, coachID, schoolID string, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	classType := model.ClassType(req.ClassType)
	if !classType.Valid() {
		return nil, ErrClassTypeInvalid
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrClassTimeInvalid
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, ErrClassTimeInvalid
	}
	if !end.After(start) {
		return nil, ErrClassTimeInvalid
	}

	taken, err := s.repo.Class.ExistsByCoachAndName(ctx, coachID, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrClassNameTaken
	}

	class := &model.Class{
		SchoolID:  schoolID,
		CoachID:   coachID,
		Name:      req.Name,
		ClassType: classType,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Info:      req.Info,
	}
	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("创建课程失败", zap.String("coach_id", coachID), zap.Error(err))
		return nil, err
	}

	return toClassResponse(class), nil
}

// ────────────────────── Update ──────────────────────

func (s *classService) Update(ctx context.Context, coachID, classID string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByCoach(ctx, classID, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotOwned
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != class.Name {
		taken, err := s.repo.Class.ExistsByCoachAndName(ctx, coachID, *req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrClassNameTaken
		}
		class.Name = *req.Name
	}
	if req.ClassType != nil {
		classType := model.ClassType(*req.ClassType)
		if !classType.Valid() {
			return nil, ErrClassTypeInvalid
		}
		class.ClassType = classType
	}
	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, ErrClassTimeInvalid
		}
		class.StartTime = start.UTC()
	}
	if req.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, ErrClassTimeInvalid
		}
		class.EndTime = end.UTC()
	}
	if !class.EndTime.After(class.StartTime) {
		return nil, ErrClassTimeInvalid
	}
	if req.Info != nil {
		class.Info = req.Info
	}

	if err := s.repo.Class.Update(ctx, class); err != nil {
		return nil, err
	}

	return toClassResponse(class), nil
}

// ────────────────────── UpdateNote ──────────────────────

func (s *classService) UpdateNote(ctx context.Context, coachID, classID, note string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByCoach(ctx, classID, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotOwned
		}
		return nil, err
	}

	if note == "" {
		class.CoachNote = nil
		class.NoteUpdatedAt = nil
	} else {
		now := s.nowFn().UTC()
		class.CoachNote = &note
		class.NoteUpdatedAt = &now
	}

	if err := s.repo.Class.Update(ctx, class); err != nil {
		return nil, err
	}

	return toClassResponse(class), nil
}

// ────────────────────── ListForMember ──────────────────────

func (s *classService) ListForMember(ctx context.Context, userID string) (*dto.ClassListResponse, error) {
	_, school, err := s.scope.ResolveMemberScope(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.Enrollment.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(enrollments))
	for _, enr := range enrollments {
		if enr.Status == model.StatusActive {
			ids = append(ids, enr.ClassID)
		}
	}

	classes, err := s.repo.Class.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return s.groupByDay(classes, school.UTCOffsetMinutes), nil
}

// ────────────────────── ListForCoach ──────────────────────

func (s *classService) ListForCoach(ctx context.Context, coachID string) (*dto.ClassListResponse, error) {
	_, school, err := s.scope.ResolveMemberScope(ctx, coachID)
	if err != nil {
		return nil, err
	}

	classes, err := s.repo.Class.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	return s.groupByDay(classes, school.UTCOffsetMinutes), nil
}

// ────────────────────── ListTodayForSchool ──────────────────────

func (s *classService) ListTodayForSchool(ctx context.Context, school *model.School) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.ListBySchool(ctx, school.SchoolID)
	if err != nil {
		return nil, err
	}
	return s.groupByDay(classes, school.UTCOffsetMinutes).Today, nil
}

// groupByDay 按学校时区偏移把课程分到今日/将来/已结束。
// 跨多天的课程只要今天落在起止日之间就算今日。
func (s *classService) groupByDay(classes []model.Class, utcOffsetMinutes int) *dto.ClassListResponse {
	today := civilDate(s.nowFn(), utcOffsetMinutes)

	out := &dto.ClassListResponse{
		Today:    make([]dto.ClassResponse, 0),
		Upcoming: make([]dto.ClassResponse, 0),
		Past:     make([]dto.ClassResponse, 0),
	}
	for i := range classes {
		class := &classes[i]
		startDay := civilDate(class.StartTime, utcOffsetMinutes)
		endDay := civilDate(class.EndTime, utcOffsetMinutes)

		switch {
		case !today.Before(startDay) && !today.After(endDay):
			out.Today = append(out.Today, *toClassResponse(class))
		case startDay.After(today):
			out.Upcoming = append(out.Upcoming, *toClassResponse(class))
		default:
			out.Past = append(out.Past, *toClassResponse(class))
		}
	}
	return out
}

// ────────────────────── EnrolledUsers ──────────────────────

func (s *classService) EnrolledUsers(ctx context.Context, coachID, classID string) ([]dto.RosterUserResponse, error) {
	class, err := s.repo.Class.GetByCoach(ctx, classID, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotOwned
		}
		return nil, err
	}

	enrollments, err := s.repo.Enrollment.ListActiveByClass(ctx, class.ClassID)
	if err != nil {
		return nil, err
	}

	roster := make([]dto.RosterUserResponse, 0, len(enrollments))
	for _, enr := range enrollments {
		user, err := s.repo.User.GetByID(ctx, enr.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		roster = append(roster, dto.RosterUserResponse{
			UserID: user.UserID,
			Name:   user.Name,
			Email:  user.Email,
		})
	}
	return roster, nil
}

// ────────────────────── AddMember ──────────────────────

func (s *classService) AddMember(ctx context.Context, coachID, schoolID string, req *dto.AddMemberToClassRequest) (*dto.AddMemberToClassResponse, error) {
	if _, err := s.repo.Class.GetByCoach(ctx, req.ClassID, coachID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotOwned
		}
		return nil, err
	}

	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	alreadyExist := false
	switch {
	case err == nil:
		if user.SchoolID != schoolID {
			return nil, ErrEmailConflict
		}
		alreadyExist = true
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 新学员入校：初始密码随机生成，走找回密码流程设置
		hash, herr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if herr != nil {
			return nil, herr
		}
		user = &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         model.RoleMember,
			Status:       model.StatusActive,
			SchoolID:     schoolID,
		}
		if cerr := s.repo.User.Create(ctx, user); cerr != nil {
			s.logger.Error("创建学员失败", zap.String("email", req.Email), zap.Error(cerr))
			return nil, cerr
		}
	default:
		return nil, err
	}

	already, err := s.enrollment.Enroll(ctx, schoolID, user.UserID, req.ClassID)
	if err != nil {
		return nil, err
	}

	return &dto.AddMemberToClassResponse{
		UserID:       user.UserID,
		AlreadyExist: alreadyExist,
		Enrolled:     !already,
	}, nil
}

// ────────────────────── CoachProfile ──────────────────────

func (s *classService) CoachProfile(ctx context.Context, coachID string) (*dto.CoachProfileResponse, error) {
	coach, _, err := s.scope.ResolveMemberScope(ctx, coachID)
	if err != nil {
		return nil, err
	}

	classCount, err := s.repo.Class.CountByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}
	studentCount, err := s.repo.Enrollment.CountDistinctUsersByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	// 实到占比：名下课程所有考勤记录中 is_present 的比例
	records, err := s.repo.Attendance.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if len(records) > 0 {
		present := 0
		for _, rec := range records {
			if rec.IsPresent {
				present++
			}
		}
		rate = round1(float64(present) * 100 / float64(len(records)))
	}

	return &dto.CoachProfileResponse{
		CoachID:        coach.UserID,
		Name:           coach.Name,
		ClassCount:     classCount,
		StudentCount:   studentCount,
		AttendanceRate: rate,
	}, nil
}

// ── 映射 ──

func toClassResponse(class *model.Class) *dto.ClassResponse {
	resp := &dto.ClassResponse{
		ClassID:   class.ClassID,
		Name:      class.Name,
		ClassType: string(class.ClassType),
		CoachID:   class.CoachID,
		StartTime: class.StartTime.Format(time.RFC3339),
		EndTime:   class.EndTime.Format(time.RFC3339),
		Info:      class.Info,
		CoachNote: class.CoachNote,
	}
	if class.NoteUpdatedAt != nil {
		t := class.NoteUpdatedAt.Format(time.RFC3339)
		resp.NoteUpdatedAt = &t
	}
	return resp
}
