package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/dto"
	"github.com/Riya-jhankda/FitDotDodge/internal/model"
	"github.com/Riya-jhankda/FitDotDodge/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrNotEnrolled   = errors.New("学员未加入该课程")
	ErrDateInvalid   = errors.New("日期格式不正确")
	ErrEntriesEmpty  = errors.New("点名记录不能为空")
	ErrClassNotOwned = errors.New("课程不属于当前教练")
)

// AttendanceService 考勤账本接口
//
// 核心不变量：每 (学员, 课程, 自然日) 至多一条记录。扫码路径是幂等的
// "标记出勤"，重复扫码命中已有行返回 already_marked；手动点名路径
// 允许教练显式覆盖出勤值。自然日一律按学校时区偏移换算。
type AttendanceService interface {
	// MarkByQR 扫码打卡：设备 → 学校 → 课程 → 学员 → 选课关系逐级校验后落账
	MarkByQR(ctx context.Context, device *model.ScannerDevice, school *model.School, req *dto.ScanAttendanceRequest) (*dto.MarkAttendanceResponse, error)
	// SetManual 教练手动点名：按条目创建或覆盖出勤记录，非本班学员静默跳过
	SetManual(ctx context.Context, coachID string, school *model.School, req *dto.ManualAttendanceRequest) (*dto.ManualAttendanceResponse, error)
	// PresentRoster 某课程某日的已出勤学员名单
	PresentRoster(ctx context.Context, coachID, classID, dateStr string) ([]dto.RosterUserResponse, error)
	// AbsentRoster 某课程某日在班但未出勤的学员名单
	AbsentRoster(ctx context.Context, coachID, classID, dateStr string) ([]dto.RosterUserResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	qr     QRService
	logger *zap.Logger
	nowFn  func() time.Time
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, qr QRService, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, qr: qr, logger: logger, nowFn: time.Now}
}

// ────────────────────── MarkByQR ──────────────────────

func (s *attendanceService) MarkByQR(ctx context.Context, device *model.ScannerDevice, school *model.School, req *dto.ScanAttendanceRequest) (*dto.MarkAttendanceResponse, error) {
	// 前置校验顺序固定：课程 → 学员 → 选课关系，
	// 任何一步失败都不写入任何数据
	class, err := s.repo.Class.GetInSchool(ctx, req.ClassID, school.SchoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	user, err := s.qr.Resolve(ctx, school.SchoolID, req.QRToken)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.repo.Enrollment.IsActivelyEnrolled(ctx, user.UserID, class.ClassID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	date := civilDate(s.nowFn(), school.UTCOffsetMinutes)
	resp := &dto.MarkAttendanceResponse{
		UserName:  user.Name,
		ClassName: class.Name,
		Date:      date.Format("2006-01-02"),
	}

	status, err := s.markPresent(ctx, s.repo, user.UserID, class.ClassID, date)
	if err != nil {
		return nil, err
	}
	resp.Status = status

	s.logger.Info("扫码打卡",
		zap.String("scanner_id", device.ScannerID),
		zap.String("user_id", user.UserID),
		zap.String("class_id", class.ClassID),
		zap.String("date", resp.Date),
		zap.String("status", status))

	return resp, nil
}

// markPresent 将 (学员, 课程, 日期) 标记为出勤。
// 已有任何记录（含教练点名的缺勤）→ already_marked，不改动既有状态；
// 无记录 → 创建，并发创建撞唯一键后按 already_marked 收敛。
func (s *attendanceService) markPresent(ctx context.Context, repo *repository.Repository, userID, classID string, date time.Time) (string, error) {
	_, err := repo.Attendance.GetByKey(ctx, userID, classID, date)
	if err == nil {
		return dto.MarkStatusAlreadyMarked, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	attendance := &model.Attendance{
		UserID:    userID,
		ClassID:   classID,
		Date:      date,
		IsPresent: true,
	}
	if err := repo.Attendance.Create(ctx, attendance); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 两次扫码几乎同时到达：唯一键保证只有一行，本次按重复处理
			return dto.MarkStatusAlreadyMarked, nil
		}
		return "", err
	}

	return dto.MarkStatusCreated, nil
}

// ────────────────────── SetManual ──────────────────────

func (s *attendanceService) SetManual(ctx context.Context, coachID string, school *model.School, req *dto.ManualAttendanceRequest) (*dto.ManualAttendanceResponse, error) {
	if len(req.Entries) == 0 {
		return nil, ErrEntriesEmpty
	}

	class, err := s.repo.Class.GetByCoach(ctx, req.ClassID, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotOwned
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrDateInvalid
	}

	updated := 0
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for _, entry := range req.Entries {
			// 跨校用户或非本班学员静默跳过，不计入 updated_count
			if _, err := txRepo.User.GetByIDInSchool(ctx, entry.UserID, school.SchoolID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			enrolled, err := txRepo.Enrollment.IsActivelyEnrolled(ctx, entry.UserID, class.ClassID)
			if err != nil {
				return err
			}
			if !enrolled {
				continue
			}

			changed, err := s.setPresence(ctx, txRepo, entry.UserID, class.ClassID, date, entry.IsPresent)
			if err != nil {
				return err
			}
			if changed {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("手动点名完成",
		zap.String("coach_id", coachID),
		zap.String("class_id", class.ClassID),
		zap.String("date", req.Date),
		zap.Int("updated", updated))

	return &dto.ManualAttendanceResponse{UpdatedCount: updated}, nil
}

// setPresence 创建或覆盖一条出勤记录，返回是否发生了实际变更
func (s *attendanceService) setPresence(ctx context.Context, repo *repository.Repository, userID, classID string, date time.Time, present bool) (bool, error) {
	existing, err := repo.Attendance.GetByKey(ctx, userID, classID, date)
	if err == nil {
		if existing.IsPresent == present {
			return false, nil
		}
		existing.IsPresent = present
		if err := repo.Attendance.Update(ctx, existing); err != nil {
			return false, err
		}
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	attendance := &model.Attendance{
		UserID:    userID,
		ClassID:   classID,
		Date:      date,
		IsPresent: present,
	}
	if err := repo.Attendance.Create(ctx, attendance); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 与扫码路径并发撞键：重读后按覆盖语义落值
			existing, rerr := repo.Attendance.GetByKey(ctx, userID, classID, date)
			if rerr != nil {
				return false, rerr
			}
			if existing.IsPresent == present {
				return false, nil
			}
			existing.IsPresent = present
			if uerr := repo.Attendance.Update(ctx, existing); uerr != nil {
				return false, uerr
			}
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ────────────────────── PresentRoster ──────────────────────

func (s *attendanceService) PresentRoster(ctx context.Context, coachID, classID, dateStr string) ([]dto.RosterUserResponse, error) {
	class, date, err := s.resolveRosterQuery(ctx, coachID, classID, dateStr)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListPresentByClassDate(ctx, class.ClassID, date)
	if err != nil {
		return nil, err
	}

	roster := make([]dto.RosterUserResponse, 0, len(records))
	for _, rec := range records {
		user, err := s.repo.User.GetByID(ctx, rec.UserID)
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

// ────────────────────── AbsentRoster ──────────────────────

func (s *attendanceService) AbsentRoster(ctx context.Context, coachID, classID, dateStr string) ([]dto.RosterUserResponse, error) {
	class, date, err := s.resolveRosterQuery(ctx, coachID, classID, dateStr)
	if err != nil {
		return nil, err
	}

	present, err := s.repo.Attendance.ListPresentByClassDate(ctx, class.ClassID, date)
	if err != nil {
		return nil, err
	}
	presentSet := make(map[string]struct{}, len(present))
	for _, rec := range present {
		presentSet[rec.UserID] = struct{}{}
	}

	enrollments, err := s.repo.Enrollment.ListActiveByClass(ctx, class.ClassID)
	if err != nil {
		return nil, err
	}

	roster := make([]dto.RosterUserResponse, 0, len(enrollments))
	for _, enr := range enrollments {
		if _, ok := presentSet[enr.UserID]; ok {
			continue
		}
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

func (s *attendanceService) resolveRosterQuery(ctx context.Context, coachID, classID, dateStr string) (*model.Class, time.Time, error) {
	class, err := s.repo.Class.GetByCoach(ctx, classID, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, ErrClassNotOwned
		}
		return nil, time.Time{}, err
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, time.Time{}, ErrDateInvalid
	}
	return class, date, nil
}
