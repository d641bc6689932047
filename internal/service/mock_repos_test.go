package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
)

// ── Mock SchoolRepository ──

type mockSchoolRepo struct {
	schools map[string]*model.School
}

func newMockSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{schools: make(map[string]*model.School)}
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	if school.SchoolID == "" {
		school.SchoolID = "school-" + school.Name
	}
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id string) (*model.School, error) {
	if s, ok := m.schools[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) GetByName(_ context.Context, name string) (*model.School, error) {
	for _, s := range m.schools {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) List(_ context.Context) ([]model.School, error) {
	var result []model.School
	for _, s := range m.schools {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Name
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDInSchool(_ context.Context, id, schoolID string) (*model.User, error) {
	if u, ok := m.users[id]; ok && u.SchoolID == schoolID {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByQRToken(_ context.Context, schoolID, token string) (*model.User, error) {
	for _, u := range m.users {
		if u.SchoolID == schoolID && u.QRToken != nil && *u.QRToken == token {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) SetQRTokenIfEmpty(_ context.Context, userID, token string) (bool, error) {
	u, ok := m.users[userID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if u.QRToken != nil && *u.QRToken != "" {
		return false, nil
	}
	u.QRToken = &token
	return true, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, schoolID string, role model.Role, search string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if u.SchoolID != schoolID || u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(u.Name, search) && !strings.Contains(u.Email, search) {
			continue
		}
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, schoolID string, role model.Role) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.SchoolID == schoolID && u.Role == role {
			n++
		}
	}
	return n, nil
}

// ── Mock ScannerDeviceRepository ──

type mockScannerRepo struct {
	devices map[string]*model.ScannerDevice
}

func newMockScannerRepo() *mockScannerRepo {
	return &mockScannerRepo{devices: make(map[string]*model.ScannerDevice)}
}

func (m *mockScannerRepo) Create(_ context.Context, device *model.ScannerDevice) error {
	if device.ScannerID == "" {
		device.ScannerID = "scanner-" + device.Name
	}
	m.devices[device.ScannerID] = device
	return nil
}

func (m *mockScannerRepo) GetByAPIKey(_ context.Context, apiKey string) (*model.ScannerDevice, error) {
	for _, d := range m.devices {
		if d.APIKey == apiKey {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScannerRepo) ListBySchool(_ context.Context, schoolID string) ([]model.ScannerDevice, error) {
	var result []model.ScannerDevice
	for _, d := range m.devices {
		if d.SchoolID == schoolID {
			result = append(result, *d)
		}
	}
	return result, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Name
	}
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) GetInSchool(_ context.Context, id, schoolID string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok && c.SchoolID == schoolID {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) GetByCoach(_ context.Context, id, coachID string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok && c.CoachID == coachID {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) ExistsByCoachAndName(_ context.Context, coachID, name string) (bool, error) {
	for _, c := range m.classes {
		if c.CoachID == coachID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClassRepo) ListBySchool(_ context.Context, schoolID string) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		if c.SchoolID == schoolID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClassRepo) ListByCoach(_ context.Context, coachID string) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		if c.CoachID == coachID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClassRepo) ListByIDs(_ context.Context, ids []string) ([]model.Class, error) {
	var result []model.Class
	for _, id := range ids {
		if c, ok := m.classes[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClassRepo) CountByCoach(_ context.Context, coachID string) (int64, error) {
	var n int64
	for _, c := range m.classes {
		if c.CoachID == coachID {
			n++
		}
	}
	return n, nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.Class) error {
	m.classes[class.ClassID] = class
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.ClassEnrollment // key: userID|classID
	classes     *mockClassRepo                    // CountDistinctUsersByCoach 需要联表
}

func newMockEnrollmentRepo(classes *mockClassRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{
		enrollments: make(map[string]*model.ClassEnrollment),
		classes:     classes,
	}
}

func enrollKey(userID, classID string) string {
	return userID + "|" + classID
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.ClassEnrollment) error {
	key := enrollKey(enrollment.UserID, enrollment.ClassID)
	if _, exists := m.enrollments[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if enrollment.EnrollmentID == "" {
		enrollment.EnrollmentID = "enr-" + key
	}
	m.enrollments[key] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) GetByUserAndClass(_ context.Context, userID, classID string) (*model.ClassEnrollment, error) {
	if e, ok := m.enrollments[enrollKey(userID, classID)]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) IsActivelyEnrolled(_ context.Context, userID, classID string) (bool, error) {
	e, ok := m.enrollments[enrollKey(userID, classID)]
	return ok && e.Status == model.StatusActive, nil
}

func (m *mockEnrollmentRepo) ListActiveByClass(_ context.Context, classID string) ([]model.ClassEnrollment, error) {
	var result []model.ClassEnrollment
	for _, e := range m.enrollments {
		if e.ClassID == classID && e.Status == model.StatusActive {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]model.ClassEnrollment, error) {
	var result []model.ClassEnrollment
	for _, e := range m.enrollments {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, e := range m.enrollments {
		if e.UserID == userID && e.Status == model.StatusActive {
			n++
		}
	}
	return n, nil
}

func (m *mockEnrollmentRepo) CountDistinctUsersByCoach(_ context.Context, coachID string) (int64, error) {
	seen := make(map[string]struct{})
	for _, e := range m.enrollments {
		if e.Status != model.StatusActive {
			continue
		}
		c, ok := m.classes.classes[e.ClassID]
		if !ok || c.CoachID != coachID {
			continue
		}
		seen[e.UserID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, enrollment *model.ClassEnrollment) error {
	m.enrollments[enrollKey(enrollment.UserID, enrollment.ClassID)] = enrollment
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.Attendance // key: userID|classID|date
	classes *mockClassRepo
	// beforeCreate 在 Create 写入前执行，用于模拟并发打卡抢先落库
	beforeCreate func()
}

func newMockAttendanceRepo(classes *mockClassRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[string]*model.Attendance),
		classes: classes,
	}
}

func attendanceKey(userID, classID string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", userID, classID, date.Format("2006-01-02"))
}

func (m *mockAttendanceRepo) Create(_ context.Context, attendance *model.Attendance) error {
	if m.beforeCreate != nil {
		hook := m.beforeCreate
		m.beforeCreate = nil
		hook()
	}
	key := attendanceKey(attendance.UserID, attendance.ClassID, attendance.Date)
	if _, exists := m.records[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if attendance.AttendanceID == "" {
		attendance.AttendanceID = "att-" + key
	}
	m.records[key] = attendance
	return nil
}

func (m *mockAttendanceRepo) GetByKey(_ context.Context, userID, classID string, date time.Time) (*model.Attendance, error) {
	if a, ok := m.records[attendanceKey(userID, classID, date)]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Update(_ context.Context, attendance *model.Attendance) error {
	m.records[attendanceKey(attendance.UserID, attendance.ClassID, attendance.Date)] = attendance
	return nil
}

func (m *mockAttendanceRepo) ListByUserDateRange(_ context.Context, userID string, start, end time.Time, onlyPresent bool) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		if a.UserID != userID {
			continue
		}
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		if onlyPresent && !a.IsPresent {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListPresentByClassDate(_ context.Context, classID string, date time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		if a.ClassID == classID && a.Date.Equal(date) && a.IsPresent {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByCoach(_ context.Context, coachID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		c, ok := m.classes.classes[a.ClassID]
		if ok && c.CoachID == coachID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) CountPresentByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, a := range m.records {
		if a.UserID == userID && a.IsPresent {
			n++
		}
	}
	return n, nil
}

// ── Mock WorkoutLogRepository ──

type mockWorkoutLogRepo struct {
	logs []*model.WorkoutLog
}

func newMockWorkoutLogRepo() *mockWorkoutLogRepo {
	return &mockWorkoutLogRepo{}
}

func (m *mockWorkoutLogRepo) Create(_ context.Context, log *model.WorkoutLog) error {
	if log.WorkoutLogID == "" {
		log.WorkoutLogID = fmt.Sprintf("log-%d", len(m.logs)+1)
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockWorkoutLogRepo) ListByUser(_ context.Context, userID string, start, end *time.Time) ([]model.WorkoutLog, error) {
	var result []model.WorkoutLog
	for _, l := range m.logs {
		if l.UserID != userID {
			continue
		}
		if start != nil && l.LoggedAt.Before(*start) {
			continue
		}
		if end != nil && !l.LoggedAt.Before(*end) {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}
