package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIDInSchool(ctx context.Context, id, schoolID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByQRToken(ctx context.Context, schoolID, token string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// SetQRTokenIfEmpty 仅在 qr_token 尚未生成时写入，返回是否写入成功。
	// 令牌一经生成不可变的约束在存储层兜底。
	SetQRTokenIfEmpty(ctx context.Context, userID, token string) (bool, error)
	ListByRole(ctx context.Context, schoolID string, role model.Role, search string, offset, limit int) ([]model.User, int64, error)
	CountByRole(ctx context.Context, schoolID string, role model.Role) (int64, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDInSchool(ctx context.Context, id, schoolID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND school_id = ?", id, schoolID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByQRToken(ctx context.Context, schoolID, token string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("qr_token = ? AND school_id = ?", token, schoolID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) SetQRTokenIfEmpty(ctx context.Context, userID, token string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ? AND qr_token IS NULL", userID).
		Update("qr_token", token)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepo) ListByRole(ctx context.Context, schoolID string, role model.Role, search string, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("school_id = ? AND role = ?", schoolID, role)

	if search != "" {
		db = db.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) CountByRole(ctx context.Context, schoolID string, role model.Role) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("school_id = ? AND role = ?", schoolID, role).
		Count(&total).Error
	return total, err
}
