package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Riya-jhankda/FitDotDodge/internal/model"
)

// ScannerDeviceRepository 扫码设备数据访问接口
type ScannerDeviceRepository interface {
	Create(ctx context.Context, device *model.ScannerDevice) error
	GetByAPIKey(ctx context.Context, apiKey string) (*model.ScannerDevice, error)
	ListBySchool(ctx context.Context, schoolID string) ([]model.ScannerDevice, error)
}

// scannerDeviceRepo ScannerDeviceRepository 的 GORM 实现
type scannerDeviceRepo struct {
	db *gorm.DB
}

// NewScannerDeviceRepo 创建 ScannerDeviceRepository 实例
func NewScannerDeviceRepo(db *gorm.DB) ScannerDeviceRepository {
	return &scannerDeviceRepo{db: db}
}

func (r *scannerDeviceRepo) Create(ctx context.Context, device *model.ScannerDevice) error {
	return r.db.WithContext(ctx).Create(device).Error
}

func (r *scannerDeviceRepo) GetByAPIKey(ctx context.Context, apiKey string) (*model.ScannerDevice, error) {
	var device model.ScannerDevice
	err := r.db.WithContext(ctx).
		Where("api_key = ?", apiKey).
		First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *scannerDeviceRepo) ListBySchool(ctx context.Context, schoolID string) ([]model.ScannerDevice, error) {
	var devices []model.ScannerDevice
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("created_at ASC").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}
