package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type AdminLogRepository struct{ DB *gorm.DB }

func NewAdminLogRepository(db *gorm.DB) *AdminLogRepository { return &AdminLogRepository{DB: db} }

func (r *AdminLogRepository) WithTx(tx *gorm.DB) *AdminLogRepository {
	return &AdminLogRepository{DB: tx}
}

func (r *AdminLogRepository) Create(ctx context.Context, l *models.AdminLog) error {
	return r.DB.WithContext(ctx).Omit("Admin").Create(l).Error
}

type AdminLogFilter struct {
	Action     string
	TargetType string
}

func (r *AdminLogRepository) List(ctx context.Context, f AdminLogFilter, p utils.Pagination) ([]models.AdminLog, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.AdminLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.TargetType != "" {
		q = q.Where("target_type = ?", f.TargetType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var logs []models.AdminLog
	err := q.Preload("Admin").Order("created_at DESC, id DESC").Scopes(utils.Paginate(p)).Find(&logs).Error
	return logs, total, err
}
