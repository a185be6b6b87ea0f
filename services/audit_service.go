package services

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

// AuditService appends admin log entries.
type AuditService struct {
	logs *repository.AdminLogRepository
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{logs: repository.NewAdminLogRepository(db)}
}

type AuditEntry struct {
	Action     string
	TargetType string
	TargetID   uint
	Details    string
}

// Record writes an entry for adminID. When tx is non-nil the entry joins
// that transaction.
func (s *AuditService) Record(ctx context.Context, tx *gorm.DB, adminID uint, e AuditEntry) error {
	repo := s.logs
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	meta := utils.RequestMetaFrom(ctx)
	return repo.Create(ctx, &models.AdminLog{
		AdminID:    adminID,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		Details:    e.Details,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	})
}

func (s *AuditService) List(ctx context.Context, f repository.AdminLogFilter, p utils.Pagination) ([]models.AdminLog, int64, error) {
	return s.logs.List(ctx, f, p)
}
