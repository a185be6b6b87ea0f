package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

// AdminService backs the moderation endpoints. Callers are expected to be
// admins; every method checks again.
type AdminService struct {
	db          *gorm.DB
	users       *repository.UserRepository
	restaurants *repository.RestaurantRepository
	orders      *repository.OrderRepository
	audit       *AuditService
}

func NewAdminService(db *gorm.DB, audit *AuditService) *AdminService {
	return &AdminService{
		db:          db,
		users:       repository.NewUserRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		orders:      repository.NewOrderRepository(db),
		audit:       audit,
	}
}

type DashboardStats struct {
	TotalUsers         int64          `json:"total_users"`
	TotalRestaurants   int64          `json:"total_restaurants"`
	TotalOrders        int64          `json:"total_orders"`
	PendingRestaurants int64          `json:"pending_restaurants"`
	RecentOrders       []models.Order `json:"recent_orders"`
}

const recentOrdersOnDashboard = 5

func (s *AdminService) Dashboard(ctx context.Context, actor Actor) (*DashboardStats, error) {
	if !actor.IsAdmin() {
		return nil, utils.Forbidden("Only admins can view dashboard stats")
	}
	var (
		stats DashboardStats
		err   error
	)
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRestaurants, err = s.restaurants.Count(ctx, nil); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	pending := false
	if stats.PendingRestaurants, err = s.restaurants.Count(ctx, &pending); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.orders.Recent(ctx, recentOrdersOnDashboard); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) Logs(ctx context.Context, actor Actor, f repository.AdminLogFilter, p utils.Pagination) ([]models.AdminLog, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, utils.Forbidden("Only admins can view admin logs")
	}
	return s.audit.List(ctx, f, p)
}

func (s *AdminService) Users(ctx context.Context, actor Actor, f repository.UserFilter, p utils.Pagination) ([]models.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, utils.Forbidden("Only admins can view all users")
	}
	if f.Role != "" && !models.ValidRole(f.Role) {
		return nil, 0, utils.Invalid("Invalid role")
	}
	return s.users.List(ctx, f, p)
}

func (s *AdminService) UpdateUserRole(ctx context.Context, actor Actor, userID uint, role models.Role) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, utils.Forbidden("Only admins can update user roles")
	}
	if !models.ValidRole(role) {
		return nil, utils.Invalid("Invalid role")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	previous := user.Role
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Updates(ctx, user, map[string]interface{}{"role": role}); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, actor.UserID, AuditEntry{
			Action:     models.ActionUpdateUserRole,
			TargetType: models.TargetUser,
			TargetID:   user.ID,
			Details:    fmt.Sprintf("%s -> %s", previous, role),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *AdminService) DeleteUser(ctx context.Context, actor Actor, userID uint) error {
	if !actor.IsAdmin() {
		return utils.Forbidden("Only admins can delete users")
	}
	if userID == actor.UserID {
		return utils.Invalid("You cannot delete your own account")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	owned, err := s.restaurants.CountOwnedBy(ctx, user.ID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return utils.Invalid("User still owns %d restaurants", owned)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Delete(ctx, user.ID); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, actor.UserID, AuditEntry{
			Action:     models.ActionDeleteUser,
			TargetType: models.TargetUser,
			TargetID:   user.ID,
			Details:    user.Email,
		})
	})
}
