package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository { return &OrderRepository{DB: tx} }

// Create inserts the order with its items and history rows.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Restaurant").
		Preload("User").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error
	if err != nil {
		return nil, utils.NotFoundOr(err, "Order not found")
	}
	return &order, nil
}

type OrderFilter struct {
	UserID       uint
	RestaurantID uint
	Status       models.OrderStatus
}

func (r *OrderRepository) List(ctx context.Context, f OrderFilter, p utils.Pagination) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.UserID != 0 {
		q = q.Where("orders.user_id = ?", f.UserID)
	}
	if f.RestaurantID != 0 {
		q = q.Where("orders.restaurant_id = ?", f.RestaurantID)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	err := q.Preload("Items").Preload("Restaurant").Preload("User").
		Order("orders.created_at DESC, orders.id DESC").
		Scopes(utils.Paginate(p)).Find(&orders).Error
	return orders, total, err
}

// UpdateStatus sets the new status only if the row still holds from, and
// records the change.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, changedBy uint, note string) (bool, error) {
	db := r.DB.WithContext(ctx)
	res := db.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil || res.RowsAffected == 0 {
		return false, res.Error
	}
	h := models.OrderStatusHistory{OrderID: id, FromStatus: from, ToStatus: to, ChangedBy: changedBy, Note: note}
	return true, db.Create(&h).Error
}

func (r *OrderRepository) Recent(ctx context.Context, n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Preload("Restaurant").Preload("User").
		Order("created_at DESC, id DESC").Limit(n).Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}
