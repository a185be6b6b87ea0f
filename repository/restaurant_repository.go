package repository

import (
	"context"
	"strings"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) WithTx(tx *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: tx}
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *models.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.WithContext(ctx).Preload("Owner").First(&rest, id).Error; err != nil {
		return nil, utils.NotFoundOr(err, "Restaurant not found")
	}
	return &rest, nil
}

// UpdateDetails writes the owner-editable columns only. The rating columns
// belong to the review recomputation.
func (r *RestaurantRepository) UpdateDetails(ctx context.Context, rest *models.Restaurant) error {
	return r.DB.WithContext(ctx).Model(rest).
		Select("name", "description", "address", "lat", "lng", "images").
		Updates(rest).Error
}

type RestaurantFilter struct {
	Approved *bool
	OwnerID  uint
	Search   string
}

func (r *RestaurantRepository) List(ctx context.Context, f RestaurantFilter, p utils.Pagination) ([]models.Restaurant, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Restaurant{})
	if f.Approved != nil {
		q = q.Where("is_approved = ?", *f.Approved)
	}
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Restaurant
	err := q.Preload("Owner").Order("created_at DESC").Scopes(utils.Paginate(p)).Find(&list).Error
	return list, total, err
}

func (r *RestaurantRepository) UpdateRating(ctx context.Context, id uint, avg float64, count int) error {
	return r.DB.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).
		Updates(map[string]interface{}{"average_rating": avg, "rating_count": count}).Error
}

// Delete removes a restaurant along with its menu, carts and reviews in one
// transaction. Orders referencing it are kept.
func (r *RestaurantRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&models.MenuItem{}).Select("id").Where("restaurant_id = ?", id)
		if err := tx.Where("item_id IN (?)", itemIDs).Delete(&models.ItemReview{}).Error; err != nil {
			return err
		}
		cartIDs := tx.Model(&models.Cart{}).Select("id").Where("restaurant_id = ?", id)
		if err := tx.Where("cart_id IN (?)", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		steps := []interface{}{
			&models.Cart{},
			&models.MenuItem{},
			&models.MenuCategory{},
			&models.RestaurantReview{},
		}
		for _, m := range steps {
			if err := tx.Where("restaurant_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Restaurant{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.NotFound("Restaurant not found")
		}
		return nil
	})
}

func (r *RestaurantRepository) Count(ctx context.Context, approved *bool) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Restaurant{})
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *RestaurantRepository) SetApproved(ctx context.Context, id uint, approved bool) error {
	return r.DB.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).
		Update("is_approved", approved).Error
}

func (r *RestaurantRepository) CountOwnedBy(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Restaurant{}).Where("owner_id = ?", ownerID).Count(&n).Error
	return n, err
}
