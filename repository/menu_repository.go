package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository { return &MenuRepository{DB: tx} }

func (r *MenuRepository) CreateCategory(ctx context.Context, cat *models.MenuCategory) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *MenuRepository) FindCategory(ctx context.Context, id uint) (*models.MenuCategory, error) {
	var cat models.MenuCategory
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, utils.NotFoundOr(err, "Menu category not found")
	}
	return &cat, nil
}

func (r *MenuRepository) FindCategories(ctx context.Context, ids []uint) ([]models.MenuCategory, error) {
	var cats []models.MenuCategory
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) ListCategories(ctx context.Context, restaurantID uint) ([]models.MenuCategory, error) {
	var cats []models.MenuCategory
	err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restaurantID).
		Order("position ASC, id ASC").Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) SaveCategory(ctx context.Context, cat *models.MenuCategory) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}

func (r *MenuRepository) UpdateCategoryPosition(ctx context.Context, id uint, position int) error {
	return r.DB.WithContext(ctx).Model(&models.MenuCategory{}).Where("id = ?", id).
		Update("position", position).Error
}

func (r *MenuRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.MenuCategory{}, id).Error
}

func (r *MenuRepository) CountItemsInCategory(ctx context.Context, categoryID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.MenuItem{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (r *MenuRepository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Omit("Restaurant", "Category").Create(item).Error
}

func (r *MenuRepository) FindItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		return nil, utils.NotFoundOr(err, "Menu item not found")
	}
	return &item, nil
}

// UpdateItemDetails leaves average_rating alone.
func (r *MenuRepository) UpdateItemDetails(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Model(item).
		Select("category_id", "name", "description", "price", "is_available", "image_url").
		Updates(item).Error
}

// DeleteItem removes the item and its reviews.
func (r *MenuRepository) DeleteItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.ItemReview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MenuItem{}, id).Error
	})
}

type MenuItemFilter struct {
	RestaurantID uint
	CategoryID   uint
	IsAvailable  *bool
}

func (r *MenuRepository) ListItems(ctx context.Context, f MenuItemFilter, p utils.Pagination) ([]models.MenuItem, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.MenuItem{})
	if f.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.MenuItem
	err := q.Preload("Category").Order("category_id ASC, name ASC").Scopes(utils.Paginate(p)).Find(&items).Error
	return items, total, err
}

func (r *MenuRepository) UpdateItemRating(ctx context.Context, id uint, avg float64) error {
	return r.DB.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).
		Update("average_rating", avg).Error
}
