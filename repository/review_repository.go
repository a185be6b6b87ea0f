package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: tx} }

func (r *ReviewRepository) CreateItemReview(ctx context.Context, rv *models.ItemReview) error {
	return r.DB.WithContext(ctx).Omit("Item", "User").Create(rv).Error
}

func (r *ReviewRepository) FindItemReview(ctx context.Context, id uint) (*models.ItemReview, error) {
	var rv models.ItemReview
	if err := r.DB.WithContext(ctx).Preload("User").Preload("Item").First(&rv, id).Error; err != nil {
		return nil, utils.NotFoundOr(err, "Review not found")
	}
	return &rv, nil
}

func (r *ReviewRepository) HasItemReview(ctx context.Context, itemID, userID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.ItemReview{}).
		Where("item_id = ? AND user_id = ?", itemID, userID).Count(&n).Error
	return n > 0, err
}

func (r *ReviewRepository) UpdateItemReview(ctx context.Context, rv *models.ItemReview) error {
	return r.DB.WithContext(ctx).Model(rv).Select("rating", "comment").Updates(rv).Error
}

func (r *ReviewRepository) DeleteItemReview(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.ItemReview{}, id).Error
}

type ReviewFilter struct {
	TargetID uint
	UserID   uint
	Rating   int
}

func (r *ReviewRepository) ListItemReviews(ctx context.Context, f ReviewFilter, p utils.Pagination) ([]models.ItemReview, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.ItemReview{})
	if f.TargetID != 0 {
		q = q.Where("item_id = ?", f.TargetID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Rating != 0 {
		q = q.Where("rating = ?", f.Rating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.ItemReview
	err := q.Preload("User").Preload("Item").Order("created_at DESC, id DESC").
		Scopes(utils.Paginate(p)).Find(&list).Error
	return list, total, err
}

func (r *ReviewRepository) ItemRatings(ctx context.Context, itemID uint) ([]int, error) {
	var ratings []int
	err := r.DB.WithContext(ctx).Model(&models.ItemReview{}).Where("item_id = ?", itemID).Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *ReviewRepository) CreateRestaurantReview(ctx context.Context, rv *models.RestaurantReview) error {
	return r.DB.WithContext(ctx).Omit("Restaurant", "User").Create(rv).Error
}

func (r *ReviewRepository) FindRestaurantReview(ctx context.Context, id uint) (*models.RestaurantReview, error) {
	var rv models.RestaurantReview
	if err := r.DB.WithContext(ctx).Preload("User").Preload("Restaurant").First(&rv, id).Error; err != nil {
		return nil, utils.NotFoundOr(err, "Review not found")
	}
	return &rv, nil
}

func (r *ReviewRepository) HasRestaurantReview(ctx context.Context, restaurantID, userID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.RestaurantReview{}).
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).Count(&n).Error
	return n > 0, err
}

func (r *ReviewRepository) UpdateRestaurantReview(ctx context.Context, rv *models.RestaurantReview) error {
	return r.DB.WithContext(ctx).Model(rv).Select("rating", "comment", "images").Updates(rv).Error
}

func (r *ReviewRepository) DeleteRestaurantReview(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.RestaurantReview{}, id).Error
}

func (r *ReviewRepository) ListRestaurantReviews(ctx context.Context, f ReviewFilter, p utils.Pagination) ([]models.RestaurantReview, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.RestaurantReview{})
	if f.TargetID != 0 {
		q = q.Where("restaurant_id = ?", f.TargetID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Rating != 0 {
		q = q.Where("rating = ?", f.Rating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.RestaurantReview
	err := q.Preload("User").Preload("Restaurant").Order("created_at DESC, id DESC").
		Scopes(utils.Paginate(p)).Find(&list).Error
	return list, total, err
}

func (r *ReviewRepository) RestaurantRatings(ctx context.Context, restaurantID uint) ([]int, error) {
	var ratings []int
	err := r.DB.WithContext(ctx).Model(&models.RestaurantReview{}).
		Where("restaurant_id = ?", restaurantID).Pluck("rating", &ratings).Error
	return ratings, err
}
