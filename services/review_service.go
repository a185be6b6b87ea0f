package services

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

// ReviewService manages item and restaurant reviews and keeps the stored
// average ratings in step with them. Recomputation for one target is
// serialized.
type ReviewService struct {
	db          *gorm.DB
	reviews     *repository.ReviewRepository
	menu        *repository.MenuRepository
	restaurants *repository.RestaurantRepository
	images      *utils.ImageStore
	locks       *utils.KeyedMutex
}

// NewReviewService builds the service. images may be nil when uploads are
// not used.
func NewReviewService(db *gorm.DB, images *utils.ImageStore) *ReviewService {
	return &ReviewService{
		db:          db,
		reviews:     repository.NewReviewRepository(db),
		menu:        repository.NewMenuRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		images:      images,
		locks:       utils.NewKeyedMutex(),
	}
}

type ReviewInput struct {
	Rating  *int    `json:"rating" form:"rating"`
	Comment *string `json:"comment" form:"comment"`
}

func (s *ReviewService) recomputeItem(ctx context.Context, tx *gorm.DB, itemID uint) error {
	ratings, err := s.reviews.WithTx(tx).ItemRatings(ctx, itemID)
	if err != nil {
		return err
	}
	return s.menu.WithTx(tx).UpdateItemRating(ctx, itemID, AverageRating(ratings))
}

func (s *ReviewService) recomputeRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uint) error {
	ratings, err := s.reviews.WithTx(tx).RestaurantRatings(ctx, restaurantID)
	if err != nil {
		return err
	}
	return s.restaurants.WithTx(tx).UpdateRating(ctx, restaurantID, AverageRating(ratings), len(ratings))
}

func (s *ReviewService) CreateItemReview(ctx context.Context, actor Actor, itemID uint, in ReviewInput) (*models.ItemReview, error) {
	if itemID == 0 || in.Rating == nil {
		return nil, utils.Invalid("Item ID and rating are required")
	}
	if !validRating(*in.Rating) {
		return nil, utils.Invalid("Rating must be between 1 and 5")
	}
	if _, err := s.menu.FindItem(ctx, itemID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(itemLockKey(itemID))
	defer unlock()

	rv := &models.ItemReview{ItemID: itemID, UserID: actor.UserID, Rating: *in.Rating}
	if in.Comment != nil {
		rv.Comment = *in.Comment
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := s.reviews.WithTx(tx)
		exists, err := reviews.HasItemReview(ctx, itemID, actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			return utils.Invalid("You have already reviewed this item")
		}
		if err := reviews.CreateItemReview(ctx, rv); err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.Invalid("You have already reviewed this item")
			}
			return err
		}
		return s.recomputeItem(ctx, tx, itemID)
	})
	if err != nil {
		return nil, err
	}
	return s.reviews.FindItemReview(ctx, rv.ID)
}

func (s *ReviewService) UpdateItemReview(ctx context.Context, actor Actor, reviewID uint, in ReviewInput) (*models.ItemReview, error) {
	if in.Rating != nil && !validRating(*in.Rating) {
		return nil, utils.Invalid("Rating must be between 1 and 5")
	}
	rv, err := s.reviews.FindItemReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.UserID != actor.UserID {
		return nil, utils.Forbidden("Not authorized to update this review")
	}

	unlock := s.locks.Lock(itemLockKey(rv.ItemID))
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := s.reviews.WithTx(tx)
		// re-read under the lock: a delete may have won the race
		current, err := reviews.FindItemReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if in.Rating != nil {
			current.Rating = *in.Rating
		}
		if in.Comment != nil {
			current.Comment = *in.Comment
		}
		if err := reviews.UpdateItemReview(ctx, current); err != nil {
			return err
		}
		return s.recomputeItem(ctx, tx, current.ItemID)
	})
	if err != nil {
		return nil, err
	}
	return s.reviews.FindItemReview(ctx, rv.ID)
}

func (s *ReviewService) DeleteItemReview(ctx context.Context, actor Actor, reviewID uint) error {
	rv, err := s.reviews.FindItemReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != actor.UserID && !actor.IsAdmin() {
		return utils.Forbidden("Not authorized to delete this review")
	}

	unlock := s.locks.Lock(itemLockKey(rv.ItemID))
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviews.WithTx(tx).DeleteItemReview(ctx, rv.ID); err != nil {
			return err
		}
		return s.recomputeItem(ctx, tx, rv.ItemID)
	})
}

func (s *ReviewService) GetItemReview(ctx context.Context, reviewID uint) (*models.ItemReview, error) {
	return s.reviews.FindItemReview(ctx, reviewID)
}

func (s *ReviewService) ListItemReviews(ctx context.Context, f repository.ReviewFilter, p utils.Pagination) ([]models.ItemReview, int64, error) {
	return s.reviews.ListItemReviews(ctx, f, p)
}

// CreateRestaurantReview requires an approved restaurant. images are public
// paths of files already stored.
func (s *ReviewService) CreateRestaurantReview(ctx context.Context, actor Actor, restaurantID uint, in ReviewInput, images []string) (*models.RestaurantReview, error) {
	if restaurantID == 0 || in.Rating == nil {
		return nil, utils.Invalid("Restaurant ID and rating are required")
	}
	if !validRating(*in.Rating) {
		return nil, utils.Invalid("Rating must be between 1 and 5")
	}
	rest, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !rest.IsApproved {
		return nil, utils.Invalid("Cannot review unapproved restaurant")
	}

	unlock := s.locks.Lock(restaurantLockKey(restaurantID))
	defer unlock()

	if images == nil {
		images = []string{}
	}
	rv := &models.RestaurantReview{RestaurantID: restaurantID, UserID: actor.UserID, Rating: *in.Rating, Images: images}
	if in.Comment != nil {
		rv.Comment = *in.Comment
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := s.reviews.WithTx(tx)
		exists, err := reviews.HasRestaurantReview(ctx, restaurantID, actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			return utils.Invalid("You have already reviewed this restaurant")
		}
		if err := reviews.CreateRestaurantReview(ctx, rv); err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.Invalid("You have already reviewed this restaurant")
			}
			return err
		}
		return s.recomputeRestaurant(ctx, tx, restaurantID)
	})
	if err != nil {
		return nil, err
	}
	return s.reviews.FindRestaurantReview(ctx, rv.ID)
}

// UpdateRestaurantReview appends newImages to the existing ones.
func (s *ReviewService) UpdateRestaurantReview(ctx context.Context, actor Actor, reviewID uint, in ReviewInput, newImages []string) (*models.RestaurantReview, error) {
	if in.Rating != nil && !validRating(*in.Rating) {
		return nil, utils.Invalid("Rating must be between 1 and 5")
	}
	rv, err := s.reviews.FindRestaurantReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.UserID != actor.UserID {
		return nil, utils.Forbidden("Not authorized to update this review")
	}

	unlock := s.locks.Lock(restaurantLockKey(rv.RestaurantID))
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := s.reviews.WithTx(tx)
		current, err := reviews.FindRestaurantReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if in.Rating != nil {
			current.Rating = *in.Rating
		}
		if in.Comment != nil {
			current.Comment = *in.Comment
		}
		current.Images = append(current.Images, newImages...)
		if err := reviews.UpdateRestaurantReview(ctx, current); err != nil {
			return err
		}
		return s.recomputeRestaurant(ctx, tx, current.RestaurantID)
	})
	if err != nil {
		return nil, err
	}
	return s.reviews.FindRestaurantReview(ctx, rv.ID)
}

func (s *ReviewService) DeleteRestaurantReview(ctx context.Context, actor Actor, reviewID uint) error {
	rv, err := s.reviews.FindRestaurantReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != actor.UserID && !actor.IsAdmin() {
		return utils.Forbidden("Not authorized to delete this review")
	}

	unlock := s.locks.Lock(restaurantLockKey(rv.RestaurantID))
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviews.WithTx(tx).DeleteRestaurantReview(ctx, rv.ID); err != nil {
			return err
		}
		return s.recomputeRestaurant(ctx, tx, rv.RestaurantID)
	})
	if err != nil {
		return err
	}
	if s.images != nil {
		s.images.Remove(rv.Images...)
	}
	return nil
}

func (s *ReviewService) GetRestaurantReview(ctx context.Context, reviewID uint) (*models.RestaurantReview, error) {
	return s.reviews.FindRestaurantReview(ctx, reviewID)
}

func (s *ReviewService) ListRestaurantReviews(ctx context.Context, f repository.ReviewFilter, p utils.Pagination) ([]models.RestaurantReview, int64, error) {
	if f.Rating != 0 && !validRating(f.Rating) {
		return nil, 0, utils.Invalid("Rating must be between 1 and 5")
	}
	return s.reviews.ListRestaurantReviews(ctx, f, p)
}
