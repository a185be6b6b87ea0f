package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type RestaurantService struct {
	db          *gorm.DB
	restaurants *repository.RestaurantRepository
	users       *repository.UserRepository
	audit       *AuditService
	images      *utils.ImageStore
}

func NewRestaurantService(db *gorm.DB, audit *AuditService, images *utils.ImageStore) *RestaurantService {
	return &RestaurantService{
		db:          db,
		restaurants: repository.NewRestaurantRepository(db),
		users:       repository.NewUserRepository(db),
		audit:       audit,
		images:      images,
	}
}

type RestaurantInput struct {
	Name        string   `form:"name" json:"name"`
	Description string   `form:"description" json:"description"`
	Address     string   `form:"address" json:"address"`
	Lat         *float64 `form:"lat" json:"lat"`
	Lng         *float64 `form:"lng" json:"lng"`
	OwnerID     uint     `form:"owner_id" json:"owner_id"`
}

type RestaurantUpdate struct {
	Name        *string  `form:"name" json:"name"`
	Description *string  `form:"description" json:"description"`
	Address     *string  `form:"address" json:"address"`
	Lat         *float64 `form:"lat" json:"lat"`
	Lng         *float64 `form:"lng" json:"lng"`
}

func canManageRestaurant(actor Actor, r *models.Restaurant) bool {
	return actor.IsAdmin() || r.OwnerID == actor.UserID
}

// Create registers a restaurant owned by the caller. Admins may create one on
// behalf of another owner. New restaurants wait for approval.
func (s *RestaurantService) Create(ctx context.Context, actor Actor, in RestaurantInput, images []string) (*models.Restaurant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Address) == "" || in.Lat == nil || in.Lng == nil {
		return nil, utils.Invalid("Missing required fields")
	}
	if *in.Lat < -90 || *in.Lat > 90 || *in.Lng < -180 || *in.Lng > 180 {
		return nil, utils.Invalid("Invalid coordinates")
	}

	ownerID := actor.UserID
	if actor.IsAdmin() && in.OwnerID != 0 {
		owner, err := s.users.FindByID(ctx, in.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner.Role != models.RoleOwner {
			return nil, utils.Invalid("Restaurant owner must have the OWNER role")
		}
		ownerID = owner.ID
	}
	if images == nil {
		images = []string{}
	}

	rest := &models.Restaurant{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Lat:         *in.Lat,
		Lng:         *in.Lng,
		Images:      images,
	}
	if err := s.restaurants.Create(ctx, rest); err != nil {
		return nil, err
	}
	return s.restaurants.FindByID(ctx, rest.ID)
}

func (s *RestaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	return s.restaurants.FindByID(ctx, id)
}

// ListApproved is the public listing.
func (s *RestaurantService) ListApproved(ctx context.Context, search string, p utils.Pagination) ([]models.Restaurant, int64, error) {
	approved := true
	return s.restaurants.List(ctx, repository.RestaurantFilter{Approved: &approved, Search: strings.TrimSpace(search)}, p)
}

func (s *RestaurantService) ListOwned(ctx context.Context, actor Actor, p utils.Pagination) ([]models.Restaurant, int64, error) {
	return s.restaurants.List(ctx, repository.RestaurantFilter{OwnerID: actor.UserID}, p)
}

func (s *RestaurantService) ListPending(ctx context.Context, p utils.Pagination) ([]models.Restaurant, int64, error) {
	pending := false
	return s.restaurants.List(ctx, repository.RestaurantFilter{Approved: &pending}, p)
}

// Update changes the given fields and appends newImages.
func (s *RestaurantService) Update(ctx context.Context, actor Actor, id uint, in RestaurantUpdate, newImages []string) (*models.Restaurant, error) {
	rest, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageRestaurant(actor, rest) {
		return nil, utils.Forbidden("Not authorized to update this restaurant")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, utils.Invalid("Name cannot be empty")
		}
		rest.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		rest.Description = *in.Description
	}
	if in.Address != nil {
		rest.Address = *in.Address
	}
	if in.Lat != nil {
		rest.Lat = *in.Lat
	}
	if in.Lng != nil {
		rest.Lng = *in.Lng
	}
	rest.Images = append(rest.Images, newImages...)

	if err := s.restaurants.UpdateDetails(ctx, rest); err != nil {
		return nil, err
	}
	return s.restaurants.FindByID(ctx, id)
}

// Delete removes the restaurant with its menu, carts and reviews.
func (s *RestaurantService) Delete(ctx context.Context, actor Actor, id uint) error {
	rest, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManageRestaurant(actor, rest) {
		return utils.Forbidden("Not authorized to delete this restaurant")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.restaurants.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if actor.IsAdmin() {
			return s.audit.Record(ctx, tx, actor.UserID, AuditEntry{
				Action:     models.ActionDeleteRestaurant,
				TargetType: models.TargetRestaurant,
				TargetID:   id,
				Details:    rest.Name,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.images != nil {
		s.images.Remove(rest.Images...)
	}
	return nil
}

// SetApproval is admin only and always audit logged.
func (s *RestaurantService) SetApproval(ctx context.Context, actor Actor, id uint, approved bool) (*models.Restaurant, error) {
	if !actor.IsAdmin() {
		return nil, utils.NoPermission()
	}
	rest, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	action := models.ActionApproveRestaurant
	if !approved {
		action = models.ActionRejectRestaurant
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.restaurants.WithTx(tx).SetApproved(ctx, id, approved); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, actor.UserID, AuditEntry{
			Action:     action,
			TargetType: models.TargetRestaurant,
			TargetID:   id,
			Details:    rest.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.restaurants.FindByID(ctx, id)
}
