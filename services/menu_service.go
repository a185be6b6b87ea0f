package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type MenuService struct {
	db          *gorm.DB
	menu        *repository.MenuRepository
	restaurants *repository.RestaurantRepository
	audit       *AuditService
	images      *utils.ImageStore
}

func NewMenuService(db *gorm.DB, audit *AuditService, images *utils.ImageStore) *MenuService {
	return &MenuService{
		db:          db,
		menu:        repository.NewMenuRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		audit:       audit,
		images:      images,
	}
}

// managedRestaurant loads the restaurant and checks the actor owns it or is
// an admin.
func (s *MenuService) managedRestaurant(ctx context.Context, actor Actor, restaurantID uint, action string) (*models.Restaurant, error) {
	rest, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !canManageRestaurant(actor, rest) {
		return nil, utils.Forbidden("Not authorized to %s for this restaurant", action)
	}
	return rest, nil
}

func (s *MenuService) auditAdmin(ctx context.Context, tx *gorm.DB, actor Actor, action, targetType string, targetID uint, details string) error {
	if !actor.IsAdmin() || s.audit == nil {
		return nil
	}
	return s.audit.Record(ctx, tx, actor.UserID, AuditEntry{
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
	})
}

type CategoryInput struct {
	RestaurantID uint   `json:"restaurant_id"`
	Name         string `json:"name"`
	Position     *int   `json:"position"`
}

func (s *MenuService) CreateCategory(ctx context.Context, actor Actor, in CategoryInput) (*models.MenuCategory, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.RestaurantID == 0 || in.Name == "" || in.Position == nil {
		return nil, utils.Invalid("Missing required fields")
	}
	if *in.Position < 1 {
		return nil, utils.Invalid("Position must be at least 1")
	}
	if _, err := s.managedRestaurant(ctx, actor, in.RestaurantID, "manage categories"); err != nil {
		return nil, err
	}

	cat := &models.MenuCategory{RestaurantID: in.RestaurantID, Name: in.Name, Position: *in.Position}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.menu.WithTx(tx).CreateCategory(ctx, cat); err != nil {
			return err
		}
		return s.auditAdmin(ctx, tx, actor, models.ActionManageCategory, models.TargetCategory, cat.ID, "created "+cat.Name)
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *MenuService) GetCategory(ctx context.Context, id uint) (*models.MenuCategory, error) {
	return s.menu.FindCategory(ctx, id)
}

func (s *MenuService) ListCategories(ctx context.Context, restaurantID uint) ([]models.MenuCategory, error) {
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.menu.ListCategories(ctx, restaurantID)
}

type CategoryUpdate struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

func (s *MenuService) UpdateCategory(ctx context.Context, actor Actor, id uint, in CategoryUpdate) (*models.MenuCategory, error) {
	cat, err := s.menu.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.managedRestaurant(ctx, actor, cat.RestaurantID, "manage categories"); err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, utils.Invalid("Name cannot be empty")
		}
		cat.Name = strings.TrimSpace(*in.Name)
	}
	if in.Position != nil {
		if *in.Position < 1 {
			return nil, utils.Invalid("Position must be at least 1")
		}
		cat.Position = *in.Position
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.menu.WithTx(tx).SaveCategory(ctx, cat); err != nil {
			return err
		}
		return s.auditAdmin(ctx, tx, actor, models.ActionManageCategory, models.TargetCategory, cat.ID, "updated "+cat.Name)
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses while menu items still reference the category.
func (s *MenuService) DeleteCategory(ctx context.Context, actor Actor, id uint) error {
	cat, err := s.menu.FindCategory(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.managedRestaurant(ctx, actor, cat.RestaurantID, "manage categories"); err != nil {
		return err
	}
	n, err := s.menu.CountItemsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.Invalid("Category still has %d menu items", n)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.menu.WithTx(tx).DeleteCategory(ctx, id); err != nil {
			return err
		}
		return s.auditAdmin(ctx, tx, actor, models.ActionManageCategory, models.TargetCategory, id, "deleted "+cat.Name)
	})
}

type PositionUpdate struct {
	ID       uint `json:"id"`
	Position int  `json:"position"`
}

// Reorder writes new positions. The caller must manage every category
// touched; positions need not be unique.
func (s *MenuService) Reorder(ctx context.Context, actor Actor, updates []PositionUpdate) error {
	if len(updates) == 0 {
		return utils.Invalid("Updates are required")
	}
	ids := make([]uint, 0, len(updates))
	for _, u := range updates {
		if u.ID == 0 || u.Position < 1 {
			return utils.Invalid("Each update needs an id and a position of at least 1")
		}
		ids = append(ids, u.ID)
	}

	cats, err := s.menu.FindCategories(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[uint]bool, len(cats))
	checked := make(map[uint]bool)
	for _, c := range cats {
		found[c.ID] = true
		if checked[c.RestaurantID] {
			continue
		}
		if _, err := s.managedRestaurant(ctx, actor, c.RestaurantID, "manage categories"); err != nil {
			return err
		}
		checked[c.RestaurantID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return utils.NotFound("Menu category %d not found", id)
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.menu.WithTx(tx)
		for _, u := range updates {
			if err := repo.UpdateCategoryPosition(ctx, u.ID, u.Position); err != nil {
				return err
			}
		}
		return nil
	})
}

type MenuItemInput struct {
	RestaurantID uint     `form:"restaurant_id" json:"restaurant_id"`
	CategoryID   uint     `form:"category_id" json:"category_id"`
	Name         string   `form:"name" json:"name"`
	Description  string   `form:"description" json:"description"`
	Price        *float64 `form:"price" json:"price"`
	IsAvailable  *bool    `form:"is_available" json:"is_available"`
}

// categoryOf checks that categoryID exists and belongs to restaurantID.
func (s *MenuService) categoryOf(ctx context.Context, restaurantID, categoryID uint) (*models.MenuCategory, error) {
	cat, err := s.menu.FindCategory(ctx, categoryID)
	if err != nil || cat.RestaurantID != restaurantID {
		if err != nil && !utils.IsKind(err, utils.KindNotFound) {
			return nil, err
		}
		return nil, utils.NotFound("Category not found or does not belong to this restaurant")
	}
	return cat, nil
}

func (s *MenuService) CreateItem(ctx context.Context, actor Actor, in MenuItemInput, imageURL string) (*models.MenuItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.RestaurantID == 0 || in.CategoryID == 0 || in.Name == "" || in.Price == nil {
		return nil, utils.Invalid("All fields are required")
	}
	if *in.Price < 0 {
		return nil, utils.Invalid("Price cannot be negative")
	}
	if _, err := s.managedRestaurant(ctx, actor, in.RestaurantID, "create items"); err != nil {
		return nil, err
	}
	if _, err := s.categoryOf(ctx, in.RestaurantID, in.CategoryID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		RestaurantID: in.RestaurantID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        *in.Price,
		IsAvailable:  true,
		ImageURL:     imageURL,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.menu.WithTx(tx).CreateItem(ctx, item); err != nil {
			return err
		}
		return s.auditAdmin(ctx, tx, actor, models.ActionManageMenuItem, models.TargetMenuItem, item.ID, "created "+item.Name)
	})
	if err != nil {
		return nil, err
	}
	return s.menu.FindItem(ctx, item.ID)
}

func (s *MenuService) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	return s.menu.FindItem(ctx, id)
}

func (s *MenuService) ListItems(ctx context.Context, f repository.MenuItemFilter, p utils.Pagination) ([]models.MenuItem, int64, error) {
	return s.menu.ListItems(ctx, f, p)
}

type MenuItemUpdate struct {
	CategoryID  *uint    `form:"category_id" json:"category_id"`
	Name        *string  `form:"name" json:"name"`
	Description *string  `form:"description" json:"description"`
	Price       *float64 `form:"price" json:"price"`
	IsAvailable *bool    `form:"is_available" json:"is_available"`
}

// UpdateItem applies the given fields. A non-empty imageURL replaces the
// current image.
func (s *MenuService) UpdateItem(ctx context.Context, actor Actor, id uint, in MenuItemUpdate, imageURL string) (*models.MenuItem, error) {
	item, err := s.menu.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.managedRestaurant(ctx, actor, item.RestaurantID, "update this item"); err != nil {
		return nil, err
	}

	if in.CategoryID != nil && *in.CategoryID != item.CategoryID {
		if _, err := s.categoryOf(ctx, item.RestaurantID, *in.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *in.CategoryID
		item.Category = nil
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, utils.Invalid("Name cannot be empty")
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, utils.Invalid("Price cannot be negative")
		}
		item.Price = *in.Price
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	oldImage := ""
	if imageURL != "" {
		oldImage, item.ImageURL = item.ImageURL, imageURL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.menu.WithTx(tx).UpdateItemDetails(ctx, item); err != nil {
			return err
		}
		return s.auditAdmin(ctx, tx, actor, models.ActionManageMenuItem, models.TargetMenuItem, item.ID, "updated "+item.Name)
	})
	if err != nil {
		return nil, err
	}
	if oldImage != "" && s.images != nil {
		s.images.Remove(oldImage)
	}
	return s.menu.FindItem(ctx, id)
}

func (s *MenuService) DeleteItem(ctx context.Context, actor Actor, id uint) error {
	item, err := s.menu.FindItem(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.managedRestaurant(ctx, actor, item.RestaurantID, "delete this item"); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.menu.WithTx(tx).DeleteItem(ctx, id); err != nil {
			return err
		}
		return s.auditAdmin(ctx, tx, actor, models.ActionManageMenuItem, models.TargetMenuItem, id, fmt.Sprintf("deleted %s", item.Name))
	})
	if err != nil {
		return err
	}
	if item.ImageURL != "" && s.images != nil {
		s.images.Remove(item.ImageURL)
	}
	return nil
}
