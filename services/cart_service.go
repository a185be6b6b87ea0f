package services

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type CartService struct {
	db          *gorm.DB
	carts       *repository.CartRepository
	menu        *repository.MenuRepository
	restaurants *repository.RestaurantRepository
	locks       *utils.KeyedMutex
}

// NewCartService shares locks with the order service so cart edits and
// checkout of the same cart never interleave.
func NewCartService(db *gorm.DB, locks *utils.KeyedMutex) *CartService {
	return &CartService{
		db:          db,
		carts:       repository.NewCartRepository(db),
		menu:        repository.NewMenuRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		locks:       locks,
	}
}

// GetOrCreateCart returns the caller's cart for a restaurant, creating it on
// first use.
func (s *CartService) GetOrCreateCart(ctx context.Context, actor Actor, restaurantID uint) (*models.Cart, error) {
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	cart, err := s.carts.FindOrCreate(ctx, actor.UserID, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.carts.FindForUser(ctx, cart.ID, actor.UserID)
}

type AddToCartInput struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
	MenuItemID   uint `json:"menu_item_id" binding:"required"`
	Quantity     *int `json:"quantity"`
}

// AddItem adds quantity to the caller's cart, one when it is omitted.
// Repeated adds of the same menu item accumulate on one line.
func (s *CartService) AddItem(ctx context.Context, actor Actor, in AddToCartInput) (*models.CartItem, error) {
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 {
		return nil, utils.Invalid("Quantity must be at least 1")
	}

	item, err := s.menu.FindItem(ctx, in.MenuItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, utils.Invalid("Menu item is not available")
	}
	if item.RestaurantID != in.RestaurantID {
		return nil, utils.Invalid("Menu item does not belong to this restaurant")
	}

	cart, err := s.carts.FindOrCreate(ctx, actor.UserID, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(cartLockKey(cart.ID))
	defer unlock()
	return s.carts.AddItem(ctx, cart.ID, item.ID, quantity)
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, actor Actor, cartItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, utils.Invalid("Quantity must be at least 1")
	}
	item, err := s.carts.FindItemForUser(ctx, cartItemID, actor.UserID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(cartLockKey(item.CartID))
	defer unlock()
	if err := s.carts.UpdateItemQuantity(ctx, item, quantity); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, actor Actor, cartItemID uint) error {
	item, err := s.carts.FindItemForUser(ctx, cartItemID, actor.UserID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(cartLockKey(item.CartID))
	defer unlock()
	return s.carts.DeleteItem(ctx, item.ID)
}

// ClearCart empties the cart but keeps the cart itself.
func (s *CartService) ClearCart(ctx context.Context, actor Actor, cartID uint) error {
	cart, err := s.carts.FindForUser(ctx, cartID, actor.UserID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(cartLockKey(cart.ID))
	defer unlock()
	return s.carts.ClearItems(ctx, cart.ID)
}

func (s *CartService) ListCarts(ctx context.Context, actor Actor) ([]models.Cart, error) {
	return s.carts.ListForUser(ctx, actor.UserID)
}
