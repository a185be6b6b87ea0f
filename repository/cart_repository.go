package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository { return &CartRepository{DB: tx} }

// FindOrCreate returns the single cart for (user, restaurant). Concurrent
// callers converge on one row through the unique index.
func (r *CartRepository) FindOrCreate(ctx context.Context, userID, restaurantID uint) (*models.Cart, error) {
	db := r.DB.WithContext(ctx)
	fresh := models.Cart{UserID: userID, RestaurantID: restaurantID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&fresh).Error; err != nil {
		return nil, err
	}

	var cart models.Cart
	err := db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).First(&cart).Error
	return &cart, err
}

// FindForUser loads a cart with items and their menu items. A cart owned by
// someone else is reported as missing.
func (r *CartRepository) FindForUser(ctx context.Context, cartID, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Restaurant").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.MenuItem").
		Where("id = ? AND user_id = ?", cartID, userID).
		First(&cart).Error
	if err != nil {
		return nil, utils.NotFoundOr(err, "Cart not found")
	}
	return &cart, nil
}

func (r *CartRepository) ListForUser(ctx context.Context, userID uint) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Restaurant").
		Preload("Items.MenuItem").
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&carts).Error
	return carts, err
}

// AddItem inserts the line or adds quantity to the existing one in a single
// statement.
func (r *CartRepository) AddItem(ctx context.Context, cartID, menuItemID uint, quantity int) (*models.CartItem, error) {
	db := r.DB.WithContext(ctx)
	row := models.CartItem{CartID: cartID, MenuItemID: menuItemID, Quantity: quantity}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Omit(clause.Associations).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Preload("MenuItem").
		Where("cart_id = ? AND menu_item_id = ?", cartID, menuItemID).
		First(&item).Error
	return &item, err
}

// FindItemForUser loads a cart item only when its cart belongs to userID.
func (r *CartRepository) FindItemForUser(ctx context.Context, itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		Preload("MenuItem").
		First(&item).Error
	if err != nil {
		return nil, utils.NotFoundOr(err, "Cart item not found")
	}
	return &item, nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, item *models.CartItem, quantity int) error {
	item.Quantity = quantity
	return r.DB.WithContext(ctx).Model(item).Update("quantity", quantity).Error
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.DB.WithContext(ctx).Delete(&models.CartItem{}, itemID).Error
}

// ClearItems removes every item of the cart and leaves the cart itself.
func (r *CartRepository) ClearItems(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// DeleteItems removes the given items only if each still holds the quantity
// that was read, and reports how many rows went.
func (r *CartRepository) DeleteItems(ctx context.Context, cartID uint, items []models.CartItem) (int64, error) {
	db := r.DB.WithContext(ctx)
	var deleted int64
	for _, it := range items {
		res := db.Where("id = ? AND cart_id = ? AND quantity = ?", it.ID, cartID, it.Quantity).Delete(&models.CartItem{})
		if res.Error != nil {
			return deleted, res.Error
		}
		deleted += res.RowsAffected
	}
	return deleted, nil
}
