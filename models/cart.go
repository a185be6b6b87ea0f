package models

import "time"

type Cart struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;uniqueIndex:idx_cart_user_restaurant" json:"user_id"`
	RestaurantID uint        `gorm:"not null;uniqueIndex:idx_cart_user_restaurant" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Items        []CartItem  `gorm:"foreignKey:CartID" json:"cart_items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CartID     uint      `gorm:"not null;uniqueIndex:idx_cart_item_menu" json:"cart_id"`
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_cart_item_menu" json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
