package models

import "time"

// OrderItem snapshots the menu item's name and price at checkout; neither is
// ever recomputed from the live menu.
type OrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID      uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem        *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Name            string    `gorm:"type:varchar(255)" json:"name"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64   `gorm:"type:decimal(10,2);not null" json:"price_at_purchase"`
	CreatedAt       time.Time `json:"created_at"`
}
