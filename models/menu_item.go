package models

import "time"

// MenuItem has no gorm default on IsAvailable: a zero-valued false would be
// replaced by the column default on insert.
type MenuItem struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	RestaurantID  uint          `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    *Restaurant   `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	CategoryID    uint          `gorm:"not null;index" json:"category_id"`
	Category      *MenuCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name          string        `gorm:"type:varchar(255);not null" json:"name"`
	Description   string        `gorm:"type:text" json:"description"`
	Price         float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable   bool          `gorm:"not null" json:"is_available"`
	ImageURL      string        `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	AverageRating float64       `gorm:"not null;default:0" json:"average_rating"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
