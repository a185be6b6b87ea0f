package models

import "time"

type ItemReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_item_review_author;index" json:"item_id"`
	Item      *MenuItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_item_review_author" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RestaurantReview struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RestaurantID uint        `gorm:"not null;uniqueIndex:idx_restaurant_review_author;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	UserID       uint        `gorm:"not null;uniqueIndex:idx_restaurant_review_author" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating       int         `gorm:"not null;index" json:"rating"`
	Comment      string      `gorm:"type:varchar(500)" json:"comment,omitempty"`
	Images       []string    `gorm:"type:text;serializer:json" json:"images"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
