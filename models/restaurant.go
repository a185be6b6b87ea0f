package models

import "time"

type Restaurant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OwnerID       uint      `gorm:"not null;index" json:"owner_id"`
	Owner         *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Address       string    `gorm:"type:varchar(255);not null" json:"address"`
	Lat           float64   `gorm:"not null" json:"lat"`
	Lng           float64   `gorm:"not null" json:"lng"`
	IsApproved    bool      `gorm:"not null;default:false;index" json:"is_approved"`
	AverageRating float64   `gorm:"not null;default:0" json:"average_rating"`
	RatingCount   int       `gorm:"not null;default:0" json:"rating_count"`
	Images        []string  `gorm:"type:text;serializer:json" json:"images"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
