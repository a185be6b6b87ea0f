package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	UserID        uint                 `gorm:"not null;index" json:"user_id"`
	User          *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID  uint                 `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    *Restaurant          `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Status        OrderStatus          `gorm:"type:varchar(20);not null;default:'PLACED';index" json:"status"`
	TotalAmount   float64              `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Items         []OrderItem          `gorm:"foreignKey:OrderID" json:"order_items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ReceiptNumber is the human-facing order reference printed on receipts.
func (o *Order) ReceiptNumber() string {
	return fmt.Sprintf("ORD/%s/%06d", o.CreatedAt.Format("20060102"), o.ID)
}

// OrderStatusHistory records every status change of an order.
type OrderStatusHistory struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderID    uint        `gorm:"not null;index" json:"order_id"`
	FromStatus OrderStatus `gorm:"type:varchar(20)" json:"from_status,omitempty"`
	ToStatus   OrderStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	ChangedBy  uint        `gorm:"not null" json:"changed_by"`
	Note       string      `gorm:"type:varchar(255)" json:"note,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
