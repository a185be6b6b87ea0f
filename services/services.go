package services

import (
	"fmt"

	"github.com/yeremiapane/food-ordering-app/models"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Publisher pushes realtime events to connected users. The websocket hub
// implements it.
type Publisher interface {
	Publish(userIDs []uint, event string, payload interface{})
}

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusUpdated = "order_status_updated"
	EventOrderCancelled     = "order_cancelled"
)

func cartLockKey(cartID uint) string {
	return fmt.Sprintf("cart:%d", cartID)
}

func itemLockKey(itemID uint) string {
	return fmt.Sprintf("item:%d", itemID)
}

func restaurantLockKey(restaurantID uint) string {
	return fmt.Sprintf("restaurant:%d", restaurantID)
}
