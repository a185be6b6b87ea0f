package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

type OrderService struct {
	db          *gorm.DB
	carts       *repository.CartRepository
	orders      *repository.OrderRepository
	restaurants *repository.RestaurantRepository
	audit       *AuditService
	events      Publisher
	locks       *utils.KeyedMutex
}

// NewOrderService builds the service. events may be nil.
func NewOrderService(db *gorm.DB, locks *utils.KeyedMutex, audit *AuditService, events Publisher) *OrderService {
	return &OrderService{
		db:          db,
		carts:       repository.NewCartRepository(db),
		orders:      repository.NewOrderRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		audit:       audit,
		events:      events,
		locks:       locks,
	}
}

// CreateFromCart turns the caller's cart into a PLACED order priced from the
// current menu. Either the order is created and the cart emptied, or nothing
// changes.
func (s *OrderService) CreateFromCart(ctx context.Context, actor Actor, cartID uint) (*models.Order, error) {
	unlock := s.locks.Lock(cartLockKey(cartID))
	defer unlock()

	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		cart, err := carts.FindForUser(ctx, cartID, actor.UserID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return utils.Invalid("Cart is empty")
		}

		total := decimal.Zero
		var unavailable []string
		lines := make([]models.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			mi := ci.MenuItem
			if mi == nil {
				unavailable = append(unavailable, fmt.Sprintf("menu item #%d", ci.MenuItemID))
				continue
			}
			if !mi.IsAvailable || mi.RestaurantID != cart.RestaurantID {
				unavailable = append(unavailable, mi.Name)
				continue
			}
			total = total.Add(utils.LineTotal(mi.Price, ci.Quantity))
			lines = append(lines, models.OrderItem{
				MenuItemID:      mi.ID,
				Name:            mi.Name,
				Quantity:        ci.Quantity,
				PriceAtPurchase: mi.Price,
			})
		}
		if len(unavailable) > 0 {
			return utils.Invalid("Some items are not available").
				WithDetails(map[string]interface{}{"unavailable_items": unavailable})
		}

		order := &models.Order{
			UserID:       actor.UserID,
			RestaurantID: cart.RestaurantID,
			Status:       models.StatusPlaced,
			TotalAmount:  total.Round(2).InexactFloat64(),
			Items:        lines,
			StatusHistory: []models.OrderStatusHistory{{
				ToStatus:  models.StatusPlaced,
				ChangedBy: actor.UserID,
				Note:      "Order placed",
			}},
		}
		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}

		deleted, err := carts.DeleteItems(ctx, cart.ID, cart.Items)
		if err != nil {
			return err
		}
		if deleted != int64(len(cart.Items)) {
			return utils.Invalid("Cart changed during checkout, please try again")
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(map[string]interface{}{
		"order_id":      order.ID,
		"user_id":       order.UserID,
		"restaurant_id": order.RestaurantID,
		"total":         order.TotalAmount,
	}).Info("order placed")
	s.publish(EventOrderPlaced, order)
	return order, nil
}

// GetOrder returns one order if the actor may see it: its customer, the
// restaurant's owner, or an admin.
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || order.UserID == actor.UserID {
		return order, nil
	}
	if order.Restaurant != nil && order.Restaurant.OwnerID == actor.UserID {
		return order, nil
	}
	return nil, utils.Forbidden("Not authorized to view this order")
}

func (s *OrderService) ListUserOrders(ctx context.Context, actor Actor, status models.OrderStatus, p utils.Pagination) ([]models.Order, int64, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, 0, utils.Invalid("Invalid status filter")
	}
	return s.orders.List(ctx, repository.OrderFilter{UserID: actor.UserID, Status: status}, p)
}

// ListRestaurantOrders is limited to the restaurant's owner and admins.
func (s *OrderService) ListRestaurantOrders(ctx context.Context, actor Actor, restaurantID uint, status models.OrderStatus, p utils.Pagination) ([]models.Order, int64, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, 0, utils.Invalid("Invalid status filter")
	}
	rest, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, 0, err
	}
	if rest.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, 0, utils.Forbidden("Not authorized to view restaurant orders")
	}
	return s.orders.List(ctx, repository.OrderFilter{RestaurantID: restaurantID, Status: status}, p)
}

// Cancel lets the order's own customer cancel anything not yet delivered.
func (s *OrderService) Cancel(ctx context.Context, actor Actor, orderID uint) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		o, err := orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != actor.UserID {
			return utils.Forbidden("Not authorized to cancel this order")
		}
		if o.Status == models.StatusDelivered {
			return utils.Invalid("Cannot cancel delivered order")
		}
		if o.Status == models.StatusCancelled {
			order = o
			return nil
		}
		ok, err := orders.UpdateStatus(ctx, o.ID, o.Status, models.StatusCancelled, actor.UserID, "Cancelled by customer")
		if err != nil {
			return err
		}
		if !ok {
			return utils.Invalid("Order status changed, please try again")
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if order, err = s.orders.FindByID(ctx, order.ID); err != nil {
		return nil, err
	}
	s.publish(EventOrderCancelled, order)
	return order, nil
}

// UpdateStatus sets any of the four statuses. Only the restaurant's owner or
// an admin may do so; admin changes are audit logged.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, utils.Invalid("Valid status is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		o, err := orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if (o.Restaurant == nil || o.Restaurant.OwnerID != actor.UserID) && !actor.IsAdmin() {
			return utils.Forbidden("Not authorized to update this order")
		}
		if o.Status == status {
			return nil
		}
		ok, err := orders.UpdateStatus(ctx, o.ID, o.Status, status, actor.UserID, "")
		if err != nil {
			return err
		}
		if !ok {
			return utils.Invalid("Order status changed, please try again")
		}
		if actor.IsAdmin() && s.audit != nil {
			return s.audit.Record(ctx, tx, actor.UserID, AuditEntry{
				Action:     models.ActionUpdateOrderStatus,
				TargetType: models.TargetOrder,
				TargetID:   o.ID,
				Details:    fmt.Sprintf("%s -> %s", o.Status, status),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(EventOrderStatusUpdated, order)
	return order, nil
}

func (s *OrderService) publish(event string, order *models.Order) {
	if s.events == nil {
		return
	}
	recipients := []uint{order.UserID}
	if order.Restaurant != nil && order.Restaurant.OwnerID != order.UserID {
		recipients = append(recipients, order.Restaurant.OwnerID)
	}
	s.events.Publish(recipients, event, map[string]interface{}{
		"order_id":      order.ID,
		"restaurant_id": order.RestaurantID,
		"status":        order.Status,
		"total_amount":  order.TotalAmount,
	})
}
