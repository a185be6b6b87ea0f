package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
)

func (f *fixture) fillCart(t *testing.T, lines map[*models.MenuItem]int) uint {
	t.Helper()
	var cartID uint
	for item, qty := range lines {
		ci, err := f.cart.AddItem(context.Background(), f.customerActor(), AddToCartInput{
			RestaurantID: f.restaurant.ID,
			MenuItemID:   item.ID,
			Quantity:     intPtr(qty),
		})
		require.NoError(t, err)
		cartID = ci.CartID
	}
	return cartID
}

func TestCreateOrderFromCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Nasi Goreng", 10, true)
	b := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Es Teh", 5, true)
	cartID := f.fillCart(t, map[*models.MenuItem]int{a: 2, b: 1})

	order, err := f.orders.CreateFromCart(ctx, f.customerActor(), cartID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, f.restaurant.ID, order.RestaurantID)
	require.Len(t, order.Items, 2)
	prices := map[string]float64{}
	for _, it := range order.Items {
		prices[it.Name] = it.PriceAtPurchase
	}
	assert.Equal(t, map[string]float64{"Nasi Goreng": 10, "Es Teh": 5}, prices)
	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, models.StatusPlaced, order.StatusHistory[0].ToStatus)

	var remaining int64
	require.NoError(t, f.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	var carts int64
	require.NoError(t, f.db.Model(&models.Cart{}).Where("id = ?", cartID).Count(&carts).Error)
	assert.Equal(t, int64(1), carts, "cart itself is kept")

	require.Len(t, f.events.events, 1)
	assert.Equal(t, EventOrderPlaced, f.events.events[0].event)
	assert.ElementsMatch(t, []uint{f.customer.ID, f.owner.ID}, f.events.events[0].userIDs)
}

func TestOrderPriceIsSnapshotted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Sate", 12.5, true)
	cartID := f.fillCart(t, map[*models.MenuItem]int{a: 2})

	order, err := f.orders.CreateFromCart(ctx, f.customerActor(), cartID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.MenuItem{}).Where("id = ?", a.ID).Update("price", 99).Error)

	reloaded, err := f.orders.GetOrder(ctx, f.customerActor(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, reloaded.TotalAmount)
	assert.Equal(t, 12.5, reloaded.Items[0].PriceAtPurchase)
}

func TestCreateOrderRejectsUnavailableItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Soto", 10, true)
	b := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Bakso", 8, true)
	cartID := f.fillCart(t, map[*models.MenuItem]int{a: 1, b: 1})

	require.NoError(t, f.db.Model(&models.MenuItem{}).Where("id = ?", b.ID).Update("is_available", false).Error)

	_, err := f.orders.CreateFromCart(ctx, f.customerActor(), cartID)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Some items are not available", appErr.Message)
	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"Bakso"}, details["unavailable_items"])

	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var remaining int64
	require.NoError(t, f.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&remaining).Error)
	assert.Equal(t, int64(2), remaining, "cart is untouched")
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart, err := f.cart.GetOrCreateCart(ctx, f.customerActor(), f.restaurant.ID)
	require.NoError(t, err)

	_, err = f.orders.CreateFromCart(ctx, f.customerActor(), cart.ID)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))
	assert.Contains(t, err.Error(), "Cart is empty")
}

func TestCreateOrderForeignCartIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Soto", 10, true)
	cartID := f.fillCart(t, map[*models.MenuItem]int{a: 1})

	other := createUser(t, f.db, "other@test.io", models.RoleCustomer)
	_, err := f.orders.CreateFromCart(ctx, Actor{UserID: other.ID, Role: models.RoleCustomer}, cartID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestConcurrentCheckoutPlacesOneOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Mie Ayam", 15, true)
	cartID := f.fillCart(t, map[*models.MenuItem]int{a: 3})

	const attempts = 5
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.orders.CreateFromCart(ctx, f.customerActor(), cartID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, utils.IsKind(err, utils.KindInvalid), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)
}

func placeOrder(t *testing.T, f *fixture) *models.Order {
	t.Helper()
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Gado-gado", 20, true)
	cartID := f.fillCart(t, map[*models.MenuItem]int{item: 1})
	order, err := f.orders.CreateFromCart(context.Background(), f.customerActor(), cartID)
	require.NoError(t, err)
	return order
}

func TestCancelOrder(t *testing.T) {
	for _, status := range []models.OrderStatus{models.StatusPlaced, models.StatusPreparing, models.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			order := placeOrder(t, f)
			require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", status).Error)

			cancelled, err := f.orders.Cancel(context.Background(), f.customerActor(), order.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusCancelled, cancelled.Status)
		})
	}
}

func TestCancelDeliveredOrderFails(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f)
	require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", models.StatusDelivered).Error)

	_, err := f.orders.Cancel(context.Background(), f.customerActor(), order.ID)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))
	assert.Contains(t, err.Error(), "Cannot cancel delivered order")

	var reloaded models.Order
	require.NoError(t, f.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.StatusDelivered, reloaded.Status)
}

func TestCancelOtherUsersOrderIsForbidden(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f)

	_, err := f.orders.Cancel(context.Background(), f.ownerActor(), order.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := placeOrder(t, f)

	updated, err := f.orders.UpdateStatus(ctx, f.ownerActor(), order.ID, models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, models.StatusPlaced, updated.StatusHistory[1].FromStatus)
	assert.Equal(t, models.StatusPreparing, updated.StatusHistory[1].ToStatus)

	_, err = f.orders.UpdateStatus(ctx, f.customerActor(), order.ID, models.StatusDelivered)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = f.orders.UpdateStatus(ctx, f.ownerActor(), order.ID, models.OrderStatus("SHIPPED"))
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	_, err = f.orders.UpdateStatus(ctx, f.adminActor(), order.ID, models.StatusDelivered)
	require.NoError(t, err)

	logs, total, err := f.audit.List(ctx, repository.AdminLogFilter{}, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.ActionUpdateOrderStatus, logs[0].Action)
}

func TestGetOrderVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := placeOrder(t, f)

	for _, actor := range []Actor{f.customerActor(), f.ownerActor(), f.adminActor()} {
		_, err := f.orders.GetOrder(ctx, actor, order.ID)
		assert.NoError(t, err)
	}

	stranger := createUser(t, f.db, "stranger@test.io", models.RoleCustomer)
	_, err := f.orders.GetOrder(ctx, Actor{UserID: stranger.ID, Role: models.RoleCustomer}, order.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = f.orders.GetOrder(ctx, f.customerActor(), order.ID+100)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	placeOrder(t, f)
	placeOrder(t, f)

	mine, total, err := f.orders.ListUserOrders(ctx, f.customerActor(), "", utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)

	_, _, err = f.orders.ListRestaurantOrders(ctx, f.customerActor(), f.restaurant.ID, "", utils.Pagination{Page: 1, Limit: 10})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	placed, total, err := f.orders.ListRestaurantOrders(ctx, f.ownerActor(), f.restaurant.ID, models.StatusPlaced, utils.Pagination{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, placed, 1)
}
