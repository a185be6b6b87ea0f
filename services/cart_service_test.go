package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
)

func TestAddItemAccumulatesQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Rendang", 30, true)
	in := AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: item.ID, Quantity: intPtr(2)}

	_, err := f.cart.AddItem(ctx, f.customerActor(), in)
	require.NoError(t, err)
	in.Quantity = intPtr(3)
	line, err := f.cart.AddItem(ctx, f.customerActor(), in)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)

	cart, err := f.cart.GetOrCreateCart(ctx, f.customerActor(), f.restaurant.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemDefaultsToOne(t *testing.T) {
	f := newFixture(t)
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Kerupuk", 2, true)

	line, err := f.cart.AddItem(context.Background(), f.customerActor(), AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: item.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	available := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Tempe", 3, true)
	soldOut := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Tahu", 3, false)
	other := createRestaurant(t, f.db, f.owner.ID, true)

	cases := []struct {
		name string
		in   AddToCartInput
		kind utils.ErrorKind
	}{
		{"zero quantity", AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: available.ID, Quantity: intPtr(0)}, utils.KindInvalid},
		{"negative quantity", AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: available.ID, Quantity: intPtr(-1)}, utils.KindInvalid},
		{"unavailable item", AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: soldOut.ID, Quantity: intPtr(1)}, utils.KindInvalid},
		{"wrong restaurant", AddToCartInput{RestaurantID: other.ID, MenuItemID: available.ID, Quantity: intPtr(1)}, utils.KindInvalid},
		{"missing item", AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: 9999, Quantity: intPtr(1)}, utils.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.cart.AddItem(ctx, f.customerActor(), tc.in)
			require.Error(t, err)
			assert.True(t, utils.IsKind(err, tc.kind), "got %v", err)
		})
	}
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Pempek", 4, true)

	const adds = 10
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.cart.AddItem(ctx, f.customerActor(), AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: item.ID, Quantity: intPtr(1)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var carts int64
	require.NoError(t, f.db.Model(&models.Cart{}).Where("user_id = ?", f.customer.ID).Count(&carts).Error)
	assert.Equal(t, int64(1), carts)

	var line models.CartItem
	require.NoError(t, f.db.Where("menu_item_id = ?", item.ID).First(&line).Error)
	assert.Equal(t, adds, line.Quantity)
}

func TestOneCartPerRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	second := createRestaurant(t, f.db, f.owner.ID, true)

	a, err := f.cart.GetOrCreateCart(ctx, f.customerActor(), f.restaurant.ID)
	require.NoError(t, err)
	b, err := f.cart.GetOrCreateCart(ctx, f.customerActor(), f.restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	c, err := f.cart.GetOrCreateCart(ctx, f.customerActor(), second.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)

	carts, err := f.cart.ListCarts(ctx, f.customerActor())
	require.NoError(t, err)
	assert.Len(t, carts, 2)
}

func TestUpdateAndRemoveCartItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Lontong", 6, true)
	line, err := f.cart.AddItem(ctx, f.customerActor(), AddToCartInput{RestaurantID: f.restaurant.ID, MenuItemID: item.ID, Quantity: intPtr(1)})
	require.NoError(t, err)

	updated, err := f.cart.UpdateItemQuantity(ctx, f.customerActor(), line.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = f.cart.UpdateItemQuantity(ctx, f.customerActor(), line.ID, 0)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	// Someone else's cart line looks missing.
	_, err = f.cart.UpdateItemQuantity(ctx, f.ownerActor(), line.ID, 2)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.True(t, utils.IsKind(f.cart.RemoveItem(ctx, f.ownerActor(), line.ID), utils.KindNotFound))

	require.NoError(t, f.cart.RemoveItem(ctx, f.customerActor(), line.ID))
	assert.True(t, utils.IsKind(f.cart.RemoveItem(ctx, f.customerActor(), line.ID), utils.KindNotFound))
}

func TestClearCartKeepsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Opor", 9, true)
	b := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Ketupat", 3, true)
	cartID := f.fillCart(t, map[*models.MenuItem]int{a: 1, b: 2})

	require.NoError(t, f.cart.ClearCart(ctx, f.customerActor(), cartID))

	cart, err := f.cart.GetOrCreateCart(ctx, f.customerActor(), f.restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, cartID, cart.ID)
	assert.Empty(t, cart.Items)
}
