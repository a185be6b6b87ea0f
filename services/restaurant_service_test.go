package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
)

func validRestaurantInput() RestaurantInput {
	return RestaurantInput{
		Name:        "Sederhana",
		Description: "Padang food",
		Address:     "Jl. Sudirman 10",
		Lat:         floatPtr(-6.21),
		Lng:         floatPtr(106.82),
	}
}

func TestCreateRestaurantWaitsForApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRestaurantService(f.db, f.audit, nil)

	rest, err := svc.Create(ctx, f.ownerActor(), validRestaurantInput(), nil)
	require.NoError(t, err)
	assert.False(t, rest.IsApproved)
	assert.Equal(t, f.owner.ID, rest.OwnerID)

	public, _, err := svc.ListApproved(ctx, "Sederhana", utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, public)

	_, err = svc.SetApproval(ctx, f.ownerActor(), rest.ID, true)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	approved, err := svc.SetApproval(ctx, f.adminActor(), rest.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	public, total, err := svc.ListApproved(ctx, "seder", utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, rest.ID, public[0].ID)

	logs, _, err := f.audit.List(ctx, repository.AdminLogFilter{TargetType: models.TargetRestaurant}, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionApproveRestaurant, logs[0].Action)
}

func TestCreateRestaurantValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRestaurantService(f.db, f.audit, nil)

	in := validRestaurantInput()
	in.Address = ""
	_, err := svc.Create(ctx, f.ownerActor(), in, nil)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	in = validRestaurantInput()
	in.Lat = floatPtr(120)
	_, err = svc.Create(ctx, f.ownerActor(), in, nil)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	in = validRestaurantInput()
	in.OwnerID = f.customer.ID
	_, err = svc.Create(ctx, f.adminActor(), in, nil)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	in.OwnerID = f.owner.ID
	rest, err := svc.Create(ctx, f.adminActor(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, rest.OwnerID)
}

func TestUpdateRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRestaurantService(f.db, f.audit, nil)

	name := "Renamed"
	_, err := svc.Update(ctx, f.customerActor(), f.restaurant.ID, RestaurantUpdate{Name: &name}, nil)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	rest, err := svc.Update(ctx, f.ownerActor(), f.restaurant.ID, RestaurantUpdate{Name: &name}, []string{"/uploads/restaurants/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", rest.Name)
	assert.Equal(t, []string{"/uploads/restaurants/a.jpg"}, rest.Images)
}

func TestDeleteRestaurantCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRestaurantService(f.db, f.audit, nil)
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Soto", 10, true)
	f.fillCart(t, map[*models.MenuItem]int{item: 1})

	require.NoError(t, svc.Delete(ctx, f.adminActor(), f.restaurant.ID))

	for _, model := range []interface{}{&models.Restaurant{}, &models.MenuCategory{}, &models.MenuItem{}, &models.Cart{}, &models.CartItem{}} {
		var n int64
		require.NoError(t, f.db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}

	_, err := svc.Get(ctx, f.restaurant.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
