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

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAdminService(f.db, f.audit)
	createRestaurant(t, f.db, f.owner.ID, false)
	placeOrder(t, f)

	_, err := svc.Dashboard(ctx, f.ownerActor())
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	stats, err := svc.Dashboard(ctx, f.adminActor())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalRestaurants)
	assert.Equal(t, int64(1), stats.PendingRestaurants)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Len(t, stats.RecentOrders, 1)
}

func TestUpdateUserRoleIsAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAdminService(f.db, f.audit)

	_, err := svc.UpdateUserRole(ctx, f.adminActor(), f.customer.ID, models.Role("ROOT"))
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	user, err := svc.UpdateUserRole(ctx, f.adminActor(), f.customer.ID, models.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, user.Role)

	logs, total, err := svc.Logs(ctx, f.adminActor(), repository.AdminLogFilter{Action: models.ActionUpdateUserRole}, utils.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, f.customer.ID, logs[0].TargetID)

	users, _, err := svc.Users(ctx, f.adminActor(), repository.UserFilter{Role: models.RoleOwner}, utils.Pagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAdminService(f.db, f.audit)
	placeOrder(t, f)

	assert.True(t, utils.IsKind(svc.DeleteUser(ctx, f.adminActor(), f.admin.ID), utils.KindInvalid))
	assert.True(t, utils.IsKind(svc.DeleteUser(ctx, f.adminActor(), f.owner.ID), utils.KindInvalid))
	assert.True(t, utils.IsKind(svc.DeleteUser(ctx, f.customerActor(), f.owner.ID), utils.KindForbidden))

	require.NoError(t, svc.DeleteUser(ctx, f.adminActor(), f.customer.ID))

	var carts int64
	require.NoError(t, f.db.Model(&models.Cart{}).Where("user_id = ?", f.customer.ID).Count(&carts).Error)
	assert.Zero(t, carts)
	assert.True(t, utils.IsKind(svc.DeleteUser(ctx, f.adminActor(), f.customer.ID), utils.KindNotFound))
}
