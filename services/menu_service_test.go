package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/repository"
	"github.com/yeremiapane/food-ordering-app/utils"
)

func floatPtr(v float64) *float64 { return &v }

func TestMenuItemLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewMenuService(f.db, f.audit, nil)

	item, err := svc.CreateItem(ctx, f.ownerActor(), MenuItemInput{
		RestaurantID: f.restaurant.ID,
		CategoryID:   f.category.ID,
		Name:         "Ayam Bakar",
		Price:        floatPtr(22),
	}, "")
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)

	_, err = svc.CreateItem(ctx, f.customerActor(), MenuItemInput{
		RestaurantID: f.restaurant.ID, CategoryID: f.category.ID, Name: "x", Price: floatPtr(1),
	}, "")
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	other := createRestaurant(t, f.db, f.owner.ID, true)
	foreign := createCategory(t, f.db, other.ID, "Drinks")
	_, err = svc.CreateItem(ctx, f.ownerActor(), MenuItemInput{
		RestaurantID: f.restaurant.ID, CategoryID: foreign.ID, Name: "x", Price: floatPtr(1),
	}, "")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	off := false
	updated, err := svc.UpdateItem(ctx, f.ownerActor(), item.ID, MenuItemUpdate{IsAvailable: &off, Price: floatPtr(25)}, "")
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, 25.0, updated.Price)

	available := true
	items, total, err := svc.ListItems(ctx, repository.MenuItemFilter{RestaurantID: f.restaurant.ID, IsAvailable: &available}, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	require.NoError(t, svc.DeleteItem(ctx, f.adminActor(), item.ID))
	_, err = svc.GetItem(ctx, item.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	logs, _, err := f.audit.List(ctx, repository.AdminLogFilter{Action: models.ActionManageMenuItem}, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, logs, 1, "only the admin action is logged")
}

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewMenuService(f.db, f.audit, nil)

	_, err := svc.CreateCategory(ctx, f.ownerActor(), CategoryInput{RestaurantID: f.restaurant.ID, Name: "Desserts"})
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	desserts, err := svc.CreateCategory(ctx, f.ownerActor(), CategoryInput{RestaurantID: f.restaurant.ID, Name: "Desserts", Position: intPtr(2)})
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(ctx, f.ownerActor(), []PositionUpdate{
		{ID: desserts.ID, Position: 1},
		{ID: f.category.ID, Position: 2},
	}))
	cats, err := svc.ListCategories(ctx, f.restaurant.ID)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, desserts.ID, cats[0].ID)

	err = svc.Reorder(ctx, f.customerActor(), []PositionUpdate{{ID: desserts.ID, Position: 3}})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	createMenuItem(t, f.db, f.restaurant.ID, desserts.ID, "Klepon", 5, true)
	err = svc.DeleteCategory(ctx, f.ownerActor(), desserts.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	empty, err := svc.CreateCategory(ctx, f.ownerActor(), CategoryInput{RestaurantID: f.restaurant.ID, Name: "Seasonal", Position: intPtr(3)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, f.ownerActor(), empty.ID))
}

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	xl := excelize.NewFile()
	defer xl.Close()
	sheet := xl.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, xl.SetSheetRow(sheet, cell, &row))
	}
	buf, err := xl.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewMenuService(f.db, f.audit, nil)

	other := createRestaurant(t, f.db, f.owner.ID, true)
	foreign := createCategory(t, f.db, other.ID, "Elsewhere")

	wb := buildWorkbook(t, [][]interface{}{
		{"category_id", "name", "description", "price", "is_available"},
		{f.category.ID, "Nasi Uduk", "with egg", "12000", "true"},
		{f.category.ID, "Lontong Sayur", "", "15000.5", ""},
		{f.category.ID, "", "no name", "1000", "true"},
		{foreign.ID, "Stolen", "", "1000", "true"},
		{f.category.ID, "Cheap", "", "-5", "true"},
		{f.category.ID, "Hidden", "", "7000", "false"},
	})

	res, err := svc.ImportItems(ctx, f.ownerActor(), f.restaurant.ID, wb)
	require.NoError(t, err)
	assert.Len(t, res.Created, 3)
	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 4, res.Skipped[0].Row)
	assert.Equal(t, "missing name", res.Skipped[0].Reason)

	var hidden models.MenuItem
	require.NoError(t, f.db.Where("name = ?", "Hidden").First(&hidden).Error)
	assert.False(t, hidden.IsAvailable)

	_, err = svc.ImportItems(ctx, f.customerActor(), f.restaurant.ID, buildWorkbook(t, nil))
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = svc.ImportItems(ctx, f.ownerActor(), f.restaurant.ID, bytes.NewBufferString("not a workbook"))
	assert.True(t, utils.IsKind(err, utils.KindInvalid))
}
