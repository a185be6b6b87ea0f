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

func intPtr(v int) *int { return &v }

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 3.0, AverageRating([]int{2, 4}))
	assert.InDelta(t, 4.3333, AverageRating([]int{4, 4, 5}), 0.0001)
}

func TestItemReviewsMaintainAverage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewReviewService(f.db, nil)
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Pecel", 10, true)
	second := createUser(t, f.db, "second@test.io", models.RoleCustomer)

	first, err := svc.CreateItemReview(ctx, f.customerActor(), item.ID, ReviewInput{Rating: intPtr(2)})
	require.NoError(t, err)
	_, err = svc.CreateItemReview(ctx, Actor{UserID: second.ID, Role: models.RoleCustomer}, item.ID, ReviewInput{Rating: intPtr(4)})
	require.NoError(t, err)

	var reloaded models.MenuItem
	require.NoError(t, f.db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 3.0, reloaded.AverageRating)

	_, err = svc.UpdateItemReview(ctx, f.customerActor(), first.ID, ReviewInput{Rating: intPtr(5)})
	require.NoError(t, err)
	require.NoError(t, f.db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 4.5, reloaded.AverageRating)

	reviews, total, err := svc.ListItemReviews(ctx, repository.ReviewFilter{TargetID: item.ID}, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reviews, 2)
}

func TestDeletingOnlyReviewResetsAverage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewReviewService(f.db, nil)
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Rawon", 10, true)

	rv, err := svc.CreateItemReview(ctx, f.customerActor(), item.ID, ReviewInput{Rating: intPtr(5)})
	require.NoError(t, err)

	err = svc.DeleteItemReview(ctx, f.ownerActor(), rv.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	require.NoError(t, svc.DeleteItemReview(ctx, f.customerActor(), rv.ID))

	var reloaded models.MenuItem
	require.NoError(t, f.db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 0.0, reloaded.AverageRating)
}

func TestItemReviewValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewReviewService(f.db, nil)
	item := createMenuItem(t, f.db, f.restaurant.ID, f.category.ID, "Gudeg", 10, true)

	_, err := svc.CreateItemReview(ctx, f.customerActor(), item.ID, ReviewInput{Rating: intPtr(6)})
	assert.True(t, utils.IsKind(err, utils.KindInvalid))
	_, err = svc.CreateItemReview(ctx, f.customerActor(), item.ID, ReviewInput{})
	assert.True(t, utils.IsKind(err, utils.KindInvalid))
	_, err = svc.CreateItemReview(ctx, f.customerActor(), 9999, ReviewInput{Rating: intPtr(3)})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = svc.CreateItemReview(ctx, f.customerActor(), item.ID, ReviewInput{Rating: intPtr(3)})
	require.NoError(t, err)
	_, err = svc.CreateItemReview(ctx, f.customerActor(), item.ID, ReviewInput{Rating: intPtr(4)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))
	assert.Contains(t, err.Error(), "already reviewed")

	var n int64
	require.NoError(t, f.db.Model(&models.ItemReview{}).Where("item_id = ?", item.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRestaurantReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewReviewService(f.db, nil)

	pending := createRestaurant(t, f.db, f.owner.ID, false)
	_, err := svc.CreateRestaurantReview(ctx, f.customerActor(), pending.ID, ReviewInput{Rating: intPtr(4)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unapproved")

	rv, err := svc.CreateRestaurantReview(ctx, f.customerActor(), f.restaurant.ID, ReviewInput{Rating: intPtr(4)}, []string{"/uploads/reviews/a.png"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/reviews/a.png"}, rv.Images)

	_, err = svc.CreateRestaurantReview(ctx, f.customerActor(), f.restaurant.ID, ReviewInput{Rating: intPtr(2)}, nil)
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	updated, err := svc.UpdateRestaurantReview(ctx, f.customerActor(), rv.ID, ReviewInput{Rating: intPtr(2)}, []string{"/uploads/reviews/b.png"})
	require.NoError(t, err)
	assert.Len(t, updated.Images, 2)

	var rest models.Restaurant
	require.NoError(t, f.db.First(&rest, f.restaurant.ID).Error)
	assert.Equal(t, 2.0, rest.AverageRating)
	assert.Equal(t, 1, rest.RatingCount)

	_, _, err = svc.ListRestaurantReviews(ctx, repository.ReviewFilter{TargetID: f.restaurant.ID, Rating: 7}, utils.Pagination{Page: 1, Limit: 10})
	assert.True(t, utils.IsKind(err, utils.KindInvalid))

	require.NoError(t, svc.DeleteRestaurantReview(ctx, f.adminActor(), rv.ID))
	require.NoError(t, f.db.First(&rest, f.restaurant.ID).Error)
	assert.Equal(t, 0.0, rest.AverageRating)
	assert.Equal(t, 0, rest.RatingCount)
}
