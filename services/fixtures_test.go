package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering-app/database"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory(uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, Password: "hashed", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createRestaurant(t *testing.T, db *gorm.DB, ownerID uint, approved bool) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{
		OwnerID:     ownerID,
		Name:        "Warung Test",
		Description: "test kitchen",
		Address:     "Jl. Test 1",
		Lat:         -6.2,
		Lng:         106.8,
		IsApproved:  approved,
		Images:      []string{},
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func createCategory(t *testing.T, db *gorm.DB, restaurantID uint, name string) *models.MenuCategory {
	t.Helper()
	c := &models.MenuCategory{RestaurantID: restaurantID, Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createMenuItem(t *testing.T, db *gorm.DB, restaurantID, categoryID uint, name string, price float64, available bool) *models.MenuItem {
	t.Helper()
	m := &models.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   categoryID,
		Name:         name,
		Price:        price,
		IsAvailable:  available,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

type fixture struct {
	db         *gorm.DB
	locks      *utils.KeyedMutex
	customer   *models.User
	owner      *models.User
	admin      *models.User
	restaurant *models.Restaurant
	category   *models.MenuCategory
	cart       *CartService
	orders     *OrderService
	audit      *AuditService
	events     *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{db: db, locks: utils.NewKeyedMutex(), events: &recordingPublisher{}}
	f.customer = createUser(t, db, "customer@test.io", models.RoleCustomer)
	f.owner = createUser(t, db, "owner@test.io", models.RoleOwner)
	f.admin = createUser(t, db, "admin@test.io", models.RoleAdmin)
	f.restaurant = createRestaurant(t, db, f.owner.ID, true)
	f.category = createCategory(t, db, f.restaurant.ID, "Mains")
	f.audit = NewAuditService(db)
	f.cart = NewCartService(db, f.locks)
	f.orders = NewOrderService(db, f.locks, f.audit, f.events)
	return f
}

func (f *fixture) customerActor() Actor { return Actor{UserID: f.customer.ID, Role: models.RoleCustomer} }
func (f *fixture) ownerActor() Actor { return Actor{UserID: f.owner.ID, Role: models.RoleOwner} }
func (f *fixture) adminActor() Actor { return Actor{UserID: f.admin.ID, Role: models.RoleAdmin} }

type publishedEvent struct {
	userIDs []uint
	event   string
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(userIDs []uint, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{userIDs: userIDs, event: event})
}
