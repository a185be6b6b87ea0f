package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/config"
	"github.com/yeremiapane/food-ordering-app/controllers"
	"github.com/yeremiapane/food-ordering-app/hub"
	"github.com/yeremiapane/food-ordering-app/middlewares"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Blacklist utils.TokenBlacklist
	Hub       *hub.Hub
}

var imageSuffixes = []string{".jpg", ".jpeg", ".png", ".webp"}

// onlyImages rejects anything under /uploads that is not an image.
func onlyImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			lower := strings.ToLower(c.Request.URL.Path)
			for _, s := range imageSuffixes {
				if strings.HasSuffix(lower, s) {
					c.Next()
					return
				}
			}
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if d.Blacklist == nil {
		d.Blacklist = utils.NewMemoryBlacklist()
	}
	if d.Hub == nil {
		d.Hub = hub.New()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(cfg.CookieSecure))
	r.Use(middlewares.CORSMiddlewares(cfg.AllowedOrigins))
	r.Use(onlyImages())
	r.MaxMultipartMemory = 8 << 20

	r.Static("/uploads", cfg.UploadDir)

	// services
	images := utils.NewImageStore(cfg.UploadDir, cfg.PublicBaseURL)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	cartLocks := utils.NewKeyedMutex()
	audit := services.NewAuditService(d.DB)
	authSvc := services.NewAuthService(d.DB, tokens, d.Blacklist)
	restaurantSvc := services.NewRestaurantService(d.DB, audit, images)
	menuSvc := services.NewMenuService(d.DB, audit, images)
	cartSvc := services.NewCartService(d.DB, cartLocks)
	orderSvc := services.NewOrderService(d.DB, cartLocks, audit, d.Hub)
	reviewSvc := services.NewReviewService(d.DB, images)
	adminSvc := services.NewAdminService(d.DB, audit)

	// controllers
	userController := controllers.NewUserController(authSvc, cfg.CookieSecure, int(cfg.JWTTTL/time.Second))
	restaurantController := controllers.NewRestaurantController(restaurantSvc, images)
	categoryController := controllers.NewMenuCategoryController(menuSvc)
	menuController := controllers.NewMenuController(menuSvc, images)
	cartController := controllers.NewCartController(cartSvc)
	orderController := controllers.NewOrderController(orderSvc)
	receiptController := controllers.NewReceiptController(orderSvc)
	reviewController := controllers.NewReviewController(reviewSvc, images)
	adminController := controllers.NewAdminController(adminSvc, restaurantSvc)
	socketController := controllers.NewOrderSocketController(d.Hub, cfg.AllowedOrigins)

	auth := middlewares.AuthMiddleware(authSvc)
	manager := middlewares.Authorize(models.RoleOwner, models.RoleAdmin)
	adminOnly := middlewares.Authorize(models.RoleAdmin)
	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	health := func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "OK", gin.H{"time": time.Now().UTC()})
	}
	r.GET("/", health)
	r.GET("/health", health)

	r.GET("/ws/orders", middlewares.WebSocketAuthMiddleware(authSvc), socketController.Subscribe)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", limiter.RateLimit(), userController.Register)
		authRoutes.POST("/login", limiter.RateLimit(), userController.Login)
		authRoutes.POST("/logout", auth, userController.Logout)
		authRoutes.GET("/profile", auth, userController.Profile)
		authRoutes.PUT("/profile", auth, userController.UpdateProfile)
	}

	restaurantRoutes := api.Group("/restaurant")
	{
		restaurantRoutes.GET("", restaurantController.GetRestaurants)
		restaurantRoutes.GET("/:id", restaurantController.GetRestaurant)
		restaurantRoutes.GET("/owner/my-restaurants", auth, middlewares.Authorize(models.RoleOwner), restaurantController.MyRestaurants)
		restaurantRoutes.POST("/create", auth, manager, restaurantController.CreateRestaurant)
		restaurantRoutes.PUT("/:id", auth, manager, restaurantController.UpdateRestaurant)
		restaurantRoutes.DELETE("/:id", auth, manager, restaurantController.DeleteRestaurant)
		restaurantRoutes.PUT("/:id/approval", auth, adminOnly, restaurantController.SetApproval)
	}

	categoryRoutes := api.Group("/menucat")
	{
		categoryRoutes.GET("/restaurant/:restaurantId", categoryController.GetCategoriesByRestaurant)
		categoryRoutes.GET("/:id", categoryController.GetCategory)
		categoryRoutes.POST("/create", auth, manager, categoryController.CreateCategory)
		categoryRoutes.PUT("/reorder", auth, manager, categoryController.Reorder)
		categoryRoutes.PUT("/:id", auth, manager, categoryController.UpdateCategory)
		categoryRoutes.DELETE("/:id", auth, manager, categoryController.DeleteCategory)
	}

	menuRoutes := api.Group("/menuitem")
	{
		menuRoutes.GET("/restaurant/:restaurantId", menuController.GetItemsByRestaurant)
		menuRoutes.GET("/category/:categoryId", menuController.GetItemsByCategory)
		menuRoutes.GET("/:id", menuController.GetItem)
		menuRoutes.POST("/create", auth, manager, menuController.CreateItem)
		menuRoutes.POST("/restaurant/:restaurantId/import", auth, manager, menuController.ImportItems)
		menuRoutes.PUT("/:id", auth, manager, menuController.UpdateItem)
		menuRoutes.DELETE("/:id", auth, manager, menuController.DeleteItem)
	}

	cartRoutes := api.Group("/cart", auth)
	{
		cartRoutes.GET("/restaurant/:restaurantId", cartController.GetOrCreateCart)
		cartRoutes.POST("/add", cartController.AddToCart)
		cartRoutes.PUT("/item/:cartItemId", cartController.UpdateCartItem)
		cartRoutes.DELETE("/item/:cartItemId", cartController.RemoveFromCart)
		cartRoutes.DELETE("/:cartId/clear", cartController.ClearCart)
		cartRoutes.GET("/user/my-carts", cartController.GetMyCarts)
	}

	orderRoutes := api.Group("/order", auth)
	{
		orderRoutes.POST("/create", orderController.CreateOrder)
		orderRoutes.GET("/user/my-orders", orderController.GetMyOrders)
		orderRoutes.GET("/:id", orderController.GetOrder)
		orderRoutes.GET("/:id/receipt", receiptController.GetReceipt)
		orderRoutes.PUT("/:id/cancel", orderController.CancelOrder)
		orderRoutes.PUT("/:id/status", manager, orderController.UpdateOrderStatus)
		orderRoutes.GET("/restaurant/:restaurantId", manager, orderController.GetRestaurantOrders)
	}

	reviewRoutes := api.Group("/review")
	{
		reviewRoutes.GET("/item/:itemId", reviewController.GetItemReviews)
		reviewRoutes.GET("/:id", reviewController.GetItemReview)
		reviewRoutes.POST("/create", auth, reviewController.CreateItemReview)
		reviewRoutes.PUT("/:id", auth, reviewController.UpdateItemReview)
		reviewRoutes.DELETE("/:id", auth, reviewController.DeleteItemReview)
		reviewRoutes.GET("/user/my-reviews", auth, reviewController.GetMyItemReviews)
	}

	restaurantReviewRoutes := api.Group("/restaurant-reviews")
	{
		restaurantReviewRoutes.GET("/restaurant/:restaurantId", reviewController.GetRestaurantReviews)
		restaurantReviewRoutes.GET("/:id", reviewController.GetRestaurantReview)
		restaurantReviewRoutes.POST("/create", auth, reviewController.CreateRestaurantReview)
		restaurantReviewRoutes.PUT("/:id", auth, reviewController.UpdateRestaurantReview)
		restaurantReviewRoutes.DELETE("/:id", auth, reviewController.DeleteRestaurantReview)
		restaurantReviewRoutes.GET("/user/my-reviews", auth, reviewController.GetMyRestaurantReviews)
	}

	adminRoutes := api.Group("/admin", auth, adminOnly)
	{
		adminRoutes.GET("/logs", adminController.GetLogs)
		adminRoutes.GET("/dashboard", adminController.GetDashboardStats)
		adminRoutes.GET("/users", adminController.GetUsers)
		adminRoutes.PUT("/users/:userId/role", adminController.UpdateUserRole)
		adminRoutes.DELETE("/users/:userId", adminController.DeleteUser)
		adminRoutes.GET("/restaurants/pending", adminController.GetPendingRestaurants)
	}

	return r
}
