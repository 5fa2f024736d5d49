package routes

import (
	"time"

	"tripmart/handlers"
	"tripmart/middleware"
	"tripmart/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterUserRoutes registers profile and wallet endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetProfile)
		api.PATCH("/me", hb.Users.UpdateProfile)
		api.DELETE("/me", hb.Users.DeleteAccount)
		api.POST("/me/redeem", middleware.RequireRole(models.RoleTourist), hb.Users.RedeemPoints)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle and rating endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		tourist := bookingGroup.Group("", middleware.RequireRole(models.RoleTourist))
		tourist.POST("", hb.Bookings.Create)
		tourist.GET("", hb.Bookings.List)
		tourist.GET("/:id", hb.Bookings.Get)
		tourist.POST("/:id/cancel", hb.Bookings.Cancel)
		tourist.POST("/:id/rating", hb.Bookings.Rate)
		tourist.PUT("/:id/rating", hb.Bookings.UpdateRating)

		bookingGroup.PATCH("/:id/status",
			middleware.RequireRole(models.RoleAdmin), hb.Bookings.UpdateStatus)
	}

	// Rating aggregates are readable by any authenticated user.
	ratingGroup := r.Group("/api/ratings")
	{
		ratingGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		ratingGroup.GET("/:type/:id", hb.Bookings.EntitySummary)
		ratingGroup.GET("/:type/:id/entries", hb.Bookings.EntityRatings)
		ratingGroup.GET("/guides/:id", hb.Bookings.GuideSummary)
		ratingGroup.GET("/guides/:id/distribution", hb.Bookings.GuideDistribution)
	}
}

// RegisterOrderRoutes sets up product checkout and order management.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		tourist := api.Group("", middleware.RequireRole(models.RoleTourist))
		tourist.POST("", hb.Orders.Checkout)
		tourist.GET("", hb.Orders.List)
		tourist.GET("/:id", hb.Orders.Get)
		tourist.POST("/:id/cancel", hb.Orders.Cancel)

		api.POST("/:id/deliver",
			middleware.RequireRole(models.RoleAdmin), hb.Orders.MarkDelivered)
	}
}

// RegisterPromoRoutes sets up promo validation and admin code management.
func RegisterPromoRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/promos")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/validate", middleware.RequireRole(models.RoleTourist), hb.Promos.Validate)
		api.POST("", middleware.RequireRole(models.RoleAdmin), hb.Promos.Create)
	}
}

// RegisterReviewRoutes sets up the generalized review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleTourist), hb.Reviews.Create)
		api.PUT("/:id", middleware.RequireRole(models.RoleTourist), hb.Reviews.Update)
		api.DELETE("/:id", middleware.RequireRole(models.RoleTourist), hb.Reviews.Delete)
		api.GET("/:type/:id", hb.Reviews.ListByEntity)
	}
}

// RegisterCatalogRoutes sets up listing and product management per role.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		api.POST("/activities",
			middleware.RequireRole(models.RoleAdvertiser), hb.Catalog.CreateActivity)
		api.GET("/activities",
			middleware.RequireRole(models.RoleAdvertiser), hb.Catalog.ListActivities)

		api.POST("/itineraries",
			middleware.RequireRole(models.RoleTourGuide), hb.Catalog.CreateItinerary)
		api.GET("/itineraries",
			middleware.RequireRole(models.RoleTourGuide), hb.Catalog.ListItineraries)

		api.POST("/historical-places",
			middleware.RequireRole(models.RoleTourismGovernor), hb.Catalog.CreateHistoricalPlace)
		api.GET("/historical-places",
			middleware.RequireRole(models.RoleTourismGovernor), hb.Catalog.ListHistoricalPlaces)

		api.POST("/products",
			middleware.RequireRole(models.RoleSeller), hb.Catalog.CreateProduct)
		api.GET("/products",
			middleware.RequireRole(models.RoleSeller), hb.Catalog.ListProducts)
	}
}

// RegisterReportRoutes sets up the sales report endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/sales", hb.Reports.MySales)
		api.GET("/sales/all",
			middleware.RequireRole(models.RoleAdmin), hb.Reports.AdminSales)
	}
}

// RegisterNotificationRoutes sets up the notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Notifications.List)
		api.POST("/:id/read", hb.Notifications.MarkRead)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/users", hb.Users.ListByRole)
		adminGroup.POST("/listings/:type/:id/flag", hb.Admin.FlagListing)
		adminGroup.DELETE("/listings/:type/:id/flag", hb.Admin.UnflagListing)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterPromoRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
