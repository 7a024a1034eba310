package routes

import (
	"github.com/bikebay/server/internal/container"
	"github.com/bikebay/server/internal/handlers"
	"github.com/bikebay/server/internal/metrics"
	"github.com/bikebay/server/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(metrics.Middleware())
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "bikebay-api",
			})
		})

		// public routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register(container.UserService))
			auth.POST("/login", handlers.Login(container.UserService))
			auth.POST("/forgot-password", handlers.ForgotPassword(container.UserService))
			auth.POST("/reset-password", handlers.ResetPassword(container.UserService))
		}

		v1.GET("/bikes", handlers.ListBikes(container.BikeService))
		v1.GET("/bikes/hoster/:hosterId", handlers.ListBikesByHoster(container.BikeService))
		v1.GET("/bikes/:id", handlers.GetBikeByID(container.BikeService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.TokenSigner, container.UserService, container.Logger))

	bikeRoutes := protected.Group("/bikes")
	{
		bikeRoutes.POST("", handlers.CreateBikeHandler(container.BikeService))
		bikeRoutes.PUT("/:id", handlers.UpdateBike(container.BikeService))
		bikeRoutes.DELETE("/:id", handlers.DeleteBike(container.BikeService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/my-bookings", handlers.ListMyBookings(container.BookingService))
		bookingRoutes.GET("/hoster-bookings", handlers.ListHosterBookings(container.BookingService))
		bookingRoutes.GET("/all", handlers.ListAllBookings(container.BookingService))
		bookingRoutes.PUT("/:id/status", handlers.UpdateBookingStatus(container.BookingService))
		bookingRoutes.DELETE("/:id", handlers.CancelBooking(container.BookingService))
	}

	return r
}
