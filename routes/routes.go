package routes

import (
	"oldroad-backend/config"
	"oldroad-backend/controllers"
	"oldroad-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://oldroad.pl",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Booking routes: sale recording, day history, earnings chart
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/chart", controllers.GetBookingChart)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id", controllers.UpdateBooking)
			bookings.DELETE("/:id", controllers.DeleteBooking)
		}

		// Product sale routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Opening cash float routes
		starts := api.Group("/starts")
		{
			starts.POST("", controllers.CreateStart)
			starts.GET("", controllers.GetStarts)
			starts.GET("/:id", controllers.GetStart)
			starts.PUT("/:id", controllers.UpdateStart)
			starts.DELETE("/:id", controllers.DeleteStart)
		}

		// Dashboard route
		api.GET("/dashboard", controllers.GetDashboard)

		// Service catalog
		api.GET("/services", controllers.GetServices)

		// Per-worker services and prices (settings + booking form)
		users := api.Group("/users")
		{
			users.GET("/:id/services", controllers.GetUserServices)
			users.GET("/:id/services/all", controllers.GetUserServicesAll)
			users.GET("/:id/prices", controllers.GetUserPrices)
			users.GET("/:id/prices/:serviceId", controllers.GetUserServicePrice)
			users.GET("/:id/prices/:serviceId/all", controllers.GetUserServicePriceAll)
			users.PUT("/:id/prices/:serviceId", controllers.SetUserServicePrice)
		}

		// Admin: worker accounts, service catalog, price assignment
		admin := api.Group("/admin")
		admin.Use(utils.AdminMiddleware())
		{
			admin.POST("/services", controllers.CreateService)

			workers := admin.Group("/workers")
			{
				workers.GET("", controllers.GetWorkers)
				workers.POST("", controllers.CreateWorker)
				workers.GET("/:id", controllers.GetWorker)
				workers.PUT("/:id", controllers.UpdateWorker)
				workers.POST("/:id/services", controllers.AssignService)
				workers.DELETE("/:id/services/:serviceId", controllers.RemoveService)
			}
		}
	}

	return r
}
