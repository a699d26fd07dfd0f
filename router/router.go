package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/controllers"
	"github.com/frotaweb/fleet-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	driverReqCtrl := controllers.NewDriverRequestController(db)
	vehicleReqCtrl := controllers.NewVehicleRequestController(db)
	statusCtrl := controllers.NewRequestStatusController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	conductorCtrl := controllers.NewConductorController(db)
	vehicleCtrl := controllers.NewVehicleController(db)
	adminCtrl := controllers.NewAdminController(db)
	siteCtrl := controllers.NewSiteController()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	public := api.Group("/requests")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/drivers", driverReqCtrl.Create)
		public.POST("/vehicles", vehicleReqCtrl.Create)
	}
	api.GET("/requests/status", statusCtrl.CheckByProtocol)
	api.GET("/site/configuration", siteCtrl.GetConfiguration)

	// WebSocket channel for new-request alerts (token via query string)
	r.GET("/ws/requests", middlewares.WebSocketAuthMiddleware(), controllers.RequestEventsHandler)

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := api.Group("/")
	staff.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("staff"))
	{
		staff.GET("/profile", userCtrl.GetProfile)
		staff.POST("/logout", userCtrl.Logout)

		staff.GET("/requests/drivers", driverReqCtrl.List)
		staff.GET("/requests/drivers/:id", driverReqCtrl.Get)
		staff.POST("/requests/drivers/:id/approve", driverReqCtrl.Approve)
		staff.POST("/requests/drivers/:id/reject", driverReqCtrl.Reject)

		staff.GET("/requests/vehicles", vehicleReqCtrl.List)
		staff.GET("/requests/vehicles/:id", vehicleReqCtrl.Get)
		staff.POST("/requests/vehicles/:id/approve", vehicleReqCtrl.Approve)
		staff.POST("/requests/vehicles/:id/reject", vehicleReqCtrl.Reject)

		staff.GET("/notifications", notificationCtrl.GetAllNotifications)
		staff.GET("/notifications/unread", notificationCtrl.GetUnread)
		staff.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
		staff.PATCH("/notifications/:notif_id/mark-read", notificationCtrl.MarkRead)
		staff.POST("/notifications/mark-all-read", notificationCtrl.MarkAllRead)

		staff.GET("/conductors", conductorCtrl.GetAllConductors)
		staff.GET("/conductors/:id", conductorCtrl.GetConductorByID)
		staff.GET("/vehicles", vehicleCtrl.GetAllVehicles)
		staff.GET("/vehicles/:id", vehicleCtrl.GetVehicleByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := api.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
	{
		admin.GET("/dashboard", adminCtrl.GetDashboardStats)
		admin.PUT("/site/configuration", siteCtrl.UpdateConfiguration)
	}

	return r
}
