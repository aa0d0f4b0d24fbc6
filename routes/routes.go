package routes

import (
	"dinein-api/handlers"
	"dinein-api/middleware"
	"dinein-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu & availability (no auth needed)
		public.GET("/menu", handlers.GetMenu)
		public.GET("/tables/available", handlers.ListAvailableTables)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/reservations", handlers.CreateReservation)
		customer.GET("/reservations", handlers.GetMyReservations)
		customer.PUT("/reservations/:id/cancel", handlers.CancelMyReservation)
	}

	// ── Waiter routes ──────────────────────────────────────────────
	waiter := r.Group("/api/waiter")
	waiter.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleWaiter))
	{
		waiter.POST("/orders", handlers.CreateOrder)
		waiter.GET("/orders", handlers.GetMyOrders)
		waiter.PUT("/orders/:id/serve", handlers.ServeOrder)
		waiter.PUT("/tables/:id/assist", handlers.MarkNeedsAssistance)
		waiter.PUT("/tables/:id/resolve", handlers.ResolveAssistance)

		// Billing
		waiter.POST("/orders/:id/bill", handlers.GenerateBill)
		waiter.GET("/bills/:id", handlers.GetBill)
		waiter.PUT("/bills/:id/pay", handlers.PayBill)
	}

	// ── Chef routes ────────────────────────────────────────────────
	chef := r.Group("/api/chef")
	chef.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleChef))
	{
		chef.GET("/orders/pending", handlers.GetPendingOrders)
		chef.GET("/orders/preparing", handlers.GetMyPreparing)
		chef.PUT("/orders/:id/accept", handlers.AcceptOrder)
		chef.PUT("/orders/:id/ready", handlers.MarkReady)
	}

	// ── Manager routes ─────────────────────────────────────────────
	manager := r.Group("/api/manager")
	manager.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleManager))
	{
		// Floor plan
		manager.POST("/tables", handlers.CreateTable)
		manager.GET("/tables", handlers.GetAllTables)
		manager.PUT("/tables/:id/release", handlers.ForceReleaseTable)
		manager.PUT("/tables/:id/reserve", handlers.SetTableReserved)
		manager.PUT("/tables/:id/maintenance", handlers.SetTableMaintenance)

		// Reservations
		manager.GET("/reservations", handlers.GetAllReservations)
		manager.PUT("/reservations/:id/confirm", handlers.ConfirmReservation)
		manager.PUT("/reservations/:id/cancel", handlers.CancelReservation)

		// Menu management
		manager.POST("/menu", handlers.AddMenuItem)
		manager.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		manager.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Dashboards
		manager.GET("/orders", handlers.GetAllOrders)
		manager.GET("/orders/:id", handlers.GetOrderDetail)
		manager.GET("/bills", handlers.GetAllBills)
	}
}
