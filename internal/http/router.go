// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/http/handlers"
	"github.com/ayishathul-rinsha/Binnit/internal/http/middleware"
	"github.com/ayishathul-rinsha/Binnit/internal/infra"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/collector"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/earnings"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/identity"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/matching"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/stats"
)

type Services struct {
	Pickup    *pickup.Service
	Collector *collector.Service
	Matching  *matching.Service
	Earnings  *earnings.Service
	Stats     *stats.Service
	Identity  *identity.Service
}

func NewRouter(verifier infra.TokenVerifier, svcs Services, log *slog.Logger) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Auth(verifier, svcs.Identity))

	pickupHandler := handlers.NewPickupHandler(svcs.Pickup)
	pickups := api.Group("/pickups")
	{
		pickups.POST("/schedule", pickupHandler.Schedule)
		pickups.GET("/list", pickupHandler.ListMine)
		pickups.GET("/:id", pickupHandler.Get)
		pickups.PUT("/:id/cancel", pickupHandler.Cancel)
		pickups.PUT("/:id/confirm-payment", pickupHandler.ConfirmPayment)
		pickups.POST("/:id/rate", pickupHandler.Rate)
	}

	collectorHandler := handlers.NewCollectorHandler(svcs.Collector, svcs.Pickup, svcs.Matching)
	collectors := api.Group("/collectors")
	{
		// registration is open to any authenticated caller; the rest of the
		// group requires the collector role
		collectors.POST("/register", collectorHandler.Register)

		gated := collectors.Group("")
		gated.Use(middleware.RequireRole(identity.RoleCollector, identity.RoleAdmin))
		gated.GET("/profile", collectorHandler.Profile)
		gated.PUT("/profile", collectorHandler.UpdateProfile)
		gated.PUT("/availability", collectorHandler.SetAvailability)
		gated.PUT("/location", collectorHandler.UpdateLocation)
		gated.GET("/pickups/available", collectorHandler.ListAvailable)
		gated.PUT("/pickups/:id/accept", collectorHandler.Accept)
		gated.PUT("/pickups/:id/status", collectorHandler.UpdateStatus)
		gated.PUT("/pickups/:id/weight", collectorHandler.SetWeight)
		gated.GET("/pickups/history", collectorHandler.History)
	}

	earningsHandler := handlers.NewEarningsHandler(svcs.Earnings)
	earningsGroup := api.Group("/earnings")
	earningsGroup.Use(middleware.RequireRole(identity.RoleCollector, identity.RoleAdmin))
	{
		earningsGroup.GET("/summary", earningsHandler.Summary)
		earningsGroup.GET("/transactions", earningsHandler.Transactions)
		earningsGroup.PUT("/transactions/:id/paid", earningsHandler.MarkPaid)
	}

	adminHandler := handlers.NewAdminHandler(svcs.Pickup, svcs.Collector, svcs.Stats, svcs.Identity)
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(identity.RoleAdmin))
	{
		admin.GET("/pickups/pending-approval", adminHandler.PendingApproval)
		admin.PUT("/pickups/:id/approve", adminHandler.Approve)
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/users", adminHandler.Users)
		admin.GET("/bins", adminHandler.Bins)
	}

	userHandler := handlers.NewUserHandler(svcs.Identity)
	users := api.Group("/users")
	{
		users.GET("/profile", userHandler.Profile)
		users.PUT("/profile", userHandler.SaveProfile)
		users.GET("/addresses", userHandler.Addresses)
		users.POST("/addresses", userHandler.AddAddress)
	}

	return r
}
