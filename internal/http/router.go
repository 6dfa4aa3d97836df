// README: HTTP router registration; public quote/booking routes plus gated admin routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentora/internal/auth"
	"rentora/internal/http/handlers"
	"rentora/internal/http/middleware"
	"rentora/internal/modules/booking"
	"rentora/internal/modules/fleet"
	"rentora/internal/modules/location"
	"rentora/internal/modules/oneway"
	"rentora/internal/modules/pricing"
	"rentora/internal/modules/promo"
	"rentora/internal/modules/rate"
)

type RouterDeps struct {
	Fleet    *fleet.Service
	Rates    *rate.Service
	OneWay   *oneway.Service
	Promos   *promo.Service
	Location *location.Service
	Pricing  *pricing.Service
	Bookings *booking.Service
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Public routes: browsing the fleet, quoting and booking.
	fleetHandler := handlers.NewFleetHandler(deps.Fleet)
	r.GET("/api/vehicle-groups", fleetHandler.List)
	r.GET("/api/vehicle-groups/:id", fleetHandler.Get)

	quoteHandler := handlers.NewQuoteHandler(deps.Pricing)
	r.POST("/api/quotes", quoteHandler.Create)

	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	r.POST("/api/bookings", bookingHandler.Create)

	locationHandler := handlers.NewLocationHandler(deps.Location)
	r.GET("/api/locations", locationHandler.List)
	r.GET("/api/locations/:id", locationHandler.Get)

	// Admin routes, gated per capability.
	admin := r.Group("/api/admin")

	adminFleet := admin.Group("", middleware.RequireCapability(auth.CapManageFleet))
	adminFleet.POST("/vehicle-groups", fleetHandler.Create)
	adminFleet.PUT("/vehicle-groups/:id", fleetHandler.Update)
	adminFleet.DELETE("/vehicle-groups/:id", fleetHandler.Deactivate)
	adminFleet.POST("/locations", locationHandler.Create)

	rateHandler := handlers.NewRateHandler(deps.Rates)
	adminRates := admin.Group("", middleware.RequireCapability(auth.CapManageRates))
	adminRates.GET("/rates", rateHandler.List)
	adminRates.POST("/rates", rateHandler.Create)
	adminRates.GET("/rates/:id", rateHandler.Get)
	adminRates.PUT("/rates/:id", rateHandler.Update)
	adminRates.DELETE("/rates/:id", rateHandler.Delete)
	adminRates.GET("/rates/:id/matrix", rateHandler.Matrix)
	adminRates.POST("/tiers", rateHandler.CreateTier)
	adminRates.POST("/tiers/bulk", rateHandler.CreateTiersBulk)
	adminRates.PUT("/tiers/:id", rateHandler.UpdateTier)
	adminRates.DELETE("/tiers/:id", rateHandler.DeleteTier)
	adminRates.POST("/day-ranges", rateHandler.CreateDayRange)
	adminRates.POST("/hour-ranges", rateHandler.CreateHourRange)
	adminRates.POST("/km-ranges", rateHandler.CreateKmRange)

	oneWayHandler := handlers.NewOneWayHandler(deps.OneWay)
	adminRates.GET("/one-way-fees", oneWayHandler.List)
	adminRates.POST("/one-way-fees", oneWayHandler.Create)
	adminRates.PUT("/one-way-fees/:id", oneWayHandler.Update)
	adminRates.DELETE("/one-way-fees/:id", oneWayHandler.Delete)

	promoHandler := handlers.NewPromoHandler(deps.Promos)
	adminRates.GET("/promos", promoHandler.List)
	adminRates.POST("/promos", promoHandler.Create)
	adminRates.PUT("/promos/:id", promoHandler.Update)
	adminRates.DELETE("/promos/:id", promoHandler.Delete)

	adminBookings := admin.Group("", middleware.RequireCapability(auth.CapManageBookings))
	adminBookings.GET("/bookings", bookingHandler.List)
	adminBookings.GET("/bookings/:id", bookingHandler.Get)
	adminBookings.POST("/bookings/:id/transition", bookingHandler.Transition)
	adminBookings.POST("/bookings/:id/mark-paid", bookingHandler.MarkPaid)

	return r
}
