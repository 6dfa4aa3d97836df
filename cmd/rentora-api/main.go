// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"rentora/internal/config"
	httptransport "rentora/internal/http"
	"rentora/internal/infra"
	"rentora/internal/maps"
	"rentora/internal/modules/booking"
	"rentora/internal/modules/fleet"
	"rentora/internal/modules/location"
	"rentora/internal/modules/oneway"
	"rentora/internal/modules/pricing"
	"rentora/internal/modules/promo"
	"rentora/internal/modules/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var router location.DistanceEstimator
	if cfg.Maps.APIKey != "" {
		rs, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		router = rs
	} else {
		log.Print("RENTORA_MAPS_API_KEY not set; delivery distances fall back to straight-line estimates")
	}

	fleetSvc := fleet.NewService(fleet.NewStore(dbPool))

	catalogCache := rate.NewCatalogCache(redisClient, time.Duration(cfg.Redis.CatalogTTLSecs)*time.Second)
	rateSvc := rate.NewService(rate.NewStore(dbPool), catalogCache)

	oneWaySvc := oneway.NewService(oneway.NewStore(dbPool))
	promoSvc := promo.NewService(promo.NewStore(dbPool))
	locationSvc := location.NewService(location.NewStore(dbPool), router, decimal.NewFromFloat(cfg.Delivery.FeePerKm))

	pricingSvc := pricing.NewService(fleetSvc, rateSvc, oneWaySvc, promoSvc, locationSvc)
	bookingSvc := booking.NewService(booking.NewStore(dbPool), pricingSvc)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Fleet:    fleetSvc,
		Rates:    rateSvc,
		OneWay:   oneWaySvc,
		Promos:   promoSvc,
		Location: locationSvc,
		Pricing:  pricingSvc,
		Bookings: bookingSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
