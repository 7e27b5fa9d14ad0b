package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"swiftdine/config"
	"swiftdine/db"
	"swiftdine/httpapi"
	"swiftdine/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	catalog := services.DefaultCatalog()
	if cfg.Catalog.Source == "postgres" {
		if err := db.Init(cfg.DB); err != nil {
			fmt.Fprintln(os.Stderr, "db:", err)
			os.Exit(1)
		}
		defer db.Close()

		// Optional auto-migration for fresh databases.
		// Set AUTO_MIGRATE=1 (or "true") to enable.
		if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
			if err := applyMigrations(context.Background(), false); err != nil {
				fmt.Fprintln(os.Stderr, "migrate:", err)
				os.Exit(1)
			}
		}

		catalog, err = services.LoadCatalog(context.Background())
		if err != nil {
			fmt.Fprintln(os.Stderr, "catalog:", err)
			os.Exit(1)
		}
	}

	machine := services.NewMachine(catalog, services.Fees{
		Delivery: cfg.Pricing.DeliveryFee,
		Platform: cfg.Pricing.PlatformFee,
		GSTRate:  cfg.Pricing.GSTRate,
	})
	lifecycle := services.NewLifecycle(machine, cfg.Session.CountdownTicks, cfg.Session.TickInterval)
	locator := services.NewAddressLocator(fixedPosition{}, cfg.Session.GeoTimeout, machine)
	processor := services.NewProcessor(machine, cfg.Session.PaymentDelay)

	h := httpapi.NewHandler(catalog, machine, lifecycle, locator, processor)
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	handler := cors.Default().Handler(r)

	log.Println("SwiftDine starting on", cfg.HTTP.Addr)
	log.Fatal(http.ListenAndServe(cfg.HTTP.Addr, handler))
}

// fixedPosition stands in for a real location source; it reports the
// T. Nagar area the default address points at.
type fixedPosition struct{}

func (fixedPosition) CurrentPosition(ctx context.Context) (float64, float64, error) {
	return 13.0418, 80.2341, nil
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
