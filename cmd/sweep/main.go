// Command sweep runs one completion sweep and exits. It is meant for cron
// and for manual runs with an overridden as-of date.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	bookingStore "github.com/filski95/web-app-challets/internal/booking/store"
	"github.com/filski95/web-app-challets/internal/config"
	"github.com/filski95/web-app-challets/internal/customer"
	customerStore "github.com/filski95/web-app-challets/internal/customer/store"
	"github.com/filski95/web-app-challets/internal/database"
	"github.com/filski95/web-app-challets/internal/sweeper"
)

func main() {
	asOfFlag := flag.String("as-of", "", "sweep date override, format 2006-01-02 (default today)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	asOf := time.Now().UTC()

	if *asOfFlag != "" {
		asOf, err = time.Parse(time.DateOnly, *asOfFlag)
		if err != nil {
			slog.Error("invalid -as-of date", "value", *asOfFlag, "error", err)
			os.Exit(1)
		}
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	s := sweeper.New(bookingStore.New(db), customerStore.New(db), slog.Default())

	hierarchy := customer.Hierarchy{
		New:     cfg.Loyalty.NewMax,
		Regular: cfg.Loyalty.RegularMax,
		Super:   cfg.Loyalty.SuperMin,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	completed, err := s.Run(ctx, asOf, hierarchy)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("completed %d reservations (as of %s)\n", completed, asOf.Format(time.DateOnly))
}
