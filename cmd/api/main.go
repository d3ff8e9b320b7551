package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/filski95/web-app-challets/internal/booking"
	bookingStore "github.com/filski95/web-app-challets/internal/booking/store"
	"github.com/filski95/web-app-challets/internal/config"
	"github.com/filski95/web-app-challets/internal/customer"
	customerStore "github.com/filski95/web-app-challets/internal/customer/store"
	"github.com/filski95/web-app-challets/internal/database"
	"github.com/filski95/web-app-challets/internal/house"
	houseStore "github.com/filski95/web-app-challets/internal/house/store"
	challetsHttp "github.com/filski95/web-app-challets/internal/http"
	bookingHandler "github.com/filski95/web-app-challets/internal/http/booking"
	customerHandler "github.com/filski95/web-app-challets/internal/http/customer"
	houseHandler "github.com/filski95/web-app-challets/internal/http/house"
	importHandler "github.com/filski95/web-app-challets/internal/http/importcsv"
	sweepHandler "github.com/filski95/web-app-challets/internal/http/sweep"
	"github.com/filski95/web-app-challets/internal/importer"
	"github.com/filski95/web-app-challets/internal/notify"
	"github.com/filski95/web-app-challets/internal/sweeper"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
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

	var (
		bookings  = bookingStore.New(db)
		profiles  = customerStore.New(db)
		houses    = houseStore.New(db)
		mail      = notify.NewMailSender(notify.MailConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			To:       cfg.SMTP.NotificationEmail,
		})
		documents = notify.NewFileDocuments(cfg.Confirmations.Dir)
	)

	var (
		customerService = customer.NewService(profiles)
		bookingService  = booking.NewService(bookings, profiles, mail, documents)
		houseService    = house.NewService(houses)
		importService   = importer.NewService()
		sweepService    = sweeper.New(bookings, profiles, slog.Default())
	)

	hierarchy := customer.Hierarchy{
		New:     cfg.Loyalty.NewMax,
		Regular: cfg.Loyalty.RegularMax,
		Super:   cfg.Loyalty.SuperMin,
	}

	var (
		bookingH  = bookingHandler.NewHandler(bookingService, customerService)
		houseH    = houseHandler.NewHandler(houseService)
		customerH = customerHandler.NewHandler(customerService)
		importH   = importHandler.NewHandler(importService, bookingService)
		sweepH    = sweepHandler.NewHandler(sweepService, hierarchy)
	)

	router := challetsHttp.New(bookingH, houseH, customerH, importH, sweepH, cfg.Auth.Secret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
