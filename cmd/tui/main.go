package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/filski95/web-app-challets/cmd/tui/internal/view"
	"github.com/filski95/web-app-challets/internal/booking"
	bookingStore "github.com/filski95/web-app-challets/internal/booking/store"
	"github.com/filski95/web-app-challets/internal/config"
	"github.com/filski95/web-app-challets/internal/customer"
	customerStore "github.com/filski95/web-app-challets/internal/customer/store"
	"github.com/filski95/web-app-challets/internal/database"
	"github.com/filski95/web-app-challets/internal/notify"
	"github.com/filski95/web-app-challets/internal/sweeper"
)

type model struct {
	currentView View

	reservationsView view.ReservationsModel
	availabilityView view.AvailabilityModel
	createView       view.CreateModel
	sweepView        view.SweepModel

	bookingService  *booking.Service
	customerService *customer.Service
	sweepService    *sweeper.Sweeper
	hierarchy       customer.Hierarchy
}

type View int

const (
	ViewMenu         View = 0
	ViewReservations View = 1
	ViewAvailability View = 2
	ViewCreate       View = 3
	ViewSweep        View = 4
)

func initialModel() model {
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

	bookings := bookingStore.New(db)
	profiles := customerStore.New(db)

	mail := notify.NewMailSender(notify.MailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		To:       cfg.SMTP.NotificationEmail,
	})
	documents := notify.NewFileDocuments(cfg.Confirmations.Dir)

	bookingSvc := booking.NewService(bookings, profiles, mail, documents)
	customerSvc := customer.NewService(profiles)
	sweepSvc := sweeper.New(bookings, profiles, slog.Default())

	hierarchy := customer.Hierarchy{
		New:     cfg.Loyalty.NewMax,
		Regular: cfg.Loyalty.RegularMax,
		Super:   cfg.Loyalty.SuperMin,
	}

	return model{
		currentView:      ViewMenu,
		bookingService:   bookingSvc,
		customerService:  customerSvc,
		sweepService:     sweepSvc,
		hierarchy:        hierarchy,
		reservationsView: view.NewReservationsModel(bookingSvc),
		availabilityView: view.NewAvailabilityModel(bookingSvc),
		createView:       view.NewCreateModel(bookingSvc, customerSvc),
		sweepView:        view.NewSweepModel(sweepSvc, hierarchy),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewReservations
				m.reservationsView = view.NewReservationsModel(m.bookingService)

				return m, m.reservationsView.Init()
			case "2":
				m.currentView = ViewAvailability
				m.availabilityView = view.NewAvailabilityModel(m.bookingService)

				return m, m.availabilityView.Init()
			case "3":
				m.currentView = ViewCreate
				m.createView = view.NewCreateModel(m.bookingService, m.customerService)

				return m, m.createView.Init()
			case "4":
				m.currentView = ViewSweep
				m.sweepView = view.NewSweepModel(m.sweepService, m.hierarchy)

				return m, m.sweepView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReservations:
		var newModel tea.Model
		newModel, cmd = m.reservationsView.Update(msg)
		m.reservationsView = newModel.(view.ReservationsModel)
	case ViewAvailability:
		var newModel tea.Model
		newModel, cmd = m.availabilityView.Update(msg)
		m.availabilityView = newModel.(view.AvailabilityModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateModel)
	case ViewSweep:
		var newModel tea.Model
		newModel, cmd = m.sweepView.Update(msg)
		m.sweepView = newModel.(view.SweepModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Challets Admin\n\n" +
				"1. Reservations\n" +
				"2. Check Availability\n" +
				"3. New Reservation\n" +
				"4. Run Completion Sweep\n\n" +
				"q. Quit",
		)
	case ViewReservations:
		return m.reservationsView.View()
	case ViewAvailability:
		return m.availabilityView.View()
	case ViewCreate:
		return m.createView.View()
	case ViewSweep:
		return m.sweepView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
