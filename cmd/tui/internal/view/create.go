package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/filski95/web-app-challets/internal/booking"
	"github.com/filski95/web-app-challets/internal/customer"
	"github.com/filski95/web-app-challets/internal/house"
)

// CreateModel books a stay on behalf of a customer, the office-side
// equivalent of taking a reservation over the phone.
type CreateModel struct {
	CommonModel
	bookingService  *booking.Service
	customerService *customer.Service

	form *huh.Form

	formHouse   string
	formProfile string
	formStart   string
	formEnd     string

	result *booking.Reservation
	done   bool
	err    error
}

func NewCreateModel(bookingSvc *booking.Service, customerSvc *customer.Service) CreateModel {
	m := CreateModel{bookingService: bookingSvc, customerService: customerSvc}
	m.form = m.newForm()

	return m
}

func (m *CreateModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("house").
				Title("House number").
				Value(&m.formHouse).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > house.MaxNumber {
						return fmt.Errorf("enter a number between 1 and %d", house.MaxNumber)
					}
					return nil
				}),

			huh.NewInput().
				Key("profile").
				Title("Customer profile ID").
				Value(&m.formProfile).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
						return fmt.Errorf("enter a numeric profile id")
					}
					return nil
				}),

			huh.NewInput().
				Key("start").
				Title("Start date").
				Placeholder("2006-01-02").
				Value(&m.formStart).
				Validate(validateDate),

			huh.NewInput().
				Key("end").
				Title("End date").
				Placeholder("2006-01-02").
				Value(&m.formEnd).
				Validate(validateDate),
		),
	).WithWidth(45).WithShowHelp(false)
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use the format 2006-01-02")
	}
	return nil
}

func (m CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		m.done = true
		m.result = msg.reservation
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.done {
			m.done = false
			m.result = nil
			m.err = nil
			m.formHouse, m.formProfile, m.formStart, m.formEnd = "", "", "", ""
			m.form = m.newForm()
			return m, m.form.Init()
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.reserveCmd()
}

func (m CreateModel) View() string {
	if !m.done {
		return lipgloss.NewStyle().Padding(1, 2).Render("New reservation\n\n" + m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			fmt.Sprintf("Reservation failed: %v\n\nAny key: try again | Esc: back", m.err))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(fmt.Sprintf(
		"Reserved!\n\nNumber: %s\nNights: %d\nTotal: %d\n\nAny key: another | Esc: back",
		m.result.Number, m.result.Nights, m.result.TotalPrice))
}

type createdMsg struct {
	reservation *booking.Reservation
	err         error
}

func (m CreateModel) reserveCmd() tea.Cmd {
	houseNumber, _ := strconv.Atoi(strings.TrimSpace(m.formHouse))
	profileID, _ := strconv.ParseInt(strings.TrimSpace(m.formProfile), 10, 64)
	start, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formStart))
	end, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formEnd))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		profile, err := m.customerService.Get(ctx, profileID)
		if err != nil {
			return createdMsg{err: err}
		}

		params := booking.ReserveParams{
			CustomerProfileID: profile.ID,
			OwnerID:           profile.OwnerID,
			HouseNumber:       houseNumber,
			StartDate:         start,
			EndDate:           end,
		}

		reservation, err := m.bookingService.Reserve(ctx, params, time.Now().UTC())
		return createdMsg{reservation: reservation, err: err}
	}
}
