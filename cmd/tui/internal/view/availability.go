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
	"github.com/filski95/web-app-challets/internal/house"
)

type AvailabilityModel struct {
	CommonModel
	bookingService *booking.Service

	form      *huh.Form
	formHouse string

	days []time.Time
	done bool
	err  error
}

func NewAvailabilityModel(bookingSvc *booking.Service) AvailabilityModel {
	m := AvailabilityModel{bookingService: bookingSvc}
	m.form = houseForm(&m.formHouse)

	return m
}

func houseForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("house").
				Title("House number").
				Value(value).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > house.MaxNumber {
						return fmt.Errorf("enter a number between 1 and %d", house.MaxNumber)
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m AvailabilityModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AvailabilityModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case availabilityMsg:
		m.done = true
		m.days = msg.days
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.done {
			// Any key starts a fresh lookup.
			m.done = false
			m.days = nil
			m.err = nil
			m.formHouse = ""
			m.form = houseForm(&m.formHouse)
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

	return m, m.lookupCmd()
}

func (m AvailabilityModel) View() string {
	if !m.done {
		return lipgloss.NewStyle().Padding(1, 2).Render("Check availability\n\n" + m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(fmt.Sprintf("Error: %v\n\nAny key: new lookup | Esc: back", m.err))
	}

	if len(m.days) == 0 {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			fmt.Sprintf("House %s is fully free from today on.\n\nAny key: new lookup | Esc: back", m.formHouse))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Taken days for house %s:\n\n", m.formHouse)

	for _, d := range m.days {
		sb.WriteString("  " + FormatDate(d) + "\n")
	}

	sb.WriteString("\nAny key: new lookup | Esc: back")

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

type availabilityMsg struct {
	days []time.Time
	err  error
}

func (m AvailabilityModel) lookupCmd() tea.Cmd {
	number, _ := strconv.Atoi(strings.TrimSpace(m.formHouse))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		days, err := m.bookingService.CheckAvailability(ctx, number, time.Now().UTC())
		return availabilityMsg{days: days, err: err}
	}
}
