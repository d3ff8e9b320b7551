package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/filski95/web-app-challets/internal/booking"
)

type ReservationsModel struct {
	CommonModel
	bookingService *booking.Service

	table        table.Model
	reservations []*booking.Reservation

	// Filter cycling
	statusFilterIdx int

	filter  booking.ListFilter
	loading bool
	err     error
}

var statusFilters = []*booking.Status{
	nil,
	new(booking.StatusNotConfirmed),
	new(booking.StatusConfirmed),
	new(booking.StatusCancelled),
	new(booking.StatusCompleted),
}

func NewReservationsModel(bookingSvc *booking.Service) ReservationsModel {
	columns := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "House", Width: 6},
		{Title: "Status", Width: 14},
		{Title: "Start", Width: 12},
		{Title: "End", Width: 12},
		{Title: "Nights", Width: 7},
		{Title: "Total", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ReservationsModel{
		bookingService: bookingSvc,
		table:          t,
		filter:         booking.ListFilter{},
	}
}

func (m ReservationsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReservationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReservationsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.reservations = msg.reservations
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.filter.Status = statusFilters[m.statusFilterIdx]
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReservationsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading reservations...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := "All"
	if f := statusFilters[m.statusFilterIdx]; f != nil {
		label = f.String()
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | [r] refresh | Esc: back",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(label))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		),
	)
}

func (m *ReservationsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.reservations))
	for _, r := range m.reservations {
		start, end := "-", "-"
		if r.StartDate != nil {
			start = FormatDate(*r.StartDate)
		}
		if r.EndDate != nil {
			end = FormatDate(*r.EndDate)
		}
		rows = append(rows, table.Row{
			r.Number,
			fmt.Sprintf("%d", r.HouseNumber),
			r.Status.String(),
			start,
			end,
			fmt.Sprintf("%d", r.Nights),
			fmt.Sprintf("%d", r.TotalPrice),
		})
	}
	m.table.SetRows(rows)
}

type loadReservationsMsg struct {
	reservations []*booking.Reservation
	err          error
}

func (m ReservationsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		reservations, err := m.bookingService.List(ctx, m.filter)
		return loadReservationsMsg{reservations: reservations, err: err}
	}
}
