package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/filski95/web-app-challets/internal/customer"
	"github.com/filski95/web-app-challets/internal/sweeper"
)

type SweepModel struct {
	CommonModel
	sweeper   *sweeper.Sweeper
	hierarchy customer.Hierarchy

	running   bool
	done      bool
	completed int
	err       error
}

func NewSweepModel(s *sweeper.Sweeper, hierarchy customer.Hierarchy) SweepModel {
	return SweepModel{sweeper: s, hierarchy: hierarchy}
}

func (m SweepModel) Init() tea.Cmd {
	return nil
}

func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sweepDoneMsg:
		m.running = false
		m.done = true
		m.completed = msg.completed
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter", "y":
			if m.running {
				return m, nil
			}

			m.running = true
			m.done = false
			return m, m.runCmd()
		}
	}

	return m, nil
}

func (m SweepModel) View() string {
	style := lipgloss.NewStyle().Padding(1, 2)

	if m.running {
		return style.Render("Sweeping ended stays...")
	}

	if m.done {
		if m.err != nil {
			return style.Render(fmt.Sprintf("Sweep failed: %v\n\nEnter: retry | Esc: back", m.err))
		}

		return style.Render(fmt.Sprintf("Sweep finished: %d reservations completed.\n\nEnter: run again | Esc: back", m.completed))
	}

	return style.Render("Complete all stays ending today or earlier?\n\nEnter: run | Esc: back")
}

type sweepDoneMsg struct {
	completed int
	err       error
}

func (m SweepModel) runCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		completed, err := m.sweeper.Run(ctx, time.Now().UTC(), m.hierarchy)
		return sweepDoneMsg{completed: completed, err: err}
	}
}
