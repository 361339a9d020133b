package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulse/internal/cli/formatter"
	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/rollup"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive portfolio dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("dashboard needs an interactive terminal; use portfolio or summary instead")
			}
			asOf, err := app.asOf()
			if err != nil {
				return err
			}
			p := tea.NewProgram(newDashboardModel(app, asOf), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeys struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Refresh  key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "project/site")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recompute")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Refresh, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PageUp, k.PageDown}}
}

// ── messages ─────────────────────────────────────────────────────────────────

type portfolioLoadedMsg struct {
	by   rollup.AggregateBy
	resp *contract.PortfolioResponse
	err  error
}

type headlineLoadedMsg struct {
	resp *contract.SummaryResponse
	err  error
}

type detailLoadedMsg struct {
	projectID string
	resp      *contract.SummaryResponse
	err       error
}

// ── model ────────────────────────────────────────────────────────────────────

// dashboardModel shows the breakdown table, the portfolio headline and a
// scrollable detail pane for the selected row.
type dashboardModel struct {
	app  *App
	asOf *time.Time
	by   rollup.AggregateBy

	portfolio *contract.PortfolioResponse
	headline  *contract.SummaryResponse
	detail    *contract.SummaryResponse
	cursor    int
	loading   bool
	err       error

	width, height int
	keys          dashboardKeys
	help          help.Model
	pane          viewport.Model
}

func newDashboardModel(app *App, asOf *time.Time) *dashboardModel {
	return &dashboardModel{
		app:     app,
		asOf:    asOf,
		by:      rollup.ByProject,
		loading: true,
		keys:    newDashboardKeys(),
		help:    help.New(),
		pane:    newDetailPane(),
	}
}

// newDetailPane scrolls on page keys only.
func newDetailPane() viewport.Model {
	vp := viewport.New(80, 10)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
	return vp
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadPortfolio(), m.loadHeadline())
}

func (m *dashboardModel) loadPortfolio() tea.Cmd {
	app, asOf, by := m.app, m.asOf, m.by
	return func() tea.Msg {
		req := contract.NewPortfolioRequest()
		req.AsOf = asOf
		req.AggregateBy = by
		resp, err := app.Analytics.Portfolio(context.Background(), req)
		return portfolioLoadedMsg{by: by, resp: resp, err: err}
	}
}

func (m *dashboardModel) loadHeadline() tea.Cmd {
	app, asOf := m.app, m.asOf
	return func() tea.Msg {
		resp, err := app.Analytics.Summary(context.Background(), contract.SummaryRequest{AsOf: asOf})
		return headlineLoadedMsg{resp: resp, err: err}
	}
}

func (m *dashboardModel) loadDetail() tea.Cmd {
	row, ok := m.selected()
	if !ok || m.by != rollup.ByProject {
		return nil
	}
	app, asOf, id := m.app, m.asOf, row.ID
	return func() tea.Msg {
		resp, err := app.Analytics.Summary(context.Background(), contract.SummaryRequest{AsOf: asOf, ProjectID: id})
		return detailLoadedMsg{projectID: id, resp: resp, err: err}
	}
}

func (m *dashboardModel) selected() (rollup.BreakdownItem, bool) {
	if m.portfolio == nil || m.cursor < 0 || m.cursor >= len(m.portfolio.Breakdown) {
		return rollup.BreakdownItem{}, false
	}
	return m.portfolio.Breakdown[m.cursor], true
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizePane()
		return m, nil

	case portfolioLoadedMsg:
		if msg.by != m.by {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.portfolio = msg.resp
		m.detail = nil
		if m.portfolio != nil && m.cursor >= len(m.portfolio.Breakdown) {
			m.cursor = max(0, len(m.portfolio.Breakdown)-1)
		}
		m.resizePane()
		m.refreshPane()
		return m, m.loadDetail()

	case headlineLoadedMsg:
		if msg.err == nil {
			m.headline = msg.resp
		}
		return m, nil

	case detailLoadedMsg:
		if row, ok := m.selected(); ok && row.ID == msg.projectID && msg.err == nil {
			m.detail = msg.resp
			m.refreshPane()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.by == rollup.ByProject {
				m.by = rollup.BySite
			} else {
				m.by = rollup.ByProject
			}
			m.cursor = 0
			m.loading = true
			return m, m.loadPortfolio()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, tea.Batch(m.loadPortfolio(), m.loadHeadline())
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.detail = nil
				m.refreshPane()
				return m, m.loadDetail()
			}
		case key.Matches(msg, m.keys.Down):
			if m.portfolio != nil && m.cursor < len(m.portfolio.Breakdown)-1 {
				m.cursor++
				m.detail = nil
				m.refreshPane()
				return m, m.loadDetail()
			}
		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
			var cmd tea.Cmd
			m.pane, cmd = m.pane.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// resizePane gives the detail pane whatever height the table leaves.
func (m *dashboardModel) resizePane() {
	if m.width > 0 {
		m.pane.Width = m.width
	}
	if m.height == 0 {
		return
	}
	rows := 0
	if m.portfolio != nil {
		rows = len(m.portfolio.Breakdown)
	}
	const chrome = 12
	m.pane.Height = max(3, m.height-chrome-rows)
}

func (m *dashboardModel) refreshPane() {
	switch {
	case m.portfolio == nil:
		m.pane.SetContent("")
	case m.by == rollup.BySite:
		m.pane.SetContent(formatter.FormatAggregate(m.portfolio.Aggregate))
	case m.detail != nil:
		m.pane.SetContent(formatter.FormatSummary(m.detail))
	default:
		m.pane.SetContent(formatter.Dim("Loading summary..."))
	}
	m.pane.GotoTop()
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Pulse dashboard") + "\n")

	status := "by " + string(m.by)
	if m.portfolio != nil {
		status += "  as of " + m.portfolio.AsOf.Format("2006-01-02")
	}
	if m.loading {
		status += "  computing..."
	}
	b.WriteString(formatter.Dim(status) + "\n\n")

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
		var ae *contract.AnalyticsError
		if errors.As(m.err, &ae) && ae.Code == contract.ErrEmptySnapshot {
			b.WriteString(formatter.Dim("Run `pulse import <snapshot.json>` to load data.") + "\n")
		}
		b.WriteString("\n" + m.help.View(m.keys))
		return b.String()
	}

	if m.headline != nil {
		b.WriteString(formatter.RenderBox("", headline(m.headline)) + "\n\n")
	}

	if m.portfolio != nil {
		b.WriteString(m.tableView())
		agg := m.portfolio.Aggregate
		fmt.Fprintf(&b, "\n%s SPI %s  CPI %s  health %.0f\n\n",
			formatter.Bold("Portfolio"), formatter.Ratio(agg.SPI.Value), formatter.Ratio(agg.CPI.Value), agg.HealthScore.Value)
		b.WriteString(m.pane.View() + "\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *dashboardModel) tableView() string {
	cols := []formatter.Column{
		{Title: " "},
		{Title: "NAME"},
		{Title: "TASKS", Right: true},
		{Title: "COMPLETE", Right: true},
		{Title: "SPI", Right: true},
		{Title: "CPI", Right: true},
		{Title: "VAR", Right: true},
	}
	rows := make([][]string, 0, len(m.portfolio.Breakdown))
	for i, item := range m.portfolio.Breakdown {
		marker := " "
		name := item.Name
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("▸")
			name = formatter.Bold(name)
		}
		rows = append(rows, []string{
			marker,
			name,
			fmt.Sprint(item.TaskCount),
			formatter.Percent(item.PercentComplete),
			formatter.Ratio(item.SPI),
			formatter.Ratio(item.CPI),
			formatter.Signed(item.VariancePct) + "%",
		})
	}
	if len(rows) == 0 {
		return formatter.Dim("No rows.") + "\n"
	}
	return formatter.RenderColumns(cols, rows)
}
