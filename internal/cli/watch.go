package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanbaker/peek/internal/ui"
)

// watchCommand starts the live sensor table.
func watchCommand(interval time.Duration) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	instances, err := buildAll(cfg)
	if err != nil {
		return err
	}

	model := newWatchModel(instances, interval)
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err = program.Run()
	return err
}

// sensorValue is one row of the watch table.
type sensorValue struct {
	name  string
	kind  string
	ok    string
	value string
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// valuesMsg carries freshly sampled values for all sensors.
type valuesMsg []sensorValue

// watchModel is the Bubble Tea model for the watch table.
type watchModel struct {
	instances []*instance
	table     table.Model
	interval  time.Duration
	width     int
	quitting  bool
}

func newWatchModel(instances []*instance, interval time.Duration) *watchModel {
	columns := []table.Column{
		{Title: "SENSOR", Width: 16},
		{Title: "TYPE", Width: 8},
		{Title: "OK", Width: 5},
		{Title: "VALUE", Width: 48},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(len(instances)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(ui.ColorSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(ui.ColorInfo).
		Bold(true)
	t.SetStyles(styles)

	return &watchModel{
		instances: instances,
		table:     t,
		interval:  interval,
	}
}

// Init starts the first sample cycle.
func (m *watchModel) Init() tea.Cmd {
	return m.sampleAll()
}

// sampleAll samples every sensor off the UI loop. Each sensor is
// rate-gated internally, so refreshing faster than a sensor's rate just
// re-renders its cached state.
func (m *watchModel) sampleAll() tea.Cmd {
	instances := m.instances
	return func() tea.Msg {
		ctx := context.Background()
		values := make(valuesMsg, len(instances))
		for i, inst := range instances {
			rate := inst.Config.EffectiveRate()
			res := inst.Sensor.Sample(ctx, rate, inst.Config.EffectiveFormat())

			// Rendering {success} right after stays inside the rate
			// window, so it reads the cache instead of re-fetching.
			okMark := ui.SymbolFail
			if inst.Sensor.Sample(ctx, rate, "{success}").Value == "true" {
				okMark = ui.SymbolSuccess
			}

			values[i] = sensorValue{
				name:  inst.Name,
				kind:  inst.Config.Type,
				ok:    okMark,
				value: singleLine(res.Value),
			}
		}
		return values
	}
}

// Update handles messages.
func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetWidth(msg.Width)

	case valuesMsg:
		rows := make([]table.Row, len(msg))
		for i, v := range msg {
			rows[i] = table.Row{v.name, v.kind, v.ok, v.value}
		}
		m.table.SetRows(rows)
		return m, tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })

	case tickMsg:
		return m, m.sampleAll()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table with a title and help line.
func (m *watchModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorSecondary)
	helpStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("peek watch"))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit • j/k move"))
	return b.String()
}

// singleLine flattens a rendered value for one-row display.
func singleLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}
