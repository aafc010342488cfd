// Package ui renders batch-run progress as a terminal UI.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"solvent/internal/driver"
)

type itemState uint8

const (
	stateQueued itemState = iota
	stateWorking
	statePassed
	stateFailed
)

type fixtureItem struct {
	path  string
	state itemState
	stage driver.Stage
}

// label renders the item's status column.
func (it fixtureItem) label() string {
	switch it.state {
	case statePassed:
		return "pass"
	case stateFailed:
		return "fail"
	case stateWorking:
		switch it.stage {
		case driver.StageSolve:
			return "solving"
		case driver.StageCheck:
			return "checking"
		default:
			return "loading"
		}
	}
	return "queued"
}

// fraction is the item's contribution to the overall progress bar.
func (it fixtureItem) fraction() float64 {
	switch it.state {
	case statePassed, stateFailed:
		return 1.0
	case stateWorking:
		switch it.stage {
		case driver.StageSolve:
			return 0.4
		case driver.StageCheck:
			return 0.9
		default:
			return 0.1
		}
	}
	return 0.0
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (it fixtureItem) style() lipgloss.Style {
	switch it.state {
	case statePassed:
		return passStyle
	case stateFailed:
		return failStyle
	case stateWorking:
		return workingStyle
	}
	return queuedStyle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fixtureItem
	index   map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress
// for the given fixture paths, consuming events until the channel closes.
func NewProgressModel(title string, fixtures []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	items := make([]fixtureItem, len(fixtures))
	index := make(map[string]int, len(fixtures))
	for i, path := range fixtures {
		items[i] = fixtureItem{path: path}
		index[path] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.nextEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		model, cmd := m.bar.Update(msg)
		m.bar = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) nextEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.Fixture]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.stage = ev.Stage
	switch ev.Status {
	case driver.StatusWorking:
		item.state = stateWorking
	case driver.StatusDone:
		item.state = statePassed
	case driver.StatusError:
		item.state = stateFailed
	}

	total := 0.0
	for _, it := range m.items {
		total += it.fraction()
	}
	return m.bar.SetPercent(total / float64(len(m.items)))
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}

	passed, failed := 0, 0
	for _, it := range m.items {
		switch it.state {
		case statePassed:
			passed++
		case stateFailed:
			failed++
		}
	}

	var b strings.Builder
	if m.done {
		b.WriteString(titleStyle.Render(fmt.Sprintf("done: %s", m.title)))
	} else {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.title)))
	}
	fmt.Fprintf(&b, "  %d pass, %d fail, %d total\n\n", passed, failed, len(m.items))

	nameWidth := max(m.width-14, 20)
	for _, it := range m.items {
		status := it.style().Render(fmt.Sprintf("%9s", it.label()))
		fmt.Fprintf(&b, "  %s %s\n", status, truncatePath(it.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func truncatePath(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	if width <= 3 {
		return runewidth.Truncate(path, width, "")
	}
	return runewidth.Truncate(path, width-3, "...")
}
