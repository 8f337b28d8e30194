package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"stylecheck/internal/driver"
)

// maxActiveRows: сколько файлов в работе показываем одновременно.
// На проектах в сотни файлов полный список не помещается в терминал.
const maxActiveRows = 8

type fileState uint8

const (
	stateQueued fileState = iota
	stateWorking
	stateDone
	stateFailed
)

type fileItem struct {
	path  string
	state fileState
	stage driver.Stage
	count int    // найдено диагностик
	err   string // причина для stateFailed
}

func (it *fileItem) finished() bool {
	return it.state == stateDone || it.state == stateFailed
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool

	finished int
	findings int
	failures []int // индексы упавших файлов в порядке событий
}

type eventMsg driver.Event
type doneMsg struct{}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewProgressModel returns a Bubble Tea model that renders check progress.
// files may be empty: queued events add files as discovery reports them.
// The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for _, file := range files {
		m.add(file)
	}
	return m
}

func (m *progressModel) add(path string) int {
	idx := len(m.items)
	m.items = append(m.items, fileItem{path: path})
	m.index[path] = idx
	return idx
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
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
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s %d/%d files", m.title, m.finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d findings", m.findings)))
	if len(m.failures) > 0 {
		b.WriteString("  ")
		b.WriteString(failStyle.Render(fmt.Sprintf("%d failed", len(m.failures))))
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	shown, hidden := 0, 0
	for i := range m.items {
		it := &m.items[i]
		if it.state != stateWorking {
			continue
		}
		if shown == maxActiveRows {
			hidden++
			continue
		}
		shown++
		fmt.Fprintf(&b, "  %s %s\n", workingStyle.Render(fmt.Sprintf("%-10s", stageLabel(it.stage))), truncate(it.path, nameWidth))
	}
	if hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", hidden)))
		b.WriteString("\n")
	}
	for _, idx := range m.failures {
		it := &m.items[idx]
		line := truncate(it.path+": "+it.err, nameWidth)
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render(fmt.Sprintf("%-10s", "error")), line)
	}
	if m.done && len(m.failures) == 0 {
		b.WriteString("  " + okStyle.Render("all files checked") + "\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		// список файлов может быть неизвестен заранее: его даёт обход каталогов
		if ev.Status != driver.StatusQueued {
			return nil
		}
		idx = m.add(ev.File)
	}
	it := &m.items[idx]
	if it.finished() {
		return nil
	}
	switch ev.Status {
	case driver.StatusWorking:
		it.state = stateWorking
		it.stage = ev.Stage
	case driver.StatusDone:
		it.state = stateDone
		it.count = ev.Count
		m.finished++
		m.findings += ev.Count
	case driver.StatusError:
		it.state = stateFailed
		if ev.Err != nil {
			it.err = ev.Err.Error()
		}
		m.finished++
		m.failures = append(m.failures, idx)
	}
	return m.prog.SetPercent(m.percent())
}

// percent считает долю работы: завершённые файлы плюс вклад текущих стадий.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := float64(m.finished)
	for i := range m.items {
		if m.items[i].state == stateWorking {
			total += progressFromStage(m.items[i].stage)
		}
	}
	return total / float64(len(m.items))
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageParse:
		return 0.3
	case driver.StageAnalyze:
		return 0.7
	default:
		return 0.0
	}
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageParse:
		return "parsing"
	case driver.StageAnalyze:
		return "analyzing"
	default:
		return ""
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// width включает "..."
	return runewidth.Truncate(value, width, "...")
}
