package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fdtd1d/internal/experiment"
	"github.com/san-kum/fdtd1d/internal/metrics"
)

const (
	canvasWidth  = 64
	canvasHeight = 14
	tickRate     = time.Second / 30
	maxSpeed     = 64
)

type View int

const (
	ViewEz View = iota
	ViewHy
	ViewEzSpectrum
	ViewHySpectrum
	numViews
)

func (v View) String() string {
	switch v {
	case ViewEz:
		return "Ez"
	case ViewHy:
		return "Hy"
	case ViewEzSpectrum:
		return "Ez spectrum"
	case ViewHySpectrum:
		return "Hy spectrum"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

type TickMsg time.Time

// Model replays a finished run.
type Model struct {
	result   *experiment.Result
	frame    int
	view     View
	playing  bool
	speed    int
	showHelp bool
	canvas   *Canvas
	energy   []float64
	peakEz   float64
	peakHy   float64
}

func NewModel(result *experiment.Result) Model {
	m := Model{
		result:  result,
		playing: len(result.EzT) > 1,
		speed:   1,
		canvas:  NewCanvas(canvasWidth/2, canvasHeight/2),
		energy:  make([]float64, len(result.EzT)),
	}

	for q := range result.EzT {
		m.energy[q] = metrics.FieldEnergy(result.EzT[q], result.HyT[q])
		m.peakEz = math.Max(m.peakEz, peakAbs(result.EzT[q]))
		m.peakHy = math.Max(m.peakHy, peakAbs(result.HyT[q]))
	}
	return m
}

func peakAbs(row []float64) float64 {
	var peak float64
	for _, v := range row {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

func (m Model) Frame() int        { return m.frame }
func (m Model) CurrentView() View { return m.view }
func (m Model) Playing() bool     { return m.playing }
func (m Model) Speed() int        { return m.speed }

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) last() int {
	return max(0, len(m.result.EzT)-1)
}

// seek moves the play head by delta frames, clamped to the run.
func (m *Model) seek(delta int) {
	m.frame = max(0, min(m.last(), m.frame+delta))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.playing && m.frame == m.last() {
				m.frame = 0
			}
			m.playing = !m.playing && m.last() > 0
		case "[":
			m.playing = false
			m.seek(-1)
		case "]":
			m.playing = false
			m.seek(1)
		case "home":
			m.frame = 0
		case "end":
			m.frame = m.last()
		case "tab":
			m.view = (m.view + 1) % numViews
		case "shift+tab":
			m.view = (m.view + numViews - 1) % numViews
		case "+", "=":
			m.speed = min(maxSpeed, m.speed*2)
		case "-", "_":
			m.speed = max(1, m.speed/2)
		case "t":
			SetTheme(nextTheme(CurrentTheme.Name))
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing {
			m.seek(m.speed)
			if m.frame == m.last() {
				m.playing = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	res := m.result
	if len(res.EzT) == 0 {
		return "no frames recorded\n"
	}

	var s strings.Builder
	s.WriteString(headerStyle().Render(fmt.Sprintf("%s · %s", strings.ToUpper(res.Name), m.view)) + "\n")

	status := StatusPaused.Render("PAUSED")
	if m.playing {
		status = StatusRunning.Render(fmt.Sprintf("PLAYING x%d", m.speed))
	}
	s.WriteString(status + "\n\n")

	main := panelStyle.Render(m.renderView())
	stats := statsStyle.Render(m.renderStats())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, main, stats) + "\n")
	s.WriteString(KeyHint.Render("space:play  [ ]:step  tab:view  +/-:speed  t:theme  ?:help  q:quit"))

	if m.showHelp {
		return helpText + "\n" + s.String()
	}
	return s.String()
}

func (m Model) renderView() string {
	res := m.result
	q := m.frame

	switch m.view {
	case ViewEz, ViewHy:
		frame, peak := res.EzT[q], m.peakEz
		if m.view == ViewHy {
			frame, peak = res.HyT[q], m.peakHy
		}
		m.canvas.Clear()
		m.canvas.Profile(frame, peak)
		m.canvas.Slab(res.Config.Material.Start, res.Config.Material.Width, len(frame))
		return fieldStyle().Render(m.canvas.String())
	default:
		spectrum := res.EzSpectrum
		if m.view == ViewHySpectrum {
			spectrum = res.HySpectrum
		}
		if q >= len(spectrum) {
			return "no spectrum"
		}
		bins := min(len(res.FrequencyAxis), len(spectrum[q]))
		if bins < 2 {
			return "no spectrum"
		}
		return asciigraph.Plot(spectrum[q][:bins],
			asciigraph.Height(canvasHeight/2),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption(fmt.Sprintf("%s, 0 to 0.5 cycles/sample", m.view)))
	}
}

func (m Model) renderStats() string {
	res := m.result
	q := m.frame

	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}

	row("Step", fmt.Sprintf("%d/%d", q, res.Steps-1))
	row("Cells", fmt.Sprintf("%d", res.Cells))
	row("Source", res.Config.Source.Kind)
	row("Slab", fmt.Sprintf("%d..%d eps %.1f", res.Config.Material.Start,
		res.Config.Material.Start+res.Config.Material.Width, res.Config.Material.Permittivity))
	row("|Ez| max", fmt.Sprintf("%.3g", peakAbs(res.EzT[q])))
	row("Energy", fmt.Sprintf("%.3g", m.energy[q]))

	s.WriteString("\n" + ProgressBar(float64(q)/float64(max(1, m.last())), 30) + "\n")
	s.WriteString(SparklineChart(m.energy, 30) + "\n")

	if len(res.Metrics) > 0 {
		s.WriteString("\n" + Subtle.Render("RUN METRICS") + "\n")
		names := make([]string, 0, len(res.Metrics))
		for name := range res.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			row(name, fmt.Sprintf("%.4g", res.Metrics[name]))
		}
	}
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  [ / ]    - Step back/forward        ║
║  Home/End - First/last frame         ║
║  Tab      - Next view                ║
║  + / -    - Faster/slower            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run starts the playback program on the terminal.
func Run(result *experiment.Result) error {
	_, err := tea.NewProgram(NewModel(result), tea.WithAltScreen()).Run()
	return err
}
