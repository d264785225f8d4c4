package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/windlass/ringview/pkg/anim"
	"github.com/windlass/ringview/pkg/config"
	"github.com/windlass/ringview/pkg/feed"
	"github.com/windlass/ringview/pkg/gauge"
)

// statusRows is the number of terminal rows reserved below the gauge for
// the title, status line, and help text.
const statusRows = 4

// EngineTickMsg delivers a scheduled animation tick to the UI goroutine.
type EngineTickMsg struct {
	run func()
}

// FeedMsg delivers one progress update from a feed.
type FeedMsg feed.Update

// FeedClosedMsg signals that the feed channel was closed.
type FeedClosedMsg struct{}

// Model is the Bubbletea model hosting a gauge.
type Model struct {
	engine *anim.Engine
	gauge  *gauge.Gauge
	style  gauge.Style

	title    string
	demo     bool
	duration time.Duration

	footer      progress.Model
	feedPercent float64
	phase       feed.Phase
	message     string
	err         error
	seenFeed    bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model from the configuration. When demo is true the
// gauge responds to keyboard commands instead of a feed.
func NewModel(cfg *config.Config, sched anim.TickScheduler, title string, demo bool) Model {
	style := StyleFromConfig(&cfg.Gauge)

	opts := []anim.Option{
		anim.WithScheduler(sched),
		anim.WithTickInterval(cfg.Animation.TickInterval),
		anim.WithSpinSpeed(cfg.Animation.SpinSpeed),
		anim.WithSpinnerLength(cfg.Animation.SpinnerLength),
	}
	if c, ok := anim.CurveByName(cfg.Animation.ValueCurve); ok {
		opts = append(opts, anim.WithValueCurve(c))
	}
	if c, ok := anim.CurveByName(cfg.Animation.LengthCurve); ok {
		opts = append(opts, anim.WithLengthCurve(c))
	}
	engine := anim.NewEngine(opts...)

	f := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return Model{
		engine:      engine,
		gauge:       gauge.New(engine, style),
		style:       style,
		title:       title,
		demo:        demo,
		duration:    cfg.Animation.Duration,
		footer:      f,
		feedPercent: -1,
	}
}

// StyleFromConfig maps the gauge configuration section onto a style.
func StyleFromConfig(g *config.GaugeConfig) gauge.Style {
	return gauge.Style{
		BarWidth:         g.BarWidth,
		RimWidth:         g.RimWidth,
		ContourSize:      g.ContourSize,
		Padding:          g.Padding,
		BarColor:         g.BarColor,
		RimColor:         g.RimColor,
		SpinnerColor:     g.SpinnerColor,
		FillColor:        g.FillColor,
		ContourColor:     g.ContourColor,
		TextColor:        g.TextColor,
		UnitColor:        g.UnitColor,
		Text:             g.Text,
		ShowPercent:      g.ShowPercent,
		Unit:             g.Unit,
		ShowUnit:         g.ShowUnit,
		AutoTextSize:     g.AutoTextSize,
		TextSize:         g.TextSize,
		UnitSize:         g.UnitSize,
		TextScale:        g.TextScale,
		UnitScale:        g.UnitScale,
		RelativeUnitSize: g.RelUnitSize,
	}
}

// Engine exposes the animation engine for command wiring.
func (m Model) Engine() *anim.Engine {
	return m.engine
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.footer.Width = msg.Width - 10
		if m.footer.Width < 20 {
			m.footer.Width = 20
		}
		gaugeRows := m.height - statusRows
		if gaugeRows < 1 {
			gaugeRows = 1
		}
		m.gauge.Resize(float64(m.width*2), float64(gaugeRows*4))
		return m, nil

	case EngineTickMsg:
		msg.run()
		return m, nil

	case FeedMsg:
		m.applyFeedUpdate(feed.Update(msg))
		return m, nil

	case FeedClosedMsg:
		if m.engine.State() == anim.StateSpinning {
			m.engine.StopSpin()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		m.quitting = true
		m.engine.Close()
		return m, tea.Quit
	}
	if !m.demo {
		return m, nil
	}

	switch key {
	case "s":
		m.engine.StartSpin()
	case "x":
		m.engine.StopSpin()
	case "r":
		target := m.engine.MaxValue() * rand.Float64()
		_ = m.engine.SetValueAnimatedTo(target, m.duration)
	case "i":
		m.engine.SetValue(m.engine.MaxValue() * rand.Float64())
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		digit := float64(key[0] - '0')
		target := m.engine.MaxValue() * digit / 9
		_ = m.engine.SetValueAnimatedTo(target, m.duration)
	}
	return m, nil
}

// applyFeedUpdate translates a feed update into engine commands: spin
// while the extent is unknown, animate toward reported percentages, and
// settle on completion.
func (m *Model) applyFeedUpdate(u feed.Update) {
	m.phase = u.Phase
	m.message = u.Message
	m.err = u.Err

	switch {
	case u.Phase == feed.PhaseFailed:
		if m.engine.State() == anim.StateSpinning {
			m.engine.StopSpin()
		}
	case u.Phase == feed.PhaseComplete:
		m.feedPercent = 100
		_ = m.engine.SetValueAnimatedTo(m.engine.MaxValue(), m.duration)
	case u.Percent >= 0:
		m.feedPercent = u.Percent
		target := m.engine.MaxValue() * u.Percent / 100
		_ = m.engine.SetValueAnimatedTo(target, m.duration)
	default:
		if !m.seenFeed {
			m.engine.StartSpin()
		}
	}
	m.seenFeed = true
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")

	gaugeRows := m.height - statusRows
	if gaugeRows < 1 {
		gaugeRows = 1
	}
	surface := gauge.NewBrailleSurface(m.width, gaugeRows, m.style)
	m.gauge.Draw(surface)
	b.WriteString(surface.Render())
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.helpLine())

	return b.String()
}

func (m Model) statusLine() string {
	if m.err != nil {
		return fmt.Sprintf("%s %s", SymbolError, ErrorStyle.Render(m.err.Error()))
	}
	if m.phase == feed.PhaseComplete {
		return fmt.Sprintf("%s %s", SymbolSuccess, SuccessStyle.Render(m.message))
	}
	if m.phase != "" {
		status := PhaseColor(string(m.phase)).Render(string(m.phase))
		if m.feedPercent >= 0 {
			return fmt.Sprintf("%s %s", status, m.footer.ViewAs(m.feedPercent/100))
		}
		if m.message != "" {
			return fmt.Sprintf("%s %s", status, MutedStyle.Render(m.message))
		}
		return status
	}
	return MutedStyle.Render(m.engine.State().String())
}

func (m Model) helpLine() string {
	if m.demo {
		return HelpStyle.Render("s spin · x stop · r animate · i set · 0-9 target · q quit")
	}
	return HelpStyle.Render("Press q to quit")
}
