// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] draws two panels, a menu on the left and the content on the
// right, from the snapshots the engine publishes, and forwards key
// presses to the engine as key codes. It never looks at engine state
// directly: everything arrives over the channels in engine.Channels.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/lrcgen/internal/channel"
	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/engine"
	"github.com/hammamikhairi/lrcgen/internal/logger"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bae6fd"))

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	// Primary text: light zinc for lyric lines.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text: dimmed zinc for hints.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	emphasisStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true).
			Padding(0, 2)

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	// BannerStyle is a muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)

const (
	menuWidth     = 34
	minContentW   = 30
	defaultWidth  = 100
	defaultHeight = 20
	pendingKeys   = 64
)

// ── UI ───────────────────────────────────────────────────────────

// UI is the render side of the generator.
//
// Call [NewUI] then [UI.Run] (blocking). Run returns once the engine has
// published its final menu, or when the user forces an exit with a
// second Ctrl+C.
type UI struct {
	ch  engine.Channels
	log *logger.Logger
}

// NewUI creates the display over the engine's channels.
func NewUI(ch engine.Channels, log *logger.Logger) *UI {
	return &UI{ch: ch, log: log}
}

// Run starts the Bubble Tea event loop. Blocks until quit. It reports
// whether the engine finished on its own.
func (u *UI) Run() (finished bool, err error) {
	pending := make(chan domain.Key, pendingKeys)
	go forwardKeys(pending, u.ch.Keys)

	m := newModel(u.ch, pending, u.log)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	close(pending)
	if err != nil {
		return false, err
	}
	if fm, ok := final.(model); ok {
		return fm.final, nil
	}
	return false, nil
}

// forwardKeys is the only producer on the key channel. Update hands keys
// over without blocking, so the event loop keeps draining snapshots even
// while the engine is busy and not reading keys.
func forwardKeys(pending <-chan domain.Key, keys *channel.Channel[domain.Key]) {
	for k := range pending {
		keys.Produce(k)
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ch          engine.Channels
	pending     chan<- domain.Key
	log         *logger.Logger
	keys        keyMap
	help        help.Model
	menu        domain.Menu
	content     domain.Content
	width       int
	height      int
	interrupted bool
	final       bool
}

// Messages.
type menuMsg domain.Menu
type contentMsg domain.Content

func newModel(ch engine.Channels, pending chan<- domain.Key, log *logger.Logger) model {
	return model{
		ch:      ch,
		pending: pending,
		log:     log,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForMenu(m.ch.Menus),
		waitForContent(m.ch.Content),
		tea.SetWindowTitle("lrcgen"),
	)
}

// waitForMenu consumes one menu snapshot. It is re-armed after every
// message so the channel has a single consumer at a time.
func waitForMenu(menus *channel.Channel[domain.Menu]) tea.Cmd {
	return func() tea.Msg {
		return menuMsg(menus.Consume())
	}
}

func waitForContent(content *channel.Channel[domain.Content]) tea.Cmd {
	return func() tea.Msg {
		return contentMsg(content.Consume())
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case menuMsg:
		m.menu = domain.Menu(msg)
		if m.menu.Final {
			m.final = true
			return m, tea.Quit
		}
		return m, waitForMenu(m.ch.Menus)

	case contentMsg:
		m.content = domain.Content(msg)
		return m, waitForContent(m.ch.Content)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.final {
			return m, nil
		}
		codes := m.keys.translate(msg)
		if len(codes) == 1 && codes[0] == domain.KeyInterrupt {
			if m.interrupted {
				m.log.Warn("forced exit before the lyrics were saved")
				return m, tea.Quit
			}
			m.interrupted = true
		}
		for _, k := range codes {
			m.send(k)
		}
		return m, nil
	}
	return m, nil
}

// send queues a key for the engine, dropping it when the engine is far
// behind.
func (m model) send(k domain.Key) {
	select {
	case m.pending <- k:
	default:
		m.log.Warn("dropped key %s: engine is not keeping up", k)
	}
}

func (m model) View() string {
	if m.final {
		return ""
	}

	contentWidth := max(m.width-menuWidth-4, minContentW)
	height := max(m.height-4, 6)

	menu := panelStyle.Width(menuWidth).Height(height).Render(m.renderMenu())
	content := panelStyle.Width(contentWidth).Height(height).Render(m.renderContent(contentWidth))

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, menu, content))
	b.WriteByte('\n')
	if m.interrupted {
		b.WriteString(urgentStyle.Render("  saving... press ctrl+c again to exit without saving"))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m model) renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menu.Title))
	b.WriteString("\n\n")
	for _, item := range m.menu.Items {
		fmt.Fprintf(&b, "%s  %s\n", menuKeyStyle.Render(fmt.Sprintf("%-6s", item.Key)), primaryStyle.Render(item.Action))
	}
	return b.String()
}

func (m model) renderContent(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.content.Title))
	b.WriteString("\n\n")

	if m.content.Emphasis && len(m.content.Lines) > 0 {
		center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
		b.WriteString(center.Render(emphasisStyle.Render(m.content.Lines[0])))
		for _, l := range m.content.Lines[1:] {
			b.WriteByte('\n')
			b.WriteString(center.Render(secondaryStyle.Render(l)))
		}
		return b.String()
	}

	for _, l := range m.content.Lines {
		b.WriteString(primaryStyle.Render(l))
		b.WriteByte('\n')
	}
	if len(m.content.Hints) > 0 {
		b.WriteByte('\n')
		for _, h := range m.content.Hints {
			b.WriteString(secondaryStyle.Render(h))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
