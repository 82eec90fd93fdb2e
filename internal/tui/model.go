// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/typecore/internal/catalog"
	"github.com/verte-zerg/typecore/internal/engine"
	"github.com/verte-zerg/typecore/internal/model"
	"github.com/verte-zerg/typecore/internal/stats"
)

// Sounds plays feedback. It also receives the engine's keystroke notifications.
type Sounds interface {
	engine.Feedback
	Success()
	Toggle() bool
	Enabled() bool
}

// NextFunc picks the exercise that follows current.
type NextFunc func(current model.Exercise) (model.Exercise, bool)

// CompositionStartMsg reports that an input method opened a composition.
type CompositionStartMsg struct{}

// CompositionEndMsg carries the full input after a composition was committed.
type CompositionEndMsg struct {
	Text string
}

type tickMsg struct {
	id int
}

type keyMap struct {
	Quit    key.Binding
	Restart key.Binding
	Next    key.Binding
	Sound   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Next, k.Sound, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Sound:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sound")),
	}
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	engine   *engine.Engine
	exercise model.Exercise
	next     NextFunc
	sounds   Sounds

	keys keyMap
	help help.Model

	width  int
	height int

	tickID     int
	lastStatus model.Status
	notice     string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pinyinStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	translationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	composingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4FA3FF"))
	resultStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
)

// NewModel constructs a typing TUI model for the given exercise. Sounds and
// next may be nil.
func NewModel(ex model.Exercise, next NextFunc, sounds Sounds, opts ...engine.Option) *Model {
	if sounds != nil {
		opts = append(opts, engine.WithFeedback(sounds))
	}
	m := &Model{
		engine:   engine.New(ex.Content, opts...),
		exercise: ex,
		next:     next,
		sounds:   sounds,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.lastStatus = m.engine.Status()
	m.tickID = m.engine.TickID()
	return m
}

// Engine exposes the session engine.
func (m *Model) Engine() *engine.Engine {
	return m.engine
}

// Exercise returns the exercise being practiced.
func (m *Model) Exercise() model.Exercise {
	return m.exercise
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.engine.Tick(msg.id) {
			return m, tick(msg.id)
		}
		return m, nil
	case CompositionStartMsg:
		m.engine.BeginComposition()
	case CompositionEndMsg:
		m.engine.EndComposition(norm.NFC.String(msg.Text))
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	default:
		return m, nil
	}
	return m, m.afterEvent()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Restart):
		m.engine.Reset()
		m.notice = ""
		return nil, false
	case key.Matches(msg, m.keys.Next):
		m.nextExercise()
		return nil, false
	case key.Matches(msg, m.keys.Sound):
		m.toggleSound()
		return nil, true
	}

	if m.engine.Status() == model.StatusFinished {
		if msg.Type == tea.KeyEnter {
			m.engine.Reset()
		}
		return nil, false
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
	case tea.KeySpace:
		m.handleRunes([]rune{' '}, false)
	case tea.KeyRunes:
		m.handleRunes(msg.Runes, msg.Paste)
	}
	return nil, false
}

func (m *Model) handleBackspace() {
	input := m.engine.InputRunes()
	if len(input) == 0 {
		return
	}
	m.engine.SubmitInput(string(input[:len(input)-1]))
}

// A terminal delivers committed IME text as one multi-rune key event, so a
// chunk is scored as a composition rather than as separate keystrokes.
func (m *Model) handleRunes(runes []rune, paste bool) {
	candidate := norm.NFC.String(m.engine.Input() + string(runes))
	if len(runes) > 1 || paste {
		m.engine.BeginComposition()
		m.engine.EndComposition(candidate)
		return
	}
	m.engine.SubmitInput(candidate)
}

func (m *Model) nextExercise() {
	if m.next == nil {
		m.engine.Reset()
		return
	}
	ex, ok := m.next(m.exercise)
	if !ok {
		m.engine.Reset()
		return
	}
	m.exercise = ex
	m.engine.ResetTarget(ex.Content)
	m.notice = ""
}

func (m *Model) toggleSound() {
	if m.sounds == nil {
		m.notice = "sound unavailable"
		return
	}
	if m.sounds.Toggle() {
		m.notice = "sound on"
	} else {
		m.notice = "sound off"
	}
}

// afterEvent reacts to status transitions: a finished session plays the
// success cue, and a newly running session gets a single tick chain.
func (m *Model) afterEvent() tea.Cmd {
	status := m.engine.Status()
	if status != m.lastStatus && status == model.StatusFinished && m.sounds != nil {
		m.sounds.Success()
	}
	m.lastStatus = status

	if !m.engine.Ticking() {
		m.tickID = m.engine.TickID()
		return nil
	}
	if id := m.engine.TickID(); id != m.tickID {
		m.tickID = id
		return tick(id)
	}
	return nil
}

func tick(id int) tea.Cmd {
	return tea.Tick(engine.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := m.width * 7 / 10
	if contentWidth < 1 {
		contentWidth = 0
	}

	sections := []string{m.renderHeader(), m.renderTitle()}
	if hint := m.renderPinyinHint(); hint != "" {
		sections = append(sections, hint)
	}
	sections = append(sections, "", m.renderText(contentWidth))
	if m.exercise.Translation != "" {
		translation := translationStyle.Render(m.exercise.Translation)
		if contentWidth > 0 {
			translation = translationStyle.Width(contentWidth).Render(m.exercise.Translation)
		}
		sections = append(sections, "", translation)
	}
	if m.engine.Status() == model.StatusFinished {
		sections = append(sections, "", m.renderResult())
	}
	content := strings.Join(sections, "\n")
	footer := m.renderFooter()

	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	s := m.engine.Stats()
	total := len(m.engine.TargetRunes())
	segments := []string{
		fmt.Sprintf("WPM %d", s.WPM),
		fmt.Sprintf("Errors %d", s.Errors),
		fmt.Sprintf("Progress %d/%d", m.engine.Cursor(), total),
		stats.FormatSeconds(s.ElapsedSeconds),
		m.engine.Status().String(),
	}
	return headerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderTitle() string {
	title := m.exercise.Title
	if title == "" {
		title = m.exercise.ID
	}
	if m.exercise.Author != "" {
		title += " · " + m.exercise.Author
	}
	return titleStyle.Render(title)
}

func (m *Model) renderPinyinHint() string {
	cursor := m.engine.Cursor()
	pinyin := catalog.PinyinAt(m.exercise, cursor)
	if pinyin == "" {
		return ""
	}
	target := m.engine.TargetRunes()
	return pinyinStyle.Render(fmt.Sprintf("%s  %s", string(target[cursor]), pinyin))
}

func (m *Model) renderText(width int) string {
	targetRunes := m.engine.TargetRunes()
	inputRunes := m.engine.InputRunes()
	if len(targetRunes) == 0 {
		return pendingStyle.Render("(empty exercise)")
	}
	cursorIndex := -1
	if len(inputRunes) < len(targetRunes) {
		cursorIndex = len(inputRunes)
	}
	text := wrapText(buildCells(targetRunes, inputRunes, cursorIndex), width)
	if m.engine.Composing() {
		text += "\n" + composingStyle.Render("composing…")
	}
	return text
}

func (m *Model) renderResult() string {
	s := m.engine.Stats()
	rank := stats.RankFor(s.WPM)
	rankStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(rank.Color)).Bold(true)
	lines := []string{
		rankStyle.Render("Complete · " + rank.Title),
		"",
		fmt.Sprintf("%d WPM", s.WPM),
		fmt.Sprintf("Accuracy %d%%   CPM %d", s.Accuracy, s.CPM),
		fmt.Sprintf("Errors %d   Time %s", s.Errors, stats.FormatSeconds(s.ElapsedSeconds)),
		"",
		"enter restart · tab next",
	}
	return resultStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.notice != "" {
		footer = headerStyle.Render(m.notice) + "  " + footer
	}
	return footer
}
