package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/iammorganparry/logoflow/internal/controller"
	"github.com/iammorganparry/logoflow/internal/logo"
	"github.com/iammorganparry/logoflow/internal/models"
)

// Messages
type spinnerTickMsg struct{}

// generationDoneMsg is sent when a controller generation call returns.
// Failures have already been surfaced through the Surface; err is kept for
// the in-flight guard.
type generationDoneMsg struct {
	err error
}

type logoSavedMsg struct {
	path string
	err  error
}

type healthMsg struct {
	health *models.HealthResponse
	err    error
}

// HealthChecker reports the backend's health for the status bar.
type HealthChecker interface {
	Health(ctx context.Context) (*models.HealthResponse, error)
}

// Spinner animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Options configures the terminal front end.
type Options struct {
	Models       []string // name models offered by the selector
	DefaultModel string
	OutputDir    string // where saved logos go
	Health       HealthChecker
}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int

	ctx     context.Context
	ctrl    *controller.Controller
	surface *Surface

	// Vision board
	input        textinput.Model
	inputFocused bool
	models       []string
	modelIdx     int

	// Card cursor, independent of the selected card
	cursor int

	outputDir string
	status    string
	statusErr bool

	healthCheck HealthChecker
	backend     string // last health status, empty until known

	showHelp     bool
	spinnerIndex int
	keys         KeyMap
}

// NewModel creates the root model. The controller must drive surface.
func NewModel(ctx context.Context, ctrl *controller.Controller, surface *Surface, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "A futuristic sneaker brand for urban runners..."
	ti.Prompt = "❯ "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 0
	ti.Width = 60

	choices := opts.Models
	if len(choices) == 0 {
		choices = []string{opts.DefaultModel}
	}
	modelIdx := 0
	for i, m := range choices {
		if m == opts.DefaultModel {
			modelIdx = i
			break
		}
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	return Model{
		ctx:         ctx,
		ctrl:        ctrl,
		surface:     surface,
		input:       ti,
		models:      choices,
		modelIdx:    modelIdx,
		outputDir:   outputDir,
		healthCheck: opts.Health,
		keys:        DefaultKeyMap(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, spinnerTickCmd()}
	if m.healthCheck != nil {
		cmds = append(cmds, m.healthCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) healthCmd() tea.Cmd {
	ctx, checker := m.ctx, m.healthCheck
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		health, err := checker.Health(ctx)
		return healthMsg{health: health, err: err}
	}
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// SelectedModel returns the name model the selector points at.
func (m Model) SelectedModel() string {
	return m.models[m.modelIdx]
}

func (m Model) generateNamesCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	description, model := m.input.Value(), m.SelectedModel()
	return func() tea.Msg {
		return generationDoneMsg{err: ctrl.GenerateNames(ctx, description, model)}
	}
}

func (m Model) generateLogoCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	description := m.input.Value()
	return func() tea.Msg {
		return generationDoneMsg{err: ctrl.GenerateLogo(ctx, description)}
	}
}

func (m Model) saveLogoCmd(name, image string) tea.Cmd {
	dir := m.outputDir
	return func() tea.Msg {
		path, err := logo.Save(dir, name, image)
		return logoSavedMsg{path: path, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := m.width - 12
		if inputWidth < 10 {
			inputWidth = 10
		}
		m.input.Width = inputWidth
		return m, nil

	case spinnerTickMsg:
		m.spinnerIndex = (m.spinnerIndex + 1) % len(spinnerFrames)
		return m, spinnerTickCmd()

	case generationDoneMsg:
		if errors.Is(msg.err, controller.ErrBusy) {
			m.setStatus("A request is already running", true)
		}
		if n := len(m.surface.Snapshot().Names); m.cursor >= n {
			m.cursor = 0
		}
		return m, nil

	case healthMsg:
		if msg.err != nil {
			m.backend = "unreachable"
		} else {
			m.backend = msg.health.Status
		}
		return m, nil

	case logoSavedMsg:
		if msg.err != nil {
			m.setStatus("Failed to save logo: "+msg.err.Error(), true)
		} else {
			m.setStatus("Logo saved to "+msg.path, false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.inputFocused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		return m, tea.Quit
	}

	snap := m.surface.Snapshot()

	// The alert blocks everything until acknowledged
	if snap.Alert != "" {
		if key.Matches(msg, m.keys.Submit, m.keys.Escape) {
			m.surface.DismissAlert()
		}
		return m, nil
	}

	if !snap.Dashboard {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.ctrl.DismissWelcome()
			m.inputFocused = true
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if snap.Loading {
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.inputFocused {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.inputFocused = false
			m.input.Blur()
			return m, nil
		case key.Matches(msg, m.keys.NextModel):
			m.modelIdx = (m.modelIdx + 1) % len(m.models)
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.status = ""
			if strings.TrimSpace(m.input.Value()) != "" {
				m.inputFocused = false
				m.input.Blur()
			}
			return m, m.generateNamesCmd()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Focus):
		m.inputFocused = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.NextModel):
		m.modelIdx = (m.modelIdx + 1) % len(m.models)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(snap.Names)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if len(snap.Names) > 0 {
			_ = m.ctrl.SelectName(m.cursor)
		}
	case key.Matches(msg, m.keys.Logo):
		if snap.LogoAction {
			m.status = ""
			return m, m.generateLogoCmd()
		}
	case key.Matches(msg, m.keys.Save):
		if snap.Logo != "" {
			return m, m.saveLogoCmd(snap.LogoName, snap.Logo)
		}
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) View() string {
	snap := m.surface.Snapshot()

	if !snap.Dashboard {
		return m.place(m.welcomeView())
	}
	if snap.Alert != "" {
		return m.place(m.alertView(snap.Alert))
	}
	if snap.Loading {
		return m.place(m.loadingView(snap.LoadingText))
	}
	if m.showHelp {
		return m.place(m.helpView())
	}
	return m.dashboardView(snap)
}

// place centers box when the terminal size is known.
func (m Model) place(box string) string {
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) welcomeView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("✨ Logoflow"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Your AI Branding Partner"))
	b.WriteString("\n\n")
	b.WriteString(HelpDescStyle.Render("Describe your project, pick a name you love,\nand get a logo designed for it."))
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("Enter continue • q quit"))
	return WelcomeStyle.Render(b.String())
}

func (m Model) alertView(message string) string {
	return AlertStyle.Render(message + "\n\n" + DimStyle.Render("Enter/Esc to dismiss"))
}

func (m Model) loadingView(text string) string {
	return LoadingStyle.Render(spinnerFrames[m.spinnerIndex] + " " + text)
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key)))
			b.WriteString(HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("Press ? or Esc to close"))
	return PanelStyle.Padding(1, 2).Render(b.String())
}

func (m Model) dashboardView(snap SurfaceState) string {
	sections := []string{
		m.renderHeader(),
		m.renderVisionBoard(),
		m.renderNames(snap),
	}
	if snap.LogoAction {
		sections = append(sections, ActionStyle.Render(snap.LogoLabel)+DimStyle.Render("  (l)"))
	}
	if snap.Logo != "" {
		sections = append(sections, m.renderLogo(snap.LogoName, snap.Logo))
	}
	sections = append(sections, "", m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return TitleStyle.PaddingLeft(1).Render("✨ Logoflow") + "  " + SubtitleStyle.Render("Your AI Branding Partner")
}

func (m Model) renderVisionBoard() string {
	title := SectionTitleStyle.Render("1. Vision Board")
	model := DimStyle.Render("Model: ") + ModelStyle.Render(m.SelectedModel()) + DimStyle.Render("  (tab)")
	return lipgloss.JoinVertical(lipgloss.Left, title, PanelStyle.Render(m.input.View()), model)
}

func (m Model) renderNames(snap SurfaceState) string {
	title := SectionTitleStyle.Render("2. Choose Identity")
	if len(snap.Names) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, DimStyle.Render("No names yet. Describe your project and press Enter."))
	}

	cards := make([]string, 0, len(snap.Names))
	for i, name := range snap.Names {
		style := CardStyle
		switch {
		case i == snap.Selected:
			style = CardSelectedStyle
		case i == m.cursor && !m.inputFocused:
			style = CardCursorStyle
		}
		cards = append(cards, style.Render(name))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func (m Model) renderLogo(name, image string) string {
	title := SectionTitleStyle.Render("3. Visual Mark")
	mime, data, err := logo.DecodeDataURI(image)
	if err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, ErrorStyle.Render("Unreadable image: "+truncate(image, 40)))
	}
	info := SuccessStyle.Render("🖼  Logo ready for "+name) + DimStyle.Render(fmt.Sprintf(" · %s · %s  (s to save)", mime, humanize.Bytes(uint64(len(data)))))
	return lipgloss.JoinVertical(lipgloss.Left, title, PanelStyle.Render(info))
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.status != "" && m.statusErr:
		status = ErrorStyle.Render(m.status)
	case m.status != "":
		status = SuccessStyle.Render(m.status)
	default:
		status = DimStyle.Render("○ Ready")
	}

	switch m.backend {
	case "":
	case "ok":
		status += SuccessStyle.Render("  ● backend ok")
	default:
		status += ErrorStyle.Render("  ● backend " + m.backend)
	}

	mutedStyle := lipgloss.NewStyle().Foreground(ColorFgMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorFgPrimary)

	var helpHint string
	if m.inputFocused {
		helpHint = mutedStyle.Render(" │ ") +
			keyStyle.Render("Enter") + mutedStyle.Render(" generate │ ") +
			keyStyle.Render("Tab") + mutedStyle.Render(" model │ ") +
			keyStyle.Render("Esc") + mutedStyle.Render(" unfocus")
	} else {
		helpHint = mutedStyle.Render(" │ ") +
			keyStyle.Render("/") + mutedStyle.Render(" edit │ ") +
			keyStyle.Render("↑/↓") + mutedStyle.Render(" move │ ") +
			keyStyle.Render("Enter") + mutedStyle.Render(" select │ ") +
			keyStyle.Render("?") + mutedStyle.Render(" help │ ") +
			keyStyle.Render("q") + mutedStyle.Render(" quit")
	}

	return StatusBarStyle.Render(status + helpHint)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
