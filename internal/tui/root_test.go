package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iammorganparry/logoflow/internal/client"
	"github.com/iammorganparry/logoflow/internal/controller"
	"github.com/iammorganparry/logoflow/internal/models"
)

type stubBackend struct {
	names    []string
	image    string
	err      error
	nameReqs []models.GenerateNamesRequest
	logoReqs []models.GenerateLogoRequest
}

func (b *stubBackend) GenerateNames(ctx context.Context, req models.GenerateNamesRequest) (*models.GenerateNamesResponse, error) {
	b.nameReqs = append(b.nameReqs, req)
	if b.err != nil {
		return nil, b.err
	}
	return &models.GenerateNamesResponse{Names: b.names}, nil
}

func (b *stubBackend) GenerateLogo(ctx context.Context, req models.GenerateLogoRequest) (*models.GenerateLogoResponse, error) {
	b.logoReqs = append(b.logoReqs, req)
	if b.err != nil {
		return nil, b.err
	}
	return &models.GenerateLogoResponse{Image: b.image}, nil
}

func newTestModel(t *testing.T, backend *stubBackend) (Model, *Surface) {
	t.Helper()
	surface := NewSurface()
	ctrl := controller.New(surface, backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := NewModel(context.Background(), ctrl, surface, Options{
		Models:       []string{"gemini-3-flash-preview", "gemini-2.5-flash", "gemini-2.5-pro"},
		DefaultModel: "gemini-2.5-flash",
		OutputDir:    t.TempDir(),
	})
	return m, surface
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestWelcomeDismissal(t *testing.T) {
	m, surface := newTestModel(t, &stubBackend{})

	if !strings.Contains(m.View(), "Your AI Branding Partner") {
		t.Fatalf("welcome view missing tagline:\n%s", m.View())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !surface.Snapshot().Dashboard {
		t.Fatal("dashboard not shown after Enter")
	}
	if !m.inputFocused {
		t.Error("description input should be focused after dismissal")
	}
	if !strings.Contains(m.View(), "1. Vision Board") {
		t.Errorf("dashboard view missing vision board:\n%s", m.View())
	}
}

func TestGenerateSelectAndPaint(t *testing.T) {
	backend := &stubBackend{
		names: []string{"BeanLoop", "DripCycle", "MugMatch"},
		image: "data:image/png;base64,iVBORw0KGgo=",
	}
	m, surface := newTestModel(t, backend)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "A coffee subscription app")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	if len(backend.nameReqs) != 1 {
		t.Fatalf("name requests = %d, want 1", len(backend.nameReqs))
	}
	want := models.GenerateNamesRequest{Description: "A coffee subscription app", Model: "gemini-2.5-flash"}
	if backend.nameReqs[0] != want {
		t.Errorf("request = %+v, want %+v", backend.nameReqs[0], want)
	}
	snap := surface.Snapshot()
	if len(snap.Names) != 3 || snap.Loading {
		t.Fatalf("unexpected surface after generation: %+v", snap)
	}
	if m.inputFocused {
		t.Error("input should blur after a successful submit")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	snap = surface.Snapshot()
	if snap.Selected != 1 {
		t.Fatalf("selected = %d, want 1", snap.Selected)
	}
	if snap.LogoLabel != "🎨 Generate Logo for DripCycle" {
		t.Errorf("logo label = %q", snap.LogoLabel)
	}

	m, cmd = press(t, m, keyRune('l'))
	m = run(t, m, cmd)

	if len(backend.logoReqs) != 1 || backend.logoReqs[0].Name != "DripCycle" {
		t.Fatalf("logo requests = %+v", backend.logoReqs)
	}
	if surface.Snapshot().Logo != backend.image {
		t.Fatal("logo not rendered")
	}
	if !strings.Contains(m.View(), "Logo ready") {
		t.Errorf("view missing logo panel:\n%s", m.View())
	}

	m, cmd = press(t, m, keyRune('s'))
	m = run(t, m, cmd)

	if !strings.HasPrefix(m.status, "Logo saved to ") {
		t.Fatalf("status = %q", m.status)
	}
	path := strings.TrimPrefix(m.status, "Logo saved to ")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved logo: %v", err)
	}
	if !strings.HasSuffix(path, "dripcycle.png") || len(data) == 0 {
		t.Errorf("saved %q with %d bytes", path, len(data))
	}
}

func TestEmptyDescriptionAlert(t *testing.T) {
	backend := &stubBackend{}
	m, surface := newTestModel(t, backend)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	if got := surface.Snapshot().Alert; got != controller.EmptyDescriptionNotice {
		t.Fatalf("alert = %q", got)
	}
	if len(backend.nameReqs) != 0 {
		t.Error("backend called for an empty description")
	}
	if !m.inputFocused {
		t.Error("input should stay focused after an empty submit")
	}

	// Keys are swallowed while the alert is up
	m = typeText(t, m, "x")
	if m.input.Value() != "" {
		t.Errorf("input changed under the alert: %q", m.input.Value())
	}

	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if surface.Snapshot().Alert != "" {
		t.Error("alert not dismissed")
	}
}

func TestServerErrorAlert(t *testing.T) {
	backend := &stubBackend{err: &client.APIError{StatusCode: 500, Message: "quota exceeded"}}
	m, surface := newTestModel(t, backend)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "shoes")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	if got := surface.Snapshot().Alert; got != "Error: quota exceeded" {
		t.Fatalf("alert = %q", got)
	}
	if !strings.Contains(m.View(), "Error: quota exceeded") {
		t.Errorf("alert not drawn:\n%s", m.View())
	}
}

func TestBusyStatus(t *testing.T) {
	m, _ := newTestModel(t, &stubBackend{})

	next, _ := m.Update(generationDoneMsg{err: controller.ErrBusy})
	m = next.(Model)
	if !m.statusErr || m.status == "" {
		t.Errorf("busy not reported: %q", m.status)
	}

	next, _ = m.Update(logoSavedMsg{err: errors.New("disk full")})
	m = next.(Model)
	if m.status != "Failed to save logo: disk full" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelCycling(t *testing.T) {
	m, _ := newTestModel(t, &stubBackend{})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := []string{m.SelectedModel()}
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		got = append(got, m.SelectedModel())
	}

	want := []string{"gemini-2.5-flash", "gemini-2.5-pro", "gemini-3-flash-preview", "gemini-2.5-flash"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("model sequence = %v, want %v", got, want)
		}
	}
}

func TestLogoKeyIgnoredWithoutSelection(t *testing.T) {
	backend := &stubBackend{names: []string{"A", "B"}}
	m, _ := newTestModel(t, backend)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "x")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	_, cmd = press(t, m, keyRune('l'))
	if cmd != nil {
		t.Error("logo command issued with nothing selected")
	}
	if len(backend.logoReqs) != 0 {
		t.Error("backend called for a logo")
	}
}

func TestSurfaceRenderNamesClearsSelection(t *testing.T) {
	s := NewSurface()
	s.RenderNames([]string{"A", "B"})
	s.MarkSelected(1)
	s.RenderNames([]string{"C"})

	snap := s.Snapshot()
	if snap.Selected != -1 {
		t.Errorf("selected = %d, want -1", snap.Selected)
	}

	snap.Names[0] = "mutated"
	if s.Snapshot().Names[0] != "C" {
		t.Error("snapshot shares the names slice")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"data:image/png;base64,AAAA", 10, "data:im..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

type stubHealth struct {
	resp *models.HealthResponse
	err  error
}

func (h stubHealth) Health(ctx context.Context) (*models.HealthResponse, error) {
	return h.resp, h.err
}

func TestHealthStatusBar(t *testing.T) {
	tests := []struct {
		name    string
		checker stubHealth
		want    string
	}{
		{"ok", stubHealth{resp: &models.HealthResponse{Status: "ok"}}, "backend ok"},
		{"degraded", stubHealth{resp: &models.HealthResponse{Status: "degraded"}}, "backend degraded"},
		{"down", stubHealth{err: errors.New("connection refused")}, "backend unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := NewSurface()
			ctrl := controller.New(surface, &stubBackend{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
			m := NewModel(context.Background(), ctrl, surface, Options{DefaultModel: "m", Health: tt.checker})

			m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			m = run(t, m, m.healthCmd())

			if !strings.Contains(m.View(), tt.want) {
				t.Errorf("status bar missing %q:\n%s", tt.want, m.View())
			}
		})
	}
}

func TestSaveUsesNameLogoWasGeneratedFor(t *testing.T) {
	backend := &stubBackend{
		names: []string{"BeanLoop", "DripCycle"},
		image: "data:image/png;base64,iVBORw0KGgo=",
	}
	m, surface := newTestModel(t, backend)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "A coffee subscription app")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	// Paint DripCycle, then move the selection back to BeanLoop
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = press(t, m, keyRune('l'))
	m = run(t, m, cmd)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	snap := surface.Snapshot()
	if snap.Selected != 0 || snap.LogoName != "DripCycle" {
		t.Fatalf("selected = %d, logo name = %q", snap.Selected, snap.LogoName)
	}
	if !strings.Contains(m.View(), "Logo ready for DripCycle") {
		t.Errorf("logo panel does not name DripCycle:\n%s", m.View())
	}

	m, cmd = press(t, m, keyRune('s'))
	m = run(t, m, cmd)

	if !strings.HasSuffix(m.status, "dripcycle.png") {
		t.Fatalf("status = %q, want a dripcycle.png path", m.status)
	}
	if _, err := os.Stat(strings.TrimPrefix(m.status, "Logo saved to ")); err != nil {
		t.Fatalf("saved logo missing: %v", err)
	}
}
