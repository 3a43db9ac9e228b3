package tui

import (
	"slices"
	"sync"
)

// Surface is the controller.View the terminal renders from. The controller
// mutates it from command goroutines; the bubbletea loop reads snapshots.
type Surface struct {
	mu    sync.Mutex
	state SurfaceState
}

// SurfaceState is what the dashboard currently shows.
type SurfaceState struct {
	Dashboard   bool
	Loading     bool
	LoadingText string
	Alert       string
	Names       []string
	Selected    int // -1 when no card is selected
	LogoAction  bool
	LogoLabel   string
	Logo        string
	LogoName    string // the name Logo was generated for
}

func NewSurface() *Surface {
	return &Surface{state: SurfaceState{Selected: -1}}
}

// Snapshot returns a copy safe to render.
func (s *Surface) Snapshot() SurfaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Names = slices.Clone(s.state.Names)
	return st
}

// DismissAlert clears the blocking notice.
func (s *Surface) DismissAlert() {
	s.mu.Lock()
	s.state.Alert = ""
	s.mu.Unlock()
}

func (s *Surface) ShowDashboard() {
	s.mu.Lock()
	s.state.Dashboard = true
	s.mu.Unlock()
}

func (s *Surface) ShowLoading(text string) {
	s.mu.Lock()
	s.state.Loading = true
	s.state.LoadingText = text
	s.mu.Unlock()
}

func (s *Surface) HideLoading() {
	s.mu.Lock()
	s.state.Loading = false
	s.mu.Unlock()
}

func (s *Surface) Alert(message string) {
	s.mu.Lock()
	s.state.Alert = message
	s.mu.Unlock()
}

// RenderNames replaces the card list; no card starts selected.
func (s *Surface) RenderNames(names []string) {
	s.mu.Lock()
	s.state.Names = slices.Clone(names)
	s.state.Selected = -1
	s.mu.Unlock()
}

func (s *Surface) MarkSelected(index int) {
	s.mu.Lock()
	s.state.Selected = index
	s.mu.Unlock()
}

func (s *Surface) ShowLogoAction(label string) {
	s.mu.Lock()
	s.state.LogoAction = true
	s.state.LogoLabel = label
	s.mu.Unlock()
}

func (s *Surface) HideLogoAction() {
	s.mu.Lock()
	s.state.LogoAction = false
	s.mu.Unlock()
}

func (s *Surface) RenderLogo(name, image string) {
	s.mu.Lock()
	s.state.Logo = image
	s.state.LogoName = name
	s.mu.Unlock()
}
