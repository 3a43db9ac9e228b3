// Package controller holds the branding session and turns user actions into
// backend calls and view updates. It knows nothing about how the view is
// drawn.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/iammorganparry/logoflow/internal/client"
	"github.com/iammorganparry/logoflow/internal/models"
)

// User-facing text.
const (
	EmptyDescriptionNotice = "Please describe your project first."
	NamesLoadingText       = "Brainstorming names..."
	NamesTransportFailure  = "Failed to connect to backend."
	LogoTransportFailure   = "Failed to generate logo."
	LogoActionPrefix       = "🎨 Generate Logo for "
)

// LogoModel is the image backend every logo request names.
const LogoModel = models.DefaultLogoModel

var (
	// ErrNoSelection is returned by GenerateLogo when no name is selected.
	ErrNoSelection = errors.New("no name selected")
	// ErrUnknownCandidate is returned by SelectName for an index that is
	// not a rendered card.
	ErrUnknownCandidate = errors.New("candidate is not rendered")
	// ErrBusy is returned when a generation request is already outstanding.
	ErrBusy = errors.New("a generation request is already in progress")
	// errMissingNames marks a 2xx names response without a names list.
	errMissingNames = errors.New("response has no names")
)

// View is the rendering surface the controller drives.
type View interface {
	ShowDashboard()
	ShowLoading(text string)
	HideLoading()
	Alert(message string)
	RenderNames(names []string)
	MarkSelected(index int)
	ShowLogoAction(label string)
	HideLogoAction()
	// RenderLogo shows image, generated for name.
	RenderLogo(name, image string)
}

// Backend issues the two generation requests.
type Backend interface {
	GenerateNames(ctx context.Context, req models.GenerateNamesRequest) (*models.GenerateNamesResponse, error)
	GenerateLogo(ctx context.Context, req models.GenerateLogoRequest) (*models.GenerateLogoResponse, error)
}

// Session is the in-memory state of one branding session.
type Session struct {
	GeneratedNames []string
	SelectedName   string
	SelectedIndex  int // -1 when nothing is selected
}

// Controller owns a Session and dispatches user actions.
type Controller struct {
	view    View
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	session Session
	pending bool
}

// New creates a controller with an empty session.
func New(view View, backend Backend, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		view:    view,
		backend: backend,
		logger:  logger,
		session: Session{SelectedIndex: -1},
	}
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.session
	s.GeneratedNames = slices.Clone(c.session.GeneratedNames)
	return s
}

// Pending reports whether a generation request is outstanding.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// DismissWelcome hides the welcome screen and reveals the dashboard.
func (c *Controller) DismissWelcome() {
	c.view.ShowDashboard()
}

// GenerateNames requests candidates for description using model and
// replaces the rendered list on success. Validation, server and transport
// failures are reported through View.Alert; the returned error is for
// callers that want to know what happened.
func (c *Controller) GenerateNames(ctx context.Context, description, model string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		c.view.Alert(EmptyDescriptionNotice)
		return nil
	}

	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	c.view.ShowLoading(NamesLoadingText)
	defer c.view.HideLoading()

	resp, err := c.backend.GenerateNames(ctx, models.GenerateNamesRequest{
		Description: description,
		Model:       model,
	})
	if err != nil {
		c.reportFailure("generate names", err, NamesTransportFailure)
		return err
	}

	if resp.Names == nil {
		c.reportFailure("generate names", errMissingNames, NamesTransportFailure)
		return errMissingNames
	}

	names := slices.Clone(resp.Names)
	c.mu.Lock()
	c.session = Session{GeneratedNames: names, SelectedIndex: -1}
	c.mu.Unlock()

	c.view.HideLogoAction()
	c.view.RenderNames(slices.Clone(names))
	c.logger.Debug("names generated", "count", len(names), "model", model)
	return nil
}

// SelectName marks the card at index as the selected candidate and enables
// the logo action. It returns ErrBusy while a generation is outstanding so
// the selection cannot interleave with a names response.
func (c *Controller) SelectName(index int) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrBusy
	}
	if index < 0 || index >= len(c.session.GeneratedNames) {
		c.mu.Unlock()
		return ErrUnknownCandidate
	}
	name := c.session.GeneratedNames[index]
	c.session.SelectedName = name
	c.session.SelectedIndex = index
	c.mu.Unlock()

	c.view.MarkSelected(index)
	c.view.ShowLogoAction(LogoActionPrefix + name)
	return nil
}

// GenerateLogo requests a logo for the selected name. It is a no-op
// returning ErrNoSelection when nothing is selected.
func (c *Controller) GenerateLogo(ctx context.Context, description string) error {
	c.mu.Lock()
	name := c.session.SelectedName
	c.mu.Unlock()
	if name == "" {
		return ErrNoSelection
	}

	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	c.view.ShowLoading("Designing logo for " + name + "...")
	defer c.view.HideLoading()

	resp, err := c.backend.GenerateLogo(ctx, models.GenerateLogoRequest{
		Name:        name,
		Description: strings.TrimSpace(description),
		Model:       LogoModel,
	})
	if err != nil {
		c.reportFailure("generate logo", err, LogoTransportFailure)
		return err
	}

	c.view.RenderLogo(name, resp.Image)
	c.logger.Debug("logo generated", "name", name, "bytes", len(resp.Image))
	return nil
}

func (c *Controller) reportFailure(action string, err error, transportMessage string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		c.logger.Warn(action+" rejected", "status", apiErr.StatusCode, "error", apiErr.Message)
		c.view.Alert("Error: " + apiErr.Message)
		return
	}
	c.logger.Error(action+" failed", "error", err)
	c.view.Alert(transportMessage)
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return false
	}
	c.pending = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.pending = false
	c.mu.Unlock()
}
