package router

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/pumpswap-go/internal/ui"
)

// Screen represents one full-terminal view managed by the router
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Router switches between registered screens by route. Screens keep
// their state while inactive so the event feed keeps accumulating
// rows behind the quote explorer.
type Router struct {
	screens map[ui.Route]Screen
	active  ui.Route
	width   int
	height  int
}

// New creates a router starting on the given route
func New(initial ui.Route) *Router {
	return &Router{
		screens: make(map[ui.Route]Screen),
		active:  initial,
	}
}

// Register adds a screen under a route
func (r *Router) Register(route ui.Route, screen Screen) *Router {
	r.screens[route] = screen
	return r
}

// Init initializes the active screen
func (r *Router) Init() tea.Cmd {
	if screen, ok := r.screens[r.active]; ok {
		return screen.Init()
	}
	return nil
}

// Update processes messages and updates screens
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case ui.EventMsg, ui.FeedStatsMsg:
		// Feed updates go to every screen so inactive ones stay
		// current.
		var cmds []tea.Cmd
		for route, screen := range r.screens {
			updated, cmd := screen.Update(msg)
			r.screens[route] = updated
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return r, tea.Batch(cmds...)
	}

	// Everything else only concerns the active screen
	if screen, ok := r.screens[r.active]; ok {
		updated, cmd := screen.Update(msg)
		r.screens[r.active] = updated
		return r, cmd
	}

	return r, nil
}

// View renders the active screen
func (r *Router) View() string {
	if screen, ok := r.screens[r.active]; ok {
		return screen.View()
	}
	return "No screen available"
}

// SetSize sets the size for the router and all screens
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height

	for _, screen := range r.screens {
		screen.SetSize(width, height)
	}
}

// Switch makes the given route active
func (r *Router) Switch(route ui.Route) tea.Cmd {
	screen, ok := r.screens[route]
	if !ok || route == r.active {
		return nil
	}

	r.active = route
	screen.SetSize(r.width, r.height)
	return screen.Init()
}

// Active returns the active route
func (r *Router) Active() ui.Route {
	return r.active
}
