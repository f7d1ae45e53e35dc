package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpswap-go/internal/config"
	"github.com/rovshanmuradov/pumpswap-go/internal/logger"
	"github.com/rovshanmuradov/pumpswap-go/internal/stream"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/router"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/screen"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router *router.Router
	keyMap ui.KeyMap
	width  int
	height int
}

// NewAppModel creates a new application model
func NewAppModel() *AppModel {
	r := router.New(ui.RouteFeed).
		Register(ui.RouteFeed, screen.NewFeedScreen()).
		Register(ui.RouteQuote, screen.NewQuoteScreen())

	return &AppModel{
		router: r,
		keyMap: ui.DefaultKeyMap(),
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.ListenBus(), // Start listening to the event bus
		tea.EnterAltScreen,
	)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		updatedRouter, cmd := m.router.Update(msg)
		m.router = updatedRouter.(*router.Router)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Feed):
			cmds = append(cmds, m.router.Switch(ui.RouteFeed))

		case key.Matches(msg, m.keyMap.Quote):
			cmds = append(cmds, m.router.Switch(ui.RouteQuote))

		default:
			updatedRouter, cmd := m.router.Update(msg)
			m.router = updatedRouter.(*router.Router)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	default:
		// Forward all other messages to the router
		updatedRouter, cmd := m.router.Update(msg)
		m.router = updatedRouter.(*router.Router)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Continue listening for events
	cmds = append(cmds, ui.ListenBus())

	return m, tea.Batch(cmds...)
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return m.router.View()
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	eventsPath := flag.String("events", "", "Program log file to feed the event table")
	flag.Parse()

	// Create context with signal handling
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.Init(cfg.DebugLogging, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	// Decoded events flow dispatcher -> UI bus -> feed screen.
	dispatcher := stream.NewDispatcher(appLogger, 1024)
	for _, kind := range []pumpswap.EventKind{
		pumpswap.EventKindCreate,
		pumpswap.EventKindTrade,
		pumpswap.EventKindComplete,
		pumpswap.EventKindSetParams,
	} {
		dispatcher.SubscribeFunc(kind, func(_ context.Context, record *stream.Record) error {
			ui.PublishEvent(record)
			return nil
		})
	}

	feed := stream.NewFeed(dispatcher, appLogger)

	// The terminal's stdin belongs to the TUI, so events are replayed
	// from a file when one is given.
	if *eventsPath != "" {
		source, err := os.Open(*eventsPath)
		if err != nil {
			log.Fatalf("Failed to open event source: %v", err)
		}
		defer source.Close()

		go func() {
			if err := feed.Run(rootCtx, source); err != nil && rootCtx.Err() == nil {
				ui.PublishError(err, "event feed stopped")
				appLogger.Error("event feed stopped", zap.Error(err))
			}
		}()
	}

	// Push feed counters to the status line once a second.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				ui.PublishFeedStats(feed.Stats())
			}
		}
	}()

	appLogger.Info("starting pumpswap TUI",
		zap.String("events", *eventsPath),
		zap.String("rpc_endpoint", cfg.RPCEndpoint))

	program := tea.NewProgram(
		NewAppModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := program.Run(); err != nil {
			appLogger.Error("TUI application failed", zap.Error(err))
		}
	}()

	select {
	case <-rootCtx.Done():
		program.Quit()
		<-done
	case <-done:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("dispatcher shutdown", zap.Error(err))
	}

	appLogger.Info("TUI stopped")
}
