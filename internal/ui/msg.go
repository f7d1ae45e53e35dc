package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/pumpswap-go/internal/stream"
)

// Tea message types for UI communication

// EventMsg wraps one decoded AMM event for the UI
type EventMsg struct {
	Record *stream.Record
}

// FeedStatsMsg carries feed counters for the status line
type FeedStatsMsg struct {
	Stats stream.FeedStats
}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// Event Bus for UI communication
var (
	// Bus is the global event bus for UI communication
	Bus = make(chan tea.Msg, 1024)
)

// PublishEvent publishes a decoded AMM event to the UI bus
func PublishEvent(record *stream.Record) {
	select {
	case Bus <- EventMsg{Record: record}:
	default:
		// Bus is full, drop the event
	}
}

// PublishFeedStats publishes feed counters to the UI bus
func PublishFeedStats(stats stream.FeedStats) {
	select {
	case Bus <- FeedStatsMsg{Stats: stats}:
	default:
		// Bus is full, drop the update
	}
}

// PublishError publishes an error message to the UI bus
func PublishError(err error, title string) {
	select {
	case Bus <- ErrorMsg{Error: err, Title: title}:
	default:
		// Bus is full, drop the error
	}
}

// ListenBus returns a tea.Cmd that listens to the event bus
func ListenBus() tea.Cmd {
	return func() tea.Msg {
		return <-Bus
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteFeed Route = iota
	RouteQuote
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteFeed:
		return "feed"
	case RouteQuote:
		return "quote"
	default:
		return "unknown"
	}
}
