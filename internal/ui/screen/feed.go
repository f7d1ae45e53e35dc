package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/pumpswap-go/internal/stream"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/component"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/router"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/style"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// feedTableRows caps how many events the feed keeps in memory.
const feedTableRows = 500

// FeedScreen shows decoded AMM events as they arrive
type FeedScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	// UI components
	table   *component.Table
	helpBar *component.HelpBar
	spark   *component.Sparkline

	// State
	stats     stream.FeedStats
	lastPrice string

	// Styling
	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	buyStyle    lipgloss.Style
	sellStyle   lipgloss.Style
	infoStyle   lipgloss.Style
}

// NewFeedScreen creates a new event feed screen
func NewFeedScreen() *FeedScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	table := component.NewTable(feedTableRows).SetColumns([]component.TableColumn{
		{Header: "TIME", Width: 8, Align: lipgloss.Left},
		{Header: "KIND", Width: 10, Align: lipgloss.Left},
		{Header: "DETAIL", Width: 0, Align: lipgloss.Left},
		{Header: "SOL", Width: 16, Align: lipgloss.Right},
		{Header: "TOKENS", Width: 20, Align: lipgloss.Right},
	})

	helpBar := component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteFeed))

	return &FeedScreen{
		keyMap:  keyMap,
		table:   table,
		helpBar: helpBar,
		spark:   component.NewSparkline(32, palette.Primary),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0, 0, 1),

		statusStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Margin(0, 0, 0, 1),

		buyStyle: lipgloss.NewStyle().
			Foreground(palette.Buy).
			Padding(0, 1),

		sellStyle: lipgloss.NewStyle().
			Foreground(palette.Sell).
			Padding(0, 1),

		infoStyle: lipgloss.NewStyle().
			Foreground(palette.Info).
			Padding(0, 1),
	}
}

// Init initializes the feed screen
func (s *FeedScreen) Init() tea.Cmd {
	return nil
}

// Update handles messages for the feed screen
func (s *FeedScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.EventMsg:
		s.addRecord(msg.Record)

	case ui.FeedStatsMsg:
		s.stats = msg.Stats

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Up):
			s.table.ScrollUp()
		case key.Matches(msg, s.keyMap.Down):
			s.table.ScrollDown()
		case key.Matches(msg, s.keyMap.ClearFeed):
			s.table.Clear()
			s.spark.Clear()
			s.lastPrice = ""
		case msg.String() == "q":
			// No text input on this screen, so a plain q quits too.
			return s, tea.Quit
		}
	}

	return s, nil
}

// View renders the feed screen
func (s *FeedScreen) View() string {
	var content strings.Builder

	content.WriteString(s.titleStyle.Render("PumpSwap Event Feed"))
	content.WriteString("\n")
	content.WriteString(s.table.View())
	content.WriteString("\n")
	content.WriteString(s.trendLine())
	content.WriteString("\n")
	content.WriteString(s.statusStyle.Render(s.statusLine()))
	content.WriteString(s.helpBar.View())

	return content.String()
}

// SetSize updates the screen dimensions
func (s *FeedScreen) SetSize(width, height int) {
	s.width = width
	s.height = height

	// Title, trend line, status line and help bar surround the table.
	s.table.SetSize(width-2, height-7)
	s.helpBar.SetWidth(width)
}

// addRecord turns one decoded event into a table row
func (s *FeedScreen) addRecord(record *stream.Record) {
	arrivedAt := time.Now().Format("15:04:05")

	switch event := record.Event.(type) {
	case *pumpswap.TradeEvent:
		kind := "BUY"
		rowStyle := s.buyStyle
		if !event.IsBuy {
			kind = "SELL"
			rowStyle = s.sellStyle
		}

		s.table.PushRow([]string{
			arrivedAt,
			kind,
			shortKey(event.Mint),
			formatSol(event.SolAmount),
			formatRaw(event.TokenAmount),
		}, rowStyle)

		if event.TokenAmount > 0 {
			price := pumpswap.AmountToDecimal(event.SolAmount, pumpswap.WSOLDecimals).
				Div(pumpswap.AmountToDecimal(event.TokenAmount, pumpswap.PumpTokenDecimals))
			s.spark.Push(price.InexactFloat64())
			s.lastPrice = price.StringFixed(9)
		}

	case *pumpswap.CreateEvent:
		s.table.PushRow([]string{
			arrivedAt,
			"CREATE",
			fmt.Sprintf("%s (%s)", event.Name, event.Symbol),
			formatSol(event.VirtualSolReserves),
			formatRaw(event.VirtualTokenReserves),
		}, s.infoStyle)

	case *pumpswap.CompleteEvent:
		s.table.PushRow([]string{
			arrivedAt,
			"COMPLETE",
			shortKey(event.Mint),
			"",
			"",
		}, s.infoStyle)

	case *pumpswap.SetParamsEvent:
		s.table.PushRow([]string{
			arrivedAt,
			"PARAMS",
			fmt.Sprintf("fee %d bps", event.FeeBasisPoints),
			"",
			"",
		}, s.infoStyle)
	}
}

// trendLine shows the fill price across recent trades
func (s *FeedScreen) trendLine() string {
	if s.spark.Empty() {
		return " " + s.spark.View() + s.statusStyle.Render("no trades yet")
	}

	suffix := fmt.Sprintf("%s %+.1f%%  last %s SOL",
		s.spark.Trend(), s.spark.ChangePercent(), s.lastPrice)
	return " " + s.spark.View() + s.statusStyle.Render(suffix)
}

// statusLine summarizes the feed counters
func (s *FeedScreen) statusLine() string {
	return fmt.Sprintf("rows %d | lines %d | events %d | unknown %d | failed %d | dropped %d",
		s.table.RowCount(),
		s.stats.Lines,
		s.stats.Records,
		s.stats.Unknown,
		s.stats.Failures,
		s.stats.Dropped,
	)
}

// shortKey abbreviates a public key for table display
func shortKey(key solana.PublicKey) string {
	encoded := key.String()
	if len(encoded) <= 12 {
		return encoded
	}
	return encoded[:4] + ".." + encoded[len(encoded)-4:]
}

// formatSol renders lamports as SOL
func formatSol(lamports uint64) string {
	return pumpswap.AmountToDecimal(lamports, pumpswap.WSOLDecimals).StringFixed(4) + " SOL"
}

// formatRaw renders a raw token amount with digit grouping
func formatRaw(amount uint64) string {
	digits := fmt.Sprintf("%d", amount)

	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}
	return grouped.String()
}
