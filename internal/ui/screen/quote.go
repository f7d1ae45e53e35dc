package screen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/pumpswap-go/internal/ui"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/component"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/router"
	"github.com/rovshanmuradov/pumpswap-go/internal/ui/style"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// Quote form field names
const (
	fieldSide         = "side"
	fieldBaseReserve  = "base_reserve"
	fieldQuoteReserve = "quote_reserve"
	fieldLPFee        = "lp_fee_bps"
	fieldProtocolFee  = "protocol_fee_bps"
	fieldCreatorFee   = "creator_fee_bps"
	fieldAmount       = "amount"
	fieldSlippage     = "slippage_percent"
)

// Swap directions offered by the side select
const (
	sideBuyBaseOut   = "buy: exact base out"
	sideBuyQuoteIn   = "buy: exact quote in"
	sideSellBaseIn   = "sell: exact base in"
	sideSellQuoteOut = "sell: exact quote out"
)

// QuoteInputs holds the raw form values of the quote explorer.
type QuoteInputs struct {
	Side           string
	BaseReserve    string
	QuoteReserve   string
	LPFeeBps       string
	ProtocolFeeBps string
	CreatorFeeBps  string
	Amount         string
	Slippage       string
}

// QuoteLine is one rendered result row.
type QuoteLine struct {
	Label string
	Value string
}

// QuoteScreen is an interactive calculator over the swap math
type QuoteScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	// UI components
	form    *component.Form
	helpBar *component.HelpBar

	// State
	lines    []QuoteLine
	quoteErr error

	// Styling
	titleStyle  lipgloss.Style
	panelStyle  lipgloss.Style
	labelStyle  lipgloss.Style
	valueStyle  lipgloss.Style
	errorStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
	columnStyle lipgloss.Style
}

// NewQuoteScreen creates a new quote explorer screen
func NewQuoteScreen() *QuoteScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	form := component.NewForm().
		AddField(fieldSide, component.FieldTypeSelect, "Side", "").
		AddField(fieldBaseReserve, component.FieldTypeNumber, "Base reserve (raw)", "0").
		AddField(fieldQuoteReserve, component.FieldTypeNumber, "Quote reserve (lamports)", "0").
		AddField(fieldLPFee, component.FieldTypeNumber, "LP fee (bps)", "0").
		AddField(fieldProtocolFee, component.FieldTypeNumber, "Protocol fee (bps)", "0").
		AddField(fieldCreatorFee, component.FieldTypeNumber, "Creator fee (bps)", "0").
		AddField(fieldAmount, component.FieldTypeNumber, "Amount (raw)", "0").
		AddField(fieldSlippage, component.FieldTypeNumber, "Slippage (%)", "1")

	form.SetSelectOptions(fieldSide, []string{
		sideBuyBaseOut,
		sideBuyQuoteIn,
		sideSellBaseIn,
		sideSellQuoteOut,
	})

	// Prefill a plausible graduated pool so the explorer renders a
	// result immediately.
	form.SetFieldValue(fieldBaseReserve, "1000000000000")
	form.SetFieldValue(fieldQuoteReserve, "42000000000")
	form.SetFieldValue(fieldLPFee, "20")
	form.SetFieldValue(fieldProtocolFee, "5")
	form.SetFieldValue(fieldCreatorFee, "5")
	form.SetFieldValue(fieldAmount, "1000000000")
	form.SetFieldValue(fieldSlippage, "1")

	helpBar := component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteQuote))

	s := &QuoteScreen{
		keyMap:  keyMap,
		form:    form,
		helpBar: helpBar,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0, 1, 1),

		panelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Width(22),

		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		columnStyle: lipgloss.NewStyle().
			Margin(0, 1),
	}

	s.recompute()
	return s
}

// Init initializes the quote screen
func (s *QuoteScreen) Init() tea.Cmd {
	return nil
}

// Update handles messages for the quote screen
func (s *QuoteScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.EventMsg, ui.FeedStatsMsg:
		// Feed traffic is displayed elsewhere.
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, s.keyMap.Quit) {
			return s, tea.Quit
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)

	// Recompute on every edit so the result tracks the inputs live.
	s.recompute()

	return s, cmd
}

// View renders the quote screen
func (s *QuoteScreen) View() string {
	var content strings.Builder

	content.WriteString(s.titleStyle.Render("PumpSwap Quote Explorer"))
	content.WriteString("\n")

	formPanel := s.columnStyle.Render(s.form.View())
	resultPanel := s.columnStyle.Render(s.panelStyle.Render(s.resultView()))

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, formPanel, resultPanel))
	content.WriteString("\n")
	content.WriteString(s.helpBar.View())

	return content.String()
}

// SetSize updates the screen dimensions
func (s *QuoteScreen) SetSize(width, height int) {
	s.width = width
	s.height = height

	formWidth := width / 2
	if formWidth > 60 {
		formWidth = 60
	}
	s.form.SetWidth(formWidth)
	s.helpBar.SetWidth(width)
}

// recompute reprices the current form values
func (s *QuoteScreen) recompute() {
	s.lines, s.quoteErr = computeQuote(QuoteInputs{
		Side:           s.form.GetValue(fieldSide),
		BaseReserve:    s.form.GetValue(fieldBaseReserve),
		QuoteReserve:   s.form.GetValue(fieldQuoteReserve),
		LPFeeBps:       s.form.GetValue(fieldLPFee),
		ProtocolFeeBps: s.form.GetValue(fieldProtocolFee),
		CreatorFeeBps:  s.form.GetValue(fieldCreatorFee),
		Amount:         s.form.GetValue(fieldAmount),
		Slippage:       s.form.GetValue(fieldSlippage),
	})
}

// resultView renders the quote result panel
func (s *QuoteScreen) resultView() string {
	if s.quoteErr != nil {
		return s.errorStyle.Render("⚠ " + s.quoteErr.Error())
	}

	var content strings.Builder
	for i, line := range s.lines {
		content.WriteString(s.labelStyle.Render(line.Label))
		content.WriteString(s.valueStyle.Render(line.Value))
		if i < len(s.lines)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// computeQuote parses the form values and prices the selected swap.
// It is the pure core of the screen so the arithmetic stays testable.
func computeQuote(in QuoteInputs) ([]QuoteLine, error) {
	baseReserve, err := parseAmount("base reserve", in.BaseReserve)
	if err != nil {
		return nil, err
	}
	quoteReserve, err := parseAmount("quote reserve", in.QuoteReserve)
	if err != nil {
		return nil, err
	}
	lpFee, err := parseAmount("lp fee", in.LPFeeBps)
	if err != nil {
		return nil, err
	}
	protocolFee, err := parseAmount("protocol fee", in.ProtocolFeeBps)
	if err != nil {
		return nil, err
	}
	creatorFee, err := parseAmount("creator fee", in.CreatorFeeBps)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	slippage, err := parseSlippage(in.Slippage)
	if err != nil {
		return nil, err
	}

	pool := pumpswap.PoolState{
		BaseReserve:               baseReserve,
		QuoteReserve:              quoteReserve,
		LPFeeBasisPoints:          lpFee,
		ProtocolFeeBasisPoints:    protocolFee,
		CoinCreatorFeeBasisPoints: creatorFee,
	}
	if creatorFee > 0 {
		// Sells only charge the creator fee when the pool names a
		// creator.
		pool.CoinCreator = solana.PublicKey{31: 1}
	}

	lines := make([]QuoteLine, 0, 4)

	if price, err := pumpswap.PoolPrice(pool, pumpswap.PumpTokenDecimals, pumpswap.WSOLDecimals); err == nil {
		lines = append(lines, QuoteLine{"Spot price", price.StringFixed(9) + " SOL"})
	}

	switch in.Side {
	case sideBuyBaseOut:
		res, err := pumpswap.BuyBaseOut(pool, amount, slippage)
		if err != nil {
			return nil, err
		}
		return append(lines,
			QuoteLine{"Raw quote in", formatRaw(res.RawQuoteIn)},
			QuoteLine{"Quote in (with fees)", formatRaw(res.QuoteIn)},
			QuoteLine{"Max quote in", formatRaw(res.MaxQuoteIn)},
		), nil

	case sideBuyQuoteIn:
		res, err := pumpswap.BuyQuoteIn(pool, amount, slippage)
		if err != nil {
			return nil, err
		}
		return append(lines,
			QuoteLine{"Effective quote in", formatRaw(res.EffectiveQuoteIn)},
			QuoteLine{"Base out", formatRaw(res.BaseOut)},
			QuoteLine{"Max quote in", formatRaw(res.MaxQuoteIn)},
		), nil

	case sideSellBaseIn:
		res, err := pumpswap.SellBaseIn(pool, amount, slippage)
		if err != nil {
			return nil, err
		}
		return append(lines,
			QuoteLine{"Raw quote out", formatRaw(res.RawQuoteOut)},
			QuoteLine{"Quote out (after fees)", formatRaw(res.QuoteOut)},
			QuoteLine{"Min quote out", formatRaw(res.MinQuoteOut)},
		), nil

	case sideSellQuoteOut:
		res, err := pumpswap.SellQuoteOut(pool, amount, slippage)
		if err != nil {
			return nil, err
		}
		return append(lines,
			QuoteLine{"Raw quote out", formatRaw(res.RawQuoteOut)},
			QuoteLine{"Base in", formatRaw(res.BaseIn)},
			QuoteLine{"Min quote out", formatRaw(res.MinQuoteOut)},
		), nil

	default:
		return nil, fmt.Errorf("unknown side %q", in.Side)
	}
}

// parseAmount parses a non-negative integer form value
func parseAmount(name, value string) (uint64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	parsed, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return parsed, nil
}

// parseSlippage parses the slippage percentage form value
func parseSlippage(value string) (uint8, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("slippage is required")
	}

	parsed, err := strconv.ParseUint(trimmed, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("slippage must be a percentage between 0 and 100")
	}
	return uint8(parsed), nil
}
