package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/pumpswap-go/internal/ui/style"
)

// TableColumn represents a column configuration
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableRow represents a row of data
type TableRow struct {
	Data  []string
	Style lipgloss.Style
}

// Table renders rows of cells under fixed headers. Rows are kept
// newest first and capped at maxRows, with a scrollable window.
type Table struct {
	columns []TableColumn
	rows    []TableRow
	width   int
	height  int
	offset  int
	maxRows int

	// Styling
	headerStyle lipgloss.Style
	rowStyle    lipgloss.Style
	borderStyle lipgloss.Style
}

// NewTable creates a new table component keeping at most maxRows rows.
func NewTable(maxRows int) *Table {
	palette := style.DefaultPalette()

	return &Table{
		columns: make([]TableColumn, 0),
		rows:    make([]TableRow, 0),
		maxRows: maxRows,

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),
	}
}

// SetColumns sets the table columns
func (t *Table) SetColumns(columns []TableColumn) *Table {
	t.columns = columns
	return t
}

// RowStyle returns the default row style so callers can derive
// colored variants from it.
func (t *Table) RowStyle() lipgloss.Style {
	return t.rowStyle
}

// PushRow inserts a row at the top of the table and drops the oldest
// row once the cap is reached.
func (t *Table) PushRow(data []string, rowStyle lipgloss.Style) *Table {
	t.rows = append([]TableRow{{Data: data, Style: rowStyle}}, t.rows...)
	if t.maxRows > 0 && len(t.rows) > t.maxRows {
		t.rows = t.rows[:t.maxRows]
	}
	t.clampOffset()
	return t
}

// SetSize sets the table dimensions
func (t *Table) SetSize(width, height int) *Table {
	t.width = width
	t.height = height
	t.clampOffset()
	return t
}

// ScrollUp moves the visible window toward the newest rows
func (t *Table) ScrollUp() *Table {
	if t.offset > 0 {
		t.offset--
	}
	return t
}

// ScrollDown moves the visible window toward the oldest rows
func (t *Table) ScrollDown() *Table {
	t.offset++
	t.clampOffset()
	return t
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return "No columns defined"
	}

	var content strings.Builder

	// Calculate column widths if not set
	t.calculateColumnWidths()

	// Render headers
	var headerRow strings.Builder
	for i, col := range t.columns {
		cell := t.renderCell(col.Header, col.Width, col.Align, t.headerStyle)
		headerRow.WriteString(cell)

		if i < len(t.columns)-1 {
			headerRow.WriteString("│")
		}
	}
	content.WriteString(headerRow.String())
	content.WriteString("\n")

	// Header separator
	var separator strings.Builder
	for i, col := range t.columns {
		separator.WriteString(strings.Repeat("─", col.Width))
		if i < len(t.columns)-1 {
			separator.WriteString("┼")
		}
	}
	content.WriteString(separator.String())

	// Render the visible window
	visible := t.visibleRows()
	for i := t.offset; i < len(t.rows) && i < t.offset+visible; i++ {
		row := t.rows[i]

		var rowStr strings.Builder
		for j, col := range t.columns {
			cellData := ""
			if j < len(row.Data) {
				cellData = row.Data[j]
			}

			cell := t.renderCell(cellData, col.Width, col.Align, row.Style)
			rowStr.WriteString(cell)

			if j < len(t.columns)-1 {
				rowStr.WriteString("│")
			}
		}

		content.WriteString("\n")
		content.WriteString(rowStr.String())
	}

	result := content.String()
	return t.borderStyle.Render(result)
}

// renderCell renders a single table cell
func (t *Table) renderCell(content string, width int, align lipgloss.Position, style lipgloss.Style) string {
	// Truncate content if it's too long
	if len(content) > width {
		if width > 3 {
			content = content[:width-3] + "..."
		} else {
			content = content[:width]
		}
	}

	// Apply alignment and padding
	cellStyle := style.Width(width).Align(align)
	return cellStyle.Render(content)
}

// calculateColumnWidths calculates column widths if not explicitly set
func (t *Table) calculateColumnWidths() {
	if t.width <= 0 {
		return
	}

	// Count columns with explicit widths
	totalExplicitWidth := 0
	autoWidthColumns := 0

	for _, col := range t.columns {
		if col.Width > 0 {
			totalExplicitWidth += col.Width
		} else {
			autoWidthColumns++
		}
	}

	// Calculate available width for auto-width columns
	separatorWidth := len(t.columns) - 1 // For column separators
	availableWidth := t.width - totalExplicitWidth - separatorWidth

	if autoWidthColumns > 0 && availableWidth > 0 {
		autoWidth := availableWidth / autoWidthColumns

		// Set auto widths
		for i := range t.columns {
			if t.columns[i].Width <= 0 {
				t.columns[i].Width = autoWidth
			}
		}
	}
}

// visibleRows returns how many rows fit the current height. With no
// height set yet all rows are rendered.
func (t *Table) visibleRows() int {
	if t.height <= 0 {
		return len(t.rows)
	}

	// Headers, separator and the border consume four lines.
	visible := t.height - 4
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (t *Table) clampOffset() {
	maxOffset := len(t.rows) - t.visibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.offset > maxOffset {
		t.offset = maxOffset
	}
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Clear removes all rows from the table
func (t *Table) Clear() *Table {
	t.rows = make([]TableRow, 0)
	t.offset = 0
	return t
}
