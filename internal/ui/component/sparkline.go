package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkRunes maps normalized samples to block characters, lowest to highest.
var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline plots a capped series of samples as one line of block
// characters, oldest on the left.
type Sparkline struct {
	data  []float64
	width int
	style lipgloss.Style
}

// NewSparkline creates a sparkline that keeps the last width samples.
func NewSparkline(width int, color lipgloss.Color) *Sparkline {
	return &Sparkline{
		width: width,
		style: lipgloss.NewStyle().Foreground(color),
	}
}

// Push appends a sample, dropping the oldest once the line is full.
func (s *Sparkline) Push(value float64) *Sparkline {
	s.data = append(s.data, value)
	if len(s.data) > s.width {
		s.data = s.data[len(s.data)-s.width:]
	}
	return s
}

// SetWidth resizes the line and trims samples that no longer fit.
func (s *Sparkline) SetWidth(width int) *Sparkline {
	s.width = width
	if width > 0 && len(s.data) > width {
		s.data = s.data[len(s.data)-width:]
	}
	return s
}

// Clear drops all samples.
func (s *Sparkline) Clear() *Sparkline {
	s.data = s.data[:0]
	return s
}

// Empty reports whether any samples have arrived yet.
func (s *Sparkline) Empty() bool {
	return len(s.data) == 0
}

// ChangePercent returns the move from the first kept sample to the latest.
func (s *Sparkline) ChangePercent() float64 {
	if len(s.data) < 2 || s.data[0] == 0 {
		return 0
	}
	return (s.data[len(s.data)-1] - s.data[0]) / s.data[0] * 100
}

// Trend returns an arrow for the direction of ChangePercent.
func (s *Sparkline) Trend() string {
	change := s.ChangePercent()
	switch {
	case change > 0.1:
		return "↗"
	case change < -0.1:
		return "↘"
	default:
		return "→"
	}
}

// View renders the kept samples.
func (s *Sparkline) View() string {
	if len(s.data) == 0 {
		return s.style.Render(strings.Repeat("▁", s.width))
	}

	min, max := s.data[0], s.data[0]
	for _, value := range s.data {
		if value < min {
			min = value
		}
		if value > max {
			max = value
		}
	}
	span := max - min

	var blocks strings.Builder
	for _, value := range s.data {
		// Flat line when every sample matches.
		index := 3
		if span > 0 {
			index = int((value - min) / span * float64(len(sparkRunes)-1))
		}
		if index < 0 {
			index = 0
		} else if index >= len(sparkRunes) {
			index = len(sparkRunes) - 1
		}
		blocks.WriteRune(sparkRunes[index])
	}

	return s.style.Render(blocks.String())
}
