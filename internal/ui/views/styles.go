package views

import (
	"github.com/charmbracelet/lipgloss"

	"ticketlist/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	Header        lipgloss.Style
	SortActive    lipgloss.Style
	Row           lipgloss.Style
	Notice        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Tab:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Padding(0, 1),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		SortActive:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Row:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Notice:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// StatusColor returns the color for a listing record status
func StatusColor(status string) string {
	switch status {
	case "PUBLISHED", "CONFIRMED":
		return "78" // green
	case "DRAFT", "PENDING":
		return "214" // yellow
	case "CANCELLED", "CANCELED":
		return "203" // red
	default:
		return "252"
	}
}

// StatusStyle picks the style for the fetch state
func (s *Styles) StatusStyle(st domain.Status) lipgloss.Style {
	switch st {
	case domain.StatusError:
		return s.StatusError
	case domain.StatusLoading:
		return s.StatusLoading
	case domain.StatusSuccess:
		return s.StatusSuccess
	default:
		return s.Dim
	}
}
