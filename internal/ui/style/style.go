// Package style provides the colors, icons and text styles shared by the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Violet = lipgloss.Color("#512BD4")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Blue   = lipgloss.Color("#2E90FA")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
	Circle  = "○"
)

// Header styles table headers.
func Header(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(Violet)
}

// Muted styles secondary text such as paths.
func Muted(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Slate)
}

// Startup styles the startup project.
func Startup(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(Green)
}

// Kind styles a project kind label.
func Kind(r *lipgloss.Renderer, kind string) lipgloss.Style {
	s := r.NewStyle()
	switch kind {
	case "executable":
		return s.Foreground(Green)
	case "test":
		return s.Foreground(Yellow)
	case "library":
		return s.Foreground(Blue)
	default:
		return s.Foreground(Slate)
	}
}
