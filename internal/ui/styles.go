package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan, headings
	colorAccent  = lipgloss.Color("#FFD700") // Gold, scores
	colorSuccess = lipgloss.Color("#00E676") // Green, harmonious
	colorDanger  = lipgloss.Color("#FF5252") // Red, errors, challenging
	colorWarning = lipgloss.Color("#FFA726") // Orange, moderate
	colorMuted   = lipgloss.Color("#636363") // Gray, de-emphasized
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white, primary text
	colorBlue    = lipgloss.Color("#5B8DEF") // Blue, section labels
)

// Glyphs used in reports and diagnostics.
const (
	iconOK        = "✓"
	iconFailed    = "✗"
	iconBullet    = "•"
	iconRetro     = "℞"
	barFull       = "█"
	barEmpty      = "░"
	scoreBarWidth = 20
)

// Diagnostic styles.
var (
	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleInfo = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Report styles.
var (
	styleTitle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 2)

	styleSection = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginTop(1)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorBlue).
			Width(14)

	styleValue = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleScore = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleHarmonious = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleChallenging = lipgloss.NewStyle().
				Foreground(colorDanger)
)
