// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the lexflow TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AIBubble        lipgloss.Style
	AnalyzingBubble lipgloss.Style
	SourcesBubble   lipgloss.Style
	SourcesTitle    lipgloss.Style
	SourcesLink     lipgloss.Style
	ErrorBubble     lipgloss.Style

	// ==========================================================================
	// CONFIRM-SEARCH BUBBLE STYLES
	// ==========================================================================

	ConfirmBubble         lipgloss.Style
	ConfirmStatement      lipgloss.Style
	ConfirmButton         lipgloss.Style
	ConfirmButtonFocused  lipgloss.Style
	ConfirmButtonDisabled lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	InputDisabled    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusModel  lipgloss.Style
	StatusPhase  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES (settings, inspector)
	// ==========================================================================

	OverlayBox          lipgloss.Style
	OverlayTitle        lipgloss.Style
	OverlayItem         lipgloss.Style
	OverlayItemSelected lipgloss.Style
	OverlayLabel        lipgloss.Style
	OverlayValue        lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeBox      lipgloss.Style
	WelcomeTitle    lipgloss.Style
	WelcomeInfo     lipgloss.Style
	WelcomePressKey lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AIBubble = lipgloss.NewStyle().
		Foreground(AIBubbleFg).
		Background(AIBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AIBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.AnalyzingBubble = lipgloss.NewStyle().
		Foreground(AnalyzingBubbleFg).
		Background(AnalyzingBubbleBg).
		Padding(0, 2).
		Italic(true).
		MarginRight(4)

	t.SourcesBubble = lipgloss.NewStyle().
		Foreground(SourcesBubbleFg).
		Background(SourcesBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Emerald).
		Padding(0, 2).
		MarginRight(4)

	t.SourcesTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.SourcesLink = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		Background(ErrorBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	// Confirm-search bubble
	t.ConfirmBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Indigo).
		Padding(0, 2).
		MarginRight(4)

	t.ConfirmStatement = lipgloss.NewStyle().
		Italic(true).
		Foreground(Indigo)

	t.ConfirmButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ConfirmButtonFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1)

	t.ConfirmButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1).
		Strikethrough(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.InputDisabled = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusModel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.StatusPhase = lipgloss.NewStyle().
		Foreground(Amber)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Overlays
	t.OverlayBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Background(Surface).
		Padding(1, 2)

	t.OverlayTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)

	t.OverlayItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.OverlayItemSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1)

	t.OverlayLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.OverlayValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	// Spinner / loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.WelcomeTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomePressKey = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
