// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the jot TUI.
//
// This file implements non-blocking notification banners inspired by lazygit's
// popup/toast system. Unlike modal dialogs, banners appear in the bottom-right
// corner and auto-dismiss, so saving, exporting, and due reminders never
// interrupt typing.
package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jotkit/jot-tui/internal/ui/styles"
)

// =============================================================================
// BANNER TYPES
// =============================================================================

// BannerKind represents the type of banner notification.
type BannerKind int

const (
	// BannerKindStatus is an informational banner (cyan color)
	BannerKindStatus BannerKind = iota
	// BannerKindError is an error banner (rose/red color)
	BannerKindError
	// BannerKindWarning is a warning banner (amber color)
	BannerKindWarning
	// BannerKindSuccess is a success banner (emerald color)
	BannerKindSuccess
	// BannerKindReminder is a due reminder banner (amber, longest lived)
	BannerKindReminder
)

// DefaultBannerDuration is the default auto-dismiss duration for status banners.
const DefaultBannerDuration = 4 * time.Second

// ErrorBannerDuration is the auto-dismiss duration for error banners (longer to read).
const ErrorBannerDuration = 8 * time.Second

// WarningBannerDuration is the auto-dismiss duration for warning banners.
const WarningBannerDuration = 6 * time.Second

// ReminderBannerDuration is the auto-dismiss duration for due reminders.
// Reminders are the whole point of asking to be interrupted, so they linger.
const ReminderBannerDuration = 12 * time.Second

// =============================================================================
// BANNER
// =============================================================================

// Banner represents a non-blocking notification.
// Unlike modal dialogs, banners appear in the corner and auto-dismiss.
type Banner struct {
	ID          int           // Unique identifier for this banner
	Message     string        // The banner message
	Kind        BannerKind    // Type of banner
	CreatedAt   time.Time     // When the banner was created
	Duration    time.Duration // How long before auto-dismiss
	Dismissible bool          // Whether user can dismiss early
}

// NewErrorBanner creates a new error banner with default 8-second duration.
func NewErrorBanner(message string) Banner {
	return Banner{
		ID:          generateBannerID(),
		Message:     message,
		Kind:        BannerKindError,
		CreatedAt:   time.Now(),
		Duration:    ErrorBannerDuration,
		Dismissible: true,
	}
}

// NewWarningBanner creates a new warning banner with default 6-second duration.
func NewWarningBanner(message string) Banner {
	return Banner{
		ID:          generateBannerID(),
		Message:     message,
		Kind:        BannerKindWarning,
		CreatedAt:   time.Now(),
		Duration:    WarningBannerDuration,
		Dismissible: true,
	}
}

// NewStatusBanner creates a new status/info banner with default 4-second duration.
func NewStatusBanner(message string) Banner {
	return Banner{
		ID:          generateBannerID(),
		Message:     message,
		Kind:        BannerKindStatus,
		CreatedAt:   time.Now(),
		Duration:    DefaultBannerDuration,
		Dismissible: true,
	}
}

// NewSuccessBanner creates a new success banner with default 4-second duration.
func NewSuccessBanner(message string) Banner {
	return Banner{
		ID:          generateBannerID(),
		Message:     message,
		Kind:        BannerKindSuccess,
		CreatedAt:   time.Now(),
		Duration:    DefaultBannerDuration,
		Dismissible: true,
	}
}

// NewReminderBanner creates a banner for a due reminder.
func NewReminderBanner(message string) Banner {
	return Banner{
		ID:          generateBannerID(),
		Message:     message,
		Kind:        BannerKindReminder,
		CreatedAt:   time.Now(),
		Duration:    ReminderBannerDuration,
		Dismissible: true,
	}
}

// IsExpired returns true if the banner should be dismissed.
func (b *Banner) IsExpired() bool {
	return time.Since(b.CreatedAt) >= b.Duration
}

// TimeRemaining returns how much time is left before auto-dismiss.
func (b *Banner) TimeRemaining() time.Duration {
	remaining := b.Duration - time.Since(b.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// BANNER MANAGER
// =============================================================================

// BannerManager manages multiple banner notifications.
type BannerManager struct {
	banners    []Banner
	nextID     int
	maxBanners int
	mutex      sync.Mutex
}

// NewBannerManager creates a new banner manager.
func NewBannerManager() *BannerManager {
	return &BannerManager{
		banners:    make([]Banner, 0),
		nextID:     1,
		maxBanners: 5, // Maximum visible banners at once
	}
}

// AddBanner adds a new banner to the manager.
func (m *BannerManager) AddBanner(banner Banner) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Assign ID if not set
	if banner.ID == 0 {
		banner.ID = m.nextID
		m.nextID++
	}

	// Add to front of list (newest first)
	m.banners = append([]Banner{banner}, m.banners...)

	// Trim to max banners
	if len(m.banners) > m.maxBanners {
		m.banners = m.banners[:m.maxBanners]
	}

	return banner.ID
}

// AddError is a convenience method to add an error banner.
func (m *BannerManager) AddError(message string) int {
	return m.AddBanner(NewErrorBanner(message))
}

// AddWarning is a convenience method to add a warning banner.
func (m *BannerManager) AddWarning(message string) int {
	return m.AddBanner(NewWarningBanner(message))
}

// AddStatus is a convenience method to add a status banner.
func (m *BannerManager) AddStatus(message string) int {
	return m.AddBanner(NewStatusBanner(message))
}

// AddSuccess is a convenience method to add a success banner.
func (m *BannerManager) AddSuccess(message string) int {
	return m.AddBanner(NewSuccessBanner(message))
}

// AddReminder is a convenience method to add a due reminder banner.
func (m *BannerManager) AddReminder(message string) int {
	return m.AddBanner(NewReminderBanner(message))
}

// RemoveBanner removes a banner by ID.
func (m *BannerManager) RemoveBanner(id int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, banner := range m.banners {
		if banner.ID == id {
			m.banners = append(m.banners[:i], m.banners[i+1:]...)
			return
		}
	}
}

// TickBanners removes expired banners and returns the remaining banners.
// Should be called periodically (e.g., every 100ms).
func (m *BannerManager) TickBanners() []Banner {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Filter out expired banners
	active := make([]Banner, 0, len(m.banners))
	for _, banner := range m.banners {
		if !banner.IsExpired() {
			active = append(active, banner)
		}
	}
	m.banners = active

	return m.banners
}

// GetBanners returns a copy of the current banners.
func (m *BannerManager) GetBanners() []Banner {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]Banner, len(m.banners))
	copy(result, m.banners)
	return result
}

// HasBanners returns true if there are any active banners.
func (m *BannerManager) HasBanners() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.banners) > 0
}

// Clear removes all banners.
func (m *BannerManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.banners = make([]Banner, 0)
}

// =============================================================================
// BANNER MESSAGES
// =============================================================================

// BannerTickMsg is sent periodically to update banner state.
type BannerTickMsg struct {
	Time time.Time
}

// BannerDismissMsg requests dismissing a specific banner.
type BannerDismissMsg struct {
	ID int
}

// BannerAddMsg requests adding a new banner.
type BannerAddMsg struct {
	Message string
	Kind    BannerKind
}

// BannerTickCmd returns a command that ticks banners every 100ms.
func BannerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return BannerTickMsg{Time: t}
	})
}

// =============================================================================
// BANNER RENDERING
// =============================================================================

// RenderBanner renders a single banner notification.
func RenderBanner(banner Banner, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	// Determine colors based on banner kind
	var iconColor, borderColor lipgloss.AdaptiveColor
	var icon string

	switch banner.Kind {
	case BannerKindError:
		iconColor = styles.Rose
		borderColor = styles.Rose
		icon = styles.StatusIndicators.Error
	case BannerKindWarning:
		iconColor = styles.Amber
		borderColor = styles.Amber
		icon = styles.StatusIndicators.Warning
	case BannerKindSuccess:
		iconColor = styles.Emerald
		borderColor = styles.Emerald
		icon = styles.StatusIndicators.Success
	case BannerKindReminder:
		iconColor = styles.Amber
		borderColor = styles.Amber
		icon = styles.StatusIndicators.Pending
	default: // BannerKindStatus
		iconColor = styles.Cyan
		borderColor = styles.Cyan
		icon = styles.StatusIndicators.Info
	}

	// Build content
	iconStyle := lipgloss.NewStyle().
		Foreground(iconColor).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 8)

	// Wrap message text
	message := banner.Message
	if len(message) > maxWidth-10 {
		// Simple word wrap
		message = wrapBannerText(message, maxWidth-10)
	}

	content := iconStyle.Render(icon+" ") + messageStyle.Render(message)

	// Add dismiss hint for dismissible banners
	if banner.Dismissible {
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)

		hints := []string{"[x] Dismiss"}

		// Show time remaining
		remaining := banner.TimeRemaining()
		if remaining > 0 {
			secs := int(remaining.Seconds())
			if secs > 0 {
				hints = append(hints, formatSeconds(secs)+"s")
			}
		}

		content += "\n" + hintStyle.Render(strings.Join(hints, "  "))
	}

	// Create banner box
	bannerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 2).
		MaxWidth(maxWidth)

	return bannerStyle.Render(content)
}

// RenderBannerStack renders multiple banners stacked vertically.
// Banners are positioned in the bottom-right corner.
func RenderBannerStack(banners []Banner, width, height int) string {
	if len(banners) == 0 {
		return ""
	}

	// Render each banner
	rendered := make([]string, 0, len(banners))
	for _, banner := range banners {
		rendered = append(rendered, RenderBanner(banner, width))
	}

	// Stack banners vertically (newest at bottom)
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)

	// Position in bottom-right with margin
	positioned := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(stack)

	// Place at bottom-right of screen
	if width > 0 && height > 0 {
		return lipgloss.Place(
			width, height,
			lipgloss.Right, lipgloss.Bottom,
			positioned,
		)
	}

	return positioned
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Global banner ID counter
var bannerIDMutex sync.Mutex
var bannerIDCounter int

// generateBannerID generates a unique banner ID.
func generateBannerID() int {
	bannerIDMutex.Lock()
	defer bannerIDMutex.Unlock()
	bannerIDCounter++
	return bannerIDCounter
}

// wrapBannerText performs simple word wrapping for banner messages.
func wrapBannerText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= maxWidth {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n")
}

// formatSeconds formats seconds as a string for countdown display.
func formatSeconds(secs int) string {
	if secs <= 0 {
		return "0"
	}
	// Simple int to string conversion
	result := ""
	for secs > 0 {
		digit := secs % 10
		result = string(rune('0'+digit)) + result
		secs /= 10
	}
	if result == "" {
		return "0"
	}
	return result
}
