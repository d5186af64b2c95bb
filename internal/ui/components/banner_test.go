// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"
)

func TestNewErrorBanner(t *testing.T) {
	banner := NewErrorBanner("Save failed")

	if banner.Message != "Save failed" {
		t.Errorf("Expected message 'Save failed', got '%s'", banner.Message)
	}
	if banner.Kind != BannerKindError {
		t.Errorf("Expected BannerKindError, got %d", banner.Kind)
	}
	if banner.Duration != ErrorBannerDuration {
		t.Errorf("Expected duration %v, got %v", ErrorBannerDuration, banner.Duration)
	}
	if !banner.Dismissible {
		t.Error("Expected banner to be dismissible")
	}
	if banner.ID == 0 {
		t.Error("Expected non-zero banner ID")
	}
}

func TestNewWarningBanner(t *testing.T) {
	banner := NewWarningBanner("Index out of date")

	if banner.Kind != BannerKindWarning {
		t.Errorf("Expected BannerKindWarning, got %d", banner.Kind)
	}
	if banner.Duration != WarningBannerDuration {
		t.Errorf("Expected duration %v, got %v", WarningBannerDuration, banner.Duration)
	}
}

func TestNewReminderBanner(t *testing.T) {
	banner := NewReminderBanner("Stand-up in 5 minutes")

	if banner.Kind != BannerKindReminder {
		t.Errorf("Expected BannerKindReminder, got %d", banner.Kind)
	}
	if banner.Duration != ReminderBannerDuration {
		t.Errorf("Expected duration %v, got %v", ReminderBannerDuration, banner.Duration)
	}
	if banner.Duration <= ErrorBannerDuration {
		t.Error("Reminder banners should outlive error banners")
	}
}

func TestBannerIsExpired(t *testing.T) {
	// Create a banner with very short duration
	banner := NewStatusBanner("Test")
	banner.Duration = 10 * time.Millisecond
	banner.CreatedAt = time.Now().Add(-20 * time.Millisecond)

	if !banner.IsExpired() {
		t.Error("Banner should be expired")
	}

	// Fresh banner should not be expired
	freshBanner := NewStatusBanner("Fresh")
	if freshBanner.IsExpired() {
		t.Error("Fresh banner should not be expired")
	}
}

func TestBannerManager(t *testing.T) {
	manager := NewBannerManager()

	if manager.HasBanners() {
		t.Error("New manager should have no banners")
	}

	// Add banners
	id1 := manager.AddError("Error 1")
	id2 := manager.AddWarning("Warning 1")

	if !manager.HasBanners() {
		t.Error("Manager should have banners after adding")
	}

	banners := manager.GetBanners()
	if len(banners) != 2 {
		t.Errorf("Expected 2 banners, got %d", len(banners))
	}

	// Remove a banner
	manager.RemoveBanner(id1)
	banners = manager.GetBanners()
	if len(banners) != 1 {
		t.Errorf("Expected 1 banner after removal, got %d", len(banners))
	}

	// Clear all banners
	manager.Clear()
	if manager.HasBanners() {
		t.Error("Manager should have no banners after clear")
	}

	// Silence unused warning
	_ = id2
}

func TestBannerManagerMaxBanners(t *testing.T) {
	manager := NewBannerManager()
	manager.maxBanners = 3

	// Add more than max banners
	manager.AddStatus("Banner 1")
	manager.AddStatus("Banner 2")
	manager.AddStatus("Banner 3")
	manager.AddStatus("Banner 4")
	manager.AddStatus("Banner 5")

	banners := manager.GetBanners()
	if len(banners) != 3 {
		t.Errorf("Expected max 3 banners, got %d", len(banners))
	}

	// Newest banners should be first
	if banners[0].Message != "Banner 5" {
		t.Error("Newest banner should be first")
	}
}

func TestBannerTickExpiry(t *testing.T) {
	manager := NewBannerManager()

	// Add a banner that's already expired
	expiredBanner := NewStatusBanner("Expired")
	expiredBanner.Duration = 10 * time.Millisecond
	expiredBanner.CreatedAt = time.Now().Add(-100 * time.Millisecond)
	manager.AddBanner(expiredBanner)

	// Add a fresh banner
	manager.AddStatus("Fresh")

	// Tick should remove expired banner
	remaining := manager.TickBanners()
	if len(remaining) != 1 {
		t.Errorf("Expected 1 remaining banner after tick, got %d", len(remaining))
	}
	if remaining[0].Message != "Fresh" {
		t.Error("Fresh banner should remain")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{-1, "0"},
		{1, "1"},
		{5, "5"},
		{10, "10"},
		{59, "59"},
		{100, "100"},
	}

	for _, tc := range tests {
		result := formatSeconds(tc.input)
		if result != tc.expected {
			t.Errorf("formatSeconds(%d) = %s, expected %s", tc.input, result, tc.expected)
		}
	}
}

func TestRenderBanner(t *testing.T) {
	banner := NewErrorBanner("Save failed")
	rendered := RenderBanner(banner, 80)

	if rendered == "" {
		t.Error("Rendered banner should not be empty")
	}

	// Should contain the message
	if len(rendered) < len(banner.Message) {
		t.Error("Rendered banner should contain the message")
	}
}

func TestRenderBannerStack(t *testing.T) {
	banners := []Banner{
		NewErrorBanner("Error 1"),
		NewReminderBanner("Water the plants"),
	}

	rendered := RenderBannerStack(banners, 100, 40)

	if rendered == "" {
		t.Error("Rendered banner stack should not be empty")
	}
}

func TestRenderBannerStackEmpty(t *testing.T) {
	rendered := RenderBannerStack([]Banner{}, 100, 40)

	if rendered != "" {
		t.Error("Empty banner stack should render empty string")
	}
}
