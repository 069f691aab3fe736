package display

import (
	"testing"

	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

func TestProbabilityBucket(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{90, "high"},
		{65, "high"},
		{64.9, "medium"},
		{45, "medium"},
		{44.9, "low"},
		{0, "low"},
	}
	for _, tt := range tests {
		if got := ProbabilityBucket(tt.p); got != tt.want {
			t.Errorf("ProbabilityBucket(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestChangeArrow(t *testing.T) {
	tests := []struct {
		change float64
		want   string
	}{
		{5.7, "↑"},
		{-0.1, "↓"},
		{0, "→"},
	}
	for _, tt := range tests {
		if got := ChangeArrow(tt.change); got != tt.want {
			t.Errorf("ChangeArrow(%v) = %q, want %q", tt.change, got, tt.want)
		}
	}
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status events.GameStatus
		want   string
	}{
		{events.StatusScheduled, "UPCOMING"},
		{events.StatusInPlay, "LIVE"},
		{events.StatusPaused, "HT"},
		{events.StatusFinished, "FT"},
		{"SOMETHING_ELSE", "UPCOMING"},
	}
	for _, tt := range tests {
		if got := StatusBadge(tt.status); got != tt.want {
			t.Errorf("StatusBadge(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
