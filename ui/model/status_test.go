package model

import "testing"

func TestStatus_LabelsAndIcons(t *testing.T) {
	cases := []struct {
		s     Status
		label string
		icon  string
	}{
		{StatusReady, "Ready", "⚪"},
		{StatusNoCameraReady, "No Camera - Ready", "📷"},
		{StatusFocused, "Focused", "🟢"},
		{StatusDistracted, "Distracted!", "🔴"},
		{StatusManual, "Manual Mode", "🔵"},
		{StatusPaused, "Paused", "⏸️"},
	}
	for _, c := range cases {
		if got := c.s.String(); got != c.label {
			t.Errorf("%d.String() = %q, want %q", c.s, got, c.label)
		}
		if got := c.s.Icon(); got != c.icon {
			t.Errorf("%d.Icon() = %q, want %q", c.s, got, c.icon)
		}
	}
	if got := Status(99).String(); got != "unknown" {
		t.Errorf("out of range status = %q", got)
	}
}
