package ui

import (
	"testing"
	"time"
)

func TestAlertAutoDismiss(t *testing.T) {
	center := NewAlertCenter()
	defer center.Close()
	center.SetFadeDuration(20 * time.Millisecond)

	alert := center.Show("saved", AlertSuccess, 30*time.Millisecond)

	// Present immediately after creation
	active := center.Active()
	if len(active) != 1 || active[0].ID != alert.ID {
		t.Fatalf("expected the alert to be active immediately, got %v", active)
	}
	if active[0].Fading {
		t.Error("alert should not be fading right after creation")
	}

	// Still visible but fading after expiry, before removal
	time.Sleep(40 * time.Millisecond)
	active = center.Active()
	if len(active) != 1 {
		t.Fatalf("expected the alert to still be visible during fade, got %d", len(active))
	}
	if !active[0].Fading {
		t.Error("alert should be fading after its duration elapsed")
	}

	// Gone after the fade window
	time.Sleep(40 * time.Millisecond)
	if got := len(center.Active()); got != 0 {
		t.Errorf("expected no active alerts after removal, got %d", got)
	}
}

func TestAlertStacking(t *testing.T) {
	center := NewAlertCenter()
	defer center.Close()

	first := center.ShowInfo("first")
	second := center.ShowError("second")

	if first.ID == second.ID {
		t.Error("alerts must get unique ids")
	}

	active := center.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active alerts, got %d", len(active))
	}
	// Oldest first
	if active[0].ID != first.ID || active[1].ID != second.ID {
		t.Errorf("alerts out of order: %v", active)
	}
}

func TestAlertDurations(t *testing.T) {
	center := NewAlertCenter()
	defer center.Close()

	if a := center.ShowInfo("i"); a.Duration != DefaultAlertDuration {
		t.Errorf("info duration = %v, expected %v", a.Duration, DefaultAlertDuration)
	}
	if a := center.ShowSuccess("s"); a.Duration != DefaultAlertDuration {
		t.Errorf("success duration = %v, expected %v", a.Duration, DefaultAlertDuration)
	}
	if a := center.ShowError("e"); a.Duration != ErrorAlertDuration {
		t.Errorf("error duration = %v, expected %v", a.Duration, ErrorAlertDuration)
	}
}

func TestAlertDismiss(t *testing.T) {
	center := NewAlertCenter()
	defer center.Close()

	alert := center.ShowInfo("bye")
	center.Dismiss(alert.ID)

	if got := len(center.Active()); got != 0 {
		t.Errorf("expected no alerts after dismiss, got %d", got)
	}

	// Unknown ids are ignored
	center.Dismiss("alert-0")
}
