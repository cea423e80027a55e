package notify

import (
	"errors"
	"testing"
)

type fakeTone struct {
	notifies int
	confirms int
	failNext bool
}

func (f *fakeTone) Notify() error {
	if f.failNext {
		f.failNext = false
		return errors.New("device busy")
	}
	f.notifies++
	return nil
}

func (f *fakeTone) Confirm() error {
	if f.failNext {
		f.failNext = false
		return errors.New("device busy")
	}
	f.confirms++
	return nil
}

func TestInitialLoadProducesNothing(t *testing.T) {
	n := New(&fakeTone{})

	if _, ok := n.OnUpdate(true, false); ok {
		t.Fatal("expected no effect during initial load")
	}
	if n.BannerVisible() {
		t.Fatal("banner should not show during initial load")
	}
}

func TestUpdateShowsBannerWithoutToneWhileLocked(t *testing.T) {
	tone := &fakeTone{}
	n := New(tone)

	eff, ok := n.OnUpdate(false, false)
	if !ok || !eff.Banner {
		t.Fatal("expected banner effect")
	}
	if eff.PlayTone {
		t.Fatal("tone should be withheld while audio is locked")
	}
	if eff.HideIn != BannerDuration {
		t.Fatalf("HideIn = %v, want %v", eff.HideIn, BannerDuration)
	}
	if !n.BannerVisible() {
		t.Fatal("banner should be visible")
	}
}

func TestUnlockEnablesTone(t *testing.T) {
	tone := &fakeTone{}
	n := New(tone)

	if err := n.Unlock(); err != nil {
		t.Fatal(err)
	}
	if n.AudioState() != Unlocked {
		t.Fatal("expected Unlocked after gesture")
	}
	if tone.confirms != 1 {
		t.Fatalf("confirms = %d, want 1", tone.confirms)
	}

	eff, _ := n.OnUpdate(false, false)
	if !eff.PlayTone {
		t.Fatal("expected tone once unlocked")
	}
}

func TestUnlockFailureStaysLocked(t *testing.T) {
	tone := &fakeTone{failNext: true}
	n := New(tone)

	if err := n.Unlock(); err == nil {
		t.Fatal("expected unlock error")
	}
	if n.AudioState() != Locked {
		t.Fatal("failed unlock must stay Locked")
	}

	// A later gesture retries and succeeds.
	if err := n.Unlock(); err != nil {
		t.Fatal(err)
	}
	if n.AudioState() != Unlocked {
		t.Fatal("expected Unlocked after retry")
	}
}

func TestQuietHoursSuppressToneOnly(t *testing.T) {
	n := New(&fakeTone{})
	if err := n.Unlock(); err != nil {
		t.Fatal(err)
	}

	eff, ok := n.OnUpdate(false, true)
	if !ok || !eff.Banner {
		t.Fatal("banner must still show during quiet hours")
	}
	if eff.PlayTone {
		t.Fatal("tone must be suppressed during quiet hours")
	}
}

func TestRetriggerResetsBannerTimer(t *testing.T) {
	n := New(&fakeTone{})

	first, _ := n.OnUpdate(false, false)
	second, _ := n.OnUpdate(false, false)
	if first.BannerGen == second.BannerGen {
		t.Fatal("re-trigger should mint a new banner generation")
	}

	// The first banner's hide timer fires after the second showed: ignored.
	if n.HideBanner(first.BannerGen) {
		t.Fatal("stale hide timer should be ignored")
	}
	if !n.BannerVisible() {
		t.Fatal("banner should remain visible")
	}

	if !n.HideBanner(second.BannerGen) {
		t.Fatal("live hide timer should apply")
	}
	if n.BannerVisible() {
		t.Fatal("banner should be hidden")
	}
}

func TestNilToneDegradesToVisualOnly(t *testing.T) {
	n := New(nil)

	if err := n.Unlock(); err != nil {
		t.Fatal(err)
	}
	if n.AudioState() != Locked {
		t.Fatal("no device means audio never unlocks")
	}

	eff, ok := n.OnUpdate(false, false)
	if !ok || !eff.Banner {
		t.Fatal("banner still works without audio")
	}
	if eff.PlayTone {
		t.Fatal("no tone without a device")
	}
	if err := n.PlayTone(); err != nil {
		t.Fatal("PlayTone on nil device should be a no-op")
	}
}
