// Package notify produces the update banner and notification chime emitted
// when board content changes after startup.
package notify

import (
	"time"
)

// BannerDuration is how long the update banner stays visible. Re-triggering
// while visible restarts the countdown.
const BannerDuration = 3 * time.Second

// AudioState tracks whether the audio device has been primed. Terminals and
// kiosk browsers alike refuse to emit sound until a user gesture arrives, so
// the state only moves to Unlocked on an explicit gesture signal.
type AudioState int

const (
	Locked AudioState = iota
	Unlocked
)

// Tone is the audio primitive behind the subsystem. Implementations may fail
// at any point; failures degrade the feature to visual-only.
type Tone interface {
	// Notify plays the two-tone update chime.
	Notify() error
	// Confirm plays the short confirmation blip after a successful unlock.
	Confirm() error
}

// Effect is what one view-model update should produce on screen.
type Effect struct {
	// Banner is always true for post-startup updates.
	Banner bool
	// BannerGen invalidates the hide timers of earlier banners.
	BannerGen int
	// HideIn is when the banner should auto-hide.
	HideIn time.Duration
	// PlayTone is set only when audio is unlocked and quiet hours are off.
	PlayTone bool
}

// Notifier coordinates banner visibility and the audio lifecycle.
type Notifier struct {
	tone          Tone
	audio         AudioState
	bannerGen     int
	bannerVisible bool
}

// New creates a notifier. tone may be nil when no audio device exists; the
// notifier stays Locked forever and only banners are produced.
func New(tone Tone) *Notifier {
	return &Notifier{tone: tone}
}

// AudioState returns the current audio lifecycle state.
func (n *Notifier) AudioState() AudioState { return n.audio }

// BannerVisible reports whether the update banner is currently shown.
func (n *Notifier) BannerVisible() bool { return n.bannerVisible }

// Unlock primes the audio device in response to a user gesture and plays the
// confirmation blip. Errors leave the state Locked so a later gesture can
// retry.
func (n *Notifier) Unlock() error {
	if n.tone == nil {
		return nil
	}
	if n.audio == Unlocked {
		return nil
	}
	if err := n.tone.Confirm(); err != nil {
		return err
	}
	n.audio = Unlocked
	return nil
}

// OnUpdate reacts to a view-model change. During the initial-load phase it
// produces nothing at all; afterwards the banner always shows and the chime
// plays only when audio is unlocked and quiet hours are off.
func (n *Notifier) OnUpdate(initialLoad, quietNow bool) (Effect, bool) {
	if initialLoad {
		return Effect{}, false
	}
	n.bannerGen++
	n.bannerVisible = true
	return Effect{
		Banner:    true,
		BannerGen: n.bannerGen,
		HideIn:    BannerDuration,
		PlayTone:  n.audio == Unlocked && !quietNow,
	}, true
}

// HideBanner hides the banner when its timer fires. Timers from superseded
// banners report false and change nothing.
func (n *Notifier) HideBanner(gen int) bool {
	if gen != n.bannerGen {
		return false
	}
	n.bannerVisible = false
	return true
}

// PlayTone emits the update chime. Callers log failures; the banner has
// already been shown by then.
func (n *Notifier) PlayTone() error {
	if n.tone == nil {
		return nil
	}
	return n.tone.Notify()
}
