package quilt

import "time"

// Default quiet windows for the two persistence tiers.
const (
	DefaultLocalDelay  = 150 * time.Millisecond
	DefaultRemoteDelay = 1500 * time.Millisecond
)

// Debouncer schedules a two-tier trailing-edge save. The local tier commits
// the transform into host-visible state (decoupling raw event rate from
// re-render rate); the remote tier invokes the Store. Both timers restart on
// every Schedule call — pure trailing debounce, no leading edge, no max wait.
//
// The debouncer owns no goroutines or timer handles: it keeps two deadlines
// and fires callbacks from Tick, which the frame loop drives. That keeps all
// engine state on a single goroutine.
type Debouncer struct {
	localDelay  time.Duration
	remoteDelay time.Duration

	onLocal  func()
	onRemote func()

	localAt       time.Time
	remoteAt      time.Time
	localPending  bool
	remotePending bool
}

// NewDebouncer creates a Debouncer with the given quiet windows. Either
// callback may be nil. Non-positive delays fall back to the defaults.
func NewDebouncer(localDelay, remoteDelay time.Duration, onLocal, onRemote func()) *Debouncer {
	if localDelay <= 0 {
		localDelay = DefaultLocalDelay
	}
	if remoteDelay <= 0 {
		remoteDelay = DefaultRemoteDelay
	}
	return &Debouncer{
		localDelay:  localDelay,
		remoteDelay: remoteDelay,
		onLocal:     onLocal,
		onRemote:    onRemote,
	}
}

// Schedule records a change at time now, resetting both trailing timers.
func (d *Debouncer) Schedule(now time.Time) {
	d.localAt = now.Add(d.localDelay)
	d.remoteAt = now.Add(d.remoteDelay)
	d.localPending = true
	d.remotePending = true
}

// Tick fires any tier whose quiet window has elapsed as of now.
func (d *Debouncer) Tick(now time.Time) {
	if d.localPending && !now.Before(d.localAt) {
		d.localPending = false
		d.fire(d.onLocal)
	}
	if d.remotePending && !now.Before(d.remoteAt) {
		d.remotePending = false
		d.fire(d.onRemote)
	}
}

// Flush fires both pending tiers immediately, bypassing the timers. Called
// on gesture end, animation completion, and teardown so no pending change
// is lost.
func (d *Debouncer) Flush() {
	if d.localPending {
		d.localPending = false
		d.fire(d.onLocal)
	}
	if d.remotePending {
		d.remotePending = false
		d.fire(d.onRemote)
	}
}

// Cancel drops both pending tiers without firing them.
func (d *Debouncer) Cancel() {
	d.localPending = false
	d.remotePending = false
}

// Pending reports whether either tier has an unfired save.
func (d *Debouncer) Pending() bool {
	return d.localPending || d.remotePending
}

func (d *Debouncer) fire(fn func()) {
	if fn != nil {
		fn()
	}
}
