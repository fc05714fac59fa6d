package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/mjdusa/etcher/internal/flashd"
)

// FlashType is the phase of a flash session as reported by the daemon.
type FlashType string

const (
	FlashStarting      FlashType = "starting"
	FlashDecompressing FlashType = "decompressing"
	FlashFlashing      FlashType = "flashing"
	FlashVerifying     FlashType = "verifying"
	FlashFinished      FlashType = "finished"
)

// FlashState is the live progress of the current session. Optional values are
// nil when the daemon has not reported them.
type FlashState struct {
	Type       FlashType
	Percentage *float64
	Position   *uint64
	Failed     int
	Speed      *float64 // bytes per second
	ETA        *time.Duration
}

// Result summarises a finished session.
type Result struct {
	Successful int
	Failed     int
	Cancelled  bool
	Err        string
}

// Succeeded reports whether the session ended without cancellation or a
// daemon error and wrote at least one target.
func (r Result) Succeeded() bool {
	return !r.Cancelled && r.Err == "" && r.Successful > 0
}

// Flash mirrors the daemon's flash session for the UI.
type Flash struct {
	hub *Hub

	mu                  sync.RWMutex
	session             string
	flashing            bool
	state               FlashState
	result              *Result
	dismissed           string
	lastError           error
	lastUpdated         time.Time
	consecutiveFailures int
}

// NewFlash returns an idle flash store that notifies hub on change.
func NewFlash(hub *Hub) *Flash {
	return &Flash{hub: hub}
}

// Apply records a status reported by the daemon. Terminal statuses of a
// session dismissed by ResetState are ignored so that a later poll cannot
// bring back residual progress.
func (f *Flash) Apply(st flashd.Status) {
	f.mu.Lock()
	f.lastError = nil
	f.lastUpdated = time.Now()
	f.consecutiveFailures = 0

	if !st.Flashing && st.Session != "" && st.Session == f.dismissed {
		f.mu.Unlock()
		return
	}

	f.session = st.Session
	f.flashing = st.Flashing
	f.state = convertProgress(st.Progress)
	if st.Result != nil {
		f.result = &Result{
			Successful: st.Result.Successful,
			Failed:     st.Result.Failed,
			Cancelled:  st.Result.Cancelled,
			Err:        st.Result.Error,
		}
	} else if st.Flashing {
		f.result = nil
	}
	f.mu.Unlock()
	f.hub.Notify()
}

// RecordError keeps the previous session data but remembers the failure so
// the header can report an unreachable daemon.
func (f *Flash) RecordError(err error) {
	f.mu.Lock()
	f.lastError = err
	f.lastUpdated = time.Now()
	f.consecutiveFailures++
	f.mu.Unlock()
	f.hub.Notify()
}

// IsFlashing reports whether a session is in progress.
func (f *Flash) IsFlashing() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.flashing
}

// FlashState returns a copy of the live progress.
func (f *Flash) FlashState() FlashState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.clone()
}

// LastResult returns the result of the most recent finished session.
func (f *Flash) LastResult() (Result, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.result == nil {
		return Result{}, false
	}
	return *f.result, true
}

// Finished returns the session id and result of a session that has ended and
// has not been reset. Both come from one read so they always belong together.
func (f *Flash) Finished() (session string, res Result, ok bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.flashing || f.result == nil {
		return "", Result{}, false
	}
	return f.session, *f.result, true
}

// Session returns the daemon's identifier for the current session.
func (f *Flash) Session() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.session
}

// ResetState clears progress and result of a finished session. It does
// nothing while flashing.
func (f *Flash) ResetState() {
	f.mu.Lock()
	if f.flashing {
		f.mu.Unlock()
		return
	}
	f.dismissed = f.session
	f.state = FlashState{}
	f.result = nil
	f.mu.Unlock()
	f.hub.Notify()
}

// DaemonHealth reports the most recent transport error and whether the daemon
// has been unreachable for multiple polls.
func (f *Flash) DaemonHealth() (lastErr error, offline bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.lastError != nil {
		lastErr = fmt.Errorf("%w", f.lastError)
	}
	return lastErr, f.consecutiveFailures >= 2
}

func (s FlashState) clone() FlashState {
	dup := s
	if s.Percentage != nil {
		v := *s.Percentage
		dup.Percentage = &v
	}
	if s.Position != nil {
		v := *s.Position
		dup.Position = &v
	}
	if s.Speed != nil {
		v := *s.Speed
		dup.Speed = &v
	}
	if s.ETA != nil {
		v := *s.ETA
		dup.ETA = &v
	}
	return dup
}

func convertProgress(p flashd.Progress) FlashState {
	out := FlashState{
		Type:   FlashType(p.Type),
		Failed: p.Failed,
	}
	if p.Percentage != nil {
		pct := min(max(*p.Percentage, 0), 100)
		out.Percentage = &pct
	}
	if p.Position != nil {
		pos := *p.Position
		out.Position = &pos
	}
	if p.Speed != nil {
		speed := *p.Speed
		out.Speed = &speed
	}
	if eta, ok := p.ETADuration(); ok {
		out.ETA = &eta
	}
	return out
}
