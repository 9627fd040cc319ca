package cluster

import (
	"sync"
	"time"

	"github.com/Sunshine-Research/Sentinel/util"
)

// Mode is this process's role in cluster flow control (spec.md §6,
// "a state machine {OFF, CLIENT, SERVER}").
type Mode int32

const (
	ModeOff Mode = iota
	ModeClient
	ModeServer
)

// transitionDebounceMs is the minimum time between mode transitions
// (spec.md §6, "a minimum 5-second debounce between transitions"),
// guarding against a flapping config source thrashing the role.
const transitionDebounceMs = 5000

var (
	stateMu          sync.Mutex
	currentMode      = ModeOff
	lastTransitionMs uint64
)

// CurrentMode reports this process's cluster role.
func CurrentMode() Mode {
	stateMu.Lock()
	defer stateMu.Unlock()
	return currentMode
}

// TransitionTo attempts to move to mode, refusing if the last
// transition happened less than transitionDebounceMs ago. A transition
// to the mode already in effect always succeeds without touching the
// debounce clock.
func TransitionTo(mode Mode) bool {
	stateMu.Lock()
	defer stateMu.Unlock()

	if mode == currentMode {
		return true
	}
	now := util.CurrentTimeMillis()
	if now-lastTransitionMs < transitionDebounceMs {
		return false
	}
	currentMode = mode
	lastTransitionMs = now
	return true
}

// WaitForDebounce blocks until a transition would be allowed; it exists
// for callers (tests, admin tooling) that want to force a transition
// rather than poll TransitionTo.
func WaitForDebounce() {
	stateMu.Lock()
	elapsed := util.CurrentTimeMillis() - lastTransitionMs
	stateMu.Unlock()
	if elapsed < transitionDebounceMs {
		time.Sleep(time.Duration(transitionDebounceMs-elapsed) * time.Millisecond)
	}
}
