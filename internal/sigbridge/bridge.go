// Package sigbridge turns OS termination signals into tokens that the event
// loop consumes in its own context.
//
// The producer side is the Go runtime's signal delivery, which performs a
// non-blocking send of a fixed-size value into a buffered channel. Nothing
// else runs at delivery time. The loop reads tokens through Tokens and calls
// Observe, which moves the bridge from ARMED to TERMINATING exactly once.
package sigbridge

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rileyhilliard/zbdtop/internal/errors"
)

// State is the bridge lifecycle state.
type State int32

const (
	// Idle means Arm has not been called yet.
	Idle State = iota
	// Armed means signals are being captured.
	Armed
	// Terminating means a token has been observed by the loop.
	Terminating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Terminating:
		return "terminating"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// DefaultSignals are the signals that request termination.
var DefaultSignals = []os.Signal{syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM}

// Bridge carries termination requests into the loop.
type Bridge struct {
	signals []os.Signal
	tokens  chan os.Signal
	state   atomic.Int32

	mu      sync.Mutex
	stopped bool
}

// New creates a bridge for sigs, or DefaultSignals when none are given.
// Capacity 1 coalesces signals that arrive before the loop reads the first.
func New(sigs ...os.Signal) *Bridge {
	if len(sigs) == 0 {
		sigs = DefaultSignals
	}
	return &Bridge{
		signals: sigs,
		tokens:  make(chan os.Signal, 1),
	}
}

// Arm starts capturing signals. Calling it more than once is a no-op.
func (b *Bridge) Arm() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped || !b.state.CompareAndSwap(int32(Idle), int32(Armed)) {
		return
	}
	signal.Notify(b.tokens, b.signals...)
}

// Inject delivers sig as if the OS had sent it. It never blocks; when a
// token is already pending the new one is coalesced into it. After Stop it
// returns a SIGNAL error.
func (b *Bridge) Inject(sig os.Signal) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return errors.New(errors.ErrSignal,
			fmt.Sprintf("Deliver %v failed", sig),
			"The signal bridge is already stopped.")
	}
	select {
	case b.tokens <- sig:
	default:
	}
	return nil
}

// Tokens returns the receive side consumed by the loop. It is closed by Stop.
func (b *Bridge) Tokens() <-chan os.Signal {
	return b.tokens
}

// Observe records that the loop has seen a token. It reports true only for
// the call that performs the ARMED to TERMINATING transition.
func (b *Bridge) Observe() bool {
	return b.state.CompareAndSwap(int32(Armed), int32(Terminating))
}

// State returns the current state.
func (b *Bridge) State() State {
	return State(b.state.Load())
}

// Stop stops signal capture and closes the token channel. Safe to call
// more than once.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.stopped = true
	signal.Stop(b.tokens)
	close(b.tokens)
}
