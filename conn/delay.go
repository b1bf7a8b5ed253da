package conn

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Delayer provides blocking delays. Implementations must wait at least the
// requested duration.
type Delayer interface {
	// DelayMs blocks for ms milliseconds.
	DelayMs(ms uint16)

	// DelayUs blocks for us microseconds.
	DelayUs(us uint16)
}

// SpinDelay is the default Delayer.
//
// Microsecond delays busy-wait, the scheduler can not reliably sleep for less
// than tens of microseconds. Millisecond delays sleep.
type SpinDelay struct{}

func (SpinDelay) DelayMs(ms uint16) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (SpinDelay) DelayUs(us uint16) {
	cpu.Nanospin(time.Duration(us) * time.Microsecond)
}
