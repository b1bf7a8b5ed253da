package lcdtest

import (
	"sync"
	"time"
)

// Delay is a conn.Delayer that records the requested delays instead of
// waiting.
type Delay struct {
	mu     sync.Mutex
	millis []uint16
	micros time.Duration
}

func (d *Delay) DelayMs(ms uint16) {
	d.mu.Lock()
	d.millis = append(d.millis, ms)
	d.mu.Unlock()
}

func (d *Delay) DelayUs(us uint16) {
	d.mu.Lock()
	d.micros += time.Duration(us) * time.Microsecond
	d.mu.Unlock()
}

// Millis returns the millisecond delays in the order they were requested.
func (d *Delay) Millis() []uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]uint16(nil), d.millis...)
}

// Total is the sum of all requested delays.
func (d *Delay) Total() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := d.micros
	for _, ms := range d.millis {
		total += time.Duration(ms) * time.Millisecond
	}
	return total
}

// Reset forgets the recorded delays.
func (d *Delay) Reset() {
	d.mu.Lock()
	d.millis = d.millis[:0]
	d.micros = 0
	d.mu.Unlock()
}
