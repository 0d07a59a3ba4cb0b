// Package clock provides the logical slot that scopes voter weight validity.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock returns the current logical slot.
type Clock interface {
	Slot() uint64
}

// SlotClock derives slots from wall time: slot N starts at genesis + N*duration.
type SlotClock struct {
	genesis  time.Time
	duration time.Duration
	now      func() time.Time
}

// NewSlotClock creates a clock ticking every duration since genesis.
// Panics if duration is not positive.
func NewSlotClock(genesis time.Time, duration time.Duration) *SlotClock {
	if duration <= 0 {
		panic("clock: slot duration must be positive")
	}

	return &SlotClock{
		genesis:  genesis,
		duration: duration,
		now:      time.Now,
	}
}

// Slot returns the current slot. Times before genesis map to slot 0.
func (c *SlotClock) Slot() uint64 {
	elapsed := c.now().Sub(c.genesis)
	if elapsed < 0 {
		return 0
	}

	return uint64(elapsed / c.duration)
}

// Manual is a clock advanced by hand.
type Manual struct {
	slot atomic.Uint64
}

// NewManual creates a manual clock at the given slot.
func NewManual(slot uint64) *Manual {
	m := &Manual{}
	m.slot.Store(slot)
	return m
}

// Slot returns the current slot.
func (m *Manual) Slot() uint64 {
	return m.slot.Load()
}

// Set moves the clock to slot.
func (m *Manual) Set(slot uint64) {
	m.slot.Store(slot)
}

// Advance moves the clock forward by n slots and returns the new slot.
func (m *Manual) Advance(n uint64) uint64 {
	return m.slot.Add(n)
}
