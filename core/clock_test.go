package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVirtualClockJumpsToNextDeliverable(t *testing.T) {
	ch := NewChannel(0, 0, 30, rand.New(rand.NewSource(1)))
	ch.Send(0, []byte("a"))

	var clock VirtualClock
	next := clock.Advance(0, 1000, []*Channel{ch})
	assert.Equal(t, int64(30), next)
}

func TestVirtualClockFallsBackToDeadlinePlusOneWhenIdle(t *testing.T) {
	ch := NewChannel(0, 0, 30, rand.New(rand.NewSource(1)))

	var clock VirtualClock
	next := clock.Advance(0, 100, []*Channel{ch})
	assert.Equal(t, int64(101), next)
}

func TestVirtualClockNeverExceedsDeadlinePlusOne(t *testing.T) {
	ch := NewChannel(0, 0, 5000, rand.New(rand.NewSource(1)))
	ch.Send(0, []byte("a"))

	var clock VirtualClock
	next := clock.Advance(0, 100, []*Channel{ch})
	assert.Equal(t, int64(101), next)
}
