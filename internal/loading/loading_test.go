package loading

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoneFiresOnce(t *testing.T) {
	s := Start(context.Background(), Options{Delay: 20 * time.Millisecond, Interval: time.Millisecond, MaxStep: 1}, nil, nil)
	defer s.Stop()

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load timer did not fire")
	}
	assert.True(t, s.Loaded())
	assert.Equal(t, float64(100), s.Percent())

	// a closed channel stays readable; a second close would have panicked in run
	<-s.Done()
	s.Stop()
}

func TestProgressStopsAtHundred(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := Start(context.Background(), Options{Delay: time.Hour, Interval: time.Millisecond, MaxStep: 50}, rng, nil)
	defer s.Stop()

	require.Eventually(t, func() bool { return s.Percent() >= 100 }, 2*time.Second, time.Millisecond)
	ticks := s.Ticks()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, ticks, s.Ticks(), "ticker keeps running after reaching 100")
	assert.Equal(t, float64(100), s.Percent())
	assert.False(t, s.Loaded())
}

func TestProgressIsMonotonic(t *testing.T) {
	s := Start(context.Background(), Options{Delay: time.Hour, Interval: time.Millisecond, MaxStep: 5}, nil, nil)
	defer s.Stop()

	last := 0.0
	deadline := time.Now().Add(50 * time.Millisecond)
	for time.Now().Before(deadline) {
		p := s.Percent()
		require.GreaterOrEqual(t, p, last)
		require.LessOrEqual(t, p, 100.0)
		last = p
		time.Sleep(time.Millisecond)
	}
}

func TestStopBeforeLoad(t *testing.T) {
	s := Start(context.Background(), Options{Delay: 50 * time.Millisecond, Interval: time.Millisecond, MaxStep: 1}, nil, nil)
	s.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.False(t, s.Loaded())
	s.Stop()
}

func TestContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := Start(ctx, Options{Delay: 50 * time.Millisecond, Interval: time.Millisecond, MaxStep: 1}, nil, nil)
	cancel()
	s.Stop()
	assert.False(t, s.Loaded())
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 3*time.Second, o.Delay)
	assert.Equal(t, 200*time.Millisecond, o.Interval)
	assert.Equal(t, 10.0, o.MaxStep)
}
