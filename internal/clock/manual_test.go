package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManual_AfterFuncFiresOnce(t *testing.T) {
	m := NewManual(epoch)
	fired := 0
	m.AfterFunc(time.Second, func() { fired++ })

	m.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, fired)
	m.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	m.Advance(time.Hour)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_EveryAndStop(t *testing.T) {
	m := NewManual(epoch)
	var at []time.Duration
	tm := m.Every(time.Second, func() { at = append(at, m.Now().Sub(epoch)) })

	m.Advance(3500 * time.Millisecond)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, at)

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	m.Advance(5 * time.Second)
	assert.Len(t, at, 3)
}

func TestManual_FiresInDeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, epoch.Add(time.Second), m.Now())
}

func TestManual_CallbackMayScheduleAndStop(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	var victim Timer
	m.AfterFunc(time.Second, func() {
		victim.Stop()
		m.AfterFunc(time.Second, func() { fired = true })
	})
	victim = m.AfterFunc(1500*time.Millisecond, func() { t.Fatal("stopped timer fired") })

	m.Advance(3 * time.Second)
	assert.True(t, fired)
}

func TestManual_StopAfterFire(t *testing.T) {
	m := NewManual(epoch)
	tm := m.AfterFunc(time.Millisecond, func() {})
	m.Advance(time.Millisecond)
	assert.False(t, tm.Stop())
}

func TestReal_EveryStops(t *testing.T) {
	ticks := make(chan struct{}, 8)
	tm := Real{}.Every(5*time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	defer tm.Stop()

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("real ticker never fired")
	}
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
}
