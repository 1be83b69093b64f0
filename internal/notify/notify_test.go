package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyAddsToast(t *testing.T) {
	c := NewCenter()
	defer c.Close()

	id := c.Notify("Dashboard updated", Success)
	require.NotEmpty(t, id)

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
	assert.Equal(t, Success, active[0].Severity)
	assert.Equal(t, DefaultTTL, active[0].Expires.Sub(active[0].Created))
}

func TestNotifyDefaultSeverity(t *testing.T) {
	c := NewCenter()
	defer c.Close()
	c.Notify("hello", "")
	assert.Equal(t, Info, c.Active()[0].Severity)
}

func TestNotifyAutoDismiss(t *testing.T) {
	var changes atomic.Int32
	c := NewCenter(WithTTL(20*time.Millisecond), WithOnChange(func() { changes.Add(1) }))
	defer c.Close()

	c.Notify("first", Info)
	require.Equal(t, 1, c.Len())

	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	// the hook runs after the lock is released
	require.Eventually(t, func() bool { return changes.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestNotifyStacksIndependently(t *testing.T) {
	c := NewCenter(WithTTL(80 * time.Millisecond))
	defer c.Close()

	first := c.Notify("first", Info)
	time.Sleep(40 * time.Millisecond)
	second := c.Notify("second", Warning)

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first, active[0].ID)
	assert.Equal(t, second, active[1].ID)

	// The first toast expires while the second is still showing.
	require.Eventually(t, func() bool {
		a := c.Active()
		return len(a) == 1 && a[0].ID == second
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismiss(t *testing.T) {
	c := NewCenter()
	defer c.Close()

	id := c.Notify("bye", Danger)
	c.Dismiss(id)
	assert.Equal(t, 0, c.Len())

	// Unknown ids are a no-op.
	c.Dismiss("missing")
}

func TestCloseStopsEverything(t *testing.T) {
	c := NewCenter()
	c.Notify("a", Info)
	c.Notify("b", Info)
	c.Close()
	assert.Equal(t, 0, c.Len())

	c.Notify("after close", Info)
	assert.Equal(t, 0, c.Len())
}
