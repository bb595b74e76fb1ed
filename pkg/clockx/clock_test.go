package clockx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClock_New_DefaultCapacity(t *testing.T) {
	c := New(0)
	require.NotNil(t, c)
	require.Equal(t, 1, c.Capacity())
	require.Equal(t, 0, c.Size())
}

func TestClock_Unpin_MakesTracked(t *testing.T) {
	c := New(3)

	c.Unpin(1)
	require.Equal(t, 1, c.Size())
	require.True(t, c.IsTracked(1))

	// Unpin again is a no-op.
	c.Unpin(1)
	require.Equal(t, 1, c.Size())
}

func TestClock_Pin_UnknownSlotIgnored(t *testing.T) {
	c := New(2)

	c.Pin(0) // not tracked yet, ignored
	require.Equal(t, 0, c.Size())

	c.Unpin(0)
	c.Pin(0)
	require.Equal(t, 0, c.Size())
	require.False(t, c.IsTracked(0))
}

func TestClock_Victim_EmptyReturnsNone(t *testing.T) {
	c := New(4)
	_, ok := c.Victim()
	require.False(t, ok)
}

func TestClock_Victim_AllReferencedClearsOnFirstSweep(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Unpin(i) // sets referenced[i] = true
	}
	require.Equal(t, 3, c.Size())

	v1, ok := c.Victim()
	require.True(t, ok)
	require.Contains(t, []int{0, 1, 2}, v1)
	require.Equal(t, 2, c.Size())

	v2, ok := c.Victim()
	require.True(t, ok)
	require.NotEqual(t, v1, v2)
	require.Equal(t, 1, c.Size())

	v3, ok := c.Victim()
	require.True(t, ok)
	require.NotEqual(t, v1, v3)
	require.NotEqual(t, v2, v3)
	require.Equal(t, 0, c.Size())

	_, ok = c.Victim()
	require.False(t, ok)
}

func TestClock_BoundsChecks(t *testing.T) {
	c := New(2)

	c.Unpin(-1)
	c.Unpin(2)
	c.Pin(-1)
	c.Pin(2)
	c.Touch(-1)
	c.Touch(5)

	require.Equal(t, 0, c.Size())
}

// Scenario 1 (spec.md §8): CLOCK basic — unpin frames 1..6 in order
// (capacity 7), evict cycles through them in insertion order.
func TestClock_Scenario_Basic(t *testing.T) {
	c := New(7)
	for _, f := range []int{1, 2, 3, 4, 5, 6} {
		c.Unpin(f)
	}
	require.Equal(t, 6, c.Size())

	v, ok := c.Victim()
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 5, c.Size())

	c.Unpin(1)

	v, ok = c.Victim()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

// Scenario 2 (spec.md §8): CLOCK second chance. N=3, unpin 0,1,2. The
// first Victim() sweeps past all three (clearing their reference bits on
// the way) and lands back on 0. A caller-side touch of frame 1 between
// the first and second Victim() calls gives it one more chance, so the
// second victim is 2 and the third (and final) is 1.
func TestClock_Scenario_SecondChance(t *testing.T) {
	c := New(3)
	c.Unpin(0)
	c.Unpin(1)
	c.Unpin(2)

	v1, ok := c.Victim()
	require.True(t, ok)
	require.Equal(t, 0, v1)

	c.Touch(1)

	v2, ok := c.Victim()
	require.True(t, ok)
	require.Equal(t, 2, v2)

	v3, ok := c.Victim()
	require.True(t, ok)
	require.Equal(t, 1, v3)
}
