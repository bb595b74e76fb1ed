package replacer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allPolicies() []Policy {
	return []Policy{PolicyClock, PolicyARC}
}

func TestParsePolicy(t *testing.T) {
	for _, s := range []string{"clock", "Clock", "CLOCK"} {
		p, err := ParsePolicy(s)
		require.NoError(t, err)
		require.Equal(t, PolicyClock, p)
	}
	for _, s := range []string{"arc", "Arc", "ARC"} {
		p, err := ParsePolicy(s)
		require.NoError(t, err)
		require.Equal(t, PolicyARC, p)
	}

	_, err := ParsePolicy("lru-k")
	require.Error(t, err)
}

// I3: Size() always matches the running evictable count, for both
// policies, across a simple access/pin/evict sequence.
func TestReplacer_SizeAccounting(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			r := New(policy, 4)
			r.RecordAccess(0, 100)
			r.RecordAccess(1, 101)
			require.Equal(t, 2, r.Size())

			r.SetEvictable(0, false)
			require.Equal(t, 1, r.Size())

			r.SetEvictable(0, true)
			require.Equal(t, 2, r.Size())
		})
	}
}

// L1: two consecutive SetEvictable(f, v) calls with the same v leave the
// same state as a single call, for both policies.
func TestReplacer_SetEvictable_Idempotent(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			r := New(policy, 4)
			r.RecordAccess(0, 100)
			require.Equal(t, 1, r.Size())

			r.SetEvictable(0, false)
			r.SetEvictable(0, false)
			require.Equal(t, 0, r.Size())

			r.SetEvictable(0, true)
			r.SetEvictable(0, true)
			require.Equal(t, 1, r.Size())
		})
	}
}

// L4: evict() never returns a frame currently withdrawn via
// SetEvictable(f, false).
func TestReplacer_Evict_ExcludesPinned(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			r := New(policy, 2)
			r.RecordAccess(0, 100)
			r.RecordAccess(1, 101)
			r.SetEvictable(0, false)

			f, ok := r.Evict()
			require.True(t, ok)
			require.Equal(t, 1, f)

			_, ok = r.Evict()
			require.False(t, ok)
		})
	}
}

// Boundary: evict() on an empty replacer returns none, for both policies.
func TestReplacer_Evict_EmptyReturnsNone(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			r := New(policy, 4)
			_, ok := r.Evict()
			require.False(t, ok)
		})
	}
}

// Caller-contract violation: Remove on a non-evictable frame is fatal for
// both policies.
func TestReplacer_Remove_NonEvictablePanics(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			r := New(policy, 4)
			r.RecordAccess(0, 100)
			r.SetEvictable(0, false)

			require.Panics(t, func() { r.Remove(0) })
		})
	}
}

// Remove on an unknown frame is a no-op for both policies.
func TestReplacer_Remove_UnknownIsNoop(t *testing.T) {
	for _, policy := range allPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			r := New(policy, 4)
			require.NotPanics(t, func() { r.Remove(99) })
		})
	}
}
