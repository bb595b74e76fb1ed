package replacer

import (
	"fmt"

	"github.com/novadb/pagereplacer/pkg/clockx"
)

// clockAdapter presents pkg/clockx.Clock's older Pin/Unpin/Victim
// vocabulary through the uniform Replacer contract.
type clockAdapter struct {
	clock *clockx.Clock
}

func newClockAdapter(capacity int) *clockAdapter {
	return &clockAdapter{clock: clockx.New(capacity)}
}

// RecordAccess ignores pageID (CLOCK has no notion of page identity). A
// frame not yet tracked is admitted via Unpin, reproducing the fold-in
// described by spec.md §4.2; a frame already tracked is given a second
// chance via Touch, since Unpin itself is a no-op once a frame is already
// tracked.
func (a *clockAdapter) RecordAccess(frameID FrameID, _ PageID) {
	if a.clock.IsTracked(frameID) {
		a.clock.Touch(frameID)
		return
	}
	a.clock.Unpin(frameID)
}

func (a *clockAdapter) SetEvictable(frameID FrameID, evictable bool) {
	if evictable {
		a.clock.Unpin(frameID)
	} else {
		a.clock.Pin(frameID)
	}
}

func (a *clockAdapter) Evict() (FrameID, bool) {
	return a.clock.Victim()
}

// Remove drops frameID from CLOCK's candidate pool entirely. Out-of-range
// ids are silently ignored (truly unknown to this replacer's frame
// universe); an in-range frame that is currently non-evictable (pinned,
// or never admitted) is fatal, matching the general contract's
// fatal-if-non-evictable rule.
func (a *clockAdapter) Remove(frameID FrameID) {
	if frameID < 0 || frameID >= a.clock.Capacity() {
		return
	}
	if !a.clock.IsTracked(frameID) {
		panic(fmt.Errorf("replacer: clock Remove: frame %d is not evictable", frameID))
	}
	a.clock.Pin(frameID)
}

func (a *clockAdapter) Size() int {
	return a.clock.Size()
}
