// Package arcx implements the Adaptive Replacement Cache (ARC) page
// replacement policy: two resident lists (T1 "recent", T2 "frequent") and
// two ghost histories (B1, B2) of recently evicted page identities, with
// an adaptive target size p that shifts the balance between recency and
// frequency based on which ghost list is taking hits.
//
// The shape follows N. Megiddo & D. Modha's original ARC paper, the same
// list+map-with-back-reference structure used by
// pjimming/HermesDB's lruk.LRUKReplacer (historyList/historyMap paired
// with a cacheList/cacheMap), and the T1/T2/B1/B2 vocabulary used by
// newbthenewbd-btrfs-rec's containers.arCache.
package arcx

import (
	"container/list"
	"fmt"
	"sync"
)

// FrameID names a slot in the caller's buffer pool. PageID names a
// logical page. Both are non-negative integers; ARC never allocates
// either, it only tracks identities the caller hands it.
type FrameID = int
type PageID = int

type region int

const (
	regionT1 region = iota
	regionT2
	regionB1
	regionB2
)

// frameStatus is the single record type shared by the alive and ghost
// indexes (spec's FrameStatus). A move from T1 to B1 on eviction, or a
// ghost hit promoting B1/B2 into T2, is a transfer of the same kind of
// record between the alive and ghost maps; elem is the back-reference
// into whichever list currently holds it, kept in sync with the list on
// every mutation so removal given an index lookup is O(1).
type frameStatus struct {
	pageID    PageID
	frameID   FrameID
	evictable bool
	region    region
	elem      *list.Element
}

// ARC is a self-contained, concurrency-safe ARC replacer for a fixed
// capacity N. Every exported method holds mu for its full duration.
type ARC struct {
	mu sync.Mutex

	capacity int
	p        int // mru_target_size, in [0, capacity]

	t1, t2 *list.List // resident: *frameStatus, MRU at Front, LRU at Back
	b1, b2 *list.List // ghost: *frameStatus, MRU at Front, LRU at Back

	alive map[FrameID]*frameStatus // entries in T1 ∪ T2
	ghost map[PageID]*frameStatus  // entries in B1 ∪ B2

	size int // count of evictable entries in T1 ∪ T2
}

// New constructs an ARC replacer with capacity N and empty lists.
func New(capacity int) *ARC {
	if capacity <= 0 {
		capacity = 1
	}
	return &ARC{
		capacity: capacity,
		t1:       list.New(),
		t2:       list.New(),
		b1:       list.New(),
		b2:       list.New(),
		alive:    make(map[FrameID]*frameStatus),
		ghost:    make(map[PageID]*frameStatus),
	}
}

// Capacity returns N.
func (a *ARC) Capacity() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capacity
}

// TargetSize returns the current adaptive MRU target size p.
func (a *ARC) TargetSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.p
}

// RecordAccess marks frameID (carrying pageID) as most recently used.
//
// Exactly one of four cases applies: a resident hit in T1 or T2 promotes
// or re-freshens the entry in T2; a ghost hit in B1 or B2 adapts p and
// admits the frame into T2; a miss admits the frame into T1, first
// trimming ghost history to keep the directory within its capacity
// invariants.
//
// If frameID is already resident but pageID differs from what this
// replacer last saw for it, frame identity dominates: this is still
// treated as a resident hit (Case 1) and the new pageID is not recorded.
func (a *ARC) RecordAccess(frameID FrameID, pageID PageID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if fs, ok := a.alive[frameID]; ok {
		a.recordResidentHit(fs)
		return
	}

	if fs, ok := a.ghost[pageID]; ok {
		a.recordGhostHit(frameID, fs)
		return
	}

	a.recordMiss(frameID, pageID)
}

// Case 1: resident hit.
func (a *ARC) recordResidentHit(fs *frameStatus) {
	switch fs.region {
	case regionT1:
		a.t1.Remove(fs.elem)
		fs.region = regionT2
		fs.elem = a.t2.PushFront(fs)
	case regionT2:
		a.t2.MoveToFront(fs.elem)
	}
}

// Cases 2 & 3: ghost hit in B1 or B2. Adapts p, erases the ghost entry,
// and admits the new frame at the MRU end of T2.
func (a *ARC) recordGhostHit(frameID FrameID, ghostFS *frameStatus) {
	switch ghostFS.region {
	case regionB1:
		b1Len, b2Len := a.b1.Len(), a.b2.Len()
		delta := 1
		if b1Len < b2Len {
			delta = b2Len / b1Len
		}
		a.p = min(a.p+delta, a.capacity)
		a.b1.Remove(ghostFS.elem)
	case regionB2:
		b1Len, b2Len := a.b1.Len(), a.b2.Len()
		delta := 1
		if b2Len < b1Len {
			delta = b1Len / b2Len
		}
		a.p = max(a.p-delta, 0)
		a.b2.Remove(ghostFS.elem)
	}
	delete(a.ghost, ghostFS.pageID)

	fs := &frameStatus{
		pageID:    ghostFS.pageID,
		frameID:   frameID,
		evictable: true,
		region:    regionT2,
	}
	fs.elem = a.t2.PushFront(fs)
	a.alive[frameID] = fs
	a.size++
}

// Case 4: miss. Trims ghost history per §4a/§4b before admitting frameID
// into T1.
func (a *ARC) recordMiss(frameID FrameID, pageID PageID) {
	t1Len, b1Len := a.t1.Len(), a.b1.Len()

	switch {
	case t1Len+b1Len == a.capacity:
		if t1Len < a.capacity {
			a.dropGhostLRU(a.b1)
		} else {
			// T1 alone saturates the pool; there is no B1 room to
			// record the drop into, so the LRU of T1 is dropped
			// outright rather than demoted to a ghost.
			lru := a.t1.Back()
			fs := lru.Value.(*frameStatus)
			a.t1.Remove(lru)
			delete(a.alive, fs.frameID)
			if fs.evictable {
				a.size--
			}
		}
	case t1Len+a.t2.Len()+b1Len+a.b2.Len() == 2*a.capacity:
		a.dropGhostLRU(a.b2)
	}

	fs := &frameStatus{
		pageID:    pageID,
		frameID:   frameID,
		evictable: true,
		region:    regionT1,
	}
	fs.elem = a.t1.PushFront(fs)
	a.alive[frameID] = fs
	a.size++
}

func (a *ARC) dropGhostLRU(ghostList *list.List) {
	lru := ghostList.Back()
	if lru == nil {
		return
	}
	fs := lru.Value.(*frameStatus)
	ghostList.Remove(lru)
	delete(a.ghost, fs.pageID)
}

// SetEvictable admits (true) or withdraws (false) frameID from the
// candidate pool. Panics if frameID is not currently resident (T1 ∪ T2).
func (a *ARC) SetEvictable(frameID FrameID, evictable bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fs, ok := a.alive[frameID]
	if !ok {
		panic(fmt.Errorf("arcx: SetEvictable: frame %d is not resident", frameID))
	}
	if fs.evictable == evictable {
		return
	}
	fs.evictable = evictable
	if evictable {
		a.size++
	} else {
		a.size--
	}
}

// Evict returns a victim frame whose page may be reused, or false if no
// evictable candidate exists. The primary list is T1 if |T1| >= p,
// otherwise T2; its LRU end is scanned for the first evictable entry,
// skipping (and thereby preserving the relative order of) any
// non-evictable entries it passes. If the primary list yields nothing,
// the other list is scanned the same way.
func (a *ARC) Evict() (FrameID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.size == 0 {
		return 0, false
	}

	primary, primaryGhost, secondary, secondaryGhost := a.t2, a.b2, a.t1, a.b1
	if a.t1.Len() >= a.p {
		primary, primaryGhost, secondary, secondaryGhost = a.t1, a.b1, a.t2, a.b2
	}

	if f, ok := a.evictFrom(primary, primaryGhost); ok {
		return f, true
	}
	return a.evictFrom(secondary, secondaryGhost)
}

func (a *ARC) evictFrom(residentList, ghostList *list.List) (FrameID, bool) {
	for e := residentList.Back(); e != nil; e = e.Prev() {
		fs := e.Value.(*frameStatus)
		if !fs.evictable {
			continue
		}

		residentList.Remove(e)
		delete(a.alive, fs.frameID)

		fs.region = regionB1
		if ghostList == a.b2 {
			fs.region = regionB2
		}
		fs.evictable = false
		fs.elem = ghostList.PushFront(fs)
		a.ghost[fs.pageID] = fs

		a.size--
		return fs.frameID, true
	}
	return 0, false
}

// Remove deletes frameID entirely; this is not a policy eviction, so no
// ghost entry is recorded. No-op if frameID is unknown. Panics if
// frameID is currently non-evictable.
func (a *ARC) Remove(frameID FrameID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fs, ok := a.alive[frameID]
	if !ok {
		return
	}
	if !fs.evictable {
		panic(fmt.Errorf("arcx: Remove: frame %d is not evictable", frameID))
	}

	switch fs.region {
	case regionT1:
		a.t1.Remove(fs.elem)
	case regionT2:
		a.t2.Remove(fs.elem)
	}
	delete(a.alive, frameID)
	a.size--
}

// Size returns the count of evictable entries in T1 ∪ T2.
func (a *ARC) Size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.size
}
