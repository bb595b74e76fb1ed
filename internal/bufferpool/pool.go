// Package bufferpool is a minimal, demonstration buffer pool manager: the
// kind of caller spec.md §1 treats as an external collaborator. It exists
// so internal/replacer's contract has a realistic, exercised caller,
// following the call pattern in spec.md §6.
package bufferpool

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/multierr"

	"github.com/novadb/pagereplacer/internal/pin"
	"github.com/novadb/pagereplacer/internal/replacer"
)

var (
	logDebugPrefix  = "bufferpool: "
	DefaultCapacity = 128

	// ErrNoFreeFrame is returned when no unpinned frame is available for replacement.
	ErrNoFreeFrame = errors.New("bufferpool: no free frame available (all pinned)")
)

// frame holds one page's bytes and its bookkeeping inside the pool.
type frame struct {
	pageID PageID
	data   []byte
	dirty  bool
	pins   *pin.Count
}

// Pool is a fixed-size buffer pool bound to one PageSource, delegating
// all replacement decisions to a pluggable replacer.Replacer.
type Pool struct {
	mu sync.Mutex

	source   PageSource
	replacer replacer.Replacer

	frames    []*frame       // fixed-size, len == capacity, nil == free slot
	pageTable map[PageID]FrameID
	capacity  int
}

// NewPool creates a buffer pool with the given policy and capacity. If
// capacity <= 0, DefaultCapacity is used.
func NewPool(source PageSource, policy replacer.Policy, capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		source:    source,
		replacer:  replacer.New(policy, capacity),
		frames:    make([]*frame, capacity),
		pageTable: make(map[PageID]FrameID),
		capacity:  capacity,
	}
}

// GetPage returns a page's bytes, pinning it. A resident page bumps its
// pin count, records the access and is withdrawn from eviction; a miss loads through PageSource into
// a free frame or, failing that, the replacer's chosen victim.
func (p *Pool) GetPage(pageID PageID) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	slog.Debug(logDebugPrefix+"GetPage called", "pageID", pageID)

	if fid, ok := p.pageTable[pageID]; ok {
		f := p.frames[fid]
		if f == nil {
			slog.Error(logDebugPrefix+"pageTable points to nil frame", "pageID", pageID, "frameID", fid)
			delete(p.pageTable, pageID)
		} else {
			f.pins.Inc()
			p.replacer.RecordAccess(fid, pageID)
			p.replacer.SetEvictable(fid, false)
			return f.data, nil
		}
	}

	freeIdx := -1
	for i, f := range p.frames {
		if f == nil {
			freeIdx = i
			break
		}
	}

	if freeIdx == -1 {
		victim, ok := p.replacer.Evict()
		if !ok {
			slog.Debug(logDebugPrefix + "no evictable frame, pool exhausted")
			return nil, ErrNoFreeFrame
		}
		if err := p.flushFrameLocked(victim); err != nil {
			return nil, err
		}
		delete(p.pageTable, p.frames[victim].pageID)
		freeIdx = victim
	}

	data, err := p.source.Load(pageID)
	if err != nil {
		return nil, err
	}

	p.frames[freeIdx] = &frame{pageID: pageID, data: data, pins: pin.New()}
	p.pageTable[pageID] = freeIdx
	p.replacer.RecordAccess(freeIdx, pageID)
	p.replacer.SetEvictable(freeIdx, false)

	slog.Debug(logDebugPrefix+"loaded page into frame", "pageID", pageID, "frameID", freeIdx)
	return data, nil
}

// Unpin releases one pinner of pageID, marking it dirty if requested. The
// frame becomes evictable again once its pin count reaches zero. A
// no-op, logged at debug, if pageID is not currently resident.
func (p *Pool) Unpin(pageID PageID, dirty bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[pageID]
	if !ok {
		slog.Debug(logDebugPrefix+"Unpin ignored, page not in pool", "pageID", pageID)
		return
	}
	f := p.frames[fid]
	if f == nil {
		slog.Error(logDebugPrefix+"Unpin found nil frame", "pageID", pageID, "frameID", fid)
		return
	}

	if dirty {
		f.dirty = true
	}
	if f.pins.Dec() {
		p.replacer.SetEvictable(fid, true)
	}
}

// DropPage removes pageID from the pool entirely, per spec.md §6's
// "unpin_page followed by free" pattern. No-op if pageID is not
// resident. Panics (propagated from the replacer) if the frame is still
// pinned — a caller bug, not a recoverable condition.
func (p *Pool) DropPage(pageID PageID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[pageID]
	if !ok {
		return
	}
	p.replacer.Remove(fid)
	delete(p.pageTable, pageID)
	p.frames[fid] = nil
}

// FlushAll saves every dirty frame through PageSource, combining
// per-frame failures with multierr rather than stopping at the first.
func (p *Pool) FlushAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs error
	for fid, f := range p.frames {
		if f == nil || !f.dirty {
			continue
		}
		if err := p.source.Save(f.pageID, f.data); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("bufferpool: flush frame %d: %w", fid, err))
			continue
		}
		f.dirty = false
	}
	return errs
}

// Size returns the number of currently evictable frames.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.replacer.Size()
}

// flushFrameLocked saves fid's page if dirty. Caller must hold p.mu.
func (p *Pool) flushFrameLocked(fid FrameID) error {
	f := p.frames[fid]
	if f == nil || !f.dirty {
		return nil
	}
	if err := p.source.Save(f.pageID, f.data); err != nil {
		return err
	}
	f.dirty = false
	return nil
}
