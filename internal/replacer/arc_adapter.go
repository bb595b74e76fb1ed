package replacer

import "github.com/novadb/pagereplacer/pkg/arcx"

// arcAdapter wraps pkg/arcx.ARC. The method set already matches Replacer
// exactly; this thin wrapper exists only so the factory returns the same
// shape of value for both policies.
type arcAdapter struct {
	arc *arcx.ARC
}

func newARCAdapter(capacity int) *arcAdapter {
	return &arcAdapter{arc: arcx.New(capacity)}
}

func (a *arcAdapter) RecordAccess(frameID FrameID, pageID PageID) {
	a.arc.RecordAccess(frameID, pageID)
}

func (a *arcAdapter) SetEvictable(frameID FrameID, evictable bool) {
	a.arc.SetEvictable(frameID, evictable)
}

func (a *arcAdapter) Evict() (FrameID, bool) {
	return a.arc.Evict()
}

func (a *arcAdapter) Remove(frameID FrameID) {
	a.arc.Remove(frameID)
}

func (a *arcAdapter) Size() int {
	return a.arc.Size()
}
