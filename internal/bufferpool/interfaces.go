package bufferpool

import "github.com/novadb/pagereplacer/internal/replacer"

type FrameID = replacer.FrameID
type PageID = replacer.PageID

// PageSource stands in for the page I/O layer this spec treats as an
// external collaborator: the pool loads pages through it and flushes
// dirty frames back through it. Page contents are opaque bytes — no page
// layout or on-disk format is specified here.
type PageSource interface {
	Load(pageID PageID) ([]byte, error)
	Save(pageID PageID, data []byte) error
}
