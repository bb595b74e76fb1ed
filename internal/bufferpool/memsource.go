package bufferpool

import "sync"

// PageSize is the fixed payload size memSource hands back for a page it
// has never seen, simulating a freshly allocated zero page.
const PageSize = 256

// memSource is an in-memory PageSource, standing in for a disk-backed one
// in tests and the CLI's default mode.
type memSource struct {
	mu   sync.Mutex
	data map[PageID][]byte
}

// NewMemSource returns an empty in-memory PageSource.
func NewMemSource() PageSource {
	return &memSource{data: make(map[PageID][]byte)}
}

func (m *memSource) Load(pageID PageID) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.data[pageID]
	if !ok {
		return make([]byte, PageSize), nil
	}
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *memSource) Save(pageID PageID, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[pageID] = stored
	return nil
}
