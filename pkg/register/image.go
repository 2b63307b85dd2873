package register

import "maps"

// Image is a point-in-time copy of a store's register values and the FIFO
// contents not yet read back.
type Image struct {
	Values map[uint64]uint64
	Fifos  map[uint64][]uint64
}

// Snapshotter is implemented by stores whose contents can be saved and
// restored.
type Snapshotter interface {
	Snapshot() Image
	Restore(img Image)
}

// Snapshot implements Snapshotter.
func (t *SimpleTarget) Snapshot() Image {
	t.mu.Lock()
	defer t.mu.Unlock()

	img := Image{Values: make(map[uint64]uint64, len(t.cells)), Fifos: make(map[uint64][]uint64)}
	for addr, c := range t.cells {
		img.Values[addr] = c.value
		if len(c.queue) > 0 {
			img.Fifos[addr] = append([]uint64(nil), c.queue...)
		}
	}
	return img
}

// Restore implements Snapshotter. It replaces the whole store.
func (t *SimpleTarget) Restore(img Image) {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.cells)
	for addr, v := range img.Values {
		t.cell(addr).value = v & t.dataMask
	}
	for addr, q := range img.Fifos {
		c := t.cell(addr)
		for _, v := range q {
			c.queue = append(c.queue, v&t.dataMask)
		}
	}
}

// Snapshot implements Snapshotter. Injected faults are not part of the
// image.
func (t *AdvancedTarget) Snapshot() Image {
	t.mu.Lock()
	defer t.mu.Unlock()

	img := Image{Values: maps.Clone(t.values), Fifos: make(map[uint64][]uint64, len(t.fifos))}
	for addr, q := range t.fifos {
		if len(q) > 0 {
			img.Fifos[addr] = append([]uint64(nil), q...)
		}
	}
	return img
}

// Restore implements Snapshotter. FIFOs longer than the configured depth
// are truncated to their oldest entries.
func (t *AdvancedTarget) Restore(img Image) {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.values)
	clear(t.fifos)
	for addr, v := range img.Values {
		t.store(addr, v)
	}
	for addr, q := range img.Fifos {
		q = q[:min(len(q), t.fifoDepth)]
		out := make([]uint64, len(q))
		for i, v := range q {
			out[i] = v & t.dataMask
		}
		t.fifos[addr&t.addrMask] = out
	}
}

var (
	_ Snapshotter = (*SimpleTarget)(nil)
	_ Snapshotter = (*AdvancedTarget)(nil)
)
