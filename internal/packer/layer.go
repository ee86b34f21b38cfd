package packer

import "sort"

// PackedLayer is an ordered collection of PackedItems sharing an overlapping
// vertical range, built bottom-up during packing. Depth and Footprint are
// computed lazily from the current set of items.
type PackedLayer struct {
	items []PackedItem
}

// Insert appends item, preserving insertion order.
func (l *PackedLayer) Insert(item PackedItem) {
	l.items = append(l.items, item)
}

// Items returns the layer's items in insertion order. The returned slice
// must not be mutated by callers.
func (l *PackedLayer) Items() []PackedItem {
	return l.items
}

// Depth returns max(item.z+item.depth) - min(item.z) across the layer's
// items, or 0 for an empty layer.
func (l *PackedLayer) Depth() int {
	if len(l.items) == 0 {
		return 0
	}
	minZ, maxZ := l.items[0].Z, l.items[0].Z+l.items[0].Depth
	for _, it := range l.items[1:] {
		if it.Z < minZ {
			minZ = it.Z
		}
		if top := it.Z + it.Depth; top > maxZ {
			maxZ = top
		}
	}
	return maxZ - minZ
}

// Footprint returns the XY area covered by the union of the layer's items'
// XY extents (items stacked within the same footprint do not double-count).
func (l *PackedLayer) Footprint() int {
	if len(l.items) == 0 {
		return 0
	}
	rects := make([]rect, 0, len(l.items))
	for _, it := range l.items {
		rects = append(rects, rect{
			x0: it.X, y0: it.Y,
			x1: it.X + it.Width, y1: it.Y + it.Length,
		})
	}
	return unionArea(rects)
}

type rect struct {
	x0, y0, x1, y1 int
}

// unionArea computes the area of the union of axis-aligned rectangles via
// coordinate compression. Layers hold a handful of items at a time, so the
// O(n^2) grid below is simpler than a sweep-line and plenty fast.
func unionArea(rects []rect) int {
	if len(rects) == 0 {
		return 0
	}
	xs := make([]int, 0, len(rects)*2)
	ys := make([]int, 0, len(rects)*2)
	for _, r := range rects {
		xs = append(xs, r.x0, r.x1)
		ys = append(ys, r.y0, r.y1)
	}
	xs = sortUnique(xs)
	ys = sortUnique(ys)

	total := 0
	for i := 0; i+1 < len(xs); i++ {
		for j := 0; j+1 < len(ys); j++ {
			cx, cy := xs[i], ys[j]
			for _, r := range rects {
				if r.x0 <= cx && cx < r.x1 && r.y0 <= cy && cy < r.y1 {
					total += (xs[i+1] - xs[i]) * (ys[j+1] - ys[j])
					break
				}
			}
		}
	}
	return total
}

func sortUnique(vs []int) []int {
	sort.Ints(vs)
	out := vs[:0:0]
	for i, v := range vs {
		if i == 0 || v != vs[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// PackedItemList accumulates PackedItems across layers, in the order they
// were placed, for use by placement predicates during packing and as the
// flattened result on a finished PackedBox.
type PackedItemList struct {
	items []PackedItem
}

// Insert appends item to the list.
func (l *PackedItemList) Insert(item PackedItem) {
	l.items = append(l.items, item)
}

// Items returns the accumulated items in insertion order.
func (l PackedItemList) Items() []PackedItem {
	return l.items
}

// Len reports how many items have been accumulated.
func (l PackedItemList) Len() int {
	return len(l.items)
}
