package packer

import "sort"

// Comparator orders two items for pop/peek precedence: it reports whether a
// must be popped strictly before b. ItemList treats whichever item the
// comparator prefers as "greatest".
type Comparator func(a, b *Item) bool

// DefaultComparator is spec'd to mix weight into max(length, weight, depth)
// as the primary key. This is almost certainly a modelling bug — weight and
// length are different quantities — but it is the behaviour the reference
// implementation exhibits, so it is preserved here rather than silently
// "fixed". See VolumeComparator for the corrected alternative, and
// DESIGN.md for the open-question writeup.
func DefaultComparator(a, b *Item) bool {
	ka := max(a.Length, a.Weight, a.Depth)
	kb := max(b.Length, b.Weight, b.Depth)
	if ka != kb {
		return ka > kb
	}
	if a.Weight != b.Weight {
		return a.Weight > b.Weight // heavier pops first
	}
	if a.Description != b.Description {
		return a.Description < b.Description // lexicographically earlier pops first
	}
	return false
}

// VolumeComparator drops weight from the primary key, ordering purely by
// volume and then by the same tiebreaks as DefaultComparator. This is the
// "pure volume/max-extent ordering" the test scenarios in spec.md §8 assume.
func VolumeComparator(a, b *Item) bool {
	if a.volume() != b.volume() {
		return a.volume() > b.volume()
	}
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	if a.Description != b.Description {
		return a.Description < b.Description
	}
	return false
}

// ItemList is a mutable priority container over pending Items. Reads that
// depend on ordering (Peek, Pop, TopN, Iterate) lazily re-sort the backing
// slice when the list is "dirty" — i.e. an Insert happened since the last
// sort — then clear the flag. The sort is stable on comparator ties.
type ItemList struct {
	items      []*Item
	comparator Comparator
	dirty      bool
}

// NewItemList builds a list using DefaultComparator and the given initial
// items, in insertion order.
func NewItemList(items ...*Item) *ItemList {
	l := &ItemList{comparator: DefaultComparator}
	l.items = append(l.items, items...)
	l.dirty = len(l.items) > 0
	return l
}

// NewItemListWithComparator is the same as NewItemList but lets the caller
// substitute the ordering strategy (see DefaultComparator/VolumeComparator).
func NewItemListWithComparator(cmp Comparator, items ...*Item) *ItemList {
	l := NewItemList(items...)
	l.comparator = cmp
	return l
}

// Insert adds item at the end and marks the list dirty.
func (l *ItemList) Insert(item *Item) {
	l.items = append(l.items, item)
	l.dirty = true
}

// Remove deletes the first entry identity-equal to item, if any, and
// reports whether something was removed.
func (l *ItemList) Remove(item *Item) bool {
	for i, it := range l.items {
		if it == item {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns the current size of the list.
func (l *ItemList) Count() int {
	return len(l.items)
}

// IsExhausted reports whether the list holds no items. (spec.md §9 open
// question 2: the reference's hasItemsLeftToPack() name is inverted relative
// to its boolean meaning; this method name and polarity are the corrected
// reading — true only once every item has been popped.)
func (l *ItemList) IsExhausted() bool {
	return len(l.items) == 0
}

func (l *ItemList) ensureSorted() {
	if !l.dirty {
		return
	}
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.comparator(l.items[i], l.items[j])
	})
	l.dirty = false
}

// Peek returns the greatest item per the comparator without removing it, or
// nil if the list is empty.
func (l *ItemList) Peek() *Item {
	l.ensureSorted()
	if len(l.items) == 0 {
		return nil
	}
	return l.items[0]
}

// Pop returns and removes the greatest item per the comparator, or nil if
// the list is empty.
func (l *ItemList) Pop() *Item {
	l.ensureSorted()
	if len(l.items) == 0 {
		return nil
	}
	item := l.items[0]
	l.items = l.items[1:]
	return item
}

// TopN returns a snapshot ItemList of the n greatest items, in order. If n
// exceeds Count(), the whole list is returned.
func (l *ItemList) TopN(n int) *ItemList {
	l.ensureSorted()
	if n > len(l.items) {
		n = len(l.items)
	}
	snap := make([]*Item, n)
	copy(snap, l.items[:n])
	return &ItemList{items: snap, comparator: l.comparator}
}

// Iterate returns a greatest-first snapshot slice; mutating the returned
// slice does not affect the list.
func (l *ItemList) Iterate() []*Item {
	l.ensureSorted()
	out := make([]*Item, len(l.items))
	copy(out, l.items)
	return out
}

// emptyClone returns a new, empty list sharing this list's comparator.
func (l *ItemList) emptyClone() *ItemList {
	return &ItemList{comparator: l.comparator}
}

// Clone returns a deep (structural) copy suitable for look-ahead: the list's
// own backing storage is independent, but Item values themselves are shared
// by reference since they are immutable.
func (l *ItemList) Clone() *ItemList {
	l.ensureSorted()
	items := make([]*Item, len(l.items))
	copy(items, l.items)
	return &ItemList{items: items, comparator: l.comparator}
}
