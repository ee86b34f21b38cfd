// Package packer implements the single-box volumetric packing core: given
// one Box and a prioritized list of candidate Items, it chooses orientations,
// lays items out on layers, stacks items vertically within a shared
// footprint, and stabilises the result for physical plausibility.
//
// The package is single-threaded and synchronous. A *VolumePacker instance
// is not safe for concurrent use; independent instances (packing different
// boxes) may run in parallel — see internal/boxpacker for that orchestration.
package packer

import "fmt"

// PlacementPredicate evaluates whether item may be placed given everything
// already packed into box. It is the only dynamic dispatch point on Item;
// plain items carry a nil predicate, which always allows placement.
type PlacementPredicate func(alreadyPacked PackedItemList, box *Box) bool

// Item is an immutable candidate for packing.
type Item struct {
	Description string
	Width       int
	Length      int
	Depth       int
	Weight      int

	// KeepFlat disallows rotations that would change which raw axis ends up
	// "up" (the Z axis of whatever orientation is chosen).
	KeepFlat bool

	// CanBePackedInBox is consulted on each placement attempt, before any
	// orientation is tried. A nil predicate always returns true.
	CanBePackedInBox PlacementPredicate
}

func (it *Item) String() string {
	return fmt.Sprintf("%s(%dx%dx%d/%d)", it.Description, it.Width, it.Length, it.Depth, it.Weight)
}

func (it *Item) volume() int {
	return it.Width * it.Length * it.Depth
}

func (it *Item) checkConstraint(packed PackedItemList, box *Box) bool {
	if it.CanBePackedInBox == nil {
		return true
	}
	return it.CanBePackedInBox(packed, box)
}

// OrientatedItem is an Item together with one of its six axis-aligned
// permutations, where Width/Length/Depth denote extent along the box's
// X/Y/Z axes respectively.
type OrientatedItem struct {
	Item   *Item
	Width  int
	Length int
	Depth  int
}

func (o OrientatedItem) volume() int {
	return o.Width * o.Length * o.Depth
}

// PackedItem is an OrientatedItem placed at an origin within a box, measured
// from the box's lower-front-left corner.
type PackedItem struct {
	OrientatedItem
	X, Y, Z int
}

func newPackedItem(o OrientatedItem, x, y, z int) PackedItem {
	return PackedItem{OrientatedItem: o, X: x, Y: y, Z: z}
}
