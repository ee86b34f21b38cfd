package packer

import (
	"fmt"
	"testing"
)

func cube(desc string, side, weight int) *Item {
	return &Item{Description: desc, Width: side, Length: side, Depth: side, Weight: weight}
}

func box(ref string, w, l, d, maxWeight int) *Box {
	return &Box{Reference: ref, InnerWidth: w, InnerLength: l, InnerDepth: d, MaxWeight: maxWeight}
}

// scenario 1: one 5x5x5/1 item into a 10x10x10/0/1000 box.
func TestPackSingleItem(t *testing.T) {
	b := box("b1", 10, 10, 10, 1000)
	items := NewItemList(cube("c1", 5, 1))

	pb := NewVolumePacker(b, items, nil).Pack()

	if pb.Items.Len() != 1 {
		t.Fatalf("expected 1 packed item, got %d", pb.Items.Len())
	}
	it := pb.Items.Items()[0]
	if it.X != 0 || it.Y != 0 || it.Z != 0 {
		t.Fatalf("expected item at origin, got (%d,%d,%d)", it.X, it.Y, it.Z)
	}
	if got, want := pb.FillRatio(), 0.125; got != want {
		t.Fatalf("fill ratio = %v, want %v", got, want)
	}
}

// scenario 2: eight 5x5x5/1 items fill a 10x10x10 box exactly, in two layers.
func TestPackEightCubesTwoLayers(t *testing.T) {
	b := box("b2", 10, 10, 10, 1000)
	var items []*Item
	for i := 0; i < 8; i++ {
		items = append(items, cube(fmt.Sprintf("c%d", i), 5, 1))
	}
	pb := NewVolumePacker(b, NewItemList(items...), nil).Pack()

	if pb.Items.Len() != 8 {
		t.Fatalf("expected all 8 items packed, got %d", pb.Items.Len())
	}
	if got, want := pb.FillRatio(), 1.0; got != want {
		t.Fatalf("fill ratio = %v, want %v", got, want)
	}

	zs := map[int]int{}
	for _, it := range pb.Items.Items() {
		zs[it.Z]++
	}
	if len(zs) != 2 {
		t.Fatalf("expected items spread across 2 distinct Z levels, got %d: %v", len(zs), zs)
	}
	if zs[0] != 4 {
		t.Fatalf("expected 4 items at z=0, got %d", zs[0])
	}
}

// scenario 3: three 5x5x5/1 items but the box can only carry 2 units of weight.
func TestPackWeightLimit(t *testing.T) {
	b := box("b3", 10, 10, 10, 2)
	items := NewItemList(cube("c1", 5, 1), cube("c2", 5, 1), cube("c3", 5, 1))

	vp := NewVolumePacker(b, items, nil)
	pb := vp.Pack()

	if pb.Items.Len() != 2 {
		t.Fatalf("expected 2 packed items under the weight cap, got %d", pb.Items.Len())
	}
	if got := pb.Weight(); got > b.MaxWeight {
		t.Fatalf("packed weight %d exceeds max weight %d", got, b.MaxWeight)
	}
}

// scenario 4: a box whose width is smaller than its length must be packed
// rotated internally, and the reported coordinates stay in the box's
// original (un-rotated) frame.
func TestPackBoxRotation(t *testing.T) {
	b := box("b4", 5, 10, 10, 1000)
	items := NewItemList(&Item{Description: "i1", Width: 10, Length: 10, Depth: 5, Weight: 1})

	pb := NewVolumePacker(b, items, nil).Pack()

	if pb.Items.Len() != 1 {
		t.Fatalf("expected the rotated item to be packed, got %d", pb.Items.Len())
	}
	it := pb.Items.Items()[0]
	if it.X+it.Width > b.InnerWidth {
		t.Fatalf("item width %d at x=%d exceeds box inner width %d", it.Width, it.X, b.InnerWidth)
	}
	if it.Y+it.Length > b.InnerLength {
		t.Fatalf("item length %d at y=%d exceeds box inner length %d", it.Length, it.Y, b.InnerLength)
	}
}

// scenario 5: a tall item anchors a footprint; the two shorter items share
// a second footprint in the same row, one stacked in the leftover height
// above the other.
func TestPackStackInPlace(t *testing.T) {
	b := box("b5", 10, 10, 10, 1000)
	items := NewItemList(
		&Item{Description: "tall", Width: 4, Length: 4, Depth: 10, Weight: 1},
		&Item{Description: "short-a", Width: 4, Length: 4, Depth: 4, Weight: 1},
		&Item{Description: "short-b", Width: 4, Length: 4, Depth: 4, Weight: 1},
	)

	pb := NewVolumePacker(b, items, nil).Pack()

	if pb.Items.Len() != 3 {
		t.Fatalf("expected all 3 items packed, got %d", pb.Items.Len())
	}

	byDesc := map[string]PackedItem{}
	for _, it := range pb.Items.Items() {
		byDesc[it.Item.Description] = it
	}
	tall, ok := byDesc["tall"]
	if !ok {
		t.Fatalf("tall item missing from result")
	}
	if tall.X != 0 || tall.Y != 0 || tall.Z != 0 {
		t.Fatalf("expected tall item at origin, got (%d,%d,%d)", tall.X, tall.Y, tall.Z)
	}
	shortA, hasA := byDesc["short-a"]
	shortB, hasB := byDesc["short-b"]
	if !hasA || !hasB {
		t.Fatalf("expected both short items packed")
	}
	if shortA.X != shortB.X || shortA.Y != shortB.Y {
		t.Fatalf("expected both short items sharing the same footprint, got %+v and %+v", shortA, shortB)
	}
	if shortA.X == tall.X && shortA.Y == tall.Y {
		t.Fatalf("expected short items in a different footprint from the tall item")
	}
}

// scenario 6: a short, wide box can only fit a 2x2 grid of six candidate
// cubes; the rest are left unpacked.
func TestPackPartialFit(t *testing.T) {
	b := box("b6", 10, 10, 5, 1000)
	var items []*Item
	for i := 0; i < 6; i++ {
		items = append(items, cube(fmt.Sprintf("c%d", i), 4, 1))
	}
	vp := NewVolumePacker(b, NewItemList(items...), nil)
	pb := vp.Pack()

	if pb.Items.Len() != 4 {
		t.Fatalf("expected 4 items packed, got %d", pb.Items.Len())
	}
	if got := len(vp.Unpacked()); got != 2 {
		t.Fatalf("expected 2 unpacked items, got %d", got)
	}
}

// Invariant checks run against every scenario's output.
func assertInvariants(t *testing.T, b *Box, pb *PackedBox) {
	t.Helper()
	items := pb.Items.Items()

	for _, it := range items {
		if it.X < 0 || it.Y < 0 || it.Z < 0 {
			t.Errorf("item %s has negative coordinate: %+v", it.Item.Description, it)
		}
		if it.X+it.Width > b.InnerWidth || it.Y+it.Length > b.InnerLength || it.Z+it.Depth > b.InnerDepth {
			t.Errorf("item %s exceeds box bounds: %+v box=%dx%dx%d", it.Item.Description, it, b.InnerWidth, b.InnerLength, b.InnerDepth)
		}
	}

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if overlaps3D(items[i], items[j]) {
				t.Errorf("items %s and %s overlap", items[i].Item.Description, items[j].Item.Description)
			}
		}
	}

	if pb.Weight() > b.MaxWeight {
		t.Errorf("packed weight %d exceeds max weight %d", pb.Weight(), b.MaxWeight)
	}

	for i := 1; i < len(pb.Layers); i++ {
		if pb.Layers[i-1].Footprint() < pb.Layers[i].Footprint() {
			t.Errorf("layer %d footprint %d is smaller than layer %d footprint %d", i-1, pb.Layers[i-1].Footprint(), i, pb.Layers[i].Footprint())
		}
	}
}

func overlaps3D(a, b PackedItem) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Length && b.Y < a.Y+a.Length &&
		a.Z < b.Z+b.Depth && b.Z < a.Z+a.Depth
}

func TestInvariantsAcrossScenarios(t *testing.T) {
	scenarios := []struct {
		name  string
		box   *Box
		items []*Item
	}{
		{"single", box("s1", 10, 10, 10, 1000), []*Item{cube("c1", 5, 1)}},
		{"eight-cubes", box("s2", 10, 10, 10, 1000), func() []*Item {
			var items []*Item
			for i := 0; i < 8; i++ {
				items = append(items, cube(fmt.Sprintf("c%d", i), 5, 1))
			}
			return items
		}()},
		{"weight-limited", box("s3", 10, 10, 10, 2), []*Item{cube("c1", 5, 1), cube("c2", 5, 1), cube("c3", 5, 1)}},
		{"rotated-box", box("s4", 5, 10, 10, 1000), []*Item{{Description: "i1", Width: 10, Length: 10, Depth: 5, Weight: 1}}},
		{"partial-fit", box("s6", 10, 10, 5, 1000), func() []*Item {
			var items []*Item
			for i := 0; i < 6; i++ {
				items = append(items, cube(fmt.Sprintf("c%d", i), 4, 1))
			}
			return items
		}()},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			pb := NewVolumePacker(sc.box, NewItemList(sc.items...), nil).Pack()
			assertInvariants(t, sc.box, pb)
		})
	}
}

// Determinism: two runs with identical inputs produce byte-identical
// placements.
func TestPackDeterministic(t *testing.T) {
	newItems := func() []*Item {
		var items []*Item
		for i := 0; i < 8; i++ {
			items = append(items, cube(fmt.Sprintf("c%d", i), 5, 1))
		}
		return items
	}

	b := box("bdet", 10, 10, 10, 1000)
	pb1 := NewVolumePacker(b, NewItemList(newItems()...), nil).Pack()
	pb2 := NewVolumePacker(b, NewItemList(newItems()...), nil).Pack()

	items1, items2 := pb1.Items.Items(), pb2.Items.Items()
	if len(items1) != len(items2) {
		t.Fatalf("packed item counts differ: %d vs %d", len(items1), len(items2))
	}
	for i := range items1 {
		a, bb := items1[i], items2[i]
		if a.Item.Description != bb.Item.Description || a.X != bb.X || a.Y != bb.Y || a.Z != bb.Z ||
			a.Width != bb.Width || a.Length != bb.Length || a.Depth != bb.Depth {
			t.Fatalf("packed item %d differs between runs: %+v vs %+v", i, a, bb)
		}
	}
}

// Orientation correctness: every PackedItem's dimensions are a permutation
// of the source item's raw dimensions, and KeepFlat items keep their depth.
func TestOrientationIsAPermutation(t *testing.T) {
	b := box("bperm", 12, 12, 12, 1000)
	flat := &Item{Description: "flat", Width: 3, Length: 6, Depth: 2, Weight: 1, KeepFlat: true}
	items := NewItemList(flat)

	pb := NewVolumePacker(b, items, nil).Pack()
	if pb.Items.Len() != 1 {
		t.Fatalf("expected flat item packed, got %d", pb.Items.Len())
	}
	it := pb.Items.Items()[0]
	if it.Depth != flat.Depth {
		t.Fatalf("KeepFlat item changed depth axis: got %d want %d", it.Depth, flat.Depth)
	}
	dims := []int{it.Width, it.Length, it.Depth}
	want := []int{flat.Width, flat.Length, flat.Depth}
	if !isPermutation(dims, want) {
		t.Fatalf("orientation %v is not a permutation of %v", dims, want)
	}
}

func isPermutation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, v := range a {
		found := false
		for i, w := range b {
			if !used[i] && v == w {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Constrained items: a predicate that rejects once one item of a kind is
// already packed should keep later duplicates out.
func TestConstrainedItemPredicate(t *testing.T) {
	b := box("bconstraint", 10, 10, 10, 1000)
	oneOfKind := func(packed PackedItemList, _ *Box) bool {
		for _, it := range packed.Items() {
			if it.Item.Description == "limited" {
				return false
			}
		}
		return true
	}
	items := NewItemList(
		&Item{Description: "limited", Width: 5, Length: 5, Depth: 5, Weight: 1, CanBePackedInBox: oneOfKind},
		&Item{Description: "limited", Width: 5, Length: 5, Depth: 5, Weight: 1, CanBePackedInBox: oneOfKind},
	)

	vp := NewVolumePacker(b, items, nil)
	pb := vp.Pack()

	if pb.Items.Len() != 1 {
		t.Fatalf("expected only 1 constrained item packed, got %d", pb.Items.Len())
	}
	if len(vp.Unpacked()) != 1 {
		t.Fatalf("expected the rejected duplicate left unpacked, got %d", len(vp.Unpacked()))
	}
}
