package packer

import "sort"

// PlacementContext carries everything OrientationFactory needs to score a
// candidate item against the current row/layer state. It mirrors the
// parameter list spec.md §4.D hands to the factory on every placement
// attempt; PrevItem, X, Y and StartDepth are carried through for logging and
// future scoring extensions even though the current scoring rule does not
// read them directly.
type PlacementContext struct {
	Item            *Item
	PrevItem        *Item
	RemainingItems  *ItemList
	IsLastItem      bool
	WidthLeft       int
	LengthLeft      int
	DepthLeft       int
	RowLength       int
	X, Y, StartDepth int
	PackedSoFar     PackedItemList
	Box             *Box
	RemainingWeight int
}

// OrientationFactory enumerates, scores and chooses the best axis-aligned
// orientation of an item within a free cuboid.
//
// LookAhead marks a factory as belonging to a nested, look-ahead-mode
// packer: such factories never themselves perform the recursive fanout
// scoring step, which is what keeps look-ahead recursion bounded to one
// level (spec.md §4.B, §5).
type OrientationFactory struct {
	LookAhead bool
}

// sixPermutations returns the six axis-aligned permutations of (w, l, d).
func sixPermutations(w, l, d int) [6][3]int {
	return [6][3]int{
		{w, l, d},
		{w, d, l},
		{l, w, d},
		{l, d, w},
		{d, w, l},
		{d, l, w},
	}
}

// FitsInEmptyBox reports whether any of item's six axis-aligned orientations
// (respecting KeepFlat) fits within box's inner dimensions, ignoring
// anything already packed. Used to reject globally-too-large items before
// attempting placement.
func (OrientationFactory) FitsInEmptyBox(item *Item, box *Box) bool {
	for _, p := range sixPermutations(item.Width, item.Length, item.Depth) {
		w, l, d := p[0], p[1], p[2]
		if item.KeepFlat && d != item.Depth {
			continue
		}
		if w <= box.InnerWidth && l <= box.InnerLength && d <= box.InnerDepth {
			return true
		}
	}
	return false
}

func (f OrientationFactory) enumerate(item *Item, maxW, maxL, maxD int) []OrientatedItem {
	out := make([]OrientatedItem, 0, 6)
	for _, p := range sixPermutations(item.Width, item.Length, item.Depth) {
		w, l, d := p[0], p[1], p[2]
		if item.KeepFlat && d != item.Depth {
			continue
		}
		if w > maxW || l > maxL || d > maxD {
			continue
		}
		out = append(out, OrientatedItem{Item: item, Width: w, Length: l, Depth: d})
	}
	return out
}

type scoredOrientation struct {
	orientation     OrientatedItem
	stableFit       bool
	lookaheadFit    int
	wastedVolume    int
	remainingLength int
}

// Best returns the best orientation for ctx.Item under the current row/layer
// state, or ok=false if no orientation survives dimensional, KeepFlat and
// predicate filtering.
func (f OrientationFactory) Best(ctx PlacementContext) (best *OrientatedItem, ok bool) {
	if !ctx.Item.checkConstraint(ctx.PackedSoFar, ctx.Box) {
		return nil, false
	}
	orientations := f.enumerate(ctx.Item, ctx.WidthLeft, ctx.LengthLeft, ctx.DepthLeft)
	if len(orientations) == 0 {
		return nil, false
	}

	scored := make([]scoredOrientation, 0, len(orientations))
	for _, o := range orientations {
		stable := ctx.RowLength > 0 && o.Length <= ctx.RowLength

		lookahead := 0
		if !f.LookAhead && ctx.RemainingItems != nil && ctx.RemainingItems.Count() > 0 {
			lookahead = f.lookaheadFit(ctx.RemainingItems, ctx.WidthLeft-o.Width, ctx.LengthLeft, ctx.DepthLeft, ctx.RemainingWeight)
		}

		waste := ctx.WidthLeft*ctx.LengthLeft*ctx.DepthLeft - o.volume()
		remainingLength := ctx.LengthLeft - o.Length

		scored = append(scored, scoredOrientation{
			orientation:     o,
			stableFit:       stable,
			lookaheadFit:    lookahead,
			wastedVolume:    waste,
			remainingLength: remainingLength,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.stableFit != b.stableFit {
			return a.stableFit // stable-fit tier ranks ahead of fresh tier
		}
		if a.lookaheadFit != b.lookaheadFit {
			return a.lookaheadFit > b.lookaheadFit
		}
		if a.wastedVolume != b.wastedVolume {
			return a.wastedVolume < b.wastedVolume
		}
		return a.remainingLength > b.remainingLength
	})

	chosen := scored[0].orientation
	return &chosen, true
}

// lookaheadFit recursively trial-packs a snapshot of the remaining items
// into what would be left of the free cuboid after the candidate
// orientation is placed, and counts how many of them fit. The nested packer
// runs in look-ahead mode, which both skips layer stabilisation and forces
// its own OrientationFactory to skip this same step — bounding the
// recursion to a single level.
func (f OrientationFactory) lookaheadFit(remaining *ItemList, freeW, freeL, freeD, maxWeight int) int {
	if freeW <= 0 || remaining == nil || remaining.Count() == 0 {
		return 0
	}
	box := &Box{
		Reference:   "lookahead",
		InnerWidth:  freeW,
		InnerLength: freeL,
		InnerDepth:  freeD,
		EmptyWeight: 0,
		MaxWeight:   maxWeight,
	}
	nested := newVolumePacker(box, remaining.Clone(), true, noopLogger{})
	result := nested.Pack()
	return result.Items.Len()
}
