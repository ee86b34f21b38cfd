package packer

// VolumePacker packs one Box with one ItemList. It owns both for the
// duration of a single Pack call: the pending list, a "skipped" list shared
// across all layers it builds, the items discarded for this box, the running
// packed-item record (for placement-predicate evaluation), and the remaining
// weight budget.
//
// A VolumePacker is not safe for concurrent use. Independent instances
// packing different boxes are fully independent and may run in parallel.
type VolumePacker struct {
	box             *Box
	pending         *ItemList
	skipped         *ItemList
	discarded       []*Item
	packed          PackedItemList
	remainingWeight int
	lookAhead       bool
	logger          Logger
	factory         OrientationFactory
}

// NewVolumePacker builds a packer for box over items. A nil logger defaults
// to a no-op sink.
func NewVolumePacker(box *Box, items *ItemList, logger Logger) *VolumePacker {
	if logger == nil {
		logger = NoopLogger()
	}
	return newVolumePacker(box, items, false, logger)
}

func newVolumePacker(box *Box, items *ItemList, lookAhead bool, logger Logger) *VolumePacker {
	return &VolumePacker{
		box:             box,
		pending:         items,
		skipped:         items.emptyClone(),
		remainingWeight: box.MaxWeight - box.EmptyWeight,
		lookAhead:       lookAhead,
		logger:          logger,
		factory:         OrientationFactory{LookAhead: lookAhead},
	}
}

// Pack builds layers bottom-up until the pending (and skipped) items are
// exhausted or the box's inner depth is used up, then rotates for a box that
// needed its axes swapped and — unless this is a nested look-ahead packer —
// stabilises the layer order.
func (p *VolumePacker) Pack() *PackedBox {
	frameW := max(p.box.InnerWidth, p.box.InnerLength)
	frameL := min(p.box.InnerWidth, p.box.InnerLength)
	boxRotated := p.box.InnerWidth != frameW

	var layers []*PackedLayer
	startDepth := 0
	for !(p.pending.IsExhausted() && p.skipped.IsExhausted()) {
		if startDepth >= p.box.InnerDepth {
			break
		}

		layer, progressed := p.buildLayer(frameW, frameL, p.box.InnerDepth-startDepth, startDepth)
		if layer != nil && len(layer.Items()) > 0 {
			layers = append(layers, layer)
			startDepth += layer.Depth()
			p.logger.Debug("layer built", "box", p.box.Reference, "items", len(layer.Items()), "depth", layer.Depth())
		}
		if !progressed {
			break
		}
	}

	if boxRotated {
		layers = rotateLayers(layers)
	}
	if !p.lookAhead {
		layers = LayerStabiliser{}.Stabilise(layers)
	}

	return buildPackedBox(p.box, layers)
}

// Unpacked returns whatever items remain unplaced after Pack has run:
// anything still sitting in the pending or skipped lists, followed by the
// items discarded for this box.
func (p *VolumePacker) Unpacked() []*Item {
	out := p.pending.Iterate()
	out = append(out, p.skipped.Iterate()...)
	out = append(out, p.discarded...)
	return out
}

// buildLayer lays out one horizontal slab within the given frame and depth
// budget, returning the layer built (possibly empty) and whether any item
// was placed (the book-keeping spec.md calls "progress").
func (p *VolumePacker) buildLayer(frameW, frameL, depthBudget, startDepth int) (*PackedLayer, bool) {
	layer := &PackedLayer{}
	widthLeft, lengthLeft, depthLeft := frameW, frameL, depthBudget
	x, y := 0, 0
	rowWidth, rowLength, layerDepth := 0, 0, 0
	var prevItem *Item
	placedAny := false

	// sinceRebuildPlaced guards against the pending/skipped lists cycling
	// forever when nothing in either list can make progress at the current
	// row/layer cursor (e.g. the row is full lengthwise but the cursor has
	// not advanced past x == 0, so a fresh row can never start): if an
	// entire pass after a swap-in from skipped produces no placement and no
	// new row, further swapping would only repeat it, so the layer ends.
	sinceRebuildPlaced := true

	for {
		if p.pending.IsExhausted() {
			if !sinceRebuildPlaced {
				break
			}
			p.rebuildList(nil)
			sinceRebuildPlaced = false
			if p.pending.IsExhausted() {
				break
			}
		}

		item := p.pending.Pop()

		if item.Weight > p.remainingWeight || !item.checkConstraint(p.packed, p.box) || !p.factory.FitsInEmptyBox(item, p.box) {
			p.discarded = append(p.discarded, item)
			continue // ItemTooHeavy / ConstraintRejection / ItemTooLarge: discarded for this box
		}

		ctx := PlacementContext{
			Item:            item,
			PrevItem:        prevItem,
			RemainingItems:  p.pending,
			IsLastItem:      p.pending.IsExhausted() && p.skipped.IsExhausted(),
			WidthLeft:       widthLeft,
			LengthLeft:      lengthLeft,
			DepthLeft:       depthLeft,
			RowLength:       rowLength,
			X:               x,
			Y:               y,
			StartDepth:      startDepth,
			PackedSoFar:     p.packed,
			Box:             p.box,
			RemainingWeight: p.remainingWeight,
		}

		orient, ok := p.factory.Best(ctx)
		if ok {
			placed := newPackedItem(*orient, x, y, startDepth)
			layer.Insert(placed)
			p.packed.Insert(placed)
			p.remainingWeight -= item.Weight
			widthLeft -= orient.Width
			rowWidth += orient.Width
			rowLength = max(rowLength, orient.Length)
			layerDepth = max(layerDepth, orient.Depth)
			placedAny = true
			sinceRebuildPlaced = true

			if gap := layerDepth - orient.Depth; gap > 0 {
				p.stackInPlace(x, y, startDepth+orient.Depth, orient.Width, orient.Length, gap, layer)
			}

			x += orient.Width
			prevItem = item
			continue
		}

		if len(layer.Items()) == 0 {
			p.discarded = append(p.discarded, item)
			continue // cannot fit this depth budget under any orientation: discarded for this box
		}

		if widthLeft > 0 && p.pending.Count() > 0 {
			p.skipped.Insert(item)
			continue
		}

		if x > 0 && minSide(item) <= lengthLeft {
			widthLeft += rowWidth
			lengthLeft -= rowLength
			y += rowLength
			x, rowWidth, rowLength = 0, 0, 0
			p.rebuildList(item)
			sinceRebuildPlaced = true
			continue
		}

		p.rebuildList(item)
		break
	}

	return layer, placedAny
}

// stackInPlace fills the vertical gap left above a just-placed item, trying
// to orient successive top-of-pending items into the same (x, y) footprint
// until none fit or the gap is used up.
func (p *VolumePacker) stackInPlace(x, y, z, maxW, maxL, maxD int, layer *PackedLayer) {
	for maxD > 0 {
		top := p.pending.Peek()
		if top == nil {
			return
		}
		if top.Weight > p.remainingWeight || !top.checkConstraint(p.packed, p.box) {
			return
		}

		ctx := PlacementContext{
			Item:            top,
			RemainingItems:  p.pending,
			WidthLeft:       maxW,
			LengthLeft:      maxL,
			DepthLeft:       maxD,
			PackedSoFar:     p.packed,
			Box:             p.box,
			RemainingWeight: p.remainingWeight,
		}
		orient, ok := p.factory.Best(ctx)
		if !ok {
			return
		}

		item := p.pending.Pop()
		placed := newPackedItem(*orient, x, y, z)
		layer.Insert(placed)
		p.packed.Insert(placed)
		p.remainingWeight -= item.Weight
		maxD -= orient.Depth
		z += orient.Depth
	}
}

// rebuildList is the ItemList replenishment rule: when pending has run dry,
// the skipped list (accumulated across the whole packer, not just this
// layer) becomes the new pending list. If currentItem is non-nil it is
// reinserted into pending afterwards, whether or not a swap just happened.
func (p *VolumePacker) rebuildList(currentItem *Item) {
	if p.pending.IsExhausted() {
		p.pending, p.skipped = p.skipped, p.skipped.emptyClone()
	}
	if currentItem != nil {
		p.pending.Insert(currentItem)
	}
}

func minSide(item *Item) int {
	return min(item.Width, item.Length, item.Depth)
}

// rotateLayers swaps X<->Y and Width<->Length for every packed item, used
// when the box's own width/length were swapped to build the packing frame.
func rotateLayers(layers []*PackedLayer) []*PackedLayer {
	out := make([]*PackedLayer, len(layers))
	for i, layer := range layers {
		rotated := &PackedLayer{}
		for _, it := range layer.Items() {
			it.X, it.Y = it.Y, it.X
			it.Width, it.Length = it.Length, it.Width
			rotated.Insert(it)
		}
		out[i] = rotated
	}
	return out
}

func buildPackedBox(box *Box, layers []*PackedLayer) *PackedBox {
	var flat PackedItemList
	for _, layer := range layers {
		for _, it := range layer.Items() {
			flat.Insert(it)
		}
	}
	return &PackedBox{Box: box, Layers: layers, Items: flat}
}
