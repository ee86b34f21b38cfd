package packer

import "sort"

// LayerStabiliser reorders finalized layers vertically so that the greatest
// footprint supports the lesser ones, rewriting each item's Z coordinate
// accordingly. X and Y are left untouched. PackedItems are immutable by
// value, so stabilisation rebuilds new PackedLayer values rather than
// mutating the input.
type LayerStabiliser struct{}

// Stabilise returns layers reordered by decreasing Footprint (ties preserve
// the original relative order), with Z rewritten so each layer's bottom
// equals the cumulative Depth of the layers stacked beneath it.
func (LayerStabiliser) Stabilise(layers []*PackedLayer) []*PackedLayer {
	ordered := make([]*PackedLayer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Footprint() > ordered[j].Footprint()
	})

	result := make([]*PackedLayer, len(ordered))
	cumulativeDepth := 0
	for i, layer := range ordered {
		rebuilt := &PackedLayer{}
		items := layer.Items()
		if len(items) > 0 {
			minZ := items[0].Z
			for _, it := range items[1:] {
				if it.Z < minZ {
					minZ = it.Z
				}
			}
			offset := cumulativeDepth - minZ
			for _, it := range items {
				it.Z += offset
				rebuilt.Insert(it)
			}
		}
		cumulativeDepth += layer.Depth()
		result[i] = rebuilt
	}
	return result
}
