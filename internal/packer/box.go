package packer

// Box is a candidate container: inner dimensions, the weight of the box
// itself, the maximum gross weight it can carry, and an optional bounded
// inventory (RemainingAmount == nil means unlimited). Packing never changes
// a Box; only DecreaseAmount updates its inventory.
type Box struct {
	Reference       string
	InnerWidth      int
	InnerLength     int
	InnerDepth      int
	EmptyWeight     int
	MaxWeight       int
	RemainingAmount *int
}

// Volume returns the inner volume of the box.
func (b *Box) Volume() int {
	return b.InnerWidth * b.InnerLength * b.InnerDepth
}

// GetAmount reports the remaining inventory for this box, or nil if
// unbounded.
func (b *Box) GetAmount() *int {
	return b.RemainingAmount
}

// DecreaseAmount decrements the box's remaining inventory. It is a no-op on
// boxes with unbounded inventory.
func (b *Box) DecreaseAmount() {
	if b.RemainingAmount == nil {
		return
	}
	remaining := *b.RemainingAmount - 1
	b.RemainingAmount = &remaining
}
