package packer

// MaxCountPredicate builds a CanBePackedInBox predicate rejecting an item
// once max instances sharing description already sit in the box.
func MaxCountPredicate(description string, max int) PlacementPredicate {
	return func(alreadyPacked PackedItemList, _ *Box) bool {
		count := 0
		for _, it := range alreadyPacked.Items() {
			if it.Item.Description == description {
				count++
			}
		}
		return count < max
	}
}

// NotAboveFragilePredicate builds a CanBePackedInBox predicate that refuses
// any further placement once an item named fragileDescription is already in
// the box. The predicate sees only what's already packed, not the
// candidate's own weight or position, so "don't stack on the fragile item"
// is enforced conservatively as "the fragile item must be the last thing
// packed."
func NotAboveFragilePredicate(fragileDescription string) PlacementPredicate {
	return func(alreadyPacked PackedItemList, _ *Box) bool {
		for _, it := range alreadyPacked.Items() {
			if it.Item.Description == fragileDescription {
				return false
			}
		}
		return true
	}
}
