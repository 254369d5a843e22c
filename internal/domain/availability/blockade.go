package availability

// Blockade is the ownership/disabled state attached to a resource segment.
type Blockade struct {
	TakenBy  Owner
	Disabled bool
}

// NoBlockade returns the unowned, enabled state.
func NoBlockade() Blockade {
	return Blockade{TakenBy: NoOwner()}
}

// BlockadeOwnedBy returns an enabled blockade held by the given owner.
func BlockadeOwnedBy(owner Owner) Blockade {
	return Blockade{TakenBy: owner}
}

// BlockadeDisabledBy returns a disabled blockade attributed to the given owner.
func BlockadeDisabledBy(owner Owner) Blockade {
	return Blockade{TakenBy: owner, Disabled: true}
}

// CanBeTakenBy reports whether requester may take over the blockade: the
// segment is unowned or already held by the same requester.
func (b Blockade) CanBeTakenBy(requester Owner) bool {
	return b.TakenBy.IsNone() || b.TakenBy == requester
}

// IsDisabledBy reports whether the segment was disabled by the given owner.
func (b Blockade) IsDisabledBy(owner Owner) bool {
	return b.Disabled && b.TakenBy == owner
}
