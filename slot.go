package sview

// ownedPicture holds at most one picture and transfers it by exchange only,
// so a picture moved out of a slot is never reachable from it again.
type ownedPicture struct {
	p *Picture
}

// swap exchanges the held pictures of a and b.
func (a *ownedPicture) swap(b *ownedPicture) {
	a.p, b.p = b.p, a.p
}

// take moves the held picture out, leaving the slot empty.
func (a *ownedPicture) take() *Picture {
	p := a.p
	a.p = nil
	return p
}

// release releases the held picture, if any, and empties the slot.
func (a *ownedPicture) release() {
	if p := a.take(); p != nil {
		releasePicture(p)
	}
}

// empty reports whether the slot holds no picture.
func (a *ownedPicture) empty() bool {
	return a.p == nil
}
