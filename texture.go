package sview

import "fmt"

// textureSlot is the render-side representation of one picture: a lazily
// allocated texture plus the picture waiting to be uploaded into it.
type textureSlot struct {
	id     TextureID
	width  int
	height int
	ratio  float64
	source ownedPicture
}

// refresh uploads the pending source, if any, and releases it. The texture
// is allocated on first use and reused afterwards.
func (s *textureSlot) refresh(dev Device) error {
	if s.source.empty() {
		return nil
	}
	if s.id == 0 {
		id, err := dev.NewTexture()
		if err != nil {
			return fmt.Errorf("sview: texture allocation failed: %w", err)
		}
		s.id = id
	}

	p := s.source.take()
	defer releasePicture(p)

	pix, stride := p.Pix()
	u := Upload{
		Width:  p.Width,
		Height: p.Height,
		Stride: stride,
		Layout: layoutOf(p.Format),
		Pix:    pix,
	}
	if err := dev.Upload(s.id, u); err != nil {
		return fmt.Errorf("sview: texture upload failed: %w", err)
	}
	s.width = p.Width
	s.height = p.Height
	s.ratio = p.aspect()
	return nil
}

// ready reports whether the slot has content to draw.
func (s *textureSlot) ready() bool {
	return s.id != 0 && s.width > 0 && s.height > 0
}

// aspect returns the aspect ratio of the last upload.
func (s *textureSlot) aspect() float64 {
	if s.ratio == 0 {
		return 1
	}
	return s.ratio
}

// refreshCells refreshes both slots of every cell.
func refreshCells(dev Device, t *cellTable) error {
	for _, c := range t.cells {
		if err := c.content.refresh(dev); err != nil {
			return err
		}
		if err := c.overlay.refresh(dev); err != nil {
			return err
		}
	}
	return nil
}

// usePicture uploads p into s immediately and releases it.
// A nil p leaves the slot unchanged.
func (s *textureSlot) usePicture(dev Device, p *Picture) error {
	if p == nil {
		return nil
	}
	s.source.release()
	s.source.p = p
	return s.refresh(dev)
}
