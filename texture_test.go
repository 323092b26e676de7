package sview

import (
	"errors"
	"testing"
)

func TestTextureSlotRefreshEmpty(t *testing.T) {
	dev := &mockDevice{}
	var s textureSlot
	if err := s.refresh(dev); err != nil {
		t.Fatalf("refresh() error = %v", err)
	}
	if dev.textures != 0 || len(dev.uploads) != 0 {
		t.Errorf("empty refresh touched the device: %d textures, %d uploads", dev.textures, len(dev.uploads))
	}
	if s.ready() {
		t.Error("ready() = true for an empty slot")
	}
}

func TestTextureSlotAllocatesOnce(t *testing.T) {
	dev := &mockDevice{}
	var s textureSlot
	var released int

	s.source.p = countedPicture(t, 4, 2, &released)
	if err := s.refresh(dev); err != nil {
		t.Fatalf("refresh() error = %v", err)
	}
	s.source.p = countedPicture(t, 6, 3, &released)
	if err := s.refresh(dev); err != nil {
		t.Fatalf("refresh() error = %v", err)
	}

	if dev.textures != 1 {
		t.Errorf("allocated %d textures, want 1", dev.textures)
	}
	if len(dev.uploads) != 2 {
		t.Fatalf("uploaded %d times, want 2", len(dev.uploads))
	}
	if released != 2 {
		t.Errorf("released %d pictures, want 2", released)
	}
	if !s.source.empty() {
		t.Error("source still held after refresh")
	}
	if s.width != 6 || s.height != 3 {
		t.Errorf("size = %dx%d, want 6x3", s.width, s.height)
	}
	if got := s.aspect(); got != 2 {
		t.Errorf("aspect() = %v, want 2", got)
	}

	u := dev.uploads[1].u
	if u.Width != 6 || u.Height != 3 || u.Stride != 8 || u.Layout != LayoutLuminance {
		t.Errorf("upload = %dx%d stride %d layout %d, want 6x3 stride 8 luminance", u.Width, u.Height, u.Stride, u.Layout)
	}
}

func TestTextureSlotUploadError(t *testing.T) {
	errLost := errors.New("device lost")
	dev := &mockDevice{failUpload: errLost}
	var s textureSlot
	var released int
	s.source.p = countedPicture(t, 2, 2, &released)

	if err := s.refresh(dev); !errors.Is(err, errLost) {
		t.Fatalf("refresh() error = %v, want %v", err, errLost)
	}
	if released != 1 {
		t.Errorf("released %d times after failed upload, want 1", released)
	}
	if s.ready() {
		t.Error("ready() = true after failed upload")
	}
}

func TestUsePicture(t *testing.T) {
	dev := &mockDevice{}
	var s textureSlot
	var released int

	if err := s.usePicture(dev, nil); err != nil {
		t.Fatalf("usePicture(nil) error = %v", err)
	}
	if dev.textures != 0 {
		t.Error("usePicture(nil) allocated a texture")
	}

	if err := s.usePicture(dev, countedPicture(t, 3, 3, &released)); err != nil {
		t.Fatalf("usePicture() error = %v", err)
	}
	if !s.ready() || released != 1 {
		t.Errorf("ready() = %v, released = %d; want true, 1", s.ready(), released)
	}
}
