package render

import (
	"errors"
	"image"
	"testing"
)

func TestBitmap_ResolveOnce(t *testing.T) {
	b := NewBitmap("img/paperdoll/body.png")
	if b.IsReady() {
		t.Fatal("new bitmap should not be ready")
	}
	if w, h := b.Size(); w != 0 || h != 0 {
		t.Errorf("Size before load: got %dx%d, want 0x0", w, h)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	b.Resolve(img, nil)
	b.Resolve(nil, errors.New("late failure"))

	select {
	case <-b.Done():
	default:
		t.Fatal("Done channel should be closed after Resolve")
	}
	if !b.IsReady() || b.Err() != nil {
		t.Errorf("first Resolve should win: ready=%v err=%v", b.IsReady(), b.Err())
	}
	if w, h := b.Size(); w != 4 || h != 3 {
		t.Errorf("Size: got %dx%d, want 4x3", w, h)
	}
}

func TestBitmap_ResolveError(t *testing.T) {
	b := NewBitmap("missing.png")
	loadErr := errors.New("not found")
	b.Resolve(nil, loadErr)

	if b.IsReady() {
		t.Error("failed bitmap must not be ready")
	}
	if !errors.Is(b.Err(), loadErr) {
		t.Errorf("Err: got %v, want %v", b.Err(), loadErr)
	}
	if b.Source() != nil {
		t.Error("failed bitmap should have no source image")
	}
}
