package game

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"golang.org/x/image/bmp"

	"github.com/gonewx/paperdoll/pkg/embedded"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// newTestAssets 在临时目录下写入 img/paperdoll/body.png 与 face.bmp
func newTestAssets(t *testing.T) string {
	t.Helper()
	embedded.Reset()

	root := t.TempDir()
	dir := filepath.Join(root, "img", "paperdoll")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "body.png"), encodePNG(t, solidImage(4, 6, color.White)), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, solidImage(3, 2, color.Black)); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "face.bmp"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func waitBitmap(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("bitmap did not resolve in time")
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first string
		count int
	}{
		{"无扩展名", "body", "body.png", len(imageExtensions)},
		{"已知扩展名", "face.webp", "face.webp", len(imageExtensions) + 1},
		{"大写扩展名", "face.TGA", "face.TGA", len(imageExtensions) + 1},
		{"未知扩展名", "hair.v2", "hair.v2.png", len(imageExtensions)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Candidates(tt.in)
			if len(got) != tt.count {
				t.Fatalf("Candidates(%q): got %v, want %d entries", tt.in, got, tt.count)
			}
			if got[0] != tt.first {
				t.Errorf("Candidates(%q)[0]: got %q, want %q", tt.in, got[0], tt.first)
			}
		})
	}
}

func TestLoadBitmapFromDisk(t *testing.T) {
	rm := NewResourceManager(newTestAssets(t))

	b := rm.LoadBitmap("img/paperdoll", "body")
	if again := rm.LoadBitmap("img/paperdoll", "body"); again != b {
		t.Error("LoadBitmap should return the cached handle")
	}
	waitBitmap(t, b.Done())

	if err := b.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h := b.Size(); w != 4 || h != 6 {
		t.Errorf("Size: got %dx%d, want 4x6", w, h)
	}

	face := rm.LoadBitmap("img/paperdoll", "face")
	waitBitmap(t, face.Done())
	if w, h := face.Size(); face.Err() != nil || w != 3 || h != 2 {
		t.Errorf("bmp fallback: got %dx%d err=%v, want 3x2", w, h, face.Err())
	}
}

func TestLoadBitmapMissing(t *testing.T) {
	rm := NewResourceManager(newTestAssets(t))

	b := rm.LoadBitmap("img/paperdoll", "nothing")
	waitBitmap(t, b.Done())
	if !errors.Is(b.Err(), ErrImageNotFound) {
		t.Errorf("Err: got %v, want ErrImageNotFound", b.Err())
	}
	if b.IsReady() {
		t.Error("a failed bitmap should not report ready")
	}
}

func TestLoadImageCorrupt(t *testing.T) {
	root := newTestAssets(t)
	if err := os.WriteFile(filepath.Join(root, "img", "paperdoll", "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	rm := NewResourceManager(root)
	if _, err := rm.LoadImage("img/paperdoll", "broken"); err == nil || errors.Is(err, ErrImageNotFound) {
		t.Errorf("LoadImage(broken): got %v, want decode error", err)
	}
}

func TestLoadBitmapPrefersEmbedded(t *testing.T) {
	root := newTestAssets(t)
	embedded.Init(fstest.MapFS{
		"assets/img/paperdoll/body.png": {Data: encodePNG(t, solidImage(8, 8, color.White))},
	}, fstest.MapFS{})
	defer embedded.Reset()

	rm := NewResourceManager(root)
	b := rm.LoadBitmap("img/paperdoll", "body")
	waitBitmap(t, b.Done())
	if w, h := b.Size(); w != 8 || h != 8 {
		t.Errorf("Size: got %dx%d, want embedded 8x8", w, h)
	}
}

func TestPreload(t *testing.T) {
	rm := NewResourceManager(newTestAssets(t))

	if err := rm.Preload(context.Background(), "img/paperdoll", []string{"body", "face"}); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if !rm.Cached("img/paperdoll", "body") || !rm.Cached("img/paperdoll", "face") {
		t.Error("Preload should cache every handle")
	}

	err := rm.Preload(context.Background(), "img/paperdoll", []string{"body", "missing"})
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("Preload with missing file: got %v, want ErrImageNotFound", err)
	}
}
