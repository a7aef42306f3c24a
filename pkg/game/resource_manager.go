package game

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/gonewx/paperdoll/pkg/embedded"
	"github.com/gonewx/paperdoll/pkg/render"
)

// DefaultAssetRoot is the directory (embedded prefix and disk root) that holds layer images.
const DefaultAssetRoot = "assets"

// DefaultPreloadConcurrency bounds the number of images Preload decodes at once.
const DefaultPreloadConcurrency = 4

// ErrImageNotFound is returned when no candidate file exists for a resource name.
var ErrImageNotFound = errors.New("image not found")

// imageExtensions lists the file extensions tried, in order, for a bare resource name.
var imageExtensions = []string{".png", ".webp", ".bmp", ".tga", ".jpg", ".jpeg"}

// decoders maps an extension to a format-specific decoder.
// Extensions not listed fall back to image.Decode.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".webp": webp.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// ResourceManager loads and caches layer images.
//
// Images are looked up first in the embedded assets and then on disk, under
// <root>/<dir>/<name><ext>. Decoding happens on background goroutines: LoadBitmap
// returns a render.Bitmap handle immediately and the handle resolves once the
// image is decoded. Concurrent requests for the same file share one decode.
//
// ResourceManager is safe for concurrent use.
//
// Usage:
//
//	rm := NewResourceManager(DefaultAssetRoot)
//	bmp := rm.LoadBitmap("img/paperdoll", "body")
//	// ... later, on the main thread
//	if bmp.IsReady() {
//	    screen.DrawImage(bmp.Image(), op)
//	}
type ResourceManager struct {
	root string

	mu    sync.Mutex
	cache map[string]*render.Bitmap // "<dir>/<name>" -> handle

	group singleflight.Group
}

// NewResourceManager creates a resource manager rooted at root.
// An empty root means DefaultAssetRoot.
func NewResourceManager(root string) *ResourceManager {
	if root == "" {
		root = DefaultAssetRoot
	}
	return &ResourceManager{
		root:  root,
		cache: make(map[string]*render.Bitmap),
	}
}

// Root returns the asset root directory.
func (rm *ResourceManager) Root() string {
	return rm.root
}

// LoadBitmap returns the cached handle for dir/name, starting an asynchronous
// load the first time a name is requested. It never blocks.
//
// A failed load leaves the handle resolved with an error; the caller keeps a
// handle that simply never draws.
func (rm *ResourceManager) LoadBitmap(dir, name string) *render.Bitmap {
	key := path.Join(dir, name)

	rm.mu.Lock()
	if b, ok := rm.cache[key]; ok {
		rm.mu.Unlock()
		return b
	}
	b := render.NewBitmap(key)
	rm.cache[key] = b
	rm.mu.Unlock()

	go func() {
		img, err := rm.LoadImage(dir, name)
		if err != nil {
			log.Printf("[ResourceManager] Warning: %v", err)
		}
		b.Resolve(img, err)
	}()
	return b
}

// LoadImage synchronously decodes dir/name.
// Concurrent calls for the same name share one decode.
func (rm *ResourceManager) LoadImage(dir, name string) (image.Image, error) {
	key := path.Join(dir, name)
	v, err, _ := rm.group.Do(key, func() (interface{}, error) {
		return rm.decode(dir, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Preload loads every name in dir and waits until all are decoded or ctx is
// cancelled. The first decode error is returned; the remaining handles stay cached.
func (rm *ResourceManager) Preload(ctx context.Context, dir string, names []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultPreloadConcurrency)

	for _, name := range names {
		g.Go(func() error {
			b := rm.LoadBitmap(dir, name)
			select {
			case <-b.Done():
				return b.Err()
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

// Cached reports whether a handle exists for dir/name.
func (rm *ResourceManager) Cached(dir, name string) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	_, ok := rm.cache[path.Join(dir, name)]
	return ok
}

// Candidates returns the relative file names tried for a resource name.
// A name that already carries a known extension is tried as-is first.
func Candidates(name string) []string {
	ext := strings.ToLower(path.Ext(name))
	out := make([]string, 0, len(imageExtensions)+1)
	for _, known := range imageExtensions {
		if ext == known {
			out = append(out, name)
			break
		}
	}
	for _, e := range imageExtensions {
		out = append(out, name+e)
	}
	return out
}

func (rm *ResourceManager) decode(dir, name string) (image.Image, error) {
	for _, file := range Candidates(name) {
		data, err := rm.read(path.Join(dir, file))
		if err != nil {
			continue
		}
		img, err := decodeBytes(file, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", path.Join(dir, file), err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrImageNotFound, dir, name)
}

// read looks in the embedded assets first, then on disk.
func (rm *ResourceManager) read(rel string) ([]byte, error) {
	embeddedPath := path.Join(DefaultAssetRoot, rel)
	if embedded.IsInitialized() && embedded.Exists(embeddedPath) {
		return embedded.ReadFile(embeddedPath)
	}
	return os.ReadFile(filepath.Join(rm.root, filepath.FromSlash(rel)))
}

func decodeBytes(file string, data []byte) (image.Image, error) {
	if dec, ok := decoders[strings.ToLower(path.Ext(file))]; ok {
		return dec(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
