package render

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

type bitmapResult struct {
	img image.Image
	err error
}

// Bitmap 异步加载的贴图句柄
//
// 资源缓存在后台 goroutine 中解码图片，完成后调用 Resolve；
// 主循环通过 IsReady / Image 轮询，不会因等待加载而阻塞。
// 转换为 *ebiten.Image 的动作延迟到主线程第一次绘制时进行。
type Bitmap struct {
	path   string
	result atomic.Pointer[bitmapResult]
	done   chan struct{}
	once   sync.Once

	// ebitenImage 仅在主线程访问
	ebitenImage *ebiten.Image
}

// NewBitmap 创建一个尚未加载完成的贴图句柄
func NewBitmap(path string) *Bitmap {
	return &Bitmap{
		path: path,
		done: make(chan struct{}),
	}
}

// NewBitmapFromImage 创建一个立即可用的贴图句柄
func NewBitmapFromImage(path string, img image.Image) *Bitmap {
	b := NewBitmap(path)
	b.Resolve(img, nil)
	return b
}

// Path 返回贴图的资源路径
func (b *Bitmap) Path() string {
	return b.path
}

// Resolve 设置加载结果，只有第一次调用生效
// 可以从任意 goroutine 调用
func (b *Bitmap) Resolve(img image.Image, err error) {
	b.once.Do(func() {
		b.result.Store(&bitmapResult{img: img, err: err})
		close(b.done)
	})
}

// Done 返回一个在加载结束（成功或失败）时关闭的 channel
func (b *Bitmap) Done() <-chan struct{} {
	return b.done
}

// IsReady 返回图片是否已成功加载
func (b *Bitmap) IsReady() bool {
	r := b.result.Load()
	return r != nil && r.err == nil && r.img != nil
}

// Err 返回加载错误（未完成或成功时为 nil）
func (b *Bitmap) Err() error {
	if r := b.result.Load(); r != nil {
		return r.err
	}
	return nil
}

// Source 返回解码后的原始图片（未就绪时为 nil）
func (b *Bitmap) Source() image.Image {
	if r := b.result.Load(); r != nil && r.err == nil {
		return r.img
	}
	return nil
}

// Image 返回可绘制的 Ebitengine 图片（未就绪时为 nil）
// 必须在主线程调用
func (b *Bitmap) Image() *ebiten.Image {
	if b.ebitenImage != nil {
		return b.ebitenImage
	}
	src := b.Source()
	if src == nil {
		return nil
	}
	if img, ok := src.(*ebiten.Image); ok {
		b.ebitenImage = img
	} else {
		b.ebitenImage = ebiten.NewImageFromImage(src)
	}
	return b.ebitenImage
}

// Size 返回图片尺寸（未就绪时为 0, 0）
func (b *Bitmap) Size() (int, int) {
	src := b.Source()
	if src == nil {
		return 0, 0
	}
	bounds := src.Bounds()
	return bounds.Dx(), bounds.Dy()
}
