// Package snapshot 把纸娃娃的图层离线合成为一张静态图片
//
// 合成规则与运行时渲染一致：图层按索引从底到顶绘制，都以左上角对齐，
// 按类型的默认缩放缩放，透明度逐层作用。负缩放表示镜像。
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/gonewx/paperdoll/pkg/config"
)

// Compose 合成纸娃娃图层
//
// 参数:
//   - profile: 类型配置（只使用缩放）
//   - layers: 图层图片，索引 0 最底层；nil 项被跳过
//   - opacity: 透明度 (0-255)
//
// 返回:
//   - *image.NRGBA: 合成结果，尺寸为最大图层尺寸乘以缩放绝对值（至少 1x1）
func Compose(profile config.TypeProfile, layers []image.Image, opacity uint8) *image.NRGBA {
	sx, sy := math.Abs(profile.ScaleX), math.Abs(profile.ScaleY)

	w, h := 0, 0
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		b := layer.Bounds()
		w = max(w, scaled(b.Dx(), sx))
		h = max(h, scaled(b.Dy(), sy))
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	if opacity == 0 {
		return canvas
	}

	mask := image.NewUniform(color.Alpha{A: opacity})
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		b := layer.Bounds()
		dst := image.Rect(0, 0, scaled(b.Dx(), sx), scaled(b.Dy(), sy))
		if dst.Dx() == b.Dx() && dst.Dy() == b.Dy() {
			draw.DrawMask(canvas, dst, layer, b.Min, mask, image.Point{}, draw.Over)
			continue
		}
		draw.CatmullRom.Scale(canvas, dst, layer, b, draw.Over, &draw.Options{
			SrcMask:  mask,
			SrcMaskP: image.Point{},
		})
	}

	if profile.ScaleX < 0 {
		mirrorX(canvas)
	}
	if profile.ScaleY < 0 {
		mirrorY(canvas)
	}
	return canvas
}

// Flatten 把图片铺到纯色背景上
func Flatten(img image.Image, background color.Color) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// Encode 以无损 WebP 编码图片
func Encode(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

func scaled(n int, s float64) int {
	return int(math.Round(float64(n) * s))
}

func mirrorX(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for l, r := b.Min.X, b.Max.X-1; l < r; l, r = l+1, r-1 {
			li, ri := img.PixOffset(l, y), img.PixOffset(r, y)
			for k := 0; k < 4; k++ {
				img.Pix[li+k], img.Pix[ri+k] = img.Pix[ri+k], img.Pix[li+k]
			}
		}
	}
}

func mirrorY(img *image.NRGBA) {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	tmp := make([]byte, rowLen)
	for t, bt := b.Min.Y, b.Max.Y-1; t < bt; t, bt = t+1, bt-1 {
		ti, bi := img.PixOffset(b.Min.X, t), img.PixOffset(b.Min.X, bt)
		copy(tmp, img.Pix[ti:ti+rowLen])
		copy(img.Pix[ti:ti+rowLen], img.Pix[bi:bi+rowLen])
		copy(img.Pix[bi:bi+rowLen], tmp)
	}
}
