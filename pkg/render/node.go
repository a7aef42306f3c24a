// Package render 提供保留模式的渲染树（场景图）
//
// 渲染树由 Node 组成：每个节点有局部变换（位置、缩放）和透明度，
// 子节点继承父节点的变换。子节点顺序即绘制顺序（索引 0 最先绘制，位于最底层）。
//
// 纸娃娃只持有自己节点的引用（组合而非继承），结构性修改（AddChild /
// RemoveChild / SetChildIndex）都在游戏主循环中顺序执行，因此不加锁。
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// FillRect 纯色矩形（用于对话框底板等无贴图的节点）
type FillRect struct {
	Width  float64
	Height float64
	Color  color.Color
}

// Node 渲染树节点
type Node struct {
	// Name 节点名称（仅用于调试和日志）
	Name string

	// X, Y 相对父节点的位置（像素）
	X, Y float64

	// ScaleX, ScaleY 缩放因子（1.0 = 原始大小）
	ScaleX, ScaleY float64

	// Alpha 透明度（0.0 ~ 1.0），与父节点透明度相乘
	Alpha float64

	// Visible 为 false 时跳过本节点及其子树
	Visible bool

	// Bitmap 贴图（可为 nil；尚未加载完成时跳过绘制）
	Bitmap *Bitmap

	// Fill 纯色矩形（可为 nil）
	Fill *FillRect

	parent   *Node
	children []*Node

	// revision 结构版本号，子节点列表每发生一次实际变化就加一
	revision uint64
}

// NewNode 创建一个空的容器节点
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
	}
}

// NewSprite 创建一个带贴图的节点
func NewSprite(name string, bitmap *Bitmap) *Node {
	n := NewNode(name)
	n.Bitmap = bitmap
	return n
}

// Parent 返回父节点（未挂载时为 nil）
func (n *Node) Parent() *Node {
	return n.parent
}

// Children 返回子节点列表
// 返回的切片是内部存储，调用方不得修改
func (n *Node) Children() []*Node {
	return n.children
}

// ChildCount 返回子节点数量
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Revision 返回结构版本号
// 用于检测某次操作是否真的改变了子节点列表
func (n *Node) Revision() uint64 {
	return n.revision
}

// ChildIndex 返回子节点索引，不是子节点时返回 -1
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AddChild 将节点追加到子节点末尾（最上层）
// 如果节点已挂在其他父节点下，会先从原父节点移除
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt 在指定索引处插入子节点
// 索引越界时钳制到 [0, ChildCount]
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.children) {
		index = len(n.children)
	}

	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.revision++
}

// RemoveChild 移除子节点
// 返回 false 表示该节点不是本节点的子节点
func (n *Node) RemoveChild(child *Node) bool {
	idx := n.ChildIndex(child)
	if idx < 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	child.parent = nil
	n.revision++
	return true
}

// RemoveFromParent 从父节点上摘除自己（未挂载时什么都不做）
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// SetChildIndex 将子节点移动到指定索引
// 索引钳制到 [0, ChildCount-1]；位置未变化时不产生结构修改
// 返回值表示是否真的发生了移动
func (n *Node) SetChildIndex(child *Node, index int) bool {
	current := n.ChildIndex(child)
	if current < 0 {
		return false
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.children)-1 {
		index = len(n.children) - 1
	}
	if index == current {
		return false
	}

	n.children = append(n.children[:current], n.children[current+1:]...)
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.revision++
	return true
}

// whitePixel 纯色矩形绘制用的 1x1 白色贴图（首次绘制时创建）
var whitePixel *ebiten.Image

// Draw 绘制本节点及其子树
//
// 参数:
//   - dst: 目标图像
//   - parent: 父节点累积变换
//   - parentAlpha: 父节点累积透明度
func (n *Node) Draw(dst *ebiten.Image, parent ebiten.GeoM, parentAlpha float64) {
	if !n.Visible {
		return
	}

	var geo ebiten.GeoM
	geo.Scale(n.ScaleX, n.ScaleY)
	geo.Translate(n.X, n.Y)
	geo.Concat(parent)
	alpha := parentAlpha * n.Alpha

	if alpha > 0 {
		if n.Fill != nil {
			if whitePixel == nil {
				whitePixel = ebiten.NewImage(1, 1)
				whitePixel.Fill(color.White)
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(n.Fill.Width, n.Fill.Height)
			op.GeoM.Concat(geo)
			op.ColorScale.ScaleWithColor(n.Fill.Color)
			op.ColorScale.ScaleAlpha(float32(alpha))
			dst.DrawImage(whitePixel, op)
		}

		if n.Bitmap != nil {
			if img := n.Bitmap.Image(); img != nil {
				op := &ebiten.DrawImageOptions{}
				op.GeoM = geo
				op.ColorScale.ScaleAlpha(float32(alpha))
				op.Filter = ebiten.FilterLinear
				dst.DrawImage(img, op)
			}
		}
	}

	for _, c := range n.children {
		c.Draw(dst, geo, alpha)
	}
}
