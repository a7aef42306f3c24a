package components

import "github.com/gonewx/paperdoll/pkg/render"

// Layer 纸娃娃的一个图层
//
// 图层身份是位置性的：插入或删除会使后续图层的 Position 整体移动。
// 资源可以原地替换（Bitmap 换新），位置不变。
type Layer struct {
	// ResourceName 图片资源名（不含 .png 后缀）
	ResourceName string

	// Position 在图层栈中的索引，0 为最底层
	Position int

	// Bitmap 异步加载的贴图
	Bitmap *render.Bitmap

	// Node 图层在渲染树中的节点（纸娃娃根节点的子节点）
	Node *render.Node
}

// LayerStackComponent 有序图层栈
// Layers 的顺序即渲染顺序（索引 0 最先绘制）
type LayerStackComponent struct {
	Layers []*Layer
}

// ResourceNames 按渲染顺序返回所有图层的资源名
func (s *LayerStackComponent) ResourceNames() []string {
	names := make([]string, len(s.Layers))
	for i, l := range s.Layers {
		names[i] = l.ResourceName
	}
	return names
}

// Renumber 重新编号所有图层的 Position
func (s *LayerStackComponent) Renumber() {
	for i, l := range s.Layers {
		l.Position = i
	}
}
