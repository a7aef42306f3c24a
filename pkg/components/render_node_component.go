package components

import "github.com/gonewx/paperdoll/pkg/render"

// RenderNodeComponent 纸娃娃在渲染树中的句柄
// 纸娃娃不继承任何可绘制类型，只持有根节点引用；图层节点是它的子节点
type RenderNodeComponent struct {
	Node *render.Node
}
