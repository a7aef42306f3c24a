package systems

import (
	"github.com/gonewx/paperdoll/pkg/components"
	"github.com/gonewx/paperdoll/pkg/render"
)

// 图层栈操作
//
// 所有函数都保持两个不变量：
//   - 每个图层的 Position 等于它在 Layers 中的索引
//   - 纸娃娃根节点的子节点顺序与 Layers 顺序一致
//
// 三种越界降级行为各自独立：插入越界追加到末尾，替换越界追加为新图层，删除越界为空操作。

// appendLayer 追加到最上层
func appendLayer(stack *components.LayerStackComponent, root *render.Node, layer *components.Layer) {
	layer.Position = len(stack.Layers)
	stack.Layers = append(stack.Layers, layer)
	root.AddChild(layer.Node)
}

// insertLayer 在 0 基索引处插入图层
// 有效索引为 [0, len]；越界时追加到末尾并返回 false
func insertLayer(stack *components.LayerStackComponent, root *render.Node, index int, layer *components.Layer) bool {
	if index < 0 || index > len(stack.Layers) {
		appendLayer(stack, root, layer)
		return false
	}

	stack.Layers = append(stack.Layers, nil)
	copy(stack.Layers[index+1:], stack.Layers[index:])
	stack.Layers[index] = layer
	root.AddChildAt(layer.Node, index)
	stack.Renumber()
	return true
}

// replaceLayer 按 1 基索引原地替换图层贴图，位置不变
// 越界时把新图层追加到末尾并返回 false（不视为错误）
func replaceLayer(stack *components.LayerStackComponent, root *render.Node, index1 int, layer *components.Layer) bool {
	index := index1 - 1
	if index < 0 || index >= len(stack.Layers) {
		appendLayer(stack, root, layer)
		return false
	}

	existing := stack.Layers[index]
	existing.ResourceName = layer.ResourceName
	existing.Bitmap = layer.Bitmap
	existing.Node.Bitmap = layer.Bitmap
	existing.Node.Name = layer.ResourceName
	return true
}

// removeLayer 按 1 基索引删除图层并压缩
// 越界时为空操作并返回 false
func removeLayer(stack *components.LayerStackComponent, root *render.Node, index1 int) bool {
	index := index1 - 1
	if index < 0 || index >= len(stack.Layers) {
		return false
	}

	removed := stack.Layers[index]
	root.RemoveChild(removed.Node)
	stack.Layers = append(stack.Layers[:index], stack.Layers[index+1:]...)
	stack.Renumber()
	return true
}
