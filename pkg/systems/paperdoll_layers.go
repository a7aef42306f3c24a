package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/paperdoll/pkg/components"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/entities"
	"github.com/gonewx/paperdoll/pkg/render"
)

// layerTarget 返回纸娃娃的图层栈和根节点
func (s *PaperdollSystem) layerTarget(op string, typeID int) (*components.LayerStackComponent, *render.Node, bool) {
	id, _, ok := s.live(op, typeID)
	if !ok {
		return nil, nil, false
	}
	stack, ok := ecs.GetComponent[*components.LayerStackComponent](s.entityManager, id)
	if !ok {
		return nil, nil, false
	}
	rn, ok := ecs.GetComponent[*components.RenderNodeComponent](s.entityManager, id)
	if !ok || rn.Node == nil {
		return nil, nil, false
	}
	return stack, rn.Node, true
}

func (s *PaperdollSystem) newLayer(name string) *components.Layer {
	return entities.NewLayer(s.loader, s.config.ImageDir, name)
}

// AddLayer 在最上层追加图层
func (s *PaperdollSystem) AddLayer(typeID int, name string) {
	stack, root, ok := s.layerTarget("AddLayer", typeID)
	if !ok {
		return
	}
	appendLayer(stack, root, s.newLayer(name))
}

// InsertLayer 在 0 基索引处插入图层
// 有效索引为 [0, 图层数]，越界时追加到末尾并记录 ErrIndexOutOfRange
func (s *PaperdollSystem) InsertLayer(typeID, index int, name string) {
	stack, root, ok := s.layerTarget("InsertLayer", typeID)
	if !ok {
		return
	}
	if !insertLayer(stack, root, index, s.newLayer(name)) {
		s.warn(fmt.Errorf("InsertLayer(Type%d, %d): %w, appended at the end", typeID, index, ErrIndexOutOfRange))
	}
}

// ReplaceLayer 按 1 基索引原地替换图层资源
// 越界时把资源追加为新图层，只输出日志，不记录诊断
func (s *PaperdollSystem) ReplaceLayer(typeID, index1 int, name string) {
	stack, root, ok := s.layerTarget("ReplaceLayer", typeID)
	if !ok {
		return
	}
	if !replaceLayer(stack, root, index1, s.newLayer(name)) {
		log.Printf("[PaperdollSystem] ReplaceLayer(Type%d, %d): index out of range, appended %q as layer %d",
			typeID, index1, name, len(stack.Layers))
	}
}

// RemoveLayer 按 1 基索引删除图层
// 越界时为空操作并记录 ErrIndexOutOfRange
func (s *PaperdollSystem) RemoveLayer(typeID, index1 int) {
	stack, root, ok := s.layerTarget("RemoveLayer", typeID)
	if !ok {
		return
	}
	if !removeLayer(stack, root, index1) {
		s.warn(fmt.Errorf("RemoveLayer(Type%d, %d): %w (have %d layers)", typeID, index1, ErrIndexOutOfRange, len(stack.Layers)))
	}
}
