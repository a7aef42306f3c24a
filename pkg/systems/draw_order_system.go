package systems

import (
	"sort"

	"github.com/gonewx/paperdoll/pkg/components"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/render"
)

// DrawOrderSystem 绘制顺序协调器
//
// 根据纸娃娃的 DrawOverMessage 标志决定它挂在哪个父容器下：
//   - false: 主场景层（对话框之下）
//   - true:  覆盖层容器，紧贴在锚点（对话框）之上，仍位于后续兄弟节点之下
//
// 多个纸娃娃同时位于覆盖层时，它们组成锚点之上的一段连续区块，
// 区块内部的相对顺序保持不变。
//
// 协调是幂等的：状态不变时重复调用不会产生任何结构修改。
type DrawOrderSystem struct {
	entityManager *ecs.EntityManager
	host          render.Host
}

// NewDrawOrderSystem 创建绘制顺序协调器
func NewDrawOrderSystem(em *ecs.EntityManager, host render.Host) *DrawOrderSystem {
	return &DrawOrderSystem{
		entityManager: em,
		host:          host,
	}
}

// Update 每帧为所有纸娃娃执行一次协调（按类型 ID 升序）
func (ds *DrawOrderSystem) Update() {
	for _, id := range ds.dollEntities() {
		ds.ReconcileEntity(id)
	}
}

// ReconcileEntity 协调单个纸娃娃实体
func (ds *DrawOrderSystem) ReconcileEntity(id ecs.EntityID) {
	pd, ok := ecs.GetComponent[*components.PaperdollComponent](ds.entityManager, id)
	if !ok || pd.Inert {
		return
	}
	rn, ok := ecs.GetComponent[*components.RenderNodeComponent](ds.entityManager, id)
	if !ok || rn.Node == nil {
		return
	}
	ds.Reconcile(rn.Node, pd.DrawOverMessage)
}

// Reconcile 把节点放到正确的父容器和兄弟索引
//
// 返回是否发生了结构修改。
func (ds *DrawOrderSystem) Reconcile(node *render.Node, overlay bool) bool {
	if ds.host == nil || node == nil {
		return false
	}

	target := ds.host.PrimaryLayer()
	if overlay {
		target = ds.host.OverlayContainer()
	}
	if target == nil {
		return false
	}

	changed := false
	if node.Parent() != target {
		target.AddChild(node)
		changed = true
	}

	if !overlay {
		return changed
	}

	anchor := ds.host.OverlayAnchor()
	if anchor == nil {
		return changed
	}
	anchorIdx := target.ChildIndex(anchor)
	if anchorIdx < 0 {
		return changed
	}

	if ds.inDollBlockAbove(target, anchorIdx, node) {
		return changed
	}

	// SetChildIndex 先移除再插入：节点在锚点之下时，移除后锚点索引减一
	index := anchorIdx + 1
	if target.ChildIndex(node) < anchorIdx {
		index = anchorIdx
	}
	if target.SetChildIndex(node, index) {
		changed = true
	}
	return changed
}

// inDollBlockAbove 判断 node 是否位于锚点之上、只由纸娃娃节点组成的连续区块中
func (ds *DrawOrderSystem) inDollBlockAbove(parent *render.Node, anchorIdx int, node *render.Node) bool {
	dolls := ds.dollNodes()
	children := parent.Children()
	for i := anchorIdx + 1; i < len(children); i++ {
		c := children[i]
		if c == node {
			return true
		}
		if !dolls[c] {
			return false
		}
	}
	return false
}

// dollNodes 返回所有纸娃娃根节点的集合
func (ds *DrawOrderSystem) dollNodes() map[*render.Node]bool {
	ids := ecs.GetEntitiesWith1[*components.RenderNodeComponent](ds.entityManager)
	set := make(map[*render.Node]bool, len(ids))
	for _, id := range ids {
		if !ecs.HasComponent[*components.PaperdollComponent](ds.entityManager, id) {
			continue
		}
		if rn, ok := ecs.GetComponent[*components.RenderNodeComponent](ds.entityManager, id); ok && rn.Node != nil {
			set[rn.Node] = true
		}
	}
	return set
}

// dollEntities 返回所有未被标记删除的纸娃娃实体，按类型 ID 升序
func (ds *DrawOrderSystem) dollEntities() []ecs.EntityID {
	all := ecs.GetEntitiesWith2[*components.PaperdollComponent, *components.RenderNodeComponent](ds.entityManager)
	ids := all[:0]
	typeOf := make(map[ecs.EntityID]int, len(all))
	for _, id := range all {
		if ds.entityManager.IsPendingDestroy(id) {
			continue
		}
		pd, _ := ecs.GetComponent[*components.PaperdollComponent](ds.entityManager, id)
		typeOf[id] = pd.TypeID
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return typeOf[ids[i]] < typeOf[ids[j]]
	})
	return ids
}
