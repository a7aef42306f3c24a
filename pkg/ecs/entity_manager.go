// Package ecs 提供纸娃娃引擎使用的极简实体-组件存储
//
// 每个纸娃娃（Doll）是一个实体，位置、透明度、缩放、图层栈和过渡动画都作为组件挂在实体上。
// 系统（systems 包）负责读取和修改这些组件。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效 ID
type EntityID uint64

// componentSet 单个实体的组件表，每种类型最多一个
type componentSet map[reflect.Type]interface{}

// EntityManager 管理所有实体和组件
//
// 非线程安全：所有调用都应来自游戏主循环（单线程、按 tick 推进）。
// 销毁分两步：DestroyEntity 只做标记，RemoveMarkedEntities 在帧首统一清理，
// 这样系统在一帧内遍历实体时不会遇到被中途删除的组件表。
type EntityManager struct {
	lastID     EntityID
	components map[EntityID]componentSet

	// pending 已标记、尚未清理的实体
	pending map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		components: make(map[EntityID]componentSet),
		pending:    make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID（从 1 开始递增，不复用）
func (em *EntityManager) CreateEntity() EntityID {
	em.lastID++
	em.components[em.lastID] = make(componentSet)
	return em.lastID
}

// IsAlive 检查实体是否存在（已标记删除但尚未清理的实体仍视为存在）
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// IsPendingDestroy 检查实体是否已被标记删除
func (em *EntityManager) IsPendingDestroy(id EntityID) bool {
	_, ok := em.pending[id]
	return ok
}

// DestroyEntity 标记实体待删除（不立即删除），重复标记是安全的
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.components[id]; ok {
		em.pending[id] = struct{}{}
	}
}

// AddComponent 为实体添加组件
// 同类型组件会被覆盖；实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if set, ok := em.components[id]; ok {
		set[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if set, ok := em.components[id]; ok {
		delete(set, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	comp, ok := em.components[id][componentType]
	return comp, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.components[id][componentType]
	return ok
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for id := range em.pending {
		delete(em.components, id)
		delete(em.pending, id)
	}
}

// EntityCount 返回当前存在的实体数量（包括已标记、尚未清理的）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 返回结果按 EntityID 升序排列，保证每帧的处理顺序是确定的
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	var result []EntityID
next:
	for id, set := range em.components {
		for _, ct := range componentTypes {
			if _, ok := set[ct]; !ok {
				continue next
			}
		}
		result = append(result, id)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
