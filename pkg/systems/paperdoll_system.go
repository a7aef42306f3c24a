package systems

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gonewx/paperdoll/pkg/components"
	"github.com/gonewx/paperdoll/pkg/config"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/entities"
	"github.com/gonewx/paperdoll/pkg/utils"
)

// PaperdollSystem 纸娃娃注册表与逐帧驱动
//
// 职责:
//   - 按类型 ID 维护存活的纸娃娃（同一类型同时最多一个）
//   - 响应命令：显示、清除、图层操作、移动、淡入淡出、缩放、覆盖层开关
//   - 每个 tick 推进所有过渡通道，并把实体状态同步到渲染节点
//
// 所有操作都不返回错误：异常情况降级为安全的默认行为，输出日志并记录诊断。
// 系统只在主循环中使用，不加锁。
type PaperdollSystem struct {
	entityManager *ecs.EntityManager
	config        *config.PaperdollConfig
	loader        entities.BitmapLoader
	drawOrder     *DrawOrderSystem

	dolls map[int]ecs.EntityID

	// defaultOverlay 新建纸娃娃的初始覆盖层标志
	defaultOverlay bool

	diagnostics []error
}

// DollState 纸娃娃状态的只读快照
type DollState struct {
	TypeID          int
	X, Y            float64
	ScaleX, ScaleY  float64
	Opacity         uint8
	OffsetX         float64
	OffsetY         float64
	Layers          []string
	DrawOverMessage bool
	Inert           bool

	// Moving / Fading / ScalingX / ScalingY 对应通道是否处于活动状态
	Moving   bool
	Fading   bool
	ScalingX bool
	ScalingY bool
}

// NewPaperdollSystem 创建纸娃娃系统
//
// 参数:
//   - em: EntityManager 实例
//   - cfg: 纸娃娃配置
//   - loader: 图层贴图加载器
//   - drawOrder: 绘制顺序协调器（可为 nil，此时纸娃娃不挂到渲染树）
func NewPaperdollSystem(em *ecs.EntityManager, cfg *config.PaperdollConfig, loader entities.BitmapLoader, drawOrder *DrawOrderSystem) *PaperdollSystem {
	if cfg == nil {
		cfg = config.DefaultPaperdollConfig()
	}
	return &PaperdollSystem{
		entityManager: em,
		config:        cfg,
		loader:        loader,
		drawOrder:     drawOrder,
		dolls:         make(map[int]ecs.EntityID),
	}
}

// Config 返回系统使用的配置
func (s *PaperdollSystem) Config() *config.PaperdollConfig {
	return s.config
}

// SetDefaultOverlay 设置之后新建纸娃娃的初始覆盖层标志（不影响已存在的纸娃娃）
// 用于启动时从设置恢复
func (s *PaperdollSystem) SetDefaultOverlay(overlay bool) {
	s.defaultOverlay = overlay
}

// Overlay 返回当前覆盖层标志（新建纸娃娃使用的值）
func (s *PaperdollSystem) Overlay() bool {
	return s.defaultOverlay
}

// Show 显示纸娃娃
//
// 同一类型已有纸娃娃时先销毁旧的。类型未配置时创建惰性纸娃娃（之后的操作全部为空操作）。
func (s *PaperdollSystem) Show(typeID int, layerNames []string) {
	if old, ok := s.dolls[typeID]; ok {
		s.destroy(old)
		delete(s.dolls, typeID)
	}

	id, configured := entities.NewPaperdollEntity(s.entityManager, s.loader, s.config, typeID, layerNames)
	s.dolls[typeID] = id
	if !configured {
		s.warn(fmt.Errorf("Show(Type%d): %w", typeID, ErrConfigurationMissing))
		return
	}

	pd, _ := ecs.GetComponent[*components.PaperdollComponent](s.entityManager, id)
	pd.DrawOverMessage = s.defaultOverlay

	s.syncNode(id)
	if s.drawOrder != nil {
		s.drawOrder.ReconcileEntity(id)
	}
	log.Printf("[PaperdollSystem] Show Type%d with %d layers", typeID, len(layerNames))
}

// Clear 销毁纸娃娃并从注册表中移除
func (s *PaperdollSystem) Clear(typeID int) {
	id, ok := s.dolls[typeID]
	if !ok {
		s.warn(fmt.Errorf("Clear(Type%d): %w", typeID, ErrReferenceMissing))
		return
	}
	s.destroy(id)
	delete(s.dolls, typeID)
	log.Printf("[PaperdollSystem] Clear Type%d", typeID)
}

// Has 返回类型 ID 是否有存活的纸娃娃（包括惰性纸娃娃）
func (s *PaperdollSystem) Has(typeID int) bool {
	_, ok := s.dolls[typeID]
	return ok
}

// TypeIDs 返回所有存活纸娃娃的类型 ID（升序）
func (s *PaperdollSystem) TypeIDs() []int {
	ids := make([]int, 0, len(s.dolls))
	for typeID := range s.dolls {
		ids = append(ids, typeID)
	}
	sort.Ints(ids)
	return ids
}

// Update 推进一帧
//
// 按类型 ID 升序推进每个纸娃娃的移动、透明度、缩放通道，完成的通道被移除。
// 跳过的 tick 不补帧。
func (s *PaperdollSystem) Update() {
	s.entityManager.RemoveMarkedEntities()

	for _, typeID := range s.TypeIDs() {
		id := s.dolls[typeID]
		pd, ok := ecs.GetComponent[*components.PaperdollComponent](s.entityManager, id)
		if !ok || pd.Inert {
			continue
		}
		s.advanceMove(id)
		s.advanceOpacity(id)
		s.advanceScale(id)
		s.syncNode(id)
	}
}

// SetOverlayFlag 设置所有存活纸娃娃的覆盖层标志，并立即重新协调绘制顺序
// 同时成为之后新建纸娃娃的初始值，无论命令来自快捷键、脚本还是 MQTT
func (s *PaperdollSystem) SetOverlayFlag(overlay bool) {
	s.defaultOverlay = overlay
	for _, typeID := range s.TypeIDs() {
		id := s.dolls[typeID]
		pd, ok := ecs.GetComponent[*components.PaperdollComponent](s.entityManager, id)
		if !ok || pd.Inert {
			continue
		}
		pd.DrawOverMessage = overlay
		if s.drawOrder != nil {
			s.drawOrder.ReconcileEntity(id)
		}
	}
}

// Snapshot 返回纸娃娃的只读状态
func (s *PaperdollSystem) Snapshot(typeID int) (DollState, bool) {
	id, ok := s.dolls[typeID]
	if !ok {
		return DollState{}, false
	}
	em := s.entityManager

	pd, ok := ecs.GetComponent[*components.PaperdollComponent](em, id)
	if !ok {
		return DollState{}, false
	}
	state := DollState{
		TypeID:          pd.TypeID,
		OffsetX:         pd.OffsetX,
		OffsetY:         pd.OffsetY,
		DrawOverMessage: pd.DrawOverMessage,
		Inert:           pd.Inert,
	}
	if pd.Inert {
		return state, true
	}

	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		state.X, state.Y = pos.X, pos.Y
	}
	if sc, ok := ecs.GetComponent[*components.ScaleComponent](em, id); ok {
		state.ScaleX, state.ScaleY = sc.ScaleX, sc.ScaleY
	}
	if op, ok := ecs.GetComponent[*components.OpacityComponent](em, id); ok {
		state.Opacity = op.Opacity
	}
	if stack, ok := ecs.GetComponent[*components.LayerStackComponent](em, id); ok {
		state.Layers = stack.ResourceNames()
	}
	state.Moving = ecs.HasComponent[*components.MoveTransitionComponent](em, id)
	state.Fading = ecs.HasComponent[*components.OpacityTransitionComponent](em, id)
	if st, ok := ecs.GetComponent[*components.ScaleTransitionComponent](em, id); ok {
		state.ScalingX = st.X != nil
		state.ScalingY = st.Y != nil
	}
	return state, true
}

// Diagnostics 返回最近的诊断记录（按发生顺序）
func (s *PaperdollSystem) Diagnostics() []error {
	out := make([]error, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// warn 输出警告并记录诊断
func (s *PaperdollSystem) warn(err error) {
	log.Printf("[PaperdollSystem] Warning: %v", err)
	s.diagnostics = append(s.diagnostics, err)
	if len(s.diagnostics) > maxDiagnostics {
		s.diagnostics = s.diagnostics[len(s.diagnostics)-maxDiagnostics:]
	}
}

// live 查找可操作的纸娃娃
// 没有存活纸娃娃时记录 ErrReferenceMissing；惰性纸娃娃静默跳过
func (s *PaperdollSystem) live(op string, typeID int) (ecs.EntityID, *components.PaperdollComponent, bool) {
	id, ok := s.dolls[typeID]
	if !ok {
		s.warn(fmt.Errorf("%s(Type%d): %w", op, typeID, ErrReferenceMissing))
		return 0, nil, false
	}
	pd, ok := ecs.GetComponent[*components.PaperdollComponent](s.entityManager, id)
	if !ok || pd.Inert {
		return 0, nil, false
	}
	return id, pd, true
}

// destroy 把节点从渲染树摘下并标记实体删除
func (s *PaperdollSystem) destroy(id ecs.EntityID) {
	if rn, ok := ecs.GetComponent[*components.RenderNodeComponent](s.entityManager, id); ok && rn.Node != nil {
		rn.Node.RemoveFromParent()
	}
	ecs.RemoveComponent[*components.RenderNodeComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
}

// syncNode 把位置、缩放、透明度写入渲染节点
func (s *PaperdollSystem) syncNode(id ecs.EntityID) {
	em := s.entityManager
	rn, ok := ecs.GetComponent[*components.RenderNodeComponent](em, id)
	if !ok || rn.Node == nil {
		return
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		rn.Node.X, rn.Node.Y = pos.X, pos.Y
	}
	if sc, ok := ecs.GetComponent[*components.ScaleComponent](em, id); ok {
		rn.Node.ScaleX, rn.Node.ScaleY = sc.ScaleX, sc.ScaleY
	}
	if op, ok := ecs.GetComponent[*components.OpacityComponent](em, id); ok {
		rn.Node.Alpha = op.Alpha()
	}
}

// toOpacity 四舍五入并钳制到 [0, 255]
func toOpacity(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(utils.Clamp(v, 0, 255)))
}
