package systems

import (
	"github.com/gonewx/paperdoll/pkg/components"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/types"
)

// SlideDistance 滑入滑出的水平位移（像素）
const SlideDistance = 20.0

// SlideDirection 滑动方向
type SlideDirection int

const (
	// SlideNone 原地淡入淡出
	SlideNone SlideDirection = iota
	// SlideLeft 从左侧滑入 / 向左滑出
	SlideLeft
	// SlideRight 从右侧滑入 / 向右滑出
	SlideRight
)

// dx 返回方向对应的水平位移
func (d SlideDirection) dx() float64 {
	switch d {
	case SlideLeft:
		return -SlideDistance
	case SlideRight:
		return SlideDistance
	default:
		return 0
	}
}

// MoveBy 相对移动
//
// 目标位置 = 类型默认位置 + (累计偏移 + (dx, dy))。累计偏移立即更新，
// 不等待动画结束，所以连续的相对移动是叠加的。
// durationFrames <= 0 时立即到达目标；未知曲线名按 Linear 处理。
func (s *PaperdollSystem) MoveBy(typeID int, dx, dy float64, durationFrames int, curveName string) {
	id, pd, ok := s.live("MoveBy", typeID)
	if !ok {
		return
	}
	curve, found := types.ParseEasingCurve(curveName)
	if !found {
		curve = types.EaseLinear
	}
	s.moveBy(id, pd, dx, dy, durationFrames, curve)
}

func (s *PaperdollSystem) moveBy(id ecs.EntityID, pd *components.PaperdollComponent, dx, dy float64, durationFrames int, curve types.EasingCurve) {
	em := s.entityManager
	profile, _ := s.config.ProfileFor(pd.TypeID)
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return
	}

	target := components.Vec2{
		X: profile.DefaultX + (pd.OffsetX + dx),
		Y: profile.DefaultY + (pd.OffsetY + dy),
	}
	pd.OffsetX += dx
	pd.OffsetY += dy

	tr := components.StartTransition(components.Vec2{X: pos.X, Y: pos.Y}, target, durationFrames, curve)
	if tr == nil {
		pos.X, pos.Y = target.X, target.Y
		ecs.RemoveComponent[*components.MoveTransitionComponent](em, id)
	} else {
		ecs.AddComponent(em, id, &components.MoveTransitionComponent{Transition: tr})
	}
	s.syncNode(id)
}

// FadeTo 透明度过渡到目标值（钳制到 [0, 255]，线性）
func (s *PaperdollSystem) FadeTo(typeID int, opacity float64, durationFrames int) {
	id, _, ok := s.live("FadeTo", typeID)
	if !ok {
		return
	}
	s.fadeTo(id, opacity, durationFrames)
}

// OpacityBy 透明度相对变化，目标 = 当前值 + delta（钳制到 [0, 255]）
func (s *PaperdollSystem) OpacityBy(typeID int, delta float64, durationFrames int) {
	id, _, ok := s.live("OpacityBy", typeID)
	if !ok {
		return
	}
	op, ok := ecs.GetComponent[*components.OpacityComponent](s.entityManager, id)
	if !ok {
		return
	}
	s.fadeTo(id, float64(op.Opacity)+delta, durationFrames)
}

func (s *PaperdollSystem) fadeTo(id ecs.EntityID, opacity float64, durationFrames int) {
	em := s.entityManager
	op, ok := ecs.GetComponent[*components.OpacityComponent](em, id)
	if !ok {
		return
	}

	target := toOpacity(opacity)
	tr := components.StartTransition(components.Scalar(op.Opacity), components.Scalar(target), durationFrames, types.EaseLinear)
	if tr == nil {
		op.Opacity = target
		ecs.RemoveComponent[*components.OpacityTransitionComponent](em, id)
	} else {
		ecs.AddComponent(em, id, &components.OpacityTransitionComponent{Transition: tr})
	}
	s.syncNode(id)
}

// ScaleTo 两个轴同时缩放到目标值
func (s *PaperdollSystem) ScaleTo(typeID int, sx, sy float64, durationFrames int) {
	id, _, ok := s.live("ScaleTo", typeID)
	if !ok {
		return
	}
	s.scaleAxis(id, true, sx, durationFrames)
	s.scaleAxis(id, false, sy, durationFrames)
}

// ScaleToX 只缩放 X 轴，Y 轴的当前值和进行中的过渡不受影响
func (s *PaperdollSystem) ScaleToX(typeID int, sx float64, durationFrames int) {
	id, _, ok := s.live("ScaleToX", typeID)
	if !ok {
		return
	}
	s.scaleAxis(id, true, sx, durationFrames)
}

// ScaleToY 只缩放 Y 轴
func (s *PaperdollSystem) ScaleToY(typeID int, sy float64, durationFrames int) {
	id, _, ok := s.live("ScaleToY", typeID)
	if !ok {
		return
	}
	s.scaleAxis(id, false, sy, durationFrames)
}

// ScaleBy 两个轴相对缩放，目标 = 当前值 + delta
func (s *PaperdollSystem) ScaleBy(typeID int, dsx, dsy float64, durationFrames int) {
	id, _, ok := s.live("ScaleBy", typeID)
	if !ok {
		return
	}
	sc, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id)
	if !ok {
		return
	}
	tx, ty := sc.ScaleX+dsx, sc.ScaleY+dsy
	s.scaleAxis(id, true, tx, durationFrames)
	s.scaleAxis(id, false, ty, durationFrames)
}

// ScaleByX X 轴相对缩放
func (s *PaperdollSystem) ScaleByX(typeID int, dsx float64, durationFrames int) {
	id, _, ok := s.live("ScaleByX", typeID)
	if !ok {
		return
	}
	if sc, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
		s.scaleAxis(id, true, sc.ScaleX+dsx, durationFrames)
	}
}

// ScaleByY Y 轴相对缩放
func (s *PaperdollSystem) ScaleByY(typeID int, dsy float64, durationFrames int) {
	id, _, ok := s.live("ScaleByY", typeID)
	if !ok {
		return
	}
	if sc, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
		s.scaleAxis(id, false, sc.ScaleY+dsy, durationFrames)
	}
}

// scaleAxis 替换一个轴的缩放通道（缩放过渡使用线性曲线）
func (s *PaperdollSystem) scaleAxis(id ecs.EntityID, xAxis bool, target float64, durationFrames int) {
	em := s.entityManager
	sc, ok := ecs.GetComponent[*components.ScaleComponent](em, id)
	if !ok {
		return
	}

	current := sc.ScaleY
	if xAxis {
		current = sc.ScaleX
	}
	tr := components.StartTransition(components.Scalar(current), components.Scalar(target), durationFrames, types.EaseLinear)
	if tr == nil {
		if xAxis {
			sc.ScaleX = target
		} else {
			sc.ScaleY = target
		}
	}

	st, exists := ecs.GetComponent[*components.ScaleTransitionComponent](em, id)
	if !exists {
		if tr == nil {
			s.syncNode(id)
			return
		}
		st = &components.ScaleTransitionComponent{}
		ecs.AddComponent(em, id, st)
	}
	if xAxis {
		st.X = tr
	} else {
		st.Y = tr
	}
	if st.Idle() {
		ecs.RemoveComponent[*components.ScaleTransitionComponent](em, id)
	}
	s.syncNode(id)
}

// SlideIn 滑入：先瞬移到默认位置 + dx 且完全透明，再用 OutQuad 移回默认位置并淡入到 255
// 累计偏移被重置为 (dx, 0)
func (s *PaperdollSystem) SlideIn(typeID int, dir SlideDirection, durationFrames int) {
	id, pd, ok := s.live("SlideIn", typeID)
	if !ok {
		return
	}
	em := s.entityManager
	profile, _ := s.config.ProfileFor(pd.TypeID)
	dx := dir.dx()

	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		pos.X = profile.DefaultX + dx
		pos.Y = profile.DefaultY
	}
	if op, ok := ecs.GetComponent[*components.OpacityComponent](em, id); ok {
		op.Opacity = 0
	}
	pd.OffsetX = dx
	pd.OffsetY = 0

	s.moveBy(id, pd, -dx, 0, durationFrames, types.EaseOutQuad)
	s.fadeTo(id, 255, durationFrames)
}

// SlideOut 滑出：用 OutQuad 移动 dx 并淡出到 0
func (s *PaperdollSystem) SlideOut(typeID int, dir SlideDirection, durationFrames int) {
	id, pd, ok := s.live("SlideOut", typeID)
	if !ok {
		return
	}
	s.moveBy(id, pd, dir.dx(), 0, durationFrames, types.EaseOutQuad)
	s.fadeTo(id, 0, durationFrames)
}

// advanceMove 推进移动通道
func (s *PaperdollSystem) advanceMove(id ecs.EntityID) {
	em := s.entityManager
	mt, ok := ecs.GetComponent[*components.MoveTransitionComponent](em, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return
	}
	v, done := mt.Transition.Advance()
	pos.X, pos.Y = v.X, v.Y
	if done {
		ecs.RemoveComponent[*components.MoveTransitionComponent](em, id)
	}
}

// advanceOpacity 推进透明度通道
func (s *PaperdollSystem) advanceOpacity(id ecs.EntityID) {
	em := s.entityManager
	ot, ok := ecs.GetComponent[*components.OpacityTransitionComponent](em, id)
	if !ok {
		return
	}
	op, ok := ecs.GetComponent[*components.OpacityComponent](em, id)
	if !ok {
		return
	}
	v, done := ot.Transition.Advance()
	op.Opacity = toOpacity(float64(v))
	if done {
		ecs.RemoveComponent[*components.OpacityTransitionComponent](em, id)
	}
}

// advanceScale 推进缩放通道（两个轴独立）
func (s *PaperdollSystem) advanceScale(id ecs.EntityID) {
	em := s.entityManager
	st, ok := ecs.GetComponent[*components.ScaleTransitionComponent](em, id)
	if !ok {
		return
	}
	sc, ok := ecs.GetComponent[*components.ScaleComponent](em, id)
	if !ok {
		return
	}
	if st.X != nil {
		v, done := st.X.Advance()
		sc.ScaleX = float64(v)
		if done {
			st.X = nil
		}
	}
	if st.Y != nil {
		v, done := st.Y.Advance()
		sc.ScaleY = float64(v)
		if done {
			st.Y = nil
		}
	}
	if st.Idle() {
		ecs.RemoveComponent[*components.ScaleTransitionComponent](em, id)
	}
}
