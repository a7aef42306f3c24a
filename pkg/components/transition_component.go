package components

// MoveTransitionComponent 位置过渡（仅在移动动画进行中存在）
type MoveTransitionComponent struct {
	Transition *Transition[Vec2]
}

// OpacityTransitionComponent 透明度过渡（仅在淡入淡出进行中存在）
// 值域 [0, 255]，应用时四舍五入并钳制
type OpacityTransitionComponent struct {
	Transition *Transition[Scalar]
}

// ScaleTransitionComponent 缩放过渡
//
// 每个轴是一条独立的通道：
//   - X 或 Y 为 nil 表示该轴不参与过渡（保持当前值）
//   - ScaleToX 只替换 X 通道，不影响 Y 轴上正在进行的过渡
//
// 两个通道都结束后组件被移除。
type ScaleTransitionComponent struct {
	X *Transition[Scalar]
	Y *Transition[Scalar]
}

// Idle 返回两个轴是否都已空闲
func (s *ScaleTransitionComponent) Idle() bool {
	return s.X == nil && s.Y == nil
}
