package components

import (
	"math"

	"github.com/gonewx/paperdoll/pkg/types"
	"github.com/gonewx/paperdoll/pkg/utils"
)

// Interpolatable 可插值的值类型
// Lerp 在 t=0 返回接收者本身，t=1 返回 to；t 可以越过 [0,1]（Back/Elastic 曲线）
type Interpolatable[T any] interface {
	Lerp(to T, t float64) T
}

// Scalar 标量值（透明度、单轴缩放）
type Scalar float64

// Lerp 实现 Interpolatable
func (s Scalar) Lerp(to Scalar, t float64) Scalar {
	return Scalar(utils.Lerp(float64(s), float64(to), t))
}

// Vec2 二维向量（位置）
// 两个分量使用同一个进度值和同一条曲线独立插值
type Vec2 struct {
	X, Y float64
}

// Lerp 实现 Interpolatable
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{
		X: utils.Lerp(v.X, to.X, t),
		Y: utils.Lerp(v.Y, to.Y, t),
	}
}

// Transition 单个属性的逐帧插值状态机（通道）
//
// 生命周期:
//  1. NewTransition 以属性的“当前值”作为 Start（而非默认值），保证中途重启时不会回跳
//  2. 每个 tick 调用一次 Advance，ElapsedFrames 单调递增
//  3. ElapsedFrames > DurationFrames 时完成，调用方把属性硬设为 End 并丢弃通道
//
// 同一属性发起新过渡时直接替换旧通道（后写者胜，无排队）。
type Transition[T Interpolatable[T]] struct {
	// Start 起始值（创建时的当前值）
	Start T

	// End 目标值
	End T

	// DurationFrames 总帧数（> 0）
	DurationFrames uint32

	// ElapsedFrames 已推进帧数
	ElapsedFrames uint32

	// Curve 缓动曲线
	Curve types.EasingCurve
}

// MaxTransitionFrames 单个通道的最大时长
// 留出一帧余量，ElapsedFrames 超过时长时不会回绕
const MaxTransitionFrames = math.MaxUint32 - 1

// NewTransition 创建过渡通道
// durationFrames <= 0 时返回 nil：调用方应立即同步应用 end，属性保持空闲
// 超过 MaxTransitionFrames 的时长被截断
func NewTransition[T Interpolatable[T]](start, end T, durationFrames int, curve types.EasingCurve) *Transition[T] {
	if durationFrames <= 0 {
		return nil
	}
	d := uint64(durationFrames)
	if d > MaxTransitionFrames {
		d = MaxTransitionFrames
	}
	return &Transition[T]{
		Start:          start,
		End:            end,
		DurationFrames: uint32(d),
		Curve:          curve,
	}
}

// StartTransition 创建通道并在发起调用中消耗第 0 帧
//
// 第 0 帧的值恰好是 start，所以发起调用不会改变属性；之后第 k 个 tick 使用 t=k/d，
// 第 d 个 tick 把属性设为 End 并完成。durationFrames <= 0 时返回 nil。
func StartTransition[T Interpolatable[T]](start, end T, durationFrames int, curve types.EasingCurve) *Transition[T] {
	tr := NewTransition(start, end, durationFrames, curve)
	if tr != nil {
		tr.Advance()
	}
	return tr
}

// Advance 推进一帧
//
// 进度使用递增前的 ElapsedFrames 计算：t = min(Elapsed/Duration, 1)，
// 因此第 0 帧的值恰好是 Start，第 Duration 帧的值由 t=1.0 计算。
// 返回 complete=true 时 value 恰好等于 End（覆盖曲线越界和浮点误差）。
func (tr *Transition[T]) Advance() (value T, complete bool) {
	t := float64(tr.ElapsedFrames) / float64(tr.DurationFrames)
	if t > 1 {
		t = 1
	}
	value = tr.Start.Lerp(tr.End, utils.Ease(tr.Curve, t))

	tr.ElapsedFrames++
	if tr.ElapsedFrames > tr.DurationFrames {
		return tr.End, true
	}
	return value, false
}

// Progress 返回线性进度（0.0 ~ 1.0），用于调试显示
func (tr *Transition[T]) Progress() float64 {
	if tr.DurationFrames == 0 {
		return 1
	}
	p := float64(tr.ElapsedFrames) / float64(tr.DurationFrames)
	if p > 1 {
		return 1
	}
	return p
}
