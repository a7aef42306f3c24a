package utils

import (
	"github.com/fogleman/ease"

	"github.com/gonewx/paperdoll/pkg/types"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制过渡动画的速度曲线，使动画看起来更自然。
// 所有曲线接受进度值 t ∈ [0, 1]，返回缓动后的值；
// Back / Elastic 系列在区间内部会越过 [0, 1]，但端点仍为 0 和 1（近似）。
//
// 曲线本体来自 github.com/fogleman/ease（Robert Penner 公式），
// 这里只负责从固定枚举到函数的分发，没有任何内部状态。
// Elastic 使用 easings.net 的周期（0.3 / 0.45），Bounce 使用 easings.net 的分段抛物线。
//
// 参考：https://easings.net/

// Elastic 曲线，周期与 easings.net 一致
var (
	inElastic    = pinEnds(ease.InElasticFunction(0.3))
	outElastic   = pinEnds(ease.OutElasticFunction(0.3))
	inOutElastic = pinEnds(ease.InOutElasticFunction(0.45))
)

// pinEnds 让 t<=0 精确返回 0，t>=1 精确返回 1
// Elastic 公式在端点只是近似值
func pinEnds(f ease.Function) ease.Function {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return f(t)
	}
}

// Bounce 分段抛物线常量
const (
	bounceN1 = 7.5625
	bounceD1 = 2.75
)

// outBounce 四段抛物线，落点依次为 0.75 / 0.9375 / 0.984375
func outBounce(t float64) float64 {
	switch {
	case t < 1/bounceD1:
		return bounceN1 * t * t
	case t < 2/bounceD1:
		t -= 1.5 / bounceD1
		return bounceN1*t*t + 0.75
	case t < 2.5/bounceD1:
		t -= 2.25 / bounceD1
		return bounceN1*t*t + 0.9375
	default:
		t -= 2.625 / bounceD1
		return bounceN1*t*t + 0.984375
	}
}

func inBounce(t float64) float64 {
	return 1 - outBounce(1-t)
}

func inOutBounce(t float64) float64 {
	if t < 0.5 {
		return (1 - outBounce(1-2*t)) / 2
	}
	return (1 + outBounce(2*t-1)) / 2
}

// Ease 对指定曲线求值
// 未知曲线回退为线性（恒等），永不失败
func Ease(curve types.EasingCurve, t float64) float64 {
	switch curve {
	case types.EaseInSine:
		return ease.InSine(t)
	case types.EaseOutSine:
		return ease.OutSine(t)
	case types.EaseInOutSine:
		return ease.InOutSine(t)
	case types.EaseInQuad:
		return ease.InQuad(t)
	case types.EaseOutQuad:
		return ease.OutQuad(t)
	case types.EaseInOutQuad:
		return ease.InOutQuad(t)
	case types.EaseInCubic:
		return ease.InCubic(t)
	case types.EaseOutCubic:
		return ease.OutCubic(t)
	case types.EaseInOutCubic:
		return ease.InOutCubic(t)
	case types.EaseInQuart:
		return ease.InQuart(t)
	case types.EaseOutQuart:
		return ease.OutQuart(t)
	case types.EaseInOutQuart:
		return ease.InOutQuart(t)
	case types.EaseInQuint:
		return ease.InQuint(t)
	case types.EaseOutQuint:
		return ease.OutQuint(t)
	case types.EaseInOutQuint:
		return ease.InOutQuint(t)
	case types.EaseInExpo:
		return ease.InExpo(t)
	case types.EaseOutExpo:
		return ease.OutExpo(t)
	case types.EaseInOutExpo:
		return ease.InOutExpo(t)
	case types.EaseInCirc:
		return ease.InCirc(t)
	case types.EaseOutCirc:
		return ease.OutCirc(t)
	case types.EaseInOutCirc:
		return ease.InOutCirc(t)
	case types.EaseInBack:
		return ease.InBack(t)
	case types.EaseOutBack:
		return ease.OutBack(t)
	case types.EaseInOutBack:
		return ease.InOutBack(t)
	case types.EaseInElastic:
		return inElastic(t)
	case types.EaseOutElastic:
		return outElastic(t)
	case types.EaseInOutElastic:
		return inOutElastic(t)
	case types.EaseInBounce:
		return inBounce(t)
	case types.EaseOutBounce:
		return outBounce(t)
	case types.EaseInOutBounce:
		return inOutBounce(t)
	default:
		return ease.Linear(t)
	}
}

// EaseByName 按名称求值（如 "OutQuad"）
// 未知名称回退为线性
func EaseByName(name string, t float64) float64 {
	curve, _ := types.ParseEasingCurve(name)
	return Ease(curve, t)
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [min, max] 区间内
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
