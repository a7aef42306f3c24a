// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// EasingCurve 缓动曲线类型
// 曲线集合是固定的，不支持运行时注册；求值见 utils.Ease
type EasingCurve int

const (
	// EaseLinear 线性（默认，也是未知名称的回退值）
	EaseLinear EasingCurve = iota
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	EaseInCirc
	EaseOutCirc
	EaseInOutCirc
	// Back 系列会越过 [0,1] 区间（回拉效果）
	EaseInBack
	EaseOutBack
	EaseInOutBack
	// Elastic 系列会越过 [0,1] 区间（弹簧效果）
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseInBounce
	EaseOutBounce
	EaseInOutBounce

	easingCurveCount
)

var easingCurveNames = [...]string{
	EaseLinear:       "Linear",
	EaseInSine:       "InSine",
	EaseOutSine:      "OutSine",
	EaseInOutSine:    "InOutSine",
	EaseInQuad:       "InQuad",
	EaseOutQuad:      "OutQuad",
	EaseInOutQuad:    "InOutQuad",
	EaseInCubic:      "InCubic",
	EaseOutCubic:     "OutCubic",
	EaseInOutCubic:   "InOutCubic",
	EaseInQuart:      "InQuart",
	EaseOutQuart:     "OutQuart",
	EaseInOutQuart:   "InOutQuart",
	EaseInQuint:      "InQuint",
	EaseOutQuint:     "OutQuint",
	EaseInOutQuint:   "InOutQuint",
	EaseInExpo:       "InExpo",
	EaseOutExpo:      "OutExpo",
	EaseInOutExpo:    "InOutExpo",
	EaseInCirc:       "InCirc",
	EaseOutCirc:      "OutCirc",
	EaseInOutCirc:    "InOutCirc",
	EaseInBack:       "InBack",
	EaseOutBack:      "OutBack",
	EaseInOutBack:    "InOutBack",
	EaseInElastic:    "InElastic",
	EaseOutElastic:   "OutElastic",
	EaseInOutElastic: "InOutElastic",
	EaseInBounce:     "InBounce",
	EaseOutBounce:    "OutBounce",
	EaseInOutBounce:  "InOutBounce",
}

// String 返回曲线的规范名称（如 "InOutQuad"）
func (c EasingCurve) String() string {
	if c < 0 || c >= easingCurveCount {
		return "Linear"
	}
	return easingCurveNames[c]
}

// Overshoots 返回曲线在 (0,1) 区间内是否可能越界（Back / Elastic 系列）
func (c EasingCurve) Overshoots() bool {
	switch c {
	case EaseInBack, EaseOutBack, EaseInOutBack,
		EaseInElastic, EaseOutElastic, EaseInOutElastic:
		return true
	default:
		return false
	}
}

// AllEasingCurves 返回全部曲线（按定义顺序）
func AllEasingCurves() []EasingCurve {
	curves := make([]EasingCurve, 0, int(easingCurveCount))
	for c := EaseLinear; c < easingCurveCount; c++ {
		curves = append(curves, c)
	}
	return curves
}

// ParseEasingCurve 根据名称查找曲线
// 先精确匹配，再忽略大小写匹配；找不到时返回 (EaseLinear, false)
func ParseEasingCurve(name string) (EasingCurve, bool) {
	name = strings.TrimSpace(name)
	for c := EaseLinear; c < easingCurveCount; c++ {
		if easingCurveNames[c] == name {
			return c, true
		}
	}
	for c := EaseLinear; c < easingCurveCount; c++ {
		if strings.EqualFold(easingCurveNames[c], name) {
			return c, true
		}
	}
	return EaseLinear, false
}
