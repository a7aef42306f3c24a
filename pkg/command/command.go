// Package command 把文本命令映射为纸娃娃系统的操作
//
// 命令来源（脚本文件、MQTT 消息）都先被解析为带类型负载的 Command，
// 再由 Dispatcher 通过一个 switch 调用 systems.PaperdollSystem。
// 参数默认值（时长缺省时使用全局默认时长等）在解析阶段处理。
package command

import "errors"

// Kind 命令类型（封闭枚举）
type Kind int

const (
	KindShow Kind = iota
	KindClear
	KindUpdateLayer
	KindAddLayer
	KindInsertLayerAt
	KindRemoveLayer
	KindMove
	KindFadeIn
	KindFadeOut
	KindOpacityBy
	KindOpacityTo
	KindSlideIn
	KindSlideInFromLeft
	KindSlideInFromRight
	KindSlideOut
	KindSlideOutToLeft
	KindSlideOutToRight
	KindScaleTo
	KindScaleToX
	KindScaleToY
	KindScaleBy
	KindScaleByX
	KindScaleByY
	KindSetOverlayFlag

	kindCount
)

var kindNames = [kindCount]string{
	KindShow:             "ShowPaperdoll",
	KindClear:            "ClearPaperdoll",
	KindUpdateLayer:      "UpdatePaperdoll",
	KindAddLayer:         "AddPaperdollLayer",
	KindInsertLayerAt:    "InsertLayerAt",
	KindRemoveLayer:      "RemovePaperdollLayer",
	KindMove:             "MovePaperdoll",
	KindFadeIn:           "FadeIn",
	KindFadeOut:          "FadeOut",
	KindOpacityBy:        "OpacityBy",
	KindOpacityTo:        "OpacityTo",
	KindSlideIn:          "SlideIn",
	KindSlideInFromLeft:  "SlideInFromLeft",
	KindSlideInFromRight: "SlideInFromRight",
	KindSlideOut:         "SlideOut",
	KindSlideOutToLeft:   "SlideOutToLeft",
	KindSlideOutToRight:  "SlideOutToRight",
	KindScaleTo:          "ScaleTo",
	KindScaleToX:         "ScaleToX",
	KindScaleToY:         "ScaleToY",
	KindScaleBy:          "ScaleBy",
	KindScaleByX:         "ScaleByX",
	KindScaleByY:         "ScaleByY",
	KindSetOverlayFlag:   "SetOverlayFlag",
}

// String 返回命令的规范名称
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Command 一条已解析的命令
// 每种 Kind 只使用与之相关的字段
type Command struct {
	Kind   Kind
	TypeID int

	// Layers Show 的图层列表
	Layers []string

	// Layer 图层资源名（UpdateLayer / AddLayer / InsertLayerAt）
	Layer string

	// Index 图层索引，1 基（UpdateLayer / InsertLayerAt / RemoveLayer）
	Index int

	// DX, DY 相对位移（Move）
	DX, DY float64

	// Value 目标值或增量（Opacity* / Scale*）
	Value float64

	// Duration 时长（帧），已应用默认值
	Duration int

	// Curve 缓动曲线名（Move）
	Curve string

	// Overlay 覆盖层开关（SetOverlayFlag）
	Overlay bool
}

// 解析错误
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
)
