package command

import (
	"log"

	"github.com/gonewx/paperdoll/pkg/systems"
)

// Dispatcher 把命令分派到纸娃娃系统
type Dispatcher struct {
	System   *systems.PaperdollSystem
	Defaults Defaults
}

// NewDispatcher 创建分派器，默认值取自系统配置
func NewDispatcher(system *systems.PaperdollSystem) *Dispatcher {
	return &Dispatcher{
		System:   system,
		Defaults: DefaultsFrom(system.Config()),
	}
}

// Execute 解析并执行一行命令
// 解析失败时记录日志并丢弃，返回 false
func (d *Dispatcher) Execute(line string) bool {
	cmd, err := Parse(line, d.Defaults)
	if err != nil {
		log.Printf("[Command] Warning: dropping %q: %v", line, err)
		return false
	}
	d.Dispatch(cmd)
	return true
}

// Dispatch 执行一条已解析的命令
func (d *Dispatcher) Dispatch(cmd Command) {
	s := d.System
	switch cmd.Kind {
	case KindShow:
		s.Show(cmd.TypeID, cmd.Layers)
	case KindClear:
		s.Clear(cmd.TypeID)
	case KindUpdateLayer:
		s.ReplaceLayer(cmd.TypeID, cmd.Index, cmd.Layer)
	case KindAddLayer:
		s.AddLayer(cmd.TypeID, cmd.Layer)
	case KindInsertLayerAt:
		s.InsertLayer(cmd.TypeID, cmd.Index-1, cmd.Layer)
	case KindRemoveLayer:
		s.RemoveLayer(cmd.TypeID, cmd.Index)
	case KindMove:
		s.MoveBy(cmd.TypeID, cmd.DX, cmd.DY, cmd.Duration, cmd.Curve)
	case KindFadeIn:
		s.FadeTo(cmd.TypeID, 255, cmd.Duration)
	case KindFadeOut:
		s.FadeTo(cmd.TypeID, 0, cmd.Duration)
	case KindOpacityBy:
		s.OpacityBy(cmd.TypeID, cmd.Value, cmd.Duration)
	case KindOpacityTo:
		s.FadeTo(cmd.TypeID, cmd.Value, cmd.Duration)
	case KindSlideIn:
		s.SlideIn(cmd.TypeID, systems.SlideNone, cmd.Duration)
	case KindSlideInFromLeft:
		s.SlideIn(cmd.TypeID, systems.SlideLeft, cmd.Duration)
	case KindSlideInFromRight:
		s.SlideIn(cmd.TypeID, systems.SlideRight, cmd.Duration)
	case KindSlideOut:
		s.SlideOut(cmd.TypeID, systems.SlideNone, cmd.Duration)
	case KindSlideOutToLeft:
		s.SlideOut(cmd.TypeID, systems.SlideLeft, cmd.Duration)
	case KindSlideOutToRight:
		s.SlideOut(cmd.TypeID, systems.SlideRight, cmd.Duration)
	case KindScaleTo:
		s.ScaleTo(cmd.TypeID, cmd.Value, cmd.Value, cmd.Duration)
	case KindScaleToX:
		s.ScaleToX(cmd.TypeID, cmd.Value, cmd.Duration)
	case KindScaleToY:
		s.ScaleToY(cmd.TypeID, cmd.Value, cmd.Duration)
	case KindScaleBy:
		s.ScaleBy(cmd.TypeID, cmd.Value, cmd.Value, cmd.Duration)
	case KindScaleByX:
		s.ScaleByX(cmd.TypeID, cmd.Value, cmd.Duration)
	case KindScaleByY:
		s.ScaleByY(cmd.TypeID, cmd.Value, cmd.Duration)
	case KindSetOverlayFlag:
		s.SetOverlayFlag(cmd.Overlay)
	default:
		log.Printf("[Command] Warning: unhandled command kind %v", cmd.Kind)
	}
}
