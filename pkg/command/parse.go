package command

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gonewx/paperdoll/pkg/config"
)

// Defaults 解析时使用的默认值
type Defaults struct {
	// FadeDuration 淡入淡出、透明度、滑动、缩放命令缺省时长（帧）
	FadeDuration int
}

// DefaultsFrom 从纸娃娃配置提取默认值
func DefaultsFrom(cfg *config.PaperdollConfig) Defaults {
	if cfg == nil {
		return Defaults{FadeDuration: config.DefaultFadeDuration}
	}
	return Defaults{FadeDuration: cfg.DefaultFadeDuration}
}

// aliases 命令名到类型的映射，同时接受规范名和 Paperdoll 前缀的旧名称
var aliases = map[string]Kind{
	"ShowPaperdoll":             KindShow,
	"ClearPaperdoll":            KindClear,
	"UpdatePaperdoll":           KindUpdateLayer,
	"AddPaperdollLayer":         KindAddLayer,
	"PaperdollNewLayer":         KindAddLayer,
	"InsertLayerAt":             KindInsertLayerAt,
	"RemovePaperdollLayer":      KindRemoveLayer,
	"MovePaperdoll":             KindMove,
	"FadeIn":                    KindFadeIn,
	"PaperdollFadeIn":           KindFadeIn,
	"FadeOut":                   KindFadeOut,
	"PaperdollFadeOut":          KindFadeOut,
	"OpacityBy":                 KindOpacityBy,
	"PaperdollOpacityBy":        KindOpacityBy,
	"OpacityTo":                 KindOpacityTo,
	"PaperdollOpacityTo":        KindOpacityTo,
	"SlideIn":                   KindSlideIn,
	"PaperdollSlideIn":          KindSlideIn,
	"SlideInFromLeft":           KindSlideInFromLeft,
	"PaperdollSlideInFromLeft":  KindSlideInFromLeft,
	"SlideInFromRight":          KindSlideInFromRight,
	"PaperdollSlideInFromRight": KindSlideInFromRight,
	"SlideOut":                  KindSlideOut,
	"PaperdollSlideOut":         KindSlideOut,
	"SlideOutToLeft":            KindSlideOutToLeft,
	"PaperdollSlideOutToLeft":   KindSlideOutToLeft,
	"SlideOutToRight":           KindSlideOutToRight,
	"PaperdollSlideOutToRight":  KindSlideOutToRight,
	"ScaleTo":                   KindScaleTo,
	"PaperdollScaleTo":          KindScaleTo,
	"ScaleToX":                  KindScaleToX,
	"PaperdollScaleToX":         KindScaleToX,
	"ScaleToY":                  KindScaleToY,
	"PaperdollScaleToY":         KindScaleToY,
	"ScaleBy":                   KindScaleBy,
	"PaperdollScaleBy":          KindScaleBy,
	"ScaleByX":                  KindScaleByX,
	"PaperdollScaleByX":         KindScaleByX,
	"ScaleByY":                  KindScaleByY,
	"PaperdollScaleByY":         KindScaleByY,
	"SetOverlayFlag":            KindSetOverlayFlag,
	"PaperdollOverTheWindow":    KindSetOverlayFlag,
}

// LookupKind 按名称查找命令类型
func LookupKind(name string) (Kind, bool) {
	k, ok := aliases[name]
	return k, ok
}

// Parse 解析一行命令
//
// 格式: <命令名> <参数...>，参数以空白分隔。
// 时长规则：
//   - Move 的时长缺省或非数字时为 0（立即移动），曲线缺省为 Linear
//   - 其余带时长的命令缺省、非数字或为 0 时使用 defaults.FadeDuration
//
// 返回的错误包装 ErrUnknownCommand / ErrMissingArgument / ErrInvalidArgument。
func Parse(line string, defaults Defaults) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty line: %w", ErrMissingArgument)
	}
	name, args := fields[0], fields[1:]

	kind, ok := LookupKind(name)
	if !ok {
		return Command{}, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	cmd := Command{Kind: kind}

	// 覆盖层开关没有类型 ID
	if kind == KindSetOverlayFlag {
		cmd.Overlay = len(args) > 0 && args[0] == "true"
		return cmd, nil
	}

	a := argList{name: name, args: args}
	var err error
	if cmd.TypeID, err = a.int(0); err != nil {
		return Command{}, err
	}

	switch kind {
	case KindShow:
		cmd.Layers = splitLayers(strings.Join(args[1:], " "))

	case KindClear:

	case KindUpdateLayer:
		if cmd.Index, err = a.int(1); err != nil {
			return Command{}, err
		}
		if cmd.Layer, err = a.str(2); err != nil {
			return Command{}, err
		}

	case KindAddLayer:
		// 三个参数时带插入位置（1 基）
		if len(args) >= 3 {
			cmd.Kind = KindInsertLayerAt
			if cmd.Index, err = a.int(1); err != nil {
				return Command{}, err
			}
			if cmd.Layer, err = a.str(2); err != nil {
				return Command{}, err
			}
		} else if cmd.Layer, err = a.str(1); err != nil {
			return Command{}, err
		}

	case KindInsertLayerAt:
		if cmd.Index, err = a.int(1); err != nil {
			return Command{}, err
		}
		if cmd.Layer, err = a.str(2); err != nil {
			return Command{}, err
		}

	case KindRemoveLayer:
		if cmd.Index, err = a.int(1); err != nil {
			return Command{}, err
		}

	case KindMove:
		if cmd.DX, err = a.float(1); err != nil {
			return Command{}, err
		}
		if cmd.DY, err = a.float(2); err != nil {
			return Command{}, err
		}
		cmd.Duration = a.duration(3, 0)
		cmd.Curve = "Linear"
		if len(args) > 4 {
			cmd.Curve = args[4]
		}

	case KindFadeIn, KindFadeOut,
		KindSlideIn, KindSlideInFromLeft, KindSlideInFromRight,
		KindSlideOut, KindSlideOutToLeft, KindSlideOutToRight:
		cmd.Duration = a.duration(1, defaults.FadeDuration)

	case KindOpacityBy, KindOpacityTo,
		KindScaleTo, KindScaleToX, KindScaleToY,
		KindScaleBy, KindScaleByX, KindScaleByY:
		if cmd.Value, err = a.float(1); err != nil {
			return Command{}, err
		}
		cmd.Duration = a.duration(2, defaults.FadeDuration)
	}

	return cmd, nil
}

// splitLayers 按逗号切分图层列表，去掉空白和空项
func splitLayers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// argList 位置参数访问器
type argList struct {
	name string
	args []string
}

func (a argList) str(i int) (string, error) {
	if i >= len(a.args) {
		return "", fmt.Errorf("%s: argument %d: %w", a.name, i+1, ErrMissingArgument)
	}
	return a.args[i], nil
}

func (a argList) float(i int) (float64, error) {
	s, err := a.str(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: argument %d %q: %w", a.name, i+1, s, ErrInvalidArgument)
	}
	return v, nil
}

func (a argList) int(i int) (int, error) {
	v, err := a.float(i)
	if err != nil {
		return 0, err
	}
	return int(math.Trunc(v)), nil
}

// duration 读取时长；缺省、非数字或为 0 时返回 fallback
func (a argList) duration(i int, fallback int) int {
	if i >= len(a.args) {
		return fallback
	}
	v, err := strconv.ParseFloat(a.args[i], 64)
	if err != nil || math.IsNaN(v) || v == 0 {
		return fallback
	}
	if math.IsInf(v, 1) || v > math.MaxInt32 {
		return math.MaxInt32
	}
	if math.IsInf(v, -1) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}
