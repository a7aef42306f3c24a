package config

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/paperdoll/pkg/embedded"
)

const (
	// DefaultFadeDuration 默认淡入淡出时长（帧），配置缺省时使用
	DefaultFadeDuration = 30

	// DefaultOpacity 纸娃娃初始透明度（0-255），配置缺省时使用
	DefaultOpacity = 255

	// DefaultImageDir 图层图片目录
	DefaultImageDir = "img/paperdoll"

	// BuiltinTypeCount 内置类型数量（Type1 ~ Type10 总是存在）
	BuiltinTypeCount = 10

	// DefaultScreenWidth / DefaultScreenHeight 逻辑屏幕尺寸
	DefaultScreenWidth  = 816
	DefaultScreenHeight = 624
)

// TypeProfile 每个类型 ID 的不可变配置：默认位置与默认缩放
type TypeProfile struct {
	DefaultX float64
	DefaultY float64
	ScaleX   float64
	ScaleY   float64
}

// DefaultTypeProfile 解析失败时使用的降级配置 {0, 0, 1, 1}
var DefaultTypeProfile = TypeProfile{DefaultX: 0, DefaultY: 0, ScaleX: 1, ScaleY: 1}

// MessageWindowConfig 对话框（覆盖层锚点）的矩形与颜色
type MessageWindowConfig struct {
	X       float64
	Y       float64
	Width   float64
	Height  float64
	// Color 非预乘颜色，A 为对话框不透明度
	Color   color.NRGBA
	Visible bool
}

// PaperdollConfig 纸娃娃系统的全局配置
// 启动时加载一次，之后只读
type PaperdollConfig struct {
	// DefaultFadeDuration 命令未指定时长时使用的默认时长（帧）
	DefaultFadeDuration int

	// DefaultOpacity 新建纸娃娃的初始透明度
	DefaultOpacity uint8

	// ImageDir 图层图片目录
	ImageDir string

	ScreenWidth  int
	ScreenHeight int

	// Background 舞台背景色
	Background color.NRGBA

	MessageWindow MessageWindowConfig

	types map[int]TypeProfile
}

// flexFloat 宽松数值：接受数字或数字字符串
// 无法解析的标量视为“无效”而不是报错（与插件参数 Number(x) 的行为一致）
type flexFloat struct {
	Value float64
	Set   bool
	Valid bool
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (f *flexFloat) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar, got %s", node.Line, kindName(node.Kind))
	}
	f.Set = true
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

// orDefault 无效或为 0 时返回 fallback（对应 Number(x) || fallback）
func (f flexFloat) orDefault(fallback float64) float64 {
	if !f.Valid || f.Value == 0 {
		return fallback
	}
	return f.Value
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}

type rawProfile struct {
	X      flexFloat `yaml:"x"`
	Y      flexFloat `yaml:"y"`
	ScaleX flexFloat `yaml:"scaleX"`
	ScaleY flexFloat `yaml:"scaleY"`
}

type rawMessageWindow struct {
	X       flexFloat `yaml:"x"`
	Y       flexFloat `yaml:"y"`
	Width   flexFloat `yaml:"width"`
	Height  flexFloat `yaml:"height"`
	Color   string    `yaml:"color"`
	Opacity flexFloat `yaml:"opacity"`
	Hidden  bool      `yaml:"hidden"`
}

type rawConfig struct {
	DefaultFadeDuration flexFloat `yaml:"defaultFadeDuration"`
	DefaultOpacity      flexFloat `yaml:"defaultOpacity"`
	ImageDir            string    `yaml:"imageDir"`
	Screen              struct {
		Width  flexFloat `yaml:"width"`
		Height flexFloat `yaml:"height"`
	} `yaml:"screen"`
	BackgroundColor string               `yaml:"backgroundColor"`
	MessageWindow   rawMessageWindow     `yaml:"messageWindow"`
	Types           map[string]yaml.Node `yaml:"types"`
}

// DefaultPaperdollConfig 返回内置默认配置
// Type1 ~ Type10 全部为 {0, 0, 1, 1}
func DefaultPaperdollConfig() *PaperdollConfig {
	cfg := &PaperdollConfig{
		DefaultFadeDuration: DefaultFadeDuration,
		DefaultOpacity:      DefaultOpacity,
		ImageDir:            DefaultImageDir,
		ScreenWidth:         DefaultScreenWidth,
		ScreenHeight:        DefaultScreenHeight,
		Background:          color.NRGBA{R: 0x1e, G: 0x1e, B: 0x28, A: 0xff},
		MessageWindow: MessageWindowConfig{
			X:       0,
			Y:       DefaultScreenHeight - 180,
			Width:   DefaultScreenWidth,
			Height:  180,
			Color:   color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xc8},
			Visible: true,
		},
		types: make(map[int]TypeProfile),
	}
	for i := 1; i <= BuiltinTypeCount; i++ {
		cfg.types[i] = DefaultTypeProfile
	}
	return cfg
}

// NewPaperdollConfig 以给定的类型表创建配置（其余字段使用默认值）
// 主要用于测试和工具
func NewPaperdollConfig(profiles map[int]TypeProfile) *PaperdollConfig {
	cfg := DefaultPaperdollConfig()
	cfg.types = make(map[int]TypeProfile, len(profiles))
	for id, p := range profiles {
		cfg.types[id] = p
	}
	return cfg
}

// ProfileFor 查询类型配置
func (c *PaperdollConfig) ProfileFor(typeID int) (TypeProfile, bool) {
	p, ok := c.types[typeID]
	return p, ok
}

// TypeIDs 返回所有已配置的类型 ID（升序）
func (c *PaperdollConfig) TypeIDs() []int {
	ids := make([]int, 0, len(c.types))
	for id := range c.types {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LoadPaperdollConfig 从 YAML 文件加载纸娃娃配置
//
// 路径以 "data/" 开头且嵌入资源已初始化时，从嵌入资源读取；否则从磁盘读取。
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *PaperdollConfig: 解析后的配置对象
//   - error: 文件读取失败或 YAML 语法错误（单个类型条目的错误不会导致失败）
func LoadPaperdollConfig(path string) (*PaperdollConfig, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	cfg, err := ParsePaperdollConfig(data)
	if err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	return cfg, nil
}

// ParsePaperdollConfig 解析 YAML 配置内容
//
// 降级规则：
//   - defaultFadeDuration / defaultOpacity 缺省时使用 30 / 255；显式的 0 保留
//   - 类型条目中无法解析的数值字段按 0 处理，缩放为 0 时按 1 处理
//   - 整个类型条目结构错误（如不是映射）时降级为 {0, 0, 1, 1}
func ParsePaperdollConfig(data []byte) (*PaperdollConfig, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := DefaultPaperdollConfig()

	if raw.DefaultFadeDuration.Set && raw.DefaultFadeDuration.Valid {
		cfg.DefaultFadeDuration = int(math.Max(0, math.Round(raw.DefaultFadeDuration.Value)))
	}
	if raw.DefaultOpacity.Set && raw.DefaultOpacity.Valid {
		cfg.DefaultOpacity = uint8(math.Round(math.Max(0, math.Min(255, raw.DefaultOpacity.Value))))
	}
	if dir := strings.TrimSpace(raw.ImageDir); dir != "" {
		cfg.ImageDir = strings.TrimRight(dir, "/")
	}
	if w := raw.Screen.Width.orDefault(0); w > 0 {
		cfg.ScreenWidth = int(w)
	}
	if h := raw.Screen.Height.orDefault(0); h > 0 {
		cfg.ScreenHeight = int(h)
	}
	cfg.Background = ParseColor(raw.BackgroundColor, cfg.Background)

	mw := &cfg.MessageWindow
	mw.Width = raw.MessageWindow.Width.orDefault(float64(cfg.ScreenWidth))
	mw.Height = raw.MessageWindow.Height.orDefault(mw.Height)
	mw.X = raw.MessageWindow.X.orDefault(0)
	mw.Y = raw.MessageWindow.Y.orDefault(float64(cfg.ScreenHeight) - mw.Height)
	mw.Color = ParseColor(raw.MessageWindow.Color, mw.Color)
	if raw.MessageWindow.Opacity.Valid {
		mw.Color.A = uint8(math.Round(math.Max(0, math.Min(255, raw.MessageWindow.Opacity.Value))))
	}
	mw.Visible = !raw.MessageWindow.Hidden

	for key, node := range raw.Types {
		id, ok := parseTypeKey(key)
		if !ok {
			log.Printf("[PaperdollConfig] Warning: ignoring type entry with invalid id %q", key)
			continue
		}
		cfg.types[id] = decodeProfile(id, &node)
	}

	return cfg, nil
}

// parseTypeKey 接受 "3" 或 "Type3" 两种写法
func parseTypeKey(key string) (int, bool) {
	key = strings.TrimSpace(key)
	if len(key) > 4 && strings.EqualFold(key[:4], "type") {
		key = key[4:]
	}
	id, err := strconv.Atoi(key)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeProfile(id int, node *yaml.Node) TypeProfile {
	var rp rawProfile
	if err := node.Decode(&rp); err != nil {
		log.Printf("[PaperdollConfig] Error: failed to parse Type%d: %v (using defaults)", id, err)
		return DefaultTypeProfile
	}
	return TypeProfile{
		DefaultX: rp.X.orDefault(0),
		DefaultY: rp.Y.orDefault(0),
		ScaleX:   rp.ScaleX.orDefault(1),
		ScaleY:   rp.ScaleY.orDefault(1),
	}
}

// ParseColor 解析十六进制颜色（"#rrggbb"），失败或为空时返回 fallback
// 返回非预乘颜色，透明度沿用 fallback.A
func ParseColor(hex string, fallback color.NRGBA) color.NRGBA {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return fallback
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		log.Printf("[PaperdollConfig] Warning: invalid colour %q: %v", hex, err)
		return fallback
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: fallback.A}
}
