package entities

import (
	"fmt"
	"regexp"

	"github.com/gonewx/paperdoll/pkg/components"
	"github.com/gonewx/paperdoll/pkg/config"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/render"
)

// BitmapLoader 图层贴图加载接口
// LoadBitmap 立即返回句柄，贴图在后台加载（game.ResourceManager 实现）
type BitmapLoader interface {
	LoadBitmap(dir, name string) *render.Bitmap
}

var pngSuffix = regexp.MustCompile(`(?i)\.png$`)

// TrimImageName 去掉资源名末尾的 .png（大小写不敏感）
func TrimImageName(name string) string {
	return pngSuffix.ReplaceAllString(name, "")
}

// NewLayer 创建一个图层（贴图句柄 + 渲染节点），尚未挂到纸娃娃上
//
// 参数:
//   - loader: 贴图加载器
//   - dir: 图片目录
//   - name: 资源名，.png 后缀会被去掉
func NewLayer(loader BitmapLoader, dir, name string) *components.Layer {
	name = TrimImageName(name)
	bitmap := loader.LoadBitmap(dir, name)
	return &components.Layer{
		ResourceName: name,
		Bitmap:       bitmap,
		Node:         render.NewSprite(name, bitmap),
	}
}

// NewPaperdollEntity 创建纸娃娃实体
//
// 参数:
//   - em: EntityManager 实例
//   - loader: 贴图加载器
//   - cfg: 纸娃娃配置（类型表 + 全局默认值）
//   - typeID: 类型 ID
//   - layerNames: 图层资源名（按渲染顺序，索引 0 最底层）
//
// 返回:
//   - ecs.EntityID: 新实体 ID
//   - bool: 类型 ID 已配置时为 true；否则实体是惰性的（只有 PaperdollComponent，没有渲染节点）
func NewPaperdollEntity(em *ecs.EntityManager, loader BitmapLoader, cfg *config.PaperdollConfig, typeID int, layerNames []string) (ecs.EntityID, bool) {
	id := em.CreateEntity()

	profile, ok := cfg.ProfileFor(typeID)
	if !ok {
		ecs.AddComponent(em, id, &components.PaperdollComponent{TypeID: typeID, Inert: true})
		return id, false
	}

	root := render.NewNode(fmt.Sprintf("paperdoll:%d", typeID))
	stack := &components.LayerStackComponent{}
	for _, name := range layerNames {
		layer := NewLayer(loader, cfg.ImageDir, name)
		layer.Position = len(stack.Layers)
		stack.Layers = append(stack.Layers, layer)
		root.AddChild(layer.Node)
	}

	ecs.AddComponent(em, id, &components.PaperdollComponent{TypeID: typeID})
	ecs.AddComponent(em, id, &components.PositionComponent{X: profile.DefaultX, Y: profile.DefaultY})
	ecs.AddComponent(em, id, &components.ScaleComponent{ScaleX: profile.ScaleX, ScaleY: profile.ScaleY})
	ecs.AddComponent(em, id, &components.OpacityComponent{Opacity: cfg.DefaultOpacity})
	ecs.AddComponent(em, id, stack)
	ecs.AddComponent(em, id, &components.RenderNodeComponent{Node: root})

	return id, true
}
