package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/gonewx/paperdoll/pkg/command"
	"github.com/gonewx/paperdoll/pkg/config"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/entities"
	"github.com/gonewx/paperdoll/pkg/game"
	"github.com/gonewx/paperdoll/pkg/render"
	"github.com/gonewx/paperdoll/pkg/systems"
)

// StageSceneName 舞台场景在 SceneManager 中的名称
const StageSceneName = "stage"

// StageScene 纸娃娃舞台场景
//
// 持有渲染树、ECS 世界、纸娃娃系统和绘制顺序协调器。
// 每个 tick 的执行顺序：脚本 -> 纸娃娃系统 -> 绘制顺序协调。
type StageScene struct {
	config   *config.PaperdollConfig
	settings *game.SettingsManager

	stage         *render.Stage
	entityManager *ecs.EntityManager
	drawOrder     *systems.DrawOrderSystem
	paperdolls    *systems.PaperdollSystem
	dispatcher    *command.Dispatcher

	// player 可选的脚本播放器
	player *command.ScriptPlayer

	frame int
}

// NewStageScene 创建舞台场景
//
// 参数:
//   - cfg: 纸娃娃配置
//   - loader: 图层贴图加载器（通常是 game.ResourceManager）
//   - settings: 查看器设置（可为 nil）
//   - script: 启动时播放的脚本（可为 nil）
func NewStageScene(cfg *config.PaperdollConfig, loader entities.BitmapLoader, settings *game.SettingsManager, script *command.Script) *StageScene {
	if cfg == nil {
		cfg = config.DefaultPaperdollConfig()
	}

	stage := render.NewStage(newMessageWindow(cfg.MessageWindow))
	em := ecs.NewEntityManager()
	drawOrder := systems.NewDrawOrderSystem(em, stage)
	paperdolls := systems.NewPaperdollSystem(em, cfg, loader, drawOrder)
	overlay := false
	if settings != nil {
		overlay = settings.GetSettings().DrawOverMessage
	}
	paperdolls.SetDefaultOverlay(overlay)

	s := &StageScene{
		config:        cfg,
		settings:      settings,
		stage:         stage,
		entityManager: em,
		drawOrder:     drawOrder,
		paperdolls:    paperdolls,
		dispatcher:    command.NewDispatcher(paperdolls),
	}
	if script != nil {
		s.player = command.NewScriptPlayer(script, s.dispatcher.Dispatch)
		log.Printf("[StageScene] Script loaded: %d steps", len(script.Steps))
	}
	return s
}

// newMessageWindow 创建对话框节点（纯色底板）
func newMessageWindow(mw config.MessageWindowConfig) *render.Node {
	node := render.NewNode("messageWindow")
	node.X, node.Y = mw.X, mw.Y
	node.Visible = mw.Visible
	node.Fill = &render.FillRect{
		Width:  mw.Width,
		Height: mw.Height,
		Color:  mw.Color,
	}
	return node
}

// Dispatch 执行一条命令（命令队列在 tick 之间调用）
func (s *StageScene) Dispatch(cmd command.Command) {
	s.dispatcher.Dispatch(cmd)
}

// Execute 解析并执行一行命令
func (s *StageScene) Execute(line string) bool {
	return s.dispatcher.Execute(line)
}

// Paperdolls 返回纸娃娃系统
func (s *StageScene) Paperdolls() *systems.PaperdollSystem {
	return s.paperdolls
}

// Stage 返回渲染树
func (s *StageScene) Stage() *render.Stage {
	return s.stage
}

// Player 返回脚本播放器，没有脚本时为 nil
func (s *StageScene) Player() *command.ScriptPlayer {
	return s.player
}

// Frame 返回已推进的帧数
func (s *StageScene) Frame() int {
	return s.frame
}

// SetOverlay 切换所有纸娃娃的覆盖层标志并保存到设置
// 新纸娃娃的默认值由 SetOverlayFlag 一并更新；脚本命令不写设置
func (s *StageScene) SetOverlay(overlay bool) {
	s.paperdolls.SetOverlayFlag(overlay)
	if s.settings != nil {
		s.settings.SetDrawOverMessage(overlay)
	}
	log.Printf("[StageScene] Overlay: %v", overlay)
}

// ToggleOverlay 反转覆盖层标志
func (s *StageScene) ToggleOverlay() {
	s.SetOverlay(!s.paperdolls.Overlay())
}

// Update 推进一帧（deltaTime 未使用：动画以帧为单位）
func (s *StageScene) Update(deltaTime float64) {
	if s.player != nil {
		s.player.Update()
	}
	s.paperdolls.Update()
	s.drawOrder.Update()
	s.frame++
}

// Draw 绘制背景和渲染树
func (s *StageScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.config.Background)
	s.stage.Root.Draw(screen, ebiten.GeoM{}, 1)

	if s.settings != nil && s.settings.GetSettings().ShowDebug {
		s.drawDebug(screen)
	}
}

// drawDebug 左上角显示帧率和纸娃娃状态
func (s *StageScene) drawDebug(screen *ebiten.Image) {
	y := 4
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  frame %d", ebiten.ActualFPS(), s.frame), 4, y)
	for _, typeID := range s.paperdolls.TypeIDs() {
		st, ok := s.paperdolls.Snapshot(typeID)
		if !ok {
			continue
		}
		y += 16
		line := fmt.Sprintf("Type%d (%.0f,%.0f) x%.2f/%.2f a=%d over=%v %v",
			typeID, st.X, st.Y, st.ScaleX, st.ScaleY, st.Opacity, st.DrawOverMessage, st.Layers)
		if st.Inert {
			line = fmt.Sprintf("Type%d (not configured)", typeID)
		}
		ebitenutil.DebugPrintAt(screen, line, 4, y)
	}
}

// OnExit 保存设置
func (s *StageScene) OnExit() {
	if s.settings == nil {
		return
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[StageScene] Warning: failed to save settings: %v", err)
	}
}
