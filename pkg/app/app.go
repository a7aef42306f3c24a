// Package app 提供纸娃娃查看器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/paperdoll/pkg/command"
	"github.com/gonewx/paperdoll/pkg/config"
	"github.com/gonewx/paperdoll/pkg/game"
	"github.com/gonewx/paperdoll/pkg/scenes"
)

// AppName gdata 存储使用的应用名
const AppName = "paperdoll"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 纸娃娃配置文件路径（嵌入资源优先）
	ConfigPath string
	// ScriptPath 启动时播放的脚本，为空则不播放
	ScriptPath string
	// LoopScript 脚本播放完后从头开始
	LoopScript bool
	// MQTT 远程命令源，Broker 为空时不连接
	MQTT command.MQTTConfig
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	config       *config.PaperdollConfig
	sceneManager *game.SceneManager
	stage        *scenes.StageScene
	settings     *game.SettingsManager
	queue        *command.Queue
	mqtt         *command.MQTTSource
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "data/paperdoll.yaml"
	}
	paperdollConfig, err := config.LoadPaperdollConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("纸娃娃配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载纸娃娃配置: %s (%d 个类型)", configPath, len(paperdollConfig.TypeIDs()))

	// 设置存储不可用时降级为内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)

	var script *command.Script
	if cfg.ScriptPath != "" {
		script, err = command.LoadScript(cfg.ScriptPath, command.DefaultsFrom(paperdollConfig))
		if err != nil {
			return nil, fmt.Errorf("脚本加载失败: %w", err)
		}
	}

	resourceManager := game.NewResourceManager(game.DefaultAssetRoot)
	stage := scenes.NewStageScene(paperdollConfig, resourceManager, settings, script)
	if stage.Player() != nil {
		stage.Player().Loop = cfg.LoopScript
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		if name == scenes.StageSceneName {
			return stage
		}
		return nil
	})
	sceneManager.Load(scenes.StageSceneName)

	a := &App{
		config:       paperdollConfig,
		sceneManager: sceneManager,
		stage:        stage,
		settings:     settings,
		queue:        command.NewQueue(command.DefaultQueueSize),
		verbose:      cfg.Verbose,
	}

	if cfg.MQTT.Broker != "" {
		a.mqtt = command.NewMQTTSource(cfg.MQTT, a.queue, command.DefaultsFrom(paperdollConfig))
		if err := a.mqtt.Start(); err != nil {
			// 远程命令源是可选的，连接失败不阻止启动
			log.Printf("[App] Warning: MQTT disabled: %v", err)
			a.mqtt = nil
		}
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.ScreenWidth, a.config.ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.config.ScreenWidth, a.config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()

	// 外部命令在 tick 之间顺序执行
	a.queue.Drain(a.stage.Dispatch)

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// handleKeys 处理快捷键
//   - F11: 切换全屏
//   - F2: 切换纸娃娃是否绘制在对话框之上
//   - F3: 切换调试信息
func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
		a.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		a.stage.ToggleOverlay()
		a.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.settings.SetShowDebug(!a.settings.GetSettings().ShowDebug)
		a.saveSettings()
	}
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（来自配置）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.ScreenWidth, a.config.ScreenHeight
}

// Config 返回纸娃娃配置
func (a *App) Config() *config.PaperdollConfig {
	return a.config
}

// Queue 返回命令队列，供其他 goroutine 投递命令
func (a *App) Queue() *command.Queue {
	return a.queue
}

// Shutdown 断开远程命令源并通知场景退出（保存设置）
func (a *App) Shutdown() {
	if a.mqtt != nil {
		a.mqtt.Close()
	}
	a.sceneManager.Shutdown()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
