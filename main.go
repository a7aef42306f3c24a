package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/paperdoll/pkg/app"
	"github.com/gonewx/paperdoll/pkg/command"
	"github.com/gonewx/paperdoll/pkg/embedded"
)

var (
	configFlag  = flag.String("config", "data/paperdoll.yaml", "Paperdoll config file (embedded copy is used when present)")
	scriptFlag  = flag.String("script", "data/demo.script", "Command script to play on start, empty to disable")
	loopFlag    = flag.Bool("loop", false, "Restart the script when it finishes")
	mqttFlag    = flag.String("mqtt", "", "MQTT broker URL for remote commands, e.g. tcp://localhost:1883")
	topicFlag   = flag.String("topic", "paperdoll/commands", "MQTT topic to subscribe")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		ScriptPath: *scriptFlag,
		LoopScript: *loopFlag,
		MQTT: command.MQTTConfig{
			Broker: *mqttFlag,
			Topic:  *topicFlag,
		},
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer viewer.Shutdown()

	cfg := viewer.Config()
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Paperdoll Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
