package command

import (
	"testing"

	"github.com/gonewx/paperdoll/pkg/config"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/render"
	"github.com/gonewx/paperdoll/pkg/systems"
)

type stubLoader struct{}

func (stubLoader) LoadBitmap(dir, name string) *render.Bitmap {
	return render.NewBitmap(dir + "/" + name)
}

// newTestSystem 创建只配置了 Type1 (100, 50) 的纸娃娃系统
func newTestSystem(t *testing.T) (*systems.PaperdollSystem, *systems.DrawOrderSystem) {
	t.Helper()
	cfg := config.NewPaperdollConfig(map[int]config.TypeProfile{
		1: {DefaultX: 100, DefaultY: 50, ScaleX: 1, ScaleY: 1},
	})
	em := ecs.NewEntityManager()
	stage := render.NewStage(render.NewNode("messageWindow"))
	drawOrder := systems.NewDrawOrderSystem(em, stage)
	return systems.NewPaperdollSystem(em, cfg, stubLoader{}, drawOrder), drawOrder
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
