package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/gonewx/paperdoll/pkg/components"
	"github.com/gonewx/paperdoll/pkg/config"
	"github.com/gonewx/paperdoll/pkg/ecs"
	"github.com/gonewx/paperdoll/pkg/render"
)

// stubLoader 返回未加载的贴图句柄，不做任何 I/O
type stubLoader struct{}

func (stubLoader) LoadBitmap(dir, name string) *render.Bitmap {
	return render.NewBitmap(dir + "/" + name)
}

// testRig 测试用的完整纸娃娃环境
type testRig struct {
	em        *ecs.EntityManager
	stage     *render.Stage
	drawOrder *DrawOrderSystem
	system    *PaperdollSystem
}

// newTestRig 创建测试环境
// Type1 默认位置 (100, 50)，缩放 1；Type2 默认位置 (300, 60)，缩放 (2, 2)
func newTestRig(t *testing.T) *testRig {
	t.Helper()
	cfg := config.NewPaperdollConfig(map[int]config.TypeProfile{
		1: {DefaultX: 100, DefaultY: 50, ScaleX: 1, ScaleY: 1},
		2: {DefaultX: 300, DefaultY: 60, ScaleX: 2, ScaleY: 2},
	})
	em := ecs.NewEntityManager()
	stage := render.NewStage(render.NewNode("messageWindow"))
	drawOrder := NewDrawOrderSystem(em, stage)
	return &testRig{
		em:        em,
		stage:     stage,
		drawOrder: drawOrder,
		system:    NewPaperdollSystem(em, cfg, stubLoader{}, drawOrder),
	}
}

// tick 推进 n 帧
func (r *testRig) tick(n int) {
	for i := 0; i < n; i++ {
		r.system.Update()
		r.drawOrder.Update()
	}
}

func (r *testRig) state(t *testing.T, typeID int) DollState {
	t.Helper()
	s, ok := r.system.Snapshot(typeID)
	if !ok {
		t.Fatalf("Type%d has no live paperdoll", typeID)
	}
	return s
}

func (r *testRig) entity(t *testing.T, typeID int) ecs.EntityID {
	t.Helper()
	id, ok := r.system.dolls[typeID]
	if !ok {
		t.Fatalf("Type%d is not registered", typeID)
	}
	return id
}

func (r *testRig) node(t *testing.T, typeID int) *render.Node {
	t.Helper()
	rn, ok := ecs.GetComponent[*components.RenderNodeComponent](r.em, r.entity(t, typeID))
	if !ok {
		t.Fatalf("Type%d has no render node", typeID)
	}
	return rn.Node
}

func (r *testRig) stack(t *testing.T, typeID int) *components.LayerStackComponent {
	t.Helper()
	stack, ok := ecs.GetComponent[*components.LayerStackComponent](r.em, r.entity(t, typeID))
	if !ok {
		t.Fatalf("Type%d has no layer stack", typeID)
	}
	return stack
}

// lastDiagnostic 返回最近一条诊断
func (r *testRig) lastDiagnostic() error {
	d := r.system.Diagnostics()
	if len(d) == 0 {
		return nil
	}
	return d[len(d)-1]
}

func assertDiagnostic(t *testing.T, r *testRig, target error) {
	t.Helper()
	if err := r.lastDiagnostic(); !errors.Is(err, target) {
		t.Errorf("last diagnostic: got %v, want %v", err, target)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
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
