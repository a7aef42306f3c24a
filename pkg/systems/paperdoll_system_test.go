package systems

import (
	"testing"
)

func TestPaperdollSystem_Show(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(2, []string{"body.png", "face.PNG", "hair"})

	s := r.state(t, 2)
	if s.X != 300 || s.Y != 60 || s.ScaleX != 2 || s.ScaleY != 2 {
		t.Errorf("initial transform: got %+v", s)
	}
	if s.Opacity != 255 {
		t.Errorf("initial opacity: got %d, want 255", s.Opacity)
	}
	if !equalStrings(s.Layers, []string{"body", "face", "hair"}) {
		t.Errorf("layers: got %v", s.Layers)
	}

	node := r.node(t, 2)
	if node.Parent() != r.stage.Spriteset {
		t.Error("new paperdoll should be attached to the primary layer")
	}
	if node.X != 300 || node.ScaleX != 2 || node.Alpha != 1 {
		t.Errorf("render node not synced: %+v", node)
	}
}

func TestPaperdollSystem_ShowReplacesExisting(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(1, []string{"a"})
	first := r.node(t, 1)

	r.system.Show(1, []string{"b", "c"})
	second := r.node(t, 1)

	if first.Parent() != nil {
		t.Error("previous paperdoll node should be detached")
	}
	if r.stage.Spriteset.ChildCount() != 1 || second.Parent() != r.stage.Spriteset {
		t.Errorf("primary layer should hold only the new paperdoll, got %d children", r.stage.Spriteset.ChildCount())
	}

	r.tick(1)
	if r.em.EntityCount() != 1 {
		t.Errorf("EntityCount after replace: got %d, want 1", r.em.EntityCount())
	}
}

func TestPaperdollSystem_ShowUnknownType(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(9, []string{"a"})

	assertDiagnostic(t, r, ErrConfigurationMissing)
	if !r.system.Has(9) {
		t.Fatal("inert paperdoll should still be registered")
	}
	s := r.state(t, 9)
	if !s.Inert {
		t.Error("paperdoll with unknown type should be inert")
	}

	before := len(r.system.Diagnostics())
	r.system.MoveBy(9, 10, 10, 0, "Linear")
	r.system.FadeTo(9, 0, 0)
	r.system.AddLayer(9, "b")
	r.system.RemoveLayer(9, 7)
	r.system.SetOverlayFlag(true)
	r.tick(3)
	if got := len(r.system.Diagnostics()); got != before {
		t.Errorf("operations on an inert paperdoll should be silent no-ops, got %d new diagnostics", got-before)
	}
	if r.stage.Spriteset.ChildCount() != 0 || r.stage.WindowLayer.ChildCount() != 1 {
		t.Error("inert paperdoll should never enter the render tree")
	}
}

// TestSetOverlayFlag_AppliesToLaterShows 覆盖层命令同时决定之后新建纸娃娃的初始值
func TestSetOverlayFlag_AppliesToLaterShows(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(1, []string{"a"})

	r.system.SetOverlayFlag(true)
	if !r.system.Overlay() {
		t.Error("Overlay() should report true after SetOverlayFlag(true)")
	}
	r.system.Show(2, []string{"b"})
	if !r.state(t, 2).DrawOverMessage {
		t.Error("paperdoll shown after SetOverlayFlag(true) should start on the overlay")
	}
	if !r.state(t, 1).DrawOverMessage {
		t.Error("live paperdoll should be switched to the overlay")
	}

	r.system.SetOverlayFlag(false)
	r.system.Show(1, []string{"a"})
	if r.state(t, 1).DrawOverMessage {
		t.Error("paperdoll shown after SetOverlayFlag(false) should start below the message window")
	}
}

func TestPaperdollSystem_Clear(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(1, []string{"a"})
	node := r.node(t, 1)

	r.system.Clear(1)
	if r.system.Has(1) {
		t.Error("Has(1) should be false after Clear")
	}
	if node.Parent() != nil {
		t.Error("cleared paperdoll should be detached")
	}
	r.tick(1)
	if r.em.EntityCount() != 0 {
		t.Errorf("EntityCount after Clear: got %d, want 0", r.em.EntityCount())
	}

	r.system.Clear(1)
	assertDiagnostic(t, r, ErrReferenceMissing)
}

func TestPaperdollSystem_ReferenceMissing(t *testing.T) {
	ops := []struct {
		name string
		call func(s *PaperdollSystem)
	}{
		{"MoveBy", func(s *PaperdollSystem) { s.MoveBy(5, 1, 1, 0, "") }},
		{"FadeTo", func(s *PaperdollSystem) { s.FadeTo(5, 0, 0) }},
		{"OpacityBy", func(s *PaperdollSystem) { s.OpacityBy(5, 10, 0) }},
		{"ScaleTo", func(s *PaperdollSystem) { s.ScaleTo(5, 1, 1, 0) }},
		{"ScaleByY", func(s *PaperdollSystem) { s.ScaleByY(5, 1, 0) }},
		{"SlideIn", func(s *PaperdollSystem) { s.SlideIn(5, SlideLeft, 0) }},
		{"SlideOut", func(s *PaperdollSystem) { s.SlideOut(5, SlideRight, 0) }},
		{"AddLayer", func(s *PaperdollSystem) { s.AddLayer(5, "a") }},
		{"InsertLayer", func(s *PaperdollSystem) { s.InsertLayer(5, 0, "a") }},
		{"ReplaceLayer", func(s *PaperdollSystem) { s.ReplaceLayer(5, 1, "a") }},
		{"RemoveLayer", func(s *PaperdollSystem) { s.RemoveLayer(5, 1) }},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			r := newTestRig(t)
			op.call(r.system)
			assertDiagnostic(t, r, ErrReferenceMissing)
		})
	}
}

func TestPaperdollSystem_TypeIDs(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(2, nil)
	r.system.Show(1, nil)
	r.system.Show(7, nil)

	ids := r.system.TypeIDs()
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 7 {
		t.Errorf("TypeIDs: got %v, want [1 2 7]", ids)
	}
}

func TestPaperdollSystem_DiagnosticsBounded(t *testing.T) {
	r := newTestRig(t)
	for i := 0; i < maxDiagnostics+10; i++ {
		r.system.Clear(99)
	}
	if got := len(r.system.Diagnostics()); got != maxDiagnostics {
		t.Errorf("Diagnostics length: got %d, want %d", got, maxDiagnostics)
	}
}

func TestPaperdollSystem_NodeFollowsState(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(1, []string{"a"})
	r.system.MoveBy(1, 40, -20, 4, "InOutSine")
	r.system.FadeTo(1, 0, 4)

	for i := 0; i < 4; i++ {
		r.tick(1)
		s := r.state(t, 1)
		node := r.node(t, 1)
		if node.X != s.X || node.Y != s.Y {
			t.Errorf("tick %d: node position (%v, %v) != state (%v, %v)", i+1, node.X, node.Y, s.X, s.Y)
		}
		if !approx(node.Alpha, float64(s.Opacity)/255) {
			t.Errorf("tick %d: node alpha %v != opacity %d", i+1, node.Alpha, s.Opacity)
		}
	}
}
