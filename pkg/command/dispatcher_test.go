package command

import (
	"testing"
)

func TestDispatcher_Execute(t *testing.T) {
	system, drawOrder := newTestSystem(t)
	d := NewDispatcher(system)

	if d.Defaults.FadeDuration != 30 {
		t.Fatalf("default fade duration: got %d, want 30", d.Defaults.FadeDuration)
	}

	lines := []string{
		"ShowPaperdoll 1 body, face.png, hair",
		"AddPaperdollLayer 1 2 ribbon",
		"UpdatePaperdoll 1 3 smile",
		"PaperdollNewLayer 1 hat",
		"RemovePaperdollLayer 1 1",
		"MovePaperdoll 1 10 -5",
		"OpacityTo 1 128 -1",
		"PaperdollOverTheWindow true",
	}
	for _, line := range lines {
		if !d.Execute(line) {
			t.Fatalf("Execute(%q) returned false", line)
		}
	}
	drawOrder.Update()

	state, ok := system.Snapshot(1)
	if !ok {
		t.Fatal("Type1 should be live")
	}
	// body ribbon face hair -> 替换 3 -> body ribbon smile hair -> 追加 hat -> 移除 1
	wantLayers := []string{"ribbon", "smile", "hair", "hat"}
	if !equalStrings(state.Layers, wantLayers) {
		t.Errorf("layers: got %v, want %v", state.Layers, wantLayers)
	}
	if state.X != 110 || state.Y != 45 {
		t.Errorf("position: got (%v, %v), want (110, 45)", state.X, state.Y)
	}
	if state.Opacity != 128 {
		t.Errorf("opacity: got %d, want 128", state.Opacity)
	}
	if !state.DrawOverMessage {
		t.Error("overlay flag should be set")
	}
}

func TestDispatcher_ExecuteDropsMalformedLines(t *testing.T) {
	system, _ := newTestSystem(t)
	d := NewDispatcher(system)

	for _, line := range []string{"", "Nope 1", "ShowPaperdoll x body", "MovePaperdoll 1"} {
		if d.Execute(line) {
			t.Errorf("Execute(%q) should return false", line)
		}
	}
	if system.Has(1) {
		t.Error("no paperdoll should have been created")
	}
}

func TestDispatcher_FadeAndScaleUseDefaults(t *testing.T) {
	system, _ := newTestSystem(t)
	d := NewDispatcher(system)
	d.Execute("ShowPaperdoll 1 body")
	d.Execute("FadeOut 1")
	d.Execute("ScaleToX 1 2 10")

	state, _ := system.Snapshot(1)
	if !state.Fading || !state.ScalingX || state.ScalingY {
		t.Fatalf("channels: fading=%v scalingX=%v scalingY=%v", state.Fading, state.ScalingX, state.ScalingY)
	}

	for i := 0; i < 30; i++ {
		system.Update()
	}
	state, _ = system.Snapshot(1)
	if state.Opacity != 0 || state.Fading {
		t.Errorf("after default fade: opacity=%d fading=%v", state.Opacity, state.Fading)
	}
	if state.ScaleX != 2 || state.ScaleY != 1 {
		t.Errorf("scale: got (%v, %v), want (2, 1)", state.ScaleX, state.ScaleY)
	}
}

func TestDispatcher_InsertLayerAtIsOneBased(t *testing.T) {
	system, _ := newTestSystem(t)
	d := NewDispatcher(system)
	d.Execute("ShowPaperdoll 1 a, b")
	d.Dispatch(Command{Kind: KindInsertLayerAt, TypeID: 1, Index: 1, Layer: "front"})

	state, _ := system.Snapshot(1)
	if want := []string{"front", "a", "b"}; !equalStrings(state.Layers, want) {
		t.Errorf("layers: got %v, want %v", state.Layers, want)
	}
}
