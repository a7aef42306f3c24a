package systems

import (
	"testing"

	"github.com/gonewx/paperdoll/pkg/render"
)

func TestDrawOrder_OverlayFlag(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(1, []string{"a"})
	node := r.node(t, 1)
	window := r.stage.WindowLayer
	anchor := r.stage.MessageWindow

	// 锚点之上还有一个后续兄弟节点
	later := render.NewNode("choiceWindow")
	window.AddChild(later)

	r.system.SetOverlayFlag(true)
	if node.Parent() != window {
		t.Fatal("overlay paperdoll should move into the window layer")
	}
	if got, want := window.ChildIndex(node), window.ChildIndex(anchor)+1; got != want {
		t.Errorf("overlay index: got %d, want %d (directly above the anchor)", got, want)
	}
	if window.ChildIndex(later) <= window.ChildIndex(node) {
		t.Error("later overlay siblings should stay above the paperdoll")
	}
	if !r.state(t, 1).DrawOverMessage {
		t.Error("DrawOverMessage should be set")
	}

	r.system.SetOverlayFlag(false)
	if node.Parent() != r.stage.Spriteset {
		t.Error("paperdoll should return to the primary layer")
	}
	if window.ChildIndex(node) != -1 {
		t.Error("paperdoll should no longer be in the window layer")
	}
}

func TestDrawOrder_Idempotent(t *testing.T) {
	for _, overlay := range []bool{false, true} {
		r := newTestRig(t)
		r.system.Show(1, []string{"a"})
		r.system.Show(2, []string{"b"})

		r.system.SetOverlayFlag(overlay)
		windowRev := r.stage.WindowLayer.Revision()
		spriteRev := r.stage.Spriteset.Revision()

		r.system.SetOverlayFlag(overlay)
		r.tick(5)

		if r.stage.WindowLayer.Revision() != windowRev || r.stage.Spriteset.Revision() != spriteRev {
			t.Errorf("overlay=%v: repeated reconciliation changed the tree (window %d->%d, spriteset %d->%d)",
				overlay, windowRev, r.stage.WindowLayer.Revision(), spriteRev, r.stage.Spriteset.Revision())
		}
	}
}

func TestDrawOrder_MultipleOverlayDollsFormBlock(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(1, []string{"a"})
	r.system.Show(2, []string{"b"})
	r.system.SetOverlayFlag(true)

	window := r.stage.WindowLayer
	anchorIdx := window.ChildIndex(r.stage.MessageWindow)
	i1 := window.ChildIndex(r.node(t, 1))
	i2 := window.ChildIndex(r.node(t, 2))
	if i1 <= anchorIdx || i2 <= anchorIdx || i1 > anchorIdx+2 || i2 > anchorIdx+2 {
		t.Errorf("both dolls should sit directly above the anchor: anchor=%d doll1=%d doll2=%d", anchorIdx, i1, i2)
	}
}

func TestDrawOrder_AnchorMoved(t *testing.T) {
	r := newTestRig(t)
	r.system.Show(1, []string{"a"})
	r.system.SetOverlayFlag(true)

	window := r.stage.WindowLayer
	anchor := r.stage.MessageWindow
	node := r.node(t, 1)
	window.AddChild(render.NewNode("nameBox"))

	// 锚点被移到最上层，纸娃娃落到它下面
	window.SetChildIndex(anchor, window.ChildCount()-1)
	if window.ChildIndex(node) > window.ChildIndex(anchor) {
		t.Fatal("test setup: paperdoll should now be below the anchor")
	}

	r.drawOrder.Update()
	if got, want := window.ChildIndex(node), window.ChildIndex(anchor)+1; got != want {
		t.Errorf("after anchor moved: index %d, want %d", got, want)
	}
	if node.Parent() != window {
		t.Error("index correction should not reparent")
	}
}

func TestDrawOrder_NoAnchor(t *testing.T) {
	r := newTestRig(t)
	r.stage = render.NewStage(nil)
	r.drawOrder.host = r.stage

	r.system.Show(1, []string{"a"})
	r.system.SetOverlayFlag(true)
	if r.node(t, 1).Parent() != r.stage.WindowLayer {
		t.Error("without an anchor the paperdoll should still move into the overlay container")
	}
}

func TestDrawOrder_Reconcile(t *testing.T) {
	r := newTestRig(t)
	node := render.NewNode("loose")

	if !r.drawOrder.Reconcile(node, false) {
		t.Error("first reconcile should attach the node")
	}
	if r.drawOrder.Reconcile(node, false) {
		t.Error("second reconcile should be a no-op")
	}
	if node.Parent() != r.stage.Spriteset {
		t.Error("node should be attached to the primary layer")
	}
	if r.drawOrder.Reconcile(nil, true) {
		t.Error("nil node should be ignored")
	}
}
