package render

import (
	"testing"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func equalNames(t *testing.T, got []*Node, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("children: got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("children: got %v, want %v", g, want)
		}
	}
}

func TestNode_AddChildAndReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.AddChild(child)
	if child.Parent() != a || a.ChildCount() != 1 {
		t.Fatal("child should be attached to a")
	}

	// 重新挂载会先从旧父节点移除
	b.AddChild(child)
	if child.Parent() != b {
		t.Error("child should now belong to b")
	}
	if a.ChildCount() != 0 {
		t.Errorf("a should have no children, got %d", a.ChildCount())
	}
}

func TestNode_AddChildAt(t *testing.T) {
	root := NewNode("root")
	root.AddChild(NewNode("x"))
	root.AddChild(NewNode("z"))
	root.AddChildAt(NewNode("y"), 1)
	equalNames(t, root.Children(), "x", "y", "z")

	// 越界索引钳制到末尾
	root.AddChildAt(NewNode("w"), 99)
	equalNames(t, root.Children(), "x", "y", "z", "w")

	root.AddChildAt(NewNode("v"), -3)
	equalNames(t, root.Children(), "v", "x", "y", "z", "w")
}

func TestNode_RemoveChild(t *testing.T) {
	root := NewNode("root")
	c := NewNode("c")
	root.AddChild(c)

	if !root.RemoveChild(c) {
		t.Fatal("RemoveChild should succeed for an attached child")
	}
	if c.Parent() != nil {
		t.Error("removed child should have no parent")
	}
	if root.RemoveChild(c) {
		t.Error("RemoveChild should report false for a non-child")
	}

	// 未挂载节点调用 RemoveFromParent 是安全的
	c.RemoveFromParent()
}

func TestNode_SetChildIndex(t *testing.T) {
	root := NewNode("root")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	rev := root.Revision()
	if root.SetChildIndex(b, 1) {
		t.Error("moving to the current index should report no change")
	}
	if root.Revision() != rev {
		t.Error("revision must not change when nothing moved")
	}

	if !root.SetChildIndex(a, 2) {
		t.Fatal("SetChildIndex should move a")
	}
	equalNames(t, root.Children(), "b", "c", "a")
	if root.Revision() == rev {
		t.Error("revision should change after a move")
	}

	root.SetChildIndex(a, -10)
	equalNames(t, root.Children(), "a", "b", "c")

	if root.SetChildIndex(NewNode("stranger"), 0) {
		t.Error("SetChildIndex should ignore nodes that are not children")
	}
}

func TestStage_Structure(t *testing.T) {
	mw := NewNode("messageWindow")
	s := NewStage(mw)

	equalNames(t, s.Root.Children(), "spriteset", "windowLayer")
	if s.OverlayAnchor() != mw || mw.Parent() != s.OverlayContainer() {
		t.Error("message window should be the anchor inside the window layer")
	}

	noWindow := NewStage(nil)
	if noWindow.OverlayAnchor() != nil {
		t.Error("stage without a message window should have no anchor")
	}
}
