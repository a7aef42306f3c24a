package render

// Host 渲染树宿主
// 绘制顺序协调器通过它找到纸娃娃可以挂载的两个父容器
type Host interface {
	// PrimaryLayer 主场景层（位于对话框之下）
	PrimaryLayer() *Node

	// OverlayContainer 覆盖层容器（对话框所在的窗口层）
	OverlayContainer() *Node

	// OverlayAnchor 覆盖层锚点（对话框本身），可能为 nil
	OverlayAnchor() *Node
}

// Stage 标准舞台树
//
// 结构:
//
//	root
//	├── spriteset      主场景层（纸娃娃默认挂在这里）
//	└── windowLayer    覆盖层容器
//	    └── messageWindow  锚点
type Stage struct {
	Root          *Node
	Spriteset     *Node
	WindowLayer   *Node
	MessageWindow *Node
}

// NewStage 创建标准舞台树
// messageWindow 可以为 nil（没有对话框的场景）
func NewStage(messageWindow *Node) *Stage {
	s := &Stage{
		Root:          NewNode("root"),
		Spriteset:     NewNode("spriteset"),
		WindowLayer:   NewNode("windowLayer"),
		MessageWindow: messageWindow,
	}
	s.Root.AddChild(s.Spriteset)
	s.Root.AddChild(s.WindowLayer)
	if messageWindow != nil {
		s.WindowLayer.AddChild(messageWindow)
	}
	return s
}

// PrimaryLayer 实现 Host
func (s *Stage) PrimaryLayer() *Node { return s.Spriteset }

// OverlayContainer 实现 Host
func (s *Stage) OverlayContainer() *Node { return s.WindowLayer }

// OverlayAnchor 实现 Host
func (s *Stage) OverlayAnchor() *Node { return s.MessageWindow }
