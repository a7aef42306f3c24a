package components

// PaperdollComponent 纸娃娃标识组件
//
// 每个纸娃娃由一个类型 ID 标识，同一类型 ID 同一时间最多存在一个纸娃娃。
type PaperdollComponent struct {
	// TypeID 类型 ID，对应配置中的 TypeProfile（默认位置、默认缩放）
	TypeID int

	// OffsetX, OffsetY 相对移动的累计偏移量（相对于类型默认位置）
	// MoveBy 调用时立即更新，不等待动画结束，因此连续的相对移动是叠加的
	OffsetX float64
	OffsetY float64

	// DrawOverMessage 是否绘制在对话框之上
	DrawOverMessage bool

	// Inert 类型 ID 没有配置时为 true：纸娃娃只占位，所有操作都是空操作
	Inert bool
}
