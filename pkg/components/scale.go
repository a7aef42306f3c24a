package components

// ScaleComponent 存储实体级别的缩放因子
// 纸娃娃的所有图层共用这一组缩放（缩放作用在纸娃娃的根节点上）
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小，0.5 = 50%，2.0 = 200%）
	ScaleX float64

	// ScaleY Y轴缩放因子（1.0 = 原始大小，0.5 = 50%，2.0 = 200%）
	ScaleY float64
}
