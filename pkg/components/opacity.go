package components

// OpacityComponent 存储实体透明度
// 取值 [0, 255]，255 为完全不透明
type OpacityComponent struct {
	Opacity uint8
}

// Alpha 返回归一化透明度（0.0 ~ 1.0）
func (o *OpacityComponent) Alpha() float64 {
	return float64(o.Opacity) / 255
}
