package systems

import "errors"

// 纸娃娃操作的错误分类
//
// 这些错误不会返回给调用方：操作会降级为安全的默认行为，
// 同时输出日志并记录到 PaperdollSystem.Diagnostics()。
var (
	// ErrConfigurationMissing 类型 ID 没有配置，纸娃娃成为惰性实体
	ErrConfigurationMissing = errors.New("paperdoll type is not configured")

	// ErrIndexOutOfRange 图层索引越界（插入降级为追加，删除降级为空操作）
	ErrIndexOutOfRange = errors.New("layer index out of range")

	// ErrReferenceMissing 操作的类型 ID 没有存活的纸娃娃
	ErrReferenceMissing = errors.New("no live paperdoll for type")
)

// maxDiagnostics 保留的最近诊断条数
const maxDiagnostics = 64
