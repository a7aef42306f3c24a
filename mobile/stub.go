//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 桌面构建（go build ./...）不嵌入移动端资源副本，
// 只保留导出符号，让 ./mobile 包在没有 -tags mobile 时也能编译。
package mobile

// Dummy 是一个空导出函数，与 mobile.go 中的同名函数对应
func Dummy() {}
