//go:build !mobile

// stub.go 普通构建时的占位文件
//
// 桌面端构建不需要 ebitenmobile 入口，只保留导出符号让 ./... 能正常编译。
package mobile

// Dummy 占位导出函数
func Dummy() {}
