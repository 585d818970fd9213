//go:build mobile

package utils

// IsMobile 使用 -tags mobile 构建时恒为 true
// 移动端禁用全屏切换与窗口缩放快捷键
func IsMobile() bool {
	return true
}
