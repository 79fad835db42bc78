//go:build mobile

package utils

// IsMobile 移动端构建恒为 true，触摸抬起即视为指针离开
func IsMobile() bool {
	return true
}
