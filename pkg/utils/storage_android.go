//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 Android 上预先创建 gdata 的应用目录
//
// gdata 使用 /data/data/{package}/ 作为根目录，但不会创建子目录。
// 必须在 gdata.Open 之前调用。
//
// 参数：
//   - appName: gdata.Config.AppName
//
// 返回：
//   - string: 创建好的目录
//   - error: 检测包名、创建目录或写入测试失败
func EnsureStorageDir(appName string) (string, error) {
	pkg, err := detectAndroidPackage()
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return "", fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	os.Remove(probe)
	return dir, nil
}

// detectAndroidPackage 从 /proc/self/cmdline 读取包名
func detectAndroidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name := make([]byte, 0, len(data))
	for _, ch := range data {
		if ch == 0 || ch == '\n' {
			continue
		}
		name = append(name, ch)
	}
	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return string(name), nil
}
