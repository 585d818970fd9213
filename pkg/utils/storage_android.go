//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// settingsSubdir gdata 在应用私有目录下写入设置的子目录
const settingsSubdir = "saves"

// EnsureStorageDir 确保 Android 设置目录存在并可写
//
// gdata 在 Android 上使用 /data/data/{package}/ 作为根目录，但不会预先创建子目录，
// 设置管理器打开存储前先调用此函数。
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("failed to detect Android package name")
	}

	dir := filepath.Join(root, settingsSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回应用私有目录，无法识别包名时返回空字符串
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，第一个字段即包名
	pkg := strings.TrimSpace(strings.SplitN(string(data), "\x00", 2)[0])
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
