package embedded

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{}, fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	_, err := ReadFile("data/gameplay.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestReadFileByPrefix 测试按前缀路由到不同文件系统
func TestReadFileByPrefix(t *testing.T) {
	assets := fstest.MapFS{"assets/png/Tree.png": {Data: []byte("tree")}}
	data := fstest.MapFS{"data/gameplay.yaml": {Data: []byte("clock: {}")}}
	Init(assets, data)
	defer func() { initialized = false }()

	got, err := ReadFile("./data/gameplay.yaml")
	if err != nil {
		t.Fatalf("ReadFile(data) error: %v", err)
	}
	if string(got) != "clock: {}" {
		t.Errorf("ReadFile(data) = %q", got)
	}

	if !Exists("assets/png/Tree.png") {
		t.Error("Expected assets/png/Tree.png to exist")
	}
	if Exists("assets/png/Krampus.png") {
		t.Error("Expected assets/png/Krampus.png to be missing")
	}

	if _, err := ReadFile("sounds/x.ogg"); err == nil {
		t.Error("Expected error for unknown prefix")
	}
}

// TestNilAssetsFS 测试资源文件系统为 nil 时按缺失处理
func TestNilAssetsFS(t *testing.T) {
	Init(nil, fstest.MapFS{})
	defer func() { initialized = false }()

	_, err := ReadFile("assets/png/Santa.png")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

// TestGlob 测试文件匹配
func TestGlob(t *testing.T) {
	Init(fstest.MapFS{
		"assets/png/tile0.png": {Data: []byte{1}},
		"assets/png/tile1.png": {Data: []byte{1}},
		"assets/png/Tree.png":  {Data: []byte{1}},
	}, nil)
	defer func() { initialized = false }()

	matches, err := Glob("assets/png/tile*.png")
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob matched %d files, want 2", len(matches))
	}
}
