package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/ball_variants.yaml":    {Data: []byte("variants: {}\n")},
		"data/loading_sequence.yaml": {Data: []byte("phases: []\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// nil 文件系统不算初始化
	Init(nil)
	if IsInitialized() {
		t.Error("Expected Init(nil) to leave the package uninitialized")
	}
}

func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := Open("data/ball_variants.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open: expected ErrNotInitialized, got %v", err)
	}
	if _, err := ReadFile("data/ball_variants.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile: expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/ball_variants.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain path", "data/ball_variants.yaml", false},
		{"dot prefix", "./data/loading_sequence.yaml", false},
		{"missing file", "data/missing.yaml", true},
		{"bad prefix", "assets/logo.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && len(data) == 0 {
				t.Errorf("ReadFile(%q) returned empty data", tt.path)
			}
		})
	}
}

func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/ball_variants.yaml") {
		t.Error("Expected ball_variants.yaml to exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("Expected nope.yaml not to exist")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
}
