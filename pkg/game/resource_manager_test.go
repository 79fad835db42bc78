package game

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
)

// createTestImage 生成一张 10x10 的蓝色 PNG
func createTestImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, blue)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadImage_Success(t *testing.T) {
	fsys := fstest.MapFS{"data/backdrop.png": {Data: createTestImage(t)}}
	rm := NewResourceManager(fsys)

	img, err := rm.LoadImage("data/backdrop.png")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 10 || h != 10 {
		t.Errorf("size = %dx%d, want 10x10", w, h)
	}

	again, err := rm.LoadImage("data/backdrop.png")
	if err != nil || again != img {
		t.Error("second LoadImage should return the cached image")
	}
	if rm.GetImage("data/backdrop.png") != img {
		t.Error("GetImage should return the cached image")
	}
}

func TestLoadImage_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fs.FS
		path string
	}{
		{"文件不存在", fstest.MapFS{}, "data/missing.png"},
		{"内容不是图片", fstest.MapFS{"data/bad.png": {Data: []byte("not an image")}}, "data/bad.png"},
		{"未配置文件系统", nil, "data/backdrop.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := NewResourceManager(tt.fsys)
			if _, err := rm.LoadImage(tt.path); err == nil {
				t.Fatal("expected an error")
			}
			if rm.GetImage(tt.path) != nil {
				t.Error("failed loads must not be cached")
			}
		})
	}

	rm := NewResourceManager(fstest.MapFS{})
	_, err := rm.LoadImage("data/missing.png")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want wrapped fs.ErrNotExist", err)
	}
}
