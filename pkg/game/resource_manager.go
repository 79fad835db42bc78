package game

import (
	"fmt"
	"image"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// ResourceManager 图片资源加载与缓存
//
// 资源从给定的 fs.FS 读取（通常是 embedded 包包装的 embed.FS），
// 解码后转换为 ebiten.Image 并按路径缓存。
type ResourceManager struct {
	fsys       fs.FS
	imageCache map[string]*ebiten.Image
}

// NewResourceManager 创建资源管理器
func NewResourceManager(fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:       fsys,
		imageCache: make(map[string]*ebiten.Image),
	}
}

// LoadImage 加载并缓存图片
//
// 参数：
//   - path: fsys 中的图片路径，例如 "data/backdrop.png"
//
// 返回：
//   - 已缓存时直接返回缓存；打开或解码失败时返回包装后的错误，不缓存失败结果
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}
	if rm.fsys == nil {
		return nil, fmt.Errorf("failed to open image file %s: no resource filesystem", path)
	}

	file, err := rm.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage 返回已缓存的图片，未加载时返回 nil
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}
