package config

// 窗口与布局配置常量

const (
	// GameWindowWidth 默认窗口宽度（逻辑像素）
	GameWindowWidth = 1280

	// GameWindowHeight 默认窗口高度（逻辑像素）
	GameWindowHeight = 800

	// WindowTitle 窗口标题
	WindowTitle = "afrAIca"

	// TextRasterWidth / TextRasterHeight 文字取色贴图尺寸
	TextRasterWidth  = 1024
	TextRasterHeight = 256

	// TextRasterFontScale 文字高度占贴图高度的比例
	TextRasterFontScale = 0.58
)

// 运行时默认值
const (
	// StorageAppName gdata 存储使用的应用名
	StorageAppName = "afraica"

	// LoaderVariant 开场加载场景的粒子球变体
	LoaderVariant = "loader"

	// DefaultMainVariant 主场景默认的粒子球变体
	DefaultMainVariant = "enhanced"
)
