package config

// 布局配置常量
// 逻辑屏幕尺寸、刷怪锚点和 HUD 位置，所有坐标为逻辑像素

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 160
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 120

	// MidWidth 屏幕水平中线
	MidWidth = ScreenWidth / 2.0

	// CharWidth 内置字体的字符宽度
	CharWidth = 4
	// LineHeight 内置字体的行高
	LineHeight = 6
)

// 刷怪锚点，军队配置中的符号坐标在加载时解析为这些值
const (
	AnchorLeft   = ScreenWidth * 2.0 / 10  // L
	AnchorCenter = ScreenWidth / 2.0       // C
	AnchorRight  = ScreenWidth * 8.0 / 10  // R
	AnchorTop    = ScreenHeight * 1.0 / 6  // T
	AnchorMiddle = ScreenHeight / 2.0      // M
	AnchorBottom = ScreenHeight * 5.0 / 6  // B
)

// anchors 符号坐标表
var anchors = map[string]float64{
	"L":  AnchorLeft,
	"C":  AnchorCenter,
	"R":  AnchorRight,
	"T":  AnchorTop,
	"M":  AnchorMiddle,
	"B":  AnchorBottom,
	"W":  ScreenWidth,
	"H":  ScreenHeight,
	"MW": MidWidth,
}

// 声道
const (
	ChannelFire    = 0
	ChannelDestroy = 1
	ChannelSpawn   = 2
)

// 音效编号
const (
	SoundShipFire      = 0
	SoundExplosion     = 1
	SoundExplosionHigh = 2
	SoundExplosionLow  = 3
	SoundShipHit       = 4
	SoundBossHit       = 7
	SoundSpawnGreen    = 8
	SoundSpawnWorm     = 9
	SoundSpawnHeavy    = 10
	SoundBossArrival   = 11

	// SoundWormNote 虫群出场音从 SoundWormNote 开始，共 WormNotes 个音高
	SoundWormNote = 20
	WormNotes     = 7
)

// 音乐曲目
const (
	MusicGameOver = 0
	MusicBoss     = 1
	MusicIntro    = 2
	MusicCombat   = 3
)
