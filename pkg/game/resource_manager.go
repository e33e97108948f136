package game

import (
	"fmt"
	"image"

	"github.com/decker502/lastfighter/internal/audio"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ResourceManager 集中管理图集和声音资源，加载一次后复用
//
// 图集按 sprites.yaml 程序化绘制，换色版本按需生成并缓存；
// 声音由合成声音库渲染为 PCM 后缓存。
//
// 非线程安全：只在游戏循环的 goroutine 中使用。
type ResourceManager struct {
	atlasConfig *config.SpriteAtlasConfig
	paletted    *image.Paletted
	bank        *audio.Bank
	log         *zap.Logger

	atlas      *ebiten.Image
	remapCache map[[2]platform.Color]*ebiten.Image
	soundCache map[int]*audio.PCM
	musicCache map[int]*audio.PCM
}

// NewResourceManager 绘制图集；bank 可为 nil（无声音）
func NewResourceManager(atlasConfig *config.SpriteAtlasConfig, bank *audio.Bank, log *zap.Logger) *ResourceManager {
	if log == nil {
		log = zap.NewNop()
	}
	rm := &ResourceManager{
		atlasConfig: atlasConfig,
		paletted:    PaintAtlas(atlasConfig),
		bank:        bank,
		log:         log.Named("resources"),
		remapCache:  make(map[[2]platform.Color]*ebiten.Image),
		soundCache:  make(map[int]*audio.PCM),
		musicCache:  make(map[int]*audio.PCM),
	}
	w, h := atlasConfig.Size()
	rm.log.Debug("atlas painted", zap.Int("sprites", len(atlasConfig.Sprites)), zap.Int("w", w), zap.Int("h", h))
	return rm
}

// AtlasConfig 图集配置
func (rm *ResourceManager) AtlasConfig() *config.SpriteAtlasConfig {
	return rm.atlasConfig
}

// AtlasImage 调色板图集（终端端按区域取主色）
func (rm *ResourceManager) AtlasImage() *image.Paletted {
	return rm.paletted
}

// Atlas 图集的 ebiten 图像，第一次调用时上传
func (rm *ResourceManager) Atlas() *ebiten.Image {
	if rm.atlas == nil {
		rm.atlas = ebiten.NewImageFromImage(rm.paletted)
	}
	return rm.atlas
}

// RemappedAtlas from 色替换为 to 色的图集
func (rm *ResourceManager) RemappedAtlas(from, to platform.Color) *ebiten.Image {
	key := [2]platform.Color{from, to}
	if img, ok := rm.remapCache[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(RemapPaletted(rm.paletted, from, to))
	rm.remapCache[key] = img
	return img
}

// SoundPCM 音效的 PCM 数据
func (rm *ResourceManager) SoundPCM(id int) (*audio.PCM, error) {
	return rm.loadPCM(rm.soundCache, id, "sound", rm.bankSound)
}

// MusicPCM 曲目的 PCM 数据
func (rm *ResourceManager) MusicPCM(track int) (*audio.PCM, error) {
	return rm.loadPCM(rm.musicCache, track, "music", rm.bankMusic)
}

func (rm *ResourceManager) bankSound(id int) (*audio.PCM, bool) { return rm.bank.SoundPCM(id) }
func (rm *ResourceManager) bankMusic(id int) (*audio.PCM, bool) { return rm.bank.MusicPCM(id) }

func (rm *ResourceManager) loadPCM(cache map[int]*audio.PCM, id int, kind string, load func(int) (*audio.PCM, bool)) (*audio.PCM, error) {
	if pcm, ok := cache[id]; ok {
		return pcm, nil
	}
	if rm.bank == nil {
		return nil, fmt.Errorf("%s %d: no sound bank", kind, id)
	}
	pcm, ok := load(id)
	if !ok {
		return nil, fmt.Errorf("%s %d: not in sound bank", kind, id)
	}
	cache[id] = pcm
	return pcm, nil
}

// SampleRate 声音库的采样率，没有声音库时为 0
func (rm *ResourceManager) SampleRate() int {
	if rm.bank == nil {
		return 0
	}
	return int(rm.bank.Format().SampleRate)
}
