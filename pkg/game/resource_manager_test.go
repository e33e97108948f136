package game

import (
	"testing"

	"github.com/decker502/lastfighter/internal/audio"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
)

func loadTestAtlas(t *testing.T) *config.SpriteAtlasConfig {
	t.Helper()
	atlas, err := config.LoadSpriteConfig("../../data/sprites.yaml")
	if err != nil {
		t.Fatalf("load atlas: %v", err)
	}
	return atlas
}

// TestPaintAtlasRegions 每个精灵区域都有像素，区域之外保持透明
func TestPaintAtlasRegions(t *testing.T) {
	cfg := loadTestAtlas(t)
	img := PaintAtlas(cfg)

	w, h := cfg.Size()
	if img.Rect.Dx() != w || img.Rect.Dy() != h {
		t.Fatalf("atlas size = %v, want %dx%d", img.Rect.Size(), w, h)
	}
	for _, def := range cfg.Sprites {
		r := cfg.MustRegion(def.Name)
		if _, ok := DominantColor(img, r); !ok {
			t.Errorf("sprite %q painted nothing", def.Name)
		}
	}
	// 精灵之间的间隔列
	ship := cfg.MustRegion("ship")
	if got := img.ColorIndexAt(ship.U+ship.W, ship.V); got != Transparent {
		t.Errorf("gap pixel = %d, want transparent", got)
	}
}

func TestPaintAtlasColours(t *testing.T) {
	cfg := loadTestAtlas(t)
	img := PaintAtlas(cfg)

	tests := []struct {
		sprite string
		want   platform.Color
	}{
		{"ship", platform.White},
		{"green.0", platform.Green},
		{"enbullet.red", platform.Red},
		{"planet", platform.Purple},
	}
	for _, tt := range tests {
		t.Run(tt.sprite, func(t *testing.T) {
			got, _ := DominantColor(img, cfg.MustRegion(tt.sprite))
			if got != tt.want {
				t.Errorf("dominant colour = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestPaintAtlasTitle 标题用字体绘制，包含主色和阴影色
func TestPaintAtlasTitle(t *testing.T) {
	cfg := loadTestAtlas(t)
	img := PaintAtlas(cfg)
	def, _ := cfg.Def("title")
	r := cfg.MustRegion("title")

	seen := map[uint8]int{}
	for y := r.V; y < r.V+r.H; y++ {
		for x := r.U; x < r.U+r.W; x++ {
			seen[img.ColorIndexAt(x, y)]++
		}
	}
	if seen[uint8(def.Color)] == 0 || seen[uint8(def.Accent)] == 0 {
		t.Errorf("title colours = %v, want both %d and %d", seen, def.Color, def.Accent)
	}
}

func TestRemapPaletted(t *testing.T) {
	cfg := loadTestAtlas(t)
	img := PaintAtlas(cfg)
	out := RemapPaletted(img, platform.Grey, platform.Red)

	r := cfg.MustRegion("boss.0")
	for y := r.V; y < r.V+r.H; y++ {
		for x := r.U; x < r.U+r.W; x++ {
			if out.ColorIndexAt(x, y) == uint8(platform.Grey) {
				t.Fatalf("grey pixel left at (%d, %d)", x, y)
			}
			if img.ColorIndexAt(x, y) == uint8(platform.Grey) && out.ColorIndexAt(x, y) != uint8(platform.Red) {
				t.Fatalf("pixel (%d, %d) not remapped", x, y)
			}
		}
	}
	// 原图不变
	if got, _ := DominantColor(img, r); got != platform.Grey {
		t.Errorf("source modified: dominant = %v, want grey", got)
	}
}

func TestResourceManagerSounds(t *testing.T) {
	bank, err := audio.NewBank(8000, 1)
	if err != nil {
		t.Fatalf("NewBank() error: %v", err)
	}
	rm := NewResourceManager(loadTestAtlas(t), bank, nil)

	a, err := rm.SoundPCM(config.SoundShipFire)
	if err != nil {
		t.Fatalf("SoundPCM() error: %v", err)
	}
	b, _ := rm.SoundPCM(config.SoundShipFire)
	if a != b {
		t.Error("SoundPCM() should be cached")
	}
	if _, err := rm.MusicPCM(99); err == nil {
		t.Error("MusicPCM(99) should fail")
	}
	if rm.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", rm.SampleRate())
	}

	silent := NewResourceManager(loadTestAtlas(t), nil, nil)
	if _, err := silent.SoundPCM(config.SoundShipFire); err == nil {
		t.Error("SoundPCM() without a bank should fail")
	}
}
