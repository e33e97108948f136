package config

import (
	"path/filepath"
	"testing"
)

// TestParseSpriteConfigPacking 测试行排布：超宽换行，行高取最高精灵
func TestParseSpriteConfigPacking(t *testing.T) {
	data := []byte(`
width: 20
sprites:
  - {name: a, w: 9, h: 7, shape: ship}
  - {name: b, w: 9, h: 3, shape: orb}
  - {name: c, w: 5, h: 5, shape: dot}
`)
	cfg, err := ParseSpriteConfig(data)
	if err != nil {
		t.Fatalf("ParseSpriteConfig() failed: %v", err)
	}

	tests := []struct {
		name  string
		wantU int
		wantV int
	}{
		{"a", 0, 0},
		{"b", 10, 0},
		{"c", 0, 8},
	}
	for _, tt := range tests {
		r, ok := cfg.Region(tt.name)
		if !ok {
			t.Fatalf("region %q missing", tt.name)
		}
		if r.U != tt.wantU || r.V != tt.wantV {
			t.Errorf("%s: got (%d, %d), want (%d, %d)", tt.name, r.U, r.V, tt.wantU, tt.wantV)
		}
	}

	if w, h := cfg.Size(); w != 20 || h != 13 {
		t.Errorf("size: got %dx%d, want 20x13", w, h)
	}
	if r := cfg.MustRegion("missing"); r.W != 1 || r.Name != "missing" {
		t.Errorf("MustRegion fallback: got %+v", r)
	}
}

// TestParseSpriteConfigInvalid 测试校验
func TestParseSpriteConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"缺名字", "sprites: [{w: 1, h: 1, shape: dot}]"},
		{"重名", "sprites: [{name: a, w: 1, h: 1, shape: dot}, {name: a, w: 1, h: 1, shape: dot}]"},
		{"尺寸为 0", "sprites: [{name: a, w: 0, h: 1, shape: dot}]"},
		{"未知形状", "sprites: [{name: a, w: 1, h: 1, shape: blob}]"},
		{"超出图集宽度", "width: 8\nsprites: [{name: a, w: 9, h: 1, shape: dot}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSpriteConfig([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

// TestLoadShippedSprites 测试发布的图集包含游戏用到的全部区域
func TestLoadShippedSprites(t *testing.T) {
	cfg, err := LoadSpriteConfig(filepath.Join("..", "..", "data", "sprites.yaml"))
	if err != nil {
		t.Fatalf("LoadSpriteConfig() failed: %v", err)
	}

	required := []string{
		"ship", "life", "bullet", "enbullet.red", "enbullet.blue", "enbullet.green",
		"green.0", "green.1", "worm.0", "worm.1", "stairs.0", "stairs.1",
		"boss.0", "boss.1", "xrotator.0", "xrotator.1", "sider.0", "sider.1",
		"pendulum.0", "pendulum.1", "bigboss.closed.0", "bigboss.closed.1",
		"bigboss.open.0", "bigboss.open.1", "title", "planet", "moon.front",
		"moon.back", "bigstar.0", "bigstar.1", "pulse.high.0", "pulse.high.1",
		"pulse.low.0", "pulse.low.1",
	}
	for _, name := range required {
		if _, ok := cfg.Region(name); !ok {
			t.Errorf("region %q missing", name)
		}
	}

	ship, _ := cfg.Region("ship")
	if ship.W != 9 || ship.H != 7 {
		t.Errorf("ship size: got %dx%d, want 9x7", ship.W, ship.H)
	}
}
