package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestParseArmyConfig 测试军队配置解析和锚点坐标
func TestParseArmyConfig(t *testing.T) {
	data := []byte(`
troops:
  - name: greens
    soldiers:
      - {type: Green, pos: [L, 0], delay: 1.5}
      - {type: en2, pos: {x: R, y: 10}, dir: -1}
  - name: rotators
    soldiers:
      - {type: xrotator, pos: [0, M], destination: [W, B], delay: 0}
waves:
  - [0]
  - [1, 0]
`)
	cfg, err := ParseArmyConfig(data)
	if err != nil {
		t.Fatalf("ParseArmyConfig() failed: %v", err)
	}

	if len(cfg.Troops) != 2 || len(cfg.Waves) != 2 {
		t.Fatalf("got %d troops / %d waves, want 2 / 2", len(cfg.Troops), len(cfg.Waves))
	}

	first := cfg.Troops[0].Soldiers[0]
	if first.Type != "green" {
		t.Errorf("type not lower-cased: got %q, want %q", first.Type, "green")
	}
	if first.Dir != 1 {
		t.Errorf("default dir: got %d, want 1", first.Dir)
	}
	if got := first.Position(); got.X != AnchorLeft || got.Y != 0 {
		t.Errorf("pos: got %v, want (%v, 0)", got, AnchorLeft)
	}
	if !first.HasDelay() || first.DelaySeconds() != 1.5 {
		t.Errorf("delay: got %v, want 1.5", first.DelaySeconds())
	}

	second := cfg.Troops[0].Soldiers[1]
	if second.HasDelay() {
		t.Error("soldier without delay should report HasDelay() == false")
	}
	if second.Dir != -1 {
		t.Errorf("dir: got %d, want -1", second.Dir)
	}
	if got := second.Position(); got.X != AnchorRight || got.Y != 10 {
		t.Errorf("mapping pos: got %v, want (%v, 10)", got, AnchorRight)
	}

	rot := cfg.Troops[1].Soldiers[0]
	if got := rot.Destination.Vector(); got.X != ScreenWidth || got.Y != AnchorBottom {
		t.Errorf("destination: got %v, want (%v, %v)", got, ScreenWidth, AnchorBottom)
	}
	if !rot.HasDelay() || rot.DelaySeconds() != 0 {
		t.Error("explicit zero delay must be kept")
	}

	wave := cfg.WaveTemplates(1)
	if len(wave) != 3 {
		t.Fatalf("wave 1 templates: got %d, want 3", len(wave))
	}
	if wave[0].Type != "xrotator" || wave[1].Type != "green" {
		t.Errorf("wave order: got %s, %s", wave[0].Type, wave[1].Type)
	}
	if cfg.WaveTemplates(5) != nil {
		t.Error("out of range wave should expand to nil")
	}
}

// TestParseArmyConfigInvalid 测试各类校验错误
func TestParseArmyConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"没有波次", "troops: [{name: a, soldiers: [{type: green, pos: [0, 0]}]}]\nwaves: []"},
		{"空小队", "troops: [{name: a, soldiers: []}]\nwaves: [[0]]"},
		{"负延迟", "troops: [{name: a, soldiers: [{type: green, pos: [0, 0], delay: -1}]}]\nwaves: [[0]]"},
		{"非法方向", "troops: [{name: a, soldiers: [{type: worm, pos: [0, 0], dir: 2}]}]\nwaves: [[0]]"},
		{"xrotator 缺目的地", "troops: [{name: a, soldiers: [{type: xrotator, pos: [0, 0]}]}]\nwaves: [[0]]"},
		{"green 缺位置", "troops: [{name: a, soldiers: [{type: green}]}]\nwaves: [[0]]"},
		{"缺少类型", "troops: [{name: a, soldiers: [{pos: [C, 0], delay: 0.5}]}]\nwaves: [[0]]"},
		{"空波次", "troops: [{name: a, soldiers: [{type: sider}]}]\nwaves: [[]]"},
		{"索引越界", "troops: [{name: a, soldiers: [{type: sider}]}]\nwaves: [[1]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArmyConfig([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidArmy) {
				t.Errorf("got %v, want ErrInvalidArmy", err)
			}
		})
	}
}

// TestParseArmyConfigBadCoordinate 测试未知锚点
func TestParseArmyConfigBadCoordinate(t *testing.T) {
	_, err := ParseArmyConfig([]byte("troops: [{name: a, soldiers: [{type: green, pos: [Q, 0]}]}]\nwaves: [[0]]"))
	if err == nil {
		t.Fatal("expected error for unknown anchor")
	}
}

// TestLoadShippedArmy 测试随游戏发布的军队配置
func TestLoadShippedArmy(t *testing.T) {
	cfg, err := LoadArmyConfig(filepath.Join("..", "..", "data", "army.yaml"))
	if err != nil {
		t.Fatalf("LoadArmyConfig() failed: %v", err)
	}
	if len(cfg.Troops) != 16 {
		t.Errorf("troops: got %d, want 16", len(cfg.Troops))
	}
	if len(cfg.Waves) != 16 {
		t.Errorf("waves: got %d, want 16", len(cfg.Waves))
	}
	last := cfg.WaveTemplates(len(cfg.Waves) - 1)
	if len(last) != 1 || last[0].Type != "bigboss" {
		t.Errorf("last wave should be the big boss, got %+v", last)
	}
}

// TestLoadArmyConfigMissingFile 测试文件不存在
func TestLoadArmyConfigMissingFile(t *testing.T) {
	_, err := LoadArmyConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}
}
