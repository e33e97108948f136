package config

import (
	"fmt"

	"github.com/decker502/lastfighter/pkg/platform"
	"gopkg.in/yaml.v3"
)

// SpriteShape 精灵的程序化形状
type SpriteShape string

const (
	ShapeShip    SpriteShape = "ship"
	ShapeBolt    SpriteShape = "bolt"
	ShapeOrb     SpriteShape = "orb"
	ShapeDiamond SpriteShape = "diamond"
	ShapeCross   SpriteShape = "cross"
	ShapeCraft   SpriteShape = "craft"
	ShapeX       SpriteShape = "x"
	ShapeRing    SpriteShape = "ring"
	ShapeEye     SpriteShape = "eye"
	ShapeTitle   SpriteShape = "title"
	ShapePlanet  SpriteShape = "planet"
	ShapeStar    SpriteShape = "star"
	ShapeDot     SpriteShape = "dot"
)

var knownShapes = map[SpriteShape]bool{
	ShapeShip: true, ShapeBolt: true, ShapeOrb: true, ShapeDiamond: true,
	ShapeCross: true, ShapeCraft: true, ShapeX: true, ShapeRing: true,
	ShapeEye: true, ShapeTitle: true, ShapePlanet: true, ShapeStar: true,
	ShapeDot: true,
}

// SpriteDef 图集中一个精灵的定义
type SpriteDef struct {
	Name   string         `yaml:"name"`
	W      int            `yaml:"w"`
	H      int            `yaml:"h"`
	Shape  SpriteShape    `yaml:"shape"`
	Color  platform.Color `yaml:"color"`  // 主色
	Accent platform.Color `yaml:"accent"` // 辅色
	Colkey platform.Color `yaml:"colkey"` // 背景（透明）色
	Phase  int            `yaml:"phase"`  // 动画帧变体 0/1
	Text   string         `yaml:"text"`   // 仅 title 使用
}

// SpriteAtlasConfig 精灵图集配置（sprites.yaml）
type SpriteAtlasConfig struct {
	Width   int         `yaml:"width"`
	Sprites []SpriteDef `yaml:"sprites"`

	regions map[string]platform.ImageRegion
	defs    map[string]*SpriteDef
	height  int
}

// LoadSpriteConfig 加载精灵图集配置并排布
func LoadSpriteConfig(path string) (*SpriteAtlasConfig, error) {
	data, err := ReadDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite config %s: %w", path, err)
	}
	cfg, err := ParseSpriteConfig(data)
	if err != nil {
		return nil, fmt.Errorf("sprite config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSpriteConfig 解析 YAML 数据并计算每个精灵在图集中的位置
func ParseSpriteConfig(data []byte) (*SpriteAtlasConfig, error) {
	var cfg SpriteAtlasConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sprite YAML: %w", err)
	}
	if cfg.Width == 0 {
		cfg.Width = 256
	}
	if err := validateSpriteConfig(&cfg); err != nil {
		return nil, err
	}
	cfg.pack()
	return &cfg, nil
}

// pack 按行排布精灵（shelf packing），精灵之间留 1 像素间隔
func (c *SpriteAtlasConfig) pack() {
	c.regions = make(map[string]platform.ImageRegion, len(c.Sprites))
	c.defs = make(map[string]*SpriteDef, len(c.Sprites))

	x, y, shelf := 0, 0, 0
	for i := range c.Sprites {
		s := &c.Sprites[i]
		if x+s.W > c.Width {
			x = 0
			y += shelf + 1
			shelf = 0
		}
		c.regions[s.Name] = platform.ImageRegion{Name: s.Name, U: x, V: y, W: s.W, H: s.H}
		c.defs[s.Name] = s
		x += s.W + 1
		if s.H > shelf {
			shelf = s.H
		}
	}
	c.height = y + shelf
}

// Region 返回精灵区域，不存在时返回零值和 false
func (c *SpriteAtlasConfig) Region(name string) (platform.ImageRegion, bool) {
	r, ok := c.regions[name]
	return r, ok
}

// MustRegion 返回精灵区域，不存在时返回只带名字的 1x1 区域
//
// 缺失的精灵在加载时已被校验拦截，这里只兜底测试用的精简图集。
func (c *SpriteAtlasConfig) MustRegion(name string) platform.ImageRegion {
	if r, ok := c.regions[name]; ok {
		return r
	}
	return platform.ImageRegion{Name: name, W: 1, H: 1}
}

// Def 返回精灵定义
func (c *SpriteAtlasConfig) Def(name string) (*SpriteDef, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Size 图集的像素尺寸
func (c *SpriteAtlasConfig) Size() (int, int) {
	return c.Width, c.height
}

// validateSpriteConfig 验证精灵定义
func validateSpriteConfig(cfg *SpriteAtlasConfig) error {
	seen := make(map[string]bool, len(cfg.Sprites))
	for i, s := range cfg.Sprites {
		if s.Name == "" {
			return fmt.Errorf("sprite %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("sprite %q defined twice", s.Name)
		}
		seen[s.Name] = true
		if s.W <= 0 || s.H <= 0 || s.W > cfg.Width {
			return fmt.Errorf("sprite %q: invalid size %dx%d", s.Name, s.W, s.H)
		}
		if !knownShapes[s.Shape] {
			return fmt.Errorf("sprite %q: unknown shape %q", s.Name, s.Shape)
		}
	}
	return nil
}
