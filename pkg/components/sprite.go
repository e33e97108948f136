package components

import (
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

// SpriteComponent 静态精灵
type SpriteComponent struct {
	Region platform.ImageRegion
	Colkey platform.Color // 透明色，默认黑色
}

// Draw 以 center 为中心绘制
func (s *SpriteComponent) Draw(r platform.Renderer, center utils.Vector) {
	DrawCentered(r, center, s.Region, s.Colkey)
}

// DrawCentered 以 center 为中心绘制图集区域
func DrawCentered(r platform.Renderer, center utils.Vector, region platform.ImageRegion, colkey platform.Color) {
	pos := center.Sub(utils.Vec(float64(region.W)/2, float64(region.H)/2))
	r.DrawSprite(pos, region, colkey)
}
