package components

import "github.com/decker502/lastfighter/pkg/utils"

// Body 实体的空间信息
//
// Pos 是精灵中心，Center 是漂移运动的参考点（正弦、圆周轨迹围绕它计算）。
// Radius 为 0 的实体不参与碰撞。
type Body struct {
	Pos    utils.Vector
	Center utils.Vector
	Radius float64
}

// NewBody 以 pos 同时作为位置和运动中心
func NewBody(pos utils.Vector, radius float64) Body {
	return Body{Pos: pos, Center: pos, Radius: radius}
}

// SpriteRadius 精灵的默认碰撞半径 (w + h) / 4
func SpriteRadius(w, h int) float64 {
	return float64(w+h) / 4
}

// Overlaps 两个圆是否相交（含相切）
// 任一半径为 0 时不相交，结果与参数顺序无关
func (b *Body) Overlaps(o *Body) bool {
	if b.Radius == 0 || o.Radius == 0 {
		return false
	}
	r := b.Radius + o.Radius
	return b.Pos.DistanceSquared(o.Pos) <= r*r
}
