package entities

import (
	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	shipBulletSpeed = 120
	// enemyBulletMargin 敌方子弹越过屏幕边缘该距离后移除
	enemyBulletMargin = 5
)

// BulletColor 敌方子弹颜色
type BulletColor int

const (
	BulletRed BulletColor = iota
	BulletBlue
	BulletGreen
)

func (c BulletColor) regionName() string {
	switch c {
	case BulletBlue:
		return "enbullet.blue"
	case BulletGreen:
		return "enbullet.green"
	}
	return "enbullet.red"
}

// Bullet 飞船或敌方子弹，匀速直线运动，出界后自行移除
type Bullet struct {
	world   *World
	set     *BulletSet
	body    components.Body
	sprite  components.SpriteComponent
	vel     utils.Vector
	hostile bool
}

func newBullet(w *World, set *BulletSet, pos, vel utils.Vector, region platform.ImageRegion, hostile bool) *Bullet {
	return &Bullet{
		world:   w,
		set:     set,
		body:    components.NewBody(pos, components.SpriteRadius(region.W, region.H)),
		sprite:  components.SpriteComponent{Region: region},
		vel:     vel,
		hostile: hostile,
	}
}

// Body 空间信息
func (b *Bullet) Body() *components.Body {
	return &b.body
}

// Velocity 速度
func (b *Bullet) Velocity() utils.Vector {
	return b.vel
}

// Update 移动并检查出界
func (b *Bullet) Update(dt, t float64) {
	b.body.Pos = b.body.Pos.Add(b.vel.Scale(dt))
	if b.outOfBounds() {
		b.Remove()
	}
}

func (b *Bullet) outOfBounds() bool {
	p := b.body.Pos
	if !b.hostile {
		return p.Y <= -float64(b.sprite.Region.H)
	}
	return p.X <= -enemyBulletMargin || p.X >= config.ScreenWidth+enemyBulletMargin ||
		p.Y <= -enemyBulletMargin || p.Y >= config.ScreenHeight+enemyBulletMargin
}

// Draw 绘制
func (b *Bullet) Draw(r platform.Renderer) {
	b.sprite.Draw(r, b.body.Pos)
}

// Remove 从集合和注册表中移除，重复调用无效果
func (b *Bullet) Remove() {
	if !b.set.Remove(b) {
		return
	}
	b.world.Registry.UnregisterForUpdate(b)
	b.world.Registry.RemoveFromLayer(b)
}

// BulletSet 按发射顺序排列的子弹集合
type BulletSet struct {
	items []*Bullet
	index map[*Bullet]struct{}
}

// NewBulletSet 创建空集合
func NewBulletSet() *BulletSet {
	return &BulletSet{index: make(map[*Bullet]struct{})}
}

// Add 加入集合
func (s *BulletSet) Add(b *Bullet) {
	if _, ok := s.index[b]; ok {
		return
	}
	s.index[b] = struct{}{}
	s.items = append(s.items, b)
}

// Remove 移出集合，返回是否确实移除
func (s *BulletSet) Remove(b *Bullet) bool {
	if _, ok := s.index[b]; !ok {
		return false
	}
	delete(s.index, b)
	for i, x := range s.items {
		if x == b {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

// Contains 是否在集合中
func (s *BulletSet) Contains(b *Bullet) bool {
	_, ok := s.index[b]
	return ok
}

// Len 子弹数量
func (s *BulletSet) Len() int {
	return len(s.items)
}

// Snapshot 按发射顺序复制当前子弹
func (s *BulletSet) Snapshot() []*Bullet {
	out := make([]*Bullet, len(s.items))
	copy(out, s.items)
	return out
}

// Clear 移除所有子弹
func (s *BulletSet) Clear(reg *ecs.Registry) {
	for _, b := range s.items {
		reg.UnregisterForUpdate(b)
		reg.RemoveFromLayer(b)
	}
	s.items = nil
	s.index = make(map[*Bullet]struct{})
}
