package entities

import (
	"math"
	"strconv"

	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	shipSpeed          = 80
	shipFireCooldown   = 0.15
	shipShieldDuration = 3
	shipMargin         = 4
	// shipExplosionDelay 飞船被摧毁后大爆炸的延迟
	shipExplosionDelay = 1.25
)

var shieldColors = [3]platform.Color{platform.White, platform.Cyan, platform.Purple}

// ShipStartPos 飞船出场位置
var ShipStartPos = utils.Vec(config.ScreenWidth/2, config.ScreenHeight-8)

// Ship 玩家飞船
type Ship struct {
	world  *World
	body   components.Body
	sprite components.SpriteComponent

	// Alive 飞船是否存活，敌机只在飞船存活时射击
	Alive bool

	lastShot float64
	shield   bool
	shieldAt float64
	elapsed  float64 // 护盾已持续时间
	now      float64

	vel utils.Vector
	acc utils.Vector
}

// NewShip 创建飞船，Activate 之前不注册
func NewShip(w *World) *Ship {
	region := w.Region("ship")
	return &Ship{
		world:  w,
		body:   components.NewBody(ShipStartPos, components.SpriteRadius(region.W, region.H)),
		sprite: components.SpriteComponent{Region: region},
		Alive:  true,
	}
}

// Body 空间信息
func (s *Ship) Body() *components.Body {
	return &s.body
}

// Activate 开局时回到出发点并注册
func (s *Ship) Activate(t float64) {
	s.body.Pos = ShipStartPos
	s.Alive = true
	s.shield = false
	s.lastShot = t
	s.vel, s.acc = utils.Vector{}, utils.Vector{}
	s.world.Registry.AssignLayer(s, ecs.LayerMain)
	s.world.Registry.RegisterForUpdate(s)
}

// Deactivate 停止更新和绘制
func (s *Ship) Deactivate() {
	s.world.Registry.UnregisterForUpdate(s)
	s.world.Registry.RemoveFromLayer(s)
}

// Protect 开启护盾
func (s *Ship) Protect(t float64) {
	s.shield = true
	s.shieldAt = t
	s.elapsed = 0
}

// Shielded 护盾是否开启
func (s *Ship) Shielded() bool {
	return s.shield
}

// Hit 被击中的效果（闪光、爆炸、音效）
func (s *Ship) Hit(t float64) {
	s.world.HitEffect(s.body.Pos, platform.White, t)
	s.world.PlaySound(config.ChannelDestroy, config.SoundShipHit)
}

// Destroy 飞船被摧毁：立即命中效果，延迟后在队列 q 上安排闪光和大爆炸
func (s *Ship) Destroy(t float64, q *ecs.ActionQueue) {
	s.Deactivate()
	pos := s.body.Pos
	s.world.HitEffect(pos, platform.Yellow, t)
	q.Schedule(t+shipExplosionDelay, "ship explosion", func(now float64) {
		NewHitFlash(s.world, pos, platform.Yellow, now)
		NewBigExplosion(s.world, pos)
	})
}

// StartExit 胜利后飞船向上加速离场
func (s *Ship) StartExit() {
	s.acc = utils.Vec(0, -4)
	s.vel = utils.Vec(0, -1)
	s.world.Registry.UnregisterForUpdate(s)
}

// Exiting 推进离场运动
func (s *Ship) Exiting(dt float64) {
	s.vel = s.vel.Add(s.acc)
	s.body.Pos = s.body.Pos.Add(s.vel.Scale(dt))
}

// Update 读取输入，移动、射击并更新护盾
func (s *Ship) Update(dt, t float64) {
	s.now = t
	in := s.world.Input

	var dir utils.Vector
	if in != nil {
		if in.IsPressed(platform.KeyLeft) {
			dir.X = -1
		} else if in.IsPressed(platform.KeyRight) {
			dir.X = 1
		}
		if in.IsPressed(platform.KeyUp) {
			dir.Y = -1
		} else if in.IsPressed(platform.KeyDown) {
			dir.Y = 1
		}

		if in.IsPressed(platform.KeyFire) && t >= s.lastShot+shipFireCooldown {
			s.world.FireBullet(s.body.Pos)
			s.world.PlaySound(config.ChannelFire, config.SoundShipFire)
			s.lastShot = t
		}
	}

	if !dir.IsZero() {
		s.vel = dir.Normalize().Scale(shipSpeed)
		s.body.Pos = s.body.Pos.Add(s.vel.Scale(dt)).Clamp(
			utils.Vec(shipMargin, shipMargin),
			utils.Vec(config.ScreenWidth-shipMargin, config.ScreenHeight-shipMargin),
		)
	}

	if s.shield {
		s.elapsed = t - s.shieldAt
		if s.elapsed >= shipShieldDuration {
			s.shield = false
		}
	}
}

// Draw 绘制飞船，护盾开启时绘制闪烁的圆圈和倒计时
func (s *Ship) Draw(r platform.Renderer) {
	s.sprite.Draw(r, s.body.Pos)
	if !s.shield {
		return
	}
	pos := s.body.Pos.Add(utils.Vec(-0.5, -0.5))
	phase := int(math.Mod(s.now*10, 3))
	r.DrawCircleOutline(pos.X, pos.Y, s.body.Radius+2+float64(phase), shieldColors[phase])

	pos = pos.Add(utils.Vec(0, -(s.body.Radius + 10)))
	remaining := strconv.Itoa(int(shipShieldDuration - s.elapsed + 1))
	r.DrawText(pos.X, pos.Y, remaining, platform.White)
}
