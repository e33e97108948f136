package entities

import (
	"math"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/types"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	// bossImplosionTime 阵亡后内爆持续时间
	bossImplosionTime = 3.6
	// bossExplosionDelay 内爆结束到最终爆炸的延迟
	bossExplosionDelay = 1.25
	// combatMusicDelay Boss 消失后恢复战斗音乐的延迟
	combatMusicDelay = 5
)

var implosionColors = [4]platform.Color{platform.LightBlue, platform.White, platform.Yellow, platform.Flesh}

// bossBase 两个 Boss 共享的出场、阵亡和血条逻辑
//
// 阵亡的 Boss 留在敌机集合中（不再碰撞），直到自己队列里的最终爆炸触发后才移除，
// 因此延迟效果不会在 Boss 离开之后触发。
type bossBase struct {
	opponentBase

	starting    bool
	dying       bool
	finished    bool // 内爆结束，等待最终爆炸
	deathTime   float64
	showLifebar bool
	resumeMusic bool

	fx *ecs.ActionQueue
}

func newBossBase(w *World, kind types.OpponentType, pos utils.Vector, frames []string, colkey platform.Color, t float64) bossBase {
	b := bossBase{
		opponentBase: newOpponentBase(w, kind, pos, frames, colkey, t),
		starting:     true,
		showLifebar:  true,
		fx:           ecs.NewActionQueue(),
	}
	w.Sky.SetBossMood()
	w.StopAudio()
	w.PlayMusic(config.MusicBoss, true)
	return b
}

// Destroy 进入阵亡状态，真正移除在最终爆炸之后
func (b *bossBase) Destroy(t float64) {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.dying = true
	b.deathTime = t
}

// Dying 是否处于阵亡过程
func (b *bossBase) Dying() bool {
	return b.dying
}

// Arriving 是否处于出场闪烁
func (b *bossBase) Arriving() bool {
	return b.starting
}

// flashPhase 0.3 秒周期内的前 0.1 秒为 true
func flashPhase(elapsed, period float64) bool {
	m := math.Round(math.Mod(elapsed, period)*100) / 100
	return int(m*10) == 0
}

// updateArrival 出场闪烁，duration 秒后到场，返回是否在本帧到场
func (b *bossBase) updateArrival(t, duration float64) bool {
	b.world.EnemyBullets.Clear(b.world.Registry)
	sky := b.world.Sky
	if t-b.birth <= duration {
		if flashPhase(t-b.birth, 0.3) {
			sky.Background, sky.Stars = platform.Purple, platform.Flesh
		} else {
			sky.Background, sky.Stars = platform.Black, platform.Blue
		}
		return false
	}
	b.world.PlaySound(config.ChannelSpawn, config.SoundBossArrival)
	sky.Background, sky.Stars = platform.Purple, platform.Flesh
	b.starting = false
	b.birth = t
	return true
}

// updateDying 内爆过程，返回本帧速度
func (b *bossBase) updateDying(t float64) utils.Vector {
	vel := utils.Vec(2, 4)
	if b.body.Pos.Y < 44 {
		vel.Y = 20
	}
	b.world.Sky.Background = platform.Red

	sinceDeath := t - b.deathTime
	if sinceDeath >= bossImplosionTime {
		b.finish(t)
		return utils.Vector{}
	}
	if flashPhase(sinceDeath, 0.4) {
		pos := b.body.Pos.Add(utils.Vec(b.world.randRange(-20, 20), b.world.randRange(-20, 20)))
		col := b.world.randInt(0, 3)
		NewParticlesExplosion(b.world, pos, implosionColors[col])
		b.world.PlaySound(config.ChannelDestroy, max(config.SoundExplosionLow, col+1))
		NewHitFlash(b.world, pos, platform.White, t)
		b.world.Sky.Background = platform.White
	}
	return vel
}

// finish 内爆结束：隐藏，复位天空，安排最终爆炸和移除
func (b *bossBase) finish(t float64) {
	b.finished = true
	b.world.PlayMusic(config.MusicGameOver, false)
	b.world.Sky.Reset()

	pos := b.body.Pos
	b.fx.Schedule(t+bossExplosionDelay, "boss explosion", func(now float64) {
		NewHitFlash(b.world, pos, platform.White, now)
		NewBigExplosion(b.world, pos)
		b.remove()
	})
	if b.resumeMusic && b.world.Actions != nil {
		w := b.world
		w.Actions.Schedule(t+combatMusicDelay, "resume combat music", func(float64) {
			w.PlayMusic(config.MusicCombat, true)
		})
	}
}

// Draw 绘制 Boss 和血条
func (b *bossBase) Draw(r platform.Renderer) {
	if b.finished {
		return
	}
	b.opponentBase.Draw(r)
	if b.showLifebar {
		b.drawLifebar(r)
	}
}

func (b *bossBase) drawLifebar(r platform.Renderer) {
	x := float64((config.ScreenWidth - 102) / 2)
	r.DrawRect(x, 3, 101, 3, platform.Blue)
	if b.health.MaxLife <= 0 {
		return
	}
	w := 100*b.health.Life/b.health.MaxLife - 1
	if w > 0 {
		r.DrawRect(x+1, 4, float64(w), 1, platform.Red)
	}
}
