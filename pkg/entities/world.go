package entities

import (
	"math/rand"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
	"go.uber.org/zap"
)

// World 一局游戏共享的上下文
//
// 注册表、子弹和敌机集合、天空颜色、镜头偏移、随机数和协作者接口都挂在这里，
// 按引用传给每个实体，不使用全局状态。
type World struct {
	Registry *ecs.Registry
	Atlas    *config.SpriteAtlasConfig
	Audio    platform.Audio
	Input    platform.Input
	Rand     *rand.Rand
	Log      *zap.Logger

	Sky    *Sky
	Camera *Camera

	Bullets      *BulletSet
	EnemyBullets *BulletSet
	Opponents    *OpponentSet
	StarField    *StarField

	// Actions 当前阶段的定时动作队列，由阶段在进入时设置、退出时清空
	Actions *ecs.ActionQueue

	hits *HitEffect
}

// NewWorld 创建空的游戏世界
func NewWorld(atlas *config.SpriteAtlasConfig, audio platform.Audio, input platform.Input, rng *rand.Rand, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		Registry:     ecs.NewRegistry(),
		Atlas:        atlas,
		Audio:        audio,
		Input:        input,
		Rand:         rng,
		Log:          log,
		Sky:          NewSky(),
		Camera:       &Camera{},
		Bullets:      NewBulletSet(),
		EnemyBullets: NewBulletSet(),
		Opponents:    NewOpponentSet(),
		Actions:      ecs.NewActionQueue(),
	}
	w.hits = &HitEffect{world: w}
	w.StarField = NewStarField(w)
	return w
}

// Region 按名字取图集区域
func (w *World) Region(name string) platform.ImageRegion {
	return w.Atlas.MustRegion(name)
}

// Spawn 把敌机加入敌机集合、可更新集合和主绘制层
func (w *World) Spawn(o Opponent) {
	w.Opponents.Add(o)
	w.Registry.RegisterForUpdate(o)
	w.Registry.AssignLayer(o, ecs.LayerMain)
	if d, ok := o.(deployer); ok {
		d.deploy()
	}
}

// Despawn 从所有集合中移除敌机，不触发任何效果
func (w *World) Despawn(o Opponent) {
	w.Opponents.Remove(o)
	w.Registry.UnregisterForUpdate(o)
	w.Registry.RemoveFromLayer(o)
}

// FireBullet 从 pos 发射一颗飞船子弹
func (w *World) FireBullet(pos utils.Vector) *Bullet {
	b := newBullet(w, w.Bullets, pos, utils.Vec(0, -shipBulletSpeed), w.Region("bullet"), false)
	w.track(b)
	return b
}

// FireEnemyBullet 从 pos 以速度 vel 发射一颗敌方子弹
func (w *World) FireEnemyBullet(pos, vel utils.Vector, color BulletColor) *Bullet {
	b := newBullet(w, w.EnemyBullets, pos, vel, w.Region(color.regionName()), true)
	w.track(b)
	return b
}

func (w *World) track(b *Bullet) {
	b.set.Add(b)
	w.Registry.RegisterForUpdate(b)
	w.Registry.AssignLayer(b, ecs.LayerFore)
}

// FireBurst 发射 n 方向均匀分布的环形弹幕，起始方向朝下，偏移 offset 度
func (w *World) FireBurst(pos utils.Vector, n int, offset, speed float64, color BulletColor) {
	step := 360.0 / float64(n)
	for a := 0; a < n; a++ {
		vel := utils.Vec(0, 1).Rotate(float64(a)*step + offset).Scale(speed)
		w.FireEnemyBullet(pos, vel, color)
	}
}

// HitEffect 在 pos 播放命中效果：立即闪光，爆炸粒子在下一帧只显示本帧最后一个
func (w *World) HitEffect(pos utils.Vector, color platform.Color, t float64) {
	w.hits.Request(pos, color, t)
}

// ClearBattlefield 清除所有敌机和两种子弹
func (w *World) ClearBattlefield() {
	for _, o := range w.Opponents.Snapshot() {
		w.Despawn(o)
	}
	w.Bullets.Clear(w.Registry)
	w.EnemyBullets.Clear(w.Registry)
}

// PlaySound 在声道上播放音效，没有音频协作者时忽略
func (w *World) PlaySound(channel, sound int) {
	if w.Audio != nil {
		w.Audio.Play(channel, sound)
	}
}

// PlayMusic 播放音乐
func (w *World) PlayMusic(track int, loop bool) {
	if w.Audio != nil {
		w.Audio.PlayMusic(track, loop)
	}
}

// StopAudio 停止所有声音
func (w *World) StopAudio() {
	if w.Audio != nil {
		w.Audio.Stop()
	}
}

// randRange 返回 [lo, hi) 内的均匀随机数
func (w *World) randRange(lo, hi float64) float64 {
	return lo + w.Rand.Float64()*(hi-lo)
}

// randInt 返回 [lo, hi] 内的随机整数
func (w *World) randInt(lo, hi int) int {
	return lo + w.Rand.Intn(hi-lo+1)
}
