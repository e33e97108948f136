package entities

import (
	"math"

	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	scrW = config.ScreenWidth
	scrH = config.ScreenHeight

	// 地面渐变的三条分界线
	gradBlue   = scrH - 42
	gradPurple = scrH - 31
	gradBrown  = scrH - 4

	moonCycle          = 32
	shootingStarPeriod = 3
	shootingStarSpeed  = 90
	shootingTrailMax   = 150
	shootingTrailLife  = 0.8
	congratsWave       = 0.5
)

// ScoreTable 胜利画面右侧的最高分表
type ScoreTable interface {
	DrawTable(r platform.Renderer, pos utils.Vector, forEnd bool)
}

// gradientColor 按高度取地面颜色，top 为最上层颜色
func gradientColor(y float64, top platform.Color) platform.Color {
	switch {
	case y < gradBlue:
		return top
	case y < gradPurple:
		return platform.Purple
	case y < gradBrown:
		return platform.Brown
	default:
		return platform.LightGrey
	}
}

// twinkle 闪烁的星星
type twinkle struct {
	pos  utils.Vector
	anim *components.AnimationComponent
}

func newTwinkle(w *World, pos utils.Vector, freq float64, names ...string) twinkle {
	frames := make([]platform.ImageRegion, len(names))
	for i, n := range names {
		frames[i] = w.Region(n)
	}
	return twinkle{pos: pos, anim: components.NewAnimation(frames, freq, platform.Black, 0)}
}

// shootingStar 流星：头部和逐渐散开的尾迹
type shootingStar struct {
	pos       utils.Vector
	vel       utils.Vector
	particles []*Particle
}

func (s *shootingStar) update(w *World, dt float64) {
	s.pos = s.pos.Add(s.vel.Scale(dt))
	if len(s.particles) < shootingTrailMax {
		for i := 0; i < 3; i++ {
			vel := utils.Vec(w.randRange(-1, 1), w.randRange(-1, 1)).Normalize().Scale(3)
			s.particles = append(s.particles, &Particle{
				Pos: s.pos, Vel: vel, Size: 1, Lifespan: shootingTrailLife, Color: platform.White,
			})
		}
	}
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Update(dt)
		p.Color = gradientColor(p.Pos.Y, platform.Blue)
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

func (s *shootingStar) out() bool {
	return s.pos.X > 2*scrW || s.pos.Y < -scrW
}

// RewardAnim 胜利画面：行星、交替经过的两颗卫星、星空和流星
//
// 不注册到注册表，由胜利阶段直接推进和绘制；镜头偏移由阶段统一施加。
type RewardAnim struct {
	world *World

	planet    platform.ImageRegion
	title     platform.ImageRegion
	moonFront platform.ImageRegion
	moonBack  platform.ImageRegion

	planetPos    utils.Vector
	moonFrontPos utils.Vector
	moonBackPos  utils.Vector

	bigStars []twinkle
	stars    []utils.Vector

	shooting     []*shootingStar
	lastShooting float64
	birth        float64
	now          float64
}

// rewardStarFractions 固定星星的位置（屏幕宽高的分数）
var rewardStarFractions = [][4]float64{
	{1, 20, 71, 120}, {1, 32, 11, 20}, {1, 16, 83, 120}, {9, 80, 31, 40},
	{1, 10, 91, 120}, {3, 40, 17, 20}, {37, 80, 39, 40}, {71, 160, 19, 20},
	{73, 160, 37, 40}, {7, 16, 14, 15}, {2, 5, 107, 120}, {9, 20, 49, 60},
	{1, 2, 11, 24}, {19, 20, 29, 60}, {39, 40, 3, 8}, {77, 80, 47, 120},
	{19, 20, 1, 3}, {27, 32, 17, 40}, {143, 160, 5, 8}, {151, 160, 27, 40},
	{149, 160, 41, 60}, {153, 160, 91, 120}, {29, 32, 107, 120}, {1, 20, 17, 24},
	{1, 32, 29, 30}, {1, 20, 19, 20}, {7, 160, 113, 120}, {3, 32, 109, 120},
	{1, 20, 13, 15}, {1, 20, 101, 120}, {7, 32, 103, 120}, {91, 160, 91, 120},
	{21, 32, 41, 60}, {123, 160, 103, 120}, {111, 160, 49, 120}, {113, 160, 17, 40},
	{19, 32, 1, 6}, {93, 160, 17, 120}, {89, 160, 9, 20}, {99, 160, 17, 40},
	{1, 2, 31, 60}, {153, 160, 17, 60}, {79, 80, 9, 40}, {31, 32, 13, 60},
	{29, 32, 21, 40},
}

var epilogue = []string{
	"You defeated",
	"the ennemies",
	"     ...    ",
	"All humanity",
	"will remember",
	"you as one of",
	"the bravest.",
}

// NewRewardAnim 创建胜利画面
func NewRewardAnim(w *World) *RewardAnim {
	r := &RewardAnim{
		world:     w,
		planet:    w.Region("planet"),
		title:     w.Region("title"),
		moonFront: w.Region("moon.front"),
		moonBack:  w.Region("moon.back"),
	}
	r.planetPos = utils.Vec(scrW*3/10, scrH-47)

	big := func(fx, fy float64, freq float64) twinkle {
		return newTwinkle(w, utils.Vec(scrW*fx, scrH*fy), freq, "bigstar.0", "bigstar.1")
	}
	pulse := func(fx, fy float64, freq float64) twinkle {
		names := []string{"pulse.high.0", "pulse.high.1"}
		if scrH*fy >= gradPurple {
			names = []string{"pulse.low.0", "pulse.low.1"}
		}
		return newTwinkle(w, utils.Vec(scrW*fx, scrH*fy), freq, names...)
	}
	r.bigStars = []twinkle{
		big(7.0/80, 1.0/2, 0.05),
		big(19.0/20, 3.0/20, 0.075),
		big(17.0/32, 37.0/60, 0.5),
		pulse(17.0/32, 19.0/40, 0.075),
		pulse(149.0/160, 17.0/20, 0.075),
		pulse(1.0/10, 47.0/60, 0.075),
		pulse(41.0/80, 2.0/15, 0.075),
		pulse(41.0/80, 3.0/20, 0.075),
		big(39.0/160, 11.0/40, 0.045),
		pulse(11.0/16, 13.0/30, 0.045),
		pulse(79.0/80, 23.0/120, 0.045),
	}
	r.stars = make([]utils.Vector, len(rewardStarFractions))
	for i, f := range rewardStarFractions {
		r.stars[i] = utils.Vec(scrW*f[0]/f[1], scrH*f[2]/f[3])
	}
	return r
}

// Start 从时刻 t 开始播放
func (r *RewardAnim) Start(t float64) {
	r.birth = t
	r.now = t
	r.lastShooting = t
	r.shooting = nil
	r.moonFrontPos = utils.Vec(-float64(r.moonFront.W)/2, scrH-40)
	r.moonBackPos = utils.Vec(scrW+float64(r.moonBack.W)/2, scrH-45)
	for i := range r.bigStars {
		r.bigStars[i].anim = components.NewAnimation(r.bigStars[i].anim.Frames, r.bigStars[i].anim.Freq, platform.Black, t)
	}
}

// ShootingStars 当前流星数
func (r *RewardAnim) ShootingStars() int {
	return len(r.shooting)
}

// Update 推进流星、星星闪烁和卫星位置
func (r *RewardAnim) Update(dt, t float64) {
	r.now = t

	if t-r.lastShooting >= shootingStarPeriod {
		dir := utils.Vec(3, r.world.randRange(-4, -1)).Normalize()
		r.shooting = append(r.shooting, &shootingStar{
			pos: utils.Vec(r.world.randRange(-scrW/2, scrW/2), scrH+5),
			vel: dir.Scale(shootingStarSpeed),
		})
		r.lastShooting = t
	}
	alive := r.shooting[:0]
	for _, s := range r.shooting {
		s.update(r.world, dt)
		if !s.out() {
			alive = append(alive, s)
		}
	}
	r.shooting = alive

	for _, s := range r.bigStars {
		s.anim.Tick(t)
	}

	// 前卫星 8 秒穿过屏幕，停 4 秒；后卫星 16 秒反向穿过，停 4 秒
	phase := int(math.Mod(t-r.birth, moonCycle))
	switch {
	case phase < 8:
		r.moonFrontPos.X += (scrW + float64(r.moonFront.W)) / 8 * dt
	case phase < 12:
		r.moonFrontPos.X = -float64(r.moonFront.W) / 2
	case phase < 28:
		r.moonBackPos.X -= (scrW + float64(r.moonBack.W)) / 16 * dt
	default:
		r.moonBackPos.X = scrW + float64(r.moonBack.W)/2
	}
}

// Draw 绘制胜利画面，scores 可为 nil
func (r *RewardAnim) Draw(rd platform.Renderer, scores ScoreTable) {
	rd.DrawRect(0, gradBlue, scrW, gradPurple-gradBlue, platform.Blue)
	rd.DrawRect(0, gradPurple, scrW, gradBrown-gradPurple, platform.Purple)
	rd.DrawRect(0, gradBrown, scrW, scrH-gradBrown, platform.Brown)

	for _, s := range r.shooting {
		for _, p := range s.particles {
			p.Draw(rd)
		}
		rd.DrawPixel(s.pos.X, s.pos.Y, platform.White)
	}

	rd.DrawSprite(utils.Vec(scrW*3/80, scrH/20), r.title, platform.Black)

	for _, s := range r.bigStars {
		components.DrawCentered(rd, s.pos, s.anim.Current(), platform.Black)
	}
	for _, p := range r.stars {
		rd.DrawPixel(p.X, p.Y, gradientColor(p.Y, platform.Grey))
	}

	components.DrawCentered(rd, r.moonBackPos, r.moonBack, platform.Black)
	components.DrawCentered(rd, r.planetPos, r.planet, platform.Black)

	for n, c := range "CONGRATULATIONS" {
		y := 88 + math.Sin(r.now*4+float64(n)*congratsWave)*3
		rd.DrawText(float64(18+n*config.CharWidth), y, string(c), platform.Cyan)
	}

	x := float64(scrW * 3 / 5)
	for n, line := range epilogue {
		rd.DrawText(x, scrH/20+float64(n*config.LineHeight), line, platform.LightGrey)
	}
	if scores != nil {
		scores.DrawTable(rd, utils.Vec(x, scrH*29/60), true)
	}

	components.DrawCentered(rd, r.moonFrontPos, r.moonFront, platform.Black)
}
