package scenes

import (
	"math/rand"
	"testing"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/entities"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
	"go.uber.org/zap"
)

const frame = 1.0 / 30

const oneGreenArmy = `
troops:
  - name: lone
    soldiers:
      - {type: green, pos: [C, 20], delay: 0.5}
waves:
  - [0]
`

type fakeAudio struct {
	music []int
	stops int
}

func (a *fakeAudio) Play(channel, sound int)        {}
func (a *fakeAudio) PlayMusic(track int, loop bool) { a.music = append(a.music, track) }
func (a *fakeAudio) Stop()                          { a.stops++ }

func (a *fakeAudio) lastMusic() int {
	if len(a.music) == 0 {
		return -1
	}
	return a.music[len(a.music)-1]
}

type fakeInput struct {
	pressed map[platform.Key]bool
}

func (in *fakeInput) IsPressed(k platform.Key) bool  { return in.pressed[k] }
func (in *fakeInput) WasPressed(k platform.Key) bool { return in.pressed[k] }

func (in *fakeInput) fire(down bool) { in.pressed[platform.KeyFire] = down }

type nopRenderer struct{}

func (nopRenderer) Clear(platform.Color)                                         {}
func (nopRenderer) DrawSprite(utils.Vector, platform.ImageRegion, platform.Color) {}
func (nopRenderer) DrawRect(x, y, w, h float64, c platform.Color)                {}
func (nopRenderer) DrawCircle(x, y, r float64, c platform.Color)                 {}
func (nopRenderer) DrawCircleOutline(x, y, r float64, c platform.Color)          {}
func (nopRenderer) DrawLine(x1, y1, x2, y2 float64, c platform.Color)            {}
func (nopRenderer) DrawPixel(x, y float64, c platform.Color)                     {}
func (nopRenderer) DrawText(x, y float64, s string, c platform.Color)            {}
func (nopRenderer) Remap(from, to platform.Color)                                {}
func (nopRenderer) ResetRemap()                                                  {}

// harness 驱动场景管理器的测试夹具，时间按帧推进
type harness struct {
	t       *testing.T
	session *Session
	manager *game.SceneManager
	audio   *fakeAudio
	input   *fakeInput
	now     float64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	atlas, err := config.LoadSpriteConfig("../../data/sprites.yaml")
	if err != nil {
		t.Fatalf("load atlas: %v", err)
	}
	army, err := config.ParseArmyConfig([]byte(oneGreenArmy))
	if err != nil {
		t.Fatalf("parse army: %v", err)
	}
	audio := &fakeAudio{}
	input := &fakeInput{pressed: map[platform.Key]bool{}}
	w := entities.NewWorld(atlas, audio, input, rand.New(rand.NewSource(1)), zap.NewNop())
	match := game.NewMatch(w, army, nil, 0)

	h := &harness{
		t:       t,
		session: NewSession(match, game.NewHighScoreManager(&game.MemoryStore{}, nil), nil),
		manager: game.NewSceneManager(nil),
		audio:   audio,
		input:   input,
	}
	h.manager.Start(h.session.Intro(), 0)
	return h
}

// step 推进一帧并绘制
func (h *harness) step(dt float64) game.Phase {
	h.now += dt
	h.manager.Update(dt, h.now)
	h.manager.Draw(nopRenderer{})
	return h.manager.Phase()
}

// stepUntil 推进直到进入 want 阶段，超过 limit 帧则失败
func (h *harness) stepUntil(want game.Phase, limit int) {
	h.t.Helper()
	for i := 0; i < limit; i++ {
		if h.step(frame) == want {
			return
		}
	}
	h.t.Fatalf("phase = %v after %d frames, want %v", h.manager.Phase(), limit, want)
}

// startCombat 在标题画面按开火键
func (h *harness) startCombat() {
	h.t.Helper()
	h.input.fire(true)
	if got := h.step(frame); got != game.PhaseCombat {
		h.t.Fatalf("phase = %v, want combat", got)
	}
	h.input.fire(false)
}

func TestIntroWaitsForFire(t *testing.T) {
	h := newHarness(t)
	if h.audio.lastMusic() != config.MusicIntro {
		t.Errorf("music = %d, want intro track", h.audio.lastMusic())
	}
	if h.session.World.StarField.Len() == 0 {
		t.Error("star field should be running on the title screen")
	}
	for i := 0; i < 10; i++ {
		if got := h.step(frame); got != game.PhaseIntro {
			t.Fatalf("phase = %v without input, want intro", got)
		}
	}
}

func TestIntroToCombat(t *testing.T) {
	h := newHarness(t)
	h.session.Match.Score = 999
	h.startCombat()

	m := h.session.Match
	if m.Score != 0 || m.Lives != game.DefaultLives {
		t.Errorf("score=%d lives=%d, want 0 and %d", m.Score, m.Lives, game.DefaultLives)
	}
	if h.audio.stops == 0 {
		t.Error("audio should be stopped when combat starts")
	}
	if h.audio.lastMusic() != config.MusicCombat {
		t.Errorf("music = %d, want combat track", h.audio.lastMusic())
	}
	if !h.session.World.Registry.IsRegistered(m.Ship) {
		t.Error("ship should be registered")
	}
	if !h.session.World.Registry.IsRegistered(h.session.World.Actions) {
		t.Error("combat action queue should be registered")
	}
}

// TestLivesExhaustedSameFrame 生命归零的那一帧就进入飞船被摧毁阶段
func TestLivesExhaustedSameFrame(t *testing.T) {
	h := newHarness(t)
	h.startCombat()
	combatQueue := h.session.World.Actions

	h.session.Match.Score = 4200
	h.session.Match.Lives = 0
	if got := h.step(frame); got != game.PhaseShipDestroyed {
		t.Fatalf("phase = %v, want ship_destroyed", got)
	}

	if h.session.Match.Ship.Alive {
		t.Error("ship should be dead")
	}
	if h.session.World.Registry.IsRegistered(combatQueue) {
		t.Error("combat action queue should be released")
	}
	if h.audio.lastMusic() != config.MusicGameOver {
		t.Errorf("music = %d, want game over track", h.audio.lastMusic())
	}
	if got := h.session.Scores.LastScore(); got != 4200 {
		t.Errorf("last score = %d, want 4200", got)
	}
	if !h.session.Scores.IsNew() {
		t.Error("4200 should enter the high score table")
	}
}

func TestShipDestroyedReturnsToIntro(t *testing.T) {
	h := newHarness(t)
	h.startCombat()
	h.session.Match.Lives = 0
	h.step(frame)
	entered := h.now

	h.stepUntil(game.PhaseIntro, int(gameOverDelay/frame)+5)

	if h.now-entered < gameOverDelay-frame {
		t.Errorf("left game over after %.2fs, want %.0fs", h.now-entered, gameOverDelay)
	}
	w := h.session.World
	if w.Opponents.Len() != 0 || w.Bullets.Len() != 0 || w.EnemyBullets.Len() != 0 {
		t.Error("battlefield should be cleared")
	}
	if w.Sky.Background != platform.Black {
		t.Errorf("sky = %v, want black", w.Sky.Background)
	}
	if h.manager.Rejected() != 0 {
		t.Errorf("rejected transitions = %d, want 0", h.manager.Rejected())
	}

	// 可以再开一局
	h.startCombat()
	if h.session.Match.Lives != game.DefaultLives || !h.session.Match.Ship.Alive {
		t.Error("second match should start with a fresh ship")
	}
}

// TestVictoryPath 清空最后一波后依次经过离场、生命奖励、胜利画面，再回到标题
func TestVictoryPath(t *testing.T) {
	h := newHarness(t)
	h.startCombat()
	w := h.session.World
	m := h.session.Match

	// 唯一的士兵 0.5 秒后出场
	for w.Opponents.Len() == 0 {
		if h.step(frame) != game.PhaseCombat || h.now > 5 {
			t.Fatalf("soldier never spawned, phase = %v", h.manager.Phase())
		}
	}
	for _, o := range w.Opponents.Snapshot() {
		w.Despawn(o)
	}
	m.Score = 100

	if got := h.step(frame); got != game.PhaseShipExiting {
		t.Fatalf("phase = %v, want ship_exiting", got)
	}
	lives := m.Lives

	h.stepUntil(game.PhaseLivesBonus, 600)
	if w.StarField.Len() != 0 {
		t.Errorf("stars left = %d, want 0", w.StarField.Len())
	}
	if _, ok := w.Registry.LayerOf(m.Ship); ok {
		t.Error("ship should no longer be drawn")
	}
	bonus, ok := h.manager.Current().(*LivesBonusScene)
	if !ok {
		t.Fatalf("current scene = %T, want *LivesBonusScene", h.manager.Current())
	}
	if want := lives * game.LivesBonusPerLife; bonus.Bonus() != want || m.Score != 100+want {
		t.Errorf("bonus=%d score=%d, want %d and %d", bonus.Bonus(), m.Score, want, 100+want)
	}
	if h.session.Scores.LastScore() != m.Score {
		t.Errorf("last score = %d, want %d", h.session.Scores.LastScore(), m.Score)
	}

	h.stepUntil(game.PhaseVictory, int(bonusDelay/frame)+5)
	if w.Camera.Offset.Y <= 0 {
		t.Fatal("victory screen should start below the screen")
	}

	// 滑入期间开火无效
	h.input.fire(true)
	if got := h.step(frame); got != game.PhaseVictory {
		t.Fatalf("phase = %v while sliding in, want victory", got)
	}
	h.input.fire(false)

	victory := h.manager.Current().(*VictoryScene)
	for i := 0; !victory.Settled(); i++ {
		if i > 200 {
			t.Fatal("victory screen never settled")
		}
		h.step(frame)
	}
	h.step(frame)
	if !w.Camera.Offset.IsZero() {
		t.Errorf("offset = %v, want zero", w.Camera.Offset)
	}

	h.input.fire(true)
	if got := h.step(frame); got != game.PhaseIntro {
		t.Fatalf("phase = %v, want intro", got)
	}
	if h.audio.lastMusic() != config.MusicIntro {
		t.Errorf("music = %d, want intro track", h.audio.lastMusic())
	}
	if h.manager.Rejected() != 0 {
		t.Errorf("rejected transitions = %d, want 0", h.manager.Rejected())
	}
}

// TestHeldFireDuringCombat 战斗中一直按住开火不会触发阶段切换
func TestHeldFireDuringCombat(t *testing.T) {
	h := newHarness(t)
	h.input.fire(true)
	for i := 0; i < 10; i++ {
		if got := h.step(frame); got != game.PhaseCombat {
			t.Fatalf("frame %d: phase = %v, want combat", i, got)
		}
	}
	if h.manager.Rejected() != 0 {
		t.Errorf("rejected transitions = %d, want 0", h.manager.Rejected())
	}
}

// ticker 统计被推进的次数
type ticker struct {
	n int
}

func (tk *ticker) Update(dt, t float64) { tk.n++ }

// TestEffectsRunAfterCombat 生命奖励和胜利画面中仍然推进可更新对象
func TestEffectsRunAfterCombat(t *testing.T) {
	h := newHarness(t)
	h.startCombat()
	w := h.session.World

	for w.Opponents.Len() == 0 {
		if h.step(frame) != game.PhaseCombat || h.now > 5 {
			t.Fatalf("soldier never spawned, phase = %v", h.manager.Phase())
		}
	}
	for _, o := range w.Opponents.Snapshot() {
		w.Despawn(o)
	}
	h.stepUntil(game.PhaseLivesBonus, 600)

	tk := &ticker{}
	w.Registry.RegisterForUpdate(tk)
	h.step(frame)
	h.step(frame)
	if tk.n != 2 {
		t.Errorf("updates during lives bonus = %d, want 2", tk.n)
	}

	h.stepUntil(game.PhaseVictory, int(bonusDelay/frame)+5)
	before := tk.n
	h.step(frame)
	if tk.n != before+1 {
		t.Errorf("updates during victory = %d, want %d", tk.n, before+1)
	}
}
